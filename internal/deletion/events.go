package deletion

import (
	"log"
	"time"
)

// EventType classifies teardown events.
type EventType string

const (
	// EventResourceDeleting indicates a resource teardown has started.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was torn down.
	EventResourceDeleted EventType = "resource.deleted"
	// EventResourceFailed indicates a teardown step failed.
	EventResourceFailed EventType = "resource.failed"
	// EventStepSkipped indicates a pipeline step was skipped by policy.
	EventStepSkipped EventType = "step.skipped"
)

// Event is a structured teardown event.
type Event struct {
	Type      EventType
	Instance  string
	Resource  string
	Err       error
	Timestamp time.Time
}

// Observer receives teardown events and free-form log lines.
type Observer interface {
	Printf(format string, v ...any)
	Event(event Event)
}

// ConsoleObserver implements Observer on the standard log package.
type ConsoleObserver struct{}

// Printf logs a formatted line.
func (ConsoleObserver) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// Event logs a structured event as one line.
func (ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Err != nil {
		log.Printf("[Delete] %s %s %s: %v", event.Type, event.Instance, event.Resource, event.Err)
		return
	}
	log.Printf("[Delete] %s %s %s", event.Type, event.Instance, event.Resource)
}
