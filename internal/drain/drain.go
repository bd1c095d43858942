// Package drain negotiates graceful workload shutdown before teardown.
//
// The agent running inside an instance is asked to drain and stop over the
// message bus. A skip policy can bypass the negotiation entirely, and a
// hard stop tells the agent to kill the workload without waiting for
// connections to bleed off.
package drain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mfeldt/scuttle/internal/store"
)

// SkipPolicy controls when draining is skipped.
type SkipPolicy string

const (
	// SkipNever always drains before stopping.
	SkipNever SkipPolicy = "never"
	// SkipAlways never drains; the stop request is sent immediately.
	SkipAlways SkipPolicy = "always"
	// SkipUnresponsive skips draining for instances whose agent has
	// stopped heartbeating; waiting on a dead agent only burns the
	// timeout budget.
	SkipUnresponsive SkipPolicy = "unresponsive"
)

// StateUnresponsive is the lifecycle state of an instance whose agent has
// stopped heartbeating.
const StateUnresponsive = "unresponsive"

// Decider applies a skip policy to one instance.
type Decider struct {
	policy SkipPolicy
}

// NewDecider creates a decider for the given policy.
func NewDecider(policy SkipPolicy) *Decider {
	return &Decider{policy: policy}
}

// ShouldSkipDrain reports whether draining is skipped for inst.
func (d *Decider) ShouldSkipDrain(inst *store.Instance) bool {
	switch d.policy {
	case SkipAlways:
		return true
	case SkipUnresponsive:
		return inst.State == StateUnresponsive
	default:
		return false
	}
}

// Stopper negotiates a stop with one instance's agent.
type Stopper interface {
	Stop(ctx context.Context) error
}

// conn is the message-bus surface the stopper needs. Satisfied by
// *nats.Conn.
type conn interface {
	RequestWithContext(ctx context.Context, subj string, data []byte) (*nats.Msg, error)
}

// stopRequest is the wire form of a stop negotiation.
type stopRequest struct {
	Action string `json:"action"`
	Hard   bool   `json:"hard"`
}

// stopResponse is the agent's reply.
type stopResponse struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// NATSStopperFactory builds per-instance stoppers over a shared NATS
// connection.
type NATSStopperFactory struct {
	nc      conn
	timeout time.Duration
}

// NewNATSStopperFactory creates a factory. timeout bounds each stop
// negotiation.
func NewNATSStopperFactory(nc *nats.Conn, timeout time.Duration) *NATSStopperFactory {
	return &NATSStopperFactory{nc: nc, timeout: timeout}
}

// NewStopper returns a stopper for inst. hard requests an immediate kill
// instead of a negotiated drain.
func (f *NATSStopperFactory) NewStopper(inst *store.Instance, hard bool) Stopper {
	return &natsStopper{nc: f.nc, inst: inst, hard: hard, timeout: f.timeout}
}

type natsStopper struct {
	nc      conn
	inst    *store.Instance
	hard    bool
	timeout time.Duration
}

// Stop sends the stop request to the instance's agent and waits for it to
// confirm the workload is down.
func (s *natsStopper) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := stopRequest{Action: "stop", Hard: s.hard}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode stop request: %w", err)
	}

	subject := fmt.Sprintf("agent.%s.stop", s.inst.UUID)
	msg, err := s.nc.RequestWithContext(ctx, subject, payload)
	if err != nil {
		return fmt.Errorf("stop request to %s failed: %w", s.inst.Name(), err)
	}

	var resp stopResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return fmt.Errorf("malformed stop reply from %s: %w", s.inst.Name(), err)
	}
	if resp.State != "stopped" {
		return fmt.Errorf("agent on %s reported state %q: %s", s.inst.Name(), resp.State, resp.Error)
	}
	return nil
}
