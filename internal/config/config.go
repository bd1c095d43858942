// Package config loads and validates the deployment configuration.
package config

import (
	"fmt"
)

// Config is the top-level configuration, loaded from a YAML file. API
// tokens and storage credentials come from the environment, not the file.
type Config struct {
	// Deployment is the deployment name, used in DNS record names and
	// log output.
	Deployment string `mapstructure:"deployment"`
	// StorePath is the directory holding the embedded record database.
	StorePath string `mapstructure:"store_path"`

	Workers   WorkersConfig   `mapstructure:"workers"`
	Deletion  DeletionConfig  `mapstructure:"deletion"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Blobstore BlobstoreConfig `mapstructure:"blobstore"`
}

// WorkersConfig bounds teardown concurrency.
type WorkersConfig struct {
	// Max is the default worker-pool size for instance deletion.
	Max int `mapstructure:"max"`
}

// DeletionConfig fixes teardown policies.
type DeletionConfig struct {
	Force                bool   `mapstructure:"force"`
	HardStop             bool   `mapstructure:"hard_stop"`
	KeepSnapshotsInCloud bool   `mapstructure:"keep_snapshots_in_cloud"`
	// SkipDrain is one of "never", "always", "unresponsive".
	SkipDrain string `mapstructure:"skip_drain"`
}

// NATSConfig locates the message bus used for agent drain negotiation.
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// BlobstoreConfig locates the artifact blobstore.
type BlobstoreConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
}

// Validate checks the configuration for fields without usable defaults.
func (c *Config) Validate() error {
	if c.Deployment == "" {
		return fmt.Errorf("deployment name is required")
	}
	if c.Workers.Max <= 0 {
		return fmt.Errorf("workers.max must be positive, got %d", c.Workers.Max)
	}
	switch c.Deletion.SkipDrain {
	case "never", "always", "unresponsive":
	default:
		return fmt.Errorf("deletion.skip_drain must be one of never, always, unresponsive; got %q", c.Deletion.SkipDrain)
	}
	return nil
}
