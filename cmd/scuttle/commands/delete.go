package commands

import (
	"github.com/spf13/cobra"

	"github.com/mfeldt/scuttle/cmd/scuttle/handlers"
)

// Delete returns the delete command.
//
// The delete command tears down deployment instances. For each instance it
// drains the workload, deletes the VM, removes snapshots and persistent
// disks, cleans up DNS records, releases network reservations, and removes
// rendered artifacts from the blobstore.
func Delete() *cobra.Command {
	var (
		configPath string
		opts       handlers.DeleteOptions
	)

	cmd := &cobra.Command{
		Use:   "delete [instance ...]",
		Short: "Delete deployment instances and all their resources",
		Long: `Delete tears down deployment instances.

For each selected instance the following happens in order:
  - The workload is drained and stopped via its agent
  - The VM is deleted from the cloud
  - Snapshots of its persistent disks are removed
  - Persistent disks are deleted
  - DNS records are removed
  - Network reservations are released back to the pool
  - Rendered artifacts are removed from the blobstore

Instances are selected by name (job/index) or UUID; without arguments
every instance of the deployment is deleted. Instances run concurrently
under a bounded worker pool.

Example:
  scuttle delete -c scuttle.yaml web/0 web/1
  scuttle delete -c scuttle.yaml --force

WARNING: This operation is irreversible unless snapshots are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Selectors = args
			return handlers.Delete(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to deployment configuration file (required)")
	cmd.Flags().IntVar(&opts.MaxWorkers, "max-workers", 0, "Override the configured worker-pool size")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Keep going past per-step failures")
	cmd.Flags().BoolVar(&opts.HardStop, "hard", false, "Kill workloads instead of draining them")
	cmd.Flags().BoolVar(&opts.KeepSnapshots, "keep-snapshots", false, "Keep cloud snapshot data, remove only the records")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
