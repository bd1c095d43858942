package commands

import (
	"github.com/spf13/cobra"

	"github.com/mfeldt/scuttle/cmd/scuttle/handlers"
)

// Disks returns the disks command.
func Disks() *cobra.Command {
	var (
		configPath string
		opts       handlers.DisksOptions
	)

	cmd := &cobra.Command{
		Use:   "disks",
		Short: "Sweep orphaned persistent disks",
		Long: `Disks deletes persistent disks whose owning instance no longer exists.

A disk becomes orphaned when its instance record was removed without the
disk, e.g. after a forced teardown that could not reach the cloud API.
Each orphaned disk is deleted from the cloud and its record removed.

Example:
  scuttle disks -c scuttle.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Disks(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to deployment configuration file (required)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Keep going past per-disk failures")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
