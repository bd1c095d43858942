package commands

import (
	"github.com/spf13/cobra"

	"github.com/mfeldt/scuttle/cmd/scuttle/handlers"
)

// Snapshots returns the snapshots command.
func Snapshots() *cobra.Command {
	var (
		configPath string
		opts       handlers.SnapshotsOptions
	)

	cmd := &cobra.Command{
		Use:   "snapshots <instance>",
		Short: "Remove the snapshots of an instance's persistent disks",
		Long: `Snapshots removes the snapshot records of one instance's disks.

By default the cloud snapshot data is deleted along with the records.
With --keep the cloud snapshots stay in place and only the records are
removed, e.g. when snapshots are retained for a later restore.

Example:
  scuttle snapshots -c scuttle.yaml db/0
  scuttle snapshots -c scuttle.yaml db/0 --keep`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Instance = args[0]
			return handlers.Snapshots(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to deployment configuration file (required)")
	cmd.Flags().BoolVar(&opts.Keep, "keep", false, "Keep cloud snapshot data, remove only the records")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
