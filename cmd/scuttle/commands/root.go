// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the scuttle CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scuttle",
		Short: "Tear down deployment instances and their cloud resources",
	}

	cmd.AddCommand(Delete())
	cmd.AddCommand(Disks())
	cmd.AddCommand(Snapshots())
	cmd.AddCommand(Version())

	return cmd
}
