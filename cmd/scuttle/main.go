// Package main is the entry point for the scuttle CLI.
//
// scuttle tears down deployment instances and the cloud resources they
// own: VMs, persistent disks, snapshots, DNS records, network
// reservations, and rendered artifacts in the blobstore.
//
// Commands: delete, disks, snapshots, version.
//
// For detailed usage information, run:
//
//	scuttle --help
package main

import (
	"fmt"
	"os"

	"github.com/mfeldt/scuttle/cmd/scuttle/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
