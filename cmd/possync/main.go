// Package main provides the entry point for the possync CLI tool.
package main

import "github.com/storeops/possync/cmd/possync/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
