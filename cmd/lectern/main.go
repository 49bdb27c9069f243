// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Lectern presents, edits and converts terminal slide decks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/lectern/cmd/lectern/cli"
	"github.com/bureau-foundation/lectern/cmd/lectern/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own report (validate) return an
		// ExitError; don't add an "error:" line for those.
		if !cli.Silent(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(commands.OSStreams()).Execute(ctx, os.Args[1:])
}
