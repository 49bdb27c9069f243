// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the lectern CLI.
//
// The central type is [Command], a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. Commands are assembled into a tree in cmd/lectern/commands
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and help output with examples. Flag sets are
// usually built from tagged parameter structs with [FlagsFromParams].
//
// Unknown subcommands and flags get a "did you mean" suggestion based
// on Levenshtein distance (threshold: distance <= 3).
//
// Errors returned by commands are categorized with [ToolError]
// ([Validation], [NotFound], [Internal]); [ExitCode] maps them to
// process exit codes. [NewCommandLogger] builds the slog logger every
// command uses.
package cli
