// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for Lectern.
//
// Configuration is loaded from a single file specified by either the
// LECTERN_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. When neither is given the command line
// runs on [Default].
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variables override config values; command-line flags do.
//
// Key exports:
//
//   - [Config] -- theme, view, id generator, export directory, watch
//     and gesture settings
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other Lectern packages.
package config
