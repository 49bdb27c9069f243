// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// Exit codes for categorized errors.
const (
	ExitFailure    = 1
	ExitValidation = 2
	ExitNotFound   = 3
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output, as `lectern validate` does when it lists problems.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode returns the process exit code for err: 0 for nil, the
// code of an [ExitError], a per-category code for a [ToolError], and
// [ExitFailure] otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		switch toolError.Category {
		case CategoryValidation:
			return ExitValidation
		case CategoryNotFound:
			return ExitNotFound
		}
	}
	return ExitFailure
}

// Silent reports whether err already produced its own output.
func Silent(err error) bool {
	var exitError *ExitError
	return errors.As(err, &exitError)
}
