// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteDeck writes content to name inside a fresh temporary directory
// and returns the file's path. The directory is removed when the test
// completes.
func WriteDeck(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing deck %s: %v", path, err)
	}
	return path
}
