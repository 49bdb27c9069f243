// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	_ "embed"
	"fmt"
)

//go:embed default.json
var defaultDeck []byte

// Default returns the bundled presentation shown when no file is given.
// Each call parses a fresh copy.
func Default() Presentation {
	presentation, err := Import(defaultDeck)
	if err != nil {
		panic(fmt.Sprintf("deck: bundled default deck is invalid: %v", err))
	}
	return presentation
}
