// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package idgen produces slide and block identifiers.
//
// A Generator is a plain function so that it can be passed straight to
// the deck mutation API. Three kinds are available:
//
//   - UUID7: time-ordered RFC 9562 version 7 UUIDs. The default.
//   - Counter: "<prefix>-1", "<prefix>-2", ... Deterministic; used in
//     tests and for diff-friendly decks.
//   - Legacy: "<unix millis>-<7 base-36 characters>", the format of
//     decks written by earlier tools.
//
// None of the generators consult the document, so none can promise
// uniqueness against ids that were imported from a file. The session
// retries on collision.
package idgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/bureau-foundation/lectern/lib/clock"
)

// Generator returns a new identifier on each call.
type Generator func() string

// Kind names a generator in configuration and on the command line.
type Kind string

const (
	KindUUID7   Kind = "uuid7"
	KindCounter Kind = "counter"
	KindLegacy  Kind = "legacy"
)

// Kinds lists the accepted generator names.
var Kinds = []Kind{KindUUID7, KindCounter, KindLegacy}

// New returns the generator for kind. An empty kind selects UUID7.
func New(kind Kind, c clock.Clock) (Generator, error) {
	switch kind {
	case "", KindUUID7:
		return UUID7(), nil
	case KindCounter:
		return Counter("id"), nil
	case KindLegacy:
		return Legacy(c, nil), nil
	default:
		return nil, fmt.Errorf("unknown id generator %q (want one of %v)", kind, Kinds)
	}
}

// UUID7 returns a generator of version 7 UUIDs.
func UUID7() Generator {
	return func() string {
		id, err := uuid.NewV7()
		if err != nil {
			// NewV7 only fails when the random source does.
			return uuid.NewString()
		}
		return id.String()
	}
}

// Counter returns a generator of "<prefix>-N" ids starting at 1. It is
// safe for concurrent use.
func Counter(prefix string) Generator {
	var next atomic.Uint64
	return func() string {
		return prefix + "-" + strconv.FormatUint(next.Add(1), 10)
	}
}

const legacySuffixLength = 7

// Legacy returns a generator of "<unix millis>-<suffix>" ids, where the
// suffix is seven base-36 characters. A nil source uses the global
// random generator.
func Legacy(c clock.Clock, source rand.Source) Generator {
	intN := rand.IntN
	if source != nil {
		intN = rand.New(source).IntN
	}
	return func() string {
		suffix := make([]byte, legacySuffixLength)
		for index := range suffix {
			suffix[index] = strconv.FormatInt(int64(intN(36)), 36)[0]
		}
		return strconv.FormatInt(c.Now().UnixMilli(), 10) + "-" + string(suffix)
	}
}
