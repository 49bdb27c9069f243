// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/lectern/lib/codec"
	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/idgen"
)

// ErrLastSlide is returned when removing the only remaining slide.
var ErrLastSlide = errors.New("cannot remove the last slide")

// ErrNoSlide is returned by [Session.SlideAt] for an index outside the
// deck, including any index of an empty deck.
var ErrNoSlide = errors.New("no slide at that position")

// Config holds the collaborators of a Session.
type Config struct {
	// IDs generates slide and block ids. Defaults to idgen.UUID7.
	IDs idgen.Generator

	// Logger receives debug records for every change. Defaults to a
	// discarding logger.
	Logger *slog.Logger

	// Source is the file the document was loaded from, if any.
	Source string
}

// Session is the authoritative document plus its editing guards.
type Session struct {
	document deck.Presentation
	ids      idgen.Generator
	logger   *slog.Logger
	source   string
	revision uint64
	saved    Fingerprint

	// fingerprint is the hash of document at fingerprintRevision.
	fingerprint         Fingerprint
	fingerprintRevision uint64
}

// New returns a session holding document. The initial document counts
// as saved.
func New(document deck.Presentation, config Config) *Session {
	if config.IDs == nil {
		config.IDs = idgen.UUID7()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	session := &Session{
		document: document,
		ids:      config.IDs,
		logger:   config.Logger,
		source:   config.Source,
	}
	session.fingerprint = fingerprintOf(document)
	session.saved = session.fingerprint
	return session
}

// Presentation returns the current document. The value shares structure
// with the session's state and must be treated as read-only.
func (session *Session) Presentation() deck.Presentation {
	return session.document
}

// Revision counts the changes applied since the session was created.
func (session *Session) Revision() uint64 {
	return session.revision
}

// Source returns the path the document was last loaded from.
func (session *Session) Source() string {
	return session.source
}

// SlideAt returns the slide at index.
func (session *Session) SlideAt(index int) (*deck.Slide, error) {
	if index < 0 || index >= len(session.document.Slides) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoSlide, index, len(session.document.Slides))
	}
	return session.document.Slides[index], nil
}

// AddSlide inserts a default slide and returns its id.
func (session *Session) AddSlide(at deck.Position) string {
	next, slideID, _ := deck.AddSlide(session.document, session.newID(), at)
	session.apply("add slide", next, slog.String("slide", slideID))
	return slideID
}

// RemoveSlide removes a slide. Removing the only slide fails with
// ErrLastSlide; an unknown id is a no-op.
func (session *Session) RemoveSlide(id string) error {
	if _, index := session.document.SlideByID(id); index < 0 {
		return nil
	}
	if len(session.document.Slides) <= 1 {
		return ErrLastSlide
	}
	session.apply("remove slide", deck.RemoveSlide(session.document, id), slog.String("slide", id))
	return nil
}

// MoveSlide shifts a slide one place.
func (session *Session) MoveSlide(id string, direction deck.Direction) {
	session.apply("move slide", deck.MoveSlide(session.document, id, direction),
		slog.String("slide", id), slog.String("direction", direction.String()))
}

// UpdateSlide merges patch into a slide.
func (session *Session) UpdateSlide(id string, patch deck.SlidePatch) {
	session.apply("update slide", deck.UpdateSlide(session.document, id, patch), slog.String("slide", id))
}

// AddBlock inserts a default block and returns its id, or "" when the
// slide or the type is unknown.
func (session *Session) AddBlock(slideID string, blockType deck.BlockType, at deck.Position) string {
	next, blockID := deck.AddBlock(session.document, slideID, blockType, session.newID(), at)
	session.apply("add block", next, slog.String("slide", slideID), slog.String("block", blockID))
	return blockID
}

// RemoveBlock removes a block from a slide.
func (session *Session) RemoveBlock(slideID, blockID string) {
	session.apply("remove block", deck.RemoveBlock(session.document, slideID, blockID),
		slog.String("slide", slideID), slog.String("block", blockID))
}

// MoveBlock shifts a block one place within its slide.
func (session *Session) MoveBlock(slideID, blockID string, direction deck.Direction) {
	session.apply("move block", deck.MoveBlock(session.document, slideID, blockID, direction),
		slog.String("slide", slideID), slog.String("block", blockID))
}

// UpdateBlock merges patch into a block.
func (session *Session) UpdateBlock(slideID, blockID string, patch deck.BlockPatch) {
	session.apply("update block", deck.UpdateBlock(session.document, slideID, blockID, patch),
		slog.String("slide", slideID), slog.String("block", blockID))
}

// Replace swaps in a whole new document, as import and file reloads do.
func (session *Session) Replace(document deck.Presentation, source string) {
	session.source = source
	session.apply("replace", document, slog.String("source", source), slog.Int("slides", len(document.Slides)))
}

// Import parses data and replaces the document with it. On error the
// session is unchanged.
func (session *Session) Import(data []byte, source string) error {
	document, err := deck.Import(data)
	if err != nil {
		return err
	}
	session.Replace(document, source)
	return nil
}

// ImportFile reads and imports the deck at path.
func (session *Session) ImportFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := session.Import(data, path); err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	return nil
}

// Export writes the current document as JSON to w.
func (session *Session) Export(w io.Writer) error {
	data, err := deck.Export(session.document)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Dirty reports whether the document differs from the last saved one.
func (session *Session) Dirty() bool {
	return session.Fingerprint() != session.saved
}

// MarkSaved records fingerprint as the saved state. Callers pass the
// fingerprint of the snapshot they wrote, which may predate later
// edits.
func (session *Session) MarkSaved(fingerprint Fingerprint) {
	session.saved = fingerprint
}

// Fingerprint returns the content hash of the current document. The
// hash is recomputed only after the revision changes, so views can ask
// for it on every frame.
func (session *Session) Fingerprint() Fingerprint {
	if session.fingerprintRevision != session.revision {
		session.fingerprint = fingerprintOf(session.document)
		session.fingerprintRevision = session.revision
	}
	return session.fingerprint
}

// apply installs next if it differs from the current document.
func (session *Session) apply(operation string, next deck.Presentation, attributes ...slog.Attr) {
	if deck.Identical(next, session.document) {
		session.logger.Debug("no-op "+operation, attributesToArgs(attributes)...)
		return
	}
	session.document = next
	session.revision++
	session.logger.Debug(operation, append(attributesToArgs(attributes), "revision", session.revision)...)
}

func attributesToArgs(attributes []slog.Attr) []any {
	args := make([]any, len(attributes))
	for index, attribute := range attributes {
		args[index] = attribute
	}
	return args
}

// newID returns a generator that skips ids already used in the document
// or already issued during the current operation. A generator that
// returns the same id twice in a row can never get past a taken id, so
// that panics.
func (session *Session) newID() func() string {
	used := session.document.UsedIDs()
	return func() string {
		previous, retried := "", false
		for {
			id := session.ids()
			if !used[id] {
				used[id] = true
				return id
			}
			if retried && id == previous {
				panic(fmt.Sprintf("session: id generator returned taken id %q twice in a row", id))
			}
			previous, retried = id, true
		}
	}
}

// Fingerprint is a BLAKE3-256 digest of a document's canonical CBOR
// encoding.
type Fingerprint [32]byte

// fingerprintOf is FingerprintOf; tests count calls through it.
var fingerprintOf = FingerprintOf

// FingerprintOf hashes document.
func FingerprintOf(document deck.Presentation) Fingerprint {
	hasher := blake3.New()
	if err := codec.NewEncoder(hasher).Encode(document); err != nil {
		// The document model contains only strings, ints, bools and
		// raw JSON; encoding cannot fail for values built by lib/deck.
		panic(fmt.Sprintf("session: encoding document for fingerprint: %v", err))
	}
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint
}

// String returns the first 12 hex digits.
func (fingerprint Fingerprint) String() string {
	return hex.EncodeToString(fingerprint[:6])
}
