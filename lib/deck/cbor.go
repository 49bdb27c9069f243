// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"bytes"
	"encoding/json"

	"github.com/bureau-foundation/lectern/lib/codec"
)

// blockCBOR is the canonical CBOR shape of a block. The variant payload
// is nested under "content" so that the type tag and the payload are
// encoded independently of the JSON member order.
type blockCBOR struct {
	ID          string    `cbor:"id"`
	Type        BlockType `cbor:"type"`
	ArticleOnly bool      `cbor:"articleOnly,omitempty"`
	Content     any       `cbor:"content,omitempty"`
}

// MarshalCBOR encodes the block deterministically. Unknown payloads are
// encoded as compacted JSON text per member, so whitespace differences
// in the source file do not change the encoding.
func (block Block) MarshalCBOR() ([]byte, error) {
	encoded := blockCBOR{
		ID:          block.ID,
		Type:        block.Type(),
		ArticleOnly: block.ArticleOnly,
	}
	switch content := block.Content.(type) {
	case Unknown:
		fields := make(map[string]string, len(content.Fields))
		for name, raw := range content.Fields {
			fields[name] = compactJSON(raw)
		}
		encoded.Content = fields
	case nil:
	default:
		encoded.Content = content
	}
	return codec.Marshal(encoded)
}

func compactJSON(raw json.RawMessage) string {
	var buffer bytes.Buffer
	if err := json.Compact(&buffer, raw); err != nil {
		return string(raw)
	}
	return buffer.String()
}
