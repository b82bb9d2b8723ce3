// Package gob provides a gob codec implementation. It is the natural
// default for snapshot cloning: no tags required, and it round-trips most
// Go values that only use exported fields.
package gob

import (
	"bytes"
	"encoding/gob"

	"github.com/zoobzio/dupe"
)

// gobCodec implements dupe.Codec for gob.
type gobCodec struct{}

// New returns a gob codec.
func New() dupe.Codec {
	return &gobCodec{}
}

// ContentType returns the MIME type for gob.
func (c *gobCodec) ContentType() string {
	return "application/x-gob"
}

// Marshal encodes v as a gob stream.
func (c *gobCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a gob stream into v.
func (c *gobCodec) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
