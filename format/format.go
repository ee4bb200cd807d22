// Package format renders parsed documents and parse failures for the
// command line.
package format

import (
	"encoding"
	"fmt"
	"io"
)

// Encoder writes one document per Encode call. MarshalText returns the
// rendering of the last document encoded.
type Encoder interface {
	encoding.TextMarshaler
	Encode(doc any) error
}

// New returns the encoder called name: "json" or "text".
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "text":
		return NewTextEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}
