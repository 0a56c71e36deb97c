package stl

import "io"

// Encoder serializes a facet stream. WriteHeader is called once before any
// facet and Finalize once after the last one.
type Encoder interface {
	WriteHeader(header string) error
	WriteFacet(f Facet) error
	Finalize(count uint32) error
}

// NewEncoder returns the encoder for mode writing to w.
// Unknown modes fall back to Binary.
func NewEncoder(mode Mode, w io.Writer) Encoder {
	if mode == Text {
		return newTextEncoder(w)
	}
	return newBinaryEncoder(w)
}
