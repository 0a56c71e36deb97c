// Package stl encodes and decodes stereolithography (STL) triangle meshes.
//
// Binary layout (little-endian):
//
//	bytes 0..79   header, space padded
//	bytes 80..83  uint32 triangle count
//	per triangle  12 float32 (normal, v0, v1, v2) + uint16 attribute
package stl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/stlexport/pkg/math"
)

// Binary layout sizes.
const (
	HeaderSize   = 80
	PreambleSize = HeaderSize + 4
	FacetSize    = 12*4 + 2
	textEndSolid = "endsolid model"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrMalformedText    = errors.New("malformed text STL")
	ErrHeaderNotWritten = errors.New("STL header not written")
	ErrUnknownMode      = errors.New("unknown STL mode")
	ErrTooManyTriangles = errors.New("triangle count exceeds STL limit")
)

// Mode selects the output encoding.
type Mode int

const (
	Binary Mode = iota // Compact little-endian layout
	Text               // Human-readable "facet normal ..." layout
)

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case Binary:
		return "binary"
	case Text:
		return "ascii"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "bin", "":
		return Binary, nil
	case "ascii", "text", "debug":
		return Text, nil
	default:
		return Binary, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler so a Mode reads naturally in YAML.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Facet is one triangle with its own unit normal.
type Facet struct {
	Normal   math.Vec3
	Vertices [3]math.Vec3
}

// PadHeader returns s space padded or truncated to exactly HeaderSize bytes.
func PadHeader(s string) [HeaderSize]byte {
	var h [HeaderSize]byte
	n := copy(h[:], s)
	for i := n; i < HeaderSize; i++ {
		h[i] = ' '
	}
	return h
}

// BinarySize returns the size in bytes of a binary STL file holding count triangles.
func BinarySize(count uint32) int64 {
	return PreambleSize + FacetSize*int64(count)
}
