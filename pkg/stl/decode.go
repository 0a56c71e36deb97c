package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	solid "github.com/hschendel/stl"

	"github.com/Faultbox/stlexport/pkg/math"
)

// Mesh is a decoded STL file.
type Mesh struct {
	Header string
	Mode   Mode
	Facets []Facet
}

// Decode reads a binary or text STL file from r.
//
// Binary headers may start with "solid" too, so a file whose size matches the
// count at offset 80 is always decoded as binary.
func Decode(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !isBinary(data) {
		if text := bytes.TrimLeft(data, " \t\r\n"); bytes.HasPrefix(text, []byte("solid")) {
			return decodeText(text)
		}
	}
	return decodeBinary(data)
}

func isBinary(data []byte) bool {
	if len(data) < PreambleSize {
		return false
	}
	count := binary.LittleEndian.Uint32(data[HeaderSize:PreambleSize])
	return int64(len(data)) == BinarySize(count)
}

func decodeBinary(data []byte) (*Mesh, error) {
	if len(data) < PreambleSize {
		return nil, ErrTruncatedSTLData
	}
	count := binary.LittleEndian.Uint32(data[HeaderSize:PreambleSize])
	if int64(len(data)) < BinarySize(count) {
		return nil, fmt.Errorf("%w: %d triangles need %d bytes, have %d",
			ErrTruncatedSTLData, count, BinarySize(count), len(data))
	}

	header := strings.TrimRight(string(data[:HeaderSize]), " \x00")

	// The reader sniffs a leading "solid " as text. Mask it so binary files
	// with a conventional header are read as binary.
	if bytes.HasPrefix(data, []byte("solid")) {
		data = bytes.Clone(data)
		data[0] = 0
	}
	s, err := solid.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedSTLData, err)
	}
	return toMesh(s, header, Binary), nil
}

func decodeText(data []byte) (*Mesh, error) {
	s, err := solid.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedText, err)
	}
	header := strings.TrimRight("solid "+strings.TrimSpace(s.Name), " ")
	return toMesh(s, header, Text), nil
}

func toMesh(s *solid.Solid, header string, mode Mode) *Mesh {
	m := &Mesh{
		Header: header,
		Mode:   mode,
		Facets: make([]Facet, len(s.Triangles)),
	}
	for i, t := range s.Triangles {
		m.Facets[i] = Facet{
			Normal: vec(t.Normal[0], t.Normal[1], t.Normal[2]),
			Vertices: [3]math.Vec3{
				vec(t.Vertices[0][0], t.Vertices[0][1], t.Vertices[0][2]),
				vec(t.Vertices[1][0], t.Vertices[1][1], t.Vertices[1][2]),
				vec(t.Vertices[2][0], t.Vertices[2][1], t.Vertices[2][2]),
			},
		}
	}
	return m
}

func vec(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}
