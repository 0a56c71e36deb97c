package stl

import (
	"bytes"
	"encoding/binary"
	"io"
	gomath "math"
)

// binaryEncoder keeps the whole file in memory because the triangle count at
// offset 80 is only known once every facet has been seen.
type binaryEncoder struct {
	w      io.Writer
	buf    bytes.Buffer
	facet  [FacetSize]byte
	header bool
}

func newBinaryEncoder(w io.Writer) *binaryEncoder {
	return &binaryEncoder{w: w}
}

func (e *binaryEncoder) WriteHeader(header string) error {
	h := PadHeader(header)
	e.buf.Write(h[:])
	e.buf.Write([]byte{0, 0, 0, 0}) // count placeholder
	e.header = true
	return nil
}

func (e *binaryEncoder) WriteFacet(f Facet) error {
	b := e.facet[:]
	put3F32(b, f.Normal.Array())
	put3F32(b[12:], f.Vertices[0].Array())
	put3F32(b[24:], f.Vertices[1].Array())
	put3F32(b[36:], f.Vertices[2].Array())
	binary.LittleEndian.PutUint16(b[48:], 0)
	e.buf.Write(b)
	return nil
}

func (e *binaryEncoder) Finalize(count uint32) error {
	if !e.header {
		return ErrHeaderNotWritten
	}
	b := e.buf.Bytes()
	binary.LittleEndian.PutUint32(b[HeaderSize:PreambleSize], count)

	n, err := e.w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, gomath.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], gomath.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], gomath.Float32bits(f[2]))
}
