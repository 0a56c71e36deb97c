package stl

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/stlexport/pkg/math"
)

// textEncoder writes the readable layout straight through to the destination.
type textEncoder struct {
	w *bufio.Writer
}

func newTextEncoder(w io.Writer) *textEncoder {
	return &textEncoder{w: bufio.NewWriter(w)}
}

// WriteHeader starts the first line with "solid " so readers recognise the
// text layout whatever the caller's header says.
func (e *textEncoder) WriteHeader(header string) error {
	if !strings.HasPrefix(header+" ", "solid ") {
		header = "solid " + header
	}
	h := PadHeader(header)
	e.w.Write(h[:])
	return e.w.WriteByte('\n')
}

func (e *textEncoder) WriteFacet(f Facet) error {
	e.writePoint("facet normal", f.Normal)
	e.writePoint("outer loop\nvertex", f.Vertices[0])
	e.writePoint("vertex", f.Vertices[1])
	e.writePoint("vertex", f.Vertices[2])
	_, err := e.w.WriteString("endloop\nendfacet\n")
	return err
}

// Finalize ignores count: the text layout carries no triangle count.
func (e *textEncoder) Finalize(count uint32) error {
	if _, err := e.w.WriteString(textEndSolid + "\n"); err != nil {
		return err
	}
	return e.w.Flush()
}

// writePoint relies on bufio.Writer keeping the first error; it surfaces on
// the next checked write or on Flush.
func (e *textEncoder) writePoint(tag string, p math.Vec3) {
	e.w.WriteString(tag)
	for _, f := range p.Array() {
		e.w.WriteByte(' ')
		e.w.WriteString(formatFloat(f))
	}
	e.w.WriteByte('\n')
}

// formatFloat returns the shortest decimal that parses back to the same float32.
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
