package export

import (
	"fmt"
	"io"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/stlexport/pkg/math"
	"github.com/Faultbox/stlexport/pkg/stl"
)

// Options configures one export session.
type Options struct {
	Header string      // Written to the 80-byte header, padded or truncated
	Mode   stl.Mode    // Binary or Text, fixed for the session
	Logger *zap.Logger // Optional; defaults to a no-op logger
}

// Selection is an optional set of polygon indices. A nil Selection selects
// every polygon.
type Selection map[int]bool

// Select returns a Selection holding indices.
func Select(indices ...int) Selection {
	s := make(Selection, len(indices))
	for _, i := range indices {
		s[i] = true
	}
	return s
}

// Contains reports whether polygon i is selected.
func (s Selection) Contains(i int) bool {
	return s == nil || s[i]
}

// Mesh is one geometry submission from the scene walker. The buffers are
// only read during SubmitMesh.
type Mesh struct {
	Vertices []math.Vec3

	// Normals are accepted for interface compatibility but never used;
	// facet normals are recomputed from the transformed corners.
	Normals            []math.Vec3
	Polygons           []Polygon
	PolygonCount       int // Polygons considered; 0 means len(Polygons)
	Selection          Selection
	MaxVertsPerPolygon int // 3 or 4
}

type sessionState int

const (
	stateNew sessionState = iota
	stateOpen
	stateClosed
)

// Session is a single export. It is not safe for concurrent use and cannot be
// reused once End has been called.
type Session struct {
	opts  Options
	log   *zap.Logger
	enc   stl.Encoder
	stack *TransformStack

	state      sessionState
	err        error // first write failure; the session is dead after it
	triangles  uint32
	degenerate int
	meshes     int
	scratch    []stl.Facet
}

// NewSession creates a session that writes the finished file to w.
func NewSession(opts Options, w io.Writer) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		opts:  opts,
		log:   log,
		enc:   stl.NewEncoder(opts.Mode, w),
		stack: NewTransformStack(),
	}
}

// Begin writes the header and resets the transform stack to identity.
func (s *Session) Begin() error {
	switch s.state {
	case stateOpen:
		return ErrAlreadyStarted
	case stateClosed:
		return ErrSessionClosed
	}
	if err := s.enc.WriteHeader(s.opts.Header); err != nil {
		return s.fail(err)
	}
	s.stack = NewTransformStack()
	s.state = stateOpen
	s.log.Debug("export started",
		zap.Stringer("mode", s.opts.Mode),
		zap.String("header", s.opts.Header))
	return nil
}

// PushTransform saves the current transform for a nested scene level.
func (s *Session) PushTransform() error {
	if err := s.check(); err != nil {
		return err
	}
	s.stack.Push()
	return nil
}

// PopTransform restores the transform saved by the matching PushTransform.
// Popping more than was pushed ends the session.
func (s *Session) PopTransform() error {
	if err := s.check(); err != nil {
		return err
	}
	if err := s.stack.Pop(); err != nil {
		return s.fail(fmt.Errorf("pop at mesh %d: %w", s.meshes, err))
	}
	return nil
}

// ApplyAttribute composes a rotation (axis x, y, z, angle), scale (x, y, z)
// or translation (x, y, z) into the current transform. A malformed attribute
// ends the session.
func (s *Session) ApplyAttribute(kind AttributeKind, values ...float32) error {
	if err := s.check(); err != nil {
		return err
	}
	if len(values) != kind.arity() {
		return s.fail(fmt.Errorf("%w: %s takes %d, got %d", ErrAttributeArity, kind, kind.arity(), len(values)))
	}
	if kind == AttributeRotation {
		s.stack.ComposeRotation(math.AxisAngle{
			Axis:  math.Vec3{X: values[0], Y: values[1], Z: values[2]},
			Angle: values[3],
		})
		return nil
	}
	if err := s.stack.ComposeAttribute(kind, values[0], values[1], values[2]); err != nil {
		return s.fail(err)
	}
	return nil
}

// CurrentTransform returns the transform applied to the next submitted mesh.
func (s *Session) CurrentTransform() math.Mat4 {
	return s.stack.Current()
}

// SubmitMesh writes the facets of every selected polygon of m under the
// current transform.
func (s *Session) SubmitMesh(m Mesh) error {
	if err := s.check(); err != nil {
		return err
	}

	n := len(m.Polygons)
	if m.PolygonCount > 0 && m.PolygonCount < n {
		n = m.PolygonCount
	}

	xf := s.stack.Current()
	var written uint32
	var dropped int
	for i := 0; i < n; i++ {
		if !m.Selection.Contains(i) {
			continue
		}
		var d int
		s.scratch, d = BuildFacets(s.scratch[:0], m.Vertices, m.Polygons[i], m.MaxVertsPerPolygon, xf)
		dropped += d
		for _, f := range s.scratch {
			if s.triangles == gomath.MaxUint32 {
				return s.fail(stl.ErrTooManyTriangles)
			}
			if err := s.enc.WriteFacet(f); err != nil {
				return s.fail(err)
			}
			s.triangles++
			written++
		}
	}

	s.meshes++
	s.degenerate += dropped
	s.log.Debug("mesh submitted",
		zap.Int("mesh", s.meshes),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("polygons", n),
		zap.Uint32("facets", written),
		zap.Int("degenerate", dropped),
		zap.Int("depth", s.stack.Depth()))
	return nil
}

// End finalizes the file and returns the number of triangles written. In
// binary mode this is the moment the bytes reach the destination.
func (s *Session) End() (uint32, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	s.state = stateClosed

	if d := s.stack.Depth(); d != 1 {
		s.err = fmt.Errorf("%w: depth %d", ErrUnbalancedTransforms, d)
		return 0, s.err
	}
	if err := s.enc.Finalize(s.triangles); err != nil {
		s.err = err
		return 0, err
	}

	fields := []zap.Field{
		zap.Uint32("triangles", s.triangles),
		zap.Int("meshes", s.meshes),
		zap.Int("degenerate", s.degenerate),
		zap.Stringer("mode", s.opts.Mode),
	}
	if s.opts.Mode == stl.Binary {
		fields = append(fields, zap.Int64("bytes", stl.BinarySize(s.triangles)))
	}
	s.log.Info("export finished", fields...)
	return s.triangles, nil
}

// Triangles returns the number of facets written so far.
func (s *Session) Triangles() uint32 {
	return s.triangles
}

// Degenerate returns the number of zero-area facets dropped so far.
func (s *Session) Degenerate() int {
	return s.degenerate
}

// check rejects calls outside Begin..End and after a failure.
func (s *Session) check() error {
	if s.err != nil {
		return s.err
	}
	switch s.state {
	case stateNew:
		return ErrNotStarted
	case stateClosed:
		return ErrSessionClosed
	}
	return nil
}

func (s *Session) fail(err error) error {
	s.err = err
	s.state = stateClosed
	s.log.Error("export failed", zap.Error(err))
	return err
}
