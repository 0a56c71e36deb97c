// Package export turns scene-walker calls into an STL triangle stream.
package export

import (
	"fmt"

	"github.com/Faultbox/stlexport/pkg/math"
)

// AttributeKind names a transform attribute sent by the scene walker.
type AttributeKind int

const (
	AttributeRotation    AttributeKind = iota // axis x, y, z, angle (radians)
	AttributeScale                            // sx, sy, sz
	AttributeTranslation                      // tx, ty, tz
)

// String returns the attribute name.
func (k AttributeKind) String() string {
	switch k {
	case AttributeRotation:
		return "rotation"
	case AttributeScale:
		return "scale"
	case AttributeTranslation:
		return "translation"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// arity is the number of values the attribute takes.
func (k AttributeKind) arity() int {
	if k == AttributeRotation {
		return 4
	}
	return 3
}

// TransformStack holds the cumulative object-to-world transform per nesting level.
// It always holds at least the initial identity.
type TransformStack struct {
	levels []math.Mat4
}

// NewTransformStack returns a stack holding one identity transform.
func NewTransformStack() *TransformStack {
	return &TransformStack{levels: []math.Mat4{math.Identity()}}
}

// Push duplicates the current transform. Later compositions change only the copy.
func (s *TransformStack) Push() {
	s.levels = append(s.levels, s.levels[len(s.levels)-1])
}

// Pop discards the current transform and restores the previous one.
func (s *TransformStack) Pop() error {
	if len(s.levels) == 1 {
		return ErrStackUnderflow
	}
	s.levels = s.levels[:len(s.levels)-1]
	return nil
}

// Current returns the transform applied to the next submitted geometry.
func (s *TransformStack) Current() math.Mat4 {
	return s.levels[len(s.levels)-1]
}

// Depth returns the number of levels, 1 when every push has been popped.
func (s *TransformStack) Depth() int {
	return len(s.levels)
}

// ComposeRotation right-multiplies an axis-angle rotation into the current transform.
func (s *TransformStack) ComposeRotation(a math.AxisAngle) {
	s.compose(math.Rotation(a))
}

// ComposeAttribute right-multiplies a scale or translation into the current transform.
func (s *TransformStack) ComposeAttribute(kind AttributeKind, x, y, z float32) error {
	var m math.Mat4
	switch kind {
	case AttributeScale:
		m = math.Scale(x, y, z)
	case AttributeTranslation:
		m = math.Translate(x, y, z)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, kind)
	}
	s.compose(m)
	return nil
}

func (s *TransformStack) compose(m math.Mat4) {
	top := len(s.levels) - 1
	s.levels[top] = s.levels[top].Mul(m)
}
