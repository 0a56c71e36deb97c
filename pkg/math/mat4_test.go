package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	if result != m {
		t.Errorf("M * I should equal M, got %v", result)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translate: got %v, want (5, 10, 15)", got)
	}
}

func TestTransformVec3(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 3, 4), Vec3{1, 2, 3}, Vec3{2, 6, 12}},
		{"identity", Identity(), Vec3{-1, 0.5, 7}, Vec3{-1, 0.5, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformVec3(tt.in); got != tt.want {
				t.Errorf("TransformVec3(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMulOrder(t *testing.T) {
	// Translate * Scale scales first, then translates.
	m := Translate(1, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformVec3(Vec3{1, 1, 1})
	want := Vec3{3, 2, 2}
	if got != want {
		t.Errorf("(T*S) p = %v, want %v", got, want)
	}

	// Scale * Translate translates first, then scales.
	m = Scale(2, 2, 2).Mul(Translate(1, 0, 0))
	got = m.TransformVec3(Vec3{1, 1, 1})
	want = Vec3{4, 2, 2}
	if got != want {
		t.Errorf("(S*T) p = %v, want %v", got, want)
	}
}

func TestRotationZ90(t *testing.T) {
	m := Rotation(AxisAngle{Axis: Vec3{0, 0, 1}, Angle: float32(math.Pi / 2)})
	result := m.TransformVec3(Vec3{1, 0, 0})

	// (1,0,0) rotated 90 degrees about Z is approximately (0,1,0)
	if abs(result.X) > 0.001 || abs(result.Y-1) > 0.001 || abs(result.Z) > 0.001 {
		t.Errorf("Rotation Z 90: got %v, want (0, 1, 0)", result)
	}
}

func TestRotationUnnormalizedAxis(t *testing.T) {
	a := Rotation(AxisAngle{Axis: Vec3{0, 5, 0}, Angle: 0.7})
	b := Rotation(AxisAngle{Axis: Vec3{0, 1, 0}, Angle: 0.7})
	if !a.ApproxEqual(b, 1e-6) {
		t.Errorf("axis length should not matter: %v vs %v", a, b)
	}
}

func TestRotationZeroAxis(t *testing.T) {
	m := Rotation(AxisAngle{Angle: 1.2})
	if m != Identity() {
		t.Errorf("zero axis should give identity, got %v", m)
	}
}

func TestApproxEqual(t *testing.T) {
	a := Identity()
	b := Identity()
	b[12] = 0.0005
	if !a.ApproxEqual(b, 0.001) {
		t.Error("expected matrices within tolerance to be equal")
	}
	if a.ApproxEqual(b, 0.0001) {
		t.Error("expected matrices outside tolerance to differ")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
