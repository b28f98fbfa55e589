package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single cell overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{3, 4}

	if got := v.Length(); got != 5 {
		t.Errorf("Length() = %v, expected 5", got)
	}

	n := v.Normalized()
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("Normalized().Length() = %v, expected 1", n.Length())
	}

	zero := Vec2{}.Normalized()
	if zero.X != 0 || zero.Y != 0 {
		t.Errorf("zero vector normalized = %v, expected zero", zero)
	}

	sum := v.Add(Vec2{1, -1})
	if sum.X != 4 || sum.Y != 3 {
		t.Errorf("Add = %v, expected {4 3}", sum)
	}

	scaled := v.Scale(2)
	if scaled.X != 6 || scaled.Y != 8 {
		t.Errorf("Scale = %v, expected {6 8}", scaled)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		x, y  float64
	}{
		{"east", 0, 1, 0},
		{"south", math.Pi / 2, 0, 1},
		{"west", math.Pi, -1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := Heading(tc.angle)
			if math.Abs(h.X-tc.x) > 1e-9 || math.Abs(h.Y-tc.y) > 1e-9 {
				t.Errorf("Heading(%v) = %v, expected {%v %v}", tc.angle, h, tc.x, tc.y)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		val, size, expected float64
	}{
		{5, 10, 5},    // within range
		{12, 10, 2},   // past the edge
		{-3, 10, 7},   // negative wraps around
		{10, 10, 0},   // exactly at size
		{-13, 10, 7},  // multiple wraps negative
		{25, 10, 5},   // multiple wraps positive
		{3, 0, 3},     // degenerate size
	}

	for _, tc := range tests {
		if got := Wrap(tc.val, tc.size); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Wrap(%v, %v) = %v, expected %v", tc.val, tc.size, got, tc.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{10, 20}

	mid := Lerp(a, b, 0.5)
	if mid.X != 5 || mid.Y != 10 {
		t.Errorf("Lerp(a, b, 0.5) = %v, expected {5 10}", mid)
	}
	if start := Lerp(a, b, 0); start != a {
		t.Errorf("Lerp(a, b, 0) = %v, expected %v", start, a)
	}
	if end := Lerp(a, b, 1); end != b {
		t.Errorf("Lerp(a, b, 1) = %v, expected %v", end, b)
	}
}
