package renderer

import "testing"

func TestClampScaleMatchesQualityBounds(t *testing.T) {
	cases := []struct {
		name     string
		scale    float32
		maxScale float32
		expected float32
	}{
		{"within bounds", 0.8, 2, 0.8},
		{"below floor", 0.1, 2, 0.5},
		{"above content scale", 2.5, 2, 2},
		{"content scale above 2", 2.5, 3, 2.5},
		{"content scale below 1 raised", 1.5, 0.5, 1},
		{"at floor", 0.5, 1, 0.5},
	}
	for _, tc := range cases {
		if got := clampScale(tc.scale, tc.maxScale); got != tc.expected {
			t.Errorf("%s: clampScale(%v, %v) = %v, expected %v",
				tc.name, tc.scale, tc.maxScale, got, tc.expected)
		}
	}
}
