package render

import (
	"math"
	"testing"
)

func TestOrbitEye(t *testing.T) {
	cases := []struct {
		yaw, pitch, dist float32
	}{
		{0, 0, 10},
		{0.6, 0.5, 20},
		{-1.2, 0.9, 5},
		{3.0, -0.4, 7},
	}
	for _, tc := range cases {
		got := orbitEye(tc.yaw, tc.pitch, tc.dist)

		cy := float32(math.Cos(float64(tc.yaw)))
		sy := float32(math.Sin(float64(tc.yaw)))
		cp := float32(math.Cos(float64(tc.pitch)))
		sp := float32(math.Sin(float64(tc.pitch)))

		if diff(got.X, tc.dist*cp*sy) > 1e-3 ||
			diff(got.Y, tc.dist*sp) > 1e-3 ||
			diff(got.Z, tc.dist*cp*cy) > 1e-3 {
			t.Errorf("orbitEye(%v, %v, %v) = %v", tc.yaw, tc.pitch, tc.dist, got)
		}
		if diff(got.Length(), tc.dist) > 1e-3 {
			t.Errorf("camera left the orbit sphere: |%v| = %f, want %f",
				got, got.Length(), tc.dist)
		}
	}
}

func diff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
