package terrain

import (
	"github.com/chewxy/math32"
)

// hashNoise is a deterministic pseudo-random value in [0, 1) for an integer
// lattice point. The seed offsets the lattice so different seeds produce
// unrelated terrains.
func hashNoise(x, y float32, seed int64) float32 {
	h := x*12.9898 + y*78.233 + float32(seed)*37.719
	s := math32.Sin(h) * 43758.5453
	return s - math32.Floor(s)
}

func smoothstep(t float32) float32 {
	return t * t * (3.0 - 2.0*t)
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// smoothNoise bilinearly interpolates lattice noise with smoothstep easing.
func smoothNoise(x, y float32, seed int64) float32 {
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)

	sx := smoothstep(x - x0)
	sy := smoothstep(y - y0)

	n00 := hashNoise(x0, y0, seed)
	n10 := hashNoise(x0+1, y0, seed)
	n01 := hashNoise(x0, y0+1, seed)
	n11 := hashNoise(x0+1, y0+1, seed)

	return lerp(lerp(n00, n10, sx), lerp(n01, n11, sx), sy)
}

// fractalNoise sums octaves of smooth noise. Returns a value roughly in [0, 1].
func fractalNoise(x, y float32, seed int64) float32 {
	var (
		total     float32
		amplitude float32 = 0.5
		frequency float32 = 1.0
		norm      float32
	)
	for octave := 0; octave < 5; octave++ {
		total += smoothNoise(x*frequency, y*frequency, seed) * amplitude
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2.0
	}
	return total / norm
}
