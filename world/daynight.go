package world

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/core"
	"world-engine/scene"
)

// dayPalette holds the sky/light values for one key time of day.
type dayPalette struct {
	t            float32 // normalised time 0..1
	sky          core.Color
	ambient      core.Color
	sunColor     core.Color
	sunIntensity float32
}

// palettes defines the key sky/light states throughout the day.
// t is ordered 0..1 and wraps (0 == 1).
var palettes = []dayPalette{
	{ // 0.00 noon
		t:            0.00,
		sky:          core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1},
		ambient:      core.Color{R: 0.16, G: 0.18, B: 0.26, A: 1},
		sunColor:     core.Color{R: 1.00, G: 0.98, B: 0.92, A: 1},
		sunIntensity: 1.20,
	},
	{ // 0.22 golden hour
		t:            0.22,
		sky:          core.Color{R: 0.90, G: 0.52, B: 0.18, A: 1},
		ambient:      core.Color{R: 0.10, G: 0.12, B: 0.20, A: 1},
		sunColor:     core.Color{R: 1.00, G: 0.65, B: 0.25, A: 1},
		sunIntensity: 0.90,
	},
	{ // 0.30 dusk
		t:            0.30,
		sky:          core.Color{R: 0.50, G: 0.22, B: 0.28, A: 1},
		ambient:      core.Color{R: 0.06, G: 0.07, B: 0.14, A: 1},
		sunColor:     core.Color{R: 0.70, G: 0.40, B: 0.55, A: 1},
		sunIntensity: 0.25,
	},
	{ // 0.50 midnight
		t:            0.50,
		sky:          core.Color{R: 0.04, G: 0.04, B: 0.08, A: 1},
		ambient:      core.Color{R: 0.03, G: 0.04, B: 0.09, A: 1},
		sunColor:     core.Color{R: 0.40, G: 0.45, B: 0.65, A: 1}, // moonlight
		sunIntensity: 0.12,
	},
	{ // 0.78 sunrise
		t:            0.78,
		sky:          core.Color{R: 0.88, G: 0.45, B: 0.22, A: 1},
		ambient:      core.Color{R: 0.09, G: 0.10, B: 0.17, A: 1},
		sunColor:     core.Color{R: 1.00, G: 0.60, B: 0.28, A: 1},
		sunIntensity: 0.70,
	},
}

// Sun is the directional light state derived from the time of day.
type Sun struct {
	Direction mgl32.Vec3
	Color     core.Color
	Intensity float32
}

// DayNight drives the animated day/night cycle.
type DayNight struct {
	Time   float32 // 0..1: 0=noon, 0.25=sunset, 0.5=midnight, 0.75=sunrise
	Speed  float32 // full-cycle duration in seconds
	Active bool    // auto-advance when true
}

func NewDayNight() *DayNight {
	return &DayNight{
		Time:   0.0, // start at noon
		Speed:  120.0,
		Active: true,
	}
}

func (dn *DayNight) Update(dt float32) {
	if !dn.Active {
		return
	}
	dn.Time += dt / dn.Speed
	if dn.Time > 1.0 {
		dn.Time -= 1.0
	}
}

// SetTimeOfDay sets the cycle position. Out-of-range values are clamped to
// the nearest end of [0, 1] rather than rejected.
func (dn *DayNight) SetTimeOfDay(t float32) {
	dn.Time = mgl32.Clamp(t, 0, 1)
}

// samplePalette returns a linearly interpolated palette for the given time.
func samplePalette(t float32) dayPalette {
	n := len(palettes)
	var a, b dayPalette
	var localT float32
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		ta := palettes[i].t
		tb := palettes[next].t
		if next == 0 {
			// wrap segment: last key back to noon (1.0 == 0.0)
			if t >= ta || t < palettes[0].t {
				a = palettes[i]
				b = palettes[0]
				if t >= ta {
					localT = (t - ta) / (1.0 - ta)
				} else {
					localT = (t + 1.0 - ta) / (1.0 - ta)
				}
				break
			}
		} else if t >= ta && t < tb {
			a = palettes[i]
			b = palettes[next]
			localT = (t - ta) / (tb - ta)
			break
		}
	}

	return dayPalette{
		sky:          a.sky.Lerp(b.sky, localT),
		ambient:      a.ambient.Lerp(b.ambient, localT),
		sunColor:     a.sunColor.Lerp(b.sunColor, localT),
		sunIntensity: a.sunIntensity + (b.sunIntensity-a.sunIntensity)*localT,
	}
}

// Apply pushes the current sky and ambient colours into the scene.
func (dn *DayNight) Apply(s *scene.Scene) {
	p := samplePalette(dn.Time)
	s.Ambient = p.ambient
	s.SkyColor = p.sky
}

// Sun returns the directional light for the current time. The direction does
// a full rotation over the cycle, tilted slightly along Z.
func (dn *DayNight) Sun() Sun {
	p := samplePalette(dn.Time)
	angle := dn.Time * 2 * math32.Pi
	dir := mgl32.Vec3{
		math32.Sin(angle),
		-math32.Cos(angle), // -1 = noon (overhead), +1 = midnight
		0.35,
	}.Normalize()
	return Sun{Direction: dir, Color: p.sunColor, Intensity: p.sunIntensity}
}

// Clock returns a human-readable time label.
func (dn *DayNight) Clock() string {
	hours := dn.Time * 24.0
	h := int(hours) % 24
	m := int((hours - float32(int(hours))) * 60)
	period := "AM"
	displayH := h
	if h == 0 {
		displayH = 12
	} else if h == 12 {
		period = "PM"
	} else if h > 12 {
		displayH = h - 12
		period = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", displayH, m, period)
}
