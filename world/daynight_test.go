package world

import (
	"testing"

	"github.com/chewxy/math32"

	"world-engine/scene"
)

func TestSetTimeOfDayClamps(t *testing.T) {
	dn := NewDayNight()

	dn.SetTimeOfDay(1.7)
	if dn.Time != 1 {
		t.Errorf("above range: expected clamp to 1, got %v", dn.Time)
	}

	dn.SetTimeOfDay(-0.3)
	if dn.Time != 0 {
		t.Errorf("below range: expected clamp to 0, got %v", dn.Time)
	}

	dn.SetTimeOfDay(0.42)
	if dn.Time != 0.42 {
		t.Errorf("in range: expected 0.42, got %v", dn.Time)
	}
}

func TestUpdateWrapsAroundMidcycle(t *testing.T) {
	dn := NewDayNight()
	dn.Speed = 10
	dn.Time = 0.95

	dn.Update(1) // +0.1 of the cycle
	if dn.Time < 0 || dn.Time >= 0.1 {
		t.Errorf("expected wrap into [0, 0.1), got %v", dn.Time)
	}
}

func TestUpdateInactiveHoldsTime(t *testing.T) {
	dn := NewDayNight()
	dn.Active = false
	dn.Time = 0.3

	dn.Update(100)
	if dn.Time != 0.3 {
		t.Errorf("inactive: expected time held at 0.3, got %v", dn.Time)
	}
}

func TestApplyNoonVsMidnight(t *testing.T) {
	s := scene.NewScene()
	dn := NewDayNight()

	dn.SetTimeOfDay(0) // noon
	dn.Apply(s)
	noonSky := s.SkyColor

	dn.SetTimeOfDay(0.5) // midnight
	dn.Apply(s)
	midnightSky := s.SkyColor

	if midnightSky.R >= noonSky.R || midnightSky.B >= noonSky.B {
		t.Errorf("expected midnight sky darker than noon: %+v vs %+v", midnightSky, noonSky)
	}
}

func TestSunOverheadAtNoon(t *testing.T) {
	dn := NewDayNight()
	dn.SetTimeOfDay(0)

	sun := dn.Sun()
	if sun.Direction.Y() >= 0 {
		t.Errorf("noon: expected sun shining downward, direction %v", sun.Direction)
	}
	if math32.Abs(sun.Direction.Len()-1) > 0.001 {
		t.Errorf("expected unit sun direction, length %v", sun.Direction.Len())
	}
	if sun.Intensity <= dnAt(0.5).Intensity {
		t.Error("expected noon sun brighter than midnight")
	}
}

func dnAt(t float32) Sun {
	dn := NewDayNight()
	dn.SetTimeOfDay(t)
	return dn.Sun()
}

func TestClockFormat(t *testing.T) {
	dn := NewDayNight()
	dn.SetTimeOfDay(0)
	if got := dn.Clock(); got != "12:00 AM" {
		t.Errorf("clock at t=0: expected 12:00 AM, got %q", got)
	}
	dn.SetTimeOfDay(0.5)
	if got := dn.Clock(); got != "12:00 PM" {
		t.Errorf("clock at t=0.5: expected 12:00 PM, got %q", got)
	}
}
