package ephemeris

import (
	"math"

	"github.com/thurmanmarka/salat/internal/timeutil"
)

const (
	// EarthRadius is the Earth's equatorial radius in meters.
	EarthRadius = 6378140.0

	// polarRatio is b/a for the reference ellipsoid (p. 82).
	polarRatio = 0.99664719
)

// Window holds the samples for the day before, the day of and the day after
// the day being evaluated.
type Window [3]Sample

// Center returns the sample of the day being evaluated.
func (w Window) Center() Sample {
	return w[1]
}

// Observer is the part of a location the parallax correction needs.
type Observer struct {
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	Elevation float64 // meters above sea level
}

// Engine keeps the last computed window so that walking day by day costs a
// single Position call per step. An Engine is not safe for concurrent use;
// give each goroutine its own.
type Engine struct {
	window Window
	center float64
	primed bool

	computed int // Position calls made, for tests
}

// NewEngine returns an engine with an empty cache.
func NewEngine() *Engine {
	return &Engine{}
}

// Clone returns an independent copy of e, cache included.
func (e *Engine) Clone() *Engine {
	c := *e
	return &c
}

// Geocentric returns the geocentric window centred on jd, reusing cached
// samples when jd is adjacent to the previously requested day.
func (e *Engine) Geocentric(jd float64) Window {
	switch {
	case e.primed && e.center == jd-1:
		e.window[0] = e.window[1]
		e.window[1] = e.window[2]
		e.window[2] = e.position(jd + 1)
	case e.primed && e.center == jd+1:
		e.window[2] = e.window[1]
		e.window[1] = e.window[0]
		e.window[0] = e.position(jd - 1)
	case e.primed && e.center == jd:
	default:
		e.window[0] = e.position(jd - 1)
		e.window[1] = e.position(jd)
		e.window[2] = e.position(jd + 1)
	}
	e.center = jd
	e.primed = true
	return e.window
}

// Window returns both the geocentric window centred on jd and its
// topocentric counterpart for obs.
func (e *Engine) Window(jd float64, obs Observer) (geo, topo Window) {
	geo = e.Geocentric(jd)
	return geo, Topocentric(geo, obs)
}

func (e *Engine) position(jd float64) Sample {
	e.computed++
	return Position(jd)
}

// ColdWindow computes the window centred on jd without any cache.
func ColdWindow(jd float64) Window {
	return Window{Position(jd - 1), Position(jd), Position(jd + 1)}
}

// Topocentric applies the parallax correction for obs to every sample of w
// (p. 297, 40.2 and 40.3). RA stays unwrapped and DRA carries the RA shift
// in radians for the hour angle used by the rise/set solver.
func Topocentric(w Window, obs Observer) Window {
	var topo Window

	rLat := timeutil.Deg2Rad(obs.Latitude)

	// Geocentric position of the observer (p. 82).
	tU := math.Atan(polarRatio * math.Tan(rLat))
	tpSin := polarRatio*math.Sin(tU) + (obs.Elevation/EarthRadius)*math.Sin(rLat)
	tpCos := math.Cos(tU) + (obs.Elevation/EarthRadius)*math.Cos(rLat)

	for i, s := range w {
		lHour := timeutil.LimitAngle(s.Sidereal + obs.Longitude - s.RA)
		rlHour := timeutil.Deg2Rad(lHour)

		// Equatorial horizontal parallax.
		SP := timeutil.Deg2Rad(8.794 / (3600 * s.Radius))

		rDec := timeutil.Deg2Rad(s.Dec)

		tRA0 := (-tpCos * math.Sin(SP) * math.Sin(rlHour)) /
			(math.Cos(rDec) - tpCos*math.Sin(SP)*math.Cos(rlHour))

		tDEC := timeutil.Rad2Deg(math.Atan2(
			(math.Sin(rDec)-tpSin*math.Sin(SP))*math.Cos(tRA0),
			math.Cos(rDec)-tpCos*math.Sin(SP)*math.Cos(rlHour)))

		topo[i] = Sample{
			Day:      s.Day,
			RA:       s.RA + timeutil.Rad2Deg(tRA0),
			Dec:      tDEC,
			Sidereal: s.Sidereal,
			DRA:      tRA0,
			Radius:   s.Radius,
		}
	}
	return topo
}
