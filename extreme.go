package salat

import (
	"github.com/thurmanmarka/salat/internal/ephemeris"
)

// extremeInput is what an extreme latitude rule may consult besides the
// directly solved day.
type extremeInput struct {
	loc      Location
	m        Method
	jd       float64
	yearDays int
	topo     ephemeris.Window
}

// extremeRule rewrites d in place.
type extremeRule func(c *Calculator, in *extremeInput, d *day)

// scope is the set of prayers a rule replaces.
type scope int

const (
	// every prayer, always
	scopeAll scope = iota
	// Fajr and Isha, always
	scopeAlways
	// Fajr and Isha, each only when undefined
	scopeInvalid
	// Fajr and Isha together, when either is undefined
	scopeInvalidSame
)

var extremeRules = map[ExtremeMethod]extremeRule{
	ExtremeNearestLatitudeAll:        nearestLatitude(scopeAll),
	ExtremeNearestLatitudeAlways:     nearestLatitude(scopeAlways),
	ExtremeNearestLatitudeInvalid:    nearestLatitude(scopeInvalid),
	ExtremeNearestGoodDayAll:         nearestGoodDay(scopeAll),
	ExtremeNearestGoodDayInvalid:     nearestGoodDay(scopeInvalid),
	ExtremeNearestGoodDayInvalidSame: nearestGoodDay(scopeInvalidSame),
	ExtremeSeventhOfNightAlways:      portionOf(seventhOfNight, scopeAlways),
	ExtremeSeventhOfNightInvalid:     portionOf(seventhOfNight, scopeInvalid),
	ExtremeSeventhOfDayAlways:        portionOf(seventhOfDay, scopeAlways),
	ExtremeSeventhOfDayInvalid:       portionOf(seventhOfDay, scopeInvalid),
	ExtremeHalfOfNightAlways:         halfOfNight(scopeAlways),
	ExtremeHalfOfNightInvalid:        halfOfNight(scopeInvalid),
	ExtremeMinutesAlways:             minutesAlways,
	ExtremeMinutesInvalid:            minutesInvalid,
}

// substitute copies the prayers of s from ex into d and flags them extreme.
func (d *day) substitute(ex [6]hours, s scope) {
	switch s {
	case scopeAll:
		for _, p := range Prayers {
			d.times[p] = ex[p]
			d.extreme[p] = true
		}
	case scopeAlways:
		d.replace(Fajr, ex[Fajr])
		d.replace(Isha, ex[Isha])
	case scopeInvalid:
		if !d.times[Fajr].ok {
			d.replace(Fajr, ex[Fajr])
		}
		if !d.times[Isha].ok {
			d.replace(Isha, ex[Isha])
		}
	case scopeInvalidSame:
		if !d.times[Fajr].ok || !d.times[Isha].ok {
			d.replace(Fajr, ex[Fajr])
			d.replace(Isha, ex[Isha])
		}
	}
}

func (d *day) replace(p Prayer, h hours) {
	d.times[p] = h
	d.extreme[p] = true
}

// nearestLatitude solves the day again at the method's nearest latitude,
// keeping the observer's declination and transit.
func nearestLatitude(s scope) extremeRule {
	return func(c *Calculator, in *extremeInput, d *day) {
		obs := in.loc.observer()
		obs.Latitude = in.m.NearestLatitude

		ex := solveSolar(obs, in.loc.atmosphere(), in.m, in.topo).schedule()
		c.logger.Debugw("using nearest latitude",
			"extreme", in.m.Extreme.String(),
			"latitude", obs.Latitude,
			"jd", in.jd)
		d.substitute(ex, s)
	}
}

// nearestGoodDay searches outwards from the day for one on which both Fajr
// and Isha can be solved, the previous day first at each distance.
func nearestGoodDay(s scope) extremeRule {
	return func(c *Calculator, in *extremeInput, d *day) {
		ex, jd, ok := c.findGoodDay(in)
		if !ok {
			c.logger.Warnw("no day with a solvable Fajr and Isha within a year",
				"extreme", in.m.Extreme.String(),
				"latitude", in.loc.Latitude,
				"jd", in.jd)
			return
		}
		c.logger.Debugw("using nearest good day",
			"extreme", in.m.Extreme.String(),
			"jd", in.jd,
			"good_jd", jd)
		d.substitute(ex.schedule(), s)
	}
}

func (c *Calculator) findGoodDay(in *extremeInput) (solar, float64, bool) {
	obs := in.loc.observer()
	atm := in.loc.atmosphere()

	// The search walks two separate caches so the calculator's own window
	// stays on the requested day.
	prev := c.engine.Clone()
	next := c.engine.Clone()

	good := func(e *ephemeris.Engine, jd float64) (solar, bool) {
		_, topo := e.Window(jd, obs)
		ex := solveSolar(obs, atm, in.m, topo)
		return ex, ex.fajr.ok && ex.isha.ok
	}

	for i := 0; i <= in.yearDays; i++ {
		jd := in.jd - float64(i)
		if ex, ok := good(prev, jd); ok {
			return ex, jd, true
		}
		jd = in.jd + float64(i)
		if ex, ok := good(next, jd); ok {
			return ex, jd, true
		}
	}
	return solar{}, 0, false
}

func seventhOfNight(sunrise, sunset float64) float64 {
	return (24 - (sunset - sunrise)) / 7
}

func seventhOfDay(sunrise, sunset float64) float64 {
	return (sunset - sunrise) / 7
}

// portionOf places Fajr portion hours before sunrise and Isha portion hours
// after sunset.
func portionOf(portion func(sunrise, sunset float64) float64, s scope) extremeRule {
	return func(c *Calculator, in *extremeInput, d *day) {
		sr, ss := d.times[Shurooq], d.times[Maghrib]
		if !sr.ok || !ss.ok {
			return
		}
		p := portion(sr.v, ss.v)
		c.logger.Debugw("using night portion",
			"extreme", in.m.Extreme.String(),
			"portion", p,
			"jd", in.jd)
		d.substitute([6]hours{Fajr: defined(sr.v - p), Isha: defined(ss.v + p)}, s)
	}
}

// halfOfNight places Fajr and Isha the configured intervals either side of
// the half night value.
func halfOfNight(s scope) extremeRule {
	return func(c *Calculator, in *extremeInput, d *day) {
		sr, ss := d.times[Shurooq], d.times[Maghrib]
		if !sr.ok || !ss.ok {
			return
		}
		// Not the midpoint of the night; kept as the historical formula.
		p := (24 - ss.v - sr.v) / 2
		c.logger.Debugw("using half of the night",
			"extreme", in.m.Extreme.String(),
			"portion", p,
			"jd", in.jd)
		d.substitute([6]hours{
			Fajr: defined(p - in.m.FajrInterval/60),
			Isha: defined(p + in.m.IshaInterval/60),
		}, s)
	}
}

// minutesAlways pins Fajr to sunrise and Isha to sunset; the method's
// intervals then move them away.
func minutesAlways(c *Calculator, in *extremeInput, d *day) {
	c.logger.Debugw("using minutes from sunrise and sunset",
		"extreme", in.m.Extreme.String(),
		"jd", in.jd)
	d.substitute([6]hours{Fajr: d.times[Shurooq], Isha: d.times[Maghrib]}, scopeAlways)
}

func minutesInvalid(c *Calculator, in *extremeInput, d *day) {
	c.logger.Debugw("using minutes from sunrise and sunset",
		"extreme", in.m.Extreme.String(),
		"jd", in.jd)
	d.substitute([6]hours{
		Fajr: d.times[Shurooq].add(-in.m.FajrInterval / 60),
		Isha: d.times[Maghrib].add(in.m.IshaInterval / 60),
	}, scopeInvalid)
}
