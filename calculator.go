package salat

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"go.uber.org/zap"

	"github.com/thurmanmarka/salat/internal/ephemeris"
	"github.com/thurmanmarka/salat/internal/solver"
)

// hours is a decimal-hour instant after local midnight, or undefined when
// the Sun never reaches the required altitude.
type hours struct {
	v  float64
	ok bool
}

func defined(v float64) hours {
	return hours{v: v, ok: true}
}

func maybe(v float64, ok bool) hours {
	return hours{v: v, ok: ok}
}

// add shifts h by d hours; undefined stays undefined.
func (h hours) add(d float64) hours {
	if !h.ok {
		return h
	}
	return defined(h.v + d)
}

// day is a solved day before conversion to clock time.
type day struct {
	times   [6]hours
	extreme [6]bool
}

func (d *day) anyUndefined() bool {
	for _, t := range d.times {
		if !t.ok {
			return true
		}
	}
	return false
}

// solar holds the directly solved events of one day. Fajr, Asr and Isha are
// hour angles relative to transit.
type solar struct {
	transit         float64
	fajr, asr, isha hours
	sunrise, sunset hours
}

func solveSolar(obs ephemeris.Observer, atm solver.Atmosphere, m Method, topo ephemeris.Window) solar {
	dec := topo.Center().Dec

	var s solar
	s.transit = solver.Transit(obs.Longitude, topo)
	s.fajr = maybe(solver.HourAngle(obs.Latitude, dec, m.FajrAngle))
	s.asr = maybe(solver.ShadowHourAngle(obs.Latitude, dec, m.Madhab.shadowRatio()))
	s.isha = maybe(solver.HourAngle(obs.Latitude, dec, m.IshaAngle))
	s.sunrise = maybe(solver.Sunrise(obs, atm, topo))
	s.sunset = maybe(solver.Sunset(obs, atm, topo))
	return s
}

// schedule converts s into decimal hours per prayer.
func (s solar) schedule() [6]hours {
	noon := defined(s.transit)
	return [6]hours{
		Fajr:    maybe(s.transit-s.fajr.v, s.fajr.ok),
		Shurooq: s.sunrise,
		Dhuhr:   noon,
		Asr:     s.asr.add(s.transit),
		Maghrib: s.sunset,
		Isha:    s.isha.add(s.transit),
	}
}

// Calculator computes prayer times and caches the solar positions of the
// last day it evaluated and its two neighbours.
type Calculator struct {
	engine *ephemeris.Engine
	logger *zap.SugaredLogger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used to report extreme latitude handling.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCalculator returns a Calculator with an empty cache.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		engine: ephemeris.NewEngine(),
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PrayerTimes computes the schedule for loc on the calendar date of date.
// Only the year, month and day of date are used; the clock is given by
// loc.UTCOffset and loc.DST.
func (c *Calculator) PrayerTimes(loc Location, m Method, date time.Time) Schedule {
	jd := DayNumber(date, loc.UTCOffset)
	return c.schedule(loc, m, c.solveDay(loc, m, jd, daysInYear(date.Year())))
}

// PrayerTimesByDay computes the schedule for the day starting at day number
// jd, as returned by DayNumber.
func (c *Calculator) PrayerTimesByDay(loc Location, m Method, jd float64) Schedule {
	year, _, _ := julian.JDToCalendar(jd + loc.UTCOffset/24)
	return c.schedule(loc, m, c.solveDay(loc, m, jd, daysInYear(year)))
}

// NextDayFajr computes Fajr of the day after date.
func (c *Calculator) NextDayFajr(loc Location, m Method, date time.Time) Time {
	jd := DayNumber(date, loc.UTCOffset) + 1
	d := c.solveDay(loc, m, jd, daysInYear(date.Year()))
	return clockTime(d.times[Fajr], d.extreme[Fajr], loc, m, nextFajr)
}

func (c *Calculator) schedule(loc Location, m Method, d day) Schedule {
	var s Schedule
	for _, p := range Prayers {
		s[p] = clockTime(d.times[p], d.extreme[p], loc, m, p)
	}
	return s
}

// solveDay runs the full pipeline for day number jd up to, but not
// including, clock conversion. yearDays bounds the nearest good day search.
func (c *Calculator) solveDay(loc Location, m Method, jd float64, yearDays int) day {
	obs := loc.observer()
	_, topo := c.engine.Window(jd, obs)

	direct := solveSolar(obs, loc.atmosphere(), m, topo)
	d := day{times: direct.schedule()}

	if m.Extreme != ExtremeNone && (d.anyUndefined() || !m.Extreme.onlyIfInvalid()) {
		if rule, ok := extremeRules[m.Extreme]; ok {
			rule(c, &extremeInput{loc: loc, m: m, jd: jd, yearDays: yearDays, topo: topo}, &d)
		}
	}

	if !m.Extreme.ownsIntervals() {
		if m.FajrInterval != 0 {
			d.times[Fajr] = d.times[Shurooq].add(-m.FajrInterval / 60)
		}
		if m.IshaInterval != 0 {
			d.times[Isha] = d.times[Maghrib].add(m.IshaInterval / 60)
		}
	}
	return d
}

func daysInYear(year int) int {
	if julian.LeapYearGregorian(year) {
		return 366
	}
	return 365
}
