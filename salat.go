// Package salat computes the daily Islamic prayer times for a location and
// date from the apparent position of the Sun.
//
// The Sun's position comes from a truncated VSOP87 series with nutation and
// aberration, corrected for the observer's parallax. Rise, set and twilight
// instants are solved against a three-day window of positions with quadratic
// interpolation and a refraction correction. A policy layer then turns the
// raw instants into the six prayers:
//
//   - Fajr at a configured depression angle before sunrise (or a fixed
//     interval before Shurooq)
//   - Shurooq at sunrise
//   - Dhuhr at solar transit
//   - Asr when an object's shadow reaches one or two times its length plus
//     the noon shadow
//   - Maghrib at sunset
//   - Isha at a configured depression angle after sunset (or a fixed
//     interval after Maghrib)
//
// At high latitudes the Sun may never reach the Fajr or Isha angle; the
// method's ExtremeMethod decides what to produce instead. Times that cannot
// be produced at all come back with Valid set to false.
//
// A Calculator keeps the last three days of solar positions, so walking a
// calendar day by day costs one series evaluation per day. A Calculator is
// not safe for concurrent use; Timetable gives each worker its own.
package salat

import (
	"errors"
	"fmt"
	"time"

	"github.com/thurmanmarka/salat/internal/ephemeris"
	"github.com/thurmanmarka/salat/internal/solver"
	"github.com/thurmanmarka/salat/internal/timeutil"
)

const (
	// StandardPressure is the astronomical standard pressure in millibars.
	StandardPressure = 1010.0
	// StandardTemperature is the astronomical standard temperature in Celsius.
	StandardTemperature = 10.0
)

// Location is an observer on the Earth together with the local clock and
// weather conditions.
type Location struct {
	Latitude    float64 // degrees, north positive
	Longitude   float64 // degrees, east positive (west negative, e.g. -74 for 74°W)
	UTCOffset   float64 // hours east of Greenwich at standard time, e.g. 5.5
	DST         bool    // adds one hour to every result
	Elevation   float64 // meters above sea level
	Pressure    float64 // millibars
	Temperature float64 // degrees Celsius
}

// NewLocation returns a location at standard pressure and temperature.
func NewLocation(lat, lon, utcOffset float64) Location {
	return Location{
		Latitude:    lat,
		Longitude:   lon,
		UTCOffset:   utcOffset,
		Pressure:    StandardPressure,
		Temperature: StandardTemperature,
	}
}

func (l Location) observer() ephemeris.Observer {
	return ephemeris.Observer{Latitude: l.Latitude, Longitude: l.Longitude, Elevation: l.Elevation}
}

func (l Location) atmosphere() solver.Atmosphere {
	return solver.Atmosphere{Pressure: l.Pressure, Temperature: l.Temperature}
}

// Zone returns the fixed zone of the location's clock, daylight saving
// included.
func (l Location) Zone() *time.Location {
	off := l.UTCOffset
	if l.DST {
		off++
	}
	return timeutil.FixedZone(off)
}

// Prayer indexes a Schedule.
type Prayer int

const (
	Fajr Prayer = iota
	Shurooq
	Dhuhr
	Asr
	Maghrib
	Isha
)

// Events that share Fajr's computation but round differently.
const (
	imsaak Prayer = iota + Isha + 1
	nextFajr
)

var prayerNames = [...]string{"Fajr", "Shurooq", "Dhuhr", "Asr", "Maghrib", "Isha", "Imsaak", "Fajr"}

func (p Prayer) String() string {
	if p >= 0 && int(p) < len(prayerNames) {
		return prayerNames[p]
	}
	return fmt.Sprintf("Prayer(%d)", int(p))
}

// Prayers lists the six daily prayers in order.
var Prayers = [...]Prayer{Fajr, Shurooq, Dhuhr, Asr, Maghrib, Isha}

// Time is a prayer time on the local clock.
type Time struct {
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
	Second int `json:"second" yaml:"second"`

	// Extreme marks a time produced by the method's extreme latitude rule
	// rather than solved directly.
	Extreme bool `json:"extreme" yaml:"extreme"`

	// Valid is false when no time could be produced.
	Valid bool `json:"valid" yaml:"valid"`
}

// String formats t as HH:MM:SS, with a trailing * for extreme times and
// --:--:-- for undefined ones.
func (t Time) String() string {
	if !t.Valid {
		return "--:--:--"
	}
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Extreme {
		s += "*"
	}
	return s
}

// On returns t on the calendar date of date, in date's location. It returns
// false for an undefined time.
func (t Time) On(date time.Time) (time.Time, bool) {
	if !t.Valid {
		return time.Time{}, false
	}
	y, m, d := date.Date()
	h := float64(t.Hour) + float64(t.Minute)/60 + float64(t.Second)/3600
	return timeutil.FractionalHoursToTime(y, m, d, h, date.Location()), true
}

// Schedule holds the six prayers of a day, indexed by Prayer.
type Schedule [6]Time

// ErrInvalidRange is returned by Timetable for an empty or negative range.
var ErrInvalidRange = errors.New("invalid day range")

// DayNumber returns the astronomical day number of local midnight for the
// calendar date of date at a clock utcOffset hours east of Greenwich,
// including the TT-UT correction.
func DayNumber(date time.Time, utcOffset float64) float64 {
	return ephemeris.DayNumber(date, utcOffset)
}

// PrayerTimes computes the schedule for loc on the calendar date of date with
// a fresh Calculator. Use a Calculator directly when computing many days.
func PrayerTimes(loc Location, m Method, date time.Time) Schedule {
	return NewCalculator().PrayerTimes(loc, m, date)
}

// Imsaak computes the Imsaak time for loc on the calendar date of date.
func Imsaak(loc Location, m Method, date time.Time) Time {
	return NewCalculator().Imsaak(loc, m, date)
}

// NextDayFajr computes Fajr of the day after date.
func NextDayFajr(loc Location, m Method, date time.Time) Time {
	return NewCalculator().NextDayFajr(loc, m, date)
}

// NextDayImsaak computes Imsaak of the day after date.
func NextDayImsaak(loc Location, m Method, date time.Time) Time {
	return NewCalculator().NextDayImsaak(loc, m, date)
}
