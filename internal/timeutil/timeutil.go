package timeutil

import (
	"math"
	"time"
)

// FractionalHoursToTime converts fractional hours since local midnight into
// a time on the given date in loc.
func FractionalHoursToTime(year int, month time.Month, day int, h float64, loc *time.Location) time.Time {
	// h can be negative or >24; we let time.Add handle day rollover.
	base := time.Date(year, month, day, 0, 0, 0, 0, loc)

	// Round to nearest second to avoid crazy nanosecond noise.
	sec := int64(math.Round(h * 3600))

	return base.Add(time.Duration(sec) * time.Second)
}

// FixedZone returns a zone for a UTC offset given in (possibly fractional)
// hours, e.g. 5.5 for India.
func FixedZone(offsetHours float64) *time.Location {
	if offsetHours == 0 {
		return time.UTC
	}
	return time.FixedZone("", int(math.Round(offsetHours*3600)))
}

// -----------------------------
// Basic degree/radian helpers.
// -----------------------------

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * (math.Pi / 180.0)
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r / (math.Pi / 180.0)
}

// -----------------------------
// Angle wrapping.
//
// The ephemeris and the event solver depend on these exact variants; the
// results differ at the boundaries, so they are not interchangeable.
// -----------------------------

// LimitAngle wraps L into [0, 360). An exact multiple of 360 comes back as
// the number of whole turns.
func LimitAngle(L float64) float64 {
	L /= 360.0
	F := L - math.Floor(L)
	switch {
	case F > 0:
		return 360 * F
	case F < 0:
		return 360 - 360*F
	default:
		return L
	}
}

// LimitAngle180 wraps L into [0, 180) with the same quirk as LimitAngle.
func LimitAngle180(L float64) float64 {
	L /= 180.0
	F := L - math.Floor(L)
	switch {
	case F > 0:
		return 180 * F
	case F < 0:
		return 180 - 180*F
	default:
		return L
	}
}

// LimitFraction wraps a fraction of a day into [0, 1).
func LimitFraction(L float64) float64 {
	F := L - math.Floor(L)
	if F < 0 {
		F += 1
	}
	return F
}

// LimitAngleBetween180 wraps L into (-180, 180].
func LimitAngleBetween180(L float64) float64 {
	L /= 360.0
	F := (L - math.Floor(L)) * 360.0
	if F < -180 {
		F += 360
	} else if F > 180 {
		F -= 360
	}
	return F
}
