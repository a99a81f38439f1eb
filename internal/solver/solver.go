// Package solver finds the decimal-hour instants at which the Sun transits
// or crosses a given altitude, from a three-day ephemeris window.
//
// All results are hours after local midnight of the window's centre day.
// Functions that can fail because the Sun never reaches the requested
// altitude return ok == false instead of a value.
package solver

import (
	"math"

	"github.com/thurmanmarka/salat/internal/ephemeris"
	"github.com/thurmanmarka/salat/internal/timeutil"
)

// CenterOfSunAngle is the altitude (degrees) of the Sun's centre when its
// upper limb touches the horizon.
const CenterOfSunAngle = -0.833370

// siderealRate is the daily advance of sidereal time in degrees (p. 103).
const siderealRate = 360.985647

// EventType describes whether we are looking for a rising or setting event.
type EventType int

const (
	// CrossingUp means altitude is increasing through the target value (rise).
	CrossingUp EventType = iota
	// CrossingDown means altitude is decreasing through the target value (set).
	CrossingDown
)

// Atmosphere holds the conditions used for the refraction correction.
type Atmosphere struct {
	Pressure    float64 // millibars
	Temperature float64 // degrees Celsius
}

// Transit returns the time of the Sun's upper transit at longitude lon
// (degrees, east positive).
func Transit(lon float64, w ephemeris.Window) float64 {
	M := timeutil.LimitFraction((w[1].RA - lon - w[1].Sidereal) / 360.0)

	// Sidereal time at Greenwich.
	sidG := w[1].Sidereal + siderealRate*M

	A := interpolate(unwrapRA(w), M)
	H := timeutil.LimitAngleBetween180(sidG + lon - A)

	return 24.0 * (M - H/360.0)
}

// Crossing returns the time at which the Sun's centre reaches altitude
// (degrees) at obs, rising or setting, corrected for refraction under atm.
// w must be a topocentric window.
func Crossing(obs ephemeris.Observer, atm Atmosphere, w ephemeris.Window, altitude float64, dir EventType) (float64, bool) {
	rDec := timeutil.Deg2Rad(w[1].Dec)
	rLat := timeutil.Deg2Rad(obs.Latitude)

	cosH, ok := cosHourAngle(rLat, rDec, altitude)
	if !ok {
		return 0, false
	}
	lhour := timeutil.LimitAngle180(timeutil.Rad2Deg(math.Acos(cosH)))

	// Eastern longitudes are positive.
	M := (w[1].RA - obs.Longitude - w[1].Sidereal) / 360.0
	switch dir {
	case CrossingUp:
		M -= lhour / 360.0
	case CrossingDown:
		M += lhour / 360.0
	}
	M = timeutil.LimitFraction(M)

	sidG := timeutil.LimitAngle(w[1].Sidereal + siderealRate*M)

	A := interpolate(unwrapRA(w), M)
	B := interpolate([3]float64{w[0].Dec, w[1].Dec, w[2].Dec}, M)
	rB := timeutil.Deg2Rad(B)

	H := timeutil.LimitAngleBetween180(sidG + obs.Longitude - A)
	tH := timeutil.Deg2Rad(H) - w[1].DRA

	// Airless altitude at the estimate (p. 93, 13.6), then refracted.
	sunAlt := timeutil.Rad2Deg(math.Asin(math.Sin(rLat)*math.Sin(rB) +
		math.Cos(rLat)*math.Cos(rB)*math.Cos(tH)))
	sunAlt += Refraction(atm, sunAlt)

	delM := (sunAlt - altitude) / (360.0 * math.Cos(rB) * math.Cos(rLat) * math.Sin(tH))

	return (M + delM) * 24.0, true
}

// Depression is Crossing for a depression angle below the horizon, as used
// for twilight. Prayer schedules place Fajr and Isha with HourAngle around
// transit instead.
func Depression(obs ephemeris.Observer, atm Atmosphere, w ephemeris.Window, depression float64, dir EventType) (float64, bool) {
	return Crossing(obs, atm, w, -depression, dir)
}

// Sunrise returns the time the Sun's upper limb rises.
func Sunrise(obs ephemeris.Observer, atm Atmosphere, w ephemeris.Window) (float64, bool) {
	return Crossing(obs, atm, w, CenterOfSunAngle, CrossingUp)
}

// Sunset returns the time the Sun's upper limb sets.
func Sunset(obs ephemeris.Observer, atm Atmosphere, w ephemeris.Window) (float64, bool) {
	return Crossing(obs, atm, w, CenterOfSunAngle, CrossingDown)
}

// HourAngle returns, in hours, the hour angle at which the Sun is depression
// degrees below the horizon for declination dec (degrees) at latitude lat.
// Twilight events sit that many hours either side of transit.
func HourAngle(lat, dec, depression float64) (float64, bool) {
	cosH, ok := cosHourAngle(timeutil.Deg2Rad(lat), timeutil.Deg2Rad(dec), -depression)
	if !ok {
		return 0, false
	}
	return timeutil.Rad2Deg(math.Acos(cosH)) / 15.0, true
}

// ShadowHourAngle returns, in hours after transit, the time at which an
// object's shadow equals ratio times its length plus the noon shadow.
func ShadowHourAngle(lat, dec, ratio float64) (float64, bool) {
	rLat := timeutil.Deg2Rad(lat)
	rDec := timeutil.Deg2Rad(dec)

	// Reverse in the southern hemisphere.
	if lat < 0.0 {
		rDec = -rDec
	}
	part1 := ratio + math.Tan(rLat-rDec)
	if part1 < 1.0 {
		part1 = ratio - math.Tan(rLat-rDec)
	}

	alt := math.Pi/2.0 - math.Atan(part1)
	cosH := (math.Sin(alt) - math.Sin(rLat)*math.Sin(rDec)) / (math.Cos(rLat) * math.Cos(rDec))
	if cosH < -1 || cosH > 1 {
		return 0, false
	}
	return timeutil.Rad2Deg(math.Acos(cosH)) / 15.0, true
}

// Refraction returns the atmospheric refraction in degrees for an airless
// altitude sunAlt (degrees), scaled for pressure and temperature (p. 106).
func Refraction(atm Atmosphere, sunAlt float64) float64 {
	part1 := (atm.Pressure / 1010.0) * (283 / (273 + atm.Temperature))
	part2 := 1.02 / (timeutil.Rad2Deg(math.Tan(timeutil.Deg2Rad(sunAlt+10.3/(sunAlt+5.11)))) + 0.0019279)
	return (part1 * part2) / 60.0
}

func cosHourAngle(rLat, rDec, altitude float64) (float64, bool) {
	cosH := (math.Sin(timeutil.Deg2Rad(altitude)) - math.Sin(rLat)*math.Sin(rDec)) /
		(math.Cos(rLat) * math.Cos(rDec))
	if cosH < -1 || cosH > 1 {
		return 0, false
	}
	return cosH, true
}

// unwrapRA returns the window's right ascensions adjusted for a 0/360
// crossing inside the window.
func unwrapRA(w ephemeris.Window) [3]float64 {
	ra := [3]float64{w[0].RA, w[1].RA, w[2].RA}
	if w[1].RA > 350 && w[2].RA < 10 {
		ra[2] += 360
	}
	if w[0].RA > 350 && w[1].RA < 10 {
		ra[0] = 0
	}
	return ra
}

// interpolate evaluates the quadratic through three equally spaced values at
// fraction n of the interval after y[1] (pp. 24-25).
func interpolate(y [3]float64, n float64) float64 {
	a := y[1] - y[0]
	b := y[2] - y[1]
	return y[1] + n*(a+b+(b-a)*n)/2.0
}
