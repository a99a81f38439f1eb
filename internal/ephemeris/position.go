// Package ephemeris computes the apparent geocentric and topocentric
// position of the Sun for whole astronomical days.
//
// Positions come from a truncated VSOP87 series for the Earth with the
// 63-term IAU 1980 nutation and an aberration correction (Meeus,
// Astronomical Algorithms, 2nd ed., chapters 22, 25 and 32). Only the
// quantities needed for rise, set and transit are produced.
package ephemeris

import (
	"math"

	"github.com/thurmanmarka/salat/internal/timeutil"
)

// J2000 is the Julian day of the J2000.0 epoch.
const J2000 = 2451545.0

// Sample is the Sun's apparent position for one day number.
type Sample struct {
	Day      float64 // astronomical day number the sample was computed for
	RA       float64 // right ascension, degrees
	Dec      float64 // declination, degrees
	Sidereal float64 // apparent sidereal time at Greenwich, degrees
	DRA      float64 // parallax shift in RA, radians (topocentric samples only)
	Radius   float64 // Sun-Earth distance, AU
}

// Position computes the Sun's apparent geocentric right ascension,
// declination, the apparent sidereal time and the Earth's radius vector for
// the day number jd.
func Position(jd float64) Sample {
	jc := (jd - J2000) / 36525.0
	jm := jc / 10.0
	jm2 := math.Pow(jm, 2)
	jm3 := math.Pow(jm, 3)
	jm4 := math.Pow(jm, 4)
	jm5 := math.Pow(jm, 5)

	// Heliocentric longitude, latitude and radius vector (p. 218).
	tL := (sumSeries(earthL0[:], jm) +
		sumSeries(earthL1[:], jm)*jm +
		sumSeries(earthL2[:], jm)*jm2 +
		sumSeries(earthL3[:], jm)*jm3 +
		sumSeries(earthL4[:], jm)*jm4 +
		sumSeries(earthL5[:], jm)*jm5) / 1e8
	L := timeutil.LimitAngle(timeutil.Rad2Deg(tL))

	tB := (sumSeries(earthB0[:], jm) + sumSeries(earthB1[:], jm)*jm) / 1e8
	B := timeutil.Rad2Deg(tB)

	R := (sumSeries(earthR0[:], jm) +
		sumSeries(earthR1[:], jm)*jm +
		sumSeries(earthR2[:], jm)*jm2 +
		sumSeries(earthR3[:], jm)*jm3 +
		sumSeries(earthR4[:], jm)*jm4) / 1e8

	// Geocentric longitude and latitude.
	G := timeutil.LimitAngle(L + 180)
	rGg := timeutil.Deg2Rad(-B)

	deltaPsi, deltaEps := Nutation(jd)

	E := meanObliquity(jm) + deltaEps
	rE := timeutil.Deg2Rad(E)

	// Aberration (p. 167).
	lambda := G + deltaPsi + (-20.4898 / (3600.0 * R))
	rLambda := timeutil.Deg2Rad(lambda)

	// Mean sidereal time (p. 88) corrected to apparent.
	V0 := 280.46061837 + 360.98564736629*(jd-J2000) +
		0.000387933*math.Pow(jc, 2) - math.Pow(jc, 3)/38710000.0
	V := timeutil.LimitAngle(V0) + deltaPsi*math.Cos(rE)

	RAn := math.Sin(rLambda)*math.Cos(rE) - math.Tan(rGg)*math.Sin(rE)
	RAd := math.Cos(rLambda)
	RA := timeutil.LimitAngle(timeutil.Rad2Deg(math.Atan2(RAn, RAd)))

	DEC := math.Asin(math.Sin(rGg)*math.Cos(rE) +
		math.Cos(rGg)*math.Sin(rE)*math.Sin(rLambda))

	return Sample{
		Day:      jd,
		RA:       RA,
		Dec:      timeutil.Rad2Deg(DEC),
		Sidereal: V,
		Radius:   R,
	}
}

// Nutation returns the nutation in longitude and in obliquity, in degrees,
// for the day number jd.
func Nutation(jd float64) (deltaPsi, deltaEps float64) {
	T := (jd - J2000) / 36525.0
	T2 := math.Pow(T, 2)
	T3 := math.Pow(T, 3)

	// Fundamental arguments (p. 144).
	args := [5]float64{
		297.85036 + 445267.111480*T - 0.0019142*T2 + T3/189474.0,  // D
		357.52772 + 35999.050340*T - 0.0001603*T2 - T3/300000.0,   // M
		134.96298 + 477198.867398*T + 0.0086972*T2 + T3/56250.0,   // M'
		93.27191 + 483202.017538*T - 0.0036825*T2 + T3/327270.0,   // F
		125.04452 - 1934.136261*T + 0.0020708*T2 + T3/450000.0,    // Omega
	}

	var psi, eps float64
	for i, amp := range nutationAmplitudes {
		var arg float64
		for k, mul := range nutationMultipliers[i] {
			arg += args[k] * float64(mul)
		}
		rArg := timeutil.Deg2Rad(arg)
		psi += (amp[0] + T*amp[1]) * math.Sin(rArg)
		eps += (amp[2] + T*amp[3]) * math.Cos(rArg)
	}

	return psi / 36000000.0, eps / 36000000.0
}

// meanObliquity is the Laskar polynomial for the mean obliquity of the
// ecliptic (p. 147, 22.3), in degrees. jm is in Julian millennia.
func meanObliquity(jm float64) float64 {
	U := jm / 10.0
	E0 := 84381.448 - 4680.93*U - 1.55*math.Pow(U, 2) + 1999.25*math.Pow(U, 3) -
		51.38*math.Pow(U, 4) - 249.67*math.Pow(U, 5) - 39.05*math.Pow(U, 6) +
		7.12*math.Pow(U, 7) + 27.87*math.Pow(U, 8) + 5.79*math.Pow(U, 9) +
		2.45*math.Pow(U, 10)
	return E0 / 3600.0
}

func sumSeries(terms []periodicTerm, tau float64) float64 {
	var sum float64
	for _, t := range terms {
		sum += t.a * math.Cos(t.b+t.c*tau)
	}
	return sum
}
