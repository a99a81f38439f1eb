package ephemeris

import (
	"math"
	"time"
)

// deltaTObserved holds TT-UT in seconds for January of 1999 through 2017;
// the values from 2010 on are predictions.
var deltaTObserved = [...]float64{
	63.4673, 63.8285, 64.0908, 64.2998, 64.4734, // 1999-2003
	64.5736, 64.7052, 64.8452, 65.1464, 65.4574, // 2004-2008
	65.7768,                                     // 2009
	66.5, 67.1, 68, 68, 69, // 2010-2014
	69, 70, 70, // 2015-2017
}

const (
	firstObservedYear = 1999
	lastObservedYear  = firstObservedYear + len(deltaTObserved) - 1
)

// DeltaT returns TT-UT in seconds for the given year (pp. 78-80).
//
// Years 1620 through 1998 have no table and contribute zero, as does every
// year from 2100 on.
func DeltaT(year int) float64 {
	y := float64(year)
	t := (y - 2000) / 100.0

	switch {
	case year < 948:
		return 2177 + 497*t + 44.1*math.Pow(t, 2)
	case year >= 1620 && year <= 1998, year >= 2100:
		return 0
	case year >= firstObservedYear && year <= lastObservedYear:
		return deltaTObserved[year-firstObservedYear]
	}

	dt := 102 + 102*t + 25.3*math.Pow(t, 2)
	if year >= 2000 {
		dt += 0.37 * (y - 2100)
	}
	return dt
}

// DayNumber returns the astronomical day number for local midnight of the
// calendar date of date, for a zone utcOffset hours east of Greenwich, with
// the DeltaT correction applied. Only the date's year, month and day are
// used.
func DayNumber(date time.Time, utcOffset float64) float64 {
	year, m, day := date.Date()
	month := int(m)

	jdY := float64(year)
	jdM := float64(month)
	if month <= 2 {
		jdY--
		jdM += 12
	}
	if year < 1 {
		jdY++
	}

	// Gregorian reform.
	var jdB float64
	if year > 1582 || (year == 1582 && (month > 10 || (month == 10 && day >= 4))) {
		jdB = 2 - math.Floor(jdY/100.0) + math.Floor((jdY/100.0)/4.0)
	}

	jd := math.Floor(365.25*(jdY+4716.0)) + math.Floor(30.6001*(jdM+1)) +
		(float64(day) + (-utcOffset)/24.0) + jdB - 1524.5

	return jd + DeltaT(year)/86400.0
}
