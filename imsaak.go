package salat

import "time"

// Imsaak computes Imsaak, the start of the pre-dawn fast, for the calendar
// date of date.
//
// With a Fajr interval the Imsaak interval (default 10 minutes) is added to
// it; with only an Imsaak interval Fajr is moved earlier by that many
// minutes; otherwise the Imsaak angle is added to the Fajr angle. If the
// resulting Fajr needs an extreme latitude rule, Imsaak is instead taken as
// the Imsaak interval before the method's own Fajr.
func (c *Calculator) Imsaak(loc Location, m Method, date time.Time) Time {
	jd := DayNumber(date, loc.UTCOffset)
	yearDays := daysInYear(date.Year())

	tmp := m
	switch {
	case m.FajrInterval != 0:
		tmp.FajrInterval += imsaakInterval(m)
	case m.ImsaakInterval != 0:
		tmp.Offsets[Fajr] -= m.ImsaakInterval
		tmp.UseOffsets = true
	default:
		tmp.FajrAngle += m.ImsaakAngle
	}

	d := c.solveDay(loc, tmp, jd, yearDays)
	if d.extreme[Fajr] {
		tmp = m
		tmp.Offsets[Fajr] -= imsaakInterval(m)
		tmp.UseOffsets = true
		d = c.solveDay(loc, tmp, jd, yearDays)
	}
	return clockTime(d.times[Fajr], d.extreme[Fajr], loc, tmp, imsaak)
}

// NextDayImsaak computes Imsaak for the day after date.
func (c *Calculator) NextDayImsaak(loc Location, m Method, date time.Time) Time {
	return c.Imsaak(loc, m, date.AddDate(0, 0, 1))
}

func imsaakInterval(m Method) float64 {
	if m.ImsaakInterval == 0 {
		return DefaultImsaakInterval
	}
	return m.ImsaakInterval
}
