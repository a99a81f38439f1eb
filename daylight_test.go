package salat_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/salat"
)

func clock(t salat.Time) float64 {
	return float64(t.Hour) + float64(t.Minute)/60 + float64(t.Second)/3600
}

func daylight(s salat.Schedule) float64 {
	return clock(s[salat.Maghrib]) - clock(s[salat.Shurooq])
}

func TestDaylightHours(t *testing.T) {
	phoenix := salat.NewLocation(33.4484, -112.0740, -7)
	m := salat.NewMethod(salat.MethodNorthAmerica)

	tests := []struct {
		name         string
		date         time.Time
		wantMinHours float64 // minimum expected hours
		wantMaxHours float64 // maximum expected hours
	}{
		{
			name:         "Phoenix Summer Solstice",
			date:         time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC),
			wantMinHours: 14.0,
			wantMaxHours: 14.5,
		},
		{
			name:         "Phoenix Winter Solstice",
			date:         time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC),
			wantMinHours: 9.8,
			wantMaxHours: 10.2,
		},
		{
			name:         "Phoenix Spring Equinox",
			date:         time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
			wantMinHours: 11.9,
			wantMaxHours: 12.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := daylight(salat.PrayerTimes(phoenix, m, tt.date))
			if hours < tt.wantMinHours || hours > tt.wantMaxHours {
				t.Errorf("daylight = %.2f hours, want between %.2f and %.2f",
					hours, tt.wantMinHours, tt.wantMaxHours)
			}
			t.Logf("%s: %.2f hours of daylight", tt.name, hours)
		})
	}
}

func TestDaylightHours_Equator(t *testing.T) {
	// At the equator, daylight should be ~12 hours year-round; the upper limb
	// and refraction add about 7 minutes.
	quito := salat.NewLocation(-0.1807, -78.4678, -5)
	m := salat.NewMethod(salat.MethodMuslimLeague)

	dates := []time.Time{
		time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC),
	}

	for _, date := range dates {
		hours := daylight(salat.PrayerTimes(quito, m, date))
		if math.Abs(hours-12.0) > 0.25 {
			t.Errorf("Quito %s: got %.2f hours, expected ~12 hours",
				date.Format("2006-01-02"), hours)
		}
		t.Logf("Quito %s: %.2f hours", date.Format("2006-01-02"), hours)
	}
}

func TestScheduleOrdering(t *testing.T) {
	places := []struct {
		name string
		loc  salat.Location
		m    salat.MethodID
	}{
		{"Makkah", salat.NewLocation(21.4225, 39.8262, 3), salat.MethodUmmAlQura},
		{"Cairo", salat.NewLocation(30.0444, 31.2357, 2), salat.MethodEgyptNew},
		{"Karachi", salat.NewLocation(24.8607, 67.0011, 5), salat.MethodKarachiHanafi},
		{"Jakarta", salat.NewLocation(-6.2088, 106.8456, 7), salat.MethodMuslimLeague},
		{"Sydney", salat.NewLocation(-33.8688, 151.2093, 10), salat.MethodMuslimLeague},
		{"Phoenix", salat.NewLocation(33.4484, -112.0740, -7), salat.MethodNorthAmerica},
		{"Souk Ahras", salat.Location{
			Latitude: 36.28639, Longitude: 7.95111, UTCOffset: 1, Elevation: 697,
			Pressure: 1010, Temperature: 10,
		}, salat.MethodMuslimLeague},
	}

	for _, p := range places {
		t.Run(p.name, func(t *testing.T) {
			c := salat.NewCalculator()
			m := salat.NewMethod(p.m)
			m.Rounding = salat.RoundNone

			start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 366; i += 5 {
				date := start.AddDate(0, 0, i)
				s := c.PrayerTimes(p.loc, m, date)
				for j, pr := range salat.Prayers {
					require.True(t, s[pr].Valid, "%s %s", date.Format("2006-01-02"), pr)
					assert.False(t, s[pr].Extreme, "%s %s", date.Format("2006-01-02"), pr)
					if j > 0 {
						prev := salat.Prayers[j-1]
						assert.Less(t, clock(s[prev]), clock(s[pr]), "%s: %s before %s", date.Format("2006-01-02"), prev, pr)
					}
				}
			}
		})
	}
}

func TestSeventhOfNightAtPolarSummer(t *testing.T) {
	alesund := salat.NewLocation(62.47, 6.15, 1)
	date := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

	m := salat.NewMethod(salat.MethodMuslimLeague)
	m.Rounding = salat.RoundNone
	m.Extreme = salat.ExtremeNone

	direct := salat.PrayerTimes(alesund, m, date)
	require.False(t, direct[salat.Fajr].Valid)
	require.False(t, direct[salat.Isha].Valid)

	m.Extreme = salat.ExtremeSeventhOfNightAlways
	s := salat.PrayerTimes(alesund, m, date)

	for j, pr := range salat.Prayers {
		require.True(t, s[pr].Valid, pr.String())
		if j > 0 {
			assert.Less(t, clock(s[salat.Prayers[j-1]]), clock(s[pr]), pr.String())
		}
	}
	assert.True(t, s[salat.Fajr].Extreme)
	assert.True(t, s[salat.Isha].Extreme)

	before := clock(s[salat.Shurooq]) - clock(s[salat.Fajr])
	after := clock(s[salat.Isha]) - clock(s[salat.Maghrib])
	assert.InDelta(t, before, after, 2.0/3600)
	assert.InDelta(t, (24-daylight(s))/7, before, 3.0/3600)
}

func TestPrayerTimesByDayMatchesDate(t *testing.T) {
	loc := salat.NewLocation(51.5074, -0.1278, 0)
	loc.DST = true
	m := salat.NewMethod(salat.MethodMuslimLeague)
	date := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

	c := salat.NewCalculator()
	byDate := c.PrayerTimes(loc, m, date)
	byDay := c.PrayerTimesByDay(loc, m, salat.DayNumber(date, loc.UTCOffset))
	assert.Equal(t, byDate, byDay)
}

func TestTimeOn(t *testing.T) {
	zone := time.FixedZone("", 3*3600)
	date := time.Date(2024, time.May, 2, 17, 0, 0, 0, zone)

	got, ok := salat.Time{Hour: 4, Minute: 5, Second: 6, Valid: true}.On(date)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.May, 2, 4, 5, 6, 0, zone), got)

	_, ok = salat.Time{}.On(date)
	assert.False(t, ok)
}
