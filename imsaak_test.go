package salat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/salat"
)

func TestImsaak(t *testing.T) {
	cairo := salat.NewLocation(30.0444, 31.2357, 2)
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	base := salat.NewMethod(salat.MethodMuslimLeague)
	base.Rounding = salat.RoundNone

	t.Run("angle", func(t *testing.T) {
		deeper := base
		deeper.FajrAngle += base.ImsaakAngle
		want := salat.PrayerTimes(cairo, deeper, date)[salat.Fajr]
		assert.Equal(t, want, salat.Imsaak(cairo, base, date))
	})

	t.Run("fajr interval", func(t *testing.T) {
		m := base
		m.FajrInterval = 90
		s := salat.PrayerTimes(cairo, m, date)
		got := salat.Imsaak(cairo, m, date)
		require.True(t, got.Valid)
		assert.InDelta(t, clock(s[salat.Shurooq])-100.0/60, clock(got), 2.0/3600)

		m.ImsaakInterval = 20
		got = salat.Imsaak(cairo, m, date)
		assert.InDelta(t, clock(s[salat.Shurooq])-110.0/60, clock(got), 2.0/3600)
	})

	t.Run("imsaak interval", func(t *testing.T) {
		m := base
		m.ImsaakInterval = 15
		s := salat.PrayerTimes(cairo, m, date)
		got := salat.Imsaak(cairo, m, date)
		assert.InDelta(t, clock(s[salat.Fajr])-15.0/60, clock(got), 2.0/3600)
		assert.False(t, got.Extreme)
	})

	t.Run("extreme fajr falls back to interval", func(t *testing.T) {
		oslo := salat.NewLocation(59.91, 10.75, 1)
		summer := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

		s := salat.PrayerTimes(oslo, base, summer)
		require.True(t, s[salat.Fajr].Extreme)

		got := salat.Imsaak(oslo, base, summer)
		require.True(t, got.Valid)
		assert.True(t, got.Extreme)
		assert.InDelta(t, clock(s[salat.Fajr])-float64(salat.DefaultImsaakInterval)/60, clock(got), 2.0/3600)
	})
}

func TestNextDay(t *testing.T) {
	cairo := salat.NewLocation(30.0444, 31.2357, 2)
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := date.AddDate(0, 0, 1)
	m := salat.NewMethod(salat.MethodEgyptNew)

	c := salat.NewCalculator()
	assert.Equal(t, salat.PrayerTimes(cairo, m, tomorrow)[salat.Fajr], c.NextDayFajr(cairo, m, date))
	assert.Equal(t, salat.Imsaak(cairo, m, tomorrow), c.NextDayImsaak(cairo, m, date))

	// Package-level helpers agree with a Calculator.
	assert.Equal(t, c.NextDayFajr(cairo, m, date), salat.NextDayFajr(cairo, m, date))
	assert.Equal(t, c.NextDayImsaak(cairo, m, date), salat.NextDayImsaak(cairo, m, date))
}
