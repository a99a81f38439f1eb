package timeutil

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimitAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{10, 10},
		{370, 10},
		{-10, 350},
		{-370, 350},
		{0, 0},
		// exact turns keep the quirk of returning the turn count
		{720, 2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, LimitAngle(tt.in), 1e-9, "LimitAngle(%v)", tt.in)
	}
}

func TestLimitAngle180(t *testing.T) {
	assert.InDelta(t, 10.0, LimitAngle180(190), 1e-9)
	assert.InDelta(t, 170.0, LimitAngle180(-10), 1e-9)
	assert.InDelta(t, 95.5, LimitAngle180(95.5), 1e-9)
}

func TestLimitFraction(t *testing.T) {
	assert.InDelta(t, 0.25, LimitFraction(1.25), 1e-12)
	assert.InDelta(t, 0.75, LimitFraction(-0.25), 1e-12)
	assert.InDelta(t, 0.0, LimitFraction(3), 1e-12)
}

func TestLimitAngleBetween180(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{10, 10},
		{190, -170},
		{-10, -10},
		{350, -10},
		{180, 180},
		{-190, 170},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, LimitAngleBetween180(tt.in), 1e-9, "LimitAngleBetween180(%v)", tt.in)
	}
}

func TestFractionalHoursToTime(t *testing.T) {
	loc := FixedZone(3)
	got := FractionalHoursToTime(2024, time.March, 1, 4.5+30.0/3600, loc)
	want := time.Date(2024, time.March, 1, 4, 30, 30, 0, loc)
	assert.True(t, got.Equal(want), "got %v want %v", got, want)

	// Negative hours roll back into the previous day.
	got = FractionalHoursToTime(2024, time.March, 1, -1, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC), got)
}

func TestFixedZone(t *testing.T) {
	assert.Equal(t, time.UTC, FixedZone(0))
	_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, FixedZone(5.5)).Zone()
	assert.Equal(t, 5*3600+1800, off)
}

func TestDegreeRadian(t *testing.T) {
	assert.InDelta(t, math.Pi/2, Deg2Rad(90), 1e-12)
	assert.InDelta(t, -180.0, Rad2Deg(-math.Pi), 1e-9)
	assert.InDelta(t, 23.4392911, Rad2Deg(Deg2Rad(23.4392911)), 1e-12)
}
