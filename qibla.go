package salat

import (
	"fmt"
	"math"

	"github.com/thurmanmarka/salat/internal/timeutil"
)

// Kaaba coordinates in degrees.
const (
	KaabaLatitude  = 21.423333
	KaabaLongitude = 39.823333
)

// Qibla returns the great-circle direction of the Kaaba from loc in degrees
// from true north. Positive values are west of north, negative east.
func Qibla(loc Location) float64 {
	dLon := timeutil.Deg2Rad(loc.Longitude) - timeutil.Deg2Rad(KaabaLongitude)
	rLat := timeutil.Deg2Rad(loc.Latitude)

	num := math.Sin(dLon)
	denom := math.Cos(rLat)*math.Tan(timeutil.Deg2Rad(KaabaLatitude)) - math.Sin(rLat)*math.Cos(dLon)
	return timeutil.Rad2Deg(math.Atan2(num, denom))
}

// DMS is an angle in degrees, minutes and seconds. The parts carry the sign
// of the decimal angle they came from.
type DMS struct {
	Degrees int
	Minutes int
	Seconds float64
}

// ToDMS splits a decimal angle, truncating toward zero.
func ToDMS(decimal float64) DMS {
	deg := math.Trunc(decimal)
	minutes := (decimal - deg) * 60
	whole := math.Trunc(minutes)
	return DMS{
		Degrees: int(deg),
		Minutes: int(whole),
		Seconds: (minutes - whole) * 60,
	}
}

// Decimal returns the angle in decimal degrees. A hemisphere of S or W (in
// either case) makes the result negative; pass 0 for none.
func (a DMS) Decimal(hemisphere byte) float64 {
	sum := float64(a.Degrees) + float64(a.Minutes)/60 + a.Seconds/3600
	switch hemisphere {
	case 'S', 's', 'W', 'w':
		return -sum
	}
	return sum
}

// Abs returns a with every part made non-negative.
func (a DMS) Abs() DMS {
	return DMS{Degrees: abs(a.Degrees), Minutes: abs(a.Minutes), Seconds: math.Abs(a.Seconds)}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Format renders a as e.g. 36° 17' 11.0" N, with pos or neg chosen by the
// sign of the original decimal angle.
func (a DMS) Format(pos, neg byte) string {
	h := pos
	if a.Degrees < 0 || a.Minutes < 0 || a.Seconds < 0 {
		h = neg
	}
	b := a.Abs()
	return fmt.Sprintf("%d° %d' %4.1f\" %c", b.Degrees, b.Minutes, b.Seconds, h)
}

// LatitudeDMS returns the location's latitude in degrees, minutes and
// seconds with N or S.
func (l Location) LatitudeDMS() string {
	return ToDMS(l.Latitude).Format('N', 'S')
}

// LongitudeDMS returns the location's longitude with E or W.
func (l Location) LongitudeDMS() string {
	return ToDMS(l.Longitude).Format('E', 'W')
}
