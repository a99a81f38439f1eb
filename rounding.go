package salat

import "math"

const (
	roundSeconds           = 30
	aggressiveRoundSeconds = 1
)

// clockTime converts h into a clock reading for prayer p: offsets are added,
// negative values wrapped, seconds rounded per the method and daylight
// saving applied.
func clockTime(h hours, extreme bool, loc Location, m Method, p Prayer) Time {
	if !h.ok {
		return Time{Extreme: extreme}
	}

	bs := h.v
	if m.UseOffsets {
		slot := p
		if p == imsaak || p == nextFajr {
			slot = Fajr
		}
		bs += m.Offsets[slot] / 60.0
	}

	for bs < 0 {
		bs += 24
	}

	minutes := (bs - math.Floor(bs)) * 60
	seconds := (minutes - math.Floor(minutes)) * 60

	switch m.Rounding {
	case RoundNormal:
		if seconds >= roundSeconds {
			bs += 1 / 60.0
		}
		minutes = (bs - math.Floor(bs)) * 60
		seconds = 0

	case RoundSpecial, RoundAggressive:
		threshold := float64(roundSeconds)
		if m.Rounding == RoundAggressive {
			threshold = aggressiveRoundSeconds
		}
		// Shurooq and Imsaak are never rounded up.
		if p != Shurooq && p != imsaak && seconds >= threshold {
			bs += 1 / 60.0
			minutes = (bs - math.Floor(bs)) * 60
		}
		seconds = 0
	}

	if loc.DST {
		bs++
	}
	if bs >= 24 {
		bs = math.Mod(bs, 24)
	}

	return Time{
		Hour:    int(bs),
		Minute:  int(minutes),
		Second:  int(seconds),
		Extreme: extreme,
		Valid:   true,
	}
}
