package salat

import "fmt"

const (
	// DefaultNearestLatitude is the latitude the nearest-latitude extreme
	// methods substitute for the observer's.
	DefaultNearestLatitude = 48.5

	// DefaultImsaakAngle is the angle added to the Fajr angle for Imsaak.
	DefaultImsaakAngle = 1.5

	// DefaultImsaakInterval is the number of minutes Imsaak precedes Fajr when
	// no Imsaak interval is configured and an interval has to be used.
	DefaultImsaakInterval = 10
)

// MethodID selects one of the preset calculation methods.
type MethodID int

const (
	// MethodNone leaves both twilight angles at zero.
	MethodNone MethodID = iota
	// MethodEgyptSurvey is the Egyptian General Authority of Survey (20/18).
	MethodEgyptSurvey
	// MethodKarachiShafi is the University of Islamic Sciences, Karachi (18/18).
	MethodKarachiShafi
	// MethodKarachiHanafi is MethodKarachiShafi with the Hanafi Asr shadow.
	MethodKarachiHanafi
	// MethodNorthAmerica is the Islamic Society of North America (15/15).
	MethodNorthAmerica
	// MethodMuslimLeague is the Muslim World League (18/17).
	MethodMuslimLeague
	// MethodUmmAlQura is Umm al-Qura, Makkah: Fajr at 19, Isha 90 minutes
	// after Maghrib.
	MethodUmmAlQura
	// MethodFixedIsha is Fajr at 19.5 with Isha always 90 minutes after
	// Maghrib.
	MethodFixedIsha
	// MethodEgyptNew is the current Egyptian General Authority of Survey
	// (19.5/17.5).
	MethodEgyptNew
)

var methodNames = map[MethodID]string{
	MethodNone:          "none",
	MethodEgyptSurvey:   "egypt-survey",
	MethodKarachiShafi:  "karachi-shafi",
	MethodKarachiHanafi: "karachi-hanafi",
	MethodNorthAmerica:  "north-america",
	MethodMuslimLeague:  "muslim-league",
	MethodUmmAlQura:     "umm-al-qura",
	MethodFixedIsha:     "fixed-isha",
	MethodEgyptNew:      "egypt-new",
}

func (id MethodID) String() string {
	if s, ok := methodNames[id]; ok {
		return s
	}
	return fmt.Sprintf("MethodID(%d)", int(id))
}

// ParseMethodID returns the preset with the given name as printed by
// MethodID.String.
func ParseMethodID(name string) (MethodID, error) {
	for id, s := range methodNames {
		if s == name {
			return id, nil
		}
	}
	return MethodNone, fmt.Errorf("unknown calculation method %q", name)
}

// MethodNames returns the preset names in id order.
func MethodNames() []string {
	names := make([]string, 0, len(methodNames))
	for id := MethodNone; id <= MethodEgyptNew; id++ {
		names = append(names, methodNames[id])
	}
	return names
}

// ExtremeMethod selects how Fajr and Isha are produced when the Sun does not
// reach the configured depression angle.
type ExtremeMethod int

const (
	// ExtremeNone leaves unsolvable times undefined.
	ExtremeNone ExtremeMethod = iota
	// ExtremeNearestLatitudeAll recomputes every prayer at the nearest
	// latitude, always.
	ExtremeNearestLatitudeAll
	// ExtremeNearestLatitudeAlways recomputes Fajr and Isha at the nearest
	// latitude, always.
	ExtremeNearestLatitudeAlways
	// ExtremeNearestLatitudeInvalid recomputes Fajr and Isha at the nearest
	// latitude when they are undefined.
	ExtremeNearestLatitudeInvalid
	// ExtremeNearestGoodDayAll takes every prayer from the nearest day on
	// which Fajr and Isha are both defined.
	ExtremeNearestGoodDayAll
	// ExtremeNearestGoodDayInvalid takes Fajr and Isha from the nearest good
	// day when they are undefined.
	ExtremeNearestGoodDayInvalid
	// ExtremeSeventhOfNightAlways puts Fajr and Isha a seventh of the night
	// from sunrise and sunset.
	ExtremeSeventhOfNightAlways
	// ExtremeSeventhOfNightInvalid is ExtremeSeventhOfNightAlways applied to
	// undefined times only.
	ExtremeSeventhOfNightInvalid
	// ExtremeSeventhOfDayAlways puts Fajr and Isha a seventh of the day from
	// sunrise and sunset.
	ExtremeSeventhOfDayAlways
	// ExtremeSeventhOfDayInvalid is ExtremeSeventhOfDayAlways applied to
	// undefined times only.
	ExtremeSeventhOfDayInvalid
	// ExtremeHalfOfNightAlways places Fajr and Isha around the middle of the
	// night, offset by the configured intervals.
	ExtremeHalfOfNightAlways
	// ExtremeHalfOfNightInvalid is ExtremeHalfOfNightAlways applied to
	// undefined times only.
	ExtremeHalfOfNightInvalid
	// ExtremeMinutesAlways derives Fajr and Isha from sunrise and sunset by
	// the configured intervals, always.
	ExtremeMinutesAlways
	// ExtremeMinutesInvalid derives undefined Fajr and Isha from sunrise and
	// sunset by the configured intervals.
	ExtremeMinutesInvalid
	// ExtremeNearestGoodDayInvalidSame takes both Fajr and Isha from the
	// nearest good day when either is undefined.
	ExtremeNearestGoodDayInvalidSame
)

var extremeNames = [...]string{
	"none",
	"nearest-latitude-all",
	"nearest-latitude-always",
	"nearest-latitude-invalid",
	"nearest-good-day-all",
	"nearest-good-day-invalid",
	"seventh-of-night-always",
	"seventh-of-night-invalid",
	"seventh-of-day-always",
	"seventh-of-day-invalid",
	"half-of-night-always",
	"half-of-night-invalid",
	"minutes-always",
	"minutes-invalid",
	"nearest-good-day-invalid-same",
}

func (e ExtremeMethod) String() string {
	if e >= 0 && int(e) < len(extremeNames) {
		return extremeNames[e]
	}
	return fmt.Sprintf("ExtremeMethod(%d)", int(e))
}

// onlyIfInvalid reports whether e does nothing on days where every prayer
// was solved directly.
func (e ExtremeMethod) onlyIfInvalid() bool {
	switch e {
	case ExtremeNearestLatitudeInvalid, ExtremeNearestGoodDayInvalid,
		ExtremeSeventhOfNightInvalid, ExtremeSeventhOfDayInvalid,
		ExtremeHalfOfNightInvalid, ExtremeMinutesInvalid,
		ExtremeNearestGoodDayInvalidSame:
		return true
	}
	return false
}

// ownsIntervals reports whether e consumes the Fajr and Isha intervals
// itself, in which case they are not applied again afterwards.
func (e ExtremeMethod) ownsIntervals() bool {
	return e == ExtremeMinutesInvalid || e == ExtremeHalfOfNightInvalid || e == ExtremeHalfOfNightAlways
}

// Rounding selects how seconds are folded into the minute.
type Rounding int

const (
	// RoundNone keeps the computed seconds.
	RoundNone Rounding = iota
	// RoundNormal adds a minute for 30 seconds or more, for every prayer.
	RoundNormal
	// RoundSpecial is RoundNormal except that Shurooq and Imsaak are always
	// rounded down.
	RoundSpecial
	// RoundAggressive is RoundSpecial with a threshold of one second.
	RoundAggressive
)

// Madhab selects the Asr shadow ratio.
type Madhab int

const (
	// Shafii is the single shadow length used by most schools.
	Shafii Madhab = 1
	// Hanafi is the double shadow length.
	Hanafi Madhab = 2
)

// shadowRatio returns the shadow ratio for m. Anything other than Hanafi
// uses the single shadow.
func (m Madhab) shadowRatio() float64 {
	if m == Hanafi {
		return 2
	}
	return 1
}

// Method holds the calculation parameters. The zero value is not useful;
// start from NewMethod and adjust fields.
type Method struct {
	FajrAngle   float64 // depression of the Sun at Fajr, degrees
	IshaAngle   float64 // depression of the Sun at Isha, degrees
	ImsaakAngle float64 // added to FajrAngle for Imsaak, degrees

	// Minutes between Fajr and Shurooq, Maghrib and Isha, and Imsaak and
	// Fajr. Zero disables the interval and the angle is used instead.
	FajrInterval   float64
	IshaInterval   float64
	ImsaakInterval float64

	Rounding        Rounding
	Madhab          Madhab
	NearestLatitude float64
	Extreme         ExtremeMethod

	// Offsets, in minutes, added to each prayer when UseOffsets is set.
	// Imsaak and next-day Fajr use the Fajr slot.
	UseOffsets bool
	Offsets    [6]float64
}

// NewMethod returns the preset method id. Unknown ids return the MethodNone
// preset.
func NewMethod(id MethodID) Method {
	m := Method{
		ImsaakAngle:     DefaultImsaakAngle,
		Rounding:        RoundSpecial,
		Madhab:          Shafii,
		NearestLatitude: DefaultNearestLatitude,
		Extreme:         ExtremeNearestGoodDayInvalid,
	}

	switch id {
	case MethodEgyptSurvey:
		m.FajrAngle, m.IshaAngle = 20, 18
	case MethodKarachiShafi:
		m.FajrAngle, m.IshaAngle = 18, 18
	case MethodKarachiHanafi:
		m.FajrAngle, m.IshaAngle = 18, 18
		m.Madhab = Hanafi
	case MethodNorthAmerica:
		m.FajrAngle, m.IshaAngle = 15, 15
	case MethodMuslimLeague:
		m.FajrAngle, m.IshaAngle = 18, 17
	case MethodUmmAlQura:
		m.FajrAngle = 19
		m.IshaInterval = 90
	case MethodFixedIsha:
		m.FajrAngle = 19.5
		m.IshaInterval = 90
	case MethodEgyptNew:
		m.FajrAngle, m.IshaAngle = 19.5, 17.5
	}
	return m
}
