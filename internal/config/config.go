// Package config loads the command line settings from defaults, an optional
// config file, SALAT_* environment variables and flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/thurmanmarka/salat"
)

// EnvPrefix prefixes every environment variable, e.g. SALAT_LOCATION_LATITUDE.
const EnvPrefix = "SALAT"

// ErrorType categorizes configuration loading failures.
type ErrorType string

const (
	// ErrRead indicates the config file could not be read or parsed.
	ErrRead ErrorType = "READ_FAILED"
	// ErrParsing indicates a value could not be decoded into its field.
	ErrParsing ErrorType = "PARSING_FAILED"
	// ErrValidation indicates the configuration failed validation rules.
	ErrValidation ErrorType = "VALIDATION_FAILED"
)

// Error is returned by Load.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config is the full set of settings.
type Config struct {
	Debug    bool           `mapstructure:"debug"`
	Workers  int            `mapstructure:"workers" validate:"min=1,max=256"`
	Location LocationConfig `mapstructure:"location"`
	Method   MethodConfig   `mapstructure:"method"`
}

// LocationConfig describes the observer.
type LocationConfig struct {
	Latitude    float64 `mapstructure:"latitude" validate:"latitude"`
	Longitude   float64 `mapstructure:"longitude" validate:"longitude"`
	UTCOffset   float64 `mapstructure:"utc_offset" validate:"min=-12,max=14"`
	DST         bool    `mapstructure:"dst"`
	Elevation   float64 `mapstructure:"elevation" validate:"min=-500,max=9000"`
	Pressure    float64 `mapstructure:"pressure" validate:"gt=0,max=1100"`
	Temperature float64 `mapstructure:"temperature" validate:"min=-90,max=60"`
}

// MethodConfig starts from a preset. The pointer fields override the
// preset only when set.
type MethodConfig struct {
	Preset          string    `mapstructure:"preset" validate:"required,preset"`
	FajrAngle       *float64  `mapstructure:"fajr_angle" validate:"omitempty,min=0,max=30"`
	IshaAngle       *float64  `mapstructure:"isha_angle" validate:"omitempty,min=0,max=30"`
	FajrInterval    *float64  `mapstructure:"fajr_interval" validate:"omitempty,min=0,max=300"`
	IshaInterval    *float64  `mapstructure:"isha_interval" validate:"omitempty,min=0,max=300"`
	ImsaakAngle     float64   `mapstructure:"imsaak_angle" validate:"min=0,max=10"`
	ImsaakInterval  float64   `mapstructure:"imsaak_interval" validate:"min=0,max=120"`
	Madhab          string    `mapstructure:"madhab" validate:"omitempty,oneof=shafii hanafi"`
	Rounding        int       `mapstructure:"rounding" validate:"min=0,max=3"`
	Extreme         int       `mapstructure:"extreme" validate:"min=0,max=14"`
	NearestLatitude float64   `mapstructure:"nearest_latitude" validate:"min=0,max=90"`
	Offsets         []float64 `mapstructure:"offsets" validate:"omitempty,len=6,dive,min=-720,max=720"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("workers", 4)

	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)
	v.SetDefault("location.utc_offset", 0.0)
	v.SetDefault("location.dst", false)
	v.SetDefault("location.elevation", 0.0)
	v.SetDefault("location.pressure", salat.StandardPressure)
	v.SetDefault("location.temperature", salat.StandardTemperature)

	v.SetDefault("method.preset", salat.MethodMuslimLeague.String())
	v.SetDefault("method.imsaak_angle", salat.DefaultImsaakAngle)
	v.SetDefault("method.imsaak_interval", 0.0)
	v.SetDefault("method.madhab", "")
	v.SetDefault("method.rounding", int(salat.RoundSpecial))
	v.SetDefault("method.extreme", int(salat.ExtremeNearestGoodDayInvalid))
	v.SetDefault("method.nearest_latitude", salat.DefaultNearestLatitude)
}

// Keys without a default are invisible to AutomaticEnv and need explicit
// binding.
var overrideKeys = []string{
	"method.fajr_angle",
	"method.isha_angle",
	"method.fajr_interval",
	"method.isha_interval",
	"method.offsets",
}

// flagKeys maps flag names registered by AddFlags to config keys.
var flagKeys = map[string]string{
	"debug":            "debug",
	"workers":          "workers",
	"lat":              "location.latitude",
	"lon":              "location.longitude",
	"utc-offset":       "location.utc_offset",
	"dst":              "location.dst",
	"elevation":        "location.elevation",
	"pressure":         "location.pressure",
	"temperature":      "location.temperature",
	"method":           "method.preset",
	"fajr-angle":       "method.fajr_angle",
	"isha-angle":       "method.isha_angle",
	"fajr-interval":    "method.fajr_interval",
	"isha-interval":    "method.isha_interval",
	"imsaak-angle":     "method.imsaak_angle",
	"imsaak-interval":  "method.imsaak_interval",
	"madhab":           "method.madhab",
	"rounding":         "method.rounding",
	"extreme":          "method.extreme",
	"nearest-latitude": "method.nearest_latitude",
	"offsets":          "method.offsets",
}

// AddFlags registers the command line flags understood by Load.
func AddFlags(fs *pflag.FlagSet) {
	fs.Bool("debug", false, "Enable debug logging")
	fs.Int("workers", 4, "Number of timetable workers")

	fs.Float64("lat", 0, "Latitude in degrees, north positive")
	fs.Float64("lon", 0, "Longitude in degrees, east positive")
	fs.Float64("utc-offset", 0, "Hours east of Greenwich at standard time")
	fs.Bool("dst", false, "Add one hour for daylight saving time")
	fs.Float64("elevation", 0, "Elevation in meters")
	fs.Float64("pressure", salat.StandardPressure, "Pressure in millibars")
	fs.Float64("temperature", salat.StandardTemperature, "Temperature in Celsius")

	fs.String("method", salat.MethodMuslimLeague.String(),
		"Calculation method: "+strings.Join(salat.MethodNames(), ", "))
	fs.Float64("fajr-angle", 0, "Override the preset Fajr angle")
	fs.Float64("isha-angle", 0, "Override the preset Isha angle")
	fs.Float64("fajr-interval", 0, "Override the preset Fajr interval in minutes")
	fs.Float64("isha-interval", 0, "Override the preset Isha interval in minutes")
	fs.Float64("imsaak-angle", salat.DefaultImsaakAngle, "Imsaak angle added to the Fajr angle")
	fs.Float64("imsaak-interval", 0, "Minutes between Imsaak and Fajr")
	fs.String("madhab", "", "Asr shadow: shafii or hanafi (default from the preset)")
	fs.Int("rounding", int(salat.RoundSpecial), "Rounding: 0 none, 1 normal, 2 special, 3 aggressive")
	fs.Int("extreme", int(salat.ExtremeNearestGoodDayInvalid), "Extreme latitude method id (0-14)")
	fs.Float64("nearest-latitude", salat.DefaultNearestLatitude, "Latitude used by the nearest-latitude methods")
	fs.Float64Slice("offsets", nil, "Six per-prayer offsets in minutes")
}

// Load reads the configuration. path may be empty; flags may be nil. Only
// flags the user actually changed take precedence over the other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range overrideKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, &Error{Type: ErrParsing, Message: "binding " + key, Err: err}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &Error{Type: ErrRead, Message: "failed to read config file " + path, Err: err}
		}
	}

	if flags != nil {
		var err error
		flags.Visit(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok || err != nil {
				return
			}
			if f.Value.Type() == "float64Slice" {
				var vals []float64
				vals, err = flags.GetFloat64Slice(f.Name)
				v.Set(key, vals)
				return
			}
			v.Set(key, f.Value.String())
		})
		if err != nil {
			return nil, &Error{Type: ErrParsing, Message: "failed to read flags", Err: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &Error{Type: ErrParsing, Message: "failed to decode configuration", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and the preset name.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("preset", func(fl validator.FieldLevel) bool {
		_, err := salat.ParseMethodID(fl.Field().String())
		return err == nil
	}); err != nil {
		return &Error{Type: ErrValidation, Message: "registering preset validation", Err: err}
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return &Error{Type: ErrValidation, Message: "invalid " + strings.Join(fields, ", "), Err: err}
		}
		return &Error{Type: ErrValidation, Message: "configuration validation failed", Err: err}
	}
	return nil
}

// ToLocation returns the observer described by c.
func (c *Config) ToLocation() salat.Location {
	l := c.Location
	return salat.Location{
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		UTCOffset:   l.UTCOffset,
		DST:         l.DST,
		Elevation:   l.Elevation,
		Pressure:    l.Pressure,
		Temperature: l.Temperature,
	}
}

// ToMethod returns the preset with every configured override applied.
func (c *Config) ToMethod() (salat.Method, error) {
	mc := c.Method
	id, err := salat.ParseMethodID(mc.Preset)
	if err != nil {
		return salat.Method{}, err
	}

	m := salat.NewMethod(id)
	if mc.FajrAngle != nil {
		m.FajrAngle = *mc.FajrAngle
	}
	if mc.IshaAngle != nil {
		m.IshaAngle = *mc.IshaAngle
	}
	if mc.FajrInterval != nil {
		m.FajrInterval = *mc.FajrInterval
	}
	if mc.IshaInterval != nil {
		m.IshaInterval = *mc.IshaInterval
	}
	m.ImsaakAngle = mc.ImsaakAngle
	m.ImsaakInterval = mc.ImsaakInterval

	switch mc.Madhab {
	case "shafii":
		m.Madhab = salat.Shafii
	case "hanafi":
		m.Madhab = salat.Hanafi
	}

	m.Rounding = salat.Rounding(mc.Rounding)
	m.Extreme = salat.ExtremeMethod(mc.Extreme)
	m.NearestLatitude = mc.NearestLatitude

	if len(mc.Offsets) == len(m.Offsets) {
		copy(m.Offsets[:], mc.Offsets)
		m.UseOffsets = true
	}
	return m, nil
}
