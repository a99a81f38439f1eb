package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/salat"
)

type timesReport struct {
	Date       string  `json:"date" yaml:"date"`
	Method     string  `json:"method" yaml:"method"`
	Latitude   string  `json:"latitude" yaml:"latitude"`
	Longitude  string  `json:"longitude" yaml:"longitude"`
	UTCOffset  float64 `json:"utc_offset" yaml:"utc_offset"`
	DST        bool    `json:"dst" yaml:"dst"`
	Qibla      float64 `json:"qibla" yaml:"qibla"`
	Imsaak     string  `json:"imsaak" yaml:"imsaak"`
	Fajr       string  `json:"fajr" yaml:"fajr"`
	Shurooq    string  `json:"shurooq" yaml:"shurooq"`
	Dhuhr      string  `json:"dhuhr" yaml:"dhuhr"`
	Asr        string  `json:"asr" yaml:"asr"`
	Maghrib    string  `json:"maghrib" yaml:"maghrib"`
	Isha       string  `json:"isha" yaml:"isha"`
	NextImsaak string  `json:"next_imsaak" yaml:"next_imsaak"`
	NextFajr   string  `json:"next_fajr" yaml:"next_fajr"`
}

func timesCommand(a *app) *cobra.Command {
	var dateS, format string

	cmd := &cobra.Command{
		Use:   "times",
		Short: "Show the prayer times for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.parseDate(dateS)
			if err != nil {
				return err
			}
			r := a.times(date)
			return render(a.out, format, r, func(w io.Writer) error {
				return r.writeText(w)
			})
		},
	}

	cmd.Flags().StringVar(&dateS, "date", "", "Date in YYYY-MM-DD (defaults to today on the location's clock)")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")
	return cmd
}

func (a *app) times(date time.Time) timesReport {
	c := a.calculator()
	s := c.PrayerTimes(a.loc, a.method, date)

	return timesReport{
		Date:       date.Format("2006-01-02"),
		Method:     a.cfg.Method.Preset,
		Latitude:   a.loc.LatitudeDMS(),
		Longitude:  a.loc.LongitudeDMS(),
		UTCOffset:  a.loc.UTCOffset,
		DST:        a.loc.DST,
		Qibla:      salat.Qibla(a.loc),
		Imsaak:     c.Imsaak(a.loc, a.method, date).String(),
		Fajr:       s[salat.Fajr].String(),
		Shurooq:    s[salat.Shurooq].String(),
		Dhuhr:      s[salat.Dhuhr].String(),
		Asr:        s[salat.Asr].String(),
		Maghrib:    s[salat.Maghrib].String(),
		Isha:       s[salat.Isha].String(),
		NextImsaak: c.NextDayImsaak(a.loc, a.method, date).String(),
		NextFajr:   c.NextDayFajr(a.loc, a.method, date).String(),
	}
}

func (r timesReport) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, `Prayer times for %s (%s)
Location: %s, %s, UTC%+g
Qibla:    %s

Imsaak    %s
Fajr      %s
Shurooq   %s
Dhuhr     %s
Asr       %s
Maghrib   %s
Isha      %s

Tomorrow
Imsaak    %s
Fajr      %s

* extreme latitude adjustment
`,
		r.Date, r.Method,
		r.Latitude, r.Longitude, r.UTCOffset,
		qiblaText(r.Qibla),
		r.Imsaak, r.Fajr, r.Shurooq, r.Dhuhr, r.Asr, r.Maghrib, r.Isha,
		r.NextImsaak, r.NextFajr)
	return err
}
