package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/thurmanmarka/salat"
	"github.com/thurmanmarka/salat/internal/log"
)

// column is one compared event of the reference CSV.
type column struct {
	name   string
	prayer salat.Prayer
	imsaak bool
}

var knownColumns = map[string]column{
	"imsaak":  {name: "imsaak", imsaak: true},
	"fajr":    {name: "fajr", prayer: salat.Fajr},
	"shurooq": {name: "shurooq", prayer: salat.Shurooq},
	"sunrise": {name: "shurooq", prayer: salat.Shurooq},
	"dhuhr":   {name: "dhuhr", prayer: salat.Dhuhr},
	"asr":     {name: "asr", prayer: salat.Asr},
	"maghrib": {name: "maghrib", prayer: salat.Maghrib},
	"sunset":  {name: "maghrib", prayer: salat.Maghrib},
	"isha":    {name: "isha", prayer: salat.Isha},
}

// defaultColumns is the layout of a reference CSV without a header row.
var defaultColumns = []string{"fajr", "shurooq", "dhuhr", "asr", "maghrib", "isha"}

// errorStats collects signed errors in minutes (ours - reference) for one
// column, with the day offset of each sample for the drift regression.
type errorStats struct {
	name   string
	days   []float64
	signed []float64
}

func (s *errorStats) add(day, minutes float64) {
	s.days = append(s.days, day)
	s.signed = append(s.signed, minutes)
}

type statSummary struct {
	Prayer  string  `json:"prayer" yaml:"prayer"`
	Count   int     `json:"count" yaml:"count"`
	MeanAbs float64 `json:"mean_abs" yaml:"mean_abs"`
	MaxAbs  float64 `json:"max_abs" yaml:"max_abs"`
	Mean    float64 `json:"mean" yaml:"mean"`
	StdDev  float64 `json:"stddev" yaml:"stddev"`
	Drift   float64 `json:"drift_per_day" yaml:"drift_per_day"`
}

func (s *errorStats) summary() statSummary {
	out := statSummary{Prayer: s.name, Count: len(s.signed)}
	if out.Count == 0 {
		return out
	}

	abs := make([]float64, len(s.signed))
	for i, v := range s.signed {
		abs[i] = math.Abs(v)
	}
	out.MeanAbs = stat.Mean(abs, nil)
	out.MaxAbs = floats.Max(abs)
	out.Mean = stat.Mean(s.signed, nil)

	// Spread needs two samples and drift two distinct days; both stay zero
	// otherwise.
	if out.Count > 1 {
		out.StdDev = stat.StdDev(s.signed, nil)
	}
	if floats.Max(s.days) > floats.Min(s.days) {
		_, out.Drift = stat.LinearRegression(s.days, s.signed, nil, false)
	}
	return out
}

type comparison struct {
	Rows    int           `json:"rows" yaml:"rows"`
	Skipped int           `json:"skipped" yaml:"skipped"`
	Stats   []statSummary `json:"stats" yaml:"stats"`
}

// comparer walks the reference rows with one Calculator so consecutive dates
// reuse its cached positions.
type comparer struct {
	calc    *salat.Calculator
	loc     salat.Location
	method  salat.Method
	verbose io.Writer // per-row lines when not nil
	rowOut  *csv.Writer
}

// Reference CSV format:
//
//	date,fajr,shurooq,dhuhr,asr,maghrib,isha
//	2025-01-01,05:21,06:44,12:07,15:01,17:30,18:48
//
// A header row may name any subset of imsaak, fajr, shurooq (or sunrise),
// dhuhr, asr, maghrib (or sunset) and isha after the date column, in any
// order. Times are HH:MM or HH:MM:SS on the location's clock; an empty cell
// or "-" skips that event.
func (c *comparer) run(r io.Reader) (*comparison, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty CSV file")
	}

	names := defaultColumns
	start := 0
	if strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		names = records[0][1:]
		start = 1
	}

	cols := make([]column, len(names))
	stats := make([]*errorStats, len(names))
	for i, n := range names {
		col, ok := knownColumns[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", n)
		}
		cols[i] = col
		stats[i] = &errorStats{name: col.name}
	}

	if c.rowOut != nil {
		header := []string{"date"}
		for _, col := range cols {
			header = append(header, col.name+"_err")
		}
		if err := c.rowOut.Write(header); err != nil {
			return nil, fmt.Errorf("failed to write outcsv header: %w", err)
		}
	}

	zone := c.loc.Zone()
	res := &comparison{}
	var first time.Time

	for i := start; i < len(records); i++ {
		row := records[i]
		res.Rows++

		if len(row) < 2 {
			log.Warnw("row has no times, skipping", "row", i+1)
			res.Skipped++
			continue
		}

		dateStr := strings.TrimSpace(row[0])
		date, err := time.ParseInLocation("2006-01-02", dateStr, zone)
		if err != nil {
			log.Warnw("invalid date, skipping", "row", i+1, "date", dateStr, "error", err)
			res.Skipped++
			continue
		}
		if first.IsZero() {
			first = date
		}
		day := date.Sub(first).Hours() / 24

		s := c.calc.PrayerTimes(c.loc, c.method, date)
		var imsaak salat.Time
		for _, col := range cols {
			if col.imsaak {
				imsaak = c.calc.Imsaak(c.loc, c.method, date)
				break
			}
		}

		rec := []string{dateStr}
		for j, col := range cols {
			cell := ""
			if j+1 < len(row) {
				cell = strings.TrimSpace(row[j+1])
			}

			got := imsaak
			if !col.imsaak {
				got = s[col.prayer]
			}

			diff, ok, err := diffReference(got, cell, date)
			if err != nil {
				log.Warnw("invalid reference time", "row", i+1, "column", col.name, "value", cell, "error", err)
			}
			if !ok {
				rec = append(rec, "")
				continue
			}

			stats[j].add(day, diff)
			rec = append(rec, fmt.Sprintf("%.3f", diff))
			if c.verbose != nil {
				fmt.Fprintf(c.verbose, "%s %-8s got=%s ref=%s err=%+.2f min\n", dateStr, col.name, got, cell, diff)
			}
		}

		if c.rowOut != nil {
			if err := c.rowOut.Write(rec); err != nil {
				return nil, fmt.Errorf("row %d: failed to write outcsv: %w", i+1, err)
			}
		}
	}

	for _, s := range stats {
		res.Stats = append(res.Stats, s.summary())
	}
	return res, nil
}

// diffReference returns got minus the reference clock time in minutes,
// folded into half a day either way so times around midnight compare. ok is
// false when either side is missing.
func diffReference(got salat.Time, ref string, date time.Time) (float64, bool, error) {
	if ref == "" || ref == "-" || !got.Valid {
		return 0, false, nil
	}

	layout := "15:04"
	if strings.Count(ref, ":") == 2 {
		layout = "15:04:05"
	}
	parsed, err := time.Parse(layout, ref)
	if err != nil {
		return 0, false, err
	}

	ours, _ := got.On(date)
	want := time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, date.Location())

	d := ours.Sub(want).Minutes()
	switch {
	case d > 720:
		d -= 1440
	case d < -720:
		d += 1440
	}
	return d, true, nil
}

func compareCommand(a *app) *cobra.Command {
	var refCSV, outCSV, format string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare computed times against a reference CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if refCSV == "" {
				return errors.New("missing --refcsv (path to reference CSV)")
			}

			f, err := os.Open(refCSV)
			if err != nil {
				return fmt.Errorf("failed to open refcsv %q: %w", refCSV, err)
			}
			defer f.Close()

			c := &comparer{
				calc:   a.calculator(),
				loc:    a.loc,
				method: a.method,
			}
			if verbose {
				c.verbose = a.out
			}

			if outCSV != "" {
				outFile, err := os.Create(outCSV)
				if err != nil {
					return fmt.Errorf("failed to create outcsv %q: %w", outCSV, err)
				}
				defer outFile.Close()

				c.rowOut = csv.NewWriter(outFile)
				defer c.rowOut.Flush()
			}

			res, err := c.run(f)
			if err != nil {
				return err
			}
			return render(a.out, format, res, func(w io.Writer) error {
				return res.writeText(w, a)
			})
		},
	}

	cmd.Flags().StringVar(&refCSV, "refcsv", "", "Path to the reference CSV (date,fajr,shurooq,dhuhr,asr,maghrib,isha)")
	cmd.Flags().StringVar(&outCSV, "outcsv", "", "Optional path to write per-row errors")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Print per-row errors instead of only the summary")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")
	return cmd
}

func (res *comparison) writeText(w io.Writer, a *app) error {
	fmt.Fprintln(w, "=== salat compare summary ===")
	fmt.Fprintf(w, "Method:   %s\n", a.cfg.Method.Preset)
	fmt.Fprintf(w, "Location: %s, %s, UTC%+g\n", a.loc.LatitudeDMS(), a.loc.LongitudeDMS(), a.loc.UTCOffset)
	fmt.Fprintf(w, "Rows:     %d (processed), %d skipped\n", res.Rows-res.Skipped, res.Skipped)

	fmt.Fprintln(w, "\nError in minutes (ours - reference):")
	_, err := fmt.Fprintf(w, "%-8s %6s %8s %8s %8s %8s %10s\n", "prayer", "count", "mean|e|", "max|e|", "mean", "stddev", "drift/day")
	for _, s := range res.Stats {
		if s.Count == 0 {
			_, err = fmt.Fprintf(w, "%-8s %6d %8s %8s %8s %8s %10s\n", s.Prayer, 0, "-", "-", "-", "-", "-")
			continue
		}
		_, err = fmt.Fprintf(w, "%-8s %6d %8.3f %8.3f %8.3f %8.3f %10.4f\n",
			s.Prayer, s.Count, s.MeanAbs, s.MaxAbs, s.Mean, s.StdDev, s.Drift)
	}
	return err
}
