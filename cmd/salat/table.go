package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/salat"
	"github.com/thurmanmarka/salat/internal/log"
)

type tableRow struct {
	Date    string `json:"date" yaml:"date"`
	Imsaak  string `json:"imsaak" yaml:"imsaak"`
	Fajr    string `json:"fajr" yaml:"fajr"`
	Shurooq string `json:"shurooq" yaml:"shurooq"`
	Dhuhr   string `json:"dhuhr" yaml:"dhuhr"`
	Asr     string `json:"asr" yaml:"asr"`
	Maghrib string `json:"maghrib" yaml:"maghrib"`
	Isha    string `json:"isha" yaml:"isha"`
}

func tableCommand(a *app) *cobra.Command {
	var fromS, format string
	var days int

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show a timetable of consecutive days",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := a.parseDate(fromS)
			if err != nil {
				return err
			}

			log.Debugw("computing timetable", "from", from.Format("2006-01-02"), "days", days, "workers", a.cfg.Workers)
			tt, err := salat.Timetable(cmd.Context(), a.loc, a.method, from, days, a.cfg.Workers,
				salat.WithLogger(a.logger))
			if err != nil {
				return err
			}

			rows := make([]tableRow, len(tt))
			for i, d := range tt {
				rows[i] = tableRow{
					Date:    d.Date.Format("2006-01-02"),
					Imsaak:  d.Imsaak.String(),
					Fajr:    d.Times[salat.Fajr].String(),
					Shurooq: d.Times[salat.Shurooq].String(),
					Dhuhr:   d.Times[salat.Dhuhr].String(),
					Asr:     d.Times[salat.Asr].String(),
					Maghrib: d.Times[salat.Maghrib].String(),
					Isha:    d.Times[salat.Isha].String(),
				}
			}

			return render(a.out, format, rows, func(w io.Writer) error {
				return writeTable(w, rows)
			})
		},
	}

	cmd.Flags().StringVar(&fromS, "from", "", "First date in YYYY-MM-DD (defaults to today)")
	cmd.Flags().IntVar(&days, "days", 30, "Number of days")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")
	return cmd
}

func writeTable(w io.Writer, rows []tableRow) error {
	const layout = "%-10s  %-9s %-9s %-9s %-9s %-9s %-9s %-9s\n"
	if _, err := fmt.Fprintf(w, layout, "Date", "Imsaak", "Fajr", "Shurooq", "Dhuhr", "Asr", "Maghrib", "Isha"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, layout, r.Date, r.Imsaak, r.Fajr, r.Shurooq, r.Dhuhr, r.Asr, r.Maghrib, r.Isha); err != nil {
			return err
		}
	}
	return nil
}
