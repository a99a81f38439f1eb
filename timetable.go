package salat

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Day is one row of a timetable.
type Day struct {
	Date   time.Time `json:"date" yaml:"date"`
	Times  Schedule  `json:"times" yaml:"times"`
	Imsaak Time      `json:"imsaak" yaml:"imsaak"`
}

// Timetable computes days consecutive schedules starting at the calendar
// date of from. The range is split into contiguous chunks, one per worker,
// and each worker walks its chunk with its own Calculator. opts are applied
// to every worker's Calculator.
//
// Dates in the result are local midnight in loc.Zone().
func Timetable(ctx context.Context, loc Location, m Method, from time.Time, days, workers int, opts ...Option) ([]Day, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: %d days", ErrInvalidRange, days)
	}
	if workers < 1 {
		workers = 1
	}
	if workers > days {
		workers = days
	}

	y, mo, d := from.Date()
	zone := loc.Zone()
	out := make([]Day, days)
	chunk := (days + workers - 1) / workers

	g, gCtx := errgroup.WithContext(ctx)
	for start := 0; start < days; start += chunk {
		end := min(start+chunk, days)

		g.Go(func() error {
			c := NewCalculator(opts...)
			for i := start; i < end; i++ {
				if err := gCtx.Err(); err != nil {
					return err
				}
				date := time.Date(y, mo, d+i, 0, 0, 0, 0, zone)
				out[i] = Day{
					Date:   date,
					Times:  c.PrayerTimes(loc, m, date),
					Imsaak: c.Imsaak(loc, m, date),
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("timetable: %w", err)
	}
	return out, nil
}
