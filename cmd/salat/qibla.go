package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/salat"
)

type qiblaReport struct {
	Latitude  string  `json:"latitude" yaml:"latitude"`
	Longitude string  `json:"longitude" yaml:"longitude"`
	Bearing   float64 `json:"bearing" yaml:"bearing"`
	Direction string  `json:"direction" yaml:"direction"`
}

func qiblaCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "qibla",
		Short: "Show the Qibla direction for the location",
		RunE: func(cmd *cobra.Command, args []string) error {
			bearing := salat.Qibla(a.loc)
			r := qiblaReport{
				Latitude:  a.loc.LatitudeDMS(),
				Longitude: a.loc.LongitudeDMS(),
				Bearing:   bearing,
				Direction: qiblaText(bearing),
			}
			return render(a.out, format, r, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Location: %s, %s\nQibla:    %s\n", r.Latitude, r.Longitude, r.Direction)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")
	return cmd
}

// qiblaText describes a west-positive bearing, e.g. "58.48° (58° 28' 48.0") E of true north".
func qiblaText(bearing float64) string {
	side := "W"
	if bearing < 0 {
		side = "E"
	}
	d := salat.ToDMS(math.Abs(bearing))
	return fmt.Sprintf("%.2f° (%d° %d' %.1f\") %s of true north", math.Abs(bearing), d.Degrees, d.Minutes, d.Seconds, side)
}
