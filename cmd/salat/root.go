package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/salat"
	"github.com/thurmanmarka/salat/internal/config"
	"github.com/thurmanmarka/salat/internal/log"
)

// app carries what PersistentPreRunE resolved to the subcommands.
type app struct {
	out     io.Writer
	cfgPath string

	cfg    *config.Config
	loc    salat.Location
	method salat.Method
	logger *zap.SugaredLogger
}

// rootCommand creates the salat command tree writing results to out.
func rootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:           "salat",
		Short:         "Islamic prayer times, Imsaak and Qibla",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Path to a YAML, TOML or JSON config file")
	config.AddFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		timesCommand(a),
		tableCommand(a),
		qiblaCommand(a),
		compareCommand(a),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.initialize(cmd)
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		log.Sync()
	}

	return rootCmd
}

// initialize loads the configuration with the command's flags on top and
// sets up logging.
func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath, cmd.Flags())
	if err != nil {
		return err
	}

	if err := log.Init(cfg.Debug); err != nil {
		return err
	}
	a.logger = log.GetSugaredLogger()

	m, err := cfg.ToMethod()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.loc = cfg.ToLocation()
	a.method = m

	if a.loc.Latitude == 0 && a.loc.Longitude == 0 {
		log.Warnw("lat=0 lon=0 (Gulf of Guinea); set --lat and --lon or SALAT_LOCATION_LATITUDE/LONGITUDE")
	}
	log.Debugw("configuration loaded",
		"latitude", a.loc.Latitude,
		"longitude", a.loc.Longitude,
		"utc_offset", a.loc.UTCOffset,
		"method", cfg.Method.Preset,
		"extreme", a.method.Extreme.String())
	return nil
}

// parseDate reads a YYYY-MM-DD date in the location's zone. An empty string
// means today on the location's clock.
func (a *app) parseDate(s string) (time.Time, error) {
	zone := a.loc.Zone()
	if s == "" {
		now := time.Now().In(zone)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, zone), nil
	}
	date, err := time.ParseInLocation("2006-01-02", s, zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return date, nil
}

func (a *app) calculator() *salat.Calculator {
	return salat.NewCalculator(salat.WithLogger(a.logger))
}
