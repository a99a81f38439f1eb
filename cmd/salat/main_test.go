package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/salat"
)

var makkah = []string{"--lat=21.4225", "--lon=39.8262", "--utc-offset=3", "--method=umm-al-qura"}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestTimesJSON(t *testing.T) {
	out := run(t, append([]string{"times", "--date=2024-03-10", "--format=json"}, makkah...)...)

	var r timesReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))

	loc := salat.NewLocation(21.4225, 39.8262, 3)
	m := salat.NewMethod(salat.MethodUmmAlQura)
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, loc.Zone())
	s := salat.PrayerTimes(loc, m, date)

	assert.Equal(t, "2024-03-10", r.Date)
	assert.Equal(t, "umm-al-qura", r.Method)
	assert.Equal(t, s[salat.Fajr].String(), r.Fajr)
	assert.Equal(t, s[salat.Isha].String(), r.Isha)
	assert.Equal(t, salat.Imsaak(loc, m, date).String(), r.Imsaak)
	assert.Equal(t, salat.NextDayFajr(loc, m, date).String(), r.NextFajr)
	assert.Equal(t, loc.LatitudeDMS(), r.Latitude)
	assert.InDelta(t, salat.Qibla(loc), r.Qibla, 1e-9)
}

func TestTimesText(t *testing.T) {
	out := run(t, append([]string{"times", "--date=2024-03-10"}, makkah...)...)
	assert.Contains(t, out, "Prayer times for 2024-03-10 (umm-al-qura)")
	assert.Contains(t, out, "UTC+3")
	for _, p := range []string{"Imsaak", "Fajr", "Shurooq", "Dhuhr", "Asr", "Maghrib", "Isha", "Tomorrow"} {
		assert.Contains(t, out, p)
	}
}

func TestTableYAML(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := run(t, append([]string{"table", "--from=2024-12-30", "--days=4", "--workers=2", "--format=yaml"}, makkah...)...)

	var rows []tableRow
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "2024-12-30", rows[0].Date)
	assert.Equal(t, "2025-01-02", rows[3].Date)
	for _, r := range rows {
		assert.NotEqual(t, "--:--:--", r.Fajr)
		assert.NotEqual(t, "--:--:--", r.Isha)
	}
}

func TestTableInvalidRange(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs(append([]string{"table", "--days=0"}, makkah...))
	err := cmd.Execute()
	require.ErrorIs(t, err, salat.ErrInvalidRange)
}

func TestQibla(t *testing.T) {
	out := run(t, "qibla", "--lat=40.7128", "--lon=-74.0060")
	assert.Contains(t, out, "° (58° ")
	assert.Contains(t, out, "E of true north")

	out = run(t, "qibla", "--lat=51.5074", "--lon=-0.1278", "--format=json")
	var r qiblaReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.InDelta(t, -118.99, r.Bearing, 0.05)
}

func TestUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs(append([]string{"times", "--format=xml"}, makkah...))
	require.ErrorContains(t, cmd.Execute(), `unknown format "xml"`)
}

func TestInvalidConfig(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs([]string{"times", "--lat=95"})
	require.ErrorContains(t, cmd.Execute(), "VALIDATION_FAILED")
}

func TestCompare(t *testing.T) {
	loc := salat.NewLocation(21.4225, 39.8262, 3)
	m := salat.NewMethod(salat.MethodUmmAlQura)
	m.Rounding = salat.RoundNormal

	// A reference running one minute late everywhere, with one missing cell.
	var csvBuf strings.Builder
	csvBuf.WriteString("date,imsaak,fajr,dhuhr,maghrib\n")
	const days = 10
	c := salat.NewCalculator()
	for i := 0; i < days; i++ {
		date := time.Date(2024, time.March, 1+i, 0, 0, 0, 0, loc.Zone())
		s := c.PrayerTimes(loc, m, date)
		late := func(tm salat.Time) string {
			at, ok := tm.On(date)
			require.True(t, ok)
			return at.Add(time.Minute).Format("15:04")
		}
		dhuhr := late(s[salat.Dhuhr])
		if i == 3 {
			dhuhr = "-"
		}
		fmt.Fprintf(&csvBuf, "%s,%s,%s,%s,%s\n", date.Format("2006-01-02"),
			late(c.Imsaak(loc, m, date)), late(s[salat.Fajr]), dhuhr, late(s[salat.Maghrib]))
	}

	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.csv")
	rows := filepath.Join(dir, "rows.csv")
	require.NoError(t, os.WriteFile(ref, []byte(csvBuf.String()), 0o600))

	out := run(t, append([]string{"compare", "--refcsv=" + ref, "--outcsv=" + rows, "--rounding=1", "--format=json"}, makkah...)...)

	var res comparison
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, days, res.Rows)
	assert.Zero(t, res.Skipped)
	require.Len(t, res.Stats, 4)

	for _, s := range res.Stats {
		want := days
		if s.Prayer == "dhuhr" {
			want = days - 1
		}
		assert.Equal(t, want, s.Count, s.Prayer)
		assert.InDelta(t, -1, s.Mean, 1e-9, s.Prayer)
		assert.InDelta(t, 1, s.MeanAbs, 1e-9, s.Prayer)
		assert.InDelta(t, 0, s.StdDev, 1e-9, s.Prayer)
		assert.InDelta(t, 0, s.Drift, 1e-9, s.Prayer)
	}

	written, err := os.ReadFile(rows)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(written)), "\n")
	require.Len(t, lines, days+1)
	assert.Equal(t, "date,imsaak_err,fajr_err,dhuhr_err,maghrib_err", lines[0])
	assert.Equal(t, "2024-03-04,-1.000,-1.000,,-1.000", lines[4])
}

func TestCompareUnknownColumn(t *testing.T) {
	c := &comparer{calc: salat.NewCalculator(), loc: salat.NewLocation(0, 0, 0), method: salat.NewMethod(salat.MethodNone)}
	_, err := c.run(strings.NewReader("date,tahajjud\n2024-01-01,02:00\n"))
	require.ErrorContains(t, err, `unknown column "tahajjud"`)
}

func TestDiffReferenceAcrossMidnight(t *testing.T) {
	zone := time.FixedZone("", 0)
	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, zone)

	got := salat.Time{Hour: 0, Minute: 5, Valid: true}
	d, ok, err := diffReference(got, "23:55", date)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 10, d, 1e-9)

	_, ok, err = diffReference(salat.Time{}, "23:55", date)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = diffReference(got, "noon", date)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestQiblaText(t *testing.T) {
	assert.Equal(t, `10.50° (10° 30' 0.0") W of true north`, qiblaText(10.5))
	assert.Equal(t, `90.00° (90° 0' 0.0") E of true north`, qiblaText(-90))
}
