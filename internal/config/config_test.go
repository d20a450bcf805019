package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-work-ledger/internal/config"
	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FirstRunWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(filepath.Dir(path)), cfg)
	assert.FileExists(t, path)

	// The written template parses to the same defaults.
	again, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "holidays:\n  country: de\n")
	dir := filepath.Dir(path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ledger.csv"), cfg.Ledger.Path)
	assert.Equal(t, filepath.Join(dir, "absences.yaml"), cfg.Holidays.AbsencesFile)
	assert.Equal(t, 8.0, cfg.Work.StandardHours)
	require.NotNil(t, cfg.Work.DefaultLunchMinutes)
	assert.Equal(t, 30, *cfg.Work.DefaultLunchMinutes)
	assert.Equal(t, "vacation", cfg.Gaps.DefaultReason)
	assert.Equal(t, config.DefaultTenantID, cfg.Outlook.TenantID)
	assert.Equal(t, config.DefaultClientID, cfg.Outlook.ClientID)

	opts, err := cfg.LedgerOptions()
	require.NoError(t, err)
	assert.Equal(t, ledger.Options{
		DateLayout:    "2006-01-02",
		StandardHours: 8,
		WorkDays:      ledger.DefaultWorkDays,
		GapPolicy:     ledger.FillAllGaps,
		DefaultReason: "vacation",
	}, opts)
}

func TestLoad_ZeroLunchIsKept(t *testing.T) {
	path := writeConfig(t, "work:\n  default_lunch_minutes: 0\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, *cfg.Work.DefaultLunchMinutes)
}

func TestLoad_Custom(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "ledger.db")
	path := writeConfig(t, `
ledger:
  path: `+abs+`
  date_format: "%d.%m.%Y"
work:
  standard_hours: 7.5
  days: [Monday, tue, WED, thu]
gaps:
  policy: weekends_and_holidays
  default_reason: Urlaub
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Ledger.Path)

	opts, err := cfg.LedgerOptions()
	require.NoError(t, err)
	assert.Equal(t, "02.01.2006", opts.DateLayout)
	assert.Equal(t, 7.5, opts.StandardHours)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday}, opts.WorkDays)
	assert.Equal(t, ledger.FillWeekendsAndHolidays, opts.GapPolicy)
	assert.Equal(t, "Urlaub", opts.DefaultReason)
}

func TestLoad_GoLayoutAccepted(t *testing.T) {
	path := writeConfig(t, "ledger:\n  date_format: \"02/01/2006\"\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	layout, err := cfg.DateLayout()
	require.NoError(t, err)
	assert.Equal(t, "02/01/2006", layout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		key  string
	}{
		{"date without day", "ledger:\n  date_format: \"%Y-%m\"\n", "ledger.date_format"},
		{"negative hours", "work:\n  standard_hours: -1\n", "work.standard_hours"},
		{"too many hours", "work:\n  standard_hours: 25\n", "work.standard_hours"},
		{"negative lunch", "work:\n  default_lunch_minutes: -5\n", "work.default_lunch_minutes"},
		{"bad weekday", "work:\n  days: [mon, funday]\n", "work.days"},
		{"bad policy", "gaps:\n  policy: sometimes\n", "gaps.policy"},
		{"unknown country", "holidays:\n  country: XX\n", "holidays.country"},
		{"bad extra date", "holidays:\n  extra:\n    - date: 24.12.2026\n      name: Heiligabend\n", "holidays.extra[0]"},
		{"bad timezone", "outlook:\n  timezone: Mars/Olympus\n", "outlook.timezone"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := config.Load(writeConfig(t, "ledger: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestCalendar(t *testing.T) {
	path := writeConfig(t, `
holidays:
  country: DE
  extra:
    - date: "2026-12-24"
      name: Heiligabend
`)
	dir := filepath.Dir(path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "absences.yaml"),
		[]byte("- date: \"2026-03-16\"\n  name: Konferenz\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	cal, err := cfg.Calendar()
	require.NoError(t, err)

	tests := []struct {
		date string
		name string
		ok   bool
	}{
		{"2026-01-01", "Neujahrstag", true},
		{"2026-12-24", "Heiligabend", true},
		{"2026-03-16", "Konferenz", true},
		{"2026-03-17", "", false},
	}
	for _, tc := range tests {
		d, _ := time.Parse("2006-01-02", tc.date)
		name, ok := cal.HolidayName(d)
		assert.Equal(t, tc.ok, ok, tc.date)
		assert.Equal(t, tc.name, name, tc.date)
	}
}
