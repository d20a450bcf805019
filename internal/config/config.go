package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/trivial-work-ledger/internal/holiday"
	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
	"github.com/Tiliavir/trivial-work-ledger/internal/storage"
	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

// Config is the root configuration for twl, stored in ~/.twl/config.yaml.
// Relative paths are resolved against the directory of the config file.
type Config struct {
	Ledger   LedgerConfig   `yaml:"ledger"`
	Work     WorkConfig     `yaml:"work"`
	Holidays HolidaysConfig `yaml:"holidays"`
	Gaps     GapsConfig     `yaml:"gaps"`
	Outlook  OutlookConfig  `yaml:"outlook"`
}

// LedgerConfig locates the ledger and describes its date column.
type LedgerConfig struct {
	// Path is the ledger file. The extension selects the format.
	Path string `yaml:"path"`
	// DateFormat is a strftime pattern such as "%d.%m.%Y". Go reference
	// layouts are accepted as well.
	DateFormat string `yaml:"date_format"`
}

// WorkConfig describes the contractual working week.
type WorkConfig struct {
	StandardHours float64 `yaml:"standard_hours"`
	// DefaultLunchMinutes is used by "twl record" without --lunch.
	// nil means the default; 0 is a valid value.
	DefaultLunchMinutes *int     `yaml:"default_lunch_minutes"`
	Days                []string `yaml:"days"`
}

// HolidaysConfig selects the public holiday calendar and extra named days.
type HolidaysConfig struct {
	// Country is an ISO 3166 alpha-2 code. Empty disables public holidays.
	Country     string `yaml:"country"`
	Subdivision string `yaml:"subdivision"`
	// Extra lists company holidays and other fixed named days.
	Extra []holiday.Day `yaml:"extra"`
	// AbsencesFile holds the days imported by "twl outlook sync".
	AbsencesFile string `yaml:"absences_file"`
}

// GapsConfig controls gap filling.
type GapsConfig struct {
	// Policy is "all" or "weekends_and_holidays".
	Policy        string `yaml:"policy"`
	DefaultReason string `yaml:"default_reason"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar sync settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `yaml:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `yaml:"client_id"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = UTC.
	Timezone string `yaml:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration. Replace with your own registered app ID for
	// organisational deployments.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"

	DefaultLedgerFile          = "ledger.csv"
	DefaultAbsencesFile        = "absences.yaml"
	DefaultDateFormat          = "%Y-%m-%d"
	DefaultLunchMinutes        = 30
	defaultConfigFile          = "config.yaml"
	maxStandardHours           = 24
	maxLunchMinutes            = 24 * 60
	referenceDateForValidation = "2026-12-31"
)

// defaultWorkDays is Monday through Friday.
var defaultWorkDays = []string{"mon", "tue", "wed", "thu", "fri"}

// configTemplate is the annotated config written on first run.
const configTemplate = `# twl configuration - ~/.twl/config.yaml
#
# All settings are optional; the defaults shown below work out of the box.
# Relative paths are resolved against the directory of this file.

ledger:
  # Ledger file. The extension picks the format:
  # .csv .json .yaml/.yml .xml or .db/.sqlite for SQLite.
  path: ledger.csv
  # strftime pattern of the date column, e.g. "%d.%m.%Y".
  date_format: "%Y-%m-%d"

work:
  # Hours of a standard work day. Longer days count as overtime.
  standard_hours: 8
  # Lunch break used by "twl record" when --lunch is not given.
  default_lunch_minutes: 30
  # Work days of the week; the weekly estimate extrapolates to this many days.
  days: [mon, tue, wed, thu, fri]

holidays:
  # ISO country code of the public holiday calendar (DE, US). Empty = none.
  country: ""
  # Optional subdivision, e.g. BW or BY for Germany.
  subdivision: ""
  # Company holidays and other named days off.
  # extra:
  #   - date: "2026-12-24"
  #     name: Heiligabend
  # Absences imported from Outlook by "twl outlook sync".
  absences_file: absences.yaml

gaps:
  # all: backfill every missing day
  # weekends_and_holidays: only backfill non-work days and holidays
  policy: all
  # Placeholder text for backfilled days that are not holidays.
  default_reason: vacation

# Microsoft Graph / Outlook calendar sync
outlook:
  # "common" for personal Microsoft accounts and any organisation,
  # or your organisation's tenant GUID.
  tenant_id: common
  # Azure application (client) ID used for the OAuth2 device code flow.
  # The built-in value is the public Azure CLI app - no app registration needed.
  client_id: 04b07795-8542-4c4a-95af-30b2c573d5ab
  # IANA timezone for calendar event times, e.g. "Europe/Berlin". Empty = UTC.
  timezone: ""
`

// DefaultPath returns the path to ~/.twl/config.yaml.
func DefaultPath() (string, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, defaultConfigFile), nil
}

// Default returns the built-in configuration for a config file in dir.
func Default(dir string) Config {
	var cfg Config
	cfg.applyDefaults(dir)
	return cfg
}

// Load reads the config at path, creating it with the annotated template on
// first run. Missing keys fall back to the defaults.
func Load(path string) (Config, error) {
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(dir), nil
	}
	if err != nil {
		return Default(dir), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(dir), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	cfg.applyDefaults(dir)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills zero-value fields and resolves relative paths.
func (c *Config) applyDefaults(dir string) {
	if c.Ledger.Path == "" {
		c.Ledger.Path = DefaultLedgerFile
	}
	c.Ledger.Path = resolve(dir, c.Ledger.Path)
	if c.Ledger.DateFormat == "" {
		c.Ledger.DateFormat = DefaultDateFormat
	}
	if c.Work.StandardHours == 0 {
		c.Work.StandardHours = ledger.DefaultStandardHours
	}
	if c.Work.DefaultLunchMinutes == nil {
		m := DefaultLunchMinutes
		c.Work.DefaultLunchMinutes = &m
	}
	if len(c.Work.Days) == 0 {
		c.Work.Days = append([]string(nil), defaultWorkDays...)
	}
	if c.Holidays.AbsencesFile == "" {
		c.Holidays.AbsencesFile = DefaultAbsencesFile
	}
	c.Holidays.AbsencesFile = resolve(dir, c.Holidays.AbsencesFile)
	if c.Gaps.Policy == "" {
		c.Gaps.Policy = ledger.FillAllGaps.String()
	}
	if c.Gaps.DefaultReason == "" {
		c.Gaps.DefaultReason = ledger.DefaultReason
	}
	if c.Outlook.TenantID == "" {
		c.Outlook.TenantID = DefaultTenantID
	}
	if c.Outlook.ClientID == "" {
		c.Outlook.ClientID = DefaultClientID
	}
}

// resolve expands a leading ~ and makes p absolute relative to dir.
func resolve(dir, p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate checks every setting. Errors name the offending key.
func (c Config) Validate() error {
	if _, err := c.DateLayout(); err != nil {
		return err
	}
	if c.Work.StandardHours <= 0 || c.Work.StandardHours > maxStandardHours {
		return fmt.Errorf("work.standard_hours: %v is not between 0 and %d", c.Work.StandardHours, maxStandardHours)
	}
	if m := c.Work.DefaultLunchMinutes; m != nil && (*m < 0 || *m >= maxLunchMinutes) {
		return fmt.Errorf("work.default_lunch_minutes: %d is out of range", *m)
	}
	if _, err := c.WorkDays(); err != nil {
		return err
	}
	if _, err := ledger.ParseGapFillPolicy(c.Gaps.Policy); err != nil {
		return fmt.Errorf("gaps.policy: %w", err)
	}
	if _, err := holiday.New(c.Holidays.Country, c.Holidays.Subdivision); err != nil {
		return fmt.Errorf("holidays.country: %w", err)
	}
	for i, d := range c.Holidays.Extra {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(d.Date)); err != nil {
			return fmt.Errorf("holidays.extra[%d]: date %q is not YYYY-MM-DD", i, d.Date)
		}
	}
	if c.Outlook.Timezone != "" {
		if _, err := time.LoadLocation(c.Outlook.Timezone); err != nil {
			return fmt.Errorf("outlook.timezone: %w", err)
		}
	}
	return nil
}

// DateLayout returns the Go time layout of ledger.date_format. Patterns
// containing % are strftime patterns; anything else is a Go layout. The
// layout must round-trip a full calendar date.
func (c Config) DateLayout() (string, error) {
	layout := c.Ledger.DateFormat
	if strings.Contains(layout, "%") {
		l, err := strftime.Layout(layout)
		if err != nil {
			return "", fmt.Errorf("ledger.date_format: %w", err)
		}
		layout = l
	}
	ref, _ := time.Parse("2006-01-02", referenceDateForValidation)
	back, err := time.Parse(layout, ref.Format(layout))
	if err != nil || !back.Equal(ref) {
		return "", fmt.Errorf("ledger.date_format: %q does not identify a calendar date", c.Ledger.DateFormat)
	}
	return layout, nil
}

// WorkDays parses work.days.
func (c Config) WorkDays() ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(c.Work.Days))
	for _, s := range c.Work.Days {
		d, err := timecalc.ParseWeekday(s)
		if err != nil {
			return nil, fmt.Errorf("work.days: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

// LedgerOptions returns the reconciler options described by the config.
func (c Config) LedgerOptions() (ledger.Options, error) {
	layout, err := c.DateLayout()
	if err != nil {
		return ledger.Options{}, err
	}
	days, err := c.WorkDays()
	if err != nil {
		return ledger.Options{}, err
	}
	policy, err := ledger.ParseGapFillPolicy(c.Gaps.Policy)
	if err != nil {
		return ledger.Options{}, fmt.Errorf("gaps.policy: %w", err)
	}
	return ledger.Options{
		DateLayout:    layout,
		StandardHours: c.Work.StandardHours,
		WorkDays:      days,
		GapPolicy:     policy,
		DefaultReason: c.Gaps.DefaultReason,
	}, nil
}

// Calendar builds the holiday calendar: public holidays of the configured
// region, then holidays.extra, then the absences file.
func (c Config) Calendar() (*holiday.Calendar, error) {
	cal, err := holiday.New(c.Holidays.Country, c.Holidays.Subdivision)
	if err != nil {
		return nil, fmt.Errorf("holidays.country: %w", err)
	}
	if err := cal.AddDays(c.Holidays.Extra...); err != nil {
		return nil, fmt.Errorf("holidays.extra: %w", err)
	}
	absences, err := holiday.LoadDays(c.Holidays.AbsencesFile)
	if err != nil {
		return nil, fmt.Errorf("holidays.absences_file: %w", err)
	}
	if err := cal.AddDays(absences...); err != nil {
		return nil, fmt.Errorf("holidays.absences_file: %w", err)
	}
	return cal, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
