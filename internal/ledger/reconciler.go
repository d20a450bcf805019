// Package ledger keeps the work-hours ledger consistent: it removes
// duplicate rows, finds and backfills calendar gaps, squashes same-day
// rows and estimates weekly hours.
//
// Reconciler holds the pure in-memory operations. Engine runs each of them
// as a full load-transform-save cycle against a record store. Neither is
// safe for concurrent use, and concurrent writers to the same store are
// not supported.
package ledger

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

// HolidayCalendar names the holiday falling on a date.
type HolidayCalendar interface {
	HolidayName(day time.Time) (string, bool)
}

// GapFillPolicy decides which missing days the gap filler backfills.
type GapFillPolicy int

const (
	// FillAllGaps backfills every missing day. Days that are not holidays
	// get the default reason.
	FillAllGaps GapFillPolicy = iota
	// FillWeekendsAndHolidays backfills holidays and non-work weekdays only.
	// Missing work days are reported and left open.
	FillWeekendsAndHolidays
)

func (p GapFillPolicy) String() string {
	switch p {
	case FillWeekendsAndHolidays:
		return "weekends_and_holidays"
	default:
		return "all"
	}
}

// ParseGapFillPolicy parses "all" or "weekends_and_holidays".
func ParseGapFillPolicy(s string) (GapFillPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FillAllGaps, nil
	case "weekends_and_holidays":
		return FillWeekendsAndHolidays, nil
	}
	return FillAllGaps, fmt.Errorf("unknown gap fill policy %q (want all or weekends_and_holidays)", s)
}

// Options configure a Reconciler. Zero values fall back to defaults.
type Options struct {
	DateLayout    string
	StandardHours float64
	WorkDays      []time.Weekday
	GapPolicy     GapFillPolicy
	DefaultReason string
}

const (
	DefaultDateLayout    = "2006-01-02"
	DefaultStandardHours = 8.0
	DefaultReason        = "vacation"
)

// DefaultWorkDays is Monday through Friday.
var DefaultWorkDays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// Reconciler implements the ledger operations on in-memory records.
type Reconciler struct {
	opts Options
	cal  HolidayCalendar
	log  *slog.Logger
}

// NewReconciler returns a Reconciler. A nil calendar knows no holidays and
// a nil logger discards diagnostics.
func NewReconciler(opts Options, cal HolidayCalendar, log *slog.Logger) *Reconciler {
	if opts.DateLayout == "" {
		opts.DateLayout = DefaultDateLayout
	}
	if opts.StandardHours == 0 {
		opts.StandardHours = DefaultStandardHours
	}
	if opts.WorkDays == nil {
		opts.WorkDays = DefaultWorkDays
	}
	if opts.DefaultReason == "" {
		opts.DefaultReason = DefaultReason
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{opts: opts, cal: cal, log: log}
}

// Options returns the effective options.
func (r *Reconciler) Options() Options { return r.opts }

func (r *Reconciler) holidayName(day time.Time) (string, bool) {
	if r.cal == nil {
		return "", false
	}
	return r.cal.HolidayName(day)
}

func (r *Reconciler) isWorkDay(day time.Time) bool {
	for _, wd := range r.opts.WorkDays {
		if day.Weekday() == wd {
			return true
		}
	}
	return false
}

func (r *Reconciler) formatDate(t time.Time) string {
	return t.Format(r.opts.DateLayout)
}

// SortByDate orders records by date, keeping the relative order of
// records sharing a date.
func SortByDate(records []model.DayRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}
