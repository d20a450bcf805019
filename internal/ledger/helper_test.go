package ledger_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

const layout = "2006-01-02"

// fakeCalendar is a HolidayCalendar backed by a date-to-name map.
type fakeCalendar map[string]string

func (c fakeCalendar) HolidayName(day time.Time) (string, bool) {
	name, ok := c[day.Format(layout)]
	return name, ok
}

// newReconciler returns a reconciler logging into the returned buffer.
func newReconciler(t *testing.T, opts ledger.Options, cal ledger.HolidayCalendar) (*ledger.Reconciler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ledger.NewReconciler(opts, cal, log), &buf
}

func date(s string) time.Time {
	d, err := time.Parse(layout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func hours(v float64) *float64 { return &v }

func minutes(v int) *int { return &v }

// work returns a work record.
func work(day, start, end string, lunch *int, h *float64) model.DayRecord {
	return model.DayRecord{
		Date:  date(day),
		Entry: model.WorkEntry{Start: start, End: end, LunchMinutes: lunch, WorkHours: h},
	}
}

// worked returns a classified work record with only work hours set.
func worked(day string, h float64) model.DayRecord {
	rec := work(day, "", "", nil, hours(h))
	rec.Classify(8)
	return rec
}

func dates(records []model.DayRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Date.Format(layout)
	}
	return out
}

func rows(records []model.DayRecord) []model.Row {
	return model.ToRows(records, layout)
}
