package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
	"github.com/Tiliavir/trivial-work-ledger/internal/model"
	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

func reasons(records []model.DayRecord) map[string]string {
	out := map[string]string{}
	for _, r := range records {
		if p, ok := r.Entry.(model.Placeholder); ok {
			out[r.Date.Format(layout)] = p.Reason
		}
	}
	return out
}

func TestFillGaps_ClosesAllGaps(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{}, nil)
	in := []model.DayRecord{
		worked("2026-03-02", 8),
		worked("2026-03-05", 8),
		worked("2026-03-13", 8),
	}
	out := r.FillGaps(in, r.FindGaps(in))

	require.Len(t, out, 12)
	for i := 1; i < len(out); i++ {
		assert.Equal(t, 1, timecalc.DaysBetween(out[i-1].Date, out[i].Date), "between %s and %s", dates(out)[i-1], dates(out)[i])
	}
	assert.Empty(t, r.FindGaps(out))
}

func TestFillGaps_HolidayTagging(t *testing.T) {
	cal := fakeCalendar{"2026-04-03": "Karfreitag", "2026-04-06": "Ostermontag"}
	r, logs := newReconciler(t, ledger.Options{}, cal)
	in := []model.DayRecord{worked("2026-04-02", 8), worked("2026-04-07", 8)}

	out := r.FillGaps(in, r.FindGaps(in))

	assert.Equal(t, map[string]string{
		"2026-04-03": "Karfreitag",
		"2026-04-04": "vacation",
		"2026-04-05": "vacation",
		"2026-04-06": "Ostermontag",
	}, reasons(out))
	assert.Contains(t, logs.String(), "holiday found")
	assert.Contains(t, logs.String(), "holiday=Karfreitag")
	assert.Contains(t, logs.String(), "added_days=4")

	for _, rec := range out {
		if _, ok := rec.Entry.(model.Placeholder); ok {
			assert.Equal(t, model.CaseNone, rec.Case)
			assert.Nil(t, rec.Overtime)
		}
	}
}

func TestFillGaps_CustomDefaultReason(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{DefaultReason: "missing entry"}, nil)
	in := []model.DayRecord{worked("2026-03-02", 8), worked("2026-03-04", 8)}
	out := r.FillGaps(in, r.FindGaps(in))
	assert.Equal(t, map[string]string{"2026-03-03": "missing entry"}, reasons(out))
}

func TestFillGaps_OverlappingGapsAddEachDayOnce(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{}, nil)
	in := []model.DayRecord{worked("2026-03-01", 8), worked("2026-03-04", 8), worked("2026-03-07", 8)}
	gaps := []ledger.Gap{
		{From: date("2026-03-01"), To: date("2026-03-07")},
		{From: date("2026-03-02"), To: date("2026-03-06")},
		{From: date("2026-03-01"), To: date("2026-03-04")},
	}
	out := r.FillGaps(in, gaps)

	assert.Equal(t, []string{
		"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04",
		"2026-03-05", "2026-03-06", "2026-03-07",
	}, dates(out))
}

func TestFillGaps_Idempotent(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{}, fakeCalendar{"2026-03-03": "Feiertag"})
	in := []model.DayRecord{worked("2026-03-02", 8), worked("2026-03-06", 8)}

	once := r.FillGaps(in, r.FindGaps(in))
	twice := r.FillGaps(once, r.FindGaps(once))
	again := r.FillGaps(once, r.FindGaps(in))

	assert.Equal(t, rows(once), rows(twice))
	assert.Equal(t, rows(once), rows(again))
}

func TestFillGaps_WeekendsAndHolidaysPolicy(t *testing.T) {
	cal := fakeCalendar{"2026-03-11": "Company day"}
	r, logs := newReconciler(t, ledger.Options{GapPolicy: ledger.FillWeekendsAndHolidays}, cal)
	// Friday 6th to Thursday 12th.
	in := []model.DayRecord{worked("2026-03-06", 8), worked("2026-03-12", 8)}

	out := r.FillGaps(in, r.FindGaps(in))

	assert.Equal(t, map[string]string{
		"2026-03-07": "vacation",
		"2026-03-08": "vacation",
		"2026-03-11": "Company day",
	}, reasons(out))
	assert.Contains(t, logs.String(), "missing entry on work day")
	assert.Contains(t, logs.String(), "date=2026-03-09")
	assert.Contains(t, logs.String(), "date=2026-03-10")
}

func TestFillGaps_SortsByDate(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{}, nil)
	in := []model.DayRecord{worked("2026-03-05", 8), worked("2026-03-02", 8)}
	out := r.FillGaps(in, []ledger.Gap{{From: date("2026-03-02"), To: date("2026-03-05")}})
	assert.Equal(t, []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"}, dates(out))
}

func TestParseGapFillPolicy(t *testing.T) {
	p, err := ledger.ParseGapFillPolicy("weekends_and_holidays")
	require.NoError(t, err)
	assert.Equal(t, ledger.FillWeekendsAndHolidays, p)
	assert.Equal(t, "weekends_and_holidays", p.String())

	p, err = ledger.ParseGapFillPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ledger.FillAllGaps, p)

	_, err = ledger.ParseGapFillPolicy("sometimes")
	assert.Error(t, err)
}
