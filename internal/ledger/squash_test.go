package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

func TestSquash_Aggregates(t *testing.T) {
	r, logs := newReconciler(t, ledger.Options{}, nil)
	in := []model.DayRecord{
		work("2026-03-02", "13:00", "14:30", nil, hours(1.5)),
		work("2026-03-02", "08:00", "09:45", minutes(30), hours(1.25)),
		work("2026-03-03", "08:00", "16:30", minutes(30), hours(8)),
		work("2026-03-02", "15:00", "18:00", minutes(15), hours(3.0)),
	}

	out := r.Squash(in)

	require.Len(t, out, 2)
	day := out[0]
	assert.Equal(t, date("2026-03-02"), day.Date)
	w, ok := day.Work()
	require.True(t, ok)
	assert.Equal(t, "08:00", w.Start)
	assert.Equal(t, "18:00", w.End)
	require.NotNil(t, w.LunchMinutes)
	assert.Equal(t, 45, *w.LunchMinutes)
	require.NotNil(t, w.WorkHours)
	assert.Equal(t, 5.75, *w.WorkHours)
	assert.Equal(t, model.CaseUndertime, day.Case)
	require.NotNil(t, day.Overtime)
	assert.Equal(t, -2.25, *day.Overtime)

	assert.Equal(t, model.CaseOvertime, out[1].Case)
	assert.Contains(t, logs.String(), "before=4 after=2 eliminated=2")
}

func TestSquash_OvernightEndIsLatest(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{}, nil)
	in := []model.DayRecord{
		work("2026-03-02", "08:00", "12:00", minutes(0), hours(4)),
		work("2026-03-02", "22:00", "01:00", minutes(0), hours(3)),
		work("2026-03-02", "13:00", "17:30", minutes(0), hours(4.5)),
	}

	out := r.Squash(in)

	require.Len(t, out, 1)
	w, ok := out[0].Work()
	require.True(t, ok)
	assert.Equal(t, "08:00", w.Start)
	assert.Equal(t, "01:00", w.End)
	require.NotNil(t, w.WorkHours)
	assert.Equal(t, 11.5, *w.WorkHours)
	assert.Equal(t, model.CaseOvertime, out[0].Case)

	again := r.Squash(out)
	assert.Equal(t, rows(out), rows(again))
}

func TestSquash_Idempotent(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{}, nil)
	in := []model.DayRecord{
		work("2026-03-04", "08:00", "12:00", minutes(0), hours(4)),
		work("2026-03-02", "08:00", "12:00", nil, hours(4.1)),
		work("2026-03-02", "12:30", "16:50", minutes(30), hours(3.83)),
		work("2026-03-04", "08:00", "12:00", minutes(0), hours(4)),
		model.NewPlaceholder(date("2026-03-03"), "vacation"),
		work("2026-03-03", "", "", nil, nil),
	}

	once := r.Squash(in)
	twice := r.Squash(once)
	assert.Equal(t, rows(once), rows(twice))
	assert.Equal(t, []string{"2026-03-02", "2026-03-03", "2026-03-04"}, dates(once))
}

func TestSquash_NoLogWithoutAggregation(t *testing.T) {
	r, logs := newReconciler(t, ledger.Options{}, nil)
	out := r.Squash([]model.DayRecord{worked("2026-03-03", 8), worked("2026-03-02", 7)})
	assert.Len(t, out, 2)
	assert.NotContains(t, logs.String(), "squashed")
}

func TestSquash_DuplicatesAreRemovedFirst(t *testing.T) {
	r, logs := newReconciler(t, ledger.Options{}, nil)
	a := work("2026-03-02", "08:00", "12:00", nil, hours(4))
	out := r.Squash([]model.DayRecord{a, a})

	require.Len(t, out, 1)
	assert.Equal(t, 4.0, *out[0].WorkHours())
	assert.Contains(t, logs.String(), "removing duplicate records")
	assert.NotContains(t, logs.String(), "squashed")
}

func TestSquash_WorkReplacesPlaceholder(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{}, nil)
	out := r.Squash([]model.DayRecord{
		model.NewPlaceholder(date("2026-03-07"), "vacation"),
		work("2026-03-07", "10:00", "12:00", nil, hours(2)),
	})

	require.Len(t, out, 1)
	w, ok := out[0].Work()
	require.True(t, ok)
	assert.Equal(t, "10:00", w.Start)
	assert.Nil(t, w.LunchMinutes)
	assert.Equal(t, 2.0, *w.WorkHours)
}

func TestSquash_PlaceholdersOnly(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{}, nil)
	out := r.Squash([]model.DayRecord{
		model.NewPlaceholder(date("2026-12-25"), "Christmas Day"),
		model.NewPlaceholder(date("2026-12-25"), "vacation"),
	})

	require.Len(t, out, 1)
	assert.Equal(t, model.Placeholder{Reason: "Christmas Day"}, out[0].Entry)
	assert.Equal(t, model.CaseNone, out[0].Case)
}

func TestSquash_BlankWorkKeepsBlankCase(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{}, nil)
	out := r.Squash([]model.DayRecord{
		work("2026-03-02", "08:00", "", nil, nil),
		work("2026-03-02", "", "", minutes(30), nil),
	})

	require.Len(t, out, 1)
	w, _ := out[0].Work()
	assert.Nil(t, w.WorkHours)
	assert.Equal(t, 30, *w.LunchMinutes)
	assert.Equal(t, model.CaseNone, out[0].Case)
	assert.Nil(t, out[0].Overtime)
}

func TestSquash_StandardHours(t *testing.T) {
	r, _ := newReconciler(t, ledger.Options{StandardHours: 6}, nil)
	out := r.Squash([]model.DayRecord{
		work("2026-03-02", "08:00", "11:00", nil, hours(3)),
		work("2026-03-02", "12:00", "15:30", nil, hours(3.5)),
	})
	require.Len(t, out, 1)
	assert.Equal(t, model.CaseOvertime, out[0].Case)
	assert.Equal(t, 0.5, *out[0].Overtime)
}
