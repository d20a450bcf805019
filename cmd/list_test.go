package cmd

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

func mustRecord(t *testing.T, row model.Row) model.DayRecord {
	t.Helper()
	rec, err := model.ParseRow(row, "2006-01-02")
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}
	return rec
}

func TestRecordCells(t *testing.T) {
	work := mustRecord(t, model.Row{Date: "2026-03-02", StartTime: "08:00", EndTime: "17:15",
		LunchBreakDuration: "30", WorkTime: "8.75", Case: "overtime", Overtime: "0.75"})
	off := mustRecord(t, model.Row{Date: "2026-03-03", StartTime: "Fasching"})

	want := []string{"Mon", "02.03.2026", "08:00", "17:15", "30m", "8h 45m", "overtime", "+0.75"}
	if got := recordCells(work, "02.01.2006"); !reflect.DeepEqual(got, want) {
		t.Errorf("work cells = %q, want %q", got, want)
	}
	want = []string{"Tue", "03.03.2026", "Fasching", "", "", "", "", ""}
	if got := recordCells(off, "02.01.2006"); !reflect.DeepEqual(got, want) {
		t.Errorf("day off cells = %q, want %q", got, want)
	}

	out := renderRecords([]model.DayRecord{work, off}, "2006-01-02")
	for _, s := range []string{"Overtime", "2026-03-02", "Fasching"} {
		if !strings.Contains(out, s) {
			t.Errorf("rendered table misses %q:\n%s", s, out)
		}
	}
}

func TestFilterRecords(t *testing.T) {
	var records []model.DayRecord
	for _, d := range []string{"2026-02-27", "2026-03-02", "2026-03-08", "2026-03-09"} {
		records = append(records, mustRecord(t, model.Row{Date: d, WorkTime: "8"}))
	}
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	got := filterRecords(records, from, to)
	if len(got) != 2 || !got[0].Date.Equal(from) || !got[1].Date.Equal(to) {
		t.Errorf("filterRecords = %v, want the two records of the week", got)
	}
	if got := filterRecords(records, time.Time{}, time.Time{}); len(got) != 4 {
		t.Errorf("open range kept %d records, want 4", len(got))
	}
}
