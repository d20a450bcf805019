package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayRecord is one entry of the work-hours ledger.
//
// Several DayRecords may share a Date until the ledger is squashed.
type DayRecord struct {
	// Date is the calendar day at midnight UTC.
	Date     time.Time
	Entry    Entry
	Case     Case
	Overtime *float64
}

// Entry is either a WorkEntry or a Placeholder.
type Entry interface {
	isEntry()
}

// WorkEntry holds the working times recorded for a day.
type WorkEntry struct {
	Start        string
	End          string
	LunchMinutes *int
	WorkHours    *float64
}

// Placeholder marks a day without work. Reason is a holiday name, an
// absence label or the configured filler reason.
type Placeholder struct {
	Reason string
}

func (WorkEntry) isEntry()   {}
func (Placeholder) isEntry() {}

// Weekday returns the three-letter weekday abbreviation of the record date.
func (r DayRecord) Weekday() string {
	return r.Date.Format("Mon")
}

// Work returns the work entry and true, or false for placeholder rows.
func (r DayRecord) Work() (WorkEntry, bool) {
	w, ok := r.Entry.(WorkEntry)
	return w, ok
}

// WorkHours returns the worked hours, or nil when nothing was worked.
func (r DayRecord) WorkHours() *float64 {
	if w, ok := r.Work(); ok {
		return w.WorkHours
	}
	return nil
}

// Classify recomputes Case and Overtime from the worked hours.
// Rows without worked hours carry neither.
func (r *DayRecord) Classify(standardHours float64) {
	r.Case, r.Overtime = Classify(r.WorkHours(), standardHours)
}

// Classify returns the case and signed overtime of workHours against a
// standard day. A nil or zero workHours yields a blank case.
func Classify(workHours *float64, standardHours float64) (Case, *float64) {
	if workHours == nil || *workHours == 0 {
		return CaseNone, nil
	}
	diff := decimal.NewFromFloat(*workHours).Sub(decimal.NewFromFloat(standardHours))
	ot := diff.InexactFloat64()
	if *workHours >= standardHours {
		return CaseOvertime, &ot
	}
	return CaseUndertime, &ot
}

// NewPlaceholder returns a placeholder record for day.
func NewPlaceholder(day time.Time, reason string) DayRecord {
	return DayRecord{Date: Day(day), Entry: Placeholder{Reason: reason}}
}

// Day truncates t to its calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
