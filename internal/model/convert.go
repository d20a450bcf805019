package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

// ConversionError reports a row field that could not be converted.
type ConversionError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("row %d: cannot convert %s value %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ToRow serializes the record. Placeholder reasons are written to the
// start_time column and leave the remaining work columns blank.
func (r DayRecord) ToRow(layout string) Row {
	row := Row{
		Weekday:  r.Weekday(),
		Date:     r.Date.Format(layout),
		Case:     string(r.Case),
		Overtime: formatFloat(r.Overtime),
	}
	switch e := r.Entry.(type) {
	case WorkEntry:
		row.StartTime = e.Start
		row.EndTime = e.End
		row.WorkTime = formatFloat(e.WorkHours)
		if e.LunchMinutes != nil {
			row.LunchBreakDuration = strconv.Itoa(*e.LunchMinutes)
		}
	case Placeholder:
		row.StartTime = e.Reason
	}
	return row
}

// ParseRow converts a persisted row. The weekday column is ignored and
// re-derived from the date.
func ParseRow(row Row, layout string) (DayRecord, error) {
	var rec DayRecord

	d, err := time.Parse(layout, strings.TrimSpace(row.Date))
	if err != nil {
		return rec, &ConversionError{Field: "date", Value: row.Date, Err: err}
	}
	rec.Date = Day(d)

	if rec.Case, err = ParseCase(strings.TrimSpace(row.Case)); err != nil {
		return rec, &ConversionError{Field: "case", Value: row.Case, Err: err}
	}
	if rec.Overtime, err = parseFloat(row.Overtime); err != nil {
		return rec, &ConversionError{Field: "overtime", Value: row.Overtime, Err: err}
	}
	work, err := parseFloat(row.WorkTime)
	if err != nil {
		return rec, &ConversionError{Field: "work_time", Value: row.WorkTime, Err: err}
	}
	lunch, err := parseMinutes(row.LunchBreakDuration)
	if err != nil {
		return rec, &ConversionError{Field: "lunch_break_duration", Value: row.LunchBreakDuration, Err: err}
	}

	start := strings.TrimSpace(row.StartTime)
	end := strings.TrimSpace(row.EndTime)
	if start != "" && !timecalc.IsClock(start) && end == "" && lunch == nil && (work == nil || *work == 0) {
		rec.Entry = Placeholder{Reason: start}
		return rec, nil
	}
	rec.Entry = WorkEntry{Start: start, End: end, LunchMinutes: lunch, WorkHours: work}
	return rec, nil
}

// ParseRows converts rows in order. The returned error is a
// *ConversionError carrying the failing row index.
func ParseRows(rows []Row, layout string) ([]DayRecord, error) {
	out := make([]DayRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := ParseRow(row, layout)
		if err != nil {
			if ce, ok := err.(*ConversionError); ok {
				ce.Index = i
			}
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ToRows serializes records in order.
func ToRows(records []DayRecord, layout string) []Row {
	out := make([]Row, len(records))
	for i, r := range records {
		out[i] = r.ToRow(layout)
	}
	return out
}

// blank reports whether a raw numeric field carries no value. Spreadsheet
// exports write missing numbers as NaN.
func blank(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}

func parseFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if blank(s) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsInf(v, 0) {
		return nil, fmt.Errorf("value out of range")
	}
	return &v, nil
}

func parseMinutes(s string) (*int, error) {
	v, err := parseFloat(s)
	if err != nil || v == nil {
		return nil, err
	}
	m := int(math.Round(*v))
	return &m, nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
