package model

import (
	"errors"
	"fmt"
)

// Columns is the canonical field order of a persisted ledger row.
var Columns = []string{
	"weekday",
	"date",
	"start_time",
	"end_time",
	"lunch_break_duration",
	"work_time",
	"case",
	"overtime",
}

// Row is one ledger row exactly as it is persisted: every field is raw text.
// Stores read and write Rows; the reconciliation engine works on DayRecords.
type Row struct {
	Weekday            string `json:"weekday" yaml:"weekday" xml:"weekday"`
	Date               string `json:"date" yaml:"date" xml:"date"`
	StartTime          string `json:"start_time" yaml:"start_time" xml:"start_time"`
	EndTime            string `json:"end_time" yaml:"end_time" xml:"end_time"`
	LunchBreakDuration string `json:"lunch_break_duration" yaml:"lunch_break_duration" xml:"lunch_break_duration"`
	WorkTime           string `json:"work_time" yaml:"work_time" xml:"work_time"`
	Case               string `json:"case" yaml:"case" xml:"case"`
	Overtime           string `json:"overtime" yaml:"overtime" xml:"overtime"`
}

// Fields returns the row values in canonical column order.
func (r Row) Fields() []string {
	return []string{
		r.Weekday,
		r.Date,
		r.StartTime,
		r.EndTime,
		r.LunchBreakDuration,
		r.WorkTime,
		r.Case,
		r.Overtime,
	}
}

// RowFromFields builds a Row from values in canonical column order.
func RowFromFields(f []string) (Row, error) {
	if len(f) != len(Columns) {
		return Row{}, fmt.Errorf("row has %d fields, want %d", len(f), len(Columns))
	}
	return Row{
		Weekday:            f[0],
		Date:               f[1],
		StartTime:          f[2],
		EndTime:            f[3],
		LunchBreakDuration: f[4],
		WorkTime:           f[5],
		Case:               f[6],
		Overtime:           f[7],
	}, nil
}

// RowFromMap builds a Row from a column-name keyed map. Absent keys are blank.
func RowFromMap(m map[string]string) Row {
	f := make([]string, len(Columns))
	for i, c := range Columns {
		f[i] = m[c]
	}
	r, _ := RowFromFields(f)
	return r
}

// Case classifies a worked day against the standard day length.
type Case string

const (
	CaseNone      Case = ""
	CaseOvertime  Case = "overtime"
	CaseUndertime Case = "undertime"
)

// ErrInvalidCase is returned for a case value outside overtime, undertime and blank.
var ErrInvalidCase = errors.New("invalid case value")

// ParseCase validates a raw case value.
func ParseCase(s string) (Case, error) {
	switch c := Case(s); c {
	case CaseNone, CaseOvertime, CaseUndertime:
		return c, nil
	}
	return CaseNone, fmt.Errorf("%w: %q", ErrInvalidCase, s)
}
