package timecalc

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// clockLayouts are the accepted spellings of a time of day.
var clockLayouts = []string{"15:04", "15:04:05", "3:04PM", "3:04 PM"}

// ParseClock parses a time of day and returns the offset since midnight.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("cannot parse time of day %q", s)
}

// IsClock reports whether s is a time of day.
func IsClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// FormatClock formats an offset since midnight as HH:MM.
func FormatClock(d time.Duration) string {
	d = d % (24 * time.Hour)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// WorkHours returns the hours worked between start and end minus the lunch
// break, rounded to two decimals. An end before start crosses midnight.
func WorkHours(start, end string, lunchMinutes int) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e < s {
		e += 24 * time.Hour
	}
	worked := e - s - time.Duration(lunchMinutes)*time.Minute
	if worked < 0 {
		return 0, fmt.Errorf("lunch break of %d minutes exceeds time between %s and %s", lunchMinutes, start, end)
	}
	return RoundHours(worked.Hours()), nil
}

// RoundHours rounds hours to two decimals, half away from zero.
func RoundHours(h float64) float64 {
	return decimal.NewFromFloat(h).Round(2).InexactFloat64()
}

// FormatHours formats fractional hours as a human-readable string like
// "7h 30m", "45m" or "-1h 15m".
func FormatHours(h float64) string {
	sign := ""
	if h < 0 {
		sign = "-"
		h = -h
	}
	minutes := decimal.NewFromFloat(h).Mul(decimal.NewFromInt(60)).Round(0).IntPart()
	if minutes >= 60 {
		return fmt.Sprintf("%s%dh %dm", sign, minutes/60, minutes%60)
	}
	return fmt.Sprintf("%s%dm", sign, minutes)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// MonthRange returns the first and last day of the month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first, first.AddDate(0, 1, -1)
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ParseWeekday parses an English weekday name or its three-letter abbreviation.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
