package msgraph

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-work-ledger/internal/holiday"
)

// privateAbsenceName replaces the subject of private and unnamed absences.
const privateAbsenceName = "Out of office"

const dateFormat = "2006-01-02"

// SyncResult holds day counters for a sync operation.
type SyncResult struct {
	Imported int
	Skipped  int
	Updated  int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	// From and To bound the imported days to [From, To). Zero values
	// leave the side open.
	From     time.Time
	To       time.Time
	DryRun   bool
	Timezone string
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// IsAbsence reports whether event marks whole days out of office.
func IsAbsence(event CalendarEvent) bool {
	return !event.IsCancelled &&
		event.IsAllDay &&
		strings.EqualFold(event.ShowAs, "oof") &&
		event.Start.DateTime != "" && event.End.DateTime != ""
}

// absenceName is the subject of event unless it is private or empty.
func absenceName(event CalendarEvent) string {
	name := strings.TrimSpace(event.Subject)
	if name == "" || event.Sensitivity == "private" {
		return privateAbsenceName
	}
	return name
}

// AbsenceDays returns one named day per date covered by an all-day event.
// The end of an all-day event is exclusive.
func AbsenceDays(event CalendarEvent, timezone string) ([]holiday.Day, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return nil, fmt.Errorf("parsing end time: %w", err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("event ends at %s before it starts", event.End.DateTime)
	}

	name := absenceName(event)
	var days []holiday.Day
	for d := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()); d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, holiday.Day{Date: d.Format(dateFormat), Name: name})
	}
	return days, nil
}

// inWindow reports whether date lies in [opts.From, opts.To).
func (opts SyncOptions) inWindow(date string) bool {
	if !opts.From.IsZero() && date < opts.From.Format(dateFormat) {
		return false
	}
	if !opts.To.IsZero() && date >= opts.To.Format(dateFormat) {
		return false
	}
	return true
}

// SyncAbsences merges the out-of-office days of events into existing and
// returns the merged list. Days already present under the same name are
// skipped, renamed days are updated. In a dry run existing is returned
// unchanged. Progress is written to out.
func SyncAbsences(events []CalendarEvent, existing []holiday.Day, opts SyncOptions, out io.Writer) ([]holiday.Day, SyncResult) {
	var result SyncResult

	merged := make([]holiday.Day, len(existing))
	copy(merged, existing)
	index := make(map[string]int, len(merged))
	for i, d := range merged {
		index[d.Date] = i
	}

	for _, event := range events {
		if !IsAbsence(event) {
			continue
		}
		days, err := AbsenceDays(event, opts.Timezone)
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}

		for _, day := range days {
			if !opts.inWindow(day.Date) {
				continue
			}
			i, found := index[day.Date]
			switch {
			case found && merged[i].Name == day.Name:
				fmt.Fprintf(out, "  – Skipped:  %s %s (already exists)\n", day.Date, day.Name)
				result.Skipped++
			case found:
				fmt.Fprintf(out, "  ↑ Updated:  %s %s → %s\n", day.Date, merged[i].Name, day.Name)
				merged[i].Name = day.Name
				result.Updated++
			default:
				fmt.Fprintf(out, "  ✓ Imported: %s %s\n", day.Date, day.Name)
				index[day.Date] = len(merged)
				merged = append(merged, day)
				result.Imported++
			}
		}
	}

	if opts.DryRun {
		return existing, result
	}
	return merged, result
}
