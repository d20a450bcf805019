package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

var (
	recordStart  string
	recordEnd    string
	recordLunch  int
	recordDate   string
	recordReason string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Append a work day or a day off to the ledger",
	Example: `  twl record --start 08:00 --end 16:30
  twl record --date 2026-03-02 --start 22:00 --end 06:00 --lunch 0
  twl record --date 2026-03-03 --reason "sick leave"`,
	Args: cobra.NoArgs,
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recordStart, "start", "", "Start time (HH:MM)")
	recordCmd.Flags().StringVar(&recordEnd, "end", "", "End time (HH:MM); before --start crosses midnight")
	recordCmd.Flags().IntVar(&recordLunch, "lunch", 0, "Lunch break in minutes (default work.default_lunch_minutes)")
	recordCmd.Flags().StringVar(&recordDate, "date", "", "Day (YYYY-MM-DD); defaults to today")
	recordCmd.Flags().StringVar(&recordReason, "reason", "", "Record a day off with this reason instead of working times")
}

func runRecord(cmd *cobra.Command, args []string) error {
	day := time.Now()
	if recordDate != "" {
		d, err := time.Parse("2006-01-02", recordDate)
		if err != nil {
			return fmt.Errorf("invalid --date value %q: %w", recordDate, err)
		}
		day = d
	}

	a := mustOpenApp()
	defer a.Close()

	lunch := *a.cfg.Work.DefaultLunchMinutes
	if cmd.Flags().Changed("lunch") {
		lunch = recordLunch
	}

	rec, err := buildRecord(day, recordStart, recordEnd, lunch, recordReason, a.opts.StandardHours)
	if err != nil {
		return err
	}
	a.check(a.engine.Append(rec))

	fmt.Println(describeRecord(rec, a.opts.DateLayout))
	return nil
}

// buildRecord creates the ledger record for one day. A reason yields a
// placeholder; otherwise start and end are required.
func buildRecord(day time.Time, start, end string, lunch int, reason string, standardHours float64) (model.DayRecord, error) {
	if reason != "" {
		if start != "" || end != "" {
			return model.DayRecord{}, errors.New("--reason cannot be combined with --start or --end")
		}
		return model.NewPlaceholder(day, reason), nil
	}
	if start == "" || end == "" {
		return model.DayRecord{}, errors.New("both --start and --end are required (or use --reason)")
	}
	if lunch < 0 {
		return model.DayRecord{}, fmt.Errorf("invalid --lunch value %d: must not be negative", lunch)
	}

	s, err := timecalc.ParseClock(start)
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("invalid --start value: %w", err)
	}
	e, err := timecalc.ParseClock(end)
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("invalid --end value: %w", err)
	}
	hours, err := timecalc.WorkHours(start, end, lunch)
	if err != nil {
		return model.DayRecord{}, err
	}

	rec := model.DayRecord{
		Date: model.Day(day),
		Entry: model.WorkEntry{
			Start:        timecalc.FormatClock(s),
			End:          timecalc.FormatClock(e),
			LunchMinutes: &lunch,
			WorkHours:    &hours,
		},
	}
	rec.Classify(standardHours)
	return rec, nil
}

// describeRecord is the one-line confirmation printed after recording.
func describeRecord(rec model.DayRecord, layout string) string {
	head := fmt.Sprintf("Recorded %s %s:", rec.Weekday(), rec.Date.Format(layout))
	w, ok := rec.Work()
	if !ok {
		return fmt.Sprintf("%s day off (%s)", head, rec.Entry.(model.Placeholder).Reason)
	}
	line := fmt.Sprintf("%s %s–%s", head, w.Start, w.End)
	if w.LunchMinutes != nil && *w.LunchMinutes > 0 {
		line += fmt.Sprintf(", lunch %dm", *w.LunchMinutes)
	}
	if w.WorkHours != nil {
		line += ", worked " + timecalc.FormatHours(*w.WorkHours)
	}
	if rec.Overtime != nil {
		line += fmt.Sprintf(" (%s %+.2fh)", rec.Case, *rec.Overtime)
	}
	return line
}
