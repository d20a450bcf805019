package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
	"github.com/Tiliavir/trivial-work-ledger/internal/model"
	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's record and the state of the ledger",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()

	a := mustOpenApp()
	defer a.Close()

	records, err := a.engine.Records()
	a.check(err)
	est, err := a.engine.WeeklyHours(a.opts.WorkDays)
	a.check(err)

	rec := ledger.NewReconciler(a.opts, a.cal, nil)
	ledger.SortByDate(records)
	gaps := rec.FindGaps(records)

	printStatus(os.Stdout, now, records, gaps, est, a.opts.DateLayout)
	return nil
}

// printStatus summarizes today's entry, ledger freshness and the weekly
// estimate. records must be sorted by date.
func printStatus(w io.Writer, now time.Time, records []model.DayRecord, gaps []ledger.Gap, est ledger.WeeklyEstimate, layout string) {
	today := model.Day(now)

	var todays []model.DayRecord
	for _, r := range records {
		if timecalc.SameDay(r.Date, today) {
			todays = append(todays, r)
		}
	}

	switch {
	case len(todays) == 0:
		fmt.Fprintf(w, "Today (%s %s): nothing recorded.\n", today.Format("Mon"), today.Format(layout))
	default:
		var worked float64
		for _, r := range todays {
			if h := r.WorkHours(); h != nil {
				worked += *h
			}
			if p, ok := r.Entry.(model.Placeholder); ok {
				fmt.Fprintf(w, "Today (%s %s): %s.\n", today.Format("Mon"), today.Format(layout), p.Reason)
			}
		}
		if worked > 0 {
			fmt.Fprintf(w, "Today (%s %s): %s worked in %d %s.\n", today.Format("Mon"), today.Format(layout),
				timecalc.FormatHours(timecalc.RoundHours(worked)), len(todays), plural(len(todays), "record", "records"))
		}
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "The ledger is empty.")
		return
	}
	last := records[len(records)-1].Date
	age := "today"
	if !timecalc.SameDay(last, today) {
		// Dates are UTC midnights; compare against the local calendar day.
		age = humanize.RelTime(last, today, "ago", "from now")
	}
	fmt.Fprintf(w, "Ledger: %s %s, last entry %s (%s).\n",
		humanize.Comma(int64(len(records))), plural(len(records), "record", "records"), last.Format(layout), age)

	if len(gaps) > 0 {
		missing := 0
		for _, g := range gaps {
			missing += g.MissingDays()
		}
		fmt.Fprintf(w, "Gaps: %d missing %s, run \"twl gaps --fill\".\n", missing, plural(missing, "day", "days"))
	}

	if est.ActiveDays > 0 {
		fmt.Fprintf(w, "Week estimate: %s (%+.2fh per day over %d active %s).\n",
			timecalc.FormatHours(est.WeeklyHours), est.DailyOvertime, est.ActiveDays, plural(est.ActiveDays, "day", "days"))
	}
}
