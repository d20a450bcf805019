package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Estimate the working week from the ledger",
	Long: `stats averages the work hours over all days with recorded work and
extrapolates them to the configured number of work days per week.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", "md", "Output format: md, csv, json")
}

// weekStats is the stats output.
type weekStats struct {
	WorkDays      int     `json:"work_days"`
	ActiveDays    int     `json:"active_days"`
	WeeklyHours   float64 `json:"weekly_hours"`
	DailyOvertime float64 `json:"daily_overtime"`
}

func newWeekStats(est ledger.WeeklyEstimate, workDays int) weekStats {
	return weekStats{
		WorkDays:      workDays,
		ActiveDays:    est.ActiveDays,
		WeeklyHours:   est.WeeklyHours,
		DailyOvertime: est.DailyOvertime,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	switch statsFormat {
	case "md", "csv", "json":
	default:
		return fmt.Errorf("unknown --format %q (want md, csv or json)", statsFormat)
	}

	a := mustOpenApp()
	defer a.Close()

	est, err := a.engine.WeeklyHours(a.opts.WorkDays)
	a.check(err)

	return writeStats(os.Stdout, newWeekStats(est, len(a.opts.WorkDays)), statsFormat)
}

func writeStats(w io.Writer, s weekStats, format string) error {
	switch format {
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"work_days", "active_days", "weekly_hours", "daily_overtime"})
		_ = cw.Write([]string{
			strconv.Itoa(s.WorkDays),
			strconv.Itoa(s.ActiveDays),
			strconv.FormatFloat(s.WeeklyHours, 'f', -1, 64),
			strconv.FormatFloat(s.DailyOvertime, 'f', -1, 64),
		})
		cw.Flush()
		return cw.Error()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default: // md
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			BorderHeader(false).
			StyleFunc(func(row, col int) lipgloss.Style {
				if col == 1 {
					return numberStyle
				}
				return cellStyle
			}).
			Row("Work days per week", strconv.Itoa(s.WorkDays)).
			Row("Active days", strconv.Itoa(s.ActiveDays)).
			Row("Weekly hours", timecalc.FormatHours(s.WeeklyHours)).
			Row("Daily overtime", fmt.Sprintf("%+.2fh", s.DailyOvertime))
		_, err := fmt.Fprintln(w, t.String())
		return err
	}
}
