package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

var (
	listWeek  bool
	listMonth bool
	listAll   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledger records",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listWeek, "week", false, "Show this week's records (default)")
	listCmd.Flags().BoolVar(&listMonth, "month", false, "Show this month's records")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Show the whole ledger")
	listCmd.MarkFlagsMutuallyExclusive("week", "month", "all")
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	numberStyle    = cellStyle.Align(lipgloss.Right)
	dayOffStyle    = cellStyle.Italic(true).Foreground(lipgloss.Color("244"))
	overtimeStyle  = numberStyle.Foreground(lipgloss.Color("34"))
	undertimeStyle = numberStyle.Foreground(lipgloss.Color("166"))
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var listHeaders = []string{"Day", "Date", "Start", "End", "Lunch", "Work", "Case", "Overtime"}

func runList(cmd *cobra.Command, args []string) error {
	today := model.Day(time.Now())

	a := mustOpenApp()
	defer a.Close()

	records, err := a.engine.Records()
	a.check(err)

	var from, to time.Time
	title := "All records"
	switch {
	case listAll:
	case listMonth:
		from, to = timecalc.MonthRange(today)
		title = today.Format("January 2006")
	default:
		from, to = timecalc.WeekRange(today)
		title = "Week " + timecalc.ISOWeekLabel(today)
	}
	records = filterRecords(records, from, to)
	fmt.Println(headerStyle.Render(title))

	if len(records) == 0 {
		fmt.Println("No records found.")
		return nil
	}
	fmt.Println(renderRecords(records, a.opts.DateLayout))
	return nil
}

// filterRecords keeps records dated within [from, to]. Zero bounds are open.
func filterRecords(records []model.DayRecord, from, to time.Time) []model.DayRecord {
	var out []model.DayRecord
	for _, r := range records {
		if !from.IsZero() && r.Date.Before(from) {
			continue
		}
		if !to.IsZero() && r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// recordCells returns the table cells of a record.
func recordCells(r model.DayRecord, layout string) []string {
	cells := []string{r.Weekday(), r.Date.Format(layout), "", "", "", "", string(r.Case), ""}
	w, ok := r.Work()
	if !ok {
		cells[2] = r.Entry.(model.Placeholder).Reason
		return cells
	}
	cells[2], cells[3] = w.Start, w.End
	if w.LunchMinutes != nil {
		cells[4] = strconv.Itoa(*w.LunchMinutes) + "m"
	}
	if w.WorkHours != nil {
		cells[5] = timecalc.FormatHours(*w.WorkHours)
	}
	if r.Overtime != nil {
		cells[7] = fmt.Sprintf("%+.2f", *r.Overtime)
	}
	return cells
}

// renderRecords renders records as a table.
func renderRecords(records []model.DayRecord, layout string) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = recordCells(r, layout)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(listHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			rec := records[row]
			switch {
			case col == 7 && rec.Case == model.CaseOvertime:
				return overtimeStyle
			case col == 7 && rec.Case == model.CaseUndertime:
				return undertimeStyle
			case col >= 4 && col != 6:
				return numberStyle
			}
			if _, ok := rec.Work(); !ok {
				return dayOffStyle
			}
			return cellStyle
		})
	return t.String()
}
