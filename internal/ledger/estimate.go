package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

// WeeklyEstimate is the extrapolated working week.
type WeeklyEstimate struct {
	// WeeklyHours is the average hours per active day times the number of work days.
	WeeklyHours float64
	// DailyOvertime is the average overtime per active day.
	DailyOvertime float64
	// ActiveDays counts the distinct dates with positive work hours.
	ActiveDays int
}

// EstimateWeeklyHours averages the work hours over all active days and
// extrapolates them to a week of len(workDays) days. Both figures are
// rounded to two decimals. Without active days the estimate is zero.
func (r *Reconciler) EstimateWeeklyHours(records []model.DayRecord, workDays []time.Weekday) WeeklyEstimate {
	active := map[time.Time]bool{}
	work := decimal.Zero
	overtime := decimal.Zero
	for _, rec := range records {
		if h := rec.WorkHours(); h != nil {
			work = work.Add(decimal.NewFromFloat(*h))
			if *h > 0 {
				active[rec.Date] = true
			}
		}
		if rec.Overtime != nil {
			overtime = overtime.Add(decimal.NewFromFloat(*rec.Overtime))
		}
	}

	if len(active) == 0 {
		r.log.Warn("no active work days, weekly hours cannot be estimated", "records", len(records))
		return WeeklyEstimate{}
	}

	days := decimal.NewFromInt(int64(len(active)))
	weekLen := decimal.NewFromInt(int64(countWeekdays(workDays)))
	return WeeklyEstimate{
		WeeklyHours:   work.Div(days).Mul(weekLen).Round(2).InexactFloat64(),
		DailyOvertime: overtime.Div(days).Round(2).InexactFloat64(),
		ActiveDays:    len(active),
	}
}

// countWeekdays returns the number of distinct weekdays.
func countWeekdays(days []time.Weekday) int {
	seen := map[time.Weekday]bool{}
	for _, d := range days {
		seen[d] = true
	}
	return len(seen)
}
