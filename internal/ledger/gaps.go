package ledger

import (
	"time"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

// Gap is a span between two adjacent ledger dates more than one day apart.
// From and To are both present in the ledger; the days between are missing.
type Gap struct {
	From time.Time
	To   time.Time
}

// MissingDays returns the number of days strictly between From and To.
func (g Gap) MissingDays() int {
	return timecalc.DaysBetween(g.From, g.To) - 1
}

// FindGaps walks adjacent records and reports every pair whose dates are
// more than one day apart. records must already be sorted by date; pairs
// that go backwards in time are never gaps.
func (r *Reconciler) FindGaps(records []model.DayRecord) []Gap {
	var gaps []Gap
	for i := 1; i < len(records); i++ {
		prev, next := records[i-1].Date, records[i].Date
		if timecalc.DaysBetween(prev, next) <= 1 {
			continue
		}
		g := Gap{From: model.Day(prev), To: model.Day(next)}
		r.log.Warn("gap in ledger",
			"from", r.formatDate(g.From),
			"to", r.formatDate(g.To),
			"missing_days", g.MissingDays())
		gaps = append(gaps, g)
	}
	return gaps
}
