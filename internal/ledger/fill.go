package ledger

import (
	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

// FillGaps adds a placeholder record for each missing day inside gaps and
// returns all records sorted by date. Holidays are labelled with their
// name, other days with the default reason. Dates already present in the
// ledger are never added twice, so overlapping gaps and repeated runs are
// harmless.
func (r *Reconciler) FillGaps(records []model.DayRecord, gaps []Gap) []model.DayRecord {
	out := make([]model.DayRecord, len(records), len(records)+16)
	copy(out, records)

	existing := make(map[string]bool, len(records))
	for _, rec := range records {
		existing[r.formatDate(rec.Date)] = true
	}

	for _, g := range gaps {
		added := 0
		for d := model.Day(g.From).AddDate(0, 0, 1); d.Before(model.Day(g.To)); d = d.AddDate(0, 0, 1) {
			date := r.formatDate(d)
			if existing[date] {
				continue
			}

			reason, isHoliday := r.holidayName(d)
			switch {
			case isHoliday:
				r.log.Info("holiday found", "date", date, "holiday", reason)
			case r.opts.GapPolicy == FillWeekendsAndHolidays && r.isWorkDay(d):
				r.log.Warn("missing entry on work day", "date", date, "weekday", d.Format("Mon"))
				continue
			default:
				reason = r.opts.DefaultReason
			}

			out = append(out, model.NewPlaceholder(d, reason))
			existing[date] = true
			added++
		}
		r.log.Info("filled gap",
			"from", r.formatDate(g.From),
			"to", r.formatDate(g.To),
			"added_days", added)
	}

	SortByDate(out)
	return out
}
