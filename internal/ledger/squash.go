package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

// Squash removes duplicates and merges all records of a date into one.
//
// A merged work day starts at the earliest start and ends at the latest
// end of its rows; lunch breaks and work hours are summed and the case is
// recomputed. Placeholders only survive for dates without any work entry.
// The result is sorted by date.
func (r *Reconciler) Squash(records []model.DayRecord) []model.DayRecord {
	deduped := r.RemoveDuplicates(records)

	sorted := make([]model.DayRecord, len(deduped))
	copy(sorted, deduped)
	SortByDate(sorted)

	index := map[string]int{}
	var groups [][]model.DayRecord
	for _, rec := range sorted {
		k := r.formatDate(rec.Date) + keySep + rec.Weekday()
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], rec)
	}

	out := make([]model.DayRecord, 0, len(groups))
	for _, g := range groups {
		out = append(out, r.merge(g))
	}

	if len(out) < len(deduped) {
		r.log.Info("squashed same-day records",
			"before", len(deduped),
			"after", len(out),
			"eliminated", len(deduped)-len(out))
	}
	return out
}

// merge folds the records of one date into a single record.
func (r *Reconciler) merge(members []model.DayRecord) model.DayRecord {
	var works []model.WorkEntry
	for _, m := range members {
		if w, ok := m.Work(); ok {
			works = append(works, w)
		}
	}

	merged := model.DayRecord{Date: members[0].Date}
	if len(works) == 0 {
		merged.Entry = members[0].Entry
		return merged
	}

	starts := make([]string, len(works))
	ends := make([]string, len(works))
	overnight := make([]bool, len(works))
	lunches := make([]*float64, len(works))
	hours := make([]*float64, len(works))
	for i, w := range works {
		starts[i], ends[i], hours[i] = w.Start, w.End, w.WorkHours
		overnight[i] = endsNextDay(w)
		if w.LunchMinutes != nil {
			m := float64(*w.LunchMinutes)
			lunches[i] = &m
		}
	}

	entry := model.WorkEntry{
		Start:     pickClock(starts, nil, false),
		End:       pickClock(ends, overnight, true),
		WorkHours: sum(hours),
	}
	if l := sum(lunches); l != nil {
		m := int(*l)
		entry.LunchMinutes = &m
	}
	merged.Entry = entry
	merged.Classify(r.opts.StandardHours)
	return merged
}

// sum adds the present values. It returns nil when no value is present.
func sum(values []*float64) *float64 {
	total := decimal.Zero
	present := false
	for _, v := range values {
		if v == nil {
			continue
		}
		total = total.Add(decimal.NewFromFloat(*v))
		present = true
	}
	if !present {
		return nil
	}
	f := total.InexactFloat64()
	return &f
}

// endsNextDay reports whether w ends after midnight, i.e. before its start.
func endsNextDay(w model.WorkEntry) bool {
	start, err := timecalc.ParseClock(w.Start)
	if err != nil {
		return false
	}
	end, err := timecalc.ParseClock(w.End)
	return err == nil && end < start
}

// pickClock returns the earliest (or latest) time of day among values.
// Values flagged in nextDay count as the following day. Blank values are
// skipped; unparseable ones are only used when nothing else is available.
func pickClock(values []string, nextDay []bool, latest bool) string {
	pick := ""
	var pickAt time.Duration
	parsed := false
	for i, v := range values {
		if v == "" {
			continue
		}
		at, err := timecalc.ParseClock(v)
		if err == nil && i < len(nextDay) && nextDay[i] {
			at += 24 * time.Hour
		}
		switch {
		case err != nil:
			if pick == "" {
				pick = v
			}
		case !parsed, latest && at > pickAt, !latest && at < pickAt:
			pick, pickAt, parsed = v, at, true
		}
	}
	return pick
}
