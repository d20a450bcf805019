package ledger

import (
	"strings"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

// RemoveDuplicates drops records identical to an earlier record in every
// field. The first occurrence survives and the survivors keep their order.
func (r *Reconciler) RemoveDuplicates(records []model.DayRecord) []model.DayRecord {
	positions := map[string][]int{}
	var order []string
	for i, rec := range records {
		k := r.key(rec)
		if _, seen := positions[k]; !seen {
			order = append(order, k)
		}
		positions[k] = append(positions[k], i)
	}

	removed := map[int]bool{}
	for _, k := range order {
		idx := positions[k]
		if len(idx) < 2 {
			continue
		}
		for _, i := range idx[1:] {
			removed[i] = true
		}
		r.log.Warn("removing duplicate records",
			"kept", idx[0],
			"removed", idx[1:],
			"record", strings.ReplaceAll(k, keySep, ", "))
	}

	out := make([]model.DayRecord, 0, len(records)-len(removed))
	for i, rec := range records {
		if !removed[i] {
			out = append(out, rec)
		}
	}
	return out
}

const keySep = "\x1f"

// key is the serialized form of a record; equal keys mean equal records.
func (r *Reconciler) key(rec model.DayRecord) string {
	return strings.Join(rec.ToRow(r.opts.DateLayout).Fields(), keySep)
}
