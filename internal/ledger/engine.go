package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

// RecordStore loads and saves the complete ledger.
type RecordStore interface {
	Load() ([]model.Row, error)
	Save(rows []model.Row) error
}

// Engine runs ledger operations as full read-transform-write cycles.
// A failing operation never saves.
type Engine struct {
	store RecordStore
	rec   *Reconciler
	log   *slog.Logger
}

// NewEngine returns an Engine operating on store.
func NewEngine(store RecordStore, rec *Reconciler) *Engine {
	return &Engine{store: store, rec: rec, log: rec.log}
}

// Reconciler returns the underlying reconciler.
func (e *Engine) Reconciler() *Reconciler { return e.rec }

// Records loads and converts the whole ledger in storage order.
func (e *Engine) Records() ([]model.DayRecord, error) {
	rows, err := e.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	records, err := model.ParseRows(rows, e.rec.opts.DateLayout)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return records, nil
}

func (e *Engine) save(records []model.DayRecord) error {
	if err := e.store.Save(model.ToRows(records, e.rec.opts.DateLayout)); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// Append adds one record at the end of the ledger. Existing rows are kept
// verbatim.
func (e *Engine) Append(rec model.DayRecord) error {
	rows, err := e.store.Load()
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}
	rows = append(rows, rec.ToRow(e.rec.opts.DateLayout))
	if err := e.store.Save(rows); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// RemoveDuplicates removes exact duplicate records and saves the ledger.
// It returns the number of removed records.
func (e *Engine) RemoveDuplicates() (int, error) {
	records, err := e.Records()
	if err != nil {
		return 0, err
	}
	kept := e.rec.RemoveDuplicates(records)
	if err := e.save(kept); err != nil {
		return 0, err
	}
	return len(records) - len(kept), nil
}

// FindGaps reports the gaps of the date-sorted ledger without saving.
func (e *Engine) FindGaps() ([]Gap, error) {
	records, err := e.Records()
	if err != nil {
		return nil, err
	}
	SortByDate(records)
	return e.rec.FindGaps(records), nil
}

// FillResult summarizes a gap filling run.
type FillResult struct {
	Gaps  []Gap
	Added int
}

// FillGaps backfills every gap of the ledger and saves it sorted by date.
func (e *Engine) FillGaps() (FillResult, error) {
	records, err := e.Records()
	if err != nil {
		return FillResult{}, err
	}
	SortByDate(records)
	gaps := e.rec.FindGaps(records)
	filled := e.rec.FillGaps(records, gaps)
	if err := e.save(filled); err != nil {
		return FillResult{}, err
	}
	return FillResult{Gaps: gaps, Added: len(filled) - len(records)}, nil
}

// SquashResult counts records around a squash.
type SquashResult struct {
	Before     int
	Duplicates int
	After      int
}

// Squash merges same-day records and saves the ledger.
func (e *Engine) Squash() (SquashResult, error) {
	records, err := e.Records()
	if err != nil {
		return SquashResult{}, err
	}
	deduped := e.rec.RemoveDuplicates(records)
	squashed := e.rec.Squash(deduped)
	if err := e.save(squashed); err != nil {
		return SquashResult{}, err
	}
	return SquashResult{
		Before:     len(records),
		Duplicates: len(records) - len(deduped),
		After:      len(squashed),
	}, nil
}

// WeeklyHours estimates the working week from the whole ledger. A ledger
// with unconvertible values yields a zero estimate and an error log; load
// failures are returned.
func (e *Engine) WeeklyHours(workDays []time.Weekday) (WeeklyEstimate, error) {
	rows, err := e.store.Load()
	if err != nil {
		return WeeklyEstimate{}, fmt.Errorf("loading ledger: %w", err)
	}
	records, err := model.ParseRows(rows, e.rec.opts.DateLayout)
	if err != nil {
		var ce *model.ConversionError
		if errors.As(err, &ce) {
			e.log.Error("cannot estimate weekly hours", "row", ce.Index, "field", ce.Field, "value", ce.Value, "err", ce.Err)
			return WeeklyEstimate{}, nil
		}
		return WeeklyEstimate{}, err
	}
	return e.rec.EstimateWeeklyHours(records, workDays), nil
}
