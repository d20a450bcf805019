package storage

import "github.com/Tiliavir/trivial-work-ledger/internal/model"

// Memory is an in-memory Store. Dry runs copy the ledger into one.
type Memory struct {
	rows  []model.Row
	Saves int
}

// NewMemory returns a store preloaded with rows.
func NewMemory(rows ...model.Row) *Memory {
	return &Memory{rows: append([]model.Row{}, rows...)}
}

// Load returns a copy of the stored rows.
func (m *Memory) Load() ([]model.Row, error) {
	return append([]model.Row{}, m.rows...), nil
}

// Save replaces the stored rows.
func (m *Memory) Save(rows []model.Row) error {
	m.rows = append([]model.Row{}, rows...)
	m.Saves++
	return nil
}

// Rows returns the stored rows without copying.
func (m *Memory) Rows() []model.Row { return m.rows }

// Close is a no-op.
func (m *Memory) Close() error { return nil }
