// Package storage persists the work-hours ledger.
//
// A store holds the whole ledger and is always read and written in full.
// Stores are not safe for concurrent writers: two processes saving the same
// ledger overwrite each other, the last save wins.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

// Store loads and saves the complete ledger.
type Store interface {
	// Load returns all rows in storage order. A missing or empty ledger
	// yields zero rows.
	Load() ([]model.Row, error)
	// Save replaces the ledger with rows.
	Save(rows []model.Row) error
	Close() error
}

var (
	// ErrStructure is returned when a ledger does not carry exactly the canonical columns.
	ErrStructure = errors.New("ledger structure error")
	// ErrUnsupportedFormat is returned for a ledger path with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported ledger format")
)

// StructureError lists the columns a ledger is missing or has in excess.
type StructureError struct {
	Path    string
	Missing []string
	Extra   []string
}

func (e *StructureError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing columns "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unexpected columns "+strings.Join(e.Extra, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(parts, "; "))
}

func (e *StructureError) Unwrap() error { return ErrStructure }

// BaseDir returns the root data directory (~/.twl).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".twl"), nil
}

// Open returns the store for path, picking the format from its extension.
func Open(path string) (Store, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	}
	c, ok := codecs[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(Formats(), " "))
	}
	return &FileStore{path: path, codec: c}, nil
}

// Formats returns the file extensions Open understands.
func Formats() []string {
	out := []string{".db", ".sqlite", ".sqlite3"}
	for ext := range codecs {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// checkColumns compares the columns found in a ledger with the canonical set.
func checkColumns(path string, found []string) error {
	want := map[string]bool{}
	for _, c := range model.Columns {
		want[c] = true
	}
	seen := map[string]bool{}
	var extra []string
	for _, c := range found {
		if !want[c] || seen[c] {
			extra = append(extra, c)
		}
		seen[c] = true
	}
	var missing []string
	for _, c := range model.Columns {
		if !seen[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return &StructureError{Path: path, Missing: missing, Extra: extra}
	}
	return nil
}

// checkCases rejects rows whose case value is not a known case.
func checkCases(path string, rows []model.Row) error {
	for i, r := range rows {
		if _, err := model.ParseCase(r.Case); err != nil {
			return fmt.Errorf("%s row %d: %w", path, i, err)
		}
	}
	return nil
}
