package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

// codec converts between a file encoding and ledger rows.
type codec interface {
	// decode returns each stored row keyed by the column names found in the file.
	decode(data []byte) (columns [][]string, values []map[string]string, err error)
	encode(rows []model.Row) ([]byte, error)
}

var codecs = map[string]codec{
	".csv":  csvCodec{},
	".json": jsonCodec{},
	".yaml": yamlCodec{},
	".yml":  yamlCodec{},
	".xml":  xmlCodec{},
}

// FileStore keeps the ledger in a single file.
type FileStore struct {
	path  string
	codec codec
}

// Load reads the whole ledger file.
func (s *FileStore) Load() ([]model.Row, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []model.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Row{}, nil
	}

	columns, values, err := s.codec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	for _, cols := range columns {
		if err := checkColumns(s.path, cols); err != nil {
			return nil, err
		}
	}
	rows := make([]model.Row, len(values))
	for i, v := range values {
		rows[i] = model.RowFromMap(v)
	}
	if err := checkCases(s.path, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Save atomically replaces the ledger file.
func (s *FileStore) Save(rows []model.Row) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := s.codec.encode(rows)
	if err != nil {
		return fmt.Errorf("storage error encoding %s: %w", s.path, err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error { return nil }

// Encode renders rows in a file format named by extension or bare name,
// e.g. ".csv" or "json".
func Encode(format string, rows []model.Row) ([]byte, error) {
	ext := strings.ToLower(format)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c, ok := codecs[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return c.encode(rows)
}
