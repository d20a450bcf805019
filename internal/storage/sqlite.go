package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
)

// SQLiteStore keeps the ledger in a SQLite table. Storage order is
// preserved through an autoincrement sequence column.
type SQLiteStore struct {
	path string
	conn *sql.DB
}

// OpenSQLite opens (and if needed creates) a SQLite ledger.
// Use ":memory:" for an in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A second connection to ":memory:" would see a different database.
	conn.SetMaxOpenConns(1)

	s := &SQLiteStore{path: path, conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.conn.Exec(`
	CREATE TABLE IF NOT EXISTS day_records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		weekday TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		lunch_break_duration TEXT NOT NULL DEFAULT '',
		work_time TEXT NOT NULL DEFAULT '',
		"case" TEXT NOT NULL DEFAULT '',
		overtime TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_day_records_date ON day_records(date);
	`)
	return err
}

// columns returns the ledger columns of the day_records table.
func (s *SQLiteStore) columns() ([]string, error) {
	rows, err := s.conn.Query(`PRAGMA table_info(day_records)`)
	if err != nil {
		return nil, fmt.Errorf("reading table info: %w", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scanning table info: %w", err)
		}
		if name != "seq" {
			cols = append(cols, name)
		}
	}
	return cols, rows.Err()
}

// Load returns all rows ordered by insertion.
func (s *SQLiteStore) Load() ([]model.Row, error) {
	cols, err := s.columns()
	if err != nil {
		return nil, err
	}
	if err := checkColumns(s.path, cols); err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(`SELECT ` + quotedColumns() + ` FROM day_records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying day records: %w", err)
	}
	defer rows.Close()

	out := []model.Row{}
	for rows.Next() {
		var r model.Row
		if err := rows.Scan(&r.Weekday, &r.Date, &r.StartTime, &r.EndTime,
			&r.LunchBreakDuration, &r.WorkTime, &r.Case, &r.Overtime); err != nil {
			return nil, fmt.Errorf("scanning day record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := checkCases(s.path, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces all rows in a single transaction.
func (s *SQLiteStore) Save(records []model.Row) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM day_records`); err != nil {
		return fmt.Errorf("clearing day records: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO day_records (` + quotedColumns() + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Weekday, r.Date, r.StartTime, r.EndTime,
			r.LunchBreakDuration, r.WorkTime, r.Case, r.Overtime); err != nil {
			return fmt.Errorf("inserting day record %s: %w", r.Date, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing day records: %w", err)
	}
	return nil
}

func quotedColumns() string {
	q := make([]string, len(model.Columns))
	for i, c := range model.Columns {
		q[i] = `"` + c + `"`
	}
	return strings.Join(q, ", ")
}
