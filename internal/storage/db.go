package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"curadoria/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  source TEXT NOT NULL,
  status TEXT NOT NULL,
  message TEXT NOT NULL,
  rowCount INTEGER NOT NULL DEFAULT 0,
  columnsJson TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(run internal.LoadRun) (int64, error) {
	columnsJSON, _ := json.Marshal(run.Columns)
	timingsJSON, _ := json.Marshal(run.Timings)
	result, err := d.conn.Exec(`
INSERT INTO runs (traceId, source, status, message, rowCount, columnsJson, timingsJson)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, run.TraceID, run.Source, string(run.Status), run.Message, run.RowCount, string(columnsJSON), string(timingsJSON))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *DB) ListRuns(limit int) ([]internal.LoadRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(`
SELECT id, traceId, source, status, message, rowCount, columnsJson, timingsJson, createdAt
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.LoadRun
	for rows.Next() {
		var run internal.LoadRun
		var status, columnsJSON, timingsJSON string
		if err := rows.Scan(&run.ID, &run.TraceID, &run.Source, &status, &run.Message, &run.RowCount, &columnsJSON, &timingsJSON, &run.CreatedAt); err != nil {
			return nil, err
		}
		run.Status = internal.LoadStatus(status)
		_ = json.Unmarshal([]byte(columnsJSON), &run.Columns)
		_ = json.Unmarshal([]byte(timingsJSON), &run.Timings)
		out = append(out, run)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (d *DB) LastLoad() (traceID, source string, err error) {
	trace, err := d.GetMetadata("lastTraceId")
	if err != nil || trace == nil {
		return "", "", err
	}
	src, err := d.GetMetadata("lastSource")
	if err != nil {
		return "", "", err
	}
	if src != nil {
		source = *src
	}
	return *trace, source, nil
}
