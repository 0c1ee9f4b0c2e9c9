package storage

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/DannyLionel/modsim/internal/sim"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	model       TEXT NOT NULL,
	integrator  TEXT NOT NULL,
	dt          REAL NOT NULL,
	start_time  REAL NOT NULL,
	end_time    REAL NOT NULL,
	params      TEXT NOT NULL,
	metrics     TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

// Store keeps run metadata in a SQLite index and the recorded samples in a
// per-run series.csv under the data directory.
type Store struct {
	db      *sql.DB
	baseDir string
}

type RunMetadata struct {
	ID         string
	Model      string
	Integrator string
	Dt         float64
	Start      float64
	End        float64
	Params     map[string]float64
	Metrics    map[string]float64
	CreatedAt  time.Time
}

// Open creates the data directory if needed, opens the index database, and
// runs migrations.
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(baseDir, "runs.db"))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, baseDir: baseDir}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save indexes the run metadata and writes the trajectory samples to
// <baseDir>/<id>/series.csv. It returns the generated run id.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	paramsJSON, err := json.Marshal(meta.Params)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	metricsJSON, err := json.Marshal(result.Metrics)
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}

	if err := s.writeSeries(id, result); err != nil {
		return "", err
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, model, integrator, dt, start_time, end_time, params, metrics, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, meta.Model, meta.Integrator, meta.Dt, meta.Start, meta.End,
		string(paramsJSON), string(metricsJSON), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		os.RemoveAll(filepath.Join(s.baseDir, id))
		return "", fmt.Errorf("insert run: %w", err)
	}

	return id, nil
}

func (s *Store) writeSeries(id string, result *sim.Result) error {
	runDir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}

	f, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return fmt.Errorf("create series file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(result.States) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, v := range result.States[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func (s *Store) Load(id string) (RunMetadata, error) {
	row := s.db.QueryRow(
		`SELECT id, model, integrator, dt, start_time, end_time, params, metrics, created_at
		 FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// List returns all runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	rows, err := s.db.Query(
		`SELECT id, model, integrator, dt, start_time, end_time, params, metrics, created_at
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunMetadata, error) {
	var meta RunMetadata
	var paramsJSON, metricsJSON, createdAt string

	err := row.Scan(&meta.ID, &meta.Model, &meta.Integrator, &meta.Dt,
		&meta.Start, &meta.End, &paramsJSON, &metricsJSON, &createdAt)
	if err != nil {
		return RunMetadata{}, fmt.Errorf("scan run: %w", err)
	}

	if err := json.Unmarshal([]byte(paramsJSON), &meta.Params); err != nil {
		return RunMetadata{}, fmt.Errorf("unmarshal params: %w", err)
	}
	if err := json.Unmarshal([]byte(metricsJSON), &meta.Metrics); err != nil {
		return RunMetadata{}, fmt.Errorf("unmarshal metrics: %w", err)
	}
	meta.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return RunMetadata{}, fmt.Errorf("parse created_at: %w", err)
	}

	return meta, nil
}

// LoadSeries reads the recorded samples of a run back from its series.csv.
func (s *Store) LoadSeries(id string) ([]float64, []sim.State, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "series.csv"))
	if err != nil {
		return nil, nil, fmt.Errorf("open series file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read series: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]sim.State, 0, len(records)-1)
	for _, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("parse time %q: %w", rec[0], err)
		}
		x := make(sim.State, 0, len(rec)-1)
		for _, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("parse sample %q: %w", field, err)
			}
			x = append(x, v)
		}
		times = append(times, t)
		states = append(states, x)
	}

	return times, states, nil
}

// Delete removes a run from the index and its series directory.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, id))
}
