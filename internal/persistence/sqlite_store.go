package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/mkarvo/flowchain/pkg/api"
)

// SQLiteStore implements ReportStore and api.StateStore on top of SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements the interfaces.
var _ ReportStore = (*SQLiteStore)(nil)

var _ api.StateStore = (*SQLiteStore)(nil)

// NewSQLiteStore initializes the required schema in the given database and
// returns a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS run_reports (
			id TEXT PRIMARY KEY,
			flow TEXT NOT NULL,
			status TEXT NOT NULL,
			steps INTEGER NOT NULL,
			state BLOB,
			error TEXT,
			seq INTEGER
		);
		CREATE TABLE IF NOT EXISTS state_snapshots (
			name TEXT PRIMARY KEY,
			state BLOB
		);`,
	)
	return err
}

func (s *SQLiteStore) SaveReport(ctx context.Context, rep *api.RunReport) error {
	state, err := EncodeState(rep.State)
	if err != nil {
		return err
	}

	errStr := ""
	if rep.Err != nil {
		errStr = rep.Err.Error()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO run_reports (id, flow, status, steps, state, error, seq)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM run_reports))
		ON CONFLICT(id) DO UPDATE SET
			flow = excluded.flow,
			status = excluded.status,
			steps = excluded.steps,
			state = excluded.state,
			error = excluded.error`,
		rep.ID,
		rep.Flow,
		string(rep.Status),
		rep.Steps,
		state,
		errStr,
	)
	return err
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*api.RunReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, flow, status, steps, state, error
		FROM run_reports WHERE id = ?`, id,
	)

	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", api.ErrReportNotFound, id)
	}
	return rep, err
}

func (s *SQLiteStore) ListReports(ctx context.Context, opts api.ReportListOptions) ([]*api.RunReport, error) {
	query := `SELECT id, flow, status, steps, state, error FROM run_reports`
	var conds []string
	var args []any
	if opts.FlowName != "" {
		conds = append(conds, "flow = ?")
		args = append(args, opts.FlowName)
	}
	if opts.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(opts.Status))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*api.RunReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*api.RunReport, error) {
	var rep api.RunReport
	var status, errStr string
	var state []byte

	if err := row.Scan(&rep.ID, &rep.Flow, &status, &rep.Steps, &state, &errStr); err != nil {
		return nil, err
	}

	rep.Status = api.Status(status)
	if errStr != "" {
		rep.Err = errors.New(errStr)
	}

	decoded, err := DecodeState(state)
	if err != nil {
		return nil, err
	}
	rep.State = decoded

	return &rep, nil
}

func (s *SQLiteStore) SaveState(ctx context.Context, name string, state api.State) error {
	data, err := EncodeState(state)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO state_snapshots (name, state) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET state = excluded.state`,
		name, data,
	)
	return err
}

func (s *SQLiteStore) LoadState(ctx context.Context, name string) (api.State, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM state_snapshots WHERE name = ?`, name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrStateNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return DecodeState(data)
}

func (s *SQLiteStore) ListStates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM state_snapshots`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, rows.Err()
}

func (s *SQLiteStore) DeleteState(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM state_snapshots WHERE name = ?`, name,
	)
	return err
}
