package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"migrunner/internal/preflight"
)

// timestampLayout is fixed width so started_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Get when no session has the requested ID.
var ErrNotFound = errors.New("session not found")

// Session is one recorded run of the preflight checks for a job.
type Session struct {
	ID          string
	CustomerDir string
	MigType     string
	StartedAt   time.Time
	Ready       bool
	Results     []preflight.Result
}

// Filter narrows List. A zero Limit returns every session.
type Filter struct {
	Customer string
	Limit    int
}

// Store manages check history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or connects to the history database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a session and its ordered results in one transaction. A
// missing ID is filled with a new UUID and a zero StartedAt with the current
// time; the stored session is returned.
func (s *Store) Record(ctx context.Context, session Session) (Session, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}
	session.StartedAt = session.StartedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO sessions (id, customer_dir, mig_type, started_at, ready) VALUES (?, ?, ?, ?, ?)`,
		session.ID,
		session.CustomerDir,
		session.MigType,
		session.StartedAt.Format(timestampLayout),
		session.Ready,
	); err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}

	for i, res := range session.Results {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO session_results (
                session_id, position, name, passed, severity, path, detail, hint, required
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID,
			i,
			res.Name,
			res.Passed,
			res.Severity.String(),
			nullableString(res.Path),
			nullableString(res.Detail),
			nullableString(res.Hint),
			res.Required,
		); err != nil {
			return Session{}, fmt.Errorf("insert result %q: %w", res.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("commit session: %w", err)
	}
	return session, nil
}

// List returns sessions newest first without their results.
func (s *Store) List(ctx context.Context, filter Filter) ([]Session, error) {
	query := `SELECT id, customer_dir, mig_type, started_at, ready FROM sessions`
	var args []any
	if customer := strings.TrimSpace(filter.Customer); customer != "" {
		query += ` WHERE customer_dir = ?`
		args = append(args, customer)
	}
	query += ` ORDER BY started_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// Get returns a session with its results. ID prefixes are accepted when they
// match exactly one session.
func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrNotFound
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, customer_dir, mig_type, started_at, ready FROM sessions WHERE id = ? OR id LIKE ? LIMIT 2`,
		id,
		stripLikeWildcards(id)+"%",
	)
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	var matches []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return Session{}, err
		}
		matches = append(matches, session)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("iterate sessions: %w", err)
	}

	var session Session
	switch {
	case len(matches) == 0:
		return Session{}, ErrNotFound
	case len(matches) == 1:
		session = matches[0]
	default:
		found := false
		for _, m := range matches {
			if m.ID == id {
				session, found = m, true
			}
		}
		if !found {
			return Session{}, fmt.Errorf("session id prefix %q is ambiguous", id)
		}
	}

	results, err := s.results(ctx, session.ID)
	if err != nil {
		return Session{}, err
	}
	session.Results = results
	return session, nil
}

func (s *Store) results(ctx context.Context, sessionID string) ([]preflight.Result, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT name, passed, severity, path, detail, hint, required
         FROM session_results WHERE session_id = ? ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close()

	var results []preflight.Result
	for rows.Next() {
		var (
			res                preflight.Result
			severity           string
			path, detail, hint sql.NullString
		)
		if err := rows.Scan(&res.Name, &res.Passed, &severity, &path, &detail, &hint, &res.Required); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.Severity, _ = preflight.ParseSeverity(severity)
		res.Path = path.String
		res.Detail = detail.String
		res.Hint = hint.String
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var (
		session   Session
		startedAt string
	)
	if err := row.Scan(&session.ID, &session.CustomerDir, &session.MigType, &startedAt, &session.Ready); err != nil {
		return Session{}, fmt.Errorf("scan session: %w", err)
	}
	ts, err := time.Parse(timestampLayout, startedAt)
	if err != nil {
		return Session{}, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}
	session.StartedAt = ts
	return session, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func stripLikeWildcards(value string) string {
	return strings.NewReplacer(`%`, ``, `_`, ``).Replace(value)
}
