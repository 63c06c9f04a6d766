package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/goliatone/go-sitegen/internal/store/sqlite/migrations"
	"github.com/goliatone/go-sitegen/pkg/submit"
)

// DefaultFileName is the database file created inside the data directory.
const DefaultFileName = "submissions.db"

// Store persists contact submissions.
type Store struct {
	db   *sql.DB
	path string
}

var _ submit.Store = (*Store)(nil)

// Open creates or opens the database at path, creating parent directories
// and applying pending migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SaveSubmission stores sub, replacing any row with the same id.
func (s *Store) SaveSubmission(ctx context.Context, sub submit.Submission) error {
	if sub.ID == "" {
		return errors.New("sqlite: submission id is required")
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (id, name, phone, itinerary, notes, remote_addr, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			itinerary = excluded.itinerary,
			notes = excluded.notes,
			remote_addr = excluded.remote_addr,
			submitted_at = excluded.submitted_at
	`, sub.ID, sub.Name, sub.Phone, sub.Itinerary, sub.Notes, sub.RemoteAddr, sub.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving submission: %w", err)
	}
	return nil
}

// ListSubmissions returns the newest submissions first. A non-positive limit
// returns every row.
func (s *Store) ListSubmissions(ctx context.Context, limit int) ([]submit.Submission, error) {
	query := `
		SELECT id, name, phone, itinerary, notes, remote_addr, submitted_at
		FROM submissions ORDER BY submitted_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var out []submit.Submission //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sub submit.Submission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Phone, &sub.Itinerary, &sub.Notes, &sub.RemoteAddr, &sub.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}
	return out, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_submissions.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
