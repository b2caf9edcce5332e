package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed store for local job records.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.vtrain/data/vtrain.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".vtrain", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vtrain.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// SubmissionStore returns a SubmissionStore interface backed by this store.
func (s *Store) SubmissionStore() driven.SubmissionStore {
	return &submissionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_create_submissions.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Submission Store ====================

// submissionStore implements driven.SubmissionStore.
type submissionStore struct {
	store *Store
}

var _ driven.SubmissionStore = (*submissionStore)(nil)

// Save records a new submission.
func (s *submissionStore) Save(ctx context.Context, sub *domain.Submission) error {
	now := time.Now().UTC()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	if sub.UpdatedAt.IsZero() {
		sub.UpdatedAt = now
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO submissions
			(id, resource_name, display_name, project, location, image_uri, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			resource_name = excluded.resource_name,
			display_name = excluded.display_name,
			project = excluded.project,
			location = excluded.location,
			image_uri = excluded.image_uri,
			state = excluded.state,
			updated_at = excluded.updated_at
	`, sub.ID, sub.ResourceName, sub.DisplayName, sub.Project, sub.Location,
		sub.ImageURI, string(sub.State), sub.CreatedAt, sub.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving submission: %w", err)
	}
	return nil
}

// List returns submissions newest first. A limit of 0 returns everything.
func (s *submissionStore) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	query := `
		SELECT id, resource_name, display_name, project, location, image_uri, state, created_at, updated_at
		FROM submissions
		ORDER BY created_at DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission //nolint:prealloc // size unknown from query
	for rows.Next() {
		sub, err := scanSubmissionRows(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}

	return subs, nil
}

// GetByResourceName retrieves a submission by its full resource name.
func (s *submissionStore) GetByResourceName(ctx context.Context, resourceName string) (*domain.Submission, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, resource_name, display_name, project, location, image_uri, state, created_at, updated_at
		FROM submissions WHERE resource_name = ?
	`, resourceName)

	var sub domain.Submission
	var state string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&sub.ID, &sub.ResourceName, &sub.DisplayName, &sub.Project,
		&sub.Location, &sub.ImageURI, &state, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning submission: %w", err)
	}

	sub.State = domain.JobState(state)
	if createdAt.Valid {
		sub.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		sub.UpdatedAt = updatedAt.Time
	}

	return &sub, nil
}

// UpdateState sets the last observed state for a submission.
func (s *submissionStore) UpdateState(ctx context.Context, id string, state domain.JobState) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE submissions SET state = ?, updated_at = ? WHERE id = ?
	`, string(state), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating submission state: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanSubmissionRows scans a submission from *sql.Rows.
func scanSubmissionRows(rows *sql.Rows) (*domain.Submission, error) {
	var sub domain.Submission
	var state string
	var createdAt, updatedAt sql.NullTime

	if err := rows.Scan(&sub.ID, &sub.ResourceName, &sub.DisplayName, &sub.Project,
		&sub.Location, &sub.ImageURI, &state, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning submission: %w", err)
	}

	sub.State = domain.JobState(state)
	if createdAt.Valid {
		sub.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		sub.UpdatedAt = updatedAt.Time
	}

	return &sub, nil
}
