package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"yanyu/backend/internal/database"
	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/model"
)

// SQLiteStore is the Repository backed by a single SQLite file. The handle is
// shared by all callers; each write runs in its own transaction and there is no
// locking across transactions.
type SQLiteStore struct {
	path string
	open func(string) (*sql.DB, error)

	mu sync.RWMutex
	db *sql.DB
}

var _ Repository = (*SQLiteStore)(nil)

// NewSQLiteStore returns a store for the database file at path. It is unusable
// until Init is called.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path, open: database.InitDB}
}

// Init opens the database and applies pending migrations. Calling it again on an
// open store is a no-op.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}
	db, err := s.open(s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", app_errors.ErrStorage, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: %w", app_errors.ErrStorage, err)
	}
	s.db = db
	return nil
}

// Close releases the database handle. The store can be re-initialized afterwards.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, app_errors.ErrStoreNotInitialized
	}
	return s.db, nil
}

// withTx runs fn in a write transaction. Nothing is visible unless fn and the
// commit both succeed.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: could not begin transaction: %w", app_errors.ErrStorage, err)
	}
	// Ensure transaction is rolled back on error
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%w: %w", app_errors.ErrStorage, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: could not commit transaction: %w", app_errors.ErrStorage, err)
	}
	return nil
}

func (s *SQLiteStore) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	now := time.Now().UTC()
	p := *project
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Files == nil {
		p.Files = []string{}
	}

	files, err := json.Marshal(p.Files)
	if err != nil {
		return nil, fmt.Errorf("could not encode project files: %w", err)
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		query := "INSERT INTO projects (id, name, description, files, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
		if _, err := tx.ExecContext(ctx, query, p.ID, p.Name, p.Description, string(files), p.CreatedAt, p.UpdatedAt); err != nil {
			return fmt.Errorf("could not insert project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLiteStore) GetProjects(ctx context.Context) ([]model.Project, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT id, name, description, files, created_at, updated_at FROM projects ORDER BY created_at ASC"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: could not query projects: %w", app_errors.ErrStorage, err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", app_errors.ErrStorage, err)
	}
	return projects, nil
}

func (s *SQLiteStore) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT id, name, description, files, created_at, updated_at FROM projects WHERE id = ?"
	p, err := scanProject(db.QueryRowContext(ctx, query, projectID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var p model.Project
	var files string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &files, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: could not scan project: %w", app_errors.ErrStorage, err)
	}
	if err := json.Unmarshal([]byte(files), &p.Files); err != nil || p.Files == nil {
		p.Files = []string{}
	}
	return &p, nil
}

func (s *SQLiteStore) SaveFile(ctx context.Context, file *model.File) (*model.File, error) {
	now := time.Now().UTC()
	f := *file
	f.ID = uuid.NewString()
	f.CreatedAt = now
	f.UpdatedAt = now

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO files (id, name, content, type, size, project_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, query, f.ID, f.Name, f.Content, f.Type, f.Size, f.ProjectID, f.CreatedAt, f.UpdatedAt); err != nil {
			return fmt.Errorf("could not insert file: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFilesByProject reads through idx_files_project_id.
func (s *SQLiteStore) GetFilesByProject(ctx context.Context, projectID string) ([]model.File, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, content, type, size, project_id, created_at, updated_at
		FROM files
		WHERE project_id = ?
		ORDER BY created_at ASC
	`
	rows, err := db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: could not query files: %w", app_errors.ErrStorage, err)
	}
	defer rows.Close()

	files := []model.File{}
	for rows.Next() {
		var f model.File
		if err := rows.Scan(&f.ID, &f.Name, &f.Content, &f.Type, &f.Size, &f.ProjectID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: could not scan file: %w", app_errors.ErrStorage, err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", app_errors.ErrStorage, err)
	}
	return files, nil
}

// SaveChatMessage stores a message. A zero Timestamp is set to the current time; any
// other is stored in UTC so that messages sort by instant.
func (s *SQLiteStore) SaveChatMessage(ctx context.Context, message *model.ChatRecord) (*model.ChatRecord, error) {
	m := *message
	m.ID = uuid.NewString()
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	m.Timestamp = m.Timestamp.UTC()

	var projectID sql.NullString
	if m.ProjectID != nil {
		projectID = sql.NullString{String: *m.ProjectID, Valid: true}
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := "INSERT INTO messages (id, content, role, timestamp, project_id) VALUES (?, ?, ?, ?, ?)"
		if _, err := tx.ExecContext(ctx, query, m.ID, m.Content, m.Role, m.Timestamp, projectID); err != nil {
			return fmt.Errorf("could not insert message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetChatMessages returns every message, or only those of projectID when it is set,
// oldest first.
func (s *SQLiteStore) GetChatMessages(ctx context.Context, projectID *string) ([]model.ChatRecord, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var rows *sql.Rows
	if projectID != nil {
		query := "SELECT id, content, role, timestamp, project_id FROM messages WHERE project_id = ? ORDER BY timestamp ASC"
		rows, err = db.QueryContext(ctx, query, *projectID)
	} else {
		query := "SELECT id, content, role, timestamp, project_id FROM messages ORDER BY timestamp ASC"
		rows, err = db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not query messages: %w", app_errors.ErrStorage, err)
	}
	defer rows.Close()

	messages := []model.ChatRecord{}
	for rows.Next() {
		var msg model.ChatRecord
		var pid sql.NullString
		if err := rows.Scan(&msg.ID, &msg.Content, &msg.Role, &msg.Timestamp, &pid); err != nil {
			return nil, fmt.Errorf("%w: could not scan message: %w", app_errors.ErrStorage, err)
		}
		if pid.Valid {
			msg.ProjectID = &pid.String
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", app_errors.ErrStorage, err)
	}
	return messages, nil
}

// statsConcurrency bounds the per-project file reads of GetStats.
const statsConcurrency = 4

// GetStats counts projects, messages and the files of every project. The sub-reads
// are separate queries and may observe concurrent writes.
func (s *SQLiteStore) GetStats(ctx context.Context) (*model.Stats, error) {
	projects, err := s.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.GetChatMessages(ctx, nil)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statsConcurrency)
	for i, p := range projects {
		g.Go(func() error {
			n, err := s.countFiles(gctx, p.ID)
			counts[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalFiles := 0
	for _, n := range counts {
		totalFiles += n
	}

	return &model.Stats{
		TotalProjects: len(projects),
		TotalFiles:    totalFiles,
		TotalMessages: len(messages),
	}, nil
}

// countFiles counts a project's files through idx_files_project_id without reading
// their content.
func (s *SQLiteStore) countFiles(ctx context.Context, projectID string) (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files WHERE project_id = ?", projectID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: could not count files: %w", app_errors.ErrStorage, err)
	}
	return n, nil
}
