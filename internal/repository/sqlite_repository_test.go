package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/model"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "yanyu.db"))
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func setupMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &SQLiteStore{db: db}, mockDB
}

func TestSQLiteStore_NotInitialized(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "yanyu.db"))
	ctx := context.Background()

	_, err := store.CreateProject(ctx, &model.Project{Name: "P1"})
	assert.ErrorIs(t, err, app_errors.ErrStoreNotInitialized)
	assert.ErrorIs(t, err, app_errors.ErrStorage)

	_, err = store.GetProjects(ctx)
	assert.ErrorIs(t, err, app_errors.ErrStoreNotInitialized)

	_, err = store.GetFilesByProject(ctx, "p")
	assert.ErrorIs(t, err, app_errors.ErrStoreNotInitialized)

	_, err = store.SaveChatMessage(ctx, &model.ChatRecord{Role: model.RoleUser, Content: "hi"})
	assert.ErrorIs(t, err, app_errors.ErrStoreNotInitialized)

	_, err = store.GetStats(ctx)
	assert.ErrorIs(t, err, app_errors.ErrStoreNotInitialized)
}

func TestSQLiteStore_ProjectsAndFiles(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// ARRANGE
	created, err := store.CreateProject(ctx, &model.Project{Name: "P1", Description: "d", Files: []string{}})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	// ACT
	projects, err := store.GetProjects(ctx)

	// ASSERT
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, created.ID, projects[0].ID)
	assert.Equal(t, "P1", projects[0].Name)
	assert.Equal(t, "d", projects[0].Description)
	assert.Equal(t, []string{}, projects[0].Files)

	t.Run("files are found through the project index", func(t *testing.T) {
		file, err := store.SaveFile(ctx, &model.File{Name: "main.go", Content: "package main", Type: "text/x-go", Size: 12, ProjectID: created.ID})
		require.NoError(t, err)
		_, err = store.SaveFile(ctx, &model.File{Name: "other.txt", ProjectID: "another-project"})
		require.NoError(t, err)

		files, err := store.GetFilesByProject(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, file.ID, files[0].ID)
		assert.Equal(t, "package main", files[0].Content)
		assert.Equal(t, int64(12), files[0].Size)
	})

	t.Run("unknown project has no files", func(t *testing.T) {
		files, err := store.GetFilesByProject(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("GetProject", func(t *testing.T) {
		p, err := store.GetProject(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "P1", p.Name)

		_, err = store.GetProject(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSQLiteStore_IDsAreUnique(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := store.CreateProject(ctx, &model.Project{Name: "same"})
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "id reused: %s", p.ID)
		seen[p.ID] = true
	}
}

func TestSQLiteStore_ChatMessages(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	projectID := "p1"

	_, err := store.SaveChatMessage(ctx, &model.ChatRecord{Role: model.RoleUser, Content: "hi", ProjectID: &projectID})
	require.NoError(t, err)
	_, err = store.SaveChatMessage(ctx, &model.ChatRecord{Role: model.RoleAssistant, Content: "hello", ProjectID: &projectID})
	require.NoError(t, err)
	loose, err := store.SaveChatMessage(ctx, &model.ChatRecord{Role: model.RoleUser, Content: "no project"})
	require.NoError(t, err)
	assert.False(t, loose.Timestamp.IsZero())

	all, err := store.GetChatMessages(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := store.GetChatMessages(ctx, &projectID)
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, "hi", scoped[0].Content)
	assert.Equal(t, "hello", scoped[1].Content)
	require.NotNil(t, scoped[0].ProjectID)
	assert.Equal(t, projectID, *scoped[0].ProjectID)
}

func TestSQLiteStore_ChatMessagesSortByInstant(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	shanghai := time.FixedZone("UTC+8", 8*60*60)

	// 10:00+08:00 is 02:00 UTC and happened before 09:00 UTC.
	_, err := store.SaveChatMessage(ctx, &model.ChatRecord{Role: model.RoleUser, Content: "late",
		Timestamp: time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	early, err := store.SaveChatMessage(ctx, &model.ChatRecord{Role: model.RoleUser, Content: "early",
		Timestamp: time.Date(2026, 1, 2, 10, 0, 0, 0, shanghai)})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, early.Timestamp.Location())

	msgs, err := store.GetChatMessages(ctx, nil)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "early", msgs[0].Content)
	assert.Equal(t, "late", msgs[1].Content)
	assert.True(t, msgs[0].Timestamp.Equal(time.Date(2026, 1, 2, 2, 0, 0, 0, time.UTC)))
}

func TestSQLiteStore_GetStats(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	p1, err := store.CreateProject(ctx, &model.Project{Name: "P1"})
	require.NoError(t, err)
	p2, err := store.CreateProject(ctx, &model.Project{Name: "P2"})
	require.NoError(t, err)
	for _, pid := range []string{p1.ID, p1.ID, p2.ID} {
		_, err := store.SaveFile(ctx, &model.File{Name: "f", ProjectID: pid})
		require.NoError(t, err)
	}
	// Files of unknown projects are not counted.
	_, err = store.SaveFile(ctx, &model.File{Name: "orphan", ProjectID: "gone"})
	require.NoError(t, err)
	_, err = store.SaveChatMessage(ctx, &model.ChatRecord{Role: model.RoleUser, Content: "hi"})
	require.NoError(t, err)

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.Stats{TotalProjects: 2, TotalFiles: 3, TotalMessages: 1}, stats)
}

func TestSQLiteStore_ConcurrentWrites(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.SaveChatMessage(ctx, &model.ChatRecord{Role: model.RoleUser, Content: "x"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	msgs, err := store.GetChatMessages(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, msgs, 10)
}

func TestSQLiteStore_TransactionFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("failed insert is rolled back", func(t *testing.T) {
		store, mockDB := setupMockStore(t)
		mockDB.ExpectBegin()
		mockDB.ExpectExec("INSERT INTO projects").WillReturnError(errors.New("disk full"))
		mockDB.ExpectRollback()

		p, err := store.CreateProject(ctx, &model.Project{Name: "P1"})

		assert.Nil(t, p)
		assert.ErrorIs(t, err, app_errors.ErrStorage)
		assert.ErrorContains(t, err, "disk full")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("failed commit fails the write", func(t *testing.T) {
		store, mockDB := setupMockStore(t)
		mockDB.ExpectBegin()
		mockDB.ExpectExec("INSERT INTO files").
			WithArgs(sqlmock.AnyArg(), "a.txt", "", "", int64(0), "p1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.ExpectCommit().WillReturnError(errors.New("database is locked"))

		f, err := store.SaveFile(ctx, &model.File{Name: "a.txt", ProjectID: "p1"})

		assert.Nil(t, f)
		assert.ErrorIs(t, err, app_errors.ErrStorage)
		assert.ErrorContains(t, err, "could not commit")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		store, mockDB := setupMockStore(t)
		mockDB.ExpectBegin().WillReturnError(errors.New("busy"))

		_, err := store.SaveChatMessage(ctx, &model.ChatRecord{Role: model.RoleUser, Content: "hi"})

		assert.ErrorIs(t, err, app_errors.ErrStorage)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		store, mockDB := setupMockStore(t)
		mockDB.ExpectQuery("SELECT (.+) FROM messages WHERE project_id").
			WithArgs("p1").
			WillReturnError(errors.New("no such table"))

		projectID := "p1"
		_, err := store.GetChatMessages(ctx, &projectID)

		assert.ErrorIs(t, err, app_errors.ErrStorage)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("stats fail when a file read fails", func(t *testing.T) {
		store, mockDB := setupMockStore(t)
		now := time.Now().UTC()
		mockDB.ExpectQuery("SELECT (.+) FROM projects").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "files", "created_at", "updated_at"}).
				AddRow("p1", "P1", "", "[]", now, now))
		mockDB.ExpectQuery("SELECT (.+) FROM messages").
			WillReturnRows(sqlmock.NewRows([]string{"id", "content", "role", "timestamp", "project_id"}))
		mockDB.ExpectQuery(`SELECT COUNT\(\*\) FROM files WHERE project_id`).
			WithArgs("p1").
			WillReturnError(errors.New("disk I/O error"))

		stats, err := store.GetStats(ctx)

		assert.Nil(t, stats)
		assert.ErrorIs(t, err, app_errors.ErrStorage)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}
