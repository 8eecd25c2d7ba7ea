package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"feedback-backend/internal/database"
	"feedback-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *repository.FeedbackRepo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewFeedbackRepo(db)
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	fb, err := repo.Create(ctx, "great service!")
	require.NoError(t, err)
	assert.Equal(t, int64(1), fb.ID)
	assert.Equal(t, "great service!", fb.Message)
	assert.True(t, fb.UpdatedAt.Equal(fb.CreatedAt))
	assert.Equal(t, time.UTC, fb.CreatedAt.Location())

	got, err := repo.GetByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, fb.ID, got.ID)
	assert.Equal(t, fb.Message, got.Message)
	assert.True(t, got.CreatedAt.Equal(fb.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(fb.UpdatedAt))
}

func TestGetRepeatedReadsAreIdentical(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	fb, err := repo.Create(ctx, "stable")
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, fb.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIDsAreMonotonicAcrossDeletes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var lastID int64
	for i := 0; i < 3; i++ {
		fb, err := repo.Create(ctx, fmt.Sprintf("entry %d", i))
		require.NoError(t, err)
		assert.Greater(t, fb.ID, lastID)
		lastID = fb.ID
	}

	require.NoError(t, repo.Delete(ctx, lastID))

	fb, err := repo.Create(ctx, "after delete")
	require.NoError(t, err)
	assert.Greater(t, fb.ID, lastID, "deleted ids must never be reused")
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	fb, err := repo.Create(ctx, "original")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	updated, err := repo.Update(ctx, fb.ID, "updated")
	require.NoError(t, err)
	assert.Equal(t, fb.ID, updated.ID)
	assert.Equal(t, "updated", updated.Message)
	assert.True(t, updated.CreatedAt.Equal(fb.CreatedAt), "created_at is immutable")
	assert.True(t, updated.UpdatedAt.After(fb.UpdatedAt))
}

func TestUpdateNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Update(context.Background(), 42, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteFinality(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	fb, err := repo.Create(ctx, "ephemeral")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, fb.ID))

	_, err = repo.GetByID(ctx, fb.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Update(ctx, fb.ID, "resurrect")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Delete(ctx, fb.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	empty, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, fmt.Sprintf("entry %d", i))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	fbs, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, fbs, 3)

	// Newest first, and totally ordered.
	assert.Equal(t, int64(3), fbs[0].ID)
	assert.Equal(t, int64(2), fbs[1].ID)
	assert.Equal(t, int64(1), fbs[2].ID)
	assert.False(t, fbs[1].CreatedAt.After(fbs[0].CreatedAt))
	assert.False(t, fbs[2].CreatedAt.After(fbs[1].CreatedAt))
}

func TestCount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	fb, err := repo.Create(ctx, "counted")
	require.NoError(t, err)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, fb.ID))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestConcurrentCreates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	const n = 20

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ids  = make(map[int64]bool)
		errs []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fb, err := repo.Create(ctx, fmt.Sprintf("concurrent %d", i))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			ids[fb.ID] = true
		}(i)
	}
	wg.Wait()

	require.Empty(t, errs, "no create may fail under contention")
	assert.Len(t, ids, n, "every create gets a distinct id")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}

func TestSchemaInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.db")
	ctx := context.Background()

	db, err := database.Open(path)
	require.NoError(t, err)
	repo := repository.NewFeedbackRepo(db)
	fb, err := repo.Create(ctx, "survives reopen")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = database.Open(path)
	require.NoError(t, err)
	defer db.Close()

	repo = repository.NewFeedbackRepo(db)
	got, err := repo.GetByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, "survives reopen", got.Message)
}
