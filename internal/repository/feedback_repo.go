package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"feedback-backend/internal/models"
)

var (
	// ErrNotFound means no feedback row exists for the given id.
	ErrNotFound = errors.New("feedback not found")
	// ErrUnavailable means the store could not serve the operation.
	ErrUnavailable = errors.New("storage unavailable")
)

// Timestamps are stored as RFC 3339 UTC text. The fractional part is
// zero-padded to fixed width so lexicographic ORDER BY created_at matches
// chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FeedbackRepo is the storage engine for feedback rows. SQLite supports a
// single writer, so all mutations serialize through writeMu; contention
// becomes a wait instead of a driver busy error. Reads take no lock and
// rely on WAL isolation.
type FeedbackRepo struct {
	db      *sql.DB
	writeMu sync.Mutex
}

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Create inserts a new row. created_at and updated_at start equal, in UTC.
func (r *FeedbackRepo) Create(ctx context.Context, message string) (*models.Feedback, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback (message, created_at, updated_at) VALUES (?, ?, ?)`,
		message, now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert: %v", ErrUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: last insert id: %v", ErrUnavailable, err)
	}

	return &models.Feedback{
		ID:        id,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetByID returns the row with the given id, or ErrNotFound.
func (r *FeedbackRepo) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, message, created_at, updated_at FROM feedback WHERE id = ?`, id)

	fb, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: select: %v", ErrUnavailable, err)
	}
	return fb, nil
}

// ListAll returns every row, newest first. Ordering is part of the public
// contract: created_at descending, id descending as tiebreak.
func (r *FeedbackRepo) ListAll(ctx context.Context) ([]*models.Feedback, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, message, created_at, updated_at FROM feedback ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: select: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	feedbacks := []*models.Feedback{}
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrUnavailable, err)
		}
		feedbacks = append(feedbacks, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate: %v", ErrUnavailable, err)
	}
	return feedbacks, nil
}

// Update replaces the message and advances updated_at. id and created_at
// never change. Returns the refreshed row, or ErrNotFound.
func (r *FeedbackRepo) Update(ctx context.Context, id int64, message string) (*models.Feedback, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE feedback SET message = ?, updated_at = ? WHERE id = ?`,
		message, now.Format(timeLayout), id,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: update: %v", ErrUnavailable, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: rows affected: %v", ErrUnavailable, err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes the row with the given id, or returns ErrNotFound. A
// deleted id is never reused: AUTOINCREMENT keeps the rowid sequence
// monotonic across deletions.
func (r *FeedbackRepo) Delete(ctx context.Context, id int64) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete: %v", ErrUnavailable, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrUnavailable, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of rows.
func (r *FeedbackRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrUnavailable, err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row rowScanner) (*models.Feedback, error) {
	var (
		fb                   models.Feedback
		createdAt, updatedAt string
	)
	if err := row.Scan(&fb.ID, &fb.Message, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if fb.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if fb.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &fb, nil
}
