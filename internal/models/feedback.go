package models

import "time"

// Feedback is a single feedback entry. ID and CreatedAt are assigned at
// creation and never change; UpdatedAt moves forward on every update.
type Feedback struct {
	ID        int64     `json:"id" db:"id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
