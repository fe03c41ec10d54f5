package domain

import "time"

// LeadNote is an append-only annotation attached to a lead. Notes are never
// edited; they are removed only by the cascade when the parent lead is
// deleted, which the database schema enforces.
type LeadNote struct {
	ID        string
	LeadID    string
	Text      string
	CreatedAt time.Time
	CreatedBy *string
}
