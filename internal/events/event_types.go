package events

import (
	"time"

	"github.com/spec-kit/lead-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventLeadUpdated       EventType = "lead_updated"
	EventLeadStatusChanged EventType = "lead_status_changed"
	EventLeadDeleted       EventType = "lead_deleted"
	EventLeadNoteAdded     EventType = "lead_note_added"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID *string `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	LeadID    string      `json:"lead_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	FullName string            `json:"full_name"`
	Email    string            `json:"email"`
	Source   domain.LeadSource `json:"source"`
}

// LeadUpdatedPayload payload.
type LeadUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// LeadStatusChangedPayload payload.
type LeadStatusChangedPayload struct {
	OldStatus domain.LeadStatus `json:"old_status"`
	NewStatus domain.LeadStatus `json:"new_status"`
}

// LeadDeletedPayload payload.
type LeadDeletedPayload struct {
	FullName string `json:"full_name"`
}

// LeadNoteAddedPayload payload.
type LeadNoteAddedPayload struct {
	NoteID      string `json:"note_id"`
	TextPreview string `json:"text_preview"`
}
