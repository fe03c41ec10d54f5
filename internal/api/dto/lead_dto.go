package dto

import (
	"time"

	"github.com/spec-kit/lead-service/internal/domain"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CreateLeadRequest payload.
type CreateLeadRequest struct {
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	Source       string  `json:"source"`
	FollowUpDate *string `json:"follow_up_date"`
}

// UpdateLeadRequest carries a partial field set; absent fields are left
// unchanged. An explicit empty follow_up_date clears the stored date.
type UpdateLeadRequest struct {
	FullName     *string `json:"full_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Source       *string `json:"source"`
	Status       *string `json:"status"`
	FollowUpDate *string `json:"follow_up_date"`
}

// CreateNoteRequest payload.
type CreateNoteRequest struct {
	Text string `json:"text"`
}

// LeadResponse is the wire shape of a lead.
type LeadResponse struct {
	ID           string            `json:"id"`
	FullName     string            `json:"full_name"`
	Email        string            `json:"email"`
	Phone        *string           `json:"phone"`
	Source       domain.LeadSource `json:"source"`
	Status       domain.LeadStatus `json:"status"`
	FollowUpDate *string           `json:"follow_up_date"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	CreatedBy    *string           `json:"created_by"`
}

// LeadNoteResponse is the wire shape of a note.
type LeadNoteResponse struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy *string   `json:"created_by"`
}

// DashboardStatsResponse is the aggregate pipeline view.
type DashboardStatsResponse struct {
	Total          int            `json:"total"`
	NewCount       int            `json:"new_count"`
	ContactedCount int            `json:"contacted_count"`
	ConvertedCount int            `json:"converted_count"`
	ConversionRate int            `json:"conversion_rate"`
	RecentLeads    []LeadResponse `json:"recent_leads"`
}

// FromLead maps a domain lead to its wire shape.
func FromLead(lead *domain.Lead) LeadResponse {
	resp := LeadResponse{
		ID:        lead.ID,
		FullName:  lead.FullName,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Source:    lead.Source,
		Status:    lead.Status,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
		CreatedBy: lead.CreatedBy,
	}
	if lead.FollowUpDate != nil {
		formatted := lead.FollowUpDate.Format(DateLayout)
		resp.FollowUpDate = &formatted
	}
	return resp
}

// FromLeadNote maps a domain note to its wire shape.
func FromLeadNote(note *domain.LeadNote) LeadNoteResponse {
	return LeadNoteResponse{
		ID:        note.ID,
		LeadID:    note.LeadID,
		Text:      note.Text,
		CreatedAt: note.CreatedAt,
		CreatedBy: note.CreatedBy,
	}
}
