package domain

import (
	"fmt"
	"time"
)

// LeadStatus enumerates pipeline states for leads. Transitions are not
// ordered: any status may move directly to any other (a lead can be marked
// converted immediately, or reverted for re-engagement).
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
)

// StatusFilterAll is the sentinel value that disables status filtering.
const StatusFilterAll = "all"

// LeadStatuses lists all defined statuses in conventional pipeline order.
func LeadStatuses() []LeadStatus {
	return []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusConverted}
}

// ParseLeadStatus rejects values outside the closed enumeration.
func ParseLeadStatus(raw string) (LeadStatus, error) {
	switch LeadStatus(raw) {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted:
		return LeadStatus(raw), nil
	}
	return "", fmt.Errorf("unknown lead status %q", raw)
}

// Valid reports whether the status is one of the defined values.
func (s LeadStatus) Valid() bool {
	_, err := ParseLeadStatus(string(s))
	return err == nil
}

// LeadSource enumerates acquisition channels.
type LeadSource string

const (
	LeadSourceWebsite   LeadSource = "website"
	LeadSourceInstagram LeadSource = "instagram"
	LeadSourceReferral  LeadSource = "referral"
	LeadSourceLinkedin  LeadSource = "linkedin"
	LeadSourceOther     LeadSource = "other"
)

// ParseLeadSource rejects values outside the closed enumeration.
func ParseLeadSource(raw string) (LeadSource, error) {
	switch LeadSource(raw) {
	case LeadSourceWebsite, LeadSourceInstagram, LeadSourceReferral, LeadSourceLinkedin, LeadSourceOther:
		return LeadSource(raw), nil
	}
	return "", fmt.Errorf("unknown lead source %q", raw)
}

// Valid reports whether the source is one of the defined values.
func (s LeadSource) Valid() bool {
	_, err := ParseLeadSource(string(s))
	return err == nil
}

// Lead is the aggregate for prospective customers.
type Lead struct {
	ID           string
	FullName     string
	Email        string
	Phone        *string
	Source       LeadSource
	Status       LeadStatus
	FollowUpDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    *string
}

// LeadUpdate carries a partial field set for updates; nil fields are left
// unchanged by the store.
type LeadUpdate struct {
	FullName      *string
	Email         *string
	Phone         *string
	Source        *LeadSource
	Status        *LeadStatus
	FollowUpDate  *time.Time
	ClearFollowUp bool
}

// Empty reports whether the update carries no changes.
func (u LeadUpdate) Empty() bool {
	return u.FullName == nil && u.Email == nil && u.Phone == nil &&
		u.Source == nil && u.Status == nil && u.FollowUpDate == nil && !u.ClearFollowUp
}
