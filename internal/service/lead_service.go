package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/cache"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/events"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// LeadService coordinates lead workflows: validation ahead of any store call,
// read caching with explicit invalidation after writes, and event publishing.
type LeadService struct {
	leads      repository.LeadRepository
	notes      repository.LeadNoteRepository
	cache      cache.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// LeadDependencies bundles collaborators for the lead service.
type LeadDependencies struct {
	LeadRepo   repository.LeadRepository
	NoteRepo   repository.LeadNoteRepository
	Cache      cache.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// LeadCreateInput describes lead creation payload.
type LeadCreateInput struct {
	FullName     string
	Email        string
	Phone        *string
	Source       domain.LeadSource
	FollowUpDate *time.Time
	CreatedBy    *string
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{
		leads:      deps.LeadRepo,
		notes:      deps.NoteRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateLead validates input and inserts a new lead. Blank required fields
// fail before the store is ever called. Source defaults to website, status to
// new; id and timestamps are assigned by the store.
func (s *LeadService) CreateLead(ctx context.Context, input LeadCreateInput) (*domain.Lead, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	if fullName == "" || email == "" {
		return nil, apperrors.NewValidationError("full_name and email required", nil)
	}
	source := input.Source
	if source == "" {
		source = domain.LeadSourceWebsite
	}
	if !source.Valid() {
		return nil, apperrors.NewValidationError("invalid lead source", map[string]any{"source": string(source)})
	}

	lead := &domain.Lead{
		FullName:     fullName,
		Email:        email,
		Phone:        input.Phone,
		Source:       source,
		Status:       domain.LeadStatusNew,
		FollowUpDate: input.FollowUpDate,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.KeyAllLeads)
	s.publishEvent(ctx, events.Event{
		Type:   events.EventLeadCreated,
		LeadID: lead.ID,
		Actor:  events.Actor{UserID: input.CreatedBy},
		Payload: events.LeadCreatedPayload{
			FullName: lead.FullName,
			Email:    lead.Email,
			Source:   lead.Source,
		},
	})
	return lead, nil
}

// ListLeads returns all leads, newest first, via the read cache.
func (s *LeadService) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	var cached []domain.Lead
	if hit := s.cacheGet(ctx, cache.KeyAllLeads, &cached); hit {
		return cached, nil
	}

	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	s.cacheSet(ctx, cache.KeyAllLeads, leads)
	return leads, nil
}

// GetLead fetches a single lead via the read cache.
func (s *LeadService) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	var cached domain.Lead
	if hit := s.cacheGet(ctx, cache.LeadKey(id), &cached); hit {
		return &cached, nil
	}

	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, leadErr(err, id)
	}
	s.cacheSet(ctx, cache.LeadKey(id), lead)
	return lead, nil
}

// UpdateLead applies a partial field update. Unspecified fields are left
// unchanged; the store refreshes updated_at.
func (s *LeadService) UpdateLead(ctx context.Context, id string, update domain.LeadUpdate, actorID *string) (*domain.Lead, error) {
	if update.Empty() {
		return nil, apperrors.NewValidationError("no fields to update", nil)
	}
	if update.FullName != nil && strings.TrimSpace(*update.FullName) == "" {
		return nil, apperrors.NewValidationError("full_name must not be blank", nil)
	}
	if update.Email != nil && strings.TrimSpace(*update.Email) == "" {
		return nil, apperrors.NewValidationError("email must not be blank", nil)
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid lead status", map[string]any{"status": string(*update.Status)})
	}
	if update.Source != nil && !update.Source.Valid() {
		return nil, apperrors.NewValidationError("invalid lead source", map[string]any{"source": string(*update.Source)})
	}

	// Any status may move to any other; membership in the enum is the only
	// rule. Fetch the previous state so status changes can be reported.
	previous, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, leadErr(err, id)
	}

	lead, err := s.leads.Update(ctx, id, update)
	if err != nil {
		return nil, leadErr(err, id)
	}

	s.invalidate(ctx, cache.KeyAllLeads, cache.LeadKey(id))
	if update.Status != nil && previous.Status != lead.Status {
		s.publishEvent(ctx, events.Event{
			Type:   events.EventLeadStatusChanged,
			LeadID: lead.ID,
			Actor:  events.Actor{UserID: actorID},
			Payload: events.LeadStatusChangedPayload{
				OldStatus: previous.Status,
				NewStatus: lead.Status,
			},
		})
	} else {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventLeadUpdated,
			LeadID:  lead.ID,
			Actor:   events.Actor{UserID: actorID},
			Payload: events.LeadUpdatedPayload{Fields: updatedFields(update)},
		})
	}
	return lead, nil
}

// DeleteLead removes the lead; the schema cascade removes its notes. A
// repeated delete of the same id reports not-found, never corruption.
func (s *LeadService) DeleteLead(ctx context.Context, id string, actorID *string) error {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return leadErr(err, id)
	}
	if err := s.leads.Delete(ctx, id); err != nil {
		return leadErr(err, id)
	}

	s.invalidate(ctx, cache.KeyAllLeads, cache.LeadKey(id), cache.NotesKey(id))
	s.publishEvent(ctx, events.Event{
		Type:    events.EventLeadDeleted,
		LeadID:  id,
		Actor:   events.Actor{UserID: actorID},
		Payload: events.LeadDeletedPayload{FullName: lead.FullName},
	})
	return nil
}

// ListLeadNotes returns the lead's notes, newest first, via the read cache.
func (s *LeadService) ListLeadNotes(ctx context.Context, leadID string) ([]domain.LeadNote, error) {
	var cached []domain.LeadNote
	if hit := s.cacheGet(ctx, cache.NotesKey(leadID), &cached); hit {
		return cached, nil
	}

	notes, err := s.notes.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []domain.LeadNote{}
	}
	s.cacheSet(ctx, cache.NotesKey(leadID), notes)
	return notes, nil
}

// AddLeadNote appends a note to a lead. Text must be non-empty after
// trimming; the store is not called otherwise.
func (s *LeadService) AddLeadNote(ctx context.Context, leadID, text string, createdBy *string) (*domain.LeadNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("note text required", nil)
	}

	if _, err := s.leads.GetByID(ctx, leadID); err != nil {
		return nil, leadErr(err, leadID)
	}

	note := &domain.LeadNote{
		LeadID:    leadID,
		Text:      text,
		CreatedBy: createdBy,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.NotesKey(leadID))
	s.publishEvent(ctx, events.Event{
		Type:   events.EventLeadNoteAdded,
		LeadID: leadID,
		Actor:  events.Actor{UserID: createdBy},
		Payload: events.LeadNoteAddedPayload{
			NoteID:      note.ID,
			TextPreview: textPreview(note.Text, 120),
		},
	})
	return note, nil
}

// DashboardStats computes the aggregate pipeline view from the full lead
// collection.
func (s *LeadService) DashboardStats(ctx context.Context) (domain.DashboardStats, []domain.Lead, error) {
	leads, err := s.ListLeads(ctx)
	if err != nil {
		return domain.DashboardStats{}, nil, err
	}
	recent := leads
	if len(recent) > 5 {
		recent = recent[:5]
	}
	return domain.ComputeDashboardStats(leads), recent, nil
}

func (s *LeadService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		// Cache failures demote to a store read.
		s.logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *LeadService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *LeadService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *LeadService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func leadErr(err error, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("lead", map[string]any{"id": id})
	}
	return err
}

func updatedFields(update domain.LeadUpdate) []string {
	fields := []string{}
	if update.FullName != nil {
		fields = append(fields, "full_name")
	}
	if update.Email != nil {
		fields = append(fields, "email")
	}
	if update.Phone != nil {
		fields = append(fields, "phone")
	}
	if update.Source != nil {
		fields = append(fields, "source")
	}
	if update.Status != nil {
		fields = append(fields, "status")
	}
	if update.FollowUpDate != nil || update.ClearFollowUp {
		fields = append(fields, "follow_up_date")
	}
	return fields
}

func textPreview(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}
