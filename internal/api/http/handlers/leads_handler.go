package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/dto"
	"github.com/spec-kit/lead-service/internal/auth"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/service"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// LeadsHandler manages lead endpoints.
type LeadsHandler struct {
	service *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leadService *service.LeadService) *LeadsHandler {
	return &LeadsHandler{service: leadService}
}

// CreateLead POST /leads.
func (h *LeadsHandler) CreateLead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAuthError("session required")
	}
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.LeadCreateInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Source:    domain.LeadSource(req.Source),
		CreatedBy: principal.ActorID(),
	}
	if req.FollowUpDate != nil && *req.FollowUpDate != "" {
		followUp, err := time.Parse(dto.DateLayout, *req.FollowUpDate)
		if err != nil {
			return apperrors.NewValidationError("invalid follow_up_date", map[string]any{"follow_up_date": *req.FollowUpDate})
		}
		input.FollowUpDate = &followUp
	}

	lead, err := h.service.CreateLead(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromLead(lead)})
}

// ListLeads GET /leads. Optional search and status query parameters are
// applied as a pure filter over the fetched collection.
func (h *LeadsHandler) ListLeads(c *fiber.Ctx) error {
	leads, err := h.service.ListLeads(c.Context())
	if err != nil {
		return err
	}

	search := c.Query("search")
	statusFilter := c.Query("status", domain.StatusFilterAll)
	if statusFilter != domain.StatusFilterAll && !domain.LeadStatus(statusFilter).Valid() {
		return apperrors.NewValidationError("invalid status filter", map[string]any{"status": statusFilter})
	}
	filtered := domain.FilterLeads(leads, search, statusFilter)

	items := make([]dto.LeadResponse, 0, len(filtered))
	for i := range filtered {
		items = append(items, dto.FromLead(&filtered[i]))
	}
	return c.JSON(fiber.Map{"data": items, "total": len(leads)})
}

// GetLead GET /leads/:id.
func (h *LeadsHandler) GetLead(c *fiber.Ctx) error {
	lead, err := h.service.GetLead(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromLead(lead)})
}

// UpdateLead PATCH /leads/:id.
func (h *LeadsHandler) UpdateLead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAuthError("session required")
	}
	var req dto.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := domain.LeadUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if req.Source != nil {
		source := domain.LeadSource(*req.Source)
		update.Source = &source
	}
	if req.Status != nil {
		status := domain.LeadStatus(*req.Status)
		update.Status = &status
	}
	if req.FollowUpDate != nil {
		if *req.FollowUpDate == "" {
			update.ClearFollowUp = true
		} else {
			followUp, err := time.Parse(dto.DateLayout, *req.FollowUpDate)
			if err != nil {
				return apperrors.NewValidationError("invalid follow_up_date", map[string]any{"follow_up_date": *req.FollowUpDate})
			}
			update.FollowUpDate = &followUp
		}
	}

	lead, err := h.service.UpdateLead(c.Context(), c.Params("id"), update, principal.ActorID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromLead(lead)})
}

// DeleteLead DELETE /leads/:id.
func (h *LeadsHandler) DeleteLead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAuthError("session required")
	}
	if err := h.service.DeleteLead(c.Context(), c.Params("id"), principal.ActorID()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListNotes GET /leads/:id/notes.
func (h *LeadsHandler) ListNotes(c *fiber.Ctx) error {
	notes, err := h.service.ListLeadNotes(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.LeadNoteResponse, 0, len(notes))
	for i := range notes {
		items = append(items, dto.FromLeadNote(&notes[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddNote POST /leads/:id/notes.
func (h *LeadsHandler) AddNote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAuthError("session required")
	}
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	note, err := h.service.AddLeadNote(c.Context(), c.Params("id"), req.Text, principal.ActorID())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromLeadNote(note)})
}
