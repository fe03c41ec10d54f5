package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lead-service/internal/cache"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/events"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// fakeNoteRepo is an in-memory LeadNoteRepository.
type fakeNoteRepo struct {
	notes       map[string][]domain.LeadNote
	createCalls int
	listCalls   int
	seq         int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[string][]domain.LeadNote)}
}

func (f *fakeNoteRepo) Create(_ context.Context, note *domain.LeadNote) error {
	f.createCalls++
	f.seq++
	note.ID = fmt.Sprintf("note-%d", f.seq)
	note.CreatedAt = time.Date(2026, 1, 1, 0, 0, f.seq, 0, time.UTC)
	f.notes[note.LeadID] = append([]domain.LeadNote{*note}, f.notes[note.LeadID]...)
	return nil
}

func (f *fakeNoteRepo) ListByLead(_ context.Context, leadID string) ([]domain.LeadNote, error) {
	f.listCalls++
	return append([]domain.LeadNote{}, f.notes[leadID]...), nil
}

// fakeLeadRepo is an in-memory LeadRepository that cascades note deletion the
// way the schema does.
type fakeLeadRepo struct {
	leads       map[string]domain.Lead
	noteRepo    *fakeNoteRepo
	createCalls int
	listCalls   int
	seq         int
}

func newFakeLeadRepo(noteRepo *fakeNoteRepo) *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]domain.Lead), noteRepo: noteRepo}
}

func (f *fakeLeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	f.createCalls++
	f.seq++
	lead.ID = fmt.Sprintf("lead-%d", f.seq)
	lead.CreatedAt = time.Date(2026, 1, 1, 0, 0, f.seq, 0, time.UTC)
	lead.UpdatedAt = lead.CreatedAt
	f.leads[lead.ID] = *lead
	return nil
}

func (f *fakeLeadRepo) Update(_ context.Context, id string, update domain.LeadUpdate) (*domain.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.FullName != nil {
		lead.FullName = *update.FullName
	}
	if update.Email != nil {
		lead.Email = *update.Email
	}
	if update.Phone != nil {
		lead.Phone = update.Phone
	}
	if update.Source != nil {
		lead.Source = *update.Source
	}
	if update.Status != nil {
		lead.Status = *update.Status
	}
	if update.ClearFollowUp {
		lead.FollowUpDate = nil
	} else if update.FollowUpDate != nil {
		lead.FollowUpDate = update.FollowUpDate
	}
	lead.UpdatedAt = lead.UpdatedAt.Add(time.Second)
	f.leads[id] = lead
	return &lead, nil
}

func (f *fakeLeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &lead, nil
}

func (f *fakeLeadRepo) List(_ context.Context) ([]domain.Lead, error) {
	f.listCalls++
	result := make([]domain.Lead, 0, len(f.leads))
	for _, lead := range f.leads {
		result = append(result, lead)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeLeadRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.leads[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.leads, id)
	delete(f.noteRepo.notes, id)
	return nil
}

var (
	_ repository.LeadRepository     = (*fakeLeadRepo)(nil)
	_ repository.LeadNoteRepository = (*fakeNoteRepo)(nil)
)

func newTestService() (*LeadService, *fakeLeadRepo, *fakeNoteRepo) {
	noteRepo := newFakeNoteRepo()
	leadRepo := newFakeLeadRepo(noteRepo)
	svc := NewLeadService(LeadDependencies{
		LeadRepo:   leadRepo,
		NoteRepo:   noteRepo,
		Cache:      cache.NewMemoryStore(),
		Dispatcher: events.NewInMemoryDispatcher(),
	})
	return svc, leadRepo, noteRepo
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestCreateLead_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	lead, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Jane Doe", Email: "jane@acme.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, domain.LeadSourceWebsite, lead.Source)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	assert.False(t, lead.UpdatedAt.Before(lead.CreatedAt))
}

func TestCreateLead_BlankFieldsNeverReachStore(t *testing.T) {
	ctx := context.Background()
	svc, leadRepo, _ := newTestService()

	cases := []LeadCreateInput{
		{FullName: "", Email: "jane@acme.com"},
		{FullName: "Jane Doe", Email: ""},
		{FullName: "   ", Email: "jane@acme.com"},
	}
	for _, input := range cases {
		_, err := svc.CreateLead(ctx, input)
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	}
	assert.Equal(t, 0, leadRepo.createCalls)
}

func TestCreateLead_RejectsUnknownSource(t *testing.T) {
	ctx := context.Background()
	svc, leadRepo, _ := newTestService()

	_, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Jane", Email: "j@a.com", Source: "facebook"})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	assert.Equal(t, 0, leadRepo.createCalls)
}

func TestUpdateLead_PartialFieldsLeaveRestUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Jane Doe", Email: "jane@acme.com", Source: domain.LeadSourceReferral})
	require.NoError(t, err)

	status := domain.LeadStatusContacted
	updated, err := svc.UpdateLead(ctx, created.ID, domain.LeadUpdate{Status: &status}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.LeadStatusContacted, updated.Status)
	assert.Equal(t, "Jane Doe", updated.FullName)
	assert.Equal(t, "jane@acme.com", updated.Email)
	assert.Equal(t, domain.LeadSourceReferral, updated.Source)
	assert.True(t, updated.UpdatedAt.After(created.CreatedAt))
}

func TestUpdateLead_AnyStatusReachesAnyOther(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Jane", Email: "j@a.com"})
	require.NoError(t, err)

	// Straight to converted, then back to new: no forced progression.
	for _, status := range []domain.LeadStatus{domain.LeadStatusConverted, domain.LeadStatusNew, domain.LeadStatusContacted} {
		status := status
		updated, err := svc.UpdateLead(ctx, created.ID, domain.LeadUpdate{Status: &status}, nil)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdateLead_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.UpdateLead(ctx, "missing", domain.LeadUpdate{ClearFollowUp: true}, nil)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	_, err = svc.UpdateLead(ctx, "missing", domain.LeadUpdate{}, nil)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	bad := domain.LeadStatus("closed")
	_, err = svc.UpdateLead(ctx, "missing", domain.LeadUpdate{Status: &bad}, nil)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestDeleteLead_CascadesNotes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	lead, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Jane", Email: "j@a.com"})
	require.NoError(t, err)
	_, err = svc.AddLeadNote(ctx, lead.ID, "called once", nil)
	require.NoError(t, err)
	_, err = svc.AddLeadNote(ctx, lead.ID, "left voicemail", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLead(ctx, lead.ID, nil))

	leads, err := svc.ListLeads(ctx)
	require.NoError(t, err)
	assert.Empty(t, leads)

	notes, err := svc.ListLeadNotes(ctx, lead.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	// Retried delete of an already-deleted id reports not-found, not corruption.
	err = svc.DeleteLead(ctx, lead.ID, nil)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestAddLeadNote_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, noteRepo := newTestService()

	lead, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Jane", Email: "j@a.com"})
	require.NoError(t, err)

	_, err = svc.AddLeadNote(ctx, lead.ID, "   \n\t", nil)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	assert.Equal(t, 0, noteRepo.createCalls)

	note, err := svc.AddLeadNote(ctx, lead.ID, "  spoke on the phone  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "spoke on the phone", note.Text)

	_, err = svc.AddLeadNote(ctx, "missing", "text", nil)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestListLeadNotes_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	lead, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Jane", Email: "j@a.com"})
	require.NoError(t, err)
	first, err := svc.AddLeadNote(ctx, lead.ID, "first", nil)
	require.NoError(t, err)
	second, err := svc.AddLeadNote(ctx, lead.ID, "second", nil)
	require.NoError(t, err)

	notes, err := svc.ListLeadNotes(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
}

func TestListLeads_CacheHitSkipsStore(t *testing.T) {
	ctx := context.Background()
	svc, leadRepo, _ := newTestService()

	_, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Jane", Email: "j@a.com"})
	require.NoError(t, err)

	_, err = svc.ListLeads(ctx)
	require.NoError(t, err)
	_, err = svc.ListLeads(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, leadRepo.listCalls)
}

func TestMutationInvalidatesCachedReads(t *testing.T) {
	ctx := context.Background()
	svc, leadRepo, _ := newTestService()

	first, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Ann Lee", Email: "a@x.com"})
	require.NoError(t, err)

	leads, err := svc.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)

	// A successful write invalidates the list; the next read reflects it.
	second, err := svc.CreateLead(ctx, LeadCreateInput{FullName: "Bob", Email: "bob@y.com"})
	require.NoError(t, err)

	leads, err = svc.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, second.ID, leads[0].ID, "newest first")
	assert.Equal(t, first.ID, leads[1].ID)
	assert.Equal(t, 2, leadRepo.listCalls)

	// Same for single-lead reads after an update.
	got, err := svc.GetLead(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNew, got.Status)

	status := domain.LeadStatusConverted
	_, err = svc.UpdateLead(ctx, first.ID, domain.LeadUpdate{Status: &status}, nil)
	require.NoError(t, err)

	got, err = svc.GetLead(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusConverted, got.Status)
}

func TestGetLead_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.GetLead(ctx, "missing")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestLeadPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	lead, err := svc.CreateLead(ctx, LeadCreateInput{
		FullName: "Jane Doe",
		Email:    "jane@acme.com",
		Source:   domain.LeadSourceReferral,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)

	status := domain.LeadStatusConverted
	_, err = svc.UpdateLead(ctx, lead.ID, domain.LeadUpdate{Status: &status}, nil)
	require.NoError(t, err)

	leads, err := svc.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, domain.LeadStatusConverted, leads[0].Status)

	stats, recent, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ConvertedCount)
	assert.Equal(t, 100, stats.ConversionRate)
	assert.Len(t, recent, 1)
}

func TestDashboardStats_RecentCapsAtFive(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	for i := 0; i < 7; i++ {
		_, err := svc.CreateLead(ctx, LeadCreateInput{
			FullName: fmt.Sprintf("Lead %d", i),
			Email:    fmt.Sprintf("lead%d@x.com", i),
		})
		require.NoError(t, err)
	}

	stats, recent, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Total)
	require.Len(t, recent, 5)
	assert.Equal(t, "Lead 6", recent[0].FullName, "newest first")
}
