package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-service/internal/domain"
)

// LeadNoteRepository manages append-only lead annotations.
type LeadNoteRepository interface {
	Create(ctx context.Context, note *domain.LeadNote) error
	ListByLead(ctx context.Context, leadID string) ([]domain.LeadNote, error)
}

type leadNoteRepository struct {
	pool *pgxpool.Pool
}

// NewLeadNoteRepository builds repository.
func NewLeadNoteRepository(pool *pgxpool.Pool) LeadNoteRepository {
	return &leadNoteRepository{pool: pool}
}

func (r *leadNoteRepository) Create(ctx context.Context, note *domain.LeadNote) error {
	const query = `
        INSERT INTO lead_notes (lead_id, text, created_by)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		note.LeadID,
		note.Text,
		note.CreatedBy,
	).Scan(&note.ID, &note.CreatedAt)
}

func (r *leadNoteRepository) ListByLead(ctx context.Context, leadID string) ([]domain.LeadNote, error) {
	const query = `
        SELECT id, lead_id, text, created_at, created_by
        FROM lead_notes WHERE lead_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LeadNote
	for rows.Next() {
		var note domain.LeadNote
		if err := rows.Scan(
			&note.ID,
			&note.LeadID,
			&note.Text,
			&note.CreatedAt,
			&note.CreatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}
