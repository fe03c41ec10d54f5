package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-service/internal/domain"
)

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	Update(ctx context.Context, id string, update domain.LeadUpdate) (*domain.Lead, error)
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)
	Delete(ctx context.Context, id string) error
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

const leadColumns = `id, full_name, email, phone, source, status, follow_up_date, created_at, updated_at, created_by`

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (full_name, email, phone, source, status, follow_up_date, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.Source,
		lead.Status,
		lead.FollowUpDate,
		lead.CreatedBy,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

// Update applies only the fields present in the partial update; unspecified
// fields keep their stored values. updated_at is refreshed by the store.
func (r *leadRepository) Update(ctx context.Context, id string, update domain.LeadUpdate) (*domain.Lead, error) {
	sets := []string{"updated_at=NOW()"}
	args := []any{}

	if update.FullName != nil {
		args = append(args, *update.FullName)
		sets = append(sets, fmt.Sprintf("full_name=$%d", len(args)))
	}
	if update.Email != nil {
		args = append(args, *update.Email)
		sets = append(sets, fmt.Sprintf("email=$%d", len(args)))
	}
	if update.Phone != nil {
		args = append(args, *update.Phone)
		sets = append(sets, fmt.Sprintf("phone=$%d", len(args)))
	}
	if update.Source != nil {
		args = append(args, *update.Source)
		sets = append(sets, fmt.Sprintf("source=$%d", len(args)))
	}
	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}
	if update.ClearFollowUp {
		sets = append(sets, "follow_up_date=NULL")
	} else if update.FollowUpDate != nil {
		args = append(args, *update.FollowUpDate)
		sets = append(sets, fmt.Sprintf("follow_up_date=$%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE leads SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), leadColumns)

	lead, err := r.scanLead(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id=$1`, leadColumns)
	return r.scanLead(r.pool.QueryRow(ctx, query, id))
}

func (r *leadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads ORDER BY created_at DESC`, leadColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.FullName,
			&lead.Email,
			&lead.Phone,
			&lead.Source,
			&lead.Status,
			&lead.FollowUpDate,
			&lead.CreatedAt,
			&lead.UpdatedAt,
			&lead.CreatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}

// Delete removes the lead; its notes go with it via the schema cascade.
// Deleting an already-deleted id reports pgx.ErrNoRows.
func (r *leadRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) scanLead(row pgx.Row) (*domain.Lead, error) {
	var lead domain.Lead
	if err := row.Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Email,
		&lead.Phone,
		&lead.Source,
		&lead.Status,
		&lead.FollowUpDate,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&lead.CreatedBy,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}
