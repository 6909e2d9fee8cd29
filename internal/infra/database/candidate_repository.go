package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/xavierca1/ligue-talent/internal/entity"
)

type CandidateRepository struct {
	DB *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{DB: db}
}

// Upsert: replace total. Campo que não veio na atualização é APAGADO,
// não preservado — a planilha é a fonte da verdade da linha inteira.
// (Por isso NÃO usamos COALESCE aqui.)
func (r *CandidateRepository) Upsert(ctx context.Context, c *entity.Candidate) error {
	query := `
		INSERT INTO candidates (
			candidate_id, full_name, email, source, event_name, role,
			outreach_date, interview_stage, touchpoints, hire_date, notes,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (candidate_id)
		DO UPDATE SET
			full_name       = EXCLUDED.full_name,
			email           = EXCLUDED.email,
			source          = EXCLUDED.source,
			event_name      = EXCLUDED.event_name,
			role            = EXCLUDED.role,
			outreach_date   = EXCLUDED.outreach_date,
			interview_stage = EXCLUDED.interview_stage,
			touchpoints     = EXCLUDED.touchpoints,
			hire_date       = EXCLUDED.hire_date,
			notes           = EXCLUDED.notes,
			updated_at      = NOW()
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		c.CandidateID,
		c.FullName,
		c.Email,
		c.Source,
		c.EventName,
		c.Role,
		c.OutreachDate,
		c.InterviewStage,
		nullInt(c.Touchpoints),
		c.HireDate,
		c.Notes,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			log.Printf("Erro crítico no banco (%s): %v", pqErr.Code, err)
		}
		return err
	}

	return nil
}

func (r *CandidateRepository) FindAll(ctx context.Context) ([]entity.Candidate, error) {
	query := `
		SELECT candidate_id, full_name, email, source, event_name, role,
		       outreach_date, interview_stage, touchpoints, hire_date, notes,
		       created_at, updated_at
		FROM candidates
	`
	return r.queryCandidates(ctx, query)
}

// FindHired: listagem de debug, contratados por data de contratação desc.
func (r *CandidateRepository) FindHired(ctx context.Context) ([]entity.Candidate, error) {
	query := `
		SELECT candidate_id, full_name, email, source, event_name, role,
		       outreach_date, interview_stage, touchpoints, hire_date, notes,
		       created_at, updated_at
		FROM candidates
		WHERE hire_date IS NOT NULL AND hire_date <> ''
		ORDER BY hire_date DESC
	`
	return r.queryCandidates(ctx, query)
}

func (r *CandidateRepository) queryCandidates(ctx context.Context, query string) ([]entity.Candidate, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Candidate
	for rows.Next() {
		var c entity.Candidate
		var fullName, email, source, eventName, role sql.NullString
		var outreachDate, interviewStage, hireDate, notes sql.NullString
		var touchpoints sql.NullInt64

		err := rows.Scan(
			&c.CandidateID,
			&fullName,
			&email,
			&source,
			&eventName,
			&role,
			&outreachDate,
			&interviewStage,
			&touchpoints,
			&hireDate,
			&notes,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		c.FullName = fullName.String
		c.Email = email.String
		c.Source = source.String
		c.EventName = eventName.String
		c.Role = role.String
		c.OutreachDate = outreachDate.String
		c.InterviewStage = interviewStage.String
		c.HireDate = hireDate.String
		c.Notes = notes.String
		if touchpoints.Valid {
			n := int(touchpoints.Int64)
			c.Touchpoints = &n
		}

		out = append(out, c)
	}

	return out, rows.Err()
}

func nullInt(n *int) *int64 {
	if n == nil {
		return nil
	}
	v := int64(*n)
	return &v
}
