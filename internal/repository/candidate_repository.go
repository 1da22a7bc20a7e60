package repository

import (
	"context"

	"hire-rank/internal/database"
	"hire-rank/internal/domain/candidate"

	"github.com/google/uuid"
)

type CandidateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]candidate.Candidate, error)
	List(ctx context.Context) ([]candidate.Candidate, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `id, COALESCE(full_name, ''), COALESCE(email, ''), COALESCE(skills, ''),
	experience_years, COALESCE(education, ''), current_resume_id, created_at`

func scanCandidate(row database.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.Skills, &c.ExperienceYears, &c.Education, &c.CurrentResumeID, &c.CreatedAt)
	return c, err
}

func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	c, err := scanCandidate(r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return candidate.Candidate{}, ErrCandidateNotFound
		}
		return candidate.Candidate{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]candidate.Candidate, error) {
	out := make(map[uuid.UUID]candidate.Candidate, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) List(ctx context.Context) ([]candidate.Candidate, error) {
	rows, err := r.db.Query(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
