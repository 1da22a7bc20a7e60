package repository

import (
	"context"

	"hire-rank/internal/database"
	"hire-rank/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	List(ctx context.Context) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, COALESCE(title, ''), COALESCE(required_skills, ''),
	COALESCE(required_experience, ''), COALESCE(required_education, ''), created_at`

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	var j job.Job
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err := row.Scan(&j.ID, &j.Title, &j.RequiredSkills, &j.RequiredExperience, &j.RequiredEducation, &j.CreatedAt); err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) List(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.RequiredSkills, &j.RequiredExperience, &j.RequiredEducation, &j.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
