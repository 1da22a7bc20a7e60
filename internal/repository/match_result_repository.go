package repository

import (
	"context"

	"hire-rank/internal/database"
	"hire-rank/internal/domain/match"

	"github.com/google/uuid"
)

type MatchResultRepository interface {
	// CreateLatest demotes the current latest result of the pair and inserts r
	// as the new latest in one transaction.
	CreateLatest(ctx context.Context, r match.Result) (match.Result, error)
	// Update rewrites scores of a result that is still latest. Demoted results
	// yield ErrStaleMatchResult.
	Update(ctx context.Context, r match.Result) error

	FindByID(ctx context.Context, id uuid.UUID) (match.Result, error)
	FindLatest(ctx context.Context, jobID, candidateID uuid.UUID) (match.Result, error)
	FindLatestByJob(ctx context.Context, jobID uuid.UUID) ([]match.Result, error)
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Result, error)

	Delete(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
}

type PostgresMatchResultRepository struct {
	db database.DB
}

func NewPostgresMatchResultRepository(db database.DB) *PostgresMatchResultRepository {
	return &PostgresMatchResultRepository{db: db}
}

const matchColumns = `id, job_id, candidate_id, resume_id,
	overall_score, skills_score, experience_score, education_score, personality_score, cultural_fit_score,
	matched_skills, missing_skills, partial_skills,
	is_latest, is_active, recalculation_count, match_date, last_recalculated_at`

func scanMatch(row database.Row) (match.Result, error) {
	var m match.Result
	err := row.Scan(
		&m.ID, &m.JobID, &m.CandidateID, &m.ResumeID,
		&m.OverallScore, &m.SkillsScore, &m.ExperienceScore, &m.EducationScore, &m.PersonalityScore, &m.CulturalFitScore,
		&m.MatchedSkills, &m.MissingSkills, &m.PartialSkills,
		&m.IsLatest, &m.IsActive, &m.RecalculationCount, &m.MatchDate, &m.LastRecalculatedAt,
	)
	return m, err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *PostgresMatchResultRepository) CreateLatest(ctx context.Context, m match.Result) (match.Result, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.IsLatest = true

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return match.Result{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	// Serialises writers of the same pair so the partial unique index on
	// is_latest is never contended.
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2::text, 0))`,
		m.JobID, m.CandidateID,
	); err != nil {
		return match.Result{}, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE match_results SET is_latest = false
		 WHERE job_id = $1 AND candidate_id = $2 AND is_latest`,
		m.JobID, m.CandidateID,
	); err != nil {
		return match.Result{}, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO match_results (`+matchColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		m.ID, m.JobID, m.CandidateID, m.ResumeID,
		m.OverallScore, m.SkillsScore, m.ExperienceScore, m.EducationScore, m.PersonalityScore, m.CulturalFitScore,
		nonNil(m.MatchedSkills), nonNil(m.MissingSkills), nonNil(m.PartialSkills),
		m.IsLatest, m.IsActive, m.RecalculationCount, m.MatchDate, m.LastRecalculatedAt,
	)
	if err != nil {
		return match.Result{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return match.Result{}, err
	}
	return m, nil
}

func (r *PostgresMatchResultRepository) Update(ctx context.Context, m match.Result) error {
	n, err := r.db.Exec(ctx,
		`UPDATE match_results SET
			overall_score = $2, skills_score = $3, experience_score = $4, education_score = $5,
			personality_score = $6, cultural_fit_score = $7,
			matched_skills = $8, missing_skills = $9, partial_skills = $10,
			recalculation_count = $11, last_recalculated_at = $12
		 WHERE id = $1 AND is_latest`,
		m.ID,
		m.OverallScore, m.SkillsScore, m.ExperienceScore, m.EducationScore,
		m.PersonalityScore, m.CulturalFitScore,
		nonNil(m.MatchedSkills), nonNil(m.MissingSkills), nonNil(m.PartialSkills),
		m.RecalculationCount, m.LastRecalculatedAt,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.FindByID(ctx, m.ID); err != nil {
			return err
		}
		return ErrStaleMatchResult
	}
	return nil
}

func (r *PostgresMatchResultRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Result, error) {
	m, err := scanMatch(r.db.QueryRow(ctx, `SELECT `+matchColumns+` FROM match_results WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return match.Result{}, ErrMatchResultNotFound
		}
		return match.Result{}, err
	}
	return m, nil
}

func (r *PostgresMatchResultRepository) FindLatest(ctx context.Context, jobID, candidateID uuid.UUID) (match.Result, error) {
	m, err := scanMatch(r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM match_results
		 WHERE job_id = $1 AND candidate_id = $2 AND is_latest`,
		jobID, candidateID,
	))
	if err != nil {
		if isNoRows(err) {
			return match.Result{}, ErrMatchResultNotFound
		}
		return match.Result{}, err
	}
	return m, nil
}

func (r *PostgresMatchResultRepository) FindLatestByJob(ctx context.Context, jobID uuid.UUID) ([]match.Result, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+` FROM match_results
		 WHERE job_id = $1 AND is_latest AND is_active
		 ORDER BY overall_score DESC NULLS LAST, candidate_id`,
		jobID,
	)
}

func (r *PostgresMatchResultRepository) FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Result, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+` FROM match_results
		 WHERE candidate_id = $1 AND is_latest AND is_active
		 ORDER BY match_date DESC`,
		candidateID,
	)
}

func (r *PostgresMatchResultRepository) list(ctx context.Context, query string, args ...any) ([]match.Result, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Result, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchResultRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM match_results WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMatchResultNotFound
	}
	return nil
}

func (r *PostgresMatchResultRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE match_results SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMatchResultNotFound
	}
	return nil
}

func (r *PostgresMatchResultRepository) DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM match_results WHERE job_id = $1`, jobID)
}
