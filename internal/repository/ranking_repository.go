package repository

import (
	"context"
	"time"

	"hire-rank/internal/database"
	"hire-rank/internal/domain/ranking"

	"github.com/google/uuid"
)

// BuildSnapshot receives the job's current snapshot, empty if none, and
// returns the rows of the next one.
type BuildSnapshot func(current []ranking.Ranking) ([]ranking.Ranking, error)

type RankingRepository interface {
	// Promote runs build and stores its rows as the job's next generation.
	// Concurrent calls for the same job are serialised.
	Promote(ctx context.Context, jobID uuid.UUID, build BuildSnapshot) ([]ranking.Ranking, error)

	FindCurrentByJob(ctx context.Context, jobID uuid.UUID) ([]ranking.Ranking, error)
	FindByID(ctx context.Context, id uuid.UUID) (ranking.Ranking, error)
	FindCurrentForCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (ranking.Ranking, error)
	// FindHistory returns every generation for the pair, newest first.
	FindHistory(ctx context.Context, jobID, candidateID uuid.UUID) ([]ranking.Ranking, error)

	// UpdateWorkflow persists HR workflow fields only.
	UpdateWorkflow(ctx context.Context, r ranking.Ranking) error
	// Delete removes a historical row. Rows of the current snapshot yield
	// ErrCurrentRanking.
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
}

type PostgresRankingRepository struct {
	db database.DB
}

func NewPostgresRankingRepository(db database.DB) *PostgresRankingRepository {
	return &PostgresRankingRepository{db: db}
}

const rankingSelect = `SELECT
	cr.id, cr.job_id, cr.generation, cr.candidate_id, cr.match_result_id,
	cr.candidate_name, cr.candidate_email,
	cr.weighted_skills, cr.weighted_experience, cr.weighted_education,
	cr.weighted_personality, cr.weighted_cultural_fit, cr.ranking_score,
	cr.rank_position, cr.previous_rank_position, cr.rank_change, cr.total_candidates, cr.percentile,
	rr.skills_weight, rr.experience_weight, rr.education_weight, rr.personality_weight, rr.cultural_fit_weight,
	rr.criteria_version,
	cr.generation = (SELECT MAX(x.generation) FROM ranking_runs x WHERE x.job_id = cr.job_id),
	cr.ranked_at,
	cr.notes, cr.shortlisted, cr.shortlisted_at, cr.shortlist_notes,
	cr.interview_scheduled, cr.interview_at, cr.interview_feedback,
	cr.hiring_status, cr.hiring_decision_at
FROM candidate_rankings cr
JOIN ranking_runs rr ON rr.job_id = cr.job_id AND rr.generation = cr.generation`

const currentGeneration = `(SELECT MAX(generation) FROM ranking_runs WHERE job_id = $1)`

func scanRanking(row database.Row) (ranking.Ranking, error) {
	var (
		r      ranking.Ranking
		status string
	)
	err := row.Scan(
		&r.ID, &r.JobID, &r.Generation, &r.CandidateID, &r.MatchResultID,
		&r.CandidateName, &r.CandidateEmail,
		&r.WeightedSkills, &r.WeightedExperience, &r.WeightedEducation,
		&r.WeightedPersonality, &r.WeightedCulturalFit, &r.Score,
		&r.RankPosition, &r.PreviousRankPosition, &r.RankChange, &r.TotalCandidates, &r.Percentile,
		&r.Weights.Skills, &r.Weights.Experience, &r.Weights.Education, &r.Weights.Personality, &r.Weights.CulturalFit,
		&r.CriteriaVersion,
		&r.IsCurrent,
		&r.RankedAt,
		&r.Notes, &r.Shortlisted, &r.ShortlistedAt, &r.ShortlistNotes,
		&r.InterviewScheduled, &r.InterviewAt, &r.InterviewFeedback,
		&status, &r.HiringDecisionAt,
	)
	r.HiringStatus = ranking.HiringStatus(status)
	return r, err
}

func listRankings(ctx context.Context, q database.Querier, query string, args ...any) ([]ranking.Ranking, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ranking.Ranking, 0)
	for rows.Next() {
		r, err := scanRanking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func findCurrent(ctx context.Context, q database.Querier, jobID uuid.UUID) ([]ranking.Ranking, error) {
	return listRankings(ctx, q,
		rankingSelect+` WHERE cr.job_id = $1 AND cr.generation = `+currentGeneration+`
		 ORDER BY cr.rank_position`,
		jobID,
	)
}

func (r *PostgresRankingRepository) Promote(ctx context.Context, jobID uuid.UUID, build BuildSnapshot) ([]ranking.Ranking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, jobID); err != nil {
		return nil, err
	}

	current, err := findCurrent(ctx, tx, jobID)
	if err != nil {
		return nil, err
	}

	next, err := build(current)
	if err != nil {
		return nil, err
	}
	if len(next) == 0 {
		return nil, ErrEmptyRankingSnapshot
	}

	var gen int64
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(generation), 0) + 1 FROM ranking_runs WHERE job_id = $1`, jobID,
	).Scan(&gen); err != nil {
		return nil, err
	}

	w := next[0].Weights
	if _, err := tx.Exec(ctx,
		`INSERT INTO ranking_runs (
			job_id, generation, skills_weight, experience_weight, education_weight,
			personality_weight, cultural_fit_weight, criteria_version, total_candidates, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		jobID, gen, w.Skills, w.Experience, w.Education, w.Personality, w.CulturalFit,
		next[0].CriteriaVersion, len(next), next[0].RankedAt,
	); err != nil {
		return nil, err
	}

	for i := range next {
		row := &next[i]
		row.JobID = jobID
		row.Generation = gen
		row.IsCurrent = true
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.HiringStatus == "" {
			row.HiringStatus = ranking.StatusNotReviewed
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO candidate_rankings (
				id, job_id, generation, candidate_id, match_result_id,
				candidate_name, candidate_email,
				weighted_skills, weighted_experience, weighted_education,
				weighted_personality, weighted_cultural_fit, ranking_score,
				rank_position, previous_rank_position, rank_change, total_candidates, percentile,
				ranked_at, hiring_status
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
			row.ID, row.JobID, row.Generation, row.CandidateID, row.MatchResultID,
			row.CandidateName, row.CandidateEmail,
			row.WeightedSkills, row.WeightedExperience, row.WeightedEducation,
			row.WeightedPersonality, row.WeightedCulturalFit, row.Score,
			row.RankPosition, row.PreviousRankPosition, row.RankChange, row.TotalCandidates, row.Percentile,
			row.RankedAt, string(row.HiringStatus),
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *PostgresRankingRepository) FindCurrentByJob(ctx context.Context, jobID uuid.UUID) ([]ranking.Ranking, error) {
	return findCurrent(ctx, r.db, jobID)
}

func (r *PostgresRankingRepository) FindByID(ctx context.Context, id uuid.UUID) (ranking.Ranking, error) {
	row, err := scanRanking(r.db.QueryRow(ctx, rankingSelect+` WHERE cr.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return ranking.Ranking{}, ErrRankingNotFound
		}
		return ranking.Ranking{}, err
	}
	return row, nil
}

func (r *PostgresRankingRepository) FindCurrentForCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (ranking.Ranking, error) {
	row, err := scanRanking(r.db.QueryRow(ctx,
		rankingSelect+` WHERE cr.job_id = $1 AND cr.candidate_id = $2 AND cr.generation = `+currentGeneration,
		jobID, candidateID,
	))
	if err != nil {
		if isNoRows(err) {
			return ranking.Ranking{}, ErrRankingNotFound
		}
		return ranking.Ranking{}, err
	}
	return row, nil
}

func (r *PostgresRankingRepository) FindHistory(ctx context.Context, jobID, candidateID uuid.UUID) ([]ranking.Ranking, error) {
	return listRankings(ctx, r.db,
		rankingSelect+` WHERE cr.job_id = $1 AND cr.candidate_id = $2 ORDER BY cr.generation DESC`,
		jobID, candidateID,
	)
}

func (r *PostgresRankingRepository) UpdateWorkflow(ctx context.Context, row ranking.Ranking) error {
	n, err := r.db.Exec(ctx,
		`UPDATE candidate_rankings SET
			notes = $2, shortlisted = $3, shortlisted_at = $4, shortlist_notes = $5,
			interview_scheduled = $6, interview_at = $7, interview_feedback = $8,
			hiring_status = $9, hiring_decision_at = $10, updated_at = $11
		 WHERE id = $1`,
		row.ID,
		row.Notes, row.Shortlisted, row.ShortlistedAt, row.ShortlistNotes,
		row.InterviewScheduled, row.InterviewAt, row.InterviewFeedback,
		string(row.HiringStatus), row.HiringDecisionAt, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRankingNotFound
	}
	return nil
}

func (r *PostgresRankingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`DELETE FROM candidate_rankings cr
		 WHERE cr.id = $1
		   AND cr.generation < (SELECT MAX(x.generation) FROM ranking_runs x WHERE x.job_id = cr.job_id)`,
		id,
	)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return ErrCurrentRanking
}

func (r *PostgresRankingRepository) DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	n, err := tx.Exec(ctx, `DELETE FROM candidate_rankings WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM ranking_runs WHERE job_id = $1`, jobID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}
