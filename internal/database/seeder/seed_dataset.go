package seeder

import (
	"context"
	"fmt"

	"hire-rank/internal/database"
	"hire-rank/internal/domain/candidate"
	"hire-rank/internal/domain/job"
)

type JobsSeeder struct {
	Jobs []job.Job
}

func (JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "required_skills", "required_experience", "required_education"); err != nil {
		return err
	}

	return inTx(ctx, db, func(tx database.Tx) error {
		for _, j := range s.Jobs {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO jobs (id, title, required_skills, required_experience, required_education)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	required_skills = EXCLUDED.required_skills,
	required_experience = EXCLUDED.required_experience,
	required_education = EXCLUDED.required_education`,
				j.ID,
				j.Title,
				j.RequiredSkills,
				j.RequiredExperience,
				j.RequiredEducation,
			)
			if err != nil {
				return fmt.Errorf("job %s: %w", j.ID, err)
			}
		}
		return nil
	})
}

type CandidatesSeeder struct {
	Candidates []candidate.Candidate
}

func (CandidatesSeeder) Name() string { return "candidates" }

func (s CandidatesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "candidates", "id", "full_name", "email", "skills", "experience_years", "education", "current_resume_id"); err != nil {
		return err
	}

	return inTx(ctx, db, func(tx database.Tx) error {
		for _, c := range s.Candidates {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO candidates (id, full_name, email, skills, experience_years, education, current_resume_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	full_name = EXCLUDED.full_name,
	email = EXCLUDED.email,
	skills = EXCLUDED.skills,
	experience_years = EXCLUDED.experience_years,
	education = EXCLUDED.education,
	current_resume_id = EXCLUDED.current_resume_id`,
				c.ID,
				c.FullName,
				c.Email,
				c.Skills,
				c.ExperienceYears,
				c.Education,
				c.CurrentResumeID,
			)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

func inTx(ctx context.Context, db database.DB, fn func(tx database.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
