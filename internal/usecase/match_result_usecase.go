package usecase

import (
	"context"
	"time"

	"hire-rank/internal/domain/candidate"
	"hire-rank/internal/domain/job"
	"hire-rank/internal/domain/match"
	"hire-rank/internal/domain/matching"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchResultUsecase interface {
	CreateOrUpdateMatch(ctx context.Context, jobID, candidateID uuid.UUID) (match.Result, error)
	RecalculateScore(ctx context.Context, matchID uuid.UUID) (match.Result, error)

	GetMatchResult(ctx context.Context, id uuid.UUID) (match.Result, error)
	GetLatestMatch(ctx context.Context, jobID, candidateID uuid.UUID) (match.Result, error)
	GetLatestMatchesForJob(ctx context.Context, jobID uuid.UUID) ([]match.Result, error)
	GetMatchesForCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Result, error)
	GetTopMatches(ctx context.Context, jobID uuid.UUID, limit int, minScore float64) ([]match.Result, error)
	MatchStatistics(ctx context.Context, jobID uuid.UUID) (match.Statistics, error)

	DeleteMatchResult(ctx context.Context, id uuid.UUID) error
	DeactivateMatchResult(ctx context.Context, id uuid.UUID) error
	DeleteAllForJob(ctx context.Context, jobID uuid.UUID) (int64, error)

	ProcessAllCandidatesForJob(ctx context.Context, jobID uuid.UUID) (BatchReport, error)
	BatchRecalculateForJob(ctx context.Context, jobID uuid.UUID) (BatchReport, error)
}

type MatchResults struct {
	repos   Repositories
	signals matching.SignalProvider
	workers int
	logger  *zap.Logger
	now     func() time.Time
}

func NewMatchResultUsecase(repos Repositories, signals matching.SignalProvider, workers int, logger *zap.Logger) *MatchResults {
	if signals == nil {
		signals = matching.NoSignals{}
	}
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchResults{
		repos:   repos,
		signals: signals,
		workers: workers,
		logger:  logger.Named("match"),
		now:     utcNow,
	}
}

// evaluate fills the score and skill fields of m. It never fails: a signal
// provider error leaves the supplementary dimensions unscored.
func (u *MatchResults) evaluate(ctx context.Context, j job.Job, c candidate.Candidate, m *match.Result) {
	scores := matching.Score(j, c)
	m.SkillsScore = scores.Skills
	m.ExperienceScore = scores.Experience
	m.EducationScore = scores.Education
	m.OverallScore = matching.OverallScore(scores)

	breakdown := matching.ClassifySkills(matching.ParseSkills(j.RequiredSkills), matching.ParseSkills(c.Skills))
	m.MatchedSkills = breakdown.Matched
	m.MissingSkills = breakdown.Missing
	m.PartialSkills = breakdown.Partial

	sig, err := u.signals.Signals(ctx, j, c)
	if err != nil {
		u.logger.Warn("supplementary signals unavailable",
			zap.String("job_id", j.ID.String()),
			zap.String("candidate_id", c.ID.String()),
			zap.Error(err),
		)
		sig = matching.Signals{}
	}
	m.PersonalityScore = sig.Personality
	m.CulturalFitScore = sig.CulturalFit
}

func (u *MatchResults) load(ctx context.Context, jobID, candidateID uuid.UUID) (job.Job, candidate.Candidate, error) {
	j, err := u.repos.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return job.Job{}, candidate.Candidate{}, err
	}
	c, err := u.repos.Candidates.FindByID(ctx, candidateID)
	if err != nil {
		return job.Job{}, candidate.Candidate{}, err
	}
	if !c.HasProfileData() {
		return job.Job{}, candidate.Candidate{}, ErrNoResume
	}
	return j, c, nil
}

// CreateOrUpdateMatch always produces a new latest row; the previous latest is
// demoted with its scores untouched.
func (u *MatchResults) CreateOrUpdateMatch(ctx context.Context, jobID, candidateID uuid.UUID) (match.Result, error) {
	if jobID == uuid.Nil || candidateID == uuid.Nil {
		return match.Result{}, ErrInvalidInput
	}
	j, c, err := u.load(ctx, jobID, candidateID)
	if err != nil {
		return match.Result{}, err
	}

	now := u.now()
	m := match.Result{
		ID:                 uuid.New(),
		JobID:              jobID,
		CandidateID:        candidateID,
		ResumeID:           c.CurrentResumeID,
		IsActive:           true,
		RecalculationCount: 1,
		MatchDate:          now,
		LastRecalculatedAt: now,
	}
	u.evaluate(ctx, j, c, &m)

	saved, err := u.repos.Matches.CreateLatest(ctx, m)
	if err != nil {
		return match.Result{}, err
	}
	u.logger.Debug("match created",
		zap.String("match_id", saved.ID.String()),
		zap.String("job_id", jobID.String()),
		zap.String("candidate_id", candidateID.String()),
		zap.String("level", saved.MatchLevel()),
	)
	return saved, nil
}

// RecalculateScore rescores the latest result in place.
func (u *MatchResults) RecalculateScore(ctx context.Context, matchID uuid.UUID) (match.Result, error) {
	m, err := u.repos.Matches.FindByID(ctx, matchID)
	if err != nil {
		return match.Result{}, err
	}
	if !m.IsLatest {
		return match.Result{}, ErrStaleMatchResult
	}
	j, c, err := u.load(ctx, m.JobID, m.CandidateID)
	if err != nil {
		return match.Result{}, err
	}

	u.evaluate(ctx, j, c, &m)
	m.RecalculationCount++
	m.LastRecalculatedAt = u.now()

	if err := u.repos.Matches.Update(ctx, m); err != nil {
		return match.Result{}, err
	}
	return m, nil
}

func (u *MatchResults) GetMatchResult(ctx context.Context, id uuid.UUID) (match.Result, error) {
	return u.repos.Matches.FindByID(ctx, id)
}

func (u *MatchResults) GetLatestMatch(ctx context.Context, jobID, candidateID uuid.UUID) (match.Result, error) {
	return u.repos.Matches.FindLatest(ctx, jobID, candidateID)
}

func (u *MatchResults) GetLatestMatchesForJob(ctx context.Context, jobID uuid.UUID) ([]match.Result, error) {
	if _, err := u.repos.Jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}
	return u.repos.Matches.FindLatestByJob(ctx, jobID)
}

func (u *MatchResults) GetMatchesForCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Result, error) {
	if _, err := u.repos.Candidates.FindByID(ctx, candidateID); err != nil {
		return nil, err
	}
	return u.repos.Matches.FindByCandidate(ctx, candidateID)
}

// GetTopMatches returns up to limit scored results at or above minScore.
func (u *MatchResults) GetTopMatches(ctx context.Context, jobID uuid.UUID, limit int, minScore float64) ([]match.Result, error) {
	if limit <= 0 {
		return nil, ErrInvalidInput
	}
	all, err := u.GetLatestMatchesForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	out := make([]match.Result, 0, limit)
	for _, m := range all {
		if m.OverallScore == nil || *m.OverallScore < minScore {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (u *MatchResults) MatchStatistics(ctx context.Context, jobID uuid.UUID) (match.Statistics, error) {
	all, err := u.GetLatestMatchesForJob(ctx, jobID)
	if err != nil {
		return match.Statistics{}, err
	}
	return match.Summarize(all), nil
}

func (u *MatchResults) DeleteMatchResult(ctx context.Context, id uuid.UUID) error {
	return u.repos.Matches.Delete(ctx, id)
}

func (u *MatchResults) DeactivateMatchResult(ctx context.Context, id uuid.UUID) error {
	return u.repos.Matches.Deactivate(ctx, id)
}

func (u *MatchResults) DeleteAllForJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	n, err := u.repos.Matches.DeleteByJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	u.logger.Info("match results deleted", zap.String("job_id", jobID.String()), zap.Int64("count", n))
	return n, nil
}

// ProcessAllCandidatesForJob scores every candidate with profile data.
// Candidates without any are counted as skipped.
func (u *MatchResults) ProcessAllCandidatesForJob(ctx context.Context, jobID uuid.UUID) (BatchReport, error) {
	if _, err := u.repos.Jobs.FindByID(ctx, jobID); err != nil {
		return BatchReport{}, err
	}
	cands, err := u.repos.Candidates.List(ctx)
	if err != nil {
		return BatchReport{}, err
	}

	keys := make([]string, 0, len(cands))
	skipped := 0
	for _, c := range cands {
		if !c.HasProfileData() {
			skipped++
			continue
		}
		keys = append(keys, c.ID.String())
	}

	report, err := runBatch(ctx, u.workers, u.logger, keys, func(ctx context.Context, key string) error {
		_, err := u.CreateOrUpdateMatch(ctx, jobID, uuid.MustParse(key))
		return err
	})
	report.Skipped = skipped

	u.logger.Info("candidates processed",
		zap.String("job_id", jobID.String()),
		zap.Int("processed", report.Processed),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)
	return report, err
}

// BatchRecalculateForJob rescores every latest result of the job in place.
func (u *MatchResults) BatchRecalculateForJob(ctx context.Context, jobID uuid.UUID) (BatchReport, error) {
	all, err := u.GetLatestMatchesForJob(ctx, jobID)
	if err != nil {
		return BatchReport{}, err
	}

	keys := make([]string, 0, len(all))
	for _, m := range all {
		keys = append(keys, m.ID.String())
	}

	report, err := runBatch(ctx, u.workers, u.logger, keys, func(ctx context.Context, key string) error {
		_, err := u.RecalculateScore(ctx, uuid.MustParse(key))
		return err
	})

	u.logger.Info("matches recalculated",
		zap.String("job_id", jobID.String()),
		zap.Int("processed", report.Processed),
		zap.Int("failed", report.Failed),
	)
	return report, err
}
