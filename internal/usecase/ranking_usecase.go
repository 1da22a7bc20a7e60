package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hire-rank/internal/domain/job"
	"hire-rank/internal/domain/ranking"
	"hire-rank/internal/export"
	"hire-rank/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RankingUsecase interface {
	// GenerateRanking ranks with weights, or the configured defaults when nil.
	GenerateRanking(ctx context.Context, jobID uuid.UUID, weights *ranking.Weights) ([]ranking.Ranking, error)
	RecalculateRankingWithWeights(ctx context.Context, jobID uuid.UUID, weights ranking.Weights) ([]ranking.Ranking, error)

	GetCurrentRankings(ctx context.Context, jobID uuid.UUID) ([]ranking.Ranking, error)
	GetRanking(ctx context.Context, id uuid.UUID) (ranking.Ranking, error)
	GetCurrentRankingForCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (ranking.Ranking, error)
	GetRankingHistory(ctx context.Context, jobID, candidateID uuid.UUID) ([]ranking.Ranking, error)
	GetTopRanked(ctx context.Context, jobID uuid.UUID, n int) ([]ranking.Ranking, error)
	GetRankingsByMinimumScore(ctx context.Context, jobID uuid.UUID, minScore float64) ([]ranking.Ranking, error)
	GetShortlisted(ctx context.Context, jobID uuid.UUID) ([]ranking.Ranking, error)
	SearchRankings(ctx context.Context, jobID uuid.UUID, keyword string) ([]ranking.Ranking, error)
	RankingStatistics(ctx context.Context, jobID uuid.UUID) (ranking.Statistics, error)

	UpdateShortlistStatus(ctx context.Context, id uuid.UUID, shortlisted bool, notes string) (ranking.Ranking, error)
	UpdateHiringStatus(ctx context.Context, id uuid.UUID, status ranking.HiringStatus, notes string) (ranking.Ranking, error)
	ScheduleInterview(ctx context.Context, id uuid.UUID, at time.Time, notes string) (ranking.Ranking, error)
	AddInterviewFeedback(ctx context.Context, id uuid.UUID, feedback string) (ranking.Ranking, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (ranking.Ranking, error)

	DeleteRanking(ctx context.Context, id uuid.UUID) error
	DeleteAllRankingsForJob(ctx context.Context, jobID uuid.UUID) (int64, error)

	DefaultWeights() ranking.Weights
	ValidateWeights(w ranking.Weights) ranking.Validation

	ExportCSV(ctx context.Context, jobID uuid.UUID) (export.File, error)
	ExportXLSX(ctx context.Context, jobID uuid.UUID) (export.File, error)
}

type RankingOptions struct {
	DefaultWeights  ranking.Weights
	CriteriaVersion string
	CacheTTL        time.Duration
}

type Rankings struct {
	repos  Repositories
	cache  Cache
	opts   RankingOptions
	logger *zap.Logger
	now    func() time.Time
}

func NewRankingUsecase(repos Repositories, cache Cache, opts RankingOptions, logger *zap.Logger) *Rankings {
	if cache == nil {
		cache = nopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CriteriaVersion == "" {
		opts.CriteriaVersion = "v1.0"
	}
	return &Rankings{
		repos:  repos,
		cache:  cache,
		opts:   opts,
		logger: logger.Named("ranking"),
		now:    utcNow,
	}
}

func currentKey(jobID uuid.UUID) string {
	return "ranking:current:" + jobID.String()
}

func (u *Rankings) invalidate(ctx context.Context, jobID uuid.UUID) {
	if err := u.cache.Invalidate(ctx, currentKey(jobID)); err != nil {
		u.logger.Debug("cache invalidate failed", zap.String("job_id", jobID.String()), zap.Error(err))
	}
}

func (u *Rankings) GenerateRanking(ctx context.Context, jobID uuid.UUID, weights *ranking.Weights) ([]ranking.Ranking, error) {
	w := u.opts.DefaultWeights
	if weights != nil {
		w = *weights
	}
	return u.rank(ctx, jobID, w)
}

func (u *Rankings) RecalculateRankingWithWeights(ctx context.Context, jobID uuid.UUID, weights ranking.Weights) ([]ranking.Ranking, error) {
	return u.rank(ctx, jobID, weights)
}

// rank validates w before touching storage, then builds and promotes the next
// snapshot. Previous ranks are read from the snapshot being replaced inside
// the same serialised section.
func (u *Rankings) rank(ctx context.Context, jobID uuid.UUID, w ranking.Weights) ([]ranking.Ranking, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if _, err := u.repos.Jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	matches, err := u.repos.Matches.FindLatestByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNoMatchData
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.CandidateID)
	}
	cands, err := u.repos.Candidates.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]ranking.Entry, 0, len(matches))
	for _, m := range matches {
		c := cands[m.CandidateID]
		entries = append(entries, ranking.Entry{Match: m, CandidateName: c.FullName, CandidateEmail: c.Email})
	}

	rows, err := u.repos.Rankings.Promote(ctx, jobID, func(current []ranking.Ranking) ([]ranking.Ranking, error) {
		return ranking.Compute(entries, ranking.Params{
			JobID:           jobID,
			Weights:         w,
			CriteriaVersion: u.opts.CriteriaVersion,
			PreviousRanks:   ranking.RankIndex(current),
			Now:             u.now(),
		}), nil
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx, jobID)

	u.logger.Info("ranking generated",
		zap.String("job_id", jobID.String()),
		zap.Int64("generation", rows[0].Generation),
		zap.Int("candidates", len(rows)),
		zap.Float64("skills_weight", w.Skills),
		zap.Float64("experience_weight", w.Experience),
		zap.Float64("education_weight", w.Education),
	)
	return rows, nil
}

// GetCurrentRankings reads through the cache. The cache version is taken
// before the repository read so a snapshot superseded in between is not
// stored.
func (u *Rankings) GetCurrentRankings(ctx context.Context, jobID uuid.UUID) ([]ranking.Ranking, error) {
	key := currentKey(jobID)
	var cached []ranking.Ranking
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}
	version, verr := u.cache.Version(ctx, key)

	if _, err := u.repos.Jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}
	rows, err := u.repos.Rankings.FindCurrentByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || verr != nil {
		return rows, nil
	}
	stored, err := u.cache.SetJSONAt(ctx, key, version, rows, u.opts.CacheTTL)
	switch {
	case err != nil:
		u.logger.Debug("cache store failed", zap.String("job_id", jobID.String()), zap.Error(err))
	case !stored:
		u.logger.Debug("cache store skipped, snapshot changed during read",
			zap.String("job_id", jobID.String()),
			zap.Int64("generation", rows[0].Generation),
		)
	}
	return rows, nil
}

func (u *Rankings) GetRanking(ctx context.Context, id uuid.UUID) (ranking.Ranking, error) {
	return u.repos.Rankings.FindByID(ctx, id)
}

func (u *Rankings) GetCurrentRankingForCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (ranking.Ranking, error) {
	return u.repos.Rankings.FindCurrentForCandidate(ctx, jobID, candidateID)
}

func (u *Rankings) GetRankingHistory(ctx context.Context, jobID, candidateID uuid.UUID) ([]ranking.Ranking, error) {
	return u.repos.Rankings.FindHistory(ctx, jobID, candidateID)
}

func (u *Rankings) filter(ctx context.Context, jobID uuid.UUID, keep func(ranking.Ranking) bool) ([]ranking.Ranking, error) {
	rows, err := u.GetCurrentRankings(ctx, jobID)
	if err != nil {
		return nil, err
	}
	out := make([]ranking.Ranking, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (u *Rankings) GetTopRanked(ctx context.Context, jobID uuid.UUID, n int) ([]ranking.Ranking, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive", ErrInvalidInput)
	}
	return u.filter(ctx, jobID, func(r ranking.Ranking) bool { return r.RankPosition <= n })
}

func (u *Rankings) GetRankingsByMinimumScore(ctx context.Context, jobID uuid.UUID, minScore float64) ([]ranking.Ranking, error) {
	return u.filter(ctx, jobID, func(r ranking.Ranking) bool { return r.Score >= minScore })
}

func (u *Rankings) GetShortlisted(ctx context.Context, jobID uuid.UUID) ([]ranking.Ranking, error) {
	return u.filter(ctx, jobID, func(r ranking.Ranking) bool { return r.Shortlisted })
}

// SearchRankings matches keyword case-insensitively against candidate name
// and email. A blank keyword returns the whole current snapshot.
func (u *Rankings) SearchRankings(ctx context.Context, jobID uuid.UUID, keyword string) ([]ranking.Ranking, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return u.GetCurrentRankings(ctx, jobID)
	}
	return u.filter(ctx, jobID, func(r ranking.Ranking) bool {
		return strings.Contains(strings.ToLower(r.CandidateName), kw) ||
			strings.Contains(strings.ToLower(r.CandidateEmail), kw)
	})
}

func (u *Rankings) RankingStatistics(ctx context.Context, jobID uuid.UUID) (ranking.Statistics, error) {
	rows, err := u.GetCurrentRankings(ctx, jobID)
	if err != nil {
		return ranking.Statistics{}, err
	}
	return ranking.Summarize(rows), nil
}

// updateWorkflow applies mutate to the stored row and persists workflow
// fields only. Scores and ranks are never rewritten here.
func (u *Rankings) updateWorkflow(ctx context.Context, id uuid.UUID, mutate func(r *ranking.Ranking, now time.Time)) (ranking.Ranking, error) {
	r, err := u.repos.Rankings.FindByID(ctx, id)
	if err != nil {
		return ranking.Ranking{}, err
	}
	mutate(&r, u.now())
	if err := u.repos.Rankings.UpdateWorkflow(ctx, r); err != nil {
		return ranking.Ranking{}, err
	}
	u.invalidate(ctx, r.JobID)
	return r, nil
}

func (u *Rankings) UpdateShortlistStatus(ctx context.Context, id uuid.UUID, shortlisted bool, notes string) (ranking.Ranking, error) {
	return u.updateWorkflow(ctx, id, func(r *ranking.Ranking, now time.Time) {
		r.SetShortlisted(shortlisted, notes, now)
	})
}

func (u *Rankings) UpdateHiringStatus(ctx context.Context, id uuid.UUID, status ranking.HiringStatus, notes string) (ranking.Ranking, error) {
	if status.Label() == "N/A" {
		return ranking.Ranking{}, ErrInvalidHiringStatus
	}
	return u.updateWorkflow(ctx, id, func(r *ranking.Ranking, now time.Time) {
		r.SetHiringStatus(status, notes, now)
	})
}

func (u *Rankings) ScheduleInterview(ctx context.Context, id uuid.UUID, at time.Time, notes string) (ranking.Ranking, error) {
	if at.IsZero() {
		return ranking.Ranking{}, fmt.Errorf("%w: interview date is required", ErrInvalidInput)
	}
	return u.updateWorkflow(ctx, id, func(r *ranking.Ranking, _ time.Time) {
		r.ScheduleInterview(at.UTC(), notes)
	})
}

func (u *Rankings) AddInterviewFeedback(ctx context.Context, id uuid.UUID, feedback string) (ranking.Ranking, error) {
	return u.updateWorkflow(ctx, id, func(r *ranking.Ranking, _ time.Time) {
		r.InterviewFeedback = feedback
	})
}

func (u *Rankings) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (ranking.Ranking, error) {
	return u.updateWorkflow(ctx, id, func(r *ranking.Ranking, _ time.Time) {
		r.Notes = notes
	})
}

// DeleteRanking removes a historical row. Rows of the current snapshot are
// refused so the current ranks stay a contiguous 1..N.
func (u *Rankings) DeleteRanking(ctx context.Context, id uuid.UUID) error {
	r, err := u.repos.Rankings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repos.Rankings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCurrentRanking) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return err
	}
	u.invalidate(ctx, r.JobID)
	return nil
}

func (u *Rankings) DeleteAllRankingsForJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	n, err := u.repos.Rankings.DeleteByJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	u.invalidate(ctx, jobID)
	u.logger.Info("rankings deleted", zap.String("job_id", jobID.String()), zap.Int64("count", n))
	return n, nil
}

func (u *Rankings) DefaultWeights() ranking.Weights {
	return u.opts.DefaultWeights
}

func (u *Rankings) ValidateWeights(w ranking.Weights) ranking.Validation {
	return ranking.Validate(w)
}

func (u *Rankings) exportRows(ctx context.Context, jobID uuid.UUID) (job.Job, []ranking.Ranking, error) {
	j, err := u.repos.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return job.Job{}, nil, err
	}
	rows, err := u.GetCurrentRankings(ctx, jobID)
	if err != nil {
		return job.Job{}, nil, err
	}
	return j, rows, nil
}

func (u *Rankings) ExportCSV(ctx context.Context, jobID uuid.UUID) (export.File, error) {
	j, rows, err := u.exportRows(ctx, jobID)
	if err != nil {
		return export.File{}, err
	}
	return export.CSV(j, rows), nil
}

func (u *Rankings) ExportXLSX(ctx context.Context, jobID uuid.UUID) (export.File, error) {
	j, rows, err := u.exportRows(ctx, jobID)
	if err != nil {
		return export.File{}, err
	}
	return export.XLSX(j, rows)
}
