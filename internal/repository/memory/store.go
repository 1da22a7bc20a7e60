// Package memory holds process-local implementations of the repository
// interfaces. They back the CLI and the usecase tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"hire-rank/internal/domain/candidate"
	"hire-rank/internal/domain/job"
	"hire-rank/internal/domain/match"
	"hire-rank/internal/domain/ranking"
	"hire-rank/internal/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.RWMutex
	jobs       map[uuid.UUID]job.Job
	candidates map[uuid.UUID]candidate.Candidate
	matches    map[uuid.UUID]match.Result
	rankings   map[uuid.UUID]ranking.Ranking
	// generations holds the highest allocated generation per job.
	generations map[uuid.UUID]int64

	locksMu  sync.Mutex
	jobLocks map[uuid.UUID]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		jobs:        map[uuid.UUID]job.Job{},
		candidates:  map[uuid.UUID]candidate.Candidate{},
		matches:     map[uuid.UUID]match.Result{},
		rankings:    map[uuid.UUID]ranking.Ranking{},
		generations: map[uuid.UUID]int64{},
		jobLocks:    map[uuid.UUID]*sync.Mutex{},
	}
}

func (s *Store) PutJob(j job.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = j
}

func (s *Store) PutCandidate(c candidate.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[c.ID] = c
}

func (s *Store) Jobs() *JobRepository             { return &JobRepository{s: s} }
func (s *Store) Candidates() *CandidateRepository { return &CandidateRepository{s: s} }
func (s *Store) Matches() *MatchResultRepository  { return &MatchResultRepository{s: s} }
func (s *Store) Rankings() *RankingRepository     { return &RankingRepository{s: s} }

func (s *Store) jobLock(jobID uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.jobLocks[jobID]
	if !ok {
		l = &sync.Mutex{}
		s.jobLocks[jobID] = l
	}
	return l
}

type JobRepository struct{ s *Store }

var _ repository.JobRepository = (*JobRepository)(nil)

func (r *JobRepository) FindByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r *JobRepository) List(_ context.Context) ([]job.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]job.Job, 0, len(r.s.jobs))
	for _, j := range r.s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].CreatedAt.After(out[k].CreatedAt)
		}
		return out[i].ID.String() < out[k].ID.String()
	})
	return out, nil
}

type CandidateRepository struct{ s *Store }

var _ repository.CandidateRepository = (*CandidateRepository)(nil)

func (r *CandidateRepository) FindByID(_ context.Context, id uuid.UUID) (candidate.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return candidate.Candidate{}, repository.ErrCandidateNotFound
	}
	return c, nil
}

func (r *CandidateRepository) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]candidate.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[uuid.UUID]candidate.Candidate, len(ids))
	for _, id := range ids {
		if c, ok := r.s.candidates[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (r *CandidateRepository) List(_ context.Context) ([]candidate.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]candidate.Candidate, 0, len(r.s.candidates))
	for _, c := range r.s.candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].CreatedAt.Before(out[k].CreatedAt)
		}
		return out[i].ID.String() < out[k].ID.String()
	})
	return out, nil
}

type MatchResultRepository struct{ s *Store }

var _ repository.MatchResultRepository = (*MatchResultRepository)(nil)

func cloneMatch(m match.Result) match.Result {
	m.MatchedSkills = append([]string(nil), m.MatchedSkills...)
	m.MissingSkills = append([]string(nil), m.MissingSkills...)
	m.PartialSkills = append([]string(nil), m.PartialSkills...)
	return m
}

func (r *MatchResultRepository) CreateLatest(_ context.Context, m match.Result) (match.Result, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	for id, existing := range r.s.matches {
		if existing.IsLatest && existing.JobID == m.JobID && existing.CandidateID == m.CandidateID {
			existing.IsLatest = false
			r.s.matches[id] = existing
		}
	}
	m.IsLatest = true
	r.s.matches[m.ID] = cloneMatch(m)
	return m, nil
}

func (r *MatchResultRepository) Update(_ context.Context, m match.Result) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.matches[m.ID]
	if !ok {
		return repository.ErrMatchResultNotFound
	}
	if !existing.IsLatest {
		return repository.ErrStaleMatchResult
	}

	existing.OverallScore = m.OverallScore
	existing.SkillsScore = m.SkillsScore
	existing.ExperienceScore = m.ExperienceScore
	existing.EducationScore = m.EducationScore
	existing.PersonalityScore = m.PersonalityScore
	existing.CulturalFitScore = m.CulturalFitScore
	existing.MatchedSkills = m.MatchedSkills
	existing.MissingSkills = m.MissingSkills
	existing.PartialSkills = m.PartialSkills
	existing.RecalculationCount = m.RecalculationCount
	existing.LastRecalculatedAt = m.LastRecalculatedAt
	r.s.matches[m.ID] = cloneMatch(existing)
	return nil
}

func (r *MatchResultRepository) FindByID(_ context.Context, id uuid.UUID) (match.Result, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.matches[id]
	if !ok {
		return match.Result{}, repository.ErrMatchResultNotFound
	}
	return cloneMatch(m), nil
}

func (r *MatchResultRepository) FindLatest(_ context.Context, jobID, candidateID uuid.UUID) (match.Result, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.matches {
		if m.IsLatest && m.JobID == jobID && m.CandidateID == candidateID {
			return cloneMatch(m), nil
		}
	}
	return match.Result{}, repository.ErrMatchResultNotFound
}

func (r *MatchResultRepository) FindLatestByJob(_ context.Context, jobID uuid.UUID) ([]match.Result, error) {
	out := r.filter(func(m match.Result) bool {
		return m.JobID == jobID && m.IsLatest && m.IsActive
	})
	sort.Slice(out, func(i, k int) bool {
		a, b := out[i].OverallScore, out[k].OverallScore
		switch {
		case a == nil && b == nil:
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		}
		return out[i].CandidateID.String() < out[k].CandidateID.String()
	})
	return out, nil
}

func (r *MatchResultRepository) FindByCandidate(_ context.Context, candidateID uuid.UUID) ([]match.Result, error) {
	out := r.filter(func(m match.Result) bool {
		return m.CandidateID == candidateID && m.IsLatest && m.IsActive
	})
	sort.Slice(out, func(i, k int) bool { return out[i].MatchDate.After(out[k].MatchDate) })
	return out, nil
}

func (r *MatchResultRepository) filter(keep func(match.Result) bool) []match.Result {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]match.Result, 0)
	for _, m := range r.s.matches {
		if keep(m) {
			out = append(out, cloneMatch(m))
		}
	}
	return out
}

func (r *MatchResultRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.matches[id]; !ok {
		return repository.ErrMatchResultNotFound
	}
	delete(r.s.matches, id)
	return nil
}

func (r *MatchResultRepository) Deactivate(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return repository.ErrMatchResultNotFound
	}
	m.IsActive = false
	r.s.matches[id] = m
	return nil
}

func (r *MatchResultRepository) DeleteByJob(_ context.Context, jobID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, m := range r.s.matches {
		if m.JobID == jobID {
			delete(r.s.matches, id)
			n++
		}
	}
	return n, nil
}

type RankingRepository struct{ s *Store }

var _ repository.RankingRepository = (*RankingRepository)(nil)

func (r *RankingRepository) Promote(_ context.Context, jobID uuid.UUID, build repository.BuildSnapshot) ([]ranking.Ranking, error) {
	l := r.s.jobLock(jobID)
	l.Lock()
	defer l.Unlock()

	next, err := build(r.current(jobID))
	if err != nil {
		return nil, err
	}
	if len(next) == 0 {
		return nil, repository.ErrEmptyRankingSnapshot
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	gen := r.s.generations[jobID] + 1
	r.s.generations[jobID] = gen
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
		r.s.rankings[row.ID] = *row
	}
	return next, nil
}

// withCurrent sets IsCurrent from the job's highest generation. Callers hold
// at least the read lock.
func (r *RankingRepository) withCurrent(row ranking.Ranking) ranking.Ranking {
	row.IsCurrent = row.Generation == r.s.generations[row.JobID]
	return row
}

func (r *RankingRepository) current(jobID uuid.UUID) []ranking.Ranking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	gen := r.s.generations[jobID]
	out := make([]ranking.Ranking, 0)
	for _, row := range r.s.rankings {
		if row.JobID == jobID && row.Generation == gen {
			out = append(out, r.withCurrent(row))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].RankPosition < out[k].RankPosition })
	return out
}

func (r *RankingRepository) FindCurrentByJob(_ context.Context, jobID uuid.UUID) ([]ranking.Ranking, error) {
	return r.current(jobID), nil
}

func (r *RankingRepository) FindByID(_ context.Context, id uuid.UUID) (ranking.Ranking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.rankings[id]
	if !ok {
		return ranking.Ranking{}, repository.ErrRankingNotFound
	}
	return r.withCurrent(row), nil
}

func (r *RankingRepository) FindCurrentForCandidate(_ context.Context, jobID, candidateID uuid.UUID) (ranking.Ranking, error) {
	for _, row := range r.current(jobID) {
		if row.CandidateID == candidateID {
			return row, nil
		}
	}
	return ranking.Ranking{}, repository.ErrRankingNotFound
}

func (r *RankingRepository) FindHistory(_ context.Context, jobID, candidateID uuid.UUID) ([]ranking.Ranking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]ranking.Ranking, 0)
	for _, row := range r.s.rankings {
		if row.JobID == jobID && row.CandidateID == candidateID {
			out = append(out, r.withCurrent(row))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Generation > out[k].Generation })
	return out, nil
}

func (r *RankingRepository) UpdateWorkflow(_ context.Context, upd ranking.Ranking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.rankings[upd.ID]
	if !ok {
		return repository.ErrRankingNotFound
	}
	row.Notes = upd.Notes
	row.Shortlisted = upd.Shortlisted
	row.ShortlistedAt = upd.ShortlistedAt
	row.ShortlistNotes = upd.ShortlistNotes
	row.InterviewScheduled = upd.InterviewScheduled
	row.InterviewAt = upd.InterviewAt
	row.InterviewFeedback = upd.InterviewFeedback
	row.HiringStatus = upd.HiringStatus
	row.HiringDecisionAt = upd.HiringDecisionAt
	r.s.rankings[upd.ID] = row
	return nil
}

func (r *RankingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.rankings[id]
	if !ok {
		return repository.ErrRankingNotFound
	}
	if row.Generation == r.s.generations[row.JobID] {
		return repository.ErrCurrentRanking
	}
	delete(r.s.rankings, id)
	return nil
}

func (r *RankingRepository) DeleteByJob(_ context.Context, jobID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, row := range r.s.rankings {
		if row.JobID == jobID {
			delete(r.s.rankings, id)
			n++
		}
	}
	delete(r.s.generations, jobID)
	return n, nil
}
