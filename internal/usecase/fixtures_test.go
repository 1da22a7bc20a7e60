package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"hire-rank/internal/domain/candidate"
	"hire-rank/internal/domain/job"
	"hire-rank/internal/domain/matching"
	"hire-rank/internal/domain/ranking"
	"hire-rank/internal/repository/memory"

	"github.com/google/uuid"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	repos   Repositories
	matches *MatchResults
	ranks   *Rankings
	job     job.Job
}

func intPtr(v int) *int { return &v }

func newFixture() *fixture {
	store := memory.NewStore()
	repos := Repositories{
		Jobs:       store.Jobs(),
		Candidates: store.Candidates(),
		Matches:    store.Matches(),
		Rankings:   store.Rankings(),
	}

	j := job.Job{
		ID:                 uuid.New(),
		Title:              "Backend Engineer",
		RequiredSkills:     "Go, SQL, Kubernetes",
		RequiredExperience: "3-5",
		RequiredEducation:  "Bachelor",
		CreatedAt:          fixedNow,
	}
	store.PutJob(j)

	mu := NewMatchResultUsecase(repos, matching.NoSignals{}, 3, nil)
	mu.now = func() time.Time { return fixedNow }
	ru := NewRankingUsecase(repos, nil, RankingOptions{DefaultWeights: ranking.DefaultWeights()}, nil)
	ru.now = func() time.Time { return fixedNow }

	return &fixture{store: store, repos: repos, matches: mu, ranks: ru, job: j}
}

func (f *fixture) addCandidate(name, skills string, years *int, education string) candidate.Candidate {
	c := candidate.Candidate{
		ID:              uuid.New(),
		FullName:        name,
		Email:           name + "@example.com",
		Skills:          skills,
		ExperienceYears: years,
		Education:       education,
		CreatedAt:       fixedNow,
	}
	f.store.PutCandidate(c)
	return c
}

// seed adds three scorable candidates with distinct composite scores and
// one candidate without profile data.
func (f *fixture) seed() []candidate.Candidate {
	return []candidate.Candidate{
		f.addCandidate("ada", "go, sql, kubernetes", intPtr(4), "Master of Science"),
		f.addCandidate("alan", "go, sql", intPtr(1), "Bachelor of Arts"),
		f.addCandidate("grace", "python", intPtr(10), "Diploma"),
		f.addCandidate("empty", "", nil, ""),
	}
}

type failingSignals struct{}

func (failingSignals) Signals(context.Context, job.Job, candidate.Candidate) (matching.Signals, error) {
	return matching.Signals{}, errors.New("signal backend down")
}

type memCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	versions map[string]int64
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, versions: map[string]int64{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) Version(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key], nil
}

func (c *memCache) SetJSONAt(_ context.Context, key string, version int64, value any, _ time.Duration) (bool, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[key] != version {
		return false, nil
	}
	c.data[key] = b
	return true, nil
}

func (c *memCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.versions[k]++
	}
	return nil
}
