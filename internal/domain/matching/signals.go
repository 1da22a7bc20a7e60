package matching

import (
	"context"
	"hash/fnv"

	"hire-rank/internal/domain/candidate"
	"hire-rank/internal/domain/job"
)

// Signals are the supplementary dimensions scored outside this package.
type Signals struct {
	Personality *float64
	CulturalFit *float64
}

type SignalProvider interface {
	Signals(ctx context.Context, j job.Job, c candidate.Candidate) (Signals, error)
}

// HashSignals derives stable placeholder values from the job and candidate
// ids: personality in [70,95), cultural fit in [65,95).
type HashSignals struct{}

func (HashSignals) Signals(_ context.Context, j job.Job, c candidate.Candidate) (Signals, error) {
	h := fnv.New64a()
	_, _ = h.Write(j.ID[:])
	_, _ = h.Write(c.ID[:])
	sum := h.Sum64()

	p := 70 + unit(sum)*25
	cf := 65 + unit(sum>>21)*30
	return Signals{Personality: &p, CulturalFit: &cf}, nil
}

// unit maps the low 20 bits to [0,1).
func unit(v uint64) float64 {
	const mask = 1<<20 - 1
	return float64(v&mask) / float64(mask+1)
}

// NoSignals leaves both supplementary dimensions unscored.
type NoSignals struct{}

func (NoSignals) Signals(context.Context, job.Job, candidate.Candidate) (Signals, error) {
	return Signals{}, nil
}
