package seeder

import "hire-rank/internal/dataset"

// ForDataset upserts jobs before candidates so later match rows can
// reference both.
func ForDataset(ds dataset.Dataset) []Seeder {
	return []Seeder{
		JobsSeeder{Jobs: ds.Jobs},
		CandidatesSeeder{Candidates: ds.Candidates},
	}
}
