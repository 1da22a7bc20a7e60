// Package dataset reads job and candidate fixtures from YAML for offline
// ranking runs.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"hire-rank/internal/domain/candidate"
	"hire-rank/internal/domain/job"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// namespace seeds name-derived ids so reruns over the same file agree.
var namespace = uuid.MustParse("6f1f6c1e-3b7a-4f7e-9a53-2f0f5d1c8e42")

type Job struct {
	ID                 string `yaml:"id"`
	Title              string `yaml:"title"`
	RequiredSkills     string `yaml:"required_skills"`
	RequiredExperience string `yaml:"required_experience"`
	RequiredEducation  string `yaml:"required_education"`
}

type Candidate struct {
	ID              string `yaml:"id"`
	FullName        string `yaml:"full_name"`
	Email           string `yaml:"email"`
	Skills          string `yaml:"skills"`
	ExperienceYears *int   `yaml:"experience_years"`
	Education       string `yaml:"education"`
	ResumeID        string `yaml:"resume_id"`
}

type File struct {
	Jobs       []Job       `yaml:"jobs"`
	Candidates []Candidate `yaml:"candidates"`
}

// Dataset is a decoded file with ids resolved.
type Dataset struct {
	Jobs       []job.Job
	Candidates []candidate.Candidate
}

var ErrEmptyDataset = errors.New("dataset has no jobs")

func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (Dataset, error) {
	var raw File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, ErrEmptyDataset
		}
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return raw.resolve()
}

func (f File) resolve() (Dataset, error) {
	if len(f.Jobs) == 0 {
		return Dataset{}, ErrEmptyDataset
	}

	out := Dataset{
		Jobs:       make([]job.Job, 0, len(f.Jobs)),
		Candidates: make([]candidate.Candidate, 0, len(f.Candidates)),
	}

	seen := map[uuid.UUID]string{}
	claim := func(id uuid.UUID, what string) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("duplicate id %s (%s and %s)", id, prev, what)
		}
		seen[id] = what
		return nil
	}

	for i, j := range f.Jobs {
		if strings.TrimSpace(j.Title) == "" {
			return Dataset{}, fmt.Errorf("jobs[%d]: title is required", i)
		}
		id, err := resolveID(j.ID, "job:"+j.Title)
		if err != nil {
			return Dataset{}, fmt.Errorf("jobs[%d]: %w", i, err)
		}
		if err := claim(id, "job "+j.Title); err != nil {
			return Dataset{}, err
		}
		out.Jobs = append(out.Jobs, job.Job{
			ID:                 id,
			Title:              j.Title,
			RequiredSkills:     j.RequiredSkills,
			RequiredExperience: j.RequiredExperience,
			RequiredEducation:  j.RequiredEducation,
		})
	}

	for i, c := range f.Candidates {
		key := c.Email
		if key == "" {
			key = c.FullName
		}
		if strings.TrimSpace(key) == "" {
			return Dataset{}, fmt.Errorf("candidates[%d]: full_name or email is required", i)
		}
		id, err := resolveID(c.ID, "candidate:"+key)
		if err != nil {
			return Dataset{}, fmt.Errorf("candidates[%d]: %w", i, err)
		}
		if err := claim(id, "candidate "+key); err != nil {
			return Dataset{}, err
		}
		if c.ExperienceYears != nil && *c.ExperienceYears < 0 {
			return Dataset{}, fmt.Errorf("candidates[%d]: experience_years must not be negative, got %d", i, *c.ExperienceYears)
		}

		cand := candidate.Candidate{
			ID:              id,
			FullName:        c.FullName,
			Email:           c.Email,
			Skills:          c.Skills,
			ExperienceYears: c.ExperienceYears,
			Education:       c.Education,
		}
		if c.ResumeID != "" {
			rid, err := uuid.Parse(c.ResumeID)
			if err != nil {
				return Dataset{}, fmt.Errorf("candidates[%d]: resume_id: %w", i, err)
			}
			cand.CurrentResumeID = &rid
		}
		out.Candidates = append(out.Candidates, cand)
	}

	return out, nil
}

func resolveID(raw, name string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.NewSHA1(namespace, []byte(name)), nil
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}
