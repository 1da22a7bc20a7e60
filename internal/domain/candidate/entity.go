package candidate

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID              uuid.UUID
	FullName        string
	Email           string
	Skills          string
	ExperienceYears *int
	Education       string
	CurrentResumeID *uuid.UUID
	CreatedAt       time.Time
}

// HasProfileData reports whether there is anything to score: a resume or at
// least one profile attribute.
func (c Candidate) HasProfileData() bool {
	if c.CurrentResumeID != nil {
		return true
	}
	if strings.TrimSpace(c.Skills) != "" || strings.TrimSpace(c.Education) != "" {
		return true
	}
	return c.ExperienceYears != nil
}
