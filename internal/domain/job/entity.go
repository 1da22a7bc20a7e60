package job

import (
	"time"

	"github.com/google/uuid"
)

// Job is the read-only requirement side of a match. RequiredSkills keeps the
// comma-delimited source form; matching.ParseSkills normalises it.
type Job struct {
	ID                 uuid.UUID
	Title              string
	RequiredSkills     string
	RequiredExperience string
	RequiredEducation  string
	CreatedAt          time.Time
}
