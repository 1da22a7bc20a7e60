package ranking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidHiringStatus = errors.New("invalid hiring status")

type HiringStatus string

const (
	StatusNotReviewed   HiringStatus = "NOT_REVIEWED"
	StatusUnderReview   HiringStatus = "UNDER_REVIEW"
	StatusShortlisted   HiringStatus = "SHORTLISTED"
	StatusInterviewed   HiringStatus = "INTERVIEWED"
	StatusOfferExtended HiringStatus = "OFFER_EXTENDED"
	StatusOfferAccepted HiringStatus = "OFFER_ACCEPTED"
	StatusOfferDeclined HiringStatus = "OFFER_DECLINED"
	StatusRejected      HiringStatus = "REJECTED"
	StatusHired         HiringStatus = "HIRED"
)

var statusLabels = map[HiringStatus]string{
	StatusNotReviewed:   "Not Reviewed",
	StatusUnderReview:   "Under Review",
	StatusShortlisted:   "Shortlisted",
	StatusInterviewed:   "Interviewed",
	StatusOfferExtended: "Offer Extended",
	StatusOfferAccepted: "Offer Accepted",
	StatusOfferDeclined: "Offer Declined",
	StatusRejected:      "Rejected",
	StatusHired:         "Hired",
}

// Label is the display name, or "N/A" for an unset status.
func (s HiringStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "N/A"
}

func ParseHiringStatus(raw string) (HiringStatus, error) {
	s := HiringStatus(strings.ToUpper(strings.TrimSpace(raw)))
	s = HiringStatus(strings.ReplaceAll(string(s), " ", "_"))
	if _, ok := statusLabels[s]; !ok {
		return "", ErrInvalidHiringStatus
	}
	return s, nil
}

// Ranking is one candidate's row in a ranking snapshot. Snapshots are keyed
// by (JobID, Generation); the highest generation of a job is current.
type Ranking struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	Generation    int64
	CandidateID   uuid.UUID
	MatchResultID uuid.UUID

	CandidateName  string
	CandidateEmail string

	WeightedSkills      float64
	WeightedExperience  float64
	WeightedEducation   float64
	WeightedPersonality float64
	WeightedCulturalFit float64
	Score               float64

	RankPosition         int
	PreviousRankPosition *int
	RankChange           *int
	TotalCandidates      int
	Percentile           float64

	Weights         Weights
	CriteriaVersion string
	IsCurrent       bool
	RankedAt        time.Time

	Notes              string
	Shortlisted        bool
	ShortlistedAt      *time.Time
	ShortlistNotes     string
	InterviewScheduled bool
	InterviewAt        *time.Time
	InterviewFeedback  string
	HiringStatus       HiringStatus
	HiringDecisionAt   *time.Time
}

// SetShortlisted toggles the shortlist. Removing a candidate from the
// shortlist puts them back under review.
func (r *Ranking) SetShortlisted(shortlisted bool, notes string, now time.Time) {
	r.Shortlisted = shortlisted
	if shortlisted {
		r.ShortlistedAt = &now
		r.ShortlistNotes = notes
		r.HiringStatus = StatusShortlisted
		return
	}
	r.ShortlistedAt = nil
	r.ShortlistNotes = ""
	r.HiringStatus = StatusUnderReview
}

func (r *Ranking) SetHiringStatus(status HiringStatus, notes string, now time.Time) {
	r.HiringStatus = status
	r.HiringDecisionAt = &now

	switch status {
	case StatusShortlisted:
		r.Shortlisted = true
		r.ShortlistedAt = &now
		r.ShortlistNotes = notes
	case StatusRejected, StatusOfferDeclined:
		r.Shortlisted = false
	}
}

func (r *Ranking) ScheduleInterview(at time.Time, notes string) {
	r.InterviewScheduled = true
	r.InterviewAt = &at
	r.Notes = notes
	r.HiringStatus = StatusInterviewed
}
