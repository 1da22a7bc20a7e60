package ranking

import "hire-rank/internal/domain/match"

type Statistics struct {
	TotalRanked    int     `json:"total_ranked"`
	AverageScore   float64 `json:"average_score"`
	MaxScore       float64 `json:"max_score"`
	MinScore       float64 `json:"min_score"`
	Shortlisted    int     `json:"shortlisted"`
	Interviewed    int     `json:"interviewed"`
	Hired          int     `json:"hired"`
	ExcellentCount int     `json:"excellent_matches"`
	GoodCount      int     `json:"good_matches"`
	AverageCount   int     `json:"average_matches"`
	PoorCount      int     `json:"poor_matches"`
}

func Summarize(rows []Ranking) Statistics {
	st := Statistics{TotalRanked: len(rows)}
	if len(rows) == 0 {
		return st
	}

	st.MaxScore = rows[0].Score
	st.MinScore = rows[0].Score
	var sum float64
	for _, r := range rows {
		sum += r.Score
		if r.Score > st.MaxScore {
			st.MaxScore = r.Score
		}
		if r.Score < st.MinScore {
			st.MinScore = r.Score
		}
		if r.Shortlisted {
			st.Shortlisted++
		}
		if r.InterviewScheduled {
			st.Interviewed++
		}
		if r.HiringStatus == StatusHired {
			st.Hired++
		}

		switch match.LevelFor(r.Score) {
		case match.LevelExcellent:
			st.ExcellentCount++
		case match.LevelGood:
			st.GoodCount++
		case match.LevelAverage:
			st.AverageCount++
		default:
			st.PoorCount++
		}
	}
	st.AverageScore = sum / float64(len(rows))
	return st
}
