package export

import (
	"bytes"
	"fmt"
	"strconv"

	"hire-rank/internal/domain/job"
	"hire-rank/internal/domain/ranking"

	"github.com/xuri/excelize/v2"
)

const (
	rankingsSheet = "Rankings"
	summarySheet  = "Summary"
)

var rankingColumns = []string{
	"Rank", "Candidate Name", "Email", "Ranking Score", "Skills Score",
	"Experience Score", "Education Score", "Shortlisted", "Hiring Status", "Percentile",
}

// XLSX renders the same columns as CSV on a Rankings sheet plus a Summary
// sheet with the job details and score distribution.
func XLSX(j job.Job, rows []ranking.Ranking) (File, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingsSheet); err != nil {
		return File{}, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return File{}, err
	}

	if err := writeRankings(f, rows); err != nil {
		return File{}, fmt.Errorf("rankings sheet: %w", err)
	}
	if err := writeSummary(f, j, rows); err != nil {
		return File{}, fmt.Errorf("summary sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return File{}, err
	}
	return File{
		Name:        baseName(j) + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func writeRankings(f *excelize.File, rows []ranking.Ranking) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	header := make([]any, len(rankingColumns))
	for i, c := range rankingColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(rankingsSheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(rankingColumns), 1)
	if err := f.SetCellStyle(rankingsSheet, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(rankingsSheet, "B", "C", 28); err != nil {
		return err
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			r.RankPosition,
			r.CandidateName,
			r.CandidateEmail,
			round1(r.Score),
			round1(r.WeightedSkills),
			round1(r.WeightedExperience),
			round1(r.WeightedEducation),
			yesNo(r.Shortlisted),
			r.HiringStatus.Label(),
			round1(r.Percentile),
		}
		if err := f.SetSheetRow(rankingsSheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, j job.Job, rows []ranking.Ranking) error {
	st := ranking.Summarize(rows)
	weights := ranking.Weights{}
	version := ""
	if len(rows) > 0 {
		weights = rows[0].Weights
		version = rows[0].CriteriaVersion
	}

	lines := [][]any{
		{"Job Title", j.Title},
		{"Job ID", j.ID.String()},
		{"Criteria Version", version},
		{"Total Ranked", st.TotalRanked},
		{"Average Score", round1(st.AverageScore)},
		{"Highest Score", round1(st.MaxScore)},
		{"Lowest Score", round1(st.MinScore)},
		{"Shortlisted", st.Shortlisted},
		{"Interviewed", st.Interviewed},
		{"Hired", st.Hired},
		{"Excellent (80-100)", st.ExcellentCount},
		{"Good (60-80)", st.GoodCount},
		{"Average (40-60)", st.AverageCount},
		{"Poor (<40)", st.PoorCount},
		{"Skills Weight", weights.Skills},
		{"Experience Weight", weights.Experience},
		{"Education Weight", weights.Education},
		{"Personality Weight", weights.Personality},
		{"Cultural Fit Weight", weights.CulturalFit},
	}
	for i, line := range lines {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &line); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 24)
}

func round1(v float64) float64 {
	out, err := strconv.ParseFloat(oneDecimal(v), 64)
	if err != nil {
		return v
	}
	return out
}
