package export

import (
	"bytes"
	"testing"

	"hire-rank/internal/domain/job"
	"hire-rank/internal/domain/ranking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample() (job.Job, []ranking.Ranking) {
	j := job.Job{ID: uuid.MustParse("3f333df6-90a4-4fda-8dd3-9485d27cee36"), Title: "Senior Go Engineer"}
	rows := []ranking.Ranking{
		{
			RankPosition: 1, CandidateName: "Ada Lovelace", CandidateEmail: "ada@example.com",
			Score: 87.25, WeightedSkills: 50, WeightedExperience: 23.333333333333332, WeightedEducation: 13.916666666666666,
			Shortlisted: true, HiringStatus: ranking.StatusShortlisted, Percentile: 50,
		},
		{
			RankPosition: 2, CandidateName: "Alan Turing", CandidateEmail: "alan@example.com",
			Score: 0.15, Percentile: 0,
		},
	}
	return j, rows
}

func TestOneDecimal(t *testing.T) {
	tests := map[float64]string{
		0:                  "0.0",
		100:                "100.0",
		0.15:               "0.2",
		0.25:               "0.3",
		0.05:               "0.1",
		0.04:               "0.0",
		23.333333333333332: "23.3",
		99.95:              "100.0",
		9.96:               "10.0",
		-1.25:              "-1.3",
	}
	for in, want := range tests {
		assert.Equal(t, want, oneDecimal(in), "input %v", in)
	}
}

func TestCSV(t *testing.T) {
	j, rows := sample()
	f := CSV(j, rows)

	assert.Equal(t, "rankings_job_3f333df6-90a4-4fda-8dd3-9485d27cee36_Senior_Go_Engineer.csv", f.Name)
	assert.Equal(t, "text/csv", f.ContentType)

	want := "Rank, Candidate Name, Email, Ranking Score, Skills Score, Experience Score, Education Score, Shortlisted, Hiring Status, Percentile\n" +
		"1,\"Ada Lovelace\",\"ada@example.com\",87.3,50.0,23.3,13.9,Yes,Shortlisted,50.0\n" +
		"2,\"Alan Turing\",\"alan@example.com\",0.2,0.0,0.0,0.0,No,N/A,0.0\n"
	assert.Equal(t, want, string(f.Data))
}

func TestCSV_Empty(t *testing.T) {
	j, _ := sample()
	assert.Equal(t, csvHeader, string(CSV(j, nil).Data))
}

func TestXLSX(t *testing.T) {
	j, rows := sample()
	out, err := XLSX(j, rows)
	require.NoError(t, err)
	assert.Equal(t, "rankings_job_3f333df6-90a4-4fda-8dd3-9485d27cee36_Senior_Go_Engineer.xlsx", out.Name)

	f, err := excelize.OpenReader(bytes.NewReader(out.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{rankingsSheet, summarySheet}, f.GetSheetList())

	v, err := f.GetCellValue(rankingsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", v)

	v, err = f.GetCellValue(rankingsSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "87.3", v)

	v, err = f.GetCellValue(summarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}
