package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"hire-rank/internal/domain/job"
	"hire-rank/internal/domain/ranking"
)

const csvHeader = "Rank, Candidate Name, Email, Ranking Score, Skills Score, Experience Score, Education Score, Shortlisted, Hiring Status, Percentile\n"

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func baseName(j job.Job) string {
	return fmt.Sprintf("rankings_job_%s_%s", j.ID, strings.ReplaceAll(j.Title, " ", "_"))
}

// CSV renders rows in the established export layout. Names and emails are
// quoted verbatim.
func CSV(j job.Job, rows []ranking.Ranking) File {
	var b strings.Builder
	b.WriteString(csvHeader)
	for _, r := range rows {
		b.WriteString(strconv.Itoa(r.RankPosition))
		b.WriteString(`,"`)
		b.WriteString(r.CandidateName)
		b.WriteString(`","`)
		b.WriteString(r.CandidateEmail)
		b.WriteString(`",`)
		b.WriteString(oneDecimal(r.Score))
		b.WriteByte(',')
		b.WriteString(oneDecimal(r.WeightedSkills))
		b.WriteByte(',')
		b.WriteString(oneDecimal(r.WeightedExperience))
		b.WriteByte(',')
		b.WriteString(oneDecimal(r.WeightedEducation))
		b.WriteByte(',')
		b.WriteString(yesNo(r.Shortlisted))
		b.WriteByte(',')
		b.WriteString(r.HiringStatus.Label())
		b.WriteByte(',')
		b.WriteString(oneDecimal(r.Percentile))
		b.WriteByte('\n')
	}
	return File{
		Name:        baseName(j) + ".csv",
		ContentType: "text/csv",
		Data:        []byte(b.String()),
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// oneDecimal rounds half up on the shortest decimal form of v, so 0.15
// renders as 0.2 and 0.25 as 0.3.
func oneDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}

	neg := math.Signbit(v)
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac += "00"

	digits := []byte(intPart + frac[:1])
	if frac[1] >= '5' {
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] < '9' {
				digits[i]++
				break
			}
			digits[i] = '0'
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		}
	}

	out := string(digits[:len(digits)-1]) + "." + string(digits[len(digits)-1:])
	if neg {
		out = "-" + out
	}
	return out
}
