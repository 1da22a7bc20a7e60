package matching

import "strings"

// EducationScore compares free-text education case-insensitively. A miss is
// 50, not 0.
func EducationScore(required, candidate string) float64 {
	req := strings.ToLower(strings.TrimSpace(required))
	cand := strings.ToLower(strings.TrimSpace(candidate))

	switch {
	case strings.Contains(cand, req):
		return 100
	case strings.Contains(req, "bachelor") && strings.Contains(cand, "master"):
		return 90
	case strings.Contains(req, "master") && strings.Contains(cand, "bachelor"):
		return 70
	case strings.Contains(req, "phd") && strings.Contains(cand, "master"):
		return 80
	default:
		return 50
	}
}
