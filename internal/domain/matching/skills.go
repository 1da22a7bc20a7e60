package matching

import (
	"sort"
	"strings"
)

// ParseSkills splits a comma-delimited skill list into a lower-cased, trimmed,
// de-duplicated slice. Order of first appearance is kept.
func ParseSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.ToLower(strings.TrimSpace(p))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SkillsScore is the share of required skills the candidate has verbatim,
// scaled to 0-100. No requirements means full marks.
func SkillsScore(required, candidate []string) float64 {
	req := toSet(required)
	if len(req) == 0 {
		return 100
	}
	have := toSet(candidate)

	matched := 0
	for s := range req {
		if _, ok := have[s]; ok {
			matched++
		}
	}
	return float64(matched) * 100 / float64(len(req))
}

type SkillBreakdown struct {
	Matched []string
	Missing []string
	Partial []string
}

// ClassifySkills places every required skill in exactly one bucket.
// Priority is matched > partial > missing; partial means one skill name
// contains the other.
func ClassifySkills(required, candidate []string) SkillBreakdown {
	out := SkillBreakdown{
		Matched: make([]string, 0),
		Missing: make([]string, 0),
		Partial: make([]string, 0),
	}

	have := toSet(candidate)
	for req := range toSet(required) {
		if _, ok := have[req]; ok {
			out.Matched = append(out.Matched, req)
			continue
		}

		partial := false
		for cs := range have {
			if strings.Contains(cs, req) || strings.Contains(req, cs) {
				partial = true
				break
			}
		}
		if partial {
			out.Partial = append(out.Partial, req)
		} else {
			out.Missing = append(out.Missing, req)
		}
	}

	sort.Strings(out.Matched)
	sort.Strings(out.Missing)
	sort.Strings(out.Partial)
	return out
}

func toSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out[s] = struct{}{}
	}
	return out
}
