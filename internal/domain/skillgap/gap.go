package skillgap

import (
	"errors"
	"strings"
	"unicode"

	"career-sync/internal/domain/career"
)

var ErrCareerNotFound = errors.New("career not found")

type Requirement struct {
	Career         string
	RequiredSkills []string
	JobGrowth      float64
	Industry       string
}

// Conflict records a career label whose later rows disagree with the first one.
type Conflict struct {
	Career string `json:"career"`
	Rows   int    `json:"rows"`
}

// Index resolves a career label to its first corpus row.
type Index struct {
	byCareer  map[string]Requirement
	conflicts []Conflict
}

func NewIndex(records []career.CareerRecord) *Index {
	idx := &Index{byCareer: make(map[string]Requirement, len(records))}
	rowsByCareer := map[string]int{}
	conflicting := map[string]bool{}
	order := make([]string, 0)

	for _, r := range records {
		rowsByCareer[r.Career]++
		first, ok := idx.byCareer[r.Career]
		if !ok {
			idx.byCareer[r.Career] = Requirement{
				Career:         r.Career,
				RequiredSkills: ParseRequiredSkills(r.RequiredSkills),
				JobGrowth:      r.JobGrowth,
				Industry:       r.Industry,
			}
			order = append(order, r.Career)
			continue
		}
		if !sameSkills(first.RequiredSkills, ParseRequiredSkills(r.RequiredSkills)) ||
			first.Industry != r.Industry || first.JobGrowth != r.JobGrowth {
			conflicting[r.Career] = true
		}
	}

	for _, c := range order {
		if conflicting[c] {
			idx.conflicts = append(idx.conflicts, Conflict{Career: c, Rows: rowsByCareer[c]})
		}
	}
	return idx
}

func (i *Index) Lookup(careerLabel string) (Requirement, error) {
	if i == nil {
		return Requirement{}, ErrCareerNotFound
	}
	r, ok := i.byCareer[careerLabel]
	if !ok {
		return Requirement{}, ErrCareerNotFound
	}
	return r, nil
}

func (i *Index) Conflicts() []Conflict {
	if i == nil {
		return nil
	}
	out := make([]Conflict, len(i.conflicts))
	copy(out, i.conflicts)
	return out
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byCareer)
}

// Gap returns the required skills the user does not declare, in required-skill order.
// Skills are compared case-insensitively with surrounding and repeated whitespace ignored.
func Gap(required, user []string) []string {
	have := make(map[string]struct{}, len(user))
	for _, s := range user {
		k := NormalizeSkill(s)
		if k == "" {
			continue
		}
		have[k] = struct{}{}
	}

	out := make([]string, 0, len(required))
	emitted := make(map[string]struct{}, len(required))
	for _, s := range required {
		k := NormalizeSkill(s)
		if k == "" {
			continue
		}
		if _, ok := have[k]; ok {
			continue
		}
		if _, ok := emitted[k]; ok {
			continue
		}
		emitted[k] = struct{}{}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func ParseRequiredSkills(field string) []string {
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func NormalizeSkill(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func sameSkills(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if NormalizeSkill(a[i]) != NormalizeSkill(b[i]) {
			return false
		}
	}
	return true
}
