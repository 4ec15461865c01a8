package trend

import (
	"errors"

	"career-sync/internal/domain/career"
)

var ErrTrendNotFound = errors.New("industry trend not found")

type Duplicate struct {
	Industry string `json:"industry"`
	Rows     int    `json:"rows"`
}

// Joiner is an exact-key index over the trend table. When a key repeats, the first row is
// kept and the key is reported by Duplicates.
type Joiner struct {
	byIndustry map[string]career.IndustryTrend
	duplicates []Duplicate
}

func NewJoiner(rows []career.IndustryTrend) *Joiner {
	j := &Joiner{byIndustry: make(map[string]career.IndustryTrend, len(rows))}
	counts := map[string]int{}
	order := make([]string, 0, len(rows))

	for _, r := range rows {
		counts[r.Industry]++
		if _, ok := j.byIndustry[r.Industry]; ok {
			continue
		}
		j.byIndustry[r.Industry] = cloneTrend(r)
		order = append(order, r.Industry)
	}

	for _, k := range order {
		if counts[k] > 1 {
			j.duplicates = append(j.duplicates, Duplicate{Industry: k, Rows: counts[k]})
		}
	}
	return j
}

func (j *Joiner) Lookup(industry string) (career.IndustryTrend, error) {
	if j == nil {
		return career.IndustryTrend{}, ErrTrendNotFound
	}
	t, ok := j.byIndustry[industry]
	if !ok {
		return career.IndustryTrend{}, ErrTrendNotFound
	}
	return cloneTrend(t), nil
}

func (j *Joiner) Duplicates() []Duplicate {
	if j == nil {
		return nil
	}
	out := make([]Duplicate, len(j.duplicates))
	copy(out, j.duplicates)
	return out
}

func (j *Joiner) Len() int {
	if j == nil {
		return 0
	}
	return len(j.byIndustry)
}

func cloneTrend(t career.IndustryTrend) career.IndustryTrend {
	attrs := make(map[string]any, len(t.Attributes))
	for k, v := range t.Attributes {
		attrs[k] = v
	}
	return career.IndustryTrend{Industry: t.Industry, Attributes: attrs}
}
