package recommend

import (
	"errors"
	"fmt"
	"strings"

	"career-sync/internal/domain/career"
)

var ErrDataAlignment = errors.New("skill and career tables are not sample-aligned")

// align pairs every skill sample with its career record and returns both in skill-table
// order. Rows are joined on sample_id when every row of both tables has one, and by position
// when none has; anything in between is rejected.
func align(skills []career.SkillSample, careers []career.CareerRecord) ([]string, []career.CareerRecord, error) {
	if len(skills) != len(careers) {
		return nil, nil, fmt.Errorf("%w: %d skill rows, %d career rows", ErrDataAlignment, len(skills), len(careers))
	}

	keyedSkills := countKeyed(len(skills), func(i int) string { return skills[i].SampleID })
	keyedCareers := countKeyed(len(careers), func(i int) string { return careers[i].SampleID })

	switch {
	case keyedSkills == 0 && keyedCareers == 0:
		docs := make([]string, len(skills))
		out := make([]career.CareerRecord, len(careers))
		for i := range skills {
			docs[i] = skills[i].Skills
			out[i] = careers[i]
		}
		return docs, out, nil

	case keyedSkills == len(skills) && keyedCareers == len(careers):
		return alignByKey(skills, careers)

	default:
		return nil, nil, fmt.Errorf("%w: sample_id set on %d/%d skill rows and %d/%d career rows",
			ErrDataAlignment, keyedSkills, len(skills), keyedCareers, len(careers))
	}
}

func alignByKey(skills []career.SkillSample, careers []career.CareerRecord) ([]string, []career.CareerRecord, error) {
	byKey := make(map[string]int, len(careers))
	for i, c := range careers {
		k := strings.TrimSpace(c.SampleID)
		if _, ok := byKey[k]; ok {
			return nil, nil, fmt.Errorf("%w: duplicate career sample_id %q", ErrDataAlignment, k)
		}
		byKey[k] = i
	}

	docs := make([]string, len(skills))
	out := make([]career.CareerRecord, len(skills))
	used := make(map[string]struct{}, len(skills))
	for i, s := range skills {
		k := strings.TrimSpace(s.SampleID)
		if _, ok := used[k]; ok {
			return nil, nil, fmt.Errorf("%w: duplicate skill sample_id %q", ErrDataAlignment, k)
		}
		used[k] = struct{}{}

		j, ok := byKey[k]
		if !ok {
			return nil, nil, fmt.Errorf("%w: skill sample_id %q has no career row", ErrDataAlignment, k)
		}
		docs[i] = s.Skills
		out[i] = careers[j]
	}
	return docs, out, nil
}

func countKeyed(n int, key func(int) string) int {
	c := 0
	for i := 0; i < n; i++ {
		if strings.TrimSpace(key(i)) != "" {
			c++
		}
	}
	return c
}
