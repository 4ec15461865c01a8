package career

import (
	"encoding/json"
	"sort"
)

type SkillSample struct {
	SampleID string
	Skills   string
}

type CareerRecord struct {
	SampleID       string
	Career         string
	AverageSalary  float64
	RequiredSkills string
	JobGrowth      float64
	Industry       string
}

// IndustryTrend is one row of the trend table. Attributes holds every column other than
// the industry key; values are float64, int64, string or nil.
type IndustryTrend struct {
	Industry   string
	Attributes map[string]any
}

func (t IndustryTrend) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Attributes)+1)
	for k, v := range t.Attributes {
		out[k] = v
	}
	out["industry"] = t.Industry
	return json.Marshal(out)
}

func (t *IndustryTrend) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	industry, _ := raw["industry"].(string)
	delete(raw, "industry")
	t.Industry = industry
	t.Attributes = raw
	return nil
}

func (t IndustryTrend) AttributeNames() []string {
	out := make([]string, 0, len(t.Attributes))
	for k := range t.Attributes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type Corpus struct {
	Skills  []SkillSample
	Careers []CareerRecord
	Trends  []IndustryTrend
}

type UserProfile struct {
	Skills              []string
	Interests           []string
	AcademicPerformance float64
}

type Recommendation struct {
	RecommendedCareers []string      `json:"recommended_careers"`
	PredictedSalary    float64       `json:"predicted_salary"`
	SkillGaps          []string      `json:"skill_gaps"`
	JobGrowth          float64       `json:"job_growth"`
	IndustryTrend      IndustryTrend `json:"industry_trend"`
}
