package dto

import (
	"strings"

	"career-sync/internal/domain/career"
)

// AnalyzeProfileRequest keeps every field optional at decode time so that a missing field
// can be told apart from an empty one.
type AnalyzeProfileRequest struct {
	Skills              *[]string `json:"skills"`
	Interests           *[]string `json:"interests"`
	AcademicPerformance *float64  `json:"academic_performance"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (r AnalyzeProfileRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Skills == nil {
		errs = append(errs, FieldError{Field: "skills", Message: "field required"})
	}
	if r.Interests == nil {
		errs = append(errs, FieldError{Field: "interests", Message: "field required"})
	}
	if r.AcademicPerformance == nil {
		errs = append(errs, FieldError{Field: "academic_performance", Message: "field required"})
	}
	return errs
}

func (r AnalyzeProfileRequest) ToProfile() career.UserProfile {
	p := career.UserProfile{}
	if r.Skills != nil {
		p.Skills = *r.Skills
	}
	if r.Interests != nil {
		p.Interests = make([]string, 0, len(*r.Interests))
		for _, i := range *r.Interests {
			p.Interests = append(p.Interests, strings.TrimSpace(i))
		}
	}
	if r.AcademicPerformance != nil {
		p.AcademicPerformance = *r.AcademicPerformance
	}
	return p
}
