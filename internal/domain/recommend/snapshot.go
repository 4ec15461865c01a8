// Package recommend turns a training corpus into an immutable Snapshot and scores user
// profiles against it.
package recommend

import (
	"fmt"
	"math"
	"strings"
	"time"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/encoding"
	"career-sync/internal/domain/model"
	"career-sync/internal/domain/model/forest"
	"career-sync/internal/domain/skillgap"
	"career-sync/internal/domain/trend"

	"github.com/google/uuid"
)

type Options struct {
	Classifier forest.Options
	Regressor  forest.Options
	TopK       int

	// NewClassifier and NewRegressor replace the forest models when set.
	NewClassifier func() model.Classifier
	NewRegressor  func() model.Regressor
}

type Info struct {
	ID              uuid.UUID           `json:"id"`
	TrainedAt       time.Time           `json:"trained_at"`
	Duration        time.Duration       `json:"duration_ns"`
	Samples         int                 `json:"samples"`
	Classes         []string            `json:"classes"`
	Vocabulary      int                 `json:"vocabulary"`
	Industries      int                 `json:"industries"`
	CareerConflicts []skillgap.Conflict `json:"career_conflicts"`
	TrendDuplicates []trend.Duplicate   `json:"trend_duplicates"`
}

// Snapshot holds everything fitted from one corpus. It is never mutated after Build and may
// be shared by any number of goroutines.
type Snapshot struct {
	encoder    *encoding.Encoder
	classifier model.Classifier
	regressor  model.Regressor
	careers    *skillgap.Index
	trends     *trend.Joiner
	topK       int
	info       Info
}

func Build(corpus career.Corpus, opts Options) (*Snapshot, error) {
	start := time.Now()

	docs, careers, err := align(corpus.Skills, corpus.Careers)
	if err != nil {
		return nil, err
	}

	enc, err := encoding.Fit(docs)
	if err != nil {
		return nil, err
	}
	X := enc.TransformAll(docs)

	labels := make([]string, len(careers))
	salaries := make([]float64, len(careers))
	for i, c := range careers {
		labels[i] = c.Career
		salaries[i] = c.AverageSalary
	}

	clf := newClassifier(opts)
	if err := clf.Fit(X, labels); err != nil {
		return nil, fmt.Errorf("fit career classifier: %w", err)
	}
	reg := newRegressor(opts)
	if err := reg.Fit(X, salaries); err != nil {
		return nil, fmt.Errorf("fit salary regressor: %w", err)
	}

	idx := skillgap.NewIndex(corpus.Careers)
	joiner := trend.NewJoiner(corpus.Trends)

	topK := opts.TopK
	if topK <= 0 {
		topK = model.DefaultTopK
	}

	return &Snapshot{
		encoder:    enc,
		classifier: clf,
		regressor:  reg,
		careers:    idx,
		trends:     joiner,
		topK:       topK,
		info: Info{
			ID:              uuid.New(),
			TrainedAt:       time.Now().UTC(),
			Duration:        time.Since(start),
			Samples:         len(docs),
			Classes:         clf.Classes(),
			Vocabulary:      enc.Dim(),
			Industries:      joiner.Len(),
			CareerConflicts: idx.Conflicts(),
			TrendDuplicates: joiner.Duplicates(),
		},
	}, nil
}

func newClassifier(opts Options) model.Classifier {
	if opts.NewClassifier != nil {
		return opts.NewClassifier()
	}
	return forest.NewClassifier(opts.Classifier)
}

func newRegressor(opts Options) model.Regressor {
	if opts.NewRegressor != nil {
		return opts.NewRegressor()
	}
	return forest.NewRegressor(opts.Regressor)
}

func (s *Snapshot) Info() Info {
	if s == nil {
		return Info{}
	}
	info := s.info
	info.Classes = append([]string(nil), s.info.Classes...)
	return info
}

// Analyze scores one profile: encode, classify and regress, compute the skill gap of the top
// career, then join its industry trend. The first failing stage aborts the whole request.
func (s *Snapshot) Analyze(p career.UserProfile) (career.Recommendation, error) {
	if s == nil {
		return career.Recommendation{}, model.ErrNotFitted
	}

	x := s.encoder.Transform(strings.Join(p.Skills, " "))

	top, err := s.classifier.PredictTopK(x, s.topK)
	if err != nil {
		return career.Recommendation{}, fmt.Errorf("classify: %w", err)
	}
	salary, err := s.regressor.Predict(x)
	if err != nil {
		return career.Recommendation{}, fmt.Errorf("predict salary: %w", err)
	}
	if len(top) == 0 {
		return career.Recommendation{}, skillgap.ErrCareerNotFound
	}

	req, err := s.careers.Lookup(top[0].Label)
	if err != nil {
		return career.Recommendation{}, fmt.Errorf("skill gap for %q: %w", top[0].Label, err)
	}
	gaps := skillgap.Gap(req.RequiredSkills, p.Skills)

	tr, err := s.trends.Lookup(req.Industry)
	if err != nil {
		return career.Recommendation{}, fmt.Errorf("industry trend for %q: %w", req.Industry, err)
	}

	labels := make([]string, 0, len(top))
	for _, c := range top {
		labels = append(labels, c.Label)
	}

	return career.Recommendation{
		RecommendedCareers: labels,
		PredictedSalary:    roundCents(salary),
		SkillGaps:          gaps,
		JobGrowth:          req.JobGrowth,
		IndustryTrend:      tr,
	}, nil
}

func roundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}
