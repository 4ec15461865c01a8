package forest

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"career-sync/internal/domain/encoding"
	"career-sync/internal/domain/model"
)

type sample struct {
	skills string
	label  string
	salary float64
}

var corpus = []sample{
	{"python sql pandas", "Data Scientist", 120000},
	{"python sql pandas", "Data Scientist", 118000},
	{"python sql pandas", "Data Scientist", 122000},
	{"excel accounting tax", "Accountant", 55000},
	{"excel accounting tax", "Accountant", 56000},
	{"excel accounting tax", "Accountant", 54000},
	{"java spring docker", "Backend Engineer", 95000},
	{"java spring docker", "Backend Engineer", 97000},
	{"java spring docker", "Backend Engineer", 93000},
}

func encodeCorpus(t *testing.T) (*encoding.Encoder, []encoding.Vector, []string, []float64) {
	t.Helper()
	docs := make([]string, 0, len(corpus))
	labels := make([]string, 0, len(corpus))
	salaries := make([]float64, 0, len(corpus))
	for _, s := range corpus {
		docs = append(docs, s.skills)
		labels = append(labels, s.label)
		salaries = append(salaries, s.salary)
	}
	enc, err := encoding.Fit(docs)
	if err != nil {
		t.Fatalf("fit encoder: %v", err)
	}
	return enc, enc.TransformAll(docs), labels, salaries
}

func TestClassifier_NotFitted(t *testing.T) {
	c := NewClassifier(Options{})
	if _, err := c.PredictTopK(encoding.Vector{}, 3); !errors.Is(err, model.ErrNotFitted) {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
	r := NewRegressor(Options{})
	if _, err := r.Predict(encoding.Vector{}); !errors.Is(err, model.ErrNotFitted) {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
}

func TestClassifier_ShapeErrors(t *testing.T) {
	c := NewClassifier(Options{Trees: 5})
	if err := c.Fit(nil, nil); !errors.Is(err, ErrEmptyTrainingSet) {
		t.Fatalf("expected ErrEmptyTrainingSet, got %v", err)
	}
	v := encoding.NewVector(2, []float64{1, 0})
	if err := c.Fit([]encoding.Vector{v}, []string{"a", "b"}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestClassifier_ExactMatchTop1(t *testing.T) {
	enc, X, y, _ := encodeCorpus(t)
	c := NewClassifier(Options{})
	if err := c.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}

	for _, s := range corpus {
		top, err := c.PredictTopK(enc.Transform(s.skills), 1)
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		if len(top) != 1 || top[0].Label != s.label {
			t.Fatalf("skills %q: top1 = %+v, want %s", s.skills, top, s.label)
		}
	}
}

func TestClassifier_ProbabilitiesSumToOne(t *testing.T) {
	enc, X, y, _ := encodeCorpus(t)
	c := NewClassifier(Options{Trees: 30})
	if err := c.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	for _, doc := range []string{"python", "", "unknown skill", "excel java"} {
		p, err := c.PredictProba(enc.Transform(doc))
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		sum := 0.0
		for _, x := range p {
			sum += x
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("probabilities for %q sum to %f", doc, sum)
		}
	}
}

func TestClassifier_TopKBounds(t *testing.T) {
	enc, X, y, _ := encodeCorpus(t)
	c := NewClassifier(Options{Trees: 20})
	if err := c.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}

	top, err := c.PredictTopK(enc.Transform("python"), 10)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("k > classes should return all 3 classes, got %d", len(top))
	}
	seen := map[string]bool{}
	for i, cp := range top {
		if seen[cp.Label] {
			t.Fatalf("duplicate label %s", cp.Label)
		}
		seen[cp.Label] = true
		if i > 0 && cp.Probability > top[i-1].Probability {
			t.Fatalf("ranking not descending: %+v", top)
		}
	}

	def, err := c.PredictTopK(enc.Transform("python"), 0)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(def) != model.DefaultTopK {
		t.Fatalf("default k returned %d classes", len(def))
	}
}

func TestClassifier_DeterministicAcrossWorkers(t *testing.T) {
	enc, X, y, _ := encodeCorpus(t)

	a := NewClassifier(Options{Trees: 40, Seed: Seed(7), Workers: 1})
	b := NewClassifier(Options{Trees: 40, Seed: Seed(7), Workers: 8})
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("fit a: %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("fit b: %v", err)
	}

	for _, doc := range []string{"python excel", "docker", ""} {
		pa, _ := a.PredictProba(enc.Transform(doc))
		pb, _ := b.PredictProba(enc.Transform(doc))
		if !reflect.DeepEqual(pa, pb) {
			t.Fatalf("%q: %v != %v", doc, pa, pb)
		}
	}
}

func TestRegressor_FiniteAndOrdered(t *testing.T) {
	enc, X, _, salaries := encodeCorpus(t)
	r := NewRegressor(Options{})
	if err := r.Fit(X, salaries); err != nil {
		t.Fatalf("fit: %v", err)
	}

	zero, err := r.Predict(enc.Transform(""))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if math.IsNaN(zero) || math.IsInf(zero, 0) {
		t.Fatalf("zero-vector prediction is not finite: %f", zero)
	}

	ds, _ := r.Predict(enc.Transform("python sql pandas"))
	acc, _ := r.Predict(enc.Transform("excel accounting tax"))
	if !(ds > acc) {
		t.Fatalf("expected data scientist salary %f > accountant salary %f", ds, acc)
	}
}

func TestTopK_TiesFollowClassOrder(t *testing.T) {
	got := model.TopK([]string{"a", "b", "c", "d"}, []float64{0.2, 0.4, 0.2, 0.2}, 3)
	want := []model.ClassProbability{
		{Label: "b", Probability: 0.4},
		{Label: "a", Probability: 0.2},
		{Label: "c", Probability: 0.2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopK = %+v, want %+v", got, want)
	}
}

func TestOptions_SeedDefaults(t *testing.T) {
	if got := *(Options{}).normalized().Seed; got != DefaultSeed {
		t.Fatalf("unset seed = %d, want %d", got, DefaultSeed)
	}
	if got := *(Options{Seed: Seed(0)}).normalized().Seed; got != 0 {
		t.Fatalf("explicit zero seed rewritten to %d", got)
	}

	seed := int64(5)
	o := Options{Seed: &seed}.normalized()
	seed = 9
	if *o.Seed != 5 {
		t.Fatalf("normalized options must not alias the caller's seed, got %d", *o.Seed)
	}
}
