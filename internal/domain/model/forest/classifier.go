package forest

import (
	"sort"

	"career-sync/internal/domain/encoding"
	"career-sync/internal/domain/model"
)

// Classifier averages the leaf class distributions of its trees. Splits minimise Gini
// impurity over sqrt(d) candidate features.
type Classifier struct {
	opts    Options
	classes []string
	trees   []*tree
}

var _ model.Classifier = (*Classifier)(nil)

func NewClassifier(opts Options) *Classifier {
	return &Classifier{opts: opts.normalized()}
}

func (c *Classifier) Fit(X []encoding.Vector, y []string) error {
	if len(X) != len(y) {
		return ErrShapeMismatch
	}
	rows, err := dense(X)
	if err != nil {
		return err
	}

	classes := uniqueSorted(y)
	index := make(map[string]int, len(classes))
	for i, l := range classes {
		index[l] = i
	}
	labels := make([]int, len(y))
	for i, l := range y {
		labels[i] = index[l]
	}

	trees, err := fitTrees(c.opts, rows, sqrtFeatures(X[0].Dim()), func() criterion {
		return newGini(labels, len(classes))
	})
	if err != nil {
		return err
	}

	c.classes = classes
	c.trees = trees
	return nil
}

func (c *Classifier) Classes() []string {
	out := make([]string, len(c.classes))
	copy(out, c.classes)
	return out
}

func (c *Classifier) PredictProba(x encoding.Vector) ([]float64, error) {
	if c == nil || len(c.trees) == 0 {
		return nil, model.ErrNotFitted
	}
	out := make([]float64, len(c.classes))
	for _, t := range c.trees {
		for i, p := range t.leafValue(x) {
			out[i] += p
		}
	}
	n := float64(len(c.trees))
	for i := range out {
		out[i] /= n
	}
	return out, nil
}

func (c *Classifier) PredictTopK(x encoding.Vector, k int) ([]model.ClassProbability, error) {
	proba, err := c.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return model.TopK(c.classes, proba, k), nil
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
