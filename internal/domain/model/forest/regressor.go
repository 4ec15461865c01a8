package forest

import (
	"career-sync/internal/domain/encoding"
	"career-sync/internal/domain/model"
)

// Regressor averages the leaf means of its trees. Splits minimise the summed squared error
// over all features. Predictions are not clamped to the training range.
type Regressor struct {
	opts  Options
	trees []*tree
}

var _ model.Regressor = (*Regressor)(nil)

func NewRegressor(opts Options) *Regressor {
	return &Regressor{opts: opts.normalized()}
}

func (r *Regressor) Fit(X []encoding.Vector, y []float64) error {
	if len(X) != len(y) {
		return ErrShapeMismatch
	}
	rows, err := dense(X)
	if err != nil {
		return err
	}

	targets := make([]float64, len(y))
	copy(targets, y)

	d := X[0].Dim()
	if d < 1 {
		d = 1
	}
	trees, err := fitTrees(r.opts, rows, d, func() criterion {
		return newMSE(targets)
	})
	if err != nil {
		return err
	}

	r.trees = trees
	return nil
}

func (r *Regressor) Predict(x encoding.Vector) (float64, error) {
	if r == nil || len(r.trees) == 0 {
		return 0, model.ErrNotFitted
	}
	sum := 0.0
	for _, t := range r.trees {
		sum += t.leafValue(x)[0]
	}
	return sum / float64(len(r.trees)), nil
}
