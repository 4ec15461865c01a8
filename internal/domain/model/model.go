package model

import (
	"errors"

	"career-sync/internal/domain/encoding"
)

var ErrNotFitted = errors.New("model not fitted")

const DefaultTopK = 3

type ClassProbability struct {
	Label       string
	Probability float64
}

// Classifier is the capability the recommendation pipeline needs from a career model.
type Classifier interface {
	Fit(X []encoding.Vector, y []string) error
	PredictProba(x encoding.Vector) ([]float64, error)
	PredictTopK(x encoding.Vector, k int) ([]ClassProbability, error)
	Classes() []string
}

// Regressor is the capability the recommendation pipeline needs from a salary model.
type Regressor interface {
	Fit(X []encoding.Vector, y []float64) error
	Predict(x encoding.Vector) (float64, error)
}
