package model

import "sort"

// TopK ranks classes by probability, highest first. Equal probabilities keep the order of
// classes. k <= 0 selects DefaultTopK; k larger than the class count returns every class.
func TopK(classes []string, proba []float64, k int) []ClassProbability {
	if k <= 0 {
		k = DefaultTopK
	}

	n := len(classes)
	if len(proba) < n {
		n = len(proba)
	}

	out := make([]ClassProbability, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ClassProbability{Label: classes[i], Probability: proba[i]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})

	if len(out) > k {
		out = out[:k]
	}
	return out
}
