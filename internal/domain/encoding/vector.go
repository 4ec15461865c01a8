package encoding

import "sort"

// Vector is a sparse vector; indices are strictly increasing.
type Vector struct {
	dim     int
	indices []int
	values  []float64
}

func NewVector(dim int, dense []float64) Vector {
	v := Vector{dim: dim}
	for i, x := range dense {
		if i >= dim {
			break
		}
		if x == 0 {
			continue
		}
		v.indices = append(v.indices, i)
		v.values = append(v.values, x)
	}
	return v
}

func (v Vector) Dim() int { return v.dim }

func (v Vector) NNZ() int { return len(v.indices) }

func (v Vector) IsZero() bool { return len(v.indices) == 0 }

func (v Vector) At(i int) float64 {
	k := sort.SearchInts(v.indices, i)
	if k < len(v.indices) && v.indices[k] == i {
		return v.values[k]
	}
	return 0
}

func (v Vector) Dense() []float64 {
	out := make([]float64, v.dim)
	for k, i := range v.indices {
		out[i] = v.values[k]
	}
	return out
}

// Each calls fn for every non-zero entry in index order.
func (v Vector) Each(fn func(i int, x float64)) {
	for k, i := range v.indices {
		fn(i, v.values[k])
	}
}
