// Package forest implements bagged ensembles of CART trees over sparse skill vectors.
//
// Every tree draws from its own PCG stream keyed by (Seed, tree index), so a fitted forest
// depends only on the options and the training data, never on how trees were scheduled
// across workers.
package forest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"career-sync/internal/domain/encoding"
	"career-sync/internal/pkg/workerpool"
)

const (
	DefaultTrees = 100
	DefaultSeed  = 42
)

var (
	ErrEmptyTrainingSet = errors.New("empty training set")
	ErrShapeMismatch    = errors.New("training inputs and targets differ in length")
)

type Options struct {
	Trees           int
	// Seed selects the random streams; nil means DefaultSeed. Zero is a valid seed.
	Seed            *int64
	MaxDepth        int
	MinSamplesSplit int
	Workers         int
}

func (o Options) normalized() Options {
	if o.Trees <= 0 {
		o.Trees = DefaultTrees
	}
	if o.Seed == nil {
		o.Seed = Seed(DefaultSeed)
	} else {
		o.Seed = Seed(*o.Seed)
	}
	if o.MinSamplesSplit < 2 {
		o.MinSamplesSplit = 2
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	return o
}

// Seed returns a pointer to v for use in Options.
func Seed(v int64) *int64 {
	return &v
}

func dense(X []encoding.Vector) ([][]float64, error) {
	if len(X) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	d := X[0].Dim()
	out := make([][]float64, len(X))
	for i, v := range X {
		if v.Dim() != d {
			return nil, fmt.Errorf("row %d has dimension %d, want %d", i, v.Dim(), d)
		}
		out[i] = v.Dense()
	}
	return out, nil
}

func (o Options) rng(tree int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(*o.Seed), uint64(tree)))
}

// fitTrees grows o.Trees trees, one bootstrap sample each, with a fresh criterion per tree.
func fitTrees(o Options, X [][]float64, maxFeatures int, newCrit func() criterion) ([]*tree, error) {
	trees := make([]*tree, o.Trees)
	err := workerpool.Each(context.Background(), o.Workers, o.Trees, func(_ context.Context, i int) error {
		rng := o.rng(i)
		b := &builder{
			X:           X,
			maxFeatures: maxFeatures,
			minSplit:    o.MinSamplesSplit,
			maxDepth:    o.MaxDepth,
			rng:         rng,
			crit:        newCrit(),
		}
		trees[i] = b.build(bootstrap(rng, len(X)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trees, nil
}

func sqrtFeatures(d int) int {
	m := int(math.Sqrt(float64(d)))
	if m < 1 {
		m = 1
	}
	return m
}
