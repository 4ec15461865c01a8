package forest

import (
	"math/rand/v2"
	"sort"

	"career-sync/internal/domain/encoding"
)

const leafNode = -1

type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     []float64
}

type tree struct {
	nodes []node
}

func (t *tree) leafValue(x encoding.Vector) []float64 {
	i := 0
	for {
		n := t.nodes[i]
		if n.feature == leafNode {
			return n.value
		}
		if x.At(n.feature) <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

// criterion scores a multiset of training rows. impurity is weighted by row count so that
// child scores can be summed and compared directly.
type criterion interface {
	reset(rows []int)
	impurity() float64
	moveLeft(row int)
	splitScore() float64
	leaf(rows []int) []float64
}

type builder struct {
	X           [][]float64
	maxFeatures int
	minSplit    int
	maxDepth    int
	rng         *rand.Rand
	crit        criterion
	nodes       []node
}

func (b *builder) build(rows []int) *tree {
	b.nodes = b.nodes[:0]
	b.grow(rows, 0)
	return &tree{nodes: b.nodes}
}

func (b *builder) grow(rows []int, depth int) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, node{feature: leafNode})

	b.crit.reset(rows)
	parent := b.crit.impurity()
	if parent <= 0 || len(rows) < b.minSplit || (b.maxDepth > 0 && depth >= b.maxDepth) {
		b.nodes[id].value = b.crit.leaf(rows)
		return id
	}

	feature, threshold, ok := b.bestSplit(rows)
	if !ok {
		b.nodes[id].value = b.crit.leaf(rows)
		return id
	}

	left := make([]int, 0, len(rows))
	right := make([]int, 0, len(rows))
	for _, r := range rows {
		if b.X[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[id].feature = feature
	b.nodes[id].threshold = threshold
	b.nodes[id].left = l
	b.nodes[id].right = r
	return id
}

// bestSplit draws features in random order and evaluates them until maxFeatures
// non-constant ones were seen. Ties keep the first candidate found.
func (b *builder) bestSplit(rows []int) (int, float64, bool) {
	d := len(b.X[rows[0]])
	order := b.rng.Perm(d)

	sorted := make([]int, len(rows))
	bestScore := 0.0
	bestFeature := -1
	bestThreshold := 0.0
	visited := 0

	for _, f := range order {
		if visited >= b.maxFeatures && bestFeature >= 0 {
			break
		}

		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.X[sorted[i]][f] < b.X[sorted[j]][f]
		})
		if b.X[sorted[0]][f] == b.X[sorted[len(sorted)-1]][f] {
			continue
		}
		visited++

		b.crit.reset(sorted)
		for i := 0; i < len(sorted)-1; i++ {
			b.crit.moveLeft(sorted[i])
			lo := b.X[sorted[i]][f]
			hi := b.X[sorted[i+1]][f]
			if lo == hi {
				continue
			}
			score := b.crit.splitScore()
			if bestFeature < 0 || score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = lo + (hi-lo)/2
				if bestThreshold == hi {
					bestThreshold = lo
				}
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func bootstrap(rng *rand.Rand, n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = rng.IntN(n)
	}
	return rows
}
