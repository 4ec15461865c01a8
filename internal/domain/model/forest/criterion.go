package forest

type gini struct {
	y      []int
	total  []float64
	left   []float64
	n      float64
	nLeft  float64
	labels int
}

func newGini(y []int, labels int) *gini {
	return &gini{y: y, labels: labels, total: make([]float64, labels), left: make([]float64, labels)}
}

func (g *gini) reset(rows []int) {
	for i := range g.total {
		g.total[i] = 0
		g.left[i] = 0
	}
	for _, r := range rows {
		g.total[g.y[r]]++
	}
	g.n = float64(len(rows))
	g.nLeft = 0
}

func (g *gini) impurity() float64 {
	return weightedGini(g.total, g.n)
}

func (g *gini) moveLeft(row int) {
	g.left[g.y[row]]++
	g.nLeft++
}

func (g *gini) splitScore() float64 {
	nRight := g.n - g.nLeft
	sq := 0.0
	for i := range g.total {
		c := g.total[i] - g.left[i]
		sq += c * c
	}
	right := 0.0
	if nRight > 0 {
		right = nRight - sq/nRight
	}
	return weightedGini(g.left, g.nLeft) + right
}

func (g *gini) leaf(rows []int) []float64 {
	out := make([]float64, g.labels)
	if len(rows) == 0 {
		return out
	}
	for _, r := range rows {
		out[g.y[r]]++
	}
	n := float64(len(rows))
	for i := range out {
		out[i] /= n
	}
	return out
}

func weightedGini(counts []float64, n float64) float64 {
	if n <= 0 {
		return 0
	}
	sq := 0.0
	for _, c := range counts {
		sq += c * c
	}
	return n - sq/n
}

type mse struct {
	y      []float64
	rows   []int
	sum    float64
	sumSq  float64
	n      float64
	lSum   float64
	lSumSq float64
	lN     float64
}

func newMSE(y []float64) *mse {
	return &mse{y: y}
}

func (m *mse) reset(rows []int) {
	m.rows = rows
	m.sum, m.sumSq, m.n = 0, 0, float64(len(rows))
	m.lSum, m.lSumSq, m.lN = 0, 0, 0
	for _, r := range rows {
		v := m.y[r]
		m.sum += v
		m.sumSq += v * v
	}
}

// impurity uses a two-pass sum of squared deviations so that a node with identical targets
// scores exactly zero.
func (m *mse) impurity() float64 {
	if m.n == 0 {
		return 0
	}
	mean := m.sum / m.n
	sse := 0.0
	for _, r := range m.rows {
		d := m.y[r] - mean
		sse += d * d
	}
	return sse
}

func (m *mse) moveLeft(row int) {
	v := m.y[row]
	m.lSum += v
	m.lSumSq += v * v
	m.lN++
}

func (m *mse) splitScore() float64 {
	left := 0.0
	if m.lN > 0 {
		left = m.lSumSq - m.lSum*m.lSum/m.lN
	}
	rN := m.n - m.lN
	right := 0.0
	if rN > 0 {
		rSum := m.sum - m.lSum
		right = (m.sumSq - m.lSumSq) - rSum*rSum/rN
	}
	return left + right
}

func (m *mse) leaf(rows []int) []float64 {
	if len(rows) == 0 {
		return []float64{0}
	}
	sum := 0.0
	for _, r := range rows {
		sum += m.y[r]
	}
	return []float64{sum / float64(len(rows))}
}
