package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

type ForestConfig struct {
	Trees           int
	MaxDepth        int // 0 grows trees until leaves are pure
	MinSamplesSplit int
	Seed            int64
}

func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 50, MinSamplesSplit: 2, Seed: 42}
}

// Node is one entry of a flattened decision tree. Leaves have Left == -1.
type Node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int     `json:"l"`
	Right     int     `json:"r"`
	Class     int     `json:"c"`
}

func (n Node) leaf() bool { return n.Left < 0 }

type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) predict(x []float64) int {
	i := 0
	for {
		n := t.Nodes[i]
		if n.leaf() {
			return n.Class
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// RandomForest is a bagged ensemble of CART trees voting on a class label.
type RandomForest struct {
	Classes     []string `json:"classes"`
	NumFeatures int      `json:"num_features"`
	Trees       []Tree   `json:"trees"`

	cfg ForestConfig
}

func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.Trees <= 0 {
		cfg.Trees = DefaultForestConfig().Trees
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	return &RandomForest{cfg: cfg}
}

func (f *RandomForest) Fitted() bool {
	return f != nil && len(f.Trees) > 0
}

// Fit grows the ensemble on X with labels y. The RNG is seeded from the
// config, so the same data always yields the same forest.
func (f *RandomForest) Fit(X [][]float64, y []string) error {
	if f.Fitted() {
		return ErrAlreadyFitted
	}
	if len(X) == 0 {
		return ErrEmptyCorpus
	}
	if len(X) != len(y) {
		return fmt.Errorf("feature rows (%d) and labels (%d) differ", len(X), len(y))
	}
	nf := len(X[0])
	if nf == 0 {
		return errors.New("feature vectors are empty")
	}
	for i, row := range X {
		if len(row) != nf {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), nf)
		}
	}

	classes, labels := encodeLabels(y)
	rng := rand.New(rand.NewSource(f.cfg.Seed))
	mtry := int(math.Sqrt(float64(nf)))
	if mtry < 1 {
		mtry = 1
	}

	trees := make([]Tree, f.cfg.Trees)
	for t := range trees {
		sample := make([]int, len(X))
		for i := range sample {
			sample[i] = rng.Intn(len(X))
		}
		b := &treeBuilder{
			X:        X,
			y:        labels,
			nClasses: len(classes),
			maxDepth: f.cfg.MaxDepth,
			minSplit: f.cfg.MinSamplesSplit,
			mtry:     mtry,
			rng:      rng,
		}
		b.build(sample, 0)
		trees[t] = Tree{Nodes: b.nodes}
	}

	f.Classes = classes
	f.NumFeatures = nf
	f.Trees = trees
	return nil
}

// Predict returns the label with the most tree votes. Ties go to the
// smallest label so the answer does not depend on tree order.
func (f *RandomForest) Predict(x []float64) (string, error) {
	if !f.Fitted() {
		return "", ErrNotFitted
	}
	if len(x) != f.NumFeatures {
		return "", fmt.Errorf("got %d features, want %d", len(x), f.NumFeatures)
	}
	votes := make([]int, len(f.Classes))
	for i := range f.Trees {
		votes[f.Trees[i].predict(x)]++
	}
	return f.Classes[argmax(votes)], nil
}

func (f *RandomForest) PredictBatch(X [][]float64) ([]string, error) {
	out := make([]string, len(X))
	for i, x := range X {
		label, err := f.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = label
	}
	return out, nil
}

// Validate checks a decoded forest so a corrupt artifact cannot index out
// of range at prediction time.
func (f *RandomForest) Validate() error {
	if !f.Fitted() {
		return ErrNotFitted
	}
	if len(f.Classes) == 0 || f.NumFeatures <= 0 {
		return errors.New("forest has no classes or features")
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.Class < 0 || n.Class >= len(f.Classes) {
				return fmt.Errorf("tree %d node %d: class %d out of range", ti, ni, n.Class)
			}
			if n.leaf() {
				continue
			}
			if n.Feature < 0 || n.Feature >= f.NumFeatures {
				return fmt.Errorf("tree %d node %d: feature %d out of range", ti, ni, n.Feature)
			}
			// children are always appended after their parent
			if n.Left <= ni || n.Right <= ni || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d: bad child index", ti, ni)
			}
		}
	}
	return nil
}

func encodeLabels(y []string) ([]string, []int) {
	set := make(map[string]struct{})
	for _, label := range y {
		set[label] = struct{}{}
	}
	classes := make([]string, 0, len(set))
	for label := range set {
		classes = append(classes, label)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	encoded := make([]int, len(y))
	for i, label := range y {
		encoded[i] = index[label]
	}
	return classes, encoded
}

func argmax(xs []int) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}

type treeBuilder struct {
	X        [][]float64
	y        []int
	nClasses int
	maxDepth int
	minSplit int
	mtry     int
	rng      *rand.Rand
	nodes    []Node
}

func (b *treeBuilder) build(idx []int, depth int) int {
	counts := b.classCounts(idx)
	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{Left: -1, Right: -1, Class: argmax(counts)})

	if isPure(counts) || len(idx) < b.minSplit || (b.maxDepth > 0 && depth >= b.maxDepth) {
		return id
	}

	feature, threshold, ok := b.bestSplit(idx, counts)
	if !ok {
		return id
	}

	var left, right []int
	for _, i := range idx {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[id].Feature = feature
	b.nodes[id].Threshold = threshold
	b.nodes[id].Left = l
	b.nodes[id].Right = r
	return id
}

// bestSplit scans features in random order and evaluates the first mtry
// that are not constant within idx. When none of those gives a split it
// keeps going through the remaining features.
func (b *treeBuilder) bestSplit(idx []int, parent []int) (int, float64, bool) {
	bestFeature, bestThreshold := -1, 0.0
	bestScore := math.Inf(1)
	tried := 0

	type pair struct {
		v float64
		c int
	}
	pairs := make([]pair, len(idx))
	n := float64(len(idx))

	for _, feature := range b.rng.Perm(len(b.X[0])) {
		if tried >= b.mtry && bestFeature >= 0 {
			break
		}
		for k, i := range idx {
			pairs[k] = pair{v: b.X[i][feature], c: b.y[i]}
		}
		sort.Slice(pairs, func(a, c int) bool { return pairs[a].v < pairs[c].v })
		if pairs[0].v == pairs[len(pairs)-1].v {
			continue
		}
		tried++

		left := make([]int, b.nClasses)
		right := append([]int(nil), parent...)
		for k := 0; k < len(pairs)-1; k++ {
			left[pairs[k].c]++
			right[pairs[k].c]--
			if pairs[k].v == pairs[k+1].v {
				continue
			}
			nl := float64(k + 1)
			nr := n - nl
			score := nl/n*gini(left, nl) + nr/n*gini(right, nr)
			if score < bestScore {
				bestScore = score
				bestFeature = feature
				bestThreshold = pairs[k].v + (pairs[k+1].v-pairs[k].v)/2
				if bestThreshold >= pairs[k+1].v {
					bestThreshold = pairs[k].v
				}
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func (b *treeBuilder) classCounts(idx []int) []int {
	counts := make([]int, b.nClasses)
	for _, i := range idx {
		counts[b.y[i]]++
	}
	return counts
}

func gini(counts []int, total float64) float64 {
	if total == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / total
		g -= p * p
	}
	return g
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}
