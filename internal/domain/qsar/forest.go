// Package qsar implements the solubility regression model: a random forest of
// CART trees fitted on the descriptor vectors from the chem package, with a
// deterministic PRNG so a given seed always yields the same model.
package qsar

import (
	"math"
	"sort"
)

// ─────────────────────────────────────────────────────────────────────────────
// Tree structure
// ─────────────────────────────────────────────────────────────────────────────

// Node is one node of a regression tree, stored in the tree's flat node
// array.  Leaf nodes have Feature == -1 and carry the prediction in Value.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a CART regression tree as a flat node array rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Predict walks the tree for one descriptor vector.
func (t *Tree) Predict(x []float64) float64 {
	i := 0
	for {
		nd := &t.Nodes[i]
		if nd.Feature < 0 {
			return nd.Value
		}
		if x[nd.Feature] <= nd.Threshold {
			i = nd.Left
		} else {
			i = nd.Right
		}
	}
}

func meanAt(ys []float64, idx []int) float64 {
	s := 0.0
	for _, i := range idx {
		s += ys[i]
	}
	return s / float64(len(idx))
}

// buildTree fits one tree on the bootstrap sample (indices into xs/ys,
// duplicates allowed).
func buildTree(xs [][]float64, ys []float64, sample []int, maxDepth, minSamplesSplit int) *Tree {
	t := &Tree{}
	grow(t, xs, ys, sample, 0, maxDepth, minSamplesSplit)
	return t
}

// grow appends a node for the sample and returns its index.  Splits minimise
// the summed squared error of the two sides, evaluated with prefix sums over
// the per-feature sorted order; thresholds are midpoints between distinct
// adjacent values.
func grow(t *Tree, xs [][]float64, ys []float64, sample []int, depth, maxDepth, minSamplesSplit int) int {
	t.Nodes = append(t.Nodes, Node{Feature: -1, Left: -1, Right: -1})
	ni := len(t.Nodes) - 1
	t.Nodes[ni].Value = meanAt(ys, sample)

	if depth >= maxDepth || len(sample) < minSamplesSplit {
		return ni
	}
	homogeneous := true
	for _, i := range sample {
		if ys[i] != ys[sample[0]] {
			homogeneous = false
			break
		}
	}
	if homogeneous {
		return ni
	}

	nFeatures := len(xs[0])
	bestFeature := -1
	bestThreshold := 0.0
	bestScore := math.Inf(1)
	order := make([]int, len(sample))
	for f := 0; f < nFeatures; f++ {
		copy(order, sample)
		sort.Slice(order, func(a, b int) bool {
			if xs[order[a]][f] != xs[order[b]][f] {
				return xs[order[a]][f] < xs[order[b]][f]
			}
			return order[a] < order[b]
		})
		totalSum := 0.0
		totalSq := 0.0
		for _, i := range order {
			totalSum += ys[i]
			totalSq += ys[i] * ys[i]
		}
		leftSum := 0.0
		leftSq := 0.0
		n := len(order)
		for k := 0; k < n-1; k++ {
			i := order[k]
			leftSum += ys[i]
			leftSq += ys[i] * ys[i]
			if xs[order[k+1]][f] == xs[i][f] {
				continue
			}
			nl := float64(k + 1)
			nr := float64(n - k - 1)
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if sse < bestScore {
				bestScore = sse
				bestFeature = f
				bestThreshold = (xs[i][f] + xs[order[k+1]][f]) / 2.0
			}
		}
	}
	if bestFeature < 0 {
		return ni
	}

	var leftIdx, rightIdx []int
	for _, i := range sample {
		if xs[i][bestFeature] <= bestThreshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return ni
	}

	t.Nodes[ni].Feature = bestFeature
	t.Nodes[ni].Threshold = bestThreshold
	left := grow(t, xs, ys, leftIdx, depth+1, maxDepth, minSamplesSplit)
	right := grow(t, xs, ys, rightIdx, depth+1, maxDepth, minSamplesSplit)
	t.Nodes[ni].Left = left
	t.Nodes[ni].Right = right
	return ni
}

// ─────────────────────────────────────────────────────────────────────────────
// Forest
// ─────────────────────────────────────────────────────────────────────────────

// Forest is a bagged ensemble of regression trees; predictions average the
// per-tree outputs.
type Forest struct {
	Trees []*Tree `json:"trees"`
}

// Predict returns the ensemble mean for one descriptor vector.
func (f *Forest) Predict(x []float64) float64 {
	s := 0.0
	for _, t := range f.Trees {
		s += t.Predict(x)
	}
	return s / float64(len(f.Trees))
}

// FitForest fits nTrees trees, each on its own bootstrap sample.  Each tree
// derives its PRNG from the forest seed and the tree index, so trees are
// independent of training order and the whole fit is reproducible.
func FitForest(xs [][]float64, ys []float64, nTrees, maxDepth, minSamplesSplit int, seed uint64) *Forest {
	trees := make([]*Tree, 0, nTrees)
	for t := 0; t < nTrees; t++ {
		treeSeed := seed ^ (uint64(t+1) * 0x9E3779B97F4A7C15)
		rng := NewSplitMix64(treeSeed)
		n := len(xs)
		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		trees = append(trees, buildTree(xs, ys, sample, maxDepth, minSamplesSplit))
	}
	return &Forest{Trees: trees}
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics
// ─────────────────────────────────────────────────────────────────────────────

// R2Score returns the coefficient of determination; 0 when the targets have
// zero variance.
func R2Score(yTrue, yPred []float64) float64 {
	my := 0.0
	for _, y := range yTrue {
		my += y
	}
	my /= float64(len(yTrue))
	ssRes := 0.0
	ssTot := 0.0
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		ssRes += d * d
		t := yTrue[i] - my
		ssTot += t * t
	}
	if ssTot == 0.0 {
		return 0.0
	}
	return 1.0 - ssRes/ssTot
}

// RMSE returns the root mean squared error.
func RMSE(yTrue, yPred []float64) float64 {
	s := 0.0
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		s += d * d
	}
	return math.Sqrt(s / float64(len(yTrue)))
}
