package qsar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Predict(t *testing.T) {
	t.Parallel()

	// hand-built stump: x[0] <= 2 -> 1.0, else -1.0
	tree := &Tree{Nodes: []Node{
		{Feature: 0, Threshold: 2.0, Left: 1, Right: 2},
		{Feature: -1, Value: 1.0},
		{Feature: -1, Value: -1.0},
	}}
	assert.Equal(t, 1.0, tree.Predict([]float64{1.5}))
	assert.Equal(t, 1.0, tree.Predict([]float64{2.0}))
	assert.Equal(t, -1.0, tree.Predict([]float64{2.5}))
}

func TestFitForest_TwoClusterFixture(t *testing.T) {
	t.Parallel()

	xs := [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}}
	ys := []float64{0.0, 0.1, 0.2, 0.3, 5.0, 5.1, 5.2, 5.3}
	f := FitForest(xs, ys, 10, 3, 2, 7)
	require.Len(t, f.Trees, 10)

	assert.InDelta(t, 0.050000, f.Predict([]float64{0.5}), 1e-9)
	assert.InDelta(t, 0.270000, f.Predict([]float64{3.5}), 1e-9)
	assert.InDelta(t, 5.190000, f.Predict([]float64{6.0}), 1e-9)

	// first tree structure is pinned by the seed
	assert.Len(t, f.Trees[0].Nodes, 11)
	assert.Equal(t, 0, f.Trees[0].Nodes[0].Feature)
	assert.InDelta(t, 3.5, f.Trees[0].Nodes[0].Threshold, 1e-9)
}

func TestFitForest_Reproducible(t *testing.T) {
	t.Parallel()

	xs := [][]float64{{0, 1}, {1, 0}, {2, 2}, {3, 1}, {4, 0}, {5, 2}}
	ys := []float64{1, 2, 3, 4, 5, 6}
	a := FitForest(xs, ys, 5, 4, 2, 42)
	b := FitForest(xs, ys, 5, 4, 2, 42)
	for i := range a.Trees {
		assert.Equal(t, a.Trees[i].Nodes, b.Trees[i].Nodes, "tree %d", i)
	}

	// a different seed draws different bootstrap samples
	c := FitForest(xs, ys, 5, 4, 2, 43)
	same := true
	for i := range a.Trees {
		if len(a.Trees[i].Nodes) != len(c.Trees[i].Nodes) {
			same = false
			break
		}
	}
	if same {
		equal := true
		for i := range a.Trees {
			for j := range a.Trees[i].Nodes {
				if a.Trees[i].Nodes[j] != c.Trees[i].Nodes[j] {
					equal = false
					break
				}
			}
		}
		same = equal
	}
	assert.False(t, same)
}

func TestBuildTree_Leaves(t *testing.T) {
	t.Parallel()

	t.Run("homogeneous targets stay a leaf", func(t *testing.T) {
		xs := [][]float64{{0}, {1}, {2}}
		tree := buildTree(xs, []float64{3, 3, 3}, []int{0, 1, 2}, 10, 2)
		require.Len(t, tree.Nodes, 1)
		assert.Equal(t, -1, tree.Nodes[0].Feature)
		assert.Equal(t, 3.0, tree.Nodes[0].Value)
	})

	t.Run("depth limit", func(t *testing.T) {
		xs := [][]float64{{0}, {1}, {2}, {3}}
		tree := buildTree(xs, []float64{0, 1, 2, 3}, []int{0, 1, 2, 3}, 0, 2)
		require.Len(t, tree.Nodes, 1)
		assert.InDelta(t, 1.5, tree.Nodes[0].Value, 1e-12)
	})

	t.Run("identical feature values cannot split", func(t *testing.T) {
		xs := [][]float64{{1}, {1}, {1}}
		tree := buildTree(xs, []float64{0, 1, 2}, []int{0, 1, 2}, 10, 2)
		require.Len(t, tree.Nodes, 1)
		assert.Equal(t, -1, tree.Nodes[0].Feature)
	})

	t.Run("below min samples", func(t *testing.T) {
		xs := [][]float64{{0}, {1}}
		tree := buildTree(xs, []float64{0, 1}, []int{0}, 10, 2)
		require.Len(t, tree.Nodes, 1)
	})
}

func TestR2Score(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.97, R2Score([]float64{1, 2, 3}, []float64{1.1, 1.9, 3.2}), 1e-12)
	assert.Equal(t, 1.0, R2Score([]float64{1, 2, 3}, []float64{1, 2, 3}))
	// zero target variance
	assert.Equal(t, 0.0, R2Score([]float64{2, 2, 2}, []float64{1, 2, 3}))
}

func TestRMSE(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.1414213562, RMSE([]float64{1, 2, 3}, []float64{1.1, 1.9, 3.2}), 1e-9)
	assert.Equal(t, 0.0, RMSE([]float64{5}, []float64{5}))
}
