package qsar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscreen/molscreen/internal/dataset"
	"github.com/molscreen/molscreen/internal/domain/chem"
	"github.com/molscreen/molscreen/pkg/errors"
)

func TestTrain_InputValidation(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		_, err := Train(nil, nil, TrainOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeTrainingFailed))
	})

	t.Run("length mismatch", func(t *testing.T) {
		xs := [][]float64{make([]float64, chem.NumFeatures)}
		_, err := Train(xs, []float64{1, 2}, TrainOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeTrainingFailed))
	})

	t.Run("wrong feature width", func(t *testing.T) {
		_, err := Train([][]float64{{1, 2}}, []float64{1}, TrainOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeFeatureMismatch))
	})

	t.Run("test fraction too large", func(t *testing.T) {
		xs := [][]float64{make([]float64, chem.NumFeatures)}
		_, err := Train(xs, []float64{1}, TrainOptions{TestFraction: 1.5})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeTrainingFailed))
	})
}

func TestTrain_DefaultsApplied(t *testing.T) {
	t.Parallel()

	xs := make([][]float64, 10)
	ys := make([]float64, 10)
	for i := range xs {
		xs[i] = make([]float64, chem.NumFeatures)
		xs[i][0] = float64(i)
		ys[i] = float64(i) * 0.5
	}
	m, err := Train(xs, ys, TrainOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTrees, m.Hyperparams.Trees)
	assert.Equal(t, DefaultMaxDepth, m.Hyperparams.MaxDepth)
	assert.Equal(t, DefaultMinSamplesSplit, m.Hyperparams.MinSamplesSplit)
	assert.Equal(t, DefaultSeed, m.Hyperparams.Seed)
	assert.Equal(t, 8, m.Metrics.NumTrain)
	assert.Equal(t, 2, m.Metrics.NumTest)
	assert.False(t, m.CreatedAt.IsZero())
}

// buildTrainingSet parses the bundled dataset into descriptor vectors.
func buildTrainingSet(t *testing.T) ([][]float64, []float64) {
	t.Helper()
	rows, skipped, err := dataset.LoadEmbedded()
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Len(t, rows, 96)

	xs := make([][]float64, 0, len(rows))
	ys := make([]float64, 0, len(rows))
	for _, row := range rows {
		mol, err := chem.ParseSMILES(row.SMILES)
		require.NoError(t, err, "row %q", row.Name)
		xs = append(xs, chem.Descriptors(mol))
		ys = append(ys, row.LogS)
	}
	return xs, ys
}

func TestTrain_BundledDatasetReference(t *testing.T) {
	if testing.Short() {
		t.Skip("full forest fit")
	}
	t.Parallel()

	xs, ys := buildTrainingSet(t)
	m, err := Train(xs, ys, TrainOptions{})
	require.NoError(t, err)

	// reference metrics for the default seed on the bundled dataset
	assert.Equal(t, 77, m.Metrics.NumTrain)
	assert.Equal(t, 19, m.Metrics.NumTest)
	assert.InDelta(t, 0.967804, m.Metrics.TrainR2, 1e-6)
	assert.InDelta(t, 0.280017, m.Metrics.TrainRMSE, 1e-6)
	assert.InDelta(t, 0.900222, m.Metrics.TestR2, 1e-6)
	assert.InDelta(t, 0.538907, m.Metrics.TestRMSE, 1e-6)

	p, err := NewPredictor(m)
	require.NoError(t, err)

	tests := []struct {
		name   string
		smiles string
		want   float64
	}{
		{"benzene", "c1ccccc1", -1.680430},
		{"aspirin", "CC(=O)Oc1ccccc1C(=O)O", -1.837525},
		{"ethanol", "CCO", 0.919840},
		{"naphthalene", "c1ccc2ccccc2c1", -3.217300},
		{"octane unseen", "CCCCCCCC", -3.802300},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mol, err := chem.ParseSMILES(tt.smiles)
			require.NoError(t, err)
			pred, err := p.PredictMolecule(mol)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, pred.LogS, 1e-6)
		})
	}
}

func TestTrain_HeldOutQuality(t *testing.T) {
	if testing.Short() {
		t.Skip("full forest fit")
	}
	t.Parallel()

	xs, ys := buildTrainingSet(t)
	m, err := Train(xs, ys, TrainOptions{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.Metrics.TestR2, 0.80)
	assert.LessOrEqual(t, m.Metrics.TestRMSE, 0.80)
}
