package qsar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscreen/molscreen/internal/domain/chem"
	"github.com/molscreen/molscreen/pkg/errors"
)

func TestInterpretLogS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		logS float64
		want string
	}{
		{"well above highly soluble", 0.5, LabelHighlySoluble},
		{"exactly highly soluble", -1.0, LabelHighlySoluble},
		{"soluble", -1.5, LabelSoluble},
		{"exactly soluble", -2.0, LabelSoluble},
		{"moderately soluble", -2.5, LabelModeratelySoluble},
		{"slightly soluble", -3.5, LabelSlightlySoluble},
		{"exactly slightly soluble", -4.0, LabelSlightlySoluble},
		{"poorly soluble", -4.01, LabelPoorlySoluble},
		{"very poorly soluble", -8.0, LabelPoorlySoluble},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, InterpretLogS(tt.logS))
		})
	}
}

// constantModel builds a valid single-leaf model that always predicts v.
func constantModel(v float64) *Model {
	names := make([]string, len(chem.FeatureNames))
	copy(names, chem.FeatureNames)
	return &Model{
		FormatVersion: ModelFormatVersion,
		FeatureNames:  names,
		Forest: &Forest{Trees: []*Tree{
			{Nodes: []Node{{Feature: -1, Left: -1, Right: -1, Value: v}}},
		}},
	}
}

func TestNewPredictor(t *testing.T) {
	t.Parallel()

	t.Run("nil model", func(t *testing.T) {
		_, err := NewPredictor(nil)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeModelNotLoaded))
	})

	t.Run("model without trees", func(t *testing.T) {
		m := constantModel(0)
		m.Forest.Trees = nil
		_, err := NewPredictor(m)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeModelCorrupt))
	})

	t.Run("feature name drift", func(t *testing.T) {
		m := constantModel(0)
		m.FeatureNames[0] = "MolecularWeight"
		_, err := NewPredictor(m)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeFeatureMismatch))
	})

	t.Run("valid model", func(t *testing.T) {
		p, err := NewPredictor(constantModel(-2.5))
		require.NoError(t, err)
		assert.NotNil(t, p.Model())
	})
}

func TestPredictor_Predict(t *testing.T) {
	t.Parallel()

	p, err := NewPredictor(constantModel(-2.0))
	require.NoError(t, err)

	features := make([]float64, chem.NumFeatures)
	features[0] = 100.0 // MolWt

	pred, err := p.Predict(features)
	require.NoError(t, err)
	assert.InDelta(t, -2.0, pred.LogS, 1e-12)
	assert.InDelta(t, 0.01, pred.SolubilityMolL, 1e-12)
	assert.InDelta(t, 1.0, pred.SolubilityMgML, 1e-9) // 0.01 mol/L * 100 g/mol
	assert.Equal(t, LabelSoluble, pred.Label)
}

func TestPredictor_FeatureCountMismatch(t *testing.T) {
	t.Parallel()

	p, err := NewPredictor(constantModel(0))
	require.NoError(t, err)

	_, err = p.Predict([]float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeFeatureMismatch))
}

func TestPredictor_PredictMolecule(t *testing.T) {
	t.Parallel()

	p, err := NewPredictor(constantModel(-0.5))
	require.NoError(t, err)

	mol, err := chem.ParseSMILES("CCO")
	require.NoError(t, err)

	pred, err := p.PredictMolecule(mol)
	require.NoError(t, err)
	assert.Equal(t, LabelHighlySoluble, pred.Label)
	assert.InDelta(t, math.Pow(10, -0.5)*46.069, pred.SolubilityMgML, 1e-6)
}
