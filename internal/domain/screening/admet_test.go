package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictADMET_Classifications(t *testing.T) {
	t.Parallel()

	t.Run("aspirin-like profile", func(t *testing.T) {
		p := Properties{MolWt: 180.16, LogP: 1.38, HBD: 1, HBA: 3, TPSA: 63.6, RotatableBonds: 3}
		got := PredictADMET(p)
		assert.Equal(t, PermeabilityHigh, got.Absorption.Caco2Class)
		assert.True(t, got.Absorption.BioavailabilityRo5)
		assert.True(t, got.Distribution.BBBPenetrant)
		assert.Equal(t, VdMedium, got.Distribution.VdClass)
		assert.Equal(t, ClearanceLikely, got.Excretion.RenalClearance)
		assert.InDelta(t, 1.0, got.OverallScore, 1e-12)
	})

	t.Run("polar zwitterion-like profile", func(t *testing.T) {
		p := Properties{MolWt: 350, LogP: -1.5, TPSA: 150, HBD: 4, HBA: 8}
		got := PredictADMET(p)
		assert.Equal(t, PermeabilityLow, got.Absorption.Caco2Class)
		assert.False(t, got.Distribution.BBBPenetrant)
		assert.Equal(t, VdLow, got.Distribution.VdClass)
	})

	t.Run("greasy heavyweight profile", func(t *testing.T) {
		p := Properties{MolWt: 520, LogP: 6.2, TPSA: 40}
		got := PredictADMET(p)
		assert.Equal(t, PermeabilityHigh, got.Absorption.Caco2Class)
		assert.False(t, got.Absorption.BioavailabilityRo5)
		assert.False(t, got.Distribution.BBBPenetrant)
		assert.Equal(t, VdHigh, got.Distribution.VdClass)
		assert.Equal(t, ClearanceUnlikely, got.Excretion.RenalClearance)
	})
}

func TestPredictADMET_VdBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		logP float64
		want string
	}{
		{"well below one", -2, VdLow},
		{"just below one", 0.99, VdLow},
		{"exactly one", 1, VdMedium},
		{"exactly three", 3, VdMedium},
		{"above three", 3.01, VdHigh},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PredictADMET(Properties{LogP: tt.logP})
			assert.Equal(t, tt.want, got.Distribution.VdClass)
		})
	}
}

func TestPredictADMET_OverallScore(t *testing.T) {
	t.Parallel()

	t.Run("every penalty applies", func(t *testing.T) {
		p := Properties{MolWt: 600, LogP: -1, TPSA: 150, HBD: 6, HBA: 11, RotatableBonds: 12}
		got := PredictADMET(p)
		// low caco2 (-0.10), fails Ro5 (-0.15), non-BBB (-0.05),
		// unlikely renal (-0.05)
		assert.InDelta(t, 0.65, got.OverallScore, 1e-12)
	})

	t.Run("score stays within unit interval", func(t *testing.T) {
		got := PredictADMET(Properties{})
		assert.GreaterOrEqual(t, got.OverallScore, 0.0)
		assert.LessOrEqual(t, got.OverallScore, 1.0)
	})
}
