package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogP_ReferenceValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		smiles string
		want   float64
	}{
		{"benzene", "c1ccccc1", 1.8018},
		{"toluene", "Cc1ccccc1", 2.2806},
		{"ethanol", "CCO", 0.0651},
		{"urea", "NC(N)=O", -2.9830},
		{"chlorobenzene", "Clc1ccccc1", 2.4914},
		{"naphthalene", "c1ccc2ccccc2c1", 3.1188},
		{"caffeine", "Cn1cnc2c1c(=O)n(C)c(=O)n2C", -0.0452},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mol, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, LogP(mol), 1e-4)
		})
	}
}

func TestLogP_Trends(t *testing.T) {
	t.Parallel()

	logpOf := func(smiles string) float64 {
		mol, err := ParseSMILES(smiles)
		require.NoError(t, err)
		return LogP(mol)
	}

	// chain growth adds lipophilicity
	assert.Greater(t, logpOf("CCCCCC"), logpOf("CCC"))
	// hydroxylation reduces it
	assert.Less(t, logpOf("Oc1ccccc1"), logpOf("c1ccccc1"))
	// halogenation raises it, heavier halogen more so
	assert.Greater(t, logpOf("Clc1ccccc1"), logpOf("c1ccccc1"))
	assert.Greater(t, logpOf("Brc1ccccc1"), logpOf("Clc1ccccc1"))
}

func TestClassifyLogP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		smiles string
		atom   int
		want   logPClass
	}{
		{"aromatic CH", "c1ccccc1", 0, classCArH},
		{"substituted aromatic C", "Cc1ccccc1", 1, classCArSub},
		{"sp3 C among carbons", "CCC", 1, classCSp3C},
		{"sp3 C next to O", "CCO", 1, classCSp3Het},
		{"carbonyl C", "CC(=O)O", 1, classCCarbonyl},
		{"vinyl C", "C=C", 0, classCSp2},
		{"amide N", "CC(=O)NC", 3, classNAmide},
		{"aliphatic N", "CN", 1, classNAliph},
		{"aromatic N", "c1ccncc1", 3, classNArom},
		{"hydroxyl O", "CO", 1, classOHydroxyl},
		{"ether O", "COC", 1, classOEther},
		{"carbonyl O", "CC(=O)C", 2, classOCarbonyl},
		{"chlorine", "CCl", 1, classCl},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mol, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)
			assert.Equal(t, tt.want, classifyLogP(mol, tt.atom))
		})
	}
}
