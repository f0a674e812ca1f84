package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// descriptorCase pins the full descriptor vector for a reference molecule.
// Vectors follow FeatureNames order: MolWt, LogP, NumHDonors, NumHAcceptors,
// TPSA, NumRotatableBonds, NumAromaticRings, NumAliphaticRings,
// NumSaturatedRings.
type descriptorCase struct {
	name   string
	smiles string
	want   []float64
}

var descriptorCases = []descriptorCase{
	{"benzene", "c1ccccc1", []float64{78.1140, 1.8018, 0, 0, 0, 0, 1, 0, 0}},
	{"toluene", "Cc1ccccc1", []float64{92.1410, 2.2806, 0, 0, 0, 0, 1, 0, 0}},
	{"ethanol", "CCO", []float64{46.0690, 0.0651, 1, 1, 20.23, 0, 0, 0, 0}},
	{"aspirin", "CC(=O)Oc1ccccc1C(=O)O", []float64{180.1590, 1.3766, 1, 3, 63.60, 3, 1, 0, 0}},
	{"caffeine", "Cn1cnc2c1c(=O)n(C)c(=O)n2C", []float64{194.1940, -0.0452, 0, 3, 60.26, 0, 2, 0, 0}},
	{"naphthalene", "c1ccc2ccccc2c1", []float64{128.1740, 3.1188, 0, 0, 0, 0, 2, 0, 0}},
	{"pyridine", "c1ccncc1", []float64{79.1020, 0.6953, 0, 1, 12.89, 0, 1, 0, 0}},
	{"cyclohexane", "C1CCCCC1", []float64{84.1620, 2.2296, 0, 0, 0, 0, 0, 1, 1}},
	{"cyclohexene", "C1=CCCCC1", []float64{82.1460, 2.3610, 0, 0, 0, 0, 0, 1, 0}},
	{"acetic acid", "CC(=O)O", []float64{60.0520, -0.2387, 1, 1, 37.30, 0, 0, 0, 0}},
	{"nitrobenzene", "[O-][N+](=O)c1ccccc1", []float64{123.1110, 1.6690, 0, 2, 51.81, 1, 1, 0, 0}},
	{"acetonitrile", "CC#N", []float64{41.0530, -0.0271, 0, 1, 23.79, 0, 0, 0, 0}},
	{"urea", "NC(N)=O", []float64{60.0560, -2.9830, 2, 1, 69.11, 0, 0, 0, 0}},
	{"paracetamol", "CC(=O)Nc1ccc(O)cc1", []float64{151.1650, 0.2363, 2, 2, 49.33, 2, 1, 0, 0}},
	{"chlorobenzene", "Clc1ccccc1", []float64{112.5590, 2.4914, 0, 0, 0, 0, 1, 0, 0}},
	{"phenol", "Oc1ccccc1", []float64{94.1130, 1.5017, 1, 1, 20.23, 0, 1, 0, 0}},
	{"diethyl ether", "CCOCC", []float64{74.1230, 0.8455, 0, 1, 9.23, 2, 0, 0, 0}},
	{"pyrrole", "c1cc[nH]c1", []float64{67.0910, 0.4969, 1, 0, 15.79, 0, 1, 0, 0}},
	{"biphenyl", "c1ccc(-c2ccccc2)cc1", []float64{154.2120, 3.7194, 0, 0, 0, 1, 2, 0, 0}},
	{"menthol", "CC(C)C1CCC(C)CC1O", []float64{156.2690, 2.9393, 1, 1, 20.23, 1, 0, 1, 1}},
	{"styrene", "C=Cc1ccccc1", []float64{104.1520, 2.7836, 0, 0, 0, 1, 1, 0, 0}},
	{"indole", "c1ccc2[nH]ccc2c1", []float64{117.1510, 1.8139, 1, 0, 15.79, 0, 1, 0, 0}},
}

func TestDescriptors_ReferenceMolecules(t *testing.T) {
	t.Parallel()

	for _, tc := range descriptorCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mol, err := ParseSMILES(tc.smiles)
			require.NoError(t, err)
			got := Descriptors(mol)
			require.Len(t, got, NumFeatures)
			for fi, name := range FeatureNames {
				assert.InDelta(t, tc.want[fi], got[fi], 1e-4,
					"%s: %s", tc.name, name)
			}
		})
	}
}

func TestFeatureNames_Layout(t *testing.T) {
	t.Parallel()

	assert.Len(t, FeatureNames, NumFeatures)
	assert.Equal(t, "MolWt", FeatureNames[0])
	assert.Equal(t, "LogP", FeatureNames[1])
	assert.Equal(t, "NumSaturatedRings", FeatureNames[8])
}

func TestMolecularWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		smiles string
		want   float64
	}{
		{"methane", "C", 16.043},
		{"water bracket", "[OH2]", 18.015},
		{"ethanol", "CCO", 46.069},
		{"benzene", "c1ccccc1", 78.114},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mol, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, MolecularWeight(mol), 1e-3)
		})
	}
}

func TestHBondAcceptors_Exclusions(t *testing.T) {
	t.Parallel()

	t.Run("carboxylic OH is not an acceptor", func(t *testing.T) {
		mol, err := ParseSMILES("CC(=O)O")
		require.NoError(t, err)
		// only the carbonyl oxygen counts
		assert.Equal(t, 1, HBondAcceptors(mol))
	})

	t.Run("amide nitrogen is not an acceptor", func(t *testing.T) {
		mol, err := ParseSMILES("CC(=O)NC")
		require.NoError(t, err)
		// carbonyl O yes, amide N no
		assert.Equal(t, 1, HBondAcceptors(mol))
	})

	t.Run("pyrrole nitrogen is not an acceptor", func(t *testing.T) {
		mol, err := ParseSMILES("c1cc[nH]c1")
		require.NoError(t, err)
		assert.Equal(t, 0, HBondAcceptors(mol))
	})

	t.Run("pyridine nitrogen is an acceptor", func(t *testing.T) {
		mol, err := ParseSMILES("c1ccncc1")
		require.NoError(t, err)
		assert.Equal(t, 1, HBondAcceptors(mol))
	})

	t.Run("charged nitro group", func(t *testing.T) {
		mol, err := ParseSMILES("[O-][N+](=O)c1ccccc1")
		require.NoError(t, err)
		// both oxygens count, the positive nitrogen does not
		assert.Equal(t, 2, HBondAcceptors(mol))
	})
}

func TestRotatableBonds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		smiles string
		want   int
	}{
		{"ethane terminal only", "CC", 0},
		{"butane", "CCCC", 1},
		{"diethyl ether", "CCOCC", 2},
		{"nitrile axis excluded", "CCC#N", 0},
		{"ring bonds excluded", "C1CCCCC1", 0},
		{"biphenyl pivot", "c1ccc(-c2ccccc2)cc1", 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mol, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)
			assert.Equal(t, tt.want, RotatableBonds(mol))
		})
	}
}

func TestRingCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		smiles              string
		arom, aliph, satRng int
	}{
		{"benzene", "c1ccccc1", 1, 0, 0},
		{"cyclohexane", "C1CCCCC1", 0, 1, 1},
		{"cyclohexene", "C1=CCCCC1", 0, 1, 0},
		{"naphthalene", "c1ccc2ccccc2c1", 2, 0, 0},
		// the aliphatic ring shares two aromatic carbons, so it does not
		// count as saturated
		{"tetralin", "C1CCc2ccccc2C1", 1, 1, 0},
		{"acyclic", "CCO", 0, 0, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mol, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)
			ar, al, sat := RingCounts(mol)
			assert.Equal(t, tt.arom, ar, "aromatic")
			assert.Equal(t, tt.aliph, al, "aliphatic")
			assert.Equal(t, tt.satRng, sat, "saturated")
		})
	}
}

func TestTPSA_Fragments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		smiles string
		want   float64
	}{
		{"hydroxyl", "CO", 20.23},
		{"ether", "COC", 9.23},
		{"carbonyl", "CC(C)=O", 17.07},
		{"primary amine", "CN", 26.02},
		{"secondary amine", "CNC", 12.03},
		{"tertiary amine", "CN(C)C", 3.24},
		{"nitrile", "CC#N", 23.79},
		{"aromatic N", "c1ccncc1", 12.89},
		{"aromatic NH", "c1cc[nH]c1", 15.79},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mol, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, TPSA(mol), 1e-9)
		})
	}
}
