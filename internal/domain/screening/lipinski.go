// Package screening implements drug-likeness rules and rule-based ADMET
// classification on top of the chem descriptor set.
package screening

import (
	"github.com/molscreen/molscreen/internal/domain/chem"
)

// Lipinski Rule of Five thresholds.
const (
	MaxMolWt = 500.0
	MaxLogP  = 5.0
	MaxHBD   = 5
	MaxHBA   = 10
)

// Veber oral bioavailability thresholds.
const (
	MaxTPSA           = 140.0
	MaxRotatableBonds = 10
)

// Properties is the descriptor subset the screening rules consume.
type Properties struct {
	MolWt          float64 `json:"mol_wt"`
	LogP           float64 `json:"log_p"`
	HBD            int     `json:"hbd"`
	HBA            int     `json:"hba"`
	TPSA           float64 `json:"tpsa"`
	RotatableBonds int     `json:"rotatable_bonds"`
	AromaticRings  int     `json:"aromatic_rings"`
	AliphaticRings int     `json:"aliphatic_rings"`
	SaturatedRings int     `json:"saturated_rings"`
}

// PropertiesOf computes the screening properties for a parsed molecule.
func PropertiesOf(mol *chem.Molecule) Properties {
	ar, al, sat := chem.RingCounts(mol)
	return Properties{
		MolWt:          chem.MolecularWeight(mol),
		LogP:           chem.LogP(mol),
		HBD:            chem.HBondDonors(mol),
		HBA:            chem.HBondAcceptors(mol),
		TPSA:           chem.TPSA(mol),
		RotatableBonds: chem.RotatableBonds(mol),
		AromaticRings:  ar,
		AliphaticRings: al,
		SaturatedRings: sat,
	}
}

// LipinskiResult reports Rule of Five compliance with the violated criteria.
type LipinskiResult struct {
	Passes     bool     `json:"passes"`
	Violations []string `json:"violations"`
}

// CheckLipinski applies Lipinski's Rule of Five.
func CheckLipinski(p Properties) LipinskiResult {
	var violations []string
	if p.MolWt > MaxMolWt {
		violations = append(violations, "MW > 500")
	}
	if p.LogP > MaxLogP {
		violations = append(violations, "LogP > 5")
	}
	if p.HBD > MaxHBD {
		violations = append(violations, "HBD > 5")
	}
	if p.HBA > MaxHBA {
		violations = append(violations, "HBA > 10")
	}
	return LipinskiResult{Passes: len(violations) == 0, Violations: violations}
}

// VeberResult reports Veber rule compliance.
type VeberResult struct {
	Passes     bool     `json:"passes"`
	Violations []string `json:"violations"`
}

// CheckVeber applies the Veber oral bioavailability rules.
func CheckVeber(p Properties) VeberResult {
	var violations []string
	if p.TPSA > MaxTPSA {
		violations = append(violations, "TPSA > 140")
	}
	if p.RotatableBonds > MaxRotatableBonds {
		violations = append(violations, "RotatableBonds > 10")
	}
	return VeberResult{Passes: len(violations) == 0, Violations: violations}
}

// Assessment is the combined drug-likeness verdict.
type Assessment struct {
	Properties Properties     `json:"properties"`
	Lipinski   LipinskiResult `json:"lipinski"`
	Veber      VeberResult    `json:"veber"`
	ADMET      ADMETResult    `json:"admet"`

	// DrugLike is true when both Lipinski and Veber pass.
	DrugLike bool `json:"drug_like"`
}

// Assess runs the full rule set on a parsed molecule.
func Assess(mol *chem.Molecule) Assessment {
	p := PropertiesOf(mol)
	lip := CheckLipinski(p)
	veb := CheckVeber(p)
	return Assessment{
		Properties: p,
		Lipinski:   lip,
		Veber:      veb,
		ADMET:      PredictADMET(p),
		DrugLike:   lip.Passes && veb.Passes,
	}
}
