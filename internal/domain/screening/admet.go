package screening

// Permeability and clearance classes.
const (
	PermeabilityHigh = "high"
	PermeabilityLow  = "low"

	VdLow    = "low"
	VdMedium = "medium"
	VdHigh   = "high"

	ClearanceLikely   = "likely"
	ClearanceUnlikely = "unlikely"
)

// Absorption groups the oral absorption classifications.
type Absorption struct {
	// Caco2Class is high when the molecule is lipophilic enough (LogP > 0)
	// and not too polar (TPSA < 140).
	Caco2Class string `json:"caco2_class"`

	// BioavailabilityRo5 is Lipinski Rule of Five compliance.
	BioavailabilityRo5 bool `json:"bioavailability_ro5"`
}

// Distribution groups the tissue distribution classifications.
type Distribution struct {
	// BBBPenetrant flags likely blood-brain barrier penetration
	// (MW < 450, LogP in [0, 3], TPSA < 90).
	BBBPenetrant bool `json:"bbb_penetrant"`

	// VdClass buckets the expected volume of distribution by LogP.
	VdClass string `json:"vd_class"`
}

// Excretion groups the clearance classifications.
type Excretion struct {
	// RenalClearance is likely for small hydrophilic molecules
	// (MW < 300, LogP < 2).
	RenalClearance string `json:"renal_clearance"`
}

// ADMETResult is the rule-based ADMET classification.  Structural-alert
// categories (hERG, Ames, hepatotoxicity, CYP liability) require substructure
// matching and are not part of this property-rule subset.
type ADMETResult struct {
	Absorption   Absorption   `json:"absorption"`
	Distribution Distribution `json:"distribution"`
	Excretion    Excretion    `json:"excretion"`

	// OverallScore is a 0-1 drug-likeness score; higher is better.
	OverallScore float64 `json:"overall_score"`
}

// PredictADMET classifies a molecule's ADMET profile from its properties.
func PredictADMET(p Properties) ADMETResult {
	lip := CheckLipinski(p)

	absorption := Absorption{
		Caco2Class:         PermeabilityLow,
		BioavailabilityRo5: lip.Passes,
	}
	if p.LogP > 0 && p.TPSA < 140 {
		absorption.Caco2Class = PermeabilityHigh
	}

	distribution := Distribution{
		BBBPenetrant: p.MolWt < 450 && p.LogP >= 0 && p.LogP <= 3 && p.TPSA < 90,
	}
	switch {
	case p.LogP < 1:
		distribution.VdClass = VdLow
	case p.LogP <= 3:
		distribution.VdClass = VdMedium
	default:
		distribution.VdClass = VdHigh
	}

	excretion := Excretion{RenalClearance: ClearanceUnlikely}
	if p.MolWt < 300 && p.LogP < 2 {
		excretion.RenalClearance = ClearanceLikely
	}

	return ADMETResult{
		Absorption:   absorption,
		Distribution: distribution,
		Excretion:    excretion,
		OverallScore: overallScore(absorption, distribution, excretion),
	}
}

// overallScore starts at 1.0 and subtracts a penalty per unfavourable
// classification, clamped to [0, 1].
func overallScore(a Absorption, d Distribution, e Excretion) float64 {
	score := 1.0
	if a.Caco2Class == PermeabilityLow {
		score -= 0.10
	}
	if !a.BioavailabilityRo5 {
		score -= 0.15
	}
	if !d.BBBPenetrant {
		score -= 0.05
	}
	if e.RenalClearance == ClearanceUnlikely {
		score -= 0.05
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
