package qsar

import (
	"math"

	"github.com/molscreen/molscreen/internal/domain/chem"
	"github.com/molscreen/molscreen/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Solubility interpretation
// ─────────────────────────────────────────────────────────────────────────────

// logS thresholds for the qualitative solubility label.
const (
	ThresholdHighlySoluble     = -1.0
	ThresholdSoluble           = -2.0
	ThresholdModeratelySoluble = -3.0
	ThresholdSlightlySoluble   = -4.0
)

// Solubility labels.
const (
	LabelHighlySoluble     = "Highly soluble"
	LabelSoluble           = "Soluble"
	LabelModeratelySoluble = "Moderately soluble"
	LabelSlightlySoluble   = "Slightly soluble"
	LabelPoorlySoluble     = "Poorly soluble"
)

// InterpretLogS maps a predicted logS to its qualitative label.
func InterpretLogS(logS float64) string {
	switch {
	case logS >= ThresholdHighlySoluble:
		return LabelHighlySoluble
	case logS >= ThresholdSoluble:
		return LabelSoluble
	case logS >= ThresholdModeratelySoluble:
		return LabelModeratelySoluble
	case logS >= ThresholdSlightlySoluble:
		return LabelSlightlySoluble
	default:
		return LabelPoorlySoluble
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Predictor
// ─────────────────────────────────────────────────────────────────────────────

// Prediction is one solubility estimate.  LogS is log10 of the aqueous
// solubility in mol/L; the linear solubilities are derived from it and the
// molecular weight.
type Prediction struct {
	LogS           float64 `json:"log_s"`
	SolubilityMolL float64 `json:"solubility_mol_l"`
	SolubilityMgML float64 `json:"solubility_mg_ml"`
	Label          string  `json:"label"`
}

// Predictor scores descriptor vectors against one loaded model.  The model
// handle is injected explicitly; a Predictor is immutable and safe for
// concurrent use.
type Predictor struct {
	model *Model
}

// NewPredictor wraps a loaded model.  The model must be non-nil and valid.
func NewPredictor(model *Model) (*Predictor, error) {
	if model == nil {
		return nil, errors.New(errors.CodeModelNotLoaded, "predictor requires a model")
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return &Predictor{model: model}, nil
}

// Model returns the underlying model handle.
func (p *Predictor) Model() *Model {
	return p.model
}

// Predict scores one descriptor vector in chem.FeatureNames order.  The
// molecular weight feature converts logS into the linear solubilities.
func (p *Predictor) Predict(features []float64) (Prediction, error) {
	if len(features) != len(p.model.FeatureNames) {
		return Prediction{}, errors.Newf(errors.CodeFeatureMismatch,
			"descriptor vector has %d features, model expects %d",
			len(features), len(p.model.FeatureNames))
	}
	logS := p.model.Forest.Predict(features)
	molL := math.Pow(10, logS)
	molWt := features[0]
	return Prediction{
		LogS:           logS,
		SolubilityMolL: molL,
		SolubilityMgML: molL * molWt,
		Label:          InterpretLogS(logS),
	}, nil
}

// PredictMolecule computes descriptors for a parsed molecule and scores them.
func (p *Predictor) PredictMolecule(mol *chem.Molecule) (Prediction, error) {
	return p.Predict(chem.Descriptors(mol))
}
