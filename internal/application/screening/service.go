// Package screening provides the application-level screening service: it
// composes parsing, descriptor calculation, drug-likeness rules, and
// solubility prediction into screening reports consumed by the CLI and HTTP
// layers.
package screening

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/molscreen/molscreen/internal/dataset"
	"github.com/molscreen/molscreen/internal/domain/chem"
	domscreen "github.com/molscreen/molscreen/internal/domain/screening"
	"github.com/molscreen/molscreen/internal/domain/qsar"
	"github.com/molscreen/molscreen/internal/infrastructure/logging"
	"github.com/molscreen/molscreen/pkg/errors"
)

// Version is stamped into report metadata.
const Version = "1.0.0"

// PredictorProvider hands out the current solubility predictor.  The serve
// mode swaps predictors on model hot-reload, so the service resolves one per
// request instead of holding a predictor directly.
type PredictorProvider interface {
	Predictor() (*qsar.Predictor, error)
}

// StaticProvider wraps a fixed predictor.
type StaticProvider struct {
	P *qsar.Predictor
}

func (s StaticProvider) Predictor() (*qsar.Predictor, error) {
	if s.P == nil {
		return nil, errors.New(errors.CodeModelNotLoaded, "no predictor configured")
	}
	return s.P, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Service interface
// ─────────────────────────────────────────────────────────────────────────────

// Service defines the screening application operations.
type Service interface {
	Screen(ctx context.Context, input *ScreenInput) (*Report, error)
	ScreenBatch(ctx context.Context, input *BatchInput) (*BatchResult, error)
	Similar(ctx context.Context, input *SimilarInput) (*SimilarResult, error)
	Train(ctx context.Context, input *TrainInput) (*TrainResult, error)
}

// ScreenInput is one screening request.
type ScreenInput struct {
	SMILES string
	Name   string

	// SkipSolubility screens without the QSAR prediction, so no trained
	// model is required.
	SkipSolubility bool
}

// BatchEntry is one molecule in a batch request.
type BatchEntry struct {
	Name   string
	SMILES string
}

// BatchInput screens a list of molecules.  Invalid entries are skipped and
// reported, not fatal.
type BatchInput struct {
	Entries        []BatchEntry
	SkipSolubility bool
}

// BatchError records one skipped batch entry.
type BatchError struct {
	SMILES string `json:"smiles"`
	Name   string `json:"name,omitempty"`
	Error  string `json:"error"`
}

// BatchResult is the outcome of a batch screen.
type BatchResult struct {
	Reports []*Report    `json:"reports"`
	Skipped []BatchError `json:"skipped,omitempty"`
}

// SimilarInput ranks candidates against a query structure.
type SimilarInput struct {
	QuerySMILES string
	Candidates  []chem.Candidate
	TopK        int
}

// SimilarResult is a ranked similarity search outcome.
type SimilarResult struct {
	Query   string               `json:"query"`
	Hits    []chem.SimilarityHit `json:"hits"`
	Skipped int                  `json:"skipped"`
}

// TrainInput configures a training run.  Nil Rows trains on the bundled
// dataset.
type TrainInput struct {
	Rows       []dataset.Row
	Options    qsar.TrainOptions
	OutputPath string

	// SkippedRows counts dataset rows the loader already dropped as
	// malformed; it is folded into the training metrics alongside rows
	// skipped for unparseable SMILES.
	SkippedRows int
}

// TrainResult reports a completed training run.
type TrainResult struct {
	Metrics    qsar.TrainingMetrics `json:"metrics"`
	ModelPath  string               `json:"model_path"`
	Duration   time.Duration        `json:"duration"`
	NumRows    int                  `json:"num_rows"`
	NumSkipped int                  `json:"num_skipped"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Report record
// ─────────────────────────────────────────────────────────────────────────────

// PropertyValues carries the calculated descriptors.  The JSON keys are a
// compatibility surface; downstream consumers parse them by name.
type PropertyValues struct {
	MW             float64 `json:"MW"`
	LogP           float64 `json:"LogP"`
	HBD            int     `json:"HBD"`
	HBA            int     `json:"HBA"`
	TPSA           float64 `json:"TPSA"`
	RotatableBonds int     `json:"RotatableBonds"`
	AromaticRings  int     `json:"AromaticRings"`
}

// LipinskiReport is the per-rule Rule of Five outcome.
type LipinskiReport struct {
	MWOk       bool     `json:"MW_ok"`
	LogPOk     bool     `json:"LogP_ok"`
	HBDOk      bool     `json:"HBD_ok"`
	HBAOk      bool     `json:"HBA_ok"`
	Passes     bool     `json:"passes_lipinski"`
	Violations []string `json:"violations,omitempty"`
}

// VeberReport is the Veber rule outcome.
type VeberReport struct {
	TPSAOk     bool     `json:"TPSA_ok"`
	RotBondsOk bool     `json:"RotatableBonds_ok"`
	Passes     bool     `json:"passes_veber"`
	Violations []string `json:"violations,omitempty"`
}

// SolubilityReport is the QSAR prediction section.
type SolubilityReport struct {
	LogS           float64 `json:"logS"`
	MolPerL        float64 `json:"solubility_mol_per_L"`
	MgPerML        float64 `json:"solubility_mg_per_mL"`
	Interpretation string  `json:"interpretation"`
}

// Metadata stamps report provenance.
type Metadata struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Generator string `json:"generator"`
}

// Report is the stable screening report record.
type Report struct {
	ID         string                `json:"report_id"`
	SMILES     string                `json:"smiles"`
	Name       string                `json:"name,omitempty"`
	Properties PropertyValues        `json:"properties"`
	Lipinski   LipinskiReport        `json:"lipinski"`
	Veber      VeberReport           `json:"veber"`
	ADMET      domscreen.ADMETResult `json:"admet"`
	DrugLike   bool                  `json:"drug_like"`
	Solubility *SolubilityReport     `json:"solubility,omitempty"`
	Metadata   Metadata              `json:"metadata"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Implementation
// ─────────────────────────────────────────────────────────────────────────────

type serviceImpl struct {
	provider PredictorProvider
	logger   logging.Logger
	now      func() time.Time
}

// NewService creates the screening service.  The provider may be nil when
// solubility prediction is never requested.
func NewService(provider PredictorProvider, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *serviceImpl) Screen(ctx context.Context, input *ScreenInput) (*Report, error) {
	mol, err := chem.ParseSMILES(input.SMILES)
	if err != nil {
		return nil, err
	}
	assessment := domscreen.Assess(mol)

	report := s.buildReport(input.SMILES, input.Name, assessment)

	if !input.SkipSolubility {
		sol, err := s.predictSolubility(mol)
		if err != nil {
			return nil, err
		}
		report.Solubility = sol
	}

	s.logger.Info("molecule screened",
		logging.String("smiles", input.SMILES),
		logging.Bool("drug_like", report.DrugLike),
	)
	return report, nil
}

func (s *serviceImpl) ScreenBatch(ctx context.Context, input *BatchInput) (*BatchResult, error) {
	if len(input.Entries) == 0 {
		return nil, errors.New(errors.ErrCodeBatchInputInvalid, "batch contains no molecules")
	}
	result := &BatchResult{Reports: make([]*Report, 0, len(input.Entries))}
	for _, entry := range input.Entries {
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "batch screening cancelled")
		default:
		}
		report, err := s.Screen(ctx, &ScreenInput{
			SMILES:         entry.SMILES,
			Name:           entry.Name,
			SkipSolubility: input.SkipSolubility,
		})
		if err != nil {
			// a missing model fails the whole batch; bad rows are skipped
			if errors.IsCode(err, errors.CodeModelNotLoaded) {
				return nil, err
			}
			result.Skipped = append(result.Skipped, BatchError{
				SMILES: entry.SMILES,
				Name:   entry.Name,
				Error:  err.Error(),
			})
			continue
		}
		result.Reports = append(result.Reports, report)
	}
	s.logger.Info("batch screened",
		logging.Int("screened", len(result.Reports)),
		logging.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (s *serviceImpl) Similar(ctx context.Context, input *SimilarInput) (*SimilarResult, error) {
	hits, skipped, err := chem.RankBySimilarity(input.QuerySMILES, input.Candidates, input.TopK)
	if err != nil {
		return nil, err
	}
	return &SimilarResult{Query: input.QuerySMILES, Hits: hits, Skipped: skipped}, nil
}

func (s *serviceImpl) Train(ctx context.Context, input *TrainInput) (*TrainResult, error) {
	start := s.now()

	rows := input.Rows
	skipped := input.SkippedRows
	if rows == nil {
		var err error
		var badRows int
		rows, badRows, err = dataset.LoadEmbedded()
		if err != nil {
			return nil, err
		}
		skipped += badRows
	}

	xs := make([][]float64, 0, len(rows))
	ys := make([]float64, 0, len(rows))
	for _, row := range rows {
		mol, err := chem.ParseSMILES(row.SMILES)
		if err != nil {
			s.logger.Warn("skipping unparseable training row",
				logging.String("name", row.Name),
				logging.String("smiles", row.SMILES),
			)
			skipped++
			continue
		}
		xs = append(xs, chem.Descriptors(mol))
		ys = append(ys, row.LogS)
	}

	opts := input.Options
	opts.NumSkipped = skipped
	model, err := qsar.Train(xs, ys, opts)
	if err != nil {
		return nil, err
	}
	if input.OutputPath != "" {
		if err := model.Save(input.OutputPath); err != nil {
			return nil, err
		}
	}

	duration := s.now().Sub(start)
	s.logger.Info("model trained",
		logging.Int("rows", len(xs)),
		logging.Int("skipped", skipped),
		logging.Float64("test_r2", model.Metrics.TestR2),
		logging.Float64("test_rmse", model.Metrics.TestRMSE),
		logging.Duration("duration", duration),
	)
	return &TrainResult{
		Metrics:    model.Metrics,
		ModelPath:  input.OutputPath,
		Duration:   duration,
		NumRows:    len(xs),
		NumSkipped: skipped,
	}, nil
}

func (s *serviceImpl) predictSolubility(mol *chem.Molecule) (*SolubilityReport, error) {
	if s.provider == nil {
		return nil, errors.New(errors.CodeModelNotLoaded,
			"no trained solubility model available; run `molscreen train` first")
	}
	p, err := s.provider.Predictor()
	if err != nil {
		return nil, err
	}
	pred, err := p.PredictMolecule(mol)
	if err != nil {
		return nil, err
	}
	return &SolubilityReport{
		LogS:           pred.LogS,
		MolPerL:        pred.SolubilityMolL,
		MgPerML:        pred.SolubilityMgML,
		Interpretation: pred.Label,
	}, nil
}

func (s *serviceImpl) buildReport(smiles, name string, a domscreen.Assessment) *Report {
	p := a.Properties
	return &Report{
		ID:     uuid.NewString(),
		SMILES: smiles,
		Name:   name,
		Properties: PropertyValues{
			MW:             p.MolWt,
			LogP:           p.LogP,
			HBD:            p.HBD,
			HBA:            p.HBA,
			TPSA:           p.TPSA,
			RotatableBonds: p.RotatableBonds,
			AromaticRings:  p.AromaticRings,
		},
		Lipinski: LipinskiReport{
			MWOk:       p.MolWt <= domscreen.MaxMolWt,
			LogPOk:     p.LogP <= domscreen.MaxLogP,
			HBDOk:      p.HBD <= domscreen.MaxHBD,
			HBAOk:      p.HBA <= domscreen.MaxHBA,
			Passes:     a.Lipinski.Passes,
			Violations: a.Lipinski.Violations,
		},
		Veber: VeberReport{
			TPSAOk:     p.TPSA <= domscreen.MaxTPSA,
			RotBondsOk: p.RotatableBonds <= domscreen.MaxRotatableBonds,
			Passes:     a.Veber.Passes,
			Violations: a.Veber.Violations,
		},
		ADMET:    a.ADMET,
		DrugLike: a.DrugLike,
		Metadata: Metadata{
			Version:   Version,
			Timestamp: s.now().UTC().Format(time.RFC3339),
			Generator: "molscreen",
		},
	}
}
