package qsar

import (
	"time"

	"github.com/molscreen/molscreen/internal/domain/chem"
	"github.com/molscreen/molscreen/pkg/errors"
)

// Default hyperparameters.  The seed is fixed so the bundled dataset always
// reproduces the recorded reference metrics.
const (
	DefaultTrees           = 100
	DefaultMaxDepth        = 10
	DefaultMinSamplesSplit = 2
	DefaultTestFraction    = 0.2
	DefaultSeed            = uint64(2023)
)

// TrainOptions configures a training run.  Zero values fall back to the
// defaults above.
type TrainOptions struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	TestFraction    float64
	Seed            uint64

	// NumSkipped is the count of dataset rows dropped before training
	// (unparseable SMILES); recorded in the model metrics for provenance.
	NumSkipped int
}

func (o TrainOptions) withDefaults() TrainOptions {
	if o.Trees <= 0 {
		o.Trees = DefaultTrees
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MinSamplesSplit <= 0 {
		o.MinSamplesSplit = DefaultMinSamplesSplit
	}
	if o.TestFraction <= 0 {
		o.TestFraction = DefaultTestFraction
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// Train fits a random forest on descriptor vectors xs against targets ys.
// The data is shuffled with the seed, the first TestFraction of the
// permutation is held out, the forest is fitted on the remainder, and both
// splits are scored.  The returned model embeds the frozen feature layout.
func Train(xs [][]float64, ys []float64, opts TrainOptions) (*Model, error) {
	if len(xs) == 0 {
		return nil, errors.New(errors.CodeTrainingFailed, "no training samples")
	}
	if len(xs) != len(ys) {
		return nil, errors.Newf(errors.CodeTrainingFailed,
			"feature/target length mismatch: %d vs %d", len(xs), len(ys))
	}
	for i, x := range xs {
		if len(x) != chem.NumFeatures {
			return nil, errors.Newf(errors.CodeFeatureMismatch,
				"sample %d has %d features, want %d", i, len(x), chem.NumFeatures)
		}
	}
	opts = opts.withDefaults()
	if opts.TestFraction >= 1 {
		return nil, errors.New(errors.CodeTrainingFailed, "test fraction must be below 1")
	}

	n := len(xs)
	rng := NewSplitMix64(opts.Seed)
	idx := Shuffle(rng, n)
	nTest := int(float64(n) * opts.TestFraction)
	testIdx := idx[:nTest]
	trainIdx := idx[nTest:]
	if len(trainIdx) == 0 {
		return nil, errors.New(errors.CodeTrainingFailed, "empty training split")
	}

	xtr := make([][]float64, len(trainIdx))
	ytr := make([]float64, len(trainIdx))
	for k, i := range trainIdx {
		xtr[k] = xs[i]
		ytr[k] = ys[i]
	}
	xte := make([][]float64, len(testIdx))
	yte := make([]float64, len(testIdx))
	for k, i := range testIdx {
		xte[k] = xs[i]
		yte[k] = ys[i]
	}

	forest := FitForest(xtr, ytr, opts.Trees, opts.MaxDepth, opts.MinSamplesSplit, opts.Seed)

	predTr := make([]float64, len(xtr))
	for i, x := range xtr {
		predTr[i] = forest.Predict(x)
	}
	metrics := TrainingMetrics{
		TrainR2:    R2Score(ytr, predTr),
		TrainRMSE:  RMSE(ytr, predTr),
		NumTrain:   len(xtr),
		NumTest:    len(xte),
		NumSkipped: opts.NumSkipped,
	}
	if len(xte) > 0 {
		predTe := make([]float64, len(xte))
		for i, x := range xte {
			predTe[i] = forest.Predict(x)
		}
		metrics.TestR2 = R2Score(yte, predTe)
		metrics.TestRMSE = RMSE(yte, predTe)
	}

	names := make([]string, len(chem.FeatureNames))
	copy(names, chem.FeatureNames)
	return &Model{
		FormatVersion: ModelFormatVersion,
		CreatedAt:     time.Now().UTC(),
		FeatureNames:  names,
		Hyperparams: Hyperparams{
			Trees:           opts.Trees,
			MaxDepth:        opts.MaxDepth,
			MinSamplesSplit: opts.MinSamplesSplit,
			TestFraction:    opts.TestFraction,
			Seed:            opts.Seed,
		},
		Metrics: metrics,
		Forest:  forest,
	}, nil
}
