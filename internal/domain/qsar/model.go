package qsar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/molscreen/molscreen/internal/domain/chem"
	"github.com/molscreen/molscreen/pkg/errors"
)

// ModelFormatVersion identifies the artifact layout.  Bump on any change to
// the persisted structure.
const ModelFormatVersion = 1

// Hyperparams records the forest configuration a model was trained with.
type Hyperparams struct {
	Trees           int     `json:"trees"`
	MaxDepth        int     `json:"max_depth"`
	MinSamplesSplit int     `json:"min_samples_split"`
	TestFraction    float64 `json:"test_fraction"`
	Seed            uint64  `json:"seed"`
}

// TrainingMetrics summarises a fit on the train/test split.
type TrainingMetrics struct {
	TrainR2    float64 `json:"train_r2"`
	TrainRMSE  float64 `json:"train_rmse"`
	TestR2     float64 `json:"test_r2"`
	TestRMSE   float64 `json:"test_rmse"`
	NumTrain   int     `json:"num_train"`
	NumTest    int     `json:"num_test"`
	NumSkipped int     `json:"num_skipped"`
}

// Model is a trained solubility regressor plus everything needed to validate
// and reproduce it: the frozen feature layout, the hyperparameters, and the
// training metrics.  Models are immutable after load and safe for concurrent
// readers.
type Model struct {
	FormatVersion int             `json:"format_version"`
	CreatedAt     time.Time       `json:"created_at"`
	FeatureNames  []string        `json:"feature_names"`
	Hyperparams   Hyperparams     `json:"hyperparams"`
	Metrics       TrainingMetrics `json:"metrics"`
	Forest        *Forest         `json:"forest"`
}

// Validate checks structural integrity after deserialisation.
func (m *Model) Validate() error {
	if m.Forest == nil || len(m.Forest.Trees) == 0 {
		return errors.New(errors.CodeModelCorrupt, "model has no trees")
	}
	if len(m.FeatureNames) == 0 {
		return errors.New(errors.CodeModelCorrupt, "model has no feature names")
	}
	if len(m.FeatureNames) != len(chem.FeatureNames) {
		return errors.Newf(errors.CodeFeatureMismatch,
			"model expects %d features, this build computes %d",
			len(m.FeatureNames), len(chem.FeatureNames))
	}
	for i, name := range m.FeatureNames {
		if name != chem.FeatureNames[i] {
			return errors.Newf(errors.CodeFeatureMismatch,
				"feature %d is %q in the model but %q in this build",
				i, name, chem.FeatureNames[i])
		}
	}
	for ti, t := range m.Forest.Trees {
		if t == nil || len(t.Nodes) == 0 {
			return errors.Newf(errors.CodeModelCorrupt, "tree %d is empty", ti)
		}
	}
	return nil
}

// Save writes the model artifact as indented JSON, creating parent
// directories as needed.  The write goes through a temp file and rename so a
// concurrent reader never sees a partial artifact.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CodeModelSaveFailed, "marshal model")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.CodeModelSaveFailed, "create model directory")
	}
	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return errors.Wrap(err, errors.CodeModelSaveFailed, "create temp file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, errors.CodeModelSaveFailed, "write model")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.CodeModelSaveFailed, "close temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.CodeModelSaveFailed, "rename model into place")
	}
	return nil
}

// LoadModel reads and validates a model artifact.  A missing file maps to
// CodeModelNotLoaded with a hint to run training; a file that exists but does
// not decode maps to CodeModelCorrupt.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ModelNotLoaded(path)
		}
		return nil, errors.Wrap(err, errors.CodeModelNotLoaded, "read model artifact")
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.CodeModelCorrupt, "decode model artifact").
			WithDetail("model_path=" + path)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
