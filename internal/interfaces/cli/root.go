// Package cli defines the molscreen command tree: screen, batch, similar,
// train, and serve.  Commands share a lazily-initialised environment built
// in the root command's PersistentPreRunE.
package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/molscreen/molscreen/internal/application/reporting"
	"github.com/molscreen/molscreen/internal/application/screening"
	"github.com/molscreen/molscreen/internal/config"
	"github.com/molscreen/molscreen/internal/domain/qsar"
	"github.com/molscreen/molscreen/internal/infrastructure/logging"
	"github.com/molscreen/molscreen/internal/infrastructure/modelstore"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global CLI flags.
type rootOptions struct {
	configPath string
	logLevel   string
	modelPath  string
}

// env carries the initialised dependencies shared by all subcommands.
type env struct {
	cfg      *config.Config
	logger   logging.Logger
	service  screening.Service
	store    *modelstore.Store
	renderer *reporting.Renderer
}

// lazyProvider defers loading the model artifact until a prediction is
// actually requested, so commands that never predict (screen --no-solubility,
// similar) work without a trained model on disk.
type lazyProvider struct {
	store *modelstore.Store
	once  sync.Once
	err   error
}

func (p *lazyProvider) Predictor() (*qsar.Predictor, error) {
	p.once.Do(func() {
		p.err = p.store.Load()
	})
	if p.err != nil {
		return nil, p.err
	}
	return p.store.Predictor()
}

// NewRootCommand builds the molscreen root command with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	e := &env{}

	cmd := &cobra.Command{
		Use:     "molscreen",
		Short:   "molscreen screens molecules for drug-likeness and aqueous solubility",
		Long:    "molscreen parses SMILES structures, computes molecular descriptors,\nchecks Lipinski and Veber drug-likeness rules, and predicts aqueous\nsolubility with a Random Forest QSAR model.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.init(opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: env + built-in defaults)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.modelPath, "model", "m", "", "trained model artifact path")

	cmd.AddCommand(
		newScreenCmd(e),
		newBatchCmd(e),
		newSimilarCmd(e),
		newTrainCmd(e),
		newServeCmd(e),
	)
	return cmd
}

// init loads configuration, builds the logger, and wires the screening
// service.  Flags override config-file and environment settings.
func (e *env) init(opts *rootOptions) error {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if opts.modelPath != "" {
		cfg.Model.Path = opts.modelPath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: "console",
	})
	if err != nil {
		return err
	}

	renderer, err := reporting.NewRenderer()
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.logger = logger
	e.renderer = renderer
	e.store = modelstore.New(cfg.Model.Path, logger, nil)
	e.service = screening.NewService(&lazyProvider{store: e.store}, logger)
	return nil
}

// writeOutput writes content to path, or to the command's stdout when path
// is empty.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", path)
	return nil
}

// Execute runs the CLI.  Errors are printed as a single line to stderr and
// reported through a non-zero exit status by the caller.
func Execute() error {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
		return err
	}
	return nil
}
