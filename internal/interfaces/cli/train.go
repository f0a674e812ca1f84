package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molscreen/molscreen/internal/application/screening"
	"github.com/molscreen/molscreen/internal/dataset"
	"github.com/molscreen/molscreen/internal/domain/qsar"
)

// newTrainCmd trains the solubility model and writes the artifact.
func newTrainCmd(e *env) *cobra.Command {
	var (
		datasetPath  string
		trees        int
		maxDepth     int
		testFraction float64
		seed         uint64
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the Random Forest solubility model",
		Long:  "Train the QSAR solubility model on the bundled aqueous solubility\ndataset, or on a CSV of name,smiles,logS rows given with --dataset.\nThe artifact is written to the configured model path.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				rows        []dataset.Row
				skippedRows int
			)
			if datasetPath == "" {
				datasetPath = e.cfg.Data.DatasetPath
			}
			if datasetPath != "" {
				var err error
				rows, skippedRows, err = dataset.LoadFile(datasetPath)
				if err != nil {
					return err
				}
			}
			opts := qsar.TrainOptions{
				Trees:           e.cfg.Training.Trees,
				MaxDepth:        e.cfg.Training.MaxDepth,
				MinSamplesSplit: e.cfg.Training.MinSamplesSplit,
				TestFraction:    e.cfg.Training.TestFraction,
				Seed:            e.cfg.Training.Seed,
			}
			if cmd.Flags().Changed("trees") {
				opts.Trees = trees
			}
			if cmd.Flags().Changed("max-depth") {
				opts.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("test-fraction") {
				opts.TestFraction = testFraction
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			result, err := e.service.Train(cmd.Context(), &screening.TrainInput{
				Rows:        rows,
				Options:     opts,
				OutputPath:  e.cfg.Model.Path,
				SkippedRows: skippedRows,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Trained on %d molecules (%d held out for testing", result.Metrics.NumTrain, result.Metrics.NumTest)
			if result.NumSkipped > 0 {
				fmt.Fprintf(out, ", %d rows skipped", result.NumSkipped)
			}
			fmt.Fprintln(out, ")")
			fmt.Fprintf(out, "  Train R²:   %.4f\n", result.Metrics.TrainR2)
			fmt.Fprintf(out, "  Train RMSE: %.4f\n", result.Metrics.TrainRMSE)
			fmt.Fprintf(out, "  Test R²:    %.4f\n", result.Metrics.TestR2)
			fmt.Fprintf(out, "  Test RMSE:  %.4f\n", result.Metrics.TestRMSE)
			fmt.Fprintf(out, "Model written to %s (%.2fs)\n", result.ModelPath, result.Duration.Seconds())
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "CSV of name,smiles,logS rows (default: bundled dataset)")
	cmd.Flags().IntVar(&trees, "trees", 0, "number of trees (default from config)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum tree depth (default from config)")
	cmd.Flags().Float64Var(&testFraction, "test-fraction", 0, "held-out test fraction (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default from config)")
	return cmd
}
