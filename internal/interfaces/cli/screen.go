package cli

import (
	"github.com/spf13/cobra"

	"github.com/molscreen/molscreen/internal/application/reporting"
	"github.com/molscreen/molscreen/internal/application/screening"
	"github.com/molscreen/molscreen/internal/dataset"
)

// newScreenCmd screens a single molecule.
func newScreenCmd(e *env) *cobra.Command {
	var (
		name         string
		format       string
		output       string
		noSolubility bool
	)

	cmd := &cobra.Command{
		Use:   "screen <SMILES>",
		Short: "Screen one molecule for drug-likeness and solubility",
		Example: `  molscreen screen "CC(=O)Oc1ccccc1C(=O)O" --name aspirin
  molscreen screen "CCO" --format json
  molscreen screen "c1ccccc1" --format html --output benzene.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := reporting.ParseFormat(format)
			if err != nil {
				return err
			}
			report, err := e.service.Screen(cmd.Context(), &screening.ScreenInput{
				SMILES:         args[0],
				Name:           name,
				SkipSolubility: noSolubility,
			})
			if err != nil {
				return err
			}
			rendered, err := e.renderer.Render(report, outFormat)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, rendered)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "molecule name for the report")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "report format (text, json, html)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&noSolubility, "no-solubility", false, "skip the solubility prediction (no trained model needed)")
	return cmd
}

// newBatchCmd screens every molecule in a .smi, .txt, or .csv file.
func newBatchCmd(e *env) *cobra.Command {
	var (
		format       string
		output       string
		noSolubility bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Screen a file of molecules",
		Long:  "Screen every molecule in a file.  Supported formats: .smi and .txt\n(one SMILES per line, optional name after whitespace) and .csv (the\nSMILES column is detected by header or content).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := reporting.ParseFormat(format)
			if err != nil {
				return err
			}
			entries, err := readBatchEntries(args[0])
			if err != nil {
				return err
			}
			result, err := e.service.ScreenBatch(cmd.Context(), &screening.BatchInput{
				Entries:        entries,
				SkipSolubility: noSolubility,
			})
			if err != nil {
				return err
			}
			rendered, err := e.renderer.RenderBatch(result, outFormat)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, rendered)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "report format (text, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&noSolubility, "no-solubility", false, "skip the solubility predictions (no trained model needed)")
	return cmd
}

// readBatchEntries converts a molecule list file into batch entries.
func readBatchEntries(path string) ([]screening.BatchEntry, error) {
	molecules, err := dataset.ReadMoleculeList(path)
	if err != nil {
		return nil, err
	}
	entries := make([]screening.BatchEntry, len(molecules))
	for i, m := range molecules {
		entries[i] = screening.BatchEntry{Name: m.Name, SMILES: m.SMILES}
	}
	return entries, nil
}
