package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molscreen/molscreen/internal/application/screening"
	"github.com/molscreen/molscreen/internal/dataset"
	"github.com/molscreen/molscreen/internal/domain/chem"
)

// newSimilarCmd ranks a candidate file by Tanimoto similarity to a query.
func newSimilarCmd(e *env) *cobra.Command {
	var (
		candidatesPath string
		topK           int
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "similar <SMILES>",
		Short: "Rank candidate molecules by similarity to a query structure",
		Example: `  molscreen similar "c1ccccc1" --candidates library.smi --top 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			molecules, err := dataset.ReadMoleculeList(candidatesPath)
			if err != nil {
				return err
			}
			candidates := make([]chem.Candidate, len(molecules))
			for i, m := range molecules {
				candidates[i] = chem.Candidate{Name: m.Name, SMILES: m.SMILES}
			}
			result, err := e.service.Similar(cmd.Context(), &screening.SimilarInput{
				QuerySMILES: args[0],
				Candidates:  candidates,
				TopK:        topK,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintf(out, "Query: %s\n", result.Query)
			for i, hit := range result.Hits {
				fmt.Fprintf(out, "%3d. %-30s %.4f  %s\n", i+1, hit.Name, hit.Similarity, hit.SMILES)
			}
			if result.Skipped > 0 {
				fmt.Fprintf(out, "(%d candidates skipped: invalid SMILES)\n", result.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "file of candidate molecules (.smi, .txt, or .csv)")
	cmd.Flags().IntVar(&topK, "top", 10, "number of hits to return (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the ranking as JSON")
	cobra.CheckErr(cmd.MarkFlagRequired("candidates"))
	return cmd
}
