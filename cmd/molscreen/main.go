// molscreen is a molecular screening tool: it parses SMILES structures,
// computes descriptors, applies drug-likeness filters, and predicts aqueous
// solubility with a Random Forest QSAR model, as a CLI or an HTTP service.
package main

import (
	"os"

	"github.com/molscreen/molscreen/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
