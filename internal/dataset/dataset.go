// Package dataset provides the bundled solubility training data and loaders
// for user-supplied molecule lists.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/molscreen/molscreen/pkg/errors"
)

//go:embed delaney.csv
var delaneyCSV []byte

// Row is one labelled training compound.
type Row struct {
	Name   string
	SMILES string
	LogS   float64
}

// LoadEmbedded returns the bundled 96-compound Delaney-subset training set in
// file order, plus the count of malformed rows skipped (zero for a healthy
// build).
func LoadEmbedded() ([]Row, int, error) {
	return parseRows(bytes.NewReader(delaneyCSV), "embedded delaney.csv")
}

// LoadFile reads a training CSV with a name,smiles,logS header.  Malformed
// rows are skipped and counted, not fatal; the caller folds the count into
// the training metrics.
func LoadFile(path string) ([]Row, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, errors.New(errors.CodeDatasetNotFound, "dataset not found").
				WithDetail("path=" + path)
		}
		return nil, 0, errors.Wrap(err, errors.CodeDatasetNotFound, "open dataset")
	}
	defer f.Close()
	return parseRows(f, path)
}

// parseRows reads the CSV and returns the valid rows plus the number of rows
// dropped for a wrong field count or a non-numeric logS.  Only an unreadable
// stream or a dataset with no valid rows at all is fatal.
func parseRows(r io.Reader, source string) ([]Row, int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatasetRowInvalid, "read dataset CSV").
			WithDetail("source=" + source)
	}
	if len(records) == 0 {
		return nil, 0, errors.New(errors.CodeDatasetEmpty, "dataset has no rows").
			WithDetail("source=" + source)
	}
	start := 0
	if isHeader(records[0]) {
		start = 1
	}
	rows := make([]Row, 0, len(records)-start)
	skipped := 0
	for ri := start; ri < len(records); ri++ {
		rec := records[ri]
		if len(rec) != 3 {
			skipped++
			continue
		}
		logS, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, Row{
			Name:   strings.TrimSpace(rec[0]),
			SMILES: strings.TrimSpace(rec[1]),
			LogS:   logS,
		})
	}
	if len(rows) == 0 {
		return nil, skipped, errors.New(errors.CodeDatasetEmpty, "dataset has no data rows").
			WithDetail("source=" + source)
	}
	return rows, skipped, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(rec[len(rec)-1]), 64)
	return err != nil
}
