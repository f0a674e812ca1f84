package dataset

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/molscreen/molscreen/internal/domain/chem"
	"github.com/molscreen/molscreen/pkg/errors"
)

// Entry is one molecule from a user-supplied list.
type Entry struct {
	Name   string
	SMILES string
}

// ReadMoleculeList loads a molecule list for batch screening.  `.smi` and
// `.txt` files hold one molecule per line, SMILES first and an optional name
// after whitespace; `#` starts a comment.  `.csv` files are searched for a
// SMILES column by header name, falling back to the first column whose first
// data value parses as SMILES.
func ReadMoleculeList(path string) ([]Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".smi", ".txt":
		return readSMILESLines(path)
	case ".csv":
		return readCSVMolecules(path)
	default:
		return nil, errors.New(errors.ErrCodeBatchInputInvalid,
			"unsupported molecule list format, want .smi, .txt, or .csv").
			WithDetail("path=" + path)
	}
}

func readSMILESLines(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBatchInputInvalid, "open molecule list").
			WithDetail("path=" + path)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		e := Entry{SMILES: fields[0]}
		if len(fields) > 1 {
			e.Name = strings.Join(fields[1:], " ")
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBatchInputInvalid, "read molecule list").
			WithDetail("path=" + path)
	}
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeBatchInputInvalid, "molecule list is empty").
			WithDetail("path=" + path)
	}
	return entries, nil
}

// smilesHeaderNames are accepted, case-insensitively, as the SMILES column.
var smilesHeaderNames = map[string]bool{
	"smiles": true, "smile": true, "canonical_smiles": true, "structure": true,
}

func readCSVMolecules(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBatchInputInvalid, "open molecule list").
			WithDetail("path=" + path)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBatchInputInvalid, "read molecule CSV").
			WithDetail("path=" + path)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeBatchInputInvalid, "molecule list is empty").
			WithDetail("path=" + path)
	}

	smilesCol, nameCol, start := locateColumns(records)
	if smilesCol < 0 {
		return nil, errors.New(errors.ErrCodeBatchInputInvalid,
			"could not locate a SMILES column").WithDetail("path=" + path)
	}

	var entries []Entry
	for ri := start; ri < len(records); ri++ {
		rec := records[ri]
		if smilesCol >= len(rec) {
			continue
		}
		smiles := strings.TrimSpace(rec[smilesCol])
		if smiles == "" {
			continue
		}
		e := Entry{SMILES: smiles}
		if nameCol >= 0 && nameCol < len(rec) {
			e.Name = strings.TrimSpace(rec[nameCol])
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeBatchInputInvalid, "molecule list has no rows").
			WithDetail("path=" + path)
	}
	return entries, nil
}

// locateColumns finds the SMILES and name columns.  A recognised header wins;
// otherwise the first column whose first data value parses as SMILES is used
// and all rows are treated as data.
func locateColumns(records [][]string) (smilesCol, nameCol, start int) {
	header := records[0]
	smilesCol, nameCol = -1, -1
	for ci, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if smilesHeaderNames[key] {
			smilesCol = ci
		}
		if key == "name" || key == "id" || key == "compound" {
			nameCol = ci
		}
	}
	if smilesCol >= 0 {
		return smilesCol, nameCol, 1
	}
	probe := records[0]
	if len(records) > 1 {
		probe = records[1]
	}
	for ci := range probe {
		if _, err := chem.ParseSMILES(strings.TrimSpace(probe[ci])); err == nil {
			return ci, -1, 0
		}
	}
	return -1, -1, 0
}
