package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscreen/molscreen/pkg/errors"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	rows, skipped, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Zero(t, skipped, "the bundled dataset must have no malformed rows")
	assert.Len(t, rows, 96)

	// file order is part of the training contract
	assert.Equal(t, Row{Name: "benzene", SMILES: "c1ccccc1", LogS: -1.64}, rows[0])
	assert.Equal(t, "heptane", rows[95].Name)

	// names containing commas must survive CSV quoting intact
	assert.Equal(t, Row{Name: "1,4-dioxane", SMILES: "C1COCCO1", LogS: 0.50}, rows[59])
	assert.Equal(t, "1,2-dichloroethane", rows[86].Name)

	for i, row := range rows {
		assert.NotEmpty(t, row.SMILES, "row %d", i)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("with header", func(t *testing.T) {
		path := writeTemp(t, "data.csv", "name,smiles,logS\nethanol,CCO,1.10\n")
		rows, skipped, err := LoadFile(path)
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, rows, 1)
		assert.Equal(t, Row{Name: "ethanol", SMILES: "CCO", LogS: 1.10}, rows[0])
	})

	t.Run("without header", func(t *testing.T) {
		path := writeTemp(t, "data.csv", "ethanol,CCO,1.10\nbenzene,c1ccccc1,-1.64\n")
		rows, skipped, err := LoadFile(path)
		require.NoError(t, err)
		assert.Zero(t, skipped)
		assert.Len(t, rows, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeDatasetNotFound))
	})

	t.Run("bad field count skipped", func(t *testing.T) {
		path := writeTemp(t, "data.csv", "name,smiles,logS\nethanol,CCO\nbenzene,c1ccccc1,-1.64\n")
		rows, skipped, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 1, skipped)
		require.Len(t, rows, 1)
		assert.Equal(t, "benzene", rows[0].Name)
	})

	t.Run("non numeric logS skipped", func(t *testing.T) {
		path := writeTemp(t, "data.csv", "name,smiles,logS\nethanol,CCO,high\nbenzene,c1ccccc1,-1.64\n")
		rows, skipped, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 1, skipped)
		require.Len(t, rows, 1)
		assert.Equal(t, "benzene", rows[0].Name)
	})

	t.Run("header only", func(t *testing.T) {
		path := writeTemp(t, "data.csv", "name,smiles,logS\n")
		_, _, err := LoadFile(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeDatasetEmpty))
	})

	t.Run("all rows malformed", func(t *testing.T) {
		path := writeTemp(t, "data.csv", "name,smiles,logS\nethanol,CCO\nbenzene,c1ccccc1,high\n")
		_, _, err := LoadFile(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeDatasetEmpty))
	})
}

func TestReadMoleculeList_SMI(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "mols.smi", `# screening candidates
c1ccccc1 benzene
CCO ethanol
CC(=O)Oc1ccccc1C(=O)O

CCCC
`)
	entries, err := ReadMoleculeList(path)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, Entry{Name: "benzene", SMILES: "c1ccccc1"}, entries[0])
	assert.Equal(t, Entry{Name: "ethanol", SMILES: "CCO"}, entries[1])
	assert.Empty(t, entries[2].Name)
	assert.Equal(t, "CCCC", entries[3].SMILES)
}

func TestReadMoleculeList_TXT(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "mols.txt", "CCO ethyl alcohol\n")
	entries, err := ReadMoleculeList(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ethyl alcohol", entries[0].Name)
}

func TestReadMoleculeList_CSV(t *testing.T) {
	t.Parallel()

	t.Run("smiles header", func(t *testing.T) {
		path := writeTemp(t, "mols.csv", "name,smiles\nbenzene,c1ccccc1\nethanol,CCO\n")
		entries, err := ReadMoleculeList(path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, Entry{Name: "benzene", SMILES: "c1ccccc1"}, entries[0])
	})

	t.Run("column autodetect without header", func(t *testing.T) {
		path := writeTemp(t, "mols.csv", "benzene,c1ccccc1\nethanol,CCO\n")
		entries, err := ReadMoleculeList(path)
		require.NoError(t, err)
		// "benzene" does not parse as SMILES; the second column is detected
		require.Len(t, entries, 2)
		assert.Equal(t, "c1ccccc1", entries[0].SMILES)
		assert.Equal(t, "CCO", entries[1].SMILES)
	})

	t.Run("no smiles column", func(t *testing.T) {
		path := writeTemp(t, "mols.csv", "id,score\n1,0.5\n")
		_, err := ReadMoleculeList(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeBatchInputInvalid))
	})
}

func TestReadMoleculeList_Unsupported(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "mols.sdf", "whatever")
	_, err := ReadMoleculeList(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBatchInputInvalid))
}

func TestReadMoleculeList_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "mols.smi", "# only a comment\n")
	_, err := ReadMoleculeList(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBatchInputInvalid))
}
