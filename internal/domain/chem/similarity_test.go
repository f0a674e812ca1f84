package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscreen/molscreen/pkg/errors"
)

func TestRankBySimilarity(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{Name: "ethanol", SMILES: "CCO"},
		{Name: "toluene", SMILES: "Cc1ccccc1"},
		{Name: "benzene", SMILES: "c1ccccc1"},
		{Name: "phenol", SMILES: "Oc1ccccc1"},
	}

	hits, skipped, err := RankBySimilarity("c1ccccc1", candidates, 0)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, hits, 4)

	// the query itself ranks first with similarity 1
	assert.Equal(t, "benzene", hits[0].Name)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-12)

	// descending order throughout
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Similarity, hits[i].Similarity)
	}

	// the aliphatic alcohol ranks last against an aromatic query
	assert.Equal(t, "ethanol", hits[len(hits)-1].Name)
}

func TestRankBySimilarity_TopK(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{Name: "benzene", SMILES: "c1ccccc1"},
		{Name: "toluene", SMILES: "Cc1ccccc1"},
		{Name: "ethanol", SMILES: "CCO"},
	}

	hits, _, err := RankBySimilarity("c1ccccc1", candidates, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	// topK larger than the candidate list returns everything
	hits, _, err = RankBySimilarity("c1ccccc1", candidates, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestRankBySimilarity_SkipsUnparseable(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{Name: "benzene", SMILES: "c1ccccc1"},
		{Name: "broken", SMILES: "C1CC"},
		{Name: "also broken", SMILES: "C(("},
		{Name: "ethanol", SMILES: "CCO"},
	}

	hits, skipped, err := RankBySimilarity("c1ccccc1", candidates, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Len(t, hits, 2)
}

func TestRankBySimilarity_InvalidQuery(t *testing.T) {
	t.Parallel()

	_, _, err := RankBySimilarity("C1CC", []Candidate{{SMILES: "CCO"}}, 0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeChemParseFailed))
}

func TestRankBySimilarity_NamelessCandidate(t *testing.T) {
	t.Parallel()

	hits, _, err := RankBySimilarity("CCO", []Candidate{{SMILES: "CCO"}}, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "CCO", hits[0].Name)
}
