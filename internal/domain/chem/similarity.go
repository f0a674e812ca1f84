package chem

import (
	"sort"

	"github.com/molscreen/molscreen/pkg/errors"
)

// Tanimoto computes the Tanimoto coefficient (Jaccard index) between two
// fingerprints of equal length.  Two all-zero fingerprints have similarity 0.
func Tanimoto(fp1, fp2 *Fingerprint) (float64, error) {
	if fp1 == nil || fp2 == nil {
		return 0, errors.InvalidParam("fingerprints must not be nil")
	}
	if fp1.Length != fp2.Length {
		return 0, errors.New(errors.ErrCodeValidation, "fingerprints must have the same length")
	}
	intersection := 0
	union := 0
	for i := range fp1.Bits {
		b1 := fp1.Bits[i]
		b2 := fp2.Bits[i]
		intersection += popCount([]byte{b1 & b2})
		union += popCount([]byte{b1 | b2})
	}
	if union == 0 {
		return 0, nil
	}
	return float64(intersection) / float64(union), nil
}

// SimilarityHit is one ranked candidate from a similarity search.
type SimilarityHit struct {
	// Name is the candidate's label from the input list, or its SMILES when
	// no name was given.
	Name string `json:"name"`

	// SMILES is the candidate structure as written in the input.
	SMILES string `json:"smiles"`

	// Similarity is the Tanimoto coefficient against the query.
	Similarity float64 `json:"similarity"`
}

// Candidate is an input structure for similarity ranking.
type Candidate struct {
	Name   string
	SMILES string
}

// RankBySimilarity parses the query and every candidate, computes Morgan
// fingerprints, and returns the candidates ordered by descending Tanimoto
// similarity to the query.  Candidates that fail to parse are skipped and
// counted.  topK <= 0 returns the full ranking.
func RankBySimilarity(querySMILES string, candidates []Candidate, topK int) ([]SimilarityHit, int, error) {
	queryMol, err := ParseSMILES(querySMILES)
	if err != nil {
		return nil, 0, err
	}
	queryFP := MorganFingerprint(queryMol, DefaultFingerprintRadius, DefaultFingerprintBits)

	hits := make([]SimilarityHit, 0, len(candidates))
	skipped := 0
	for _, c := range candidates {
		mol, err := ParseSMILES(c.SMILES)
		if err != nil {
			skipped++
			continue
		}
		fp := MorganFingerprint(mol, DefaultFingerprintRadius, DefaultFingerprintBits)
		sim, err := Tanimoto(queryFP, fp)
		if err != nil {
			skipped++
			continue
		}
		name := c.Name
		if name == "" {
			name = c.SMILES
		}
		hits = append(hits, SimilarityHit{Name: name, SMILES: c.SMILES, Similarity: sim})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if topK > 0 && topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, skipped, nil
}
