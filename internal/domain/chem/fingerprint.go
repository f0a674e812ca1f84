package chem

import (
	"encoding/binary"
	"hash/fnv"
	"math/bits"
	"sort"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fingerprint structure
// ─────────────────────────────────────────────────────────────────────────────

// DefaultFingerprintBits is the standard fingerprint length.
const DefaultFingerprintBits = 2048

// DefaultFingerprintRadius is the standard circular environment radius.
const DefaultFingerprintRadius = 2

// Fingerprint represents a molecular fingerprint as a bit vector.  The Bits
// field stores the packed bit array as bytes, where bit i is stored in byte
// i/8 at bit position i%8.
type Fingerprint struct {
	// Bits is the packed bit vector representation.
	Bits []byte `json:"bits"`

	// Length is the total number of bits in the fingerprint.
	Length int `json:"length"`

	// NumOnBits is the count of set bits (popcount).
	NumOnBits int `json:"num_on_bits"`
}

// newEmptyFingerprint allocates an all-zero fingerprint of the given length.
func newEmptyFingerprint(nBits int) *Fingerprint {
	return &Fingerprint{
		Bits:   make([]byte, (nBits+7)/8),
		Length: nBits,
	}
}

// GetBit returns true if the bit at the given index is set.
func (fp *Fingerprint) GetBit(index int) bool {
	if index < 0 || index >= fp.Length {
		return false
	}
	byteIdx := index / 8
	bitIdx := uint(index % 8)
	return (fp.Bits[byteIdx] & (1 << bitIdx)) != 0
}

// SetBit sets the bit at the given index to 1.
func (fp *Fingerprint) SetBit(index int) {
	if index < 0 || index >= fp.Length {
		return
	}
	byteIdx := index / 8
	bitIdx := uint(index % 8)
	oldByte := fp.Bits[byteIdx]
	fp.Bits[byteIdx] |= 1 << bitIdx
	if oldByte != fp.Bits[byteIdx] {
		fp.NumOnBits++
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Morgan (circular) fingerprint
// ─────────────────────────────────────────────────────────────────────────────

// MorganFingerprint computes a Morgan-style circular fingerprint on the parsed
// molecular graph.  Each atom starts with an invariant hashed from its local
// properties; radius rounds of neighborhood hashing fold in the sorted
// (bond order, neighbor invariant) pairs, and every intermediate invariant
// sets one bit.
func MorganFingerprint(mol *Molecule, radius, nBits int) *Fingerprint {
	if radius < 0 {
		radius = DefaultFingerprintRadius
	}
	if nBits <= 0 {
		nBits = DefaultFingerprintBits
	}
	fp := newEmptyFingerprint(nBits)

	n := mol.NumAtoms()
	if n == 0 {
		return fp
	}

	invariants := make([]uint64, n)
	for ai, a := range mol.Atoms {
		invariants[ai] = initialInvariant(mol, ai, a)
		fp.SetBit(int(invariants[ai] % uint64(nBits)))
	}

	for r := 0; r < radius; r++ {
		next := make([]uint64, n)
		for ai := range mol.Atoms {
			type edge struct {
				order BondOrder
				inv   uint64
			}
			var edges []edge
			for _, bi := range mol.adj[ai] {
				edges = append(edges, edge{
					order: mol.Bonds[bi].Order,
					inv:   invariants[mol.Neighbor(ai, bi)],
				})
			}
			sort.Slice(edges, func(i, j int) bool {
				if edges[i].order != edges[j].order {
					return edges[i].order < edges[j].order
				}
				return edges[i].inv < edges[j].inv
			})
			h := fnv.New64a()
			writeUint64(h, invariants[ai])
			for _, e := range edges {
				writeUint64(h, uint64(e.order))
				writeUint64(h, e.inv)
			}
			next[ai] = h.Sum64()
			fp.SetBit(int(next[ai] % uint64(nBits)))
		}
		invariants = next
	}

	return fp
}

// initialInvariant hashes the atom's local properties into its round-zero
// invariant.
func initialInvariant(mol *Molecule, ai int, a *Atom) uint64 {
	h := fnv.New64a()
	h.Write([]byte(a.Element))
	flags := uint64(0)
	if a.Aromatic {
		flags |= 1
	}
	if a.InRing {
		flags |= 2
	}
	writeUint64(h, flags)
	writeUint64(h, uint64(mol.Degree(ai)))
	writeUint64(h, uint64(a.TotalH()))
	writeUint64(h, uint64(int64(a.Charge)+8))
	return h.Sum64()
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

// popCount returns the number of set bits in the byte slice.
func popCount(bs []byte) int {
	c := 0
	for _, b := range bs {
		c += bits.OnesCount8(b)
	}
	return c
}
