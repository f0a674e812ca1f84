// Package chem implements the molecular domain model: a SMILES parser for the
// organic subset, implicit hydrogen assignment, ring perception, and the
// physicochemical descriptors consumed by the QSAR layer.
package chem

// BondOrder encodes the order of a bond between two atoms.
type BondOrder int

const (
	BondSingle   BondOrder = 1
	BondDouble   BondOrder = 2
	BondTriple   BondOrder = 3
	BondAromatic BondOrder = 4
)

// atomicWeights holds IUPAC 2021 standard atomic weights for every element
// the parser accepts.
var atomicWeights = map[string]float64{
	"H": 1.008, "B": 10.811, "C": 12.011, "N": 14.007, "O": 15.999,
	"F": 18.998, "Na": 22.990, "Mg": 24.305, "Si": 28.086, "P": 30.974,
	"S": 32.067, "Cl": 35.453, "K": 39.098, "Ca": 40.078, "Zn": 65.38,
	"Br": 79.904, "I": 126.904,
}

// valences lists the allowed valence states per element; the smallest state
// that covers the bond order sum wins when assigning implicit hydrogens.
var valences = map[string][]int{
	"B": {3}, "C": {4}, "N": {3, 5}, "O": {2}, "P": {3, 5},
	"S": {2, 4, 6}, "F": {1}, "Cl": {1}, "Br": {1}, "I": {1},
}

// aromaticElems is the set of lowercase SMILES symbols accepted as aromatic.
var aromaticElems = map[byte]bool{
	'b': true, 'c': true, 'n': true, 'o': true, 'p': true, 's': true,
}

// Atom is a single heavy atom in the molecular graph.  Hydrogens are not
// graph nodes; they are tracked as explicit (from bracket atoms) and implicit
// (valence-derived) counts on the heavy atom.
type Atom struct {
	// Element is the uppercase element symbol ("C", "Cl", ...).
	Element string

	// Aromatic records whether the atom was written in lowercase SMILES
	// aromatic form.
	Aromatic bool

	// Charge is the formal charge from a bracket atom, zero otherwise.
	Charge int

	// ExplicitH is the hydrogen count written inside a bracket atom.
	ExplicitH int

	// Bracket marks atoms parsed from [...] notation.  Bracket atoms carry
	// only their explicit hydrogens; no implicit assignment is performed.
	Bracket bool

	// ImplicitH is filled during post-parse valence completion.
	ImplicitH int

	// InRing is set by ring perception.
	InRing bool
}

// TotalH returns the total hydrogen count attached to the atom.
func (a *Atom) TotalH() int {
	return a.ExplicitH + a.ImplicitH
}

// Bond connects two atoms by index.
type Bond struct {
	A1     int
	A2     int
	Order  BondOrder
	InRing bool
}

// Molecule is a parsed molecular graph with adjacency and perceived rings.
type Molecule struct {
	Atoms []*Atom
	Bonds []*Bond

	// adj maps each atom index to the indices of its incident bonds.
	adj [][]int

	// rings holds each perceived ring as a sorted atom index set; every
	// non-tree bond of the spanning forest contributes its smallest
	// containing ring, deduplicated by atom set.
	rings [][]int
}

// NewMolecule returns an empty molecule.
func NewMolecule() *Molecule {
	return &Molecule{}
}

// AddAtom appends an atom and returns its index.
func (m *Molecule) AddAtom(a *Atom) int {
	m.Atoms = append(m.Atoms, a)
	m.adj = append(m.adj, nil)
	return len(m.Atoms) - 1
}

// AddBond appends a bond between atoms a1 and a2 and returns its index.
func (m *Molecule) AddBond(a1, a2 int, order BondOrder) int {
	b := &Bond{A1: a1, A2: a2, Order: order}
	m.Bonds = append(m.Bonds, b)
	bi := len(m.Bonds) - 1
	m.adj[a1] = append(m.adj[a1], bi)
	m.adj[a2] = append(m.adj[a2], bi)
	return bi
}

// Neighbor returns the atom on the far side of bond bi from atom ai.
func (m *Molecule) Neighbor(ai, bi int) int {
	b := m.Bonds[bi]
	if b.A1 == ai {
		return b.A2
	}
	return b.A1
}

// Degree returns the number of heavy-atom neighbors of atom ai.
func (m *Molecule) Degree(ai int) int {
	return len(m.adj[ai])
}

// BondOrderSum returns the total bond order consumed by atom ai, counting
// aromatic bonds as one.
func (m *Molecule) BondOrderSum(ai int) int {
	s := 0
	for _, bi := range m.adj[ai] {
		o := m.Bonds[bi].Order
		if o == BondAromatic {
			s++
		} else {
			s += int(o)
		}
	}
	return s
}

// NumAtoms returns the heavy atom count.
func (m *Molecule) NumAtoms() int { return len(m.Atoms) }

// NumBonds returns the bond count.
func (m *Molecule) NumBonds() int { return len(m.Bonds) }

// NumRings returns the number of perceived rings (one per non-tree bond,
// deduplicated).
func (m *Molecule) NumRings() int { return len(m.rings) }

// Rings returns the perceived rings as sorted atom index sets.  The returned
// slice must not be mutated.
func (m *Molecule) Rings() [][]int { return m.rings }
