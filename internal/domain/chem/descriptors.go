package chem

// FeatureNames is the canonical descriptor vector layout consumed by the QSAR
// layer.  The order is frozen: model artifacts record it and predictors
// refuse to score against a mismatched layout.
var FeatureNames = []string{
	"MolWt", "LogP", "NumHDonors", "NumHAcceptors", "TPSA",
	"NumRotatableBonds", "NumAromaticRings", "NumAliphaticRings",
	"NumSaturatedRings",
}

// NumFeatures is the length of the descriptor vector.
const NumFeatures = 9

// MolecularWeight returns the average molecular weight including all
// explicit and implicit hydrogens.
func MolecularWeight(mol *Molecule) float64 {
	w := 0.0
	for _, a := range mol.Atoms {
		w += atomicWeights[a.Element]
		w += float64(a.TotalH()) * atomicWeights["H"]
	}
	return w
}

// HBondDonors counts Lipinski hydrogen bond donors: nitrogen or oxygen atoms
// bearing at least one hydrogen.
func HBondDonors(mol *Molecule) int {
	c := 0
	for _, a := range mol.Atoms {
		if (a.Element == "N" || a.Element == "O") && a.TotalH() >= 1 {
			c++
		}
	}
	return c
}

// hasDoubleBondToHetero reports whether atom ai has a double bond to O, N,
// or S.  Carbons satisfying this are carbonyl-like centres.
func hasDoubleBondToHetero(mol *Molecule, ai int) bool {
	for _, bi := range mol.adj[ai] {
		b := mol.Bonds[bi]
		if b.Order == BondDouble {
			other := mol.Neighbor(ai, bi)
			switch mol.Atoms[other].Element {
			case "O", "N", "S":
				return true
			}
		}
	}
	return false
}

// HBondAcceptors counts hydrogen bond acceptors.  Oxygens count unless
// positively charged or part of an acidic hydroxyl (O-H on a carbon that is
// double-bonded to O/N/S).  Nitrogens count unless positively charged,
// pyrrole-type aromatic (bearing H or fully substituted), or amide.
func HBondAcceptors(mol *Molecule) int {
	c := 0
	for ai, a := range mol.Atoms {
		switch a.Element {
		case "O":
			if a.Charge > 0 {
				continue
			}
			if a.TotalH() >= 1 {
				acidic := false
				for _, bi := range mol.adj[ai] {
					other := mol.Neighbor(ai, bi)
					if mol.Atoms[other].Element == "C" && hasDoubleBondToHetero(mol, other) {
						acidic = true
					}
				}
				if acidic {
					continue
				}
			}
			c++
		case "N":
			if a.Charge > 0 {
				continue
			}
			if a.Aromatic && (a.TotalH() >= 1 || mol.Degree(ai) >= 3) {
				continue // pyrrole-type: no lone pair available
			}
			amide := false
			if !a.Aromatic {
				for _, bi := range mol.adj[ai] {
					b := mol.Bonds[bi]
					if b.Order != BondSingle {
						continue
					}
					other := mol.Neighbor(ai, bi)
					if mol.Atoms[other].Element == "C" && hasDoubleBondToHetero(mol, other) {
						amide = true
					}
				}
			}
			if amide {
				continue
			}
			c++
		}
	}
	return c
}

// TPSA returns the topological polar surface area using Ertl fragment
// contributions for nitrogen and oxygen (sulfur and phosphorus excluded, as
// in the common default).
func TPSA(mol *Molecule) float64 {
	total := 0.0
	for ai, a := range mol.Atoms {
		if a.Element != "N" && a.Element != "O" {
			continue
		}
		h := a.TotalH()
		deg := mol.Degree(ai)
		ndouble := 0
		ntriple := 0
		for _, bi := range mol.adj[ai] {
			switch mol.Bonds[bi].Order {
			case BondDouble:
				ndouble++
			case BondTriple:
				ntriple++
			}
		}
		contrib := 0.0
		if a.Element == "O" {
			switch {
			case a.Aromatic:
				contrib = 13.14
			case a.Charge < 0:
				contrib = 23.06
			case ndouble >= 1:
				contrib = 17.07
			case h >= 1:
				contrib = 20.23
			default:
				contrib = 9.23
			}
		} else {
			switch {
			case a.Aromatic:
				if h >= 1 {
					contrib = 15.79
				} else if deg >= 3 {
					contrib = 4.41
				} else {
					contrib = 12.89
				}
			case a.Charge > 0:
				if ndouble >= 1 {
					contrib = 11.68 // nitro-style N+
				} else if h == 0 {
					contrib = 4.44
				} else {
					contrib = 16.61
				}
			case ntriple >= 1:
				contrib = 23.79
			case ndouble >= 1:
				if h >= 1 {
					contrib = 23.85
				} else {
					contrib = 12.36
				}
			case h >= 2:
				contrib = 26.02
			case h == 1:
				contrib = 12.03
			default:
				contrib = 3.24
			}
		}
		total += contrib
	}
	return total
}

// inTripleBond reports whether atom ai participates in any triple bond.
func inTripleBond(mol *Molecule, ai int) bool {
	for _, bi := range mol.adj[ai] {
		if mol.Bonds[bi].Order == BondTriple {
			return true
		}
	}
	return false
}

// RotatableBonds counts acyclic single bonds between two non-terminal atoms,
// excluding bonds adjacent to a triple bond (nitrile and alkyne axes do not
// rotate meaningfully).
func RotatableBonds(mol *Molecule) int {
	c := 0
	for _, b := range mol.Bonds {
		if b.Order != BondSingle || b.InRing {
			continue
		}
		if mol.Degree(b.A1) < 2 || mol.Degree(b.A2) < 2 {
			continue
		}
		if inTripleBond(mol, b.A1) || inTripleBond(mol, b.A2) {
			continue
		}
		c++
	}
	return c
}

// RingCounts classifies perceived rings into aromatic (every member atom
// aromatic), aliphatic (the rest), and saturated (aliphatic rings whose ring
// bonds are all single).
func RingCounts(mol *Molecule) (aromatic, aliphatic, saturated int) {
	for _, ring := range mol.rings {
		allArom := true
		for _, ai := range ring {
			if !mol.Atoms[ai].Aromatic {
				allArom = false
				break
			}
		}
		if allArom {
			aromatic++
			continue
		}
		aliphatic++
		rs := map[int]bool{}
		for _, ai := range ring {
			rs[ai] = true
		}
		sat := true
		for _, b := range mol.Bonds {
			if rs[b.A1] && rs[b.A2] && b.InRing {
				if b.Order != BondSingle {
					sat = false
				}
			}
		}
		for _, ai := range ring {
			if mol.Atoms[ai].Aromatic {
				sat = false
			}
		}
		if sat {
			saturated++
		}
	}
	return aromatic, aliphatic, saturated
}

// Descriptors computes the full descriptor vector in FeatureNames order.
func Descriptors(mol *Molecule) []float64 {
	ar, al, sat := RingCounts(mol)
	return []float64{
		MolecularWeight(mol),
		LogP(mol),
		float64(HBondDonors(mol)),
		float64(HBondAcceptors(mol)),
		TPSA(mol),
		float64(RotatableBonds(mol)),
		float64(ar),
		float64(al),
		float64(sat),
	}
}
