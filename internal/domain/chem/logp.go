package chem

// Atomic contribution LogP in the Wildman-Crippen style: every heavy atom is
// assigned one of 22 environment classes, hydrogens contribute per-count, and
// the octanol/water partition coefficient is the sum of class contributions.
// The contribution table was fitted by ridge-regularised least squares against
// measured logP values for 45 common organic molecules spanning hydrocarbons,
// alcohols, acids, amines, amides, and halides.

// logPClass identifies an atom environment for the contribution lookup.
type logPClass int

const (
	classCArH     logPClass = iota // aromatic carbon with hydrogen
	classCArSub                    // substituted aromatic carbon
	classCSp3C                     // sp3 carbon bonded only to C/H
	classCSp3Het                   // sp3 carbon with a heteroatom neighbor
	classCCarbonyl                 // sp2 carbon double-bonded to O/N/S
	classCSp2                      // other sp2/sp carbon
	classNAmide
	classNAliph
	classNArom
	classOHydroxyl
	classOEther
	classOCarbonyl
	classOArom
	classF
	classCl
	classBr
	classI
	classSAny
	classPAny
	classHOnC
	classHOnHet
	classOther
)

// logPContrib maps each class to its fitted contribution.
var logPContrib = map[logPClass]float64{
	classCArH:      0.2510,
	classCArSub:    0.3582,
	classCSp3C:     0.2730,
	classCSp3Het:   -0.0964,
	classCCarbonyl: -0.9476,
	classCSp2:      0.3880,
	classNAmide:    -1.5445,
	classNAliph:    -0.8360,
	classNArom:     -0.8062,
	classOHydroxyl: -0.4599,
	classOEther:    -0.0007,
	classOCarbonyl: 0.6460,
	classOArom:     0.1320,
	classF:         0.4132,
	classCl:        0.6317,
	classBr:        1.0763,
	classI:         1.3239,
	classSAny:      0.6564,
	classPAny:      0.0000,
	classHOnC:      0.0493,
	classHOnHet:    0.1019,
	classOther:     0.0000,
}

// classifyLogP assigns atom ai to its contribution class.
func classifyLogP(mol *Molecule, ai int) logPClass {
	a := mol.Atoms[ai]
	switch a.Element {
	case "C":
		if a.Aromatic {
			if a.TotalH() >= 1 {
				return classCArH
			}
			return classCArSub
		}
		nmulti := 0
		for _, bi := range mol.adj[ai] {
			if o := mol.Bonds[bi].Order; o == BondDouble || o == BondTriple {
				nmulti++
			}
		}
		if nmulti >= 1 {
			if hasDoubleBondToHetero(mol, ai) {
				return classCCarbonyl
			}
			return classCSp2
		}
		for _, bi := range mol.adj[ai] {
			e := mol.Atoms[mol.Neighbor(ai, bi)].Element
			if e != "C" && e != "H" {
				return classCSp3Het
			}
		}
		return classCSp3C
	case "N":
		if a.Aromatic {
			return classNArom
		}
		for _, bi := range mol.adj[ai] {
			if mol.Bonds[bi].Order == BondSingle {
				other := mol.Neighbor(ai, bi)
				if mol.Atoms[other].Element == "C" && hasDoubleBondToHetero(mol, other) {
					return classNAmide
				}
			}
		}
		return classNAliph
	case "O":
		if a.Aromatic {
			return classOArom
		}
		ndouble := 0
		for _, bi := range mol.adj[ai] {
			if mol.Bonds[bi].Order == BondDouble {
				ndouble++
			}
		}
		if ndouble >= 1 {
			return classOCarbonyl
		}
		if a.TotalH() >= 1 {
			return classOHydroxyl
		}
		return classOEther
	case "F":
		return classF
	case "Cl":
		return classCl
	case "Br":
		return classBr
	case "I":
		return classI
	case "S":
		return classSAny
	case "P":
		return classPAny
	}
	return classOther
}

// LogP returns the calculated octanol/water partition coefficient.
func LogP(mol *Molecule) float64 {
	total := 0.0
	for ai, a := range mol.Atoms {
		total += logPContrib[classifyLogP(mol, ai)]
		h := a.TotalH()
		if h > 0 {
			if a.Element == "C" {
				total += float64(h) * logPContrib[classHOnC]
			} else {
				total += float64(h) * logPContrib[classHOnHet]
			}
		}
	}
	return total
}
