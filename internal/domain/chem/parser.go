package chem

import (
	"sort"
	"strconv"
	"strings"

	"github.com/molscreen/molscreen/pkg/errors"
)

// twoCharElems are the two-character element symbols accepted outside
// brackets.
var twoCharElems = map[string]bool{"Cl": true, "Br": true}

// organicUpper is the organic-subset element set writable without brackets.
var organicUpper = map[byte]bool{
	'B': true, 'C': true, 'N': true, 'O': true,
	'P': true, 'S': true, 'F': true, 'I': true,
}

// ParseSMILES parses a SMILES string covering the organic subset plus bracket
// atoms (isotopes and chirality markers are accepted and discarded; explicit
// hydrogen counts and formal charges are kept).  Supported syntax: branches,
// ring closures (single digit and %nn), dot-separated components, and the
// bond symbols - = # : / \.
//
// All failures return an AppError with code CHEM_001.
func ParseSMILES(s string) (*Molecule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.ParseFailed("empty SMILES")
	}
	mol := NewMolecule()
	prev := -1                // previous atom index, -1 = none (start / after dot)
	pending := BondOrder(0)   // 0 = unspecified
	var stack []int           // branch return points
	type ringOpen struct {
		atom  int
		order BondOrder
	}
	ringMap := map[int]ringOpen{}
	i := 0
	n := len(s)
	for i < n {
		ch := s[i]
		switch {
		case ch == '(':
			if prev < 0 {
				return nil, errors.ParseFailed("branch start with no preceding atom").WithDetail("smiles=" + s)
			}
			stack = append(stack, prev)
			i++
		case ch == ')':
			if len(stack) == 0 {
				return nil, errors.ParseFailed("unmatched closing parenthesis").WithDetail("smiles=" + s)
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			i++
		case ch == '-' || ch == '=' || ch == '#' || ch == ':' || ch == '/' || ch == '\\':
			if pending != 0 {
				return nil, errors.ParseFailed("consecutive bond symbols").WithDetail("smiles=" + s)
			}
			switch ch {
			case '-', '/', '\\':
				pending = BondSingle
			case '=':
				pending = BondDouble
			case '#':
				pending = BondTriple
			default:
				pending = BondAromatic
			}
			i++
		case ch == '.':
			if pending != 0 {
				return nil, errors.ParseFailed("bond symbol before dot").WithDetail("smiles=" + s)
			}
			prev = -1
			i++
		case isDigit(ch) || ch == '%':
			var num int
			if ch == '%' {
				if i+2 >= n || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
					return nil, errors.ParseFailed("invalid % ring closure").WithDetail("smiles=" + s)
				}
				num, _ = strconv.Atoi(s[i+1 : i+3])
				i += 3
			} else {
				num = int(ch - '0')
				i++
			}
			if prev < 0 {
				return nil, errors.ParseFailed("ring closure with no preceding atom").WithDetail("smiles=" + s)
			}
			if open, ok := ringMap[num]; ok {
				delete(ringMap, num)
				order := open.order
				if order == 0 {
					order = pending
				} else if pending != 0 && pending != order {
					return nil, errors.ParseFailed("conflicting ring bond orders").WithDetail("smiles=" + s)
				}
				if order == 0 {
					if mol.Atoms[prev].Aromatic && mol.Atoms[open.atom].Aromatic {
						order = BondAromatic
					} else {
						order = BondSingle
					}
				}
				if open.atom == prev {
					return nil, errors.ParseFailed("ring closure to self").WithDetail("smiles=" + s)
				}
				mol.AddBond(open.atom, prev, order)
				pending = 0
			} else {
				ringMap[num] = ringOpen{atom: prev, order: pending}
				pending = 0
			}
		case ch == '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return nil, errors.ParseFailed("unclosed bracket atom").WithDetail("smiles=" + s)
			}
			j += i
			ai, err := parseBracketAtom(mol, s[i+1:j])
			if err != nil {
				return nil, err
			}
			if err := attach(mol, ai, prev, pending); err != nil {
				return nil, err
			}
			pending = 0
			prev = ai
			i = j + 1
		case isAlpha(ch) || ch == '*':
			if ch == '*' {
				return nil, errors.ParseFailed("wildcard atom not supported").WithDetail("smiles=" + s)
			}
			var elem string
			aromatic := false
			if ch >= 'A' && ch <= 'Z' {
				if i+1 < n && twoCharElems[s[i:i+2]] {
					elem = s[i : i+2]
					i += 2
				} else if organicUpper[ch] {
					elem = string(ch)
					i++
				} else {
					return nil, errors.ParseFailed("unknown element: " + string(ch)).WithDetail("smiles=" + s)
				}
			} else {
				if aromaticElems[ch] {
					elem = strings.ToUpper(string(ch))
					aromatic = true
					i++
				} else {
					return nil, errors.ParseFailed("unknown aromatic element: " + string(ch)).WithDetail("smiles=" + s)
				}
			}
			ai := mol.AddAtom(&Atom{Element: elem, Aromatic: aromatic})
			if err := attach(mol, ai, prev, pending); err != nil {
				return nil, err
			}
			pending = 0
			prev = ai
		default:
			return nil, errors.ParseFailed("unexpected character: " + string(ch)).WithDetail("smiles=" + s)
		}
	}
	if len(stack) != 0 {
		return nil, errors.ParseFailed("unclosed branch").WithDetail("smiles=" + s)
	}
	if len(ringMap) != 0 {
		return nil, errors.ParseFailed("unclosed ring bond").WithDetail("smiles=" + s)
	}
	if pending != 0 {
		return nil, errors.ParseFailed("dangling bond symbol").WithDetail("smiles=" + s)
	}
	assignImplicitH(mol)
	perceiveRings(mol)
	return mol, nil
}

// attach bonds the freshly added atom ai to prev, honoring any pending bond
// symbol.  When no bond symbol was given, two aromatic atoms join with an
// aromatic bond, everything else with a single bond.
func attach(mol *Molecule, ai, prev int, pending BondOrder) error {
	if prev < 0 {
		if pending != 0 {
			return errors.ParseFailed("bond with no preceding atom")
		}
		return nil
	}
	order := pending
	if order == 0 {
		if mol.Atoms[ai].Aromatic && mol.Atoms[prev].Aromatic {
			order = BondAromatic
		} else {
			order = BondSingle
		}
	}
	mol.AddBond(prev, ai, order)
	return nil
}

// parseBracketAtom parses the body of a [...] atom: optional isotope digits,
// the element symbol, discarded chirality markers, an optional explicit
// hydrogen count, and an optional formal charge.
func parseBracketAtom(mol *Molecule, body string) (int, error) {
	i := 0
	n := len(body)
	// isotope (discarded)
	for i < n && isDigit(body[i]) {
		i++
	}
	if i >= n {
		return 0, errors.ParseFailed("bracket atom missing element").WithDetail("bracket=" + body)
	}
	var elem string
	aromatic := false
	if body[i] >= 'a' && body[i] <= 'z' {
		if !aromaticElems[body[i]] {
			return 0, errors.ParseFailed("unknown aromatic element: " + string(body[i])).WithDetail("bracket=" + body)
		}
		elem = strings.ToUpper(string(body[i]))
		aromatic = true
		i++
	} else {
		if i+1 < n && body[i+1] >= 'a' && body[i+1] <= 'z' {
			if _, ok := atomicWeights[body[i:i+2]]; ok {
				elem = body[i : i+2]
				i += 2
			} else {
				elem = string(body[i])
				i++
			}
		} else {
			elem = string(body[i])
			i++
		}
		if _, ok := atomicWeights[elem]; !ok {
			return 0, errors.ParseFailed("unknown element: " + elem).WithDetail("bracket=" + body)
		}
	}
	// chirality (discarded)
	for i < n && body[i] == '@' {
		i++
	}
	// explicit H
	explicitH := 0
	if i < n && body[i] == 'H' {
		i++
		if i < n && isDigit(body[i]) {
			explicitH = int(body[i] - '0')
			i++
		} else {
			explicitH = 1
		}
	}
	// charge
	charge := 0
	if i < n && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		i++
		if i < n && isDigit(body[i]) {
			charge = sign * int(body[i]-'0')
			i++
		} else {
			charge = sign
			for i < n && (body[i] == '+' || body[i] == '-') {
				charge += sign
				i++
			}
		}
	}
	if i != n {
		return 0, errors.ParseFailed("trailing characters in bracket atom").WithDetail("bracket=" + body)
	}
	a := &Atom{Element: elem, Aromatic: aromatic, Charge: charge, ExplicitH: explicitH, Bracket: true}
	return mol.AddAtom(a), nil
}

// assignImplicitH completes the valence of every non-bracket atom.  An
// aromatic atom consumes one extra valence unit for the delocalized system,
// except when it is already fully substituted (three-connected aromatic
// nitrogen carries no hydrogen).
func assignImplicitH(mol *Molecule) {
	for ai, a := range mol.Atoms {
		if a.Bracket {
			continue // bracket atoms carry explicit H only
		}
		vals, ok := valences[a.Element]
		if !ok {
			continue
		}
		used := mol.BondOrderSum(ai)
		if a.Aromatic {
			used++
			if used > vals[0] {
				used--
			}
		}
		h := 0
		for _, v := range vals {
			if v >= used {
				h = v - used
				break
			}
		}
		a.ImplicitH = h
	}
}

// perceiveRings finds a spanning forest via BFS; each non-tree bond closes a
// ring, and the smallest ring through it is recorded.  Rings are deduplicated
// by sorted atom set, and ring membership flags are set on atoms and bonds.
func perceiveRings(mol *Molecule) {
	n := len(mol.Atoms)
	if n == 0 {
		return
	}
	visited := make([]bool, n)
	treeBond := make([]bool, len(mol.Bonds))
	var nontree []int
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue := []int{start}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, bi := range mol.adj[u] {
				v := mol.Neighbor(u, bi)
				if !visited[v] {
					visited[v] = true
					treeBond[bi] = true
					queue = append(queue, v)
				}
			}
		}
	}
	for bi := range mol.Bonds {
		if !treeBond[bi] {
			nontree = append(nontree, bi)
		}
	}
	seen := map[string]bool{}
	for _, bi := range nontree {
		ring := smallestRingThrough(mol, bi)
		if ring == nil {
			continue
		}
		key := make([]int, len(ring))
		copy(key, ring)
		sort.Ints(key)
		sig := ringSignature(key)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		mol.rings = append(mol.rings, key)
		for _, ai := range ring {
			mol.Atoms[ai].InRing = true
		}
		rs := map[int]bool{}
		for _, ai := range ring {
			rs[ai] = true
		}
		for _, b := range mol.Bonds {
			if rs[b.A1] && rs[b.A2] && ringAdjacent(ring, b.A1, b.A2) {
				b.InRing = true
			}
		}
	}
}

// ringSignature builds a map key from a sorted atom index set.
func ringSignature(sorted []int) string {
	var sb strings.Builder
	for _, ai := range sorted {
		sb.WriteString(strconv.Itoa(ai))
		sb.WriteByte(',')
	}
	return sb.String()
}

// ringAdjacent reports whether a1 and a2 are consecutive on the closed ring
// path.
func ringAdjacent(ring []int, a1, a2 int) bool {
	k := len(ring)
	for idx := 0; idx < k; idx++ {
		u, v := ring[idx], ring[(idx+1)%k]
		if (u == a1 && v == a2) || (u == a2 && v == a1) {
			return true
		}
	}
	return false
}

// smallestRingThrough runs a BFS shortest path between the endpoints of bond
// bi while avoiding the bond itself; the path plus the bond is the smallest
// ring containing it.  Returns nil when the endpoints disconnect without the
// bond.
func smallestRingThrough(mol *Molecule, bi int) []int {
	b := mol.Bonds[bi]
	src, dst := b.A1, b.A2
	n := len(mol.Atoms)
	prevAtom := make([]int, n)
	for i := range prevAtom {
		prevAtom[i] = -1
	}
	prevAtom[src] = src
	queue := []int{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == dst {
			break
		}
		for _, bj := range mol.adj[u] {
			if bj == bi {
				continue
			}
			v := mol.Neighbor(u, bj)
			if prevAtom[v] < 0 {
				prevAtom[v] = u
				queue = append(queue, v)
			}
		}
	}
	if prevAtom[dst] < 0 {
		return nil
	}
	path := []int{dst}
	u := dst
	for u != src {
		u = prevAtom[u]
		path = append(path, u)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path // cycle: path plus implicit closure via bond bi
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
