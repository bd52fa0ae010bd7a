// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd

import "fmt"

// PermutedItem indexes an element of a permutation; by convention
// items are numbered starting at 1, not 0.
type PermutedItem uint32

// AtomKind selects which family of generators a PermutationFactory's
// variables denote: SwapAtom (transpositions) for πDD, or RotationAtom
// (left rotations) for Rot-πDD. The two share everything except the variable-rewrite rule
// (Rewrite), which branches on this value rather than existing as two
// separate generic instantiations, since the rewrite rule is not
// expressible as a single combinator shared by both — one is a simple
// involution, the other requires Inoue's four-way case split.
type AtomKind uint8

const (
	SwapAtom AtomKind = iota
	RotationAtom
)

func (k AtomKind) String() string {
	if k == RotationAtom {
		return "left-rotation"
	}
	return "swap"
}

// PermutationElement is one generator of the permutation group: a
// transposition τ(i,j) or a left rotation ρ(i,j), depending on the
// owning factory's AtomKind. Elem1 < Elem2 always.
type PermutationElement struct {
	Elem1, Elem2 PermutedItem
}

func (e PermutationElement) String() string {
	return fmt.Sprintf("(%d,%d)", e.Elem1, e.Elem2)
}

// permutationEncoding assigns each generator τ(i,j)/ρ(i,j) of the
// symmetric group on n items a distinct ZDD variable, ordered so that
// generators with a larger second index come first: the ordering the
// canonical-decomposition rewrite rules rely on to give every
// permutation exactly one representation as a set of atoms.
type permutationEncoding struct {
	n        PermutedItem
	elements []PermutationElement
}

func newPermutationEncoding(n PermutedItem) *permutationEncoding {
	var elements []PermutationElement
	for j := n; j >= 2; j-- {
		for i := PermutedItem(1); i < j; i++ {
			elements = append(elements, PermutationElement{Elem1: i, Elem2: j})
		}
	}
	return &permutationEncoding{n: n, elements: elements}
}

func (enc *permutationEncoding) numVariables() int { return len(enc.elements) }

// variable computes the ZDD variable for generator (i,j) directly from
// the triangular-number layout, without scanning elements.
func (enc *permutationEncoding) variable(i, j PermutedItem) Variable {
	rows := enc.n - j
	elementsInRows := (enc.n - 1 + enc.n - rows) * rows / 2
	return Variable(i - 1 + elementsInRows)
}

func (enc *permutationEncoding) elementAt(v Variable) PermutationElement {
	return enc.elements[v]
}

// PermutationFactory wraps a ZDD Factory[NoMultiplicity] whose variables
// are generators of the symmetric group on n elements rather than free
// propositional variables, implementing πDD (AtomKind SwapAtom) and
// Rot-πDD (AtomKind RotationAtom), per Minato's and Inoue's
// constructions. Standard set operations (Union, Intersection, and so
// on) are inherited directly from the embedded Factory; only the
// generator-specific Rewrite and Compose need their own logic.
type PermutationFactory struct {
	*Factory[NoMultiplicity]

	kind AtomKind
	vars *permutationEncoding

	rewriteCache map[rewriteKey]Edge[NoMultiplicity]
	composeCache map[composeKey]Edge[NoMultiplicity]
}

type rewriteKey struct {
	e Edge[NoMultiplicity]
	v Variable
}

type composeKey struct {
	p, q Edge[NoMultiplicity]
}

// NewPermutationFactory builds a factory over the symmetric group on n
// elements, with n(n-1)/2 ZDD variables, one per generator.
func NewPermutationFactory(kind AtomKind, n int) (*PermutationFactory, error) {
	if n < 0 {
		return nil, newError(VariableOutOfRange, "permutation size %d is negative", n)
	}
	enc := newPermutationEncoding(PermutedItem(n))
	f, err := NewFactory[NoMultiplicity](ZDD, enc.numVariables(), NoMultiplicityAlgebra())
	if err != nil {
		return nil, err
	}
	return &PermutationFactory{
		Factory:      f,
		kind:         kind,
		vars:         enc,
		rewriteCache: make(map[rewriteKey]Edge[NoMultiplicity]),
		composeCache: make(map[composeKey]Edge[NoMultiplicity]),
	}, nil
}

// AtomKind reports whether this factory's generators are swaps or left
// rotations.
func (pf *PermutationFactory) AtomKind() AtomKind { return pf.kind }

// N reports the number of elements being permuted.
func (pf *PermutationFactory) N() int { return int(pf.vars.n) }

// Identity returns the edge representing the set containing only the
// identity permutation.
func (pf *PermutationFactory) Identity() Edge[NoMultiplicity] { return pf.trueEdge() }

// Swap rewrites every permutation e represents by appending the
// transposition τ(i,j). UnsupportedOperation if this factory's atoms
// are left rotations, not swaps.
func (pf *PermutationFactory) Swap(e Edge[NoMultiplicity], i, j PermutedItem) (Edge[NoMultiplicity], error) {
	if pf.kind != SwapAtom {
		return pf.falseEdge(), pf.newError(UnsupportedOperation, "Swap requires a Swap-kind permutation factory")
	}
	return pf.Rewrite(e, i, j)
}

// LeftRot rewrites every permutation e represents by appending the left
// rotation ρ(i,j). UnsupportedOperation if this factory's atoms are
// swaps, not left rotations.
func (pf *PermutationFactory) LeftRot(e Edge[NoMultiplicity], i, j PermutedItem) (Edge[NoMultiplicity], error) {
	if pf.kind != RotationAtom {
		return pf.falseEdge(), pf.newError(UnsupportedOperation, "LeftRot requires a LeftRotation-kind permutation factory")
	}
	return pf.Rewrite(e, i, j)
}

// Rewrite is the shared entry point behind Swap and LeftRot: it
// extends every permutation e represents by the generator (i,j),
// preserving the canonical-decomposition invariant that a valid
// πDD/Rot-πDD never has two atoms sharing the same second element. The
// swap and rotation atom kinds share this traversal and differ only in
// the case split performed when rewriting past an existing node whose
// generator's second element is not below j.
func (pf *PermutationFactory) Rewrite(e Edge[NoMultiplicity], i, j PermutedItem) (Edge[NoMultiplicity], error) {
	if i == j {
		return e, nil
	}
	if i > j {
		return pf.Rewrite(e, j, i)
	}
	if e.IsFalse() {
		return e, nil
	}
	v := pf.vars.variable(i, j)
	if e.IsTrue() {
		return pf.makeNode(v, pf.falseEdge(), pf.trueEdge())
	}

	n := pf.nodes[e.node]
	here := pf.vars.elementAt(n.variable)
	if here.Elem2 < j {
		// The existing diagram's top generator sits below (i,j) in
		// variable order; (i,j) simply becomes the new top atom.
		return pf.makeNode(v, pf.falseEdge(), e)
	}

	key := rewriteKey{e: e, v: v}
	if cached, ok := pf.rewriteCache[key]; ok {
		return cached, nil
	}

	lo, err := pf.Rewrite(n.lo, i, j)
	if err != nil {
		return pf.falseEdge(), err
	}

	var hi Edge[NoMultiplicity]
	switch pf.kind {
	case SwapAtom:
		hi, err = pf.rewriteSwapHi(n, here, i, j)
	default:
		hi, err = pf.rewriteRotationHi(n, here, i, j)
	}
	if err != nil {
		return pf.falseEdge(), err
	}

	res, err := pf.Union(lo, hi)
	if err != nil {
		return pf.falseEdge(), err
	}
	pf.rewriteCache[key] = res
	return res, nil
}

// rewriteSwapHi composes τ(i,j) onto the hi-branch of a node whose own
// generator is τ(here.Elem1,here.Elem2), following the commutation
// rule τ(x,y)·τ(i,j) = τ(i,j')·τ(i',y).
func (pf *PermutationFactory) rewriteSwapHi(n node[NoMultiplicity], here PermutationElement, i, j PermutedItem) (Edge[NoMultiplicity], error) {
	hiJ := j
	if j == here.Elem2 {
		hiJ = here.Elem1
	}
	hi1, err := pf.Rewrite(n.hi, i, hiJ)
	if err != nil {
		return pf.falseEdge(), err
	}
	var hiI PermutedItem
	switch {
	case here.Elem1 == j:
		hiI = i
	case here.Elem1 == i:
		hiI = j
	default:
		hiI = here.Elem1
	}
	return pf.Rewrite(hi1, hiI, here.Elem2)
}

// rewriteRotationHi is the left-rotation analogue of rewriteSwapHi:
// ρ(x,y)·ρ(i,j) rewrites to ρ(x',y)·ρ(i',j') for some x' depending on
// how (i,j) relates to (x,y) = here.
func (pf *PermutationFactory) rewriteRotationHi(n node[NoMultiplicity], here PermutationElement, i, j PermutedItem) (Edge[NoMultiplicity], error) {
	var xPrime PermutedItem
	var preHi Edge[NoMultiplicity]
	var err error
	switch {
	case j < here.Elem1:
		xPrime = here.Elem1
		preHi, err = pf.Rewrite(n.hi, i, j)
	case j == here.Elem1:
		xPrime = i
		preHi = n.hi
	case i <= here.Elem1:
		xPrime = here.Elem1 + 1
		preHi, err = pf.Rewrite(n.hi, i, j-1)
	default:
		xPrime = here.Elem1
		preHi, err = pf.Rewrite(n.hi, i-1, j-1)
	}
	if err != nil {
		return pf.falseEdge(), err
	}
	return pf.Rewrite(preHi, xPrime, here.Elem2)
}

// Compose computes { p*q : p in P, q in Q } for the permutation sets P
// and Q that edges p and q represent, where * is permutation
// composition (apply p, then q): recurse over q's structure, rewriting
// each branch's result by the generator q's own top node carries.
func (pf *PermutationFactory) Compose(p, q Edge[NoMultiplicity]) (Edge[NoMultiplicity], error) {
	if p.IsFalse() || q.IsFalse() {
		return pf.falseEdge(), nil
	}
	if p.IsTrue() {
		return q, nil
	}
	if q.IsTrue() {
		return p, nil
	}

	key := composeKey{p: p, q: q}
	if cached, ok := pf.composeCache[key]; ok {
		return cached, nil
	}

	qn := pf.nodes[q.node]
	qElem := pf.vars.elementAt(qn.variable)

	lo, err := pf.Compose(p, qn.lo)
	if err != nil {
		return pf.falseEdge(), err
	}
	hi, err := pf.Compose(p, qn.hi)
	if err != nil {
		return pf.falseEdge(), err
	}
	hi, err = pf.Rewrite(hi, qElem.Elem1, qElem.Elem2)
	if err != nil {
		return pf.falseEdge(), err
	}

	res, err := pf.Union(lo, hi)
	if err != nil {
		return pf.falseEdge(), err
	}
	pf.composeCache[key] = res
	return res, nil
}

// atomOrder reports the order of the cyclic group generated by a single
// atom: 2 for a transposition (its own inverse), or the span length for
// a left rotation ρ(i,j), which cycles j-i+1 elements.
func atomOrder(kind AtomKind, e PermutationElement) int {
	if kind == RotationAtom {
		return int(e.Elem2-e.Elem1) + 1
	}
	return 2
}

// elementInverse returns the single-permutation edge for the inverse of
// the lone generator g, computed as g raised to its (order-1)-th power:
// appending the same generator enough times to complete its cycle
// undoes the first application.
func (pf *PermutationFactory) elementInverse(g PermutationElement) (Edge[NoMultiplicity], error) {
	order := atomOrder(pf.kind, g)
	inv := pf.Identity()
	var err error
	for k := 0; k < order-1; k++ {
		inv, err = pf.Rewrite(inv, g.Elem1, g.Elem2)
		if err != nil {
			return pf.falseEdge(), err
		}
	}
	return inv, nil
}

// enumerate walks every permutation e represents, recording for each one
// the generators selected along its path in top-to-bottom variable
// order (equivalently: decreasing second index, the order
// permutationEncoding lays its variables out in).
func (pf *PermutationFactory) enumerate(e Edge[NoMultiplicity]) [][]PermutationElement {
	var results [][]PermutationElement
	var walk func(cur Edge[NoMultiplicity], acc []PermutationElement)
	walk = func(cur Edge[NoMultiplicity], acc []PermutationElement) {
		if cur.IsFalse() {
			return
		}
		if cur.IsTrue() {
			sol := make([]PermutationElement, len(acc))
			copy(sol, acc)
			results = append(results, sol)
			return
		}
		n := pf.nodes[cur.node]
		elem := pf.vars.elementAt(n.variable)
		walk(n.lo, acc)
		next := make([]PermutationElement, len(acc)+1)
		copy(next, acc)
		next[len(acc)] = elem
		walk(n.hi, next)
	}
	walk(e, nil)
	return results
}

// Inverse computes { p⁻¹ : p ∈ E }, the set of group inverses of every
// permutation e represents, so that Compose(p, Inverse(p)) is Identity
// for every single permutation p. A permutation decomposes, in
// top-to-bottom variable order, into a sequence of generators am, ...,
// a1 (the construction order is increasing second index, the reverse of
// that traversal); its inverse is a1⁻¹ * ... * am⁻¹ under Compose's
// apply-left-first convention, which this builds by composing
// elementInverse of each generator in traversal order.
func (pf *PermutationFactory) Inverse(e Edge[NoMultiplicity]) (Edge[NoMultiplicity], error) {
	if err := pf.checkOwned(e); err != nil {
		return pf.falseEdge(), err
	}
	res := pf.falseEdge()
	for _, atoms := range pf.enumerate(e) {
		inv := pf.Identity()
		for _, g := range atoms {
			ginv, err := pf.elementInverse(g)
			if err != nil {
				return pf.falseEdge(), err
			}
			inv, err = pf.Compose(inv, ginv)
			if err != nil {
				return pf.falseEdge(), err
			}
		}
		var err error
		res, err = pf.Union(res, inv)
		if err != nil {
			return pf.falseEdge(), err
		}
	}
	return res, nil
}

// GenerateGroup computes the closure of generators under Compose and
// Inverse, starting from the identity: the smallest permutation set
// containing the identity, every generator and its inverse, and closed
// under composing any two of its own members. It converges by
// repeatedly squaring the accumulated set (group := group ∪
// Compose(group, group)) until a round adds nothing new, which the
// factory's canonicalization lets this detect as plain edge equality.
func (pf *PermutationFactory) GenerateGroup(generators []Edge[NoMultiplicity]) (Edge[NoMultiplicity], error) {
	group := pf.Identity()
	for _, g := range generators {
		if err := pf.checkOwned(g); err != nil {
			return pf.falseEdge(), err
		}
		ginv, err := pf.Inverse(g)
		if err != nil {
			return pf.falseEdge(), err
		}
		group, err = pf.Union(group, g)
		if err != nil {
			return pf.falseEdge(), err
		}
		group, err = pf.Union(group, ginv)
		if err != nil {
			return pf.falseEdge(), err
		}
	}
	for {
		squared, err := pf.Compose(group, group)
		if err != nil {
			return pf.falseEdge(), err
		}
		next, err := pf.Union(group, squared)
		if err != nil {
			return pf.falseEdge(), err
		}
		if next == group {
			return group, nil
		}
		group = next
	}
}

// Member reports whether target, a single permutation, belongs to the
// set e represents. target itself must denote exactly one permutation
// (Identity, a single generator, or any Compose/Rewrite result built
// from one); membership is then exactly the subset test Intersection(e,
// target) == target.
func (pf *PermutationFactory) Member(e, target Edge[NoMultiplicity]) (bool, error) {
	if err := pf.checkOwned(e); err != nil {
		return false, err
	}
	if err := pf.checkOwned(target); err != nil {
		return false, err
	}
	inter, err := pf.Intersection(e, target)
	if err != nil {
		return false, err
	}
	return inter == target, nil
}

// ConstructAllPermutations builds the full symmetric group on N()
// elements: n! permutations, built up one element at a time by
// rewriting the permutations on the first i-1 elements with every
// generator that inserts element i.
func (pf *PermutationFactory) ConstructAllPermutations() (Edge[NoMultiplicity], error) {
	res := pf.trueEdge()
	for i := PermutedItem(1); i <= pf.vars.n; i++ {
		prev := res
		for j := PermutedItem(1); j < i; j++ {
			extra, err := pf.Rewrite(prev, j, i)
			if err != nil {
				return pf.falseEdge(), err
			}
			res, err = pf.Union(res, extra)
			if err != nil {
				return pf.falseEdge(), err
			}
		}
	}
	return res, nil
}
