// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd

import "math/big"

// GFAlgebra packages the operations a generating-function result type G
// must support to be accumulated over a diagram. Go has no trait
// objects and methods cannot add their own type parameters, so the
// evaluator (NumberSolutions) is a package-level generic function
// taking this struct-of-closures rather than a Factory method, the same
// pattern as Algebra[W] for the weight carrier itself.
type GFAlgebra[W comparable, G any] struct {
	Zero, One G
	Add       func(a, b G) G
	// Scale accounts for an edge's own multiplicity; for NoMultiplicity
	// carriers this is always the identity.
	Scale func(g G, w W) G
	// VariableSet/VariableNotSet record the effect of a variable being
	// true/false in the solutions g already aggregates. A plain
	// solution count leaves both as the identity; a term-counting
	// generating function shifts VariableSet by one degree.
	VariableSet    func(g G, v Variable) G
	VariableNotSet func(g G, v Variable) G
}

// dealWithIndeterminateRange folds in every possible assignment to the
// variables [from, upto) that a BDD traversal skipped over: a BDD,
// unlike a ZDD, does not zero-suppress "don't care" variables, so the count
// must account for both of their values at every skipped level. ZDD
// evaluation never calls this, since a ZDD's skipped variables are
// already excluded by construction (the hi-edge to false was
// suppressed), not indeterminate.
func dealWithIndeterminateRange[W comparable, G any](g G, from, upto Variable, alg GFAlgebra[W, G]) G {
	for v := upto; v > from; v-- {
		set := alg.VariableSet(g, v-1)
		notSet := alg.VariableNotSet(g, v-1)
		g = alg.Add(set, notSet)
	}
	return g
}

// levelOf reports the variable level used for gap accounting: the
// target node's own variable, or the factory's variable count if the
// edge targets a sink (meaning "no variable left to skip up to").
func (f *Factory[W]) levelOf(e Edge[W]) Variable {
	if e.IsSink() {
		return f.varnum
	}
	return f.nodes[e.node].variable
}

// NumberSolutions evaluates a generating function over every
// assignment e accepts: one bottom-up, memoized traversal of the node table computing res[i] for every node
// index up to e's, then folding in e's own multiplicity and (for BDD)
// the indeterminate range above e's top variable. The same traversal
// serves a plain solution count (G = *big.Int via CardinalityAlgebra),
// a term-counting generating function (G = Polynomial via
// PolynomialAlgebra), or any other accumulator a caller supplies.
//
// Because a factory's node table is append-only and a node can only
// reference edges that already existed when it was built (makeNode
// never forward-references), node index order is already a valid
// topological order: res[i] only ever reads res[j] for j < i.
func NumberSolutions[W comparable, G any](f *Factory[W], e Edge[W], alg GFAlgebra[W, G]) (G, error) {
	if err := f.checkOwned(e); err != nil {
		var zero G
		return zero, err
	}
	res := numberSolutionsTable(f, e.node, alg)
	found := res[e.node]
	if f.kind == BDD {
		found = dealWithIndeterminateRange(found, 0, f.levelOf(e), alg)
	}
	return alg.Scale(found, e.Weight), nil
}

// numberSolutionsTable computes, for every node index up to and
// including upto, the accumulator value for that node's own subtree
// (not yet scaled by any edge pointing into it, and not yet folded
// against a gap above its own variable). Factored out of
// NumberSolutions so other per-node consumers (solution unranking in
// solutions.go) can reuse the same table instead of re-deriving it.
func numberSolutionsTable[W comparable, G any](f *Factory[W], upto nodeIndex, alg GFAlgebra[W, G]) []G {
	length := int(upto) + 1
	res := make([]G, length)
	res[sinkFalse] = alg.Zero
	if length > 1 {
		res[sinkTrue] = alg.One
	}
	for i := 2; i < length; i++ {
		n := f.nodes[i]
		nextVariable := n.variable + 1

		lo := res[n.lo.node]
		if !f.alg.IsOne(n.lo.Weight) {
			lo = alg.Scale(lo, n.lo.Weight)
		}
		if f.kind == BDD {
			lo = dealWithIndeterminateRange(lo, nextVariable, f.levelOf(n.lo), alg)
		}
		lo = alg.VariableNotSet(lo, n.variable)

		hi := res[n.hi.node]
		if !f.alg.IsOne(n.hi.Weight) {
			hi = alg.Scale(hi, n.hi.Weight)
		}
		if f.kind == BDD {
			hi = dealWithIndeterminateRange(hi, nextVariable, f.levelOf(n.hi), alg)
		}
		hi = alg.VariableSet(hi, n.variable)

		res[i] = alg.Add(lo, hi)
	}
	return res
}

// CardinalityAlgebra returns a GFAlgebra that counts solutions as an
// arbitrary-precision integer, generalized over any weight carrier:
// weight converts an edge's
// multiplicity into the number of solutions it stands for (for
// NoMultiplicity this is always 1).
func CardinalityAlgebra[W comparable](weight func(W) *big.Int) GFAlgebra[W, *big.Int] {
	return GFAlgebra[W, *big.Int]{
		Zero: big.NewInt(0),
		One:  big.NewInt(1),
		Add: func(a, b *big.Int) *big.Int {
			return new(big.Int).Add(a, b)
		},
		Scale: func(g *big.Int, w W) *big.Int {
			return new(big.Int).Mul(g, weight(w))
		},
		VariableSet:    func(g *big.Int, _ Variable) *big.Int { return g },
		VariableNotSet: func(g *big.Int, _ Variable) *big.Int { return g },
	}
}

// SatCount counts the number of satisfying assignments (BDD) or sets
// (ZDD) that e accepts. weight converts one edge's own multiplicity
// into a count multiplier; pass
// func(NoMultiplicity) *big.Int { return big.NewInt(1) }
// for plain set-valued factories.
func SatCount[W comparable](f *Factory[W], e Edge[W], weight func(W) *big.Int) (*big.Int, error) {
	return NumberSolutions(f, e, CardinalityAlgebra(weight))
}

// Polynomial represents a generating function, full or truncated, as coefficients
// of ascending powers of z: Polynomial{c0, c1, c2} denotes
// c0 + c1*z + c2*z^2. A nil or empty Polynomial denotes the zero
// polynomial. Index i counts the number of variables set to true
// across all solutions contributing coefficient i: the
// "cardinality-graded" generating function (e.g. {{v0},{v1,v2}}
// denotes z + z^2).
type Polynomial []*big.Int

func (p Polynomial) at(i int) *big.Int {
	if i < len(p) {
		return p[i]
	}
	return big.NewInt(0)
}

func addPolynomial(a, b Polynomial) Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	res := make(Polynomial, n)
	for i := 0; i < n; i++ {
		res[i] = new(big.Int).Add(a.at(i), b.at(i))
	}
	return res
}

// shiftPolynomial multiplies p by z, recording that one more variable
// was set to true along every term it already carries.
func shiftPolynomial(p Polynomial) Polynomial {
	res := make(Polynomial, len(p)+1)
	res[0] = big.NewInt(0)
	copy(res[1:], p)
	return res
}

func scalePolynomial(p Polynomial, m *big.Int) Polynomial {
	res := make(Polynomial, len(p))
	for i, c := range p {
		res[i] = new(big.Int).Mul(c, m)
	}
	return res
}

// PolynomialAlgebra returns a GFAlgebra producing the cardinality
// generating function: the coefficient of z^k is the number of
// solutions with exactly k variables set to true. weight converts an
// edge's multiplicity into a scalar multiplier, as in CardinalityAlgebra.
func PolynomialAlgebra[W comparable](weight func(W) *big.Int) GFAlgebra[W, Polynomial] {
	one := Polynomial{big.NewInt(1)}
	return GFAlgebra[W, Polynomial]{
		Zero: nil,
		One:  one,
		Add:  addPolynomial,
		Scale: func(g Polynomial, w W) Polynomial {
			return scalePolynomial(g, weight(w))
		},
		VariableSet:    func(g Polynomial, _ Variable) Polynomial { return shiftPolynomial(g) },
		VariableNotSet: func(g Polynomial, _ Variable) Polynomial { return g },
	}
}

// GeneratingFunction computes e's cardinality generating function: the
// coefficient of z^k is the number of solutions with exactly k true
// variables.
func GeneratingFunction[W comparable](f *Factory[W], e Edge[W], weight func(W) *big.Int) (Polynomial, error) {
	return NumberSolutions(f, e, PolynomialAlgebra(weight))
}

// TruncatedPolynomialAlgebra is PolynomialAlgebra with every term above
// maxDegree discarded as soon as it would appear, rather than computed
// and thrown away afterwards: Add and the VariableSet shift both clip
// their result to maxDegree+1 coefficients.
func TruncatedPolynomialAlgebra[W comparable](weight func(W) *big.Int, maxDegree int) GFAlgebra[W, Polynomial] {
	one := Polynomial{big.NewInt(1)}
	truncate := func(p Polynomial) Polynomial {
		if len(p) > maxDegree+1 {
			return p[:maxDegree+1]
		}
		return p
	}
	return GFAlgebra[W, Polynomial]{
		Zero: nil,
		One:  truncate(one),
		Add: func(a, b Polynomial) Polynomial {
			return truncate(addPolynomial(a, b))
		},
		Scale: func(g Polynomial, w W) Polynomial {
			return scalePolynomial(g, weight(w))
		},
		VariableSet:    func(g Polynomial, _ Variable) Polynomial { return truncate(shiftPolynomial(g)) },
		VariableNotSet: func(g Polynomial, _ Variable) Polynomial { return g },
	}
}

// TruncatedGeneratingFunction is GeneratingFunction bounded to degree
// maxDegree: coefficients for higher degrees are never computed, which
// matters when e accepts assignments with many more true variables than
// a caller has any use for counting precisely.
func TruncatedGeneratingFunction[W comparable](f *Factory[W], e Edge[W], weight func(W) *big.Int, maxDegree int) (Polynomial, error) {
	return NumberSolutions(f, e, TruncatedPolynomialAlgebra(weight, maxDegree))
}

// MultiplicityHistogram maps each distinct multiplicity value reachable
// by some solution to how many solutions carry it: the split-by-
// multiplicity counterpart to a single scalar SatCount or a
// cardinality-graded GeneratingFunction.
type MultiplicityHistogram[W comparable] map[W]*big.Int

func addHistogram[W comparable](a, b MultiplicityHistogram[W]) MultiplicityHistogram[W] {
	res := make(MultiplicityHistogram[W], len(a)+len(b))
	for w, c := range a {
		res[w] = new(big.Int).Set(c)
	}
	for w, c := range b {
		if prev, ok := res[w]; ok {
			res[w] = new(big.Int).Add(prev, c)
		} else {
			res[w] = new(big.Int).Set(c)
		}
	}
	return res
}

// MultiplicityHistogramAlgebra returns a GFAlgebra producing a
// split-by-multiplicity table. mul composes an edge's own weight with a
// value already in the table, the same multiplication the carrier's
// Algebra[W].Mul performs; one is W's multiplicative identity
// (Algebra[W].One), seeding the single solution the true sink
// contributes.
func MultiplicityHistogramAlgebra[W comparable](mul func(a, b W) W, one W) GFAlgebra[W, MultiplicityHistogram[W]] {
	return GFAlgebra[W, MultiplicityHistogram[W]]{
		Zero: MultiplicityHistogram[W]{},
		One:  MultiplicityHistogram[W]{one: big.NewInt(1)},
		Add:  addHistogram[W],
		Scale: func(g MultiplicityHistogram[W], w W) MultiplicityHistogram[W] {
			res := make(MultiplicityHistogram[W], len(g))
			for k, c := range g {
				nk := mul(k, w)
				if prev, ok := res[nk]; ok {
					res[nk] = new(big.Int).Add(prev, c)
				} else {
					res[nk] = new(big.Int).Set(c)
				}
			}
			return res
		},
		VariableSet:    func(g MultiplicityHistogram[W], _ Variable) MultiplicityHistogram[W] { return g },
		VariableNotSet: func(g MultiplicityHistogram[W], _ Variable) MultiplicityHistogram[W] { return g },
	}
}

// SolutionHistogram reports, for e, how many solutions carry each
// distinct multiplicity value their path accumulates, using f's own
// multiplicity algebra to compose weights.
func SolutionHistogram[W comparable](f *Factory[W], e Edge[W]) (MultiplicityHistogram[W], error) {
	return NumberSolutions(f, e, MultiplicityHistogramAlgebra(f.alg.Mul, f.alg.One))
}
