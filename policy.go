// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd

// cofactor computes the two cofactors of edge e at traversal variable
// v. This is the one place BDD and ZDD behavior diverges inside the
// apply engine, implemented as a Kind switch rather than a Go
// interface, since an interface method cannot be generic over W on its
// own — only the enclosing Factory[W] can be.
func (f *Factory[W]) cofactor(e Edge[W], v Variable) (lo, hi Edge[W]) {
	if e.IsSink() {
		if f.kind == ZDD {
			return e, f.falseEdge()
		}
		return e, e
	}
	n := f.nodes[e.node]
	if n.variable > v {
		if f.kind == BDD {
			return e, e
		}
		return e, f.falseEdge()
	}
	// n.variable == v: apply always picks v as the minimum of the two
	// operand variables, so a strictly-smaller node variable here would
	// be a caller bug, not a case to handle silently.
	lo = Edge[W]{node: n.lo.node, Weight: f.alg.Mul(n.lo.Weight, e.Weight)}
	hi = Edge[W]{node: n.hi.node, Weight: f.alg.Mul(n.hi.Weight, e.Weight)}
	return lo, hi
}

// Not computes the BDD complement of e. It is UnsupportedOperation on a
// ZDD factory: ZDD complement needs a universe size, see NotZDD.
func (f *Factory[W]) Not(e Edge[W]) (Edge[W], error) {
	if f.kind != BDD {
		return f.falseEdge(), f.newError(UnsupportedOperation, "Not requires NotZDD(edge, upto) on a ZDD factory")
	}
	if err := f.checkOwned(e); err != nil {
		return f.falseEdge(), err
	}
	return f.notBDD(e)
}

func (f *Factory[W]) notBDD(e Edge[W]) (Edge[W], error) {
	if e.IsFalse() {
		return f.trueEdge(), nil
	}
	if e.IsTrue() {
		return f.falseEdge(), nil
	}
	key := cacheKey[W]{op: notTag, left: e, right: e}
	if v, ok := f.cache.get(key); ok {
		return v, nil
	}
	n := f.nodes[e.node]
	lo, err := f.notBDD(n.lo)
	if err != nil {
		return f.falseEdge(), err
	}
	hi, err := f.notBDD(n.hi)
	if err != nil {
		return f.falseEdge(), err
	}
	result, err := f.makeNode(n.variable, lo, hi)
	if err != nil {
		return f.falseEdge(), err
	}
	f.cache.set(key, result)
	return result, nil
}

// notTag is a private Operator value used only as the cache discriminant
// for Not/NotZDD, kept out of the public Operator enum since Not takes
// one operand, not two (the cache key still needs two edges, so Not's
// single operand is stored twice).
const notTag Operator = 0xFE

// NotZDD computes the ZDD complement of e relative to a universe of
// upto variables [0, upto): a ZDD diagram whose reachable variables are
// a strict subset of [0, upto) still denotes subsets of the *full*
// universe — variables it never mentions are implicitly excluded from
// every member of the set it represents, not "don't care".
//
// The complement relative to upto is exactly the set difference
// between the full powerset of [0, upto) and e. Building that universe
// diagram explicitly (allSubsetsFrom) and handing both it and e to the
// ordinary memoized Difference combinator is sufficient and correct:
// apply's own ZDD cofactor rule (when an edge's node variable is above
// the traversal variable, its lo-cofactor is itself and its hi-cofactor
// is the zero edge) already encodes "this diagram never selects this
// variable", which is precisely the padding the gap needs. No separate
// traversal is required beyond allSubsetsFrom itself.
func (f *Factory[W]) NotZDD(e Edge[W], upto Variable) (Edge[W], error) {
	if f.kind != ZDD {
		return f.falseEdge(), f.newError(UnsupportedOperation, "NotZDD requires a ZDD factory")
	}
	if err := f.checkOwned(e); err != nil {
		return f.falseEdge(), err
	}
	if upto > f.varnum {
		return f.falseEdge(), f.newError(VariableOutOfRange, "universe size %d exceeds factory variable count %d", upto, f.varnum)
	}
	universe, err := f.allSubsetsFrom(0, upto)
	if err != nil {
		return f.falseEdge(), err
	}
	return f.apply(Difference, universe, e)
}

// allSubsetsFrom builds the ZDD representing every subset (including
// the empty one) of the variable range [from, upto), by doubling the
// accumulated diagram at each level: at variable v, both "v absent" and
// "v present" lead to the same continuation.
func (f *Factory[W]) allSubsetsFrom(from, upto Variable) (Edge[W], error) {
	return f.dontCarePad(f.trueEdge(), from, upto)
}

// dontCarePad extends base with a chain of nodes over [from, upto)
// whose lo and hi children are both the accumulator so far: a ZDD
// reading this diagram treats every variable in the range as
// irrelevant to whether base is reached, neither excluding it from a
// member nor requiring it. ExactlyOneOf/ExactlyNOf use it to pad the
// gaps a linear-chain construction leaves on a ZDD factory.
func (f *Factory[W]) dontCarePad(base Edge[W], from, upto Variable) (Edge[W], error) {
	e := base
	for v := upto; v > from; v-- {
		var err error
		e, err = f.makeNode(v-1, e, e)
		if err != nil {
			return f.falseEdge(), err
		}
	}
	return e, nil
}
