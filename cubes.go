// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd

// Cube builds the conjunction of the positive literals for vars. On a BDD factory this is
// the usual "cube" used to mark a set of variables for Exist; on a ZDD
// factory, where True is the family holding only the empty set, Cube of
// any non-empty vars collapses to False (the empty set and distinct
// singleton sets never intersect), which is the expected and correct
// ZDD reading of the same construction, not a special case to guard
// against.
func (f *Factory[W]) Cube(vars []Variable) (Edge[W], error) {
	res := f.trueEdge()
	for _, v := range vars {
		lit, err := f.Ithvar(int(v))
		if err != nil {
			return f.falseEdge(), err
		}
		res, err = f.And(res, lit)
		if err != nil {
			return f.falseEdge(), err
		}
	}
	return res, nil
}

// ScanCube is the dual of Cube: given an edge built by Cube (or any
// diagram shaped like one, i.e. every lo-edge is False), it returns the
// variables found by following the hi branch to the true sink.
func (f *Factory[W]) ScanCube(e Edge[W]) []Variable {
	var res []Variable
	cur := e
	for !cur.IsSink() {
		n := f.nodes[cur.node]
		res = append(res, n.variable)
		cur = n.hi
	}
	return res
}

// Exist computes the existential quantification of e over vars: the
// diagram accepting an assignment iff some extension of it over vars
// is accepted by e. Projecting out a variable merges its two branches
// with Union, the same operation that expresses ordinary boolean
// existential quantification ("or the two branches together") and the
// ZDD/MZDD reading of "project this variable away".
func (f *Factory[W]) Exist(e Edge[W], vars []Variable) (Edge[W], error) {
	if err := f.checkOwned(e); err != nil {
		return f.falseEdge(), err
	}
	varset := make(map[Variable]bool, len(vars))
	for _, v := range vars {
		varset[v] = true
	}
	memo := make(map[Edge[W]]Edge[W])
	return f.existRec(e, varset, memo)
}

func (f *Factory[W]) existRec(e Edge[W], varset map[Variable]bool, memo map[Edge[W]]Edge[W]) (Edge[W], error) {
	if e.IsSink() {
		return e, nil
	}
	if res, ok := memo[e]; ok {
		return res, nil
	}
	n := f.nodes[e.node]
	lo, err := f.existRec(Edge[W]{node: n.lo.node, Weight: f.alg.Mul(n.lo.Weight, e.Weight)}, varset, memo)
	if err != nil {
		return f.falseEdge(), err
	}
	hi, err := f.existRec(Edge[W]{node: n.hi.node, Weight: f.alg.Mul(n.hi.Weight, e.Weight)}, varset, memo)
	if err != nil {
		return f.falseEdge(), err
	}

	var res Edge[W]
	if varset[n.variable] {
		res, err = f.apply(Union, lo, hi)
	} else {
		res, err = f.makeNode(n.variable, lo, hi)
	}
	if err != nil {
		return f.falseEdge(), err
	}
	memo[e] = res
	return res, nil
}
