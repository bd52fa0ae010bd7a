// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd

import "math/big"

// ExactlyOneOf builds the diagram accepting exactly one of vars,
// regardless of every other variable. vars must be sorted ascending
// with no repeats.
func (f *Factory[W]) ExactlyOneOf(vars []Variable) (Edge[W], error) {
	return f.ExactlyNOf(vars, 1)
}

// ExactlyNOf builds the diagram accepting assignments with exactly n
// of vars true, regardless of every other variable. vars must be
// sorted ascending with no repeats.
func (f *Factory[W]) ExactlyNOf(vars []Variable, n int) (Edge[W], error) {
	if err := f.checkSorted(vars); err != nil {
		return f.falseEdge(), err
	}
	if n < 0 || n > len(vars) {
		return f.falseEdge(), nil
	}
	if len(vars) == 0 {
		if f.kind == ZDD {
			return f.allSubsetsFrom(0, f.varnum)
		}
		return f.trueEdge(), nil
	}

	memo := make(map[countKey]Edge[W])
	res, err := f.exactlyNOfRec(vars, n, 0, memo)
	if err != nil {
		return f.falseEdge(), err
	}
	if f.kind == ZDD {
		res, err = f.dontCarePad(res, 0, vars[0])
		if err != nil {
			return f.falseEdge(), err
		}
	}
	return res, nil
}

type countKey struct {
	pos, n int
}

// exactlyNOfRec recurses over vars[pos:], counting how many of the
// remaining variables must be true. On a ZDD factory the gap between
// consecutive selected variables (and beyond the last one) is padded
// with dontCarePad, since an absent ZDD node would otherwise mean
// "excluded", not "doesn't matter"; on a BDD factory, skipping a
// variable already reads as "don't care", so no padding is needed.
func (f *Factory[W]) exactlyNOfRec(vars []Variable, n, pos int, memo map[countKey]Edge[W]) (Edge[W], error) {
	remaining := len(vars) - pos
	if n < 0 || n > remaining {
		return f.falseEdge(), nil
	}
	if pos == len(vars) {
		if n == 0 {
			return f.trueEdge(), nil
		}
		return f.falseEdge(), nil
	}
	key := countKey{pos: pos, n: n}
	if cached, ok := memo[key]; ok {
		return cached, nil
	}

	lo, err := f.exactlyNOfRec(vars, n, pos+1, memo)
	if err != nil {
		return f.falseEdge(), err
	}
	hi, err := f.exactlyNOfRec(vars, n-1, pos+1, memo)
	if err != nil {
		return f.falseEdge(), err
	}

	if f.kind == ZDD {
		next := f.varnum
		if pos+1 < len(vars) {
			next = vars[pos+1]
		}
		lo, err = f.dontCarePad(lo, vars[pos]+1, next)
		if err != nil {
			return f.falseEdge(), err
		}
		hi, err = f.dontCarePad(hi, vars[pos]+1, next)
		if err != nil {
			return f.falseEdge(), err
		}
	}

	res, err := f.makeNode(vars[pos], lo, hi)
	if err != nil {
		return f.falseEdge(), err
	}
	memo[key] = res
	return res, nil
}

func (f *Factory[W]) checkSorted(vars []Variable) error {
	for i, v := range vars {
		if v >= f.varnum {
			return f.newError(VariableOutOfRange, "variable %d is out of range for a factory with %d variables", v, f.varnum)
		}
		if i > 0 && v <= vars[i-1] {
			return f.newError(VariableOutOfRange, "variables must be sorted ascending with no repeats, got %d then %d", vars[i-1], v)
		}
	}
	return nil
}

// MinimumSolution finds a satisfying assignment of e using the fewest
// true variables, preferring the lo branch whenever it ties the hi
// branch's count. Returns false if e is the false edge.
func (f *Factory[W]) MinimumSolution(e Edge[W]) ([]Variable, bool, error) {
	if err := f.checkOwned(e); err != nil {
		return nil, false, err
	}
	if e.IsFalse() {
		return nil, false, nil
	}
	length := int(e.node) + 1
	const noSolution = -1
	counts := make([]int, length)
	counts[sinkFalse] = noSolution
	if length > 1 {
		counts[sinkTrue] = 0
	}
	for i := 2; i < length; i++ {
		n := f.nodes[i]
		lo := counts[n.lo.node]
		hi := counts[n.hi.node]
		switch {
		case lo == noSolution && hi == noSolution:
			counts[i] = noSolution
		case hi == noSolution:
			counts[i] = lo
		case lo == noSolution:
			counts[i] = hi + 1
		case lo <= hi+1:
			counts[i] = lo
		default:
			counts[i] = hi + 1
		}
	}
	if counts[e.node] == noSolution {
		return nil, false, nil
	}

	var res []Variable
	cur := e.node
	for cur != sinkTrue {
		n := f.nodes[cur]
		lo := counts[n.lo.node]
		hi := counts[n.hi.node]
		if hi == noSolution || (lo != noSolution && lo <= hi+1) {
			cur = n.lo.node
		} else {
			res = append(res, n.variable)
			cur = n.hi.node
		}
	}
	return res, true, nil
}

// NthSolution returns the index-th satisfying assignment of e in
// ascending-variable lexicographic order (0 <= index < the total
// solution count), without materializing every solution: it descends
// the diagram once, at each node and each BDD "don't care" gap
// comparing index against the number of solutions the lo/false branch
// accounts for. weight converts an edge's own multiplicity into a
// scalar count multiplier, as in SatCount; pass
// func(NoMultiplicity) *big.Int { return big.NewInt(1) } for plain
// set-valued factories. Returns false if index is out of range.
func (f *Factory[W]) NthSolution(e Edge[W], index *big.Int, weight func(W) *big.Int) ([]Variable, bool, error) {
	if err := f.checkOwned(e); err != nil {
		return nil, false, err
	}
	if index.Sign() < 0 {
		return nil, false, nil
	}
	counts := numberSolutionsTable(f, e.node, CardinalityAlgebra(weight))

	total := scaledCount(f, counts, e, weight)
	if f.kind == BDD {
		total = dealWithIndeterminateRangeBig(total, 0, f.levelOf(e))
	}
	if index.Cmp(total) >= 0 {
		return nil, false, nil
	}

	remaining := new(big.Int).Set(index)
	var res []Variable
	cur := e
	atVariable := Variable(0)
	for {
		s := scaledCount(f, counts, cur, weight)
		level := f.levelOf(cur)

		if f.kind == BDD && level > atVariable {
			gap := int(level - atVariable)
			blockSize := new(big.Int).Lsh(s, uint(gap-1))
			for v := atVariable; v < level; v++ {
				if remaining.Cmp(blockSize) >= 0 {
					remaining.Sub(remaining, blockSize)
					res = append(res, v)
				}
				blockSize.Rsh(blockSize, 1)
			}
		}

		if cur.IsSink() {
			break
		}
		n := f.nodes[cur.node]
		loCount := scaledCount(f, counts, n.lo, weight)
		if f.kind == BDD {
			loCount = dealWithIndeterminateRangeBig(loCount, n.variable+1, f.levelOf(n.lo))
		}
		if remaining.Cmp(loCount) < 0 {
			cur = n.lo
		} else {
			remaining.Sub(remaining, loCount)
			res = append(res, n.variable)
			cur = n.hi
		}
		atVariable = n.variable + 1
	}
	return res, true, nil
}

func scaledCount[W comparable](f *Factory[W], counts []*big.Int, e Edge[W], weight func(W) *big.Int) *big.Int {
	c := counts[e.node]
	if f.alg.IsOne(e.Weight) {
		return new(big.Int).Set(c)
	}
	return new(big.Int).Mul(c, weight(e.Weight))
}

func dealWithIndeterminateRangeBig(g *big.Int, from, upto Variable) *big.Int {
	if upto <= from {
		return g
	}
	return new(big.Int).Lsh(g, uint(upto-from))
}
