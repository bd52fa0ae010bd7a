// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd_test

import (
	"math/big"
	"testing"

	"github.com/dalzilio/xdd"
)

func mustFactory(t *testing.T, kind xdd.Kind, varnum int) *xdd.Factory[xdd.NoMultiplicity] {
	t.Helper()
	f, err := xdd.NewFactory[xdd.NoMultiplicity](kind, varnum, xdd.NoMultiplicityAlgebra())
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	return f
}

// TestUnionCommutative checks a union is invariant under operand order,
// across a handful of BDD and ZDD expressions.
func TestUnionCommutative(t *testing.T) {
	for _, kind := range []xdd.Kind{xdd.BDD, xdd.ZDD} {
		f := mustFactory(t, kind, 4)
		a, _ := f.Ithvar(0)
		b, _ := f.Ithvar(1)
		c, _ := f.Ithvar(2)
		x, err := f.Union(a, b)
		if err != nil {
			t.Fatalf("Union: %v", err)
		}
		x, err = f.Union(x, c)
		if err != nil {
			t.Fatalf("Union: %v", err)
		}
		y, err := f.Union(c, a)
		if err != nil {
			t.Fatalf("Union: %v", err)
		}
		y, err = f.Union(y, b)
		if err != nil {
			t.Fatalf("Union: %v", err)
		}
		if x != y {
			t.Errorf("%v: Union is not commutative: a|b|c = %v, c|a|b = %v", kind, x, y)
		}
	}
}

// TestIntersectionAssociative checks (a & b) & c == a & (b & c).
func TestIntersectionAssociative(t *testing.T) {
	for _, kind := range []xdd.Kind{xdd.BDD, xdd.ZDD} {
		f := mustFactory(t, kind, 4)
		a, _ := f.Ithvar(0)
		b, _ := f.Ithvar(1)
		c, _ := f.Ithvar(2)
		ab, _ := f.Intersection(a, b)
		left, err := f.Intersection(ab, c)
		if err != nil {
			t.Fatalf("Intersection: %v", err)
		}
		bc, _ := f.Intersection(b, c)
		right, err := f.Intersection(a, bc)
		if err != nil {
			t.Fatalf("Intersection: %v", err)
		}
		if left != right {
			t.Errorf("%v: Intersection is not associative", kind)
		}
	}
}

// TestUnionIdentity checks that False is Union's identity and
// Intersection's annihilator.
func TestUnionIdentity(t *testing.T) {
	for _, kind := range []xdd.Kind{xdd.BDD, xdd.ZDD} {
		f := mustFactory(t, kind, 3)
		a, _ := f.Ithvar(0)
		u, err := f.Union(a, f.False())
		if err != nil {
			t.Fatalf("Union: %v", err)
		}
		if u != a {
			t.Errorf("%v: a | False != a", kind)
		}
		i, err := f.Intersection(a, f.False())
		if err != nil {
			t.Fatalf("Intersection: %v", err)
		}
		if i != f.False() {
			t.Errorf("%v: a & False != False", kind)
		}
	}
}

// TestNotInvolution checks Not(Not(e)) == e on a BDD factory, and that
// Not is rejected outright on a ZDD factory (use NotZDD there instead).
func TestNotInvolution(t *testing.T) {
	f := mustFactory(t, xdd.BDD, 3)
	a, _ := f.Ithvar(0)
	b, _ := f.Ithvar(1)
	e, err := f.Or(a, b)
	if err != nil {
		t.Fatalf("Or: %v", err)
	}
	n1, err := f.Not(e)
	if err != nil {
		t.Fatalf("Not: %v", err)
	}
	n2, err := f.Not(n1)
	if err != nil {
		t.Fatalf("Not: %v", err)
	}
	if n2 != e {
		t.Errorf("Not(Not(e)) != e")
	}

	zf := mustFactory(t, xdd.ZDD, 3)
	za, _ := zf.Ithvar(0)
	if _, err := zf.Not(za); err == nil {
		t.Errorf("Not on a ZDD factory should fail, use NotZDD")
	}
}

// TestDeMorgan checks Not(a & b) == Not(a) | Not(b) on a BDD factory.
func TestDeMorgan(t *testing.T) {
	f := mustFactory(t, xdd.BDD, 3)
	a, _ := f.Ithvar(0)
	b, _ := f.Ithvar(1)
	ab, _ := f.And(a, b)
	left, err := f.Not(ab)
	if err != nil {
		t.Fatalf("Not: %v", err)
	}
	na, _ := f.Not(a)
	nb, _ := f.Not(b)
	right, err := f.Or(na, nb)
	if err != nil {
		t.Fatalf("Or: %v", err)
	}
	if left != right {
		t.Errorf("De Morgan's law failed: !(a&b) != !a | !b")
	}
}

// TestNotZDDInvolution checks NotZDD(NotZDD(e, n), n) == e relative to a
// fixed universe size.
func TestNotZDDInvolution(t *testing.T) {
	f := mustFactory(t, xdd.ZDD, 4)
	a, _ := f.Ithvar(0)
	b, _ := f.Ithvar(2)
	e, err := f.Union(a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	n1, err := f.NotZDD(e, 4)
	if err != nil {
		t.Fatalf("NotZDD: %v", err)
	}
	n2, err := f.NotZDD(n1, 4)
	if err != nil {
		t.Fatalf("NotZDD: %v", err)
	}
	if n2 != e {
		t.Errorf("NotZDD(NotZDD(e, n), n) != e")
	}
}

// TestSatCountConjunction checks that the set of two independent
// variables conjoined has exactly one satisfying assignment.
func TestSatCountConjunction(t *testing.T) {
	f := mustFactory(t, xdd.BDD, 2)
	a, _ := f.Ithvar(0)
	b, _ := f.Ithvar(1)
	e, err := f.And(a, b)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	count, err := xdd.SatCount(f, e, weightOnePerm)
	if err != nil {
		t.Fatalf("SatCount: %v", err)
	}
	if count.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("SatCount(v0 & v1) = %s, want 1", count)
	}
}

// TestZDDCardinality checks that the family {{v0}, {v1,v2}} has
// cardinality 2 and generating function z + z^2.
func TestZDDCardinality(t *testing.T) {
	f := mustFactory(t, xdd.ZDD, 3)
	v0, _ := f.Ithvar(0)
	// Intersection on a ZDD factory intersects families ({{v1}} and
	// {{v2}} share no member), so {{v1,v2}} is taken as the v0-absent
	// branch of the two-of-{v1,v2} family.
	pair, err := f.ExactlyNOf([]xdd.Variable{1, 2}, 2)
	if err != nil {
		t.Fatalf("ExactlyNOf: %v", err)
	}
	v1v2, err := f.Restrict(pair, 0, false)
	if err != nil {
		t.Fatalf("Restrict: %v", err)
	}
	family, err := f.Union(v0, v1v2)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	count, err := xdd.SatCount(f, family, weightOnePerm)
	if err != nil {
		t.Fatalf("SatCount: %v", err)
	}
	if count.Cmp(big.NewInt(2)) != 0 {
		t.Errorf("cardinality of {{v0},{v1,v2}} = %s, want 2", count)
	}
	gf, err := xdd.GeneratingFunction(f, family, weightOnePerm)
	if err != nil {
		t.Fatalf("GeneratingFunction: %v", err)
	}
	want := xdd.Polynomial{big.NewInt(0), big.NewInt(1), big.NewInt(1)}
	if len(gf) != len(want) {
		t.Fatalf("generating function has %d coefficients, want %d", len(gf), len(want))
	}
	for i := range want {
		if gf[i].Cmp(want[i]) != 0 {
			t.Errorf("coefficient %d = %s, want %s", i, gf[i], want[i])
		}
	}
}

func weightUint64(w uint64) *big.Int { return new(big.Int).SetUint64(w) }

// TestMultisetUnionIntersection checks the scenario 2*{v0} + 3*{v1}
// union-with-self doubles each multiplicity, and intersecting the
// original with 1*{v0} + 1*{v1} (multiplicities multiply) leaves it
// unchanged.
func TestMultisetUnionIntersection(t *testing.T) {
	f, err := xdd.NewFactory[uint64](xdd.ZDD, 2, xdd.Uint64MultiplicityAlgebra())
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	v0, _ := f.Ithvar(0)
	v1, _ := f.Ithvar(1)

	m0, err := weightedEdge(f, v0, 2)
	if err != nil {
		t.Fatalf("weightedEdge: %v", err)
	}
	m1, err := weightedEdge(f, v1, 3)
	if err != nil {
		t.Fatalf("weightedEdge: %v", err)
	}
	set, err := f.Union(m0, m1)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}

	doubled, err := f.Union(set, set)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	checkMultiplicities(t, f, doubled, map[int]uint64{0: 4, 1: 6})

	ones, err := f.Union(v0, v1)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	back, err := f.Intersection(set, ones)
	if err != nil {
		t.Fatalf("Intersection: %v", err)
	}
	checkMultiplicities(t, f, back, map[int]uint64{0: 2, 1: 3})
}

// weightedEdge scales a single-variable edge's weight, working around
// the fact that Ithvar always returns weight One: Union(e, e, ..., e)
// would work too, but multiplying directly is clearer for a test fixture.
func weightedEdge(f *xdd.Factory[uint64], e xdd.Edge[uint64], w uint64) (xdd.Edge[uint64], error) {
	acc := f.False()
	for i := uint64(0); i < w; i++ {
		var err error
		acc, err = f.Union(acc, e)
		if err != nil {
			return f.False(), err
		}
	}
	return acc, nil
}

func checkMultiplicities(t *testing.T, f *xdd.Factory[uint64], e xdd.Edge[uint64], want map[int]uint64) {
	t.Helper()
	for v, w := range want {
		vv, _ := f.Ithvar(v)
		only, err := f.Intersection(e, vv)
		if err != nil {
			t.Fatalf("Intersection: %v", err)
		}
		count, err := xdd.SatCount(f, only, weightUint64)
		if err != nil {
			t.Fatalf("SatCount: %v", err)
		}
		if count.Cmp(new(big.Int).SetUint64(w)) != 0 {
			t.Errorf("multiplicity of v%d = %s, want %d", v, count, w)
		}
	}
}
