// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd_test

import (
	"math/big"
	"testing"

	"github.com/dalzilio/xdd"
)

// TestExactlyOneOfBDD checks that ExactlyOneOf on a BDD factory accepts
// exactly n assignments out of a set of n candidate variables, times the
// don't-care factor from every other variable in the factory.
func TestExactlyOneOfBDD(t *testing.T) {
	f := mustFactory(t, xdd.BDD, 5)
	e, err := f.ExactlyOneOf([]xdd.Variable{0, 2, 4})
	if err != nil {
		t.Fatalf("ExactlyOneOf: %v", err)
	}
	count, err := xdd.SatCount(f, e, weightOnePerm)
	if err != nil {
		t.Fatalf("SatCount: %v", err)
	}
	// 3 ways to pick which of {0,2,4} is true, times 2^2 for the two
	// variables {1,3} not among the candidates.
	want := big.NewInt(3 * 4)
	if count.Cmp(want) != 0 {
		t.Errorf("ExactlyOneOf({0,2,4}) on 5 variables: got %s, want %s", count, want)
	}
}

// TestExactlyOneOfZDD checks the same property on a ZDD factory, where
// ExactlyOneOf pads every variable outside the candidate set as
// don't-care, so the count is again 3 times 2^2 for {1,3}.
func TestExactlyOneOfZDD(t *testing.T) {
	f := mustFactory(t, xdd.ZDD, 5)
	e, err := f.ExactlyOneOf([]xdd.Variable{0, 2, 4})
	if err != nil {
		t.Fatalf("ExactlyOneOf: %v", err)
	}
	count, err := xdd.SatCount(f, e, weightOnePerm)
	if err != nil {
		t.Fatalf("SatCount: %v", err)
	}
	if count.Cmp(big.NewInt(3*4)) != 0 {
		t.Errorf("ExactlyOneOf({0,2,4}) on a ZDD factory: got %s, want 12", count)
	}
}

// TestExactlyNOf checks a handful of (n choose k) counts against the
// binomial coefficient, on both factory kinds.
func TestExactlyNOf(t *testing.T) {
	binom := func(n, k int) int64 {
		num := big.NewInt(1)
		den := big.NewInt(1)
		for i := 0; i < k; i++ {
			num.Mul(num, big.NewInt(int64(n-i)))
			den.Mul(den, big.NewInt(int64(i+1)))
		}
		return num.Div(num, den).Int64()
	}
	vars := []xdd.Variable{0, 1, 2, 3, 4}
	for _, kind := range []xdd.Kind{xdd.BDD, xdd.ZDD} {
		f := mustFactory(t, kind, 5)
		for n := 0; n <= 5; n++ {
			e, err := f.ExactlyNOf(vars, n)
			if err != nil {
				t.Fatalf("ExactlyNOf(%d): %v", n, err)
			}
			count, err := xdd.SatCount(f, e, weightOnePerm)
			if err != nil {
				t.Fatalf("SatCount: %v", err)
			}
			want := big.NewInt(binom(5, n))
			if count.Cmp(want) != 0 {
				t.Errorf("%v: ExactlyNOf(vars, %d): got %s, want %s", kind, n, count, want)
			}
		}
	}
}

// TestExactlyNOfOutOfRange checks that asking for more true variables
// than candidates exist returns the false edge rather than an error.
func TestExactlyNOfOutOfRange(t *testing.T) {
	f := mustFactory(t, xdd.BDD, 4)
	e, err := f.ExactlyNOf([]xdd.Variable{0, 1}, 3)
	if err != nil {
		t.Fatalf("ExactlyNOf: %v", err)
	}
	if e != f.False() {
		t.Errorf("ExactlyNOf with n > len(vars) should be False")
	}
}

// TestMinimumSolution checks that the fewest-true-variables satisfying
// assignment of (v0 | v1) & (v1 | v2) sets only v1.
func TestMinimumSolution(t *testing.T) {
	f := mustFactory(t, xdd.BDD, 3)
	v0, _ := f.Ithvar(0)
	v1, _ := f.Ithvar(1)
	v2, _ := f.Ithvar(2)
	a, _ := f.Or(v0, v1)
	b, _ := f.Or(v1, v2)
	e, err := f.And(a, b)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	sol, ok, err := f.MinimumSolution(e)
	if err != nil {
		t.Fatalf("MinimumSolution: %v", err)
	}
	if !ok {
		t.Fatalf("MinimumSolution: expected a solution")
	}
	if len(sol) != 1 || sol[0] != 1 {
		t.Errorf("MinimumSolution((v0|v1)&(v1|v2)) = %v, want [1]", sol)
	}
}

// TestMinimumSolutionUnsatisfiable checks that MinimumSolution reports
// false for the empty set.
func TestMinimumSolutionUnsatisfiable(t *testing.T) {
	f := mustFactory(t, xdd.BDD, 2)
	_, ok, err := f.MinimumSolution(f.False())
	if err != nil {
		t.Fatalf("MinimumSolution: %v", err)
	}
	if ok {
		t.Errorf("MinimumSolution(False) should report no solution")
	}
}

// TestNthSolutionEnumeratesAll checks that walking every index from 0 up
// to the total solution count with NthSolution produces exactly the
// solutions SatCount reports, with no duplicates.
func TestNthSolutionEnumeratesAll(t *testing.T) {
	f := mustFactory(t, xdd.BDD, 4)
	v0, _ := f.Ithvar(0)
	v2, _ := f.Ithvar(2)
	e, err := f.Or(v0, v2)
	if err != nil {
		t.Fatalf("Or: %v", err)
	}
	total, err := xdd.SatCount(f, e, weightOnePerm)
	if err != nil {
		t.Fatalf("SatCount: %v", err)
	}

	weight := func(xdd.NoMultiplicity) *big.Int { return big.NewInt(1) }
	seen := make(map[string]bool)
	n := total.Int64()
	for i := int64(0); i < n; i++ {
		sol, ok, err := f.NthSolution(e, big.NewInt(i), weight)
		if err != nil {
			t.Fatalf("NthSolution(%d): %v", i, err)
		}
		if !ok {
			t.Fatalf("NthSolution(%d): expected a solution, index %d out of %s total", i, i, total)
		}
		key := solutionKey(sol)
		if seen[key] {
			t.Errorf("NthSolution(%d) duplicates an earlier solution: %v", i, sol)
		}
		seen[key] = true
	}
	if int64(len(seen)) != n {
		t.Errorf("NthSolution enumerated %d distinct solutions, want %s", len(seen), total)
	}

	if _, ok, err := f.NthSolution(e, big.NewInt(n), weight); err != nil {
		t.Fatalf("NthSolution(%d): %v", n, err)
	} else if ok {
		t.Errorf("NthSolution(%d) should be out of range", n)
	}
}

func solutionKey(vars []xdd.Variable) string {
	s := ""
	for _, v := range vars {
		s += string(rune('a' + v))
	}
	return s
}
