// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd

import (
	"fmt"
	"log"
)

// Factory owns a single node table, its unique-ness hash index, and an
// operation cache, for one choice of reduction Kind and one multiplicity
// carrier W. Every Edge it produces is only valid for this Factory;
// an edge from another factory is reported as CrossFactoryEdge at the
// API boundary when its node index is out of range for this table (see
// checkOwned).
//
// A Factory is not safe for concurrent use from multiple goroutines:
// the core is single-threaded cooperative, and callers needing
// concurrent access must serialize it themselves.
type Factory[W comparable] struct {
	diag

	kind   Kind
	alg    Algebra[W]
	varnum Variable

	nodes  []node[W]
	unique map[nodeKey[W]]nodeIndex

	// ithvar[v] is the edge representing the single-variable diagram
	// for variable v; nithvar[v] is its BDD negation (unused for ZDD).
	ithvar  []Edge[W]
	nithvar []Edge[W]

	maxnodesize     int
	maxnodeincrease int
	debug           bool

	cache *opCache[W]

	produced int // total nodes ever created, for Stats
}

// Stats summarizes a factory's size for diagnostics and benchmarking; it
// carries no information the caller needs for correctness.
type Stats struct {
	Kind      Kind
	Variables int
	Nodes     int // live entries, excluding the two sinks
	Produced  int // total nodes ever created (== Nodes unless Compact reclaimed some)
	CacheSize int
}

func (s Stats) String() string {
	return fmt.Sprintf("%s factory: %d variables, %d nodes, cache size %d",
		s.Kind, s.Variables, s.Nodes, s.CacheSize)
}

// NewFactory creates a factory with varnum variables, reduction rule
// kind, and multiplicity algebra alg. Pass NoMultiplicityAlgebra() for
// plain BDD/ZDD behavior.
func NewFactory[W comparable](kind Kind, varnum int, alg Algebra[W], opts ...func(*factoryConfig)) (*Factory[W], error) {
	if varnum < 0 || varnum > int(MaxVariable) {
		return nil, newError(VariableOutOfRange, "invalid variable count %d", varnum)
	}
	cfg := makeFactoryConfig(varnum)
	for _, opt := range opts {
		opt(cfg)
	}
	f := &Factory[W]{
		kind:            kind,
		alg:             alg,
		varnum:          Variable(varnum),
		nodes:           make([]node[W], 2, cfg.nodesize),
		unique:          make(map[nodeKey[W]]nodeIndex, cfg.nodesize),
		maxnodesize:     cfg.maxnodesize,
		maxnodeincrease: cfg.maxnodeincrease,
		debug:           cfg.debug || _DEBUG,
		ithvar:          make([]Edge[W], varnum),
		nithvar:         make([]Edge[W], varnum),
	}
	// sinks occupy indices 0 and 1; their "variable" is sinkVariable so
	// the ordering invariant holds trivially for every real node.
	f.nodes[sinkFalse] = node[W]{variable: sinkVariable, lo: f.falseEdge(), hi: f.falseEdge()}
	f.nodes[sinkTrue] = node[W]{variable: sinkVariable, lo: f.trueEdge(), hi: f.trueEdge()}
	f.cache = newOpCache[W](cfg.cachesize, cfg.cacheratio)

	for v := 0; v < varnum; v++ {
		hi, err := f.makeNode(Variable(v), f.falseEdge(), f.trueEdge())
		if err != nil {
			return nil, err
		}
		f.ithvar[v] = hi
		if kind == BDD {
			lo, err := f.makeNode(Variable(v), f.trueEdge(), f.falseEdge())
			if err != nil {
				return nil, err
			}
			f.nithvar[v] = lo
		}
	}
	return f, nil
}

func (f *Factory[W]) falseEdge() Edge[W] { return Edge[W]{node: sinkFalse, Weight: f.alg.Zero} }
func (f *Factory[W]) trueEdge() Edge[W]  { return Edge[W]{node: sinkTrue, Weight: f.alg.One} }

// False returns the constant-false / empty-set edge.
func (f *Factory[W]) False() Edge[W] { return f.falseEdge() }

// True returns the constant-true / single-empty-assignment edge.
func (f *Factory[W]) True() Edge[W] { return f.trueEdge() }

// Kind reports the factory's reduction discipline.
func (f *Factory[W]) Kind() Kind { return f.kind }

// Varnum reports the number of variables this factory was created with.
func (f *Factory[W]) Varnum() int { return int(f.varnum) }

// Ithvar returns the edge representing "variable v is true" (BDD) or
// "the set containing only {v}" (ZDD).
func (f *Factory[W]) Ithvar(v int) (Edge[W], error) {
	if v < 0 || v >= int(f.varnum) {
		return f.falseEdge(), f.newError(VariableOutOfRange, "variable %d not in [0,%d)", v, f.varnum)
	}
	return f.ithvar[v], nil
}

// NIthvar returns the BDD negation of variable v. It is UnsupportedOperation
// on a ZDD factory: zero-suppressed diagrams have no single-atom
// "variable is false" representation distinct from the universe.
func (f *Factory[W]) NIthvar(v int) (Edge[W], error) {
	if f.kind == ZDD {
		return f.falseEdge(), f.newError(UnsupportedOperation, "NIthvar is undefined for ZDD factories")
	}
	if v < 0 || v >= int(f.varnum) {
		return f.falseEdge(), f.newError(VariableOutOfRange, "variable %d not in [0,%d)", v, f.varnum)
	}
	return f.nithvar[v], nil
}

// variableOf returns the variable an edge's target compares as for the
// ordering invariant: sinkVariable for either sink, else the node's own
// variable.
func (f *Factory[W]) variableOf(e Edge[W]) Variable {
	if e.IsSink() {
		return sinkVariable
	}
	return f.nodes[e.node].variable
}

// makeNode is the sole constructor of non-sink nodes. It enforces the
// reduction rule for f.kind, canonicalizes through the unique table, and
// grows the node array monotonically (no entry is ever reused or
// reclaimed implicitly; see Factory.Compact in compact.go for the
// explicit, opt-in alternative).
func (f *Factory[W]) makeNode(v Variable, lo, hi Edge[W]) (Edge[W], error) {
	if v >= f.varnum {
		return f.falseEdge(), f.newError(VariableOutOfRange, "variable %d not in [0,%d)", v, f.varnum)
	}
	if lov := f.variableOf(lo); lov <= v {
		return f.falseEdge(), f.newError(VariableOutOfRange, "lo edge variable %d does not exceed node variable %d", lov, v)
	}
	if hiv := f.variableOf(hi); hiv <= v {
		return f.falseEdge(), f.newError(VariableOutOfRange, "hi edge variable %d does not exceed node variable %d", hiv, v)
	}

	switch f.kind {
	case BDD:
		if lo == hi {
			return lo, nil
		}
	case ZDD:
		if hi.IsFalse() {
			return lo, nil
		}
	}

	key := nodeKey[W]{variable: v, lo: lo, hi: hi}
	if idx, ok := f.unique[key]; ok {
		return Edge[W]{node: idx, Weight: f.alg.One}, nil
	}

	if f.maxnodesize > 0 && len(f.nodes) >= f.maxnodesize {
		return f.falseEdge(), f.newError(CapacityExceeded, "factory at maximum capacity (%d nodes)", f.maxnodesize)
	}
	if len(f.nodes) >= (1<<31)-1 {
		return f.falseEdge(), f.newError(CapacityExceeded, "node index space exhausted")
	}

	idx := nodeIndex(len(f.nodes))
	f.growNodes()
	f.nodes = append(f.nodes, node[W]{variable: v, lo: lo, hi: hi})
	f.unique[nodeKey[W]{variable: v, lo: lo, hi: hi}] = idx
	f.produced++
	f.cache.growForTable(len(f.nodes))
	if f.debug {
		log.Printf("xdd: new node %d = (%d, %v, %v)\n", idx, v, lo, hi)
	}
	return Edge[W]{node: idx, Weight: f.alg.One}, nil
}

// growNodes doubles the node table's backing array when it is full,
// capping the increase at maxnodeincrease (when positive) so a table
// already holding many nodes does not double into an equally huge
// allocation in one step; append still does the actual job when
// capacity already covers the next entry.
func (f *Factory[W]) growNodes() {
	if len(f.nodes) < cap(f.nodes) {
		return
	}
	newCap := cap(f.nodes) * 2
	if newCap == 0 {
		newCap = _DEFAULTNODESIZE
	}
	if f.maxnodeincrease > 0 {
		if inc := newCap - cap(f.nodes); inc > f.maxnodeincrease {
			newCap = cap(f.nodes) + f.maxnodeincrease
		}
	}
	grown := make([]node[W], len(f.nodes), newCap)
	copy(grown, f.nodes)
	f.nodes = grown
}

// Stats reports current factory size for diagnostics.
func (f *Factory[W]) Stats() Stats {
	return Stats{
		Kind:      f.kind,
		Variables: int(f.varnum),
		Nodes:     len(f.nodes) - 2,
		Produced:  f.produced,
		CacheSize: f.cache.size(),
	}
}

// checkOwned reports CrossFactoryEdge if e's node index is out of range
// for this factory's table — the cheap, sound half of detecting edges
// that leaked in from a different factory (two factories of the same
// shape can still collide on small indices, so mixing edges across
// factories is undefined behavior beyond what this check catches).
func (f *Factory[W]) checkOwned(e Edge[W]) error {
	if int(e.node) < 0 || int(e.node) >= len(f.nodes) {
		return f.newError(CrossFactoryEdge, "edge %v does not belong to this factory", e)
	}
	return nil
}
