// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd

// factoryConfig stores the tunable parameters of a factory. Values are
// set through functional options passed to NewFactory.
type factoryConfig struct {
	varnum          int  // number of variables
	nodesize        int  // initial number of nodes in the table
	cachesize       int  // initial cache size
	cacheratio      int  // cache-size-to-node-table-size ratio (0 if fixed)
	maxnodesize     int  // maximum total number of nodes (0 if no limit)
	maxnodeincrease int  // maximum nodes added per resize (0 if no limit)
	debug           bool // force verbose logging even without the debug build tag
}

func makeFactoryConfig(varnum int) *factoryConfig {
	c := &factoryConfig{varnum: varnum}
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.nodesize = max(2*varnum+2, _DEFAULTNODESIZE)
	c.cachesize = _DEFAULTCACHESIZE
	return c
}

// Nodesize sets a preferred initial size for the node table. The table
// grows monotonically during computation regardless; this only affects
// how many reallocations an initial burst of construction needs.
func Nodesize(size int) func(*factoryConfig) {
	return func(c *factoryConfig) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize sets a hard limit on the number of nodes a factory may
// hold. An operation that would grow the table past this limit fails
// with CapacityExceeded instead of growing further. The default (0)
// means no limit, other than available memory.
func Maxnodesize(size int) func(*factoryConfig) {
	return func(c *factoryConfig) { c.maxnodesize = size }
}

// Maxnodeincrease bounds how many nodes a single resize may add. The
// default is about a million nodes; 0 removes the bound.
func Maxnodeincrease(size int) func(*factoryConfig) {
	return func(c *factoryConfig) { c.maxnodeincrease = size }
}

// Cachesize sets the initial number of slots in the operation cache.
func Cachesize(size int) func(*factoryConfig) {
	return func(c *factoryConfig) { c.cachesize = size }
}

// Cacheratio sets a cache-size-to-node-table-size ratio (percent) so the
// operation cache grows in proportion each time the node table resizes.
// 0 (the default) keeps the cache a fixed size.
func Cacheratio(ratio int) func(*factoryConfig) {
	return func(c *factoryConfig) { c.cacheratio = ratio }
}

// Debug forces a log line for every node the table creates, even when
// the binary was not built with the debug build tag.
func Debug(on bool) func(*factoryConfig) {
	return func(c *factoryConfig) { c.debug = on }
}
