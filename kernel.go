// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd

// _DEFAULTNODESIZE is the initial size of a factory's node table, absent
// an explicit Nodesize option. The table grows monotonically from here
// (see table.go); there is no garbage collector reclaiming slots
// automatically, so a generous starting size matters more here than it
// would with automatic collection, since every resize is permanent.
const _DEFAULTNODESIZE int = 1000

// _DEFAULTCACHESIZE is the initial number of slots in the operation
// cache, absent an explicit Cachesize option.
const _DEFAULTCACHESIZE int = 10000

// _DEFAULTMAXNODEINC bounds how many nodes a single resize can add, so a
// pathological request does not try to double an already-huge table in
// one allocation.
const _DEFAULTMAXNODEINC int = 1 << 20
