// Copyright © 2021 The Stax authors

package stack

// cell is the storage shared between every Chain derived from one root.
type cell[T any] struct {
	v T
}

// Chain is a shareable storage cell with parent/child bookkeeping.  Linking
// a chain produces a child that aliases the same cell, so a Set through
// either end is visible to both.  A chain remembers at most one child, the
// most recently linked, and unlinking propagates only along that recorded
// path.  Scopes are built out of chains so that closures alias the
// variables of the scope they captured.
type Chain[T any] struct {
	cell  *cell[T]
	child *Chain[T]
	root  bool
}

// NewChain returns a root chain holding v in a fresh cell.
func NewChain[T any](v T) *Chain[T] {
	return &Chain[T]{cell: &cell[T]{v: v}, root: true}
}

// Link returns a new chain aliasing c's cell.  The new chain becomes c's
// recorded child, replacing any previous one.  Chains linked earlier keep
// aliasing the cell but fall off the recorded path.
func (c *Chain[T]) Link() *Chain[T] {
	child := &Chain[T]{cell: c.cell}
	c.child = child
	return child
}

// Set stores v in the shared cell.  Every chain aliasing the cell observes
// the new value.
func (c *Chain[T]) Set(v T) {
	c.cell.v = v
}

// Value returns the value currently stored in the shared cell.
func (c *Chain[T]) Value() T {
	return c.cell.v
}

// IsRoot reports whether c owns its cell rather than aliasing an
// ancestor's.
func (c *Chain[T]) IsRoot() bool {
	return c.root
}

// UnlinkWith detaches c from its ancestors by installing a fresh cell
// holding v.  c becomes a root and the new cell propagates down the
// recorded-child path so descendants keep aliasing c.  Chains that shared
// the old cell but are not on the recorded path still see the old cell.
func (c *Chain[T]) UnlinkWith(v T) {
	next := &cell[T]{v: v}
	c.root = true
	c.cell = next
	if c.child != nil {
		c.child.adopt(next)
	}
}

func (c *Chain[T]) adopt(next *cell[T]) {
	c.root = false
	c.cell = next
	if c.child != nil {
		c.child.adopt(next)
	}
}
