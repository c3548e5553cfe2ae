// Copyright © 2021 The Stax authors

package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainLinkSharesCell(t *testing.T) {
	root := NewChain(Int(1))
	child := root.Link()

	assert.True(t, root.IsRoot())
	assert.False(t, child.IsRoot())
	assert.True(t, child.Value().Equal(Int(1)))

	// A write through either end is visible to both.
	child.Set(Int(2))
	assert.True(t, root.Value().Equal(Int(2)))
	root.Set(Int(3))
	assert.True(t, child.Value().Equal(Int(3)))
}

func TestChainRecordsLatestChild(t *testing.T) {
	root := NewChain(Int(1))
	first := root.Link()
	second := root.Link()

	root.UnlinkWith(Int(9))

	// Only the most recently linked child follows the unlink.
	assert.True(t, second.Value().Equal(Int(9)))
	assert.True(t, first.Value().Equal(Int(1)))
	assert.False(t, second.IsRoot())
}

func TestChainUnlinkDetaches(t *testing.T) {
	root := NewChain(Int(1))
	child := root.Link()

	child.UnlinkWith(Int(5))

	assert.True(t, child.IsRoot())
	assert.True(t, child.Value().Equal(Int(5)))
	assert.True(t, root.Value().Equal(Int(1)))

	// Writes no longer cross the severed link.
	child.Set(Int(6))
	assert.True(t, root.Value().Equal(Int(1)))
	root.Set(Int(2))
	assert.True(t, child.Value().Equal(Int(6)))
}

func TestChainUnlinkPropagatesDownward(t *testing.T) {
	root := NewChain(Int(1))
	mid := root.Link()
	leaf := mid.Link()

	mid.UnlinkWith(Int(7))

	// The leaf rides along with its parent onto the fresh cell.
	assert.True(t, leaf.Value().Equal(Int(7)))
	assert.False(t, leaf.IsRoot())
	leaf.Set(Int(8))
	assert.True(t, mid.Value().Equal(Int(8)))
	assert.True(t, root.Value().Equal(Int(1)))
}

func TestChainUnlinkOnRoot(t *testing.T) {
	root := NewChain(Int(1))
	child := root.Link()

	root.UnlinkWith(Int(4))

	assert.True(t, root.IsRoot())
	assert.True(t, root.Value().Equal(Int(4)))
	assert.True(t, child.Value().Equal(Int(4)))
}
