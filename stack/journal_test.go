// Copyright © 2021 The Stax authors

package stack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// journalAdd records the entries of evaluating "1 2 +" by hand: two
// pushes, then a call that pops both operands and pushes the sum.
func journalAdd() *Journal {
	j := NewJournal()
	j.Op(JournalOp{Kind: OpPush, Expr: Int(1)})
	j.Commit()
	j.Op(JournalOp{Kind: OpPush, Expr: Int(2)})
	j.Commit()
	j.Op(JournalOp{Kind: OpCall, Expr: SymbolExpr("+")})
	j.Op(JournalOp{Kind: OpPop, Expr: Int(2)})
	j.Op(JournalOp{Kind: OpPop, Expr: Int(1)})
	j.Op(JournalOp{Kind: OpPush, Expr: Int(3)})
	j.Commit()
	return j
}

func renderExprs(stack []*Expr) string {
	var b bytes.Buffer
	for i, v := range stack {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	return b.String()
}

func TestJournalCommit(t *testing.T) {
	j := journalAdd()
	assert.Equal(t, 3, j.Len())

	// An empty batch commits nothing.
	j.Commit()
	assert.Equal(t, 3, j.Len())
}

func TestJournalStackAt(t *testing.T) {
	j := journalAdd()
	assert.Equal(t, "", renderExprs(j.StackAt(0)))
	assert.Equal(t, "1", renderExprs(j.StackAt(1)))
	assert.Equal(t, "1 2", renderExprs(j.StackAt(2)))
	assert.Equal(t, "3", renderExprs(j.StackAt(3)))
}

func TestJournalConstructFrom(t *testing.T) {
	j := journalAdd()

	// Unwinding the final entry restores the operand stack.
	stack := j.ConstructFrom([]*Expr{Int(3)}, 3, 2)
	assert.Equal(t, "1 2", renderExprs(stack))

	stack = j.ConstructFrom(stack, 2, 0)
	assert.Equal(t, "", renderExprs(stack))
}

func TestJournalDepthTracking(t *testing.T) {
	j := NewJournal()
	j.Op(JournalOp{Kind: OpFnCall, Expr: SymbolExpr("f")})
	j.Commit()
	j.Op(JournalOp{Kind: OpFnStart, Scoped: true})
	j.Op(JournalOp{Kind: OpPush, Expr: Int(1)})
	j.Commit()
	j.Op(JournalOp{Kind: OpFnEnd})
	j.Commit()

	entries := j.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 0, entries[0].Depth)
	assert.Equal(t, 1, entries[1].Depth)
	assert.True(t, entries[1].Scoped)
	assert.Equal(t, 0, entries[2].Depth)
}

func TestJournalSnapshotRoundTrip(t *testing.T) {
	j := journalAdd()

	b, err := j.Snapshot()
	require.NoError(t, err)

	// Canonical encoding is deterministic.
	b2, err := j.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, b, b2)

	wire, err := LoadSnapshot(b)
	require.NoError(t, err)
	require.Len(t, wire.Entries, 3)
	require.Len(t, wire.Entries[2].Ops, 4)
	assert.Equal(t, int(OpCall), wire.Entries[2].Ops[0].Kind)
	assert.Equal(t, "+", wire.Entries[2].Ops[0].Expr)
	assert.Equal(t, "3", wire.Entries[2].Ops[3].Expr)
}

func TestJournalWriteSnapshot(t *testing.T) {
	j := journalAdd()
	var buf bytes.Buffer
	require.NoError(t, j.WriteSnapshot(&buf))
	wire, err := LoadSnapshot(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, wire.Entries, 3)
}

func TestJournalOpKindString(t *testing.T) {
	assert.Equal(t, "push", OpPush.String())
	assert.Equal(t, "pop", OpPop.String())
	assert.Equal(t, "fn-call", OpFnCall.String())
}
