// Copyright © 2021 The Stax authors

package stack

// JournalOpKind enumerates the recorded operations.
type JournalOpKind int

const (
	// OpCall records a top-level symbol evaluation.
	OpCall JournalOpKind = iota
	// OpFnCall records entry into a callable list.
	OpFnCall
	// OpPush records a value pushed on the stack.
	OpPush
	// OpPop records a value popped off the stack.
	OpPop
	// OpFnStart brackets the start of a function body.
	OpFnStart
	// OpFnEnd brackets the end of a function body.
	OpFnEnd
)

func (k JournalOpKind) String() string {
	switch k {
	case OpCall:
		return "call"
	case OpFnCall:
		return "fn-call"
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpFnStart:
		return "fn-start"
	case OpFnEnd:
		return "fn-end"
	}
	return "unknown"
}

// JournalOp is one recorded operation.
type JournalOp struct {
	Kind   JournalOpKind
	Expr   *Expr
	Scoped bool
}

// JournalEntry is the batch of operations committed for one evaluation
// step, tagged with the scope depth it ran at.
type JournalEntry struct {
	Ops    []JournalOp
	Depth  int
	Scoped bool
}

// Journal records every stack operation the engine performs so a run can
// be replayed step by step in either direction.
type Journal struct {
	ops     []JournalOp
	entries []JournalEntry
	depth   int
	scoped  []bool
}

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Op records an operation into the pending batch.
func (j *Journal) Op(op JournalOp) {
	switch op.Kind {
	case OpFnStart:
		j.depth++
		j.scoped = append(j.scoped, op.Scoped)
	case OpFnEnd:
		if j.depth > 0 {
			j.depth--
			j.scoped = j.scoped[:len(j.scoped)-1]
		}
	}
	j.ops = append(j.ops, op)
}

// Commit drains pending operations into an entry.  Empty batches commit
// nothing.
func (j *Journal) Commit() {
	if len(j.ops) == 0 {
		return
	}
	scoped := false
	if len(j.scoped) > 0 {
		scoped = j.scoped[len(j.scoped)-1]
	}
	j.entries = append(j.entries, JournalEntry{
		Ops:    j.ops,
		Depth:  j.depth,
		Scoped: scoped,
	})
	j.ops = nil
}

// Entries returns the committed entries in order.
func (j *Journal) Entries() []JournalEntry {
	return j.entries
}

// Len returns the number of committed entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// ConstructTo replays entries [from, to) forward onto stack and returns
// the resulting stack.  Only push and pop operations move values.
func (j *Journal) ConstructTo(stack []*Expr, from, to int) []*Expr {
	for i := from; i < to && i < len(j.entries); i++ {
		for _, op := range j.entries[i].Ops {
			switch op.Kind {
			case OpPush:
				stack = append(stack, op.Expr)
			case OpPop:
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}
	return stack
}

// ConstructFrom unwinds entries (to, from] backward off stack, inverting
// each operation, and returns the resulting stack.
func (j *Journal) ConstructFrom(stack []*Expr, from, to int) []*Expr {
	for i := from - 1; i >= to && i >= 0; i-- {
		ops := j.entries[i].Ops
		for k := len(ops) - 1; k >= 0; k-- {
			switch ops[k].Kind {
			case OpPush:
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			case OpPop:
				stack = append(stack, ops[k].Expr)
			}
		}
	}
	return stack
}

// StackAt returns the stack as it stood after entry index steps.
func (j *Journal) StackAt(steps int) []*Expr {
	return j.ConstructTo(nil, 0, steps)
}
