// Copyright © 2021 The Stax authors

package stack

import (
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Journal entries are persisted as canonical CBOR so that snapshots of the
// same run are byte-identical regardless of which process wrote them.
// Expressions are stored in their canonical printed form; a snapshot is an
// inspection artifact, not a resumable image.

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// WireOp is the serialized form of a JournalOp.
type WireOp struct {
	Kind   int    `cbor:"1,keyasint"`
	Expr   string `cbor:"2,keyasint,omitempty"`
	Scoped bool   `cbor:"3,keyasint,omitempty"`
}

// WireEntry is the serialized form of a JournalEntry.
type WireEntry struct {
	Ops    []WireOp `cbor:"1,keyasint"`
	Depth  int      `cbor:"2,keyasint"`
	Scoped bool     `cbor:"3,keyasint,omitempty"`
}

// WireJournal is the serialized form of a committed journal.
type WireJournal struct {
	Entries []WireEntry `cbor:"1,keyasint"`
}

// Snapshot serializes the committed entries of j.
func (j *Journal) Snapshot() ([]byte, error) {
	wire := WireJournal{Entries: make([]WireEntry, 0, len(j.entries))}
	for _, entry := range j.entries {
		we := WireEntry{
			Ops:    make([]WireOp, 0, len(entry.Ops)),
			Depth:  entry.Depth,
			Scoped: entry.Scoped,
		}
		for _, op := range entry.Ops {
			wo := WireOp{Kind: int(op.Kind), Scoped: op.Scoped}
			if op.Expr != nil {
				wo.Expr = op.Expr.String()
			}
			we.Ops = append(we.Ops, wo)
		}
		wire.Entries = append(wire.Entries, we)
	}
	b, err := encMode.Marshal(&wire)
	if err != nil {
		return nil, errors.Wrap(err, "marshal journal snapshot")
	}
	return b, nil
}

// WriteSnapshot serializes j and writes it to w.
func (j *Journal) WriteSnapshot(w io.Writer) error {
	b, err := j.Snapshot()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return errors.Wrap(err, "write journal snapshot")
}

// LoadSnapshot decodes a serialized journal.
func LoadSnapshot(b []byte) (*WireJournal, error) {
	wire := &WireJournal{}
	if err := cbor.Unmarshal(b, wire); err != nil {
		return nil, errors.Wrap(err, "unmarshal journal snapshot")
	}
	return wire, nil
}
