package journal

import (
	"context"
	"errors"

	"github.com/fabiareis/trading-journal/blobstore"
)

// State is a read-only snapshot of everything the derivations need.
type State struct {
	Operations []Operation
	Trades     []Trade
	Patrimony  float64
}

// Journal groups the two record stores over one blob store.
type Journal struct {
	Operations *OperationStore
	Trades     *TradeStore
}

// Open loads both collections. When a snapshot is corrupt the journal is
// still returned, starting from empty collections, along with an error
// matching ErrCorruptSnapshot. Other errors leave the journal nil.
func Open(ctx context.Context, s blobstore.Store, opts Options) (*Journal, error) {
	j := &Journal{
		Operations: NewOperationStore(s, opts),
		Trades:     NewTradeStore(s, opts),
	}
	opErr := j.Operations.Load(ctx)
	trErr := j.Trades.Load(ctx)
	err := errors.Join(opErr, trErr)
	if !onlyCorrupt(err) {
		return nil, err
	}
	return j, err
}

// onlyCorrupt reports whether err is nil or made only of corrupt snapshot
// errors.
func onlyCorrupt(err error) bool {
	if err == nil {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !onlyCorrupt(e) {
				return false
			}
		}
		return true
	}
	return errors.Is(err, ErrCorruptSnapshot)
}

// State captures the current records and baseline.
func (j *Journal) State() State {
	return State{
		Operations: j.Operations.Operations(),
		Trades:     j.Trades.Trades(),
		Patrimony:  j.Operations.Patrimony(),
	}
}
