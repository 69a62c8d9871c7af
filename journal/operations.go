package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/fabiareis/trading-journal/blobstore"
)

// OperationStore owns the daily operation list and the patrimony baseline.
type OperationStore struct {
	store blobstore.Store
	opts  Options
	log   *zap.Logger

	ops       []Operation
	patrimony float64
}

func NewOperationStore(s blobstore.Store, opts Options) *OperationStore {
	return &OperationStore{
		store:     s,
		opts:      opts,
		log:       opts.logger().With(zap.String("collection", KeyOperations)),
		ops:       []Operation{},
		patrimony: opts.InitialPatrimony,
	}
}

// Load replaces the in-memory state with the persisted one. Derived fields
// are recomputed from the stored inputs. On a corrupt snapshot the store is
// left empty and the returned error matches ErrCorruptSnapshot.
func (s *OperationStore) Load(ctx context.Context) error {
	ops, err := loadList[Operation](ctx, s.store, KeyOperations)
	var corrupt *CorruptSnapshotError
	if err != nil && !errors.As(err, &corrupt) {
		return err
	}
	for i := range ops {
		ops[i] = ops[i].derive()
	}
	s.ops = ops
	if corrupt != nil {
		s.log.Warn("discarding corrupt snapshot", zap.Error(corrupt.Err))
		s.opts.Metrics.CorruptSnapshot(KeyOperations)
	}

	patrimony, perr := s.loadPatrimony(ctx)
	s.patrimony = patrimony
	var pcorrupt *CorruptSnapshotError
	switch {
	case errors.As(perr, &pcorrupt):
		s.log.Warn("discarding corrupt patrimony", zap.Error(pcorrupt.Err))
	case perr != nil:
		s.log.Error("patrimony read failed, using initial value", zap.Error(perr))
	}

	s.log.Debug("loaded", zap.Int("count", len(s.ops)), zap.Float64("patrimony", s.patrimony))
	if corrupt != nil || perr != nil {
		return errors.Join(errOrNil(corrupt), perr)
	}
	return nil
}

func (s *OperationStore) loadPatrimony(ctx context.Context) (float64, error) {
	data, err := s.store.Get(ctx, KeyPatrimony)
	if errors.Is(err, blobstore.ErrNotFound) {
		return s.opts.InitialPatrimony, nil
	}
	if err != nil {
		return s.opts.InitialPatrimony, fmt.Errorf("read %s: %w", KeyPatrimony, err)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		s.opts.Metrics.CorruptSnapshot(KeyPatrimony)
		return s.opts.InitialPatrimony, &CorruptSnapshotError{Key: KeyPatrimony, Err: err}
	}
	return v, nil
}

// ExceedsLossLimit reports whether op loses more than the daily loss limit.
func (s *OperationStore) ExceedsLossLimit(op Operation) bool {
	return s.opts.DailyLossLimit > 0 && op.NetTotal < -s.opts.DailyLossLimit
}

// Append validates in, appends the operation, writes the whole list and
// advances the patrimony baseline by its net total. If the baseline cannot be
// written the previous list is written back and nothing changes in memory.
func (s *OperationStore) Append(ctx context.Context, in OperationInput) (Operation, error) {
	op, err := NewOperation(in)
	if err != nil {
		return Operation{}, err
	}

	next := make([]Operation, len(s.ops), len(s.ops)+1)
	copy(next, s.ops)
	next = append(next, op)

	err = saveList(ctx, s.store, KeyOperations, next)
	s.opts.Metrics.SnapshotWritten(KeyOperations, err)
	if err != nil {
		s.log.Error("append failed", zap.Error(err))
		return Operation{}, err
	}

	patrimony := s.patrimony + op.NetTotal
	err = s.store.Put(ctx, KeyPatrimony, []byte(strconv.FormatFloat(patrimony, 'f', -1, 64)))
	s.opts.Metrics.SnapshotWritten(KeyPatrimony, err)
	if err != nil {
		s.log.Error("patrimony write failed, restoring previous list", zap.Error(err))
		rerr := saveList(ctx, s.store, KeyOperations, s.ops)
		s.opts.Metrics.SnapshotWritten(KeyOperations, rerr)
		if rerr != nil {
			s.log.Error("restore failed", zap.Error(rerr))
		}
		return Operation{}, errors.Join(fmt.Errorf("write %s: %w", KeyPatrimony, err), rerr)
	}
	s.ops = next
	s.patrimony = patrimony
	s.opts.Metrics.RecordAppended("operation")

	s.log.Info("operation appended",
		zap.String("date", op.Date),
		zap.Float64("net_total", op.NetTotal),
		zap.String("status", op.Status),
		zap.Float64("patrimony", s.patrimony),
	)
	return op, nil
}

// Operations returns a copy of the list in entry order.
func (s *OperationStore) Operations() []Operation {
	out := make([]Operation, len(s.ops))
	copy(out, s.ops)
	return out
}

// Patrimony returns the current equity baseline.
func (s *OperationStore) Patrimony() float64 { return s.patrimony }

func errOrNil(e *CorruptSnapshotError) error {
	if e == nil {
		return nil
	}
	return e
}
