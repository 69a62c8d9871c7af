package journal

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fabiareis/trading-journal/blobstore"
)

// TradeStore owns the trade list.
type TradeStore struct {
	store blobstore.Store
	opts  Options
	log   *zap.Logger

	trades []Trade
}

func NewTradeStore(s blobstore.Store, opts Options) *TradeStore {
	return &TradeStore{
		store:  s,
		opts:   opts,
		log:    opts.logger().With(zap.String("collection", KeyTrades)),
		trades: []Trade{},
	}
}

// Load replaces the in-memory list with the persisted one, recomputing
// points and results. On a corrupt snapshot the list is left empty and the
// returned error matches ErrCorruptSnapshot.
func (s *TradeStore) Load(ctx context.Context) error {
	trades, err := loadList[Trade](ctx, s.store, KeyTrades)
	var corrupt *CorruptSnapshotError
	if err != nil && !errors.As(err, &corrupt) {
		return err
	}
	for i := range trades {
		trades[i] = trades[i].derive()
	}
	s.trades = trades
	if corrupt != nil {
		s.log.Warn("discarding corrupt snapshot", zap.Error(corrupt.Err))
		s.opts.Metrics.CorruptSnapshot(KeyTrades)
		return corrupt
	}
	s.log.Debug("loaded", zap.Int("count", len(s.trades)))
	return nil
}

// Append validates in, appends the trade and writes the whole list.
func (s *TradeStore) Append(ctx context.Context, in TradeInput) (Trade, error) {
	t, err := NewTrade(in)
	if err != nil {
		return Trade{}, err
	}

	next := make([]Trade, len(s.trades), len(s.trades)+1)
	copy(next, s.trades)
	next = append(next, t)

	err = saveList(ctx, s.store, KeyTrades, next)
	s.opts.Metrics.SnapshotWritten(KeyTrades, err)
	if err != nil {
		s.log.Error("append failed", zap.Error(err))
		return Trade{}, err
	}
	s.trades = next
	s.opts.Metrics.RecordAppended("trade")

	s.log.Info("trade appended",
		zap.String("date", t.Date),
		zap.String("account", t.AccountType),
		zap.String("asset", t.Asset),
		zap.Float64("points", t.Points),
		zap.Float64("result", t.Result),
	)
	return t, nil
}

// Trades returns a copy of the list in entry order.
func (s *TradeStore) Trades() []Trade {
	out := make([]Trade, len(s.trades))
	copy(out, s.trades)
	return out
}
