package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fabiareis/trading-journal/blobstore"
	"github.com/fabiareis/trading-journal/internal/logger"
	"github.com/fabiareis/trading-journal/internal/telemetry"
)

// Options configures the record stores. The zero value is usable.
type Options struct {
	Logger  *zap.Logger
	Metrics *telemetry.Metrics

	// InitialPatrimony seeds the equity baseline when none was persisted.
	InitialPatrimony float64
	// DailyLossLimit is the positive loss amount an operation may not exceed
	// without confirmation. Zero disables the check.
	DailyLossLimit float64
}

func (o Options) logger() *zap.Logger { return logger.OrNop(o.Logger) }

// loadList decodes the collection under key. A missing key yields an empty
// list. An undecodable blob also yields an empty list, together with a
// *CorruptSnapshotError.
func loadList[T any](ctx context.Context, s blobstore.Store, key string) ([]T, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, blobstore.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return []T{}, &CorruptSnapshotError{Key: key, Err: err}
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// saveList writes the whole collection under key.
func saveList[T any](ctx context.Context, s blobstore.Store, key string, list []T) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
