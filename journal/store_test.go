package journal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fabiareis/trading-journal/blobstore"
	"github.com/fabiareis/trading-journal/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// mockStore lets tests inject storage failures.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockStore) Put(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStore) Close() error { return nil }

func march1() OperationInput {
	return OperationInput{Date: "2024-03-01", TradeValue: "300", Expenses: "10", ISS: "5", IRRF: "5"}
}

func TestOperationStoreLoadEmpty(t *testing.T) {
	t.Parallel()

	s := NewOperationStore(blobstore.NewMemory(), Options{InitialPatrimony: 2000})
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.Operations())
	assert.NotNil(t, s.Operations())
	assert.Equal(t, 2000.0, s.Patrimony())
}

func TestOperationStoreAppendPersistsFullSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()
	metrics := telemetry.New()

	s := NewOperationStore(mem, Options{InitialPatrimony: 2000, Metrics: metrics})
	require.NoError(t, s.Load(ctx))

	op, err := s.Append(ctx, march1())
	require.NoError(t, err)
	assert.Equal(t, 280.0, op.NetTotal)

	_, err = s.Append(ctx, OperationInput{Date: "2024-02-10", TradeValue: "-50", Expenses: "2", ISS: "0", IRRF: "0"})
	require.NoError(t, err)

	raw, err := mem.Get(ctx, KeyOperations)
	require.NoError(t, err)
	var stored []Operation
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 2)
	// entry order, not date order
	assert.Equal(t, "2024-03-01", stored[0].Date)
	assert.Equal(t, "2024-02-10", stored[1].Date)
	assert.Equal(t, -52.0, stored[1].NetTotal)
	assert.Equal(t, StatusLoss, stored[1].Status)

	assert.Equal(t, 2000.0+280-52, s.Patrimony())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RecordsAppended.WithLabelValues("operation")))

	// A fresh store sees the same state.
	again := NewOperationStore(mem, Options{InitialPatrimony: 2000})
	require.NoError(t, again.Load(ctx))
	assert.Equal(t, s.Operations(), again.Operations())
	assert.Equal(t, s.Patrimony(), again.Patrimony())
}

func TestOperationStoreAppendDoesNotMutatePrevious(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewOperationStore(blobstore.NewMemory(), Options{})
	_, err := s.Append(ctx, march1())
	require.NoError(t, err)

	before := s.Operations()
	_, err = s.Append(ctx, OperationInput{Date: "2024-03-02", TradeValue: "-1000", Expenses: "0", ISS: "0", IRRF: "0"})
	require.NoError(t, err)

	after := s.Operations()
	require.Len(t, after, 2)
	assert.Equal(t, before[0], after[0])

	// Callers get copies.
	after[0].NetTotal = 1
	assert.Equal(t, 280.0, s.Operations()[0].NetTotal)
}

func TestOperationStoreRejectsInvalid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()

	s := NewOperationStore(mem, Options{})
	_, err := s.Append(ctx, OperationInput{Date: "2024-03-01"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, s.Operations())

	_, err = mem.Get(ctx, KeyOperations)
	assert.ErrorIs(t, err, blobstore.ErrNotFound, "nothing is written on validation failure")
}

func TestOperationStoreLoadRecomputesDerivedFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()
	require.NoError(t, mem.Put(ctx, KeyOperations, []byte(
		`[{"date":"2024-03-01","tradeValue":300,"expenses":10,"iss":5,"irrf":5,"result":1,"netTotal":999,"status":"loss"}]`,
	)))

	s := NewOperationStore(mem, Options{})
	require.NoError(t, s.Load(ctx))
	ops := s.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, 300.0, ops[0].Result)
	assert.Equal(t, 280.0, ops[0].NetTotal)
	assert.Equal(t, StatusGain, ops[0].Status)
}

func TestOperationStoreCorruptSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()
	require.NoError(t, mem.Put(ctx, KeyOperations, []byte(`{not json`)))
	metrics := telemetry.New()

	s := NewOperationStore(mem, Options{InitialPatrimony: 2000, Metrics: metrics})
	err := s.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)

	var corrupt *CorruptSnapshotError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, KeyOperations, corrupt.Key)

	assert.Empty(t, s.Operations())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CorruptSnapshots.WithLabelValues(KeyOperations)))

	// The corrupt blob is only replaced by the next append.
	raw, err := mem.Get(ctx, KeyOperations)
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(raw))

	_, err = s.Append(ctx, march1())
	require.NoError(t, err)
	require.NoError(t, s.Load(ctx))
	assert.Len(t, s.Operations(), 1)
}

func TestOperationStoreCorruptPatrimony(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()
	require.NoError(t, mem.Put(ctx, KeyPatrimony, []byte(`"lots"`)))

	s := NewOperationStore(mem, Options{InitialPatrimony: 2000})
	err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
	assert.Equal(t, 2000.0, s.Patrimony())
}

func TestOperationStoreExceedsLossLimit(t *testing.T) {
	t.Parallel()

	s := NewOperationStore(blobstore.NewMemory(), Options{DailyLossLimit: 100})
	assert.False(t, s.ExceedsLossLimit(Operation{NetTotal: -100}))
	assert.True(t, s.ExceedsLossLimit(Operation{NetTotal: -100.01}))
	assert.False(t, s.ExceedsLossLimit(Operation{NetTotal: 500}))

	off := NewOperationStore(blobstore.NewMemory(), Options{})
	assert.False(t, off.ExceedsLossLimit(Operation{NetTotal: -1e6}))
}

func TestOperationStoreWriteFailureKeepsState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ms := new(mockStore)
	ms.On("Put", mock.Anything, KeyOperations, mock.Anything).Return(errors.New("disk full"))

	s := NewOperationStore(ms, Options{InitialPatrimony: 2000})
	_, err := s.Append(ctx, march1())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, s.Operations())
	assert.Equal(t, 2000.0, s.Patrimony())
	ms.AssertExpectations(t)
}

func TestOperationStorePatrimonyWriteFailureRestoresList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ms := new(mockStore)
	ms.On("Put", mock.Anything, KeyOperations, mock.Anything).Return(nil)
	ms.On("Put", mock.Anything, KeyPatrimony, mock.Anything).Return(errors.New("disk full"))

	s := NewOperationStore(ms, Options{InitialPatrimony: 2000})
	op, err := s.Append(ctx, march1())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, Operation{}, op)
	assert.Empty(t, s.Operations())
	assert.Equal(t, 2000.0, s.Patrimony())

	ms.AssertNumberOfCalls(t, "Put", 3)
	last := ms.Calls[2].Arguments
	assert.Equal(t, KeyOperations, last.String(1))
	assert.JSONEq(t, `[]`, string(last.Get(2).([]byte)))
}

func TestOperationStorePatrimonyReadFailureLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	ms := new(mockStore)
	ms.On("Get", mock.Anything, KeyOperations).Return(nil, blobstore.ErrNotFound)
	ms.On("Get", mock.Anything, KeyPatrimony).Return(nil, errors.New("connection reset"))

	s := NewOperationStore(ms, Options{InitialPatrimony: 2000, Logger: zap.New(core)})
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptSnapshot)
	assert.Equal(t, 2000.0, s.Patrimony())

	assert.Equal(t, 1, logs.FilterMessage("patrimony read failed, using initial value").FilterLevelExact(zap.ErrorLevel).Len())
	assert.Zero(t, logs.FilterMessage("discarding corrupt patrimony").Len())
}

func TestOperationStoreReadFailure(t *testing.T) {
	t.Parallel()

	ms := new(mockStore)
	ms.On("Get", mock.Anything, KeyOperations).Return(nil, errors.New("connection refused"))

	s := NewOperationStore(ms, Options{})
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptSnapshot)
}

func TestTradeStoreAppendAndLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()

	s := NewTradeStore(mem, Options{})
	require.NoError(t, s.Load(ctx))

	tr, err := s.Append(ctx, validTradeInput())
	require.NoError(t, err)
	assert.Equal(t, 100.0, tr.Result)

	in := validTradeInput()
	in.OperationType = OperationSell
	in.EntryPrice = "100"
	in.ExitPrice = "90"
	in.Contracts = "1"
	_, err = s.Append(ctx, in)
	require.NoError(t, err)

	again := NewTradeStore(mem, Options{})
	require.NoError(t, again.Load(ctx))
	got := again.Trades()
	require.Len(t, got, 2)
	assert.Equal(t, 10.0, got[1].Points)
	assert.Equal(t, 50.0, got[1].Result)
	require.NotNil(t, got[0].AllocatedCapital)
}

func TestTradeStoreLegacySnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()
	require.NoError(t, mem.Put(ctx, KeyTrades, []byte(`[{
		"date":"2024-01-05","accountType":"Mesa Proprietária","asset":"WDO","operationType":"Venda",
		"analysisType":"Fluxo","contracts":1,"entryPrice":5000,"exitPrice":4990,"entryReason":"",
		"testValue":250}]`)))

	s := NewTradeStore(mem, Options{})
	require.NoError(t, s.Load(ctx))
	got := s.Trades()
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].Points)
	assert.Equal(t, 50.0, got[0].Result)
	require.NotNil(t, got[0].TestValue)
	assert.Equal(t, 250.0, *got[0].TestValue)
}

func TestTradeStoreCorruptSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()
	require.NoError(t, mem.Put(ctx, KeyTrades, []byte(`[{"contracts":"two"}]`)))

	s := NewTradeStore(mem, Options{})
	err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
	assert.Empty(t, s.Trades())
}

func TestOpenJournal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()

	j, err := Open(ctx, mem, Options{InitialPatrimony: 2000})
	require.NoError(t, err)
	_, err = j.Operations.Append(ctx, march1())
	require.NoError(t, err)
	_, err = j.Trades.Append(ctx, validTradeInput())
	require.NoError(t, err)

	st := j.State()
	assert.Len(t, st.Operations, 1)
	assert.Len(t, st.Trades, 1)
	assert.Equal(t, 2280.0, st.Patrimony)
}

func TestOpenJournalCorruptStillUsable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := blobstore.NewMemory()
	require.NoError(t, mem.Put(ctx, KeyTrades, []byte(`nope`)))
	require.NoError(t, mem.Put(ctx, KeyOperations, []byte(`nope`)))

	j, err := Open(ctx, mem, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
	require.NotNil(t, j)
	assert.Empty(t, j.State().Trades)
}

func TestOpenJournalReadFailure(t *testing.T) {
	t.Parallel()

	ms := new(mockStore)
	ms.On("Get", mock.Anything, KeyOperations).Return(nil, blobstore.ErrNotFound)
	ms.On("Get", mock.Anything, KeyPatrimony).Return(nil, blobstore.ErrNotFound)
	ms.On("Get", mock.Anything, KeyTrades).Return(nil, errors.New("timeout"))

	j, err := Open(context.Background(), ms, Options{})
	require.Error(t, err)
	assert.Nil(t, j)
}
