package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trading-journal-go/internal/models"
)

func sampleTrades() []models.Trade {
	return []models.Trade{
		{
			ID:           "a",
			CurrencyPair: "EUR/USD",
			Action:       models.ActionBuy,
			Date:         "2026-08-30T09:15:00Z",
			Conditions: []models.Condition{
				{ID: "c1", Description: "Price above 200 EMA", Confidence: 80, Checked: true},
			},
			EntryPrice:      1.1000,
			StopLossPrice:   1.0950,
			TakeProfitPrice: 1.1050,
			PositionSize:    1000,
			Status:          models.StatusOpen,
			Notes:           "",
		},
		{
			ID:           "b",
			CurrencyPair: "GBP/USD",
			Action:       models.ActionSell,
			Date:         "2026-08-31T14:00:00Z",
			Conditions: []models.Condition{
				{ID: "c2", Description: "RSI above 70", Confidence: 75, Checked: true},
			},
			EntryPrice:   1.2000,
			ExitPrice:    floatPtr(1.1900),
			PositionSize: 500,
			Status:       models.StatusClosed,
			ProfitLoss:   floatPtr(5.0),
			Notes:        "took profit early",
		},
	}
}

func TestTradeStoreRoundTrip(t *testing.T) {
	store := NewTradeStore(newTestBlobStore(t), zap.NewNop())
	trades := sampleTrades()

	require.NoError(t, store.SaveAll(trades))

	loaded := store.Load()
	assert.Equal(t, trades, loaded)

	// Absent optional fields stay absent.
	assert.Nil(t, loaded[0].ExitPrice)
	assert.Nil(t, loaded[0].ProfitLoss)
	require.NotNil(t, loaded[1].ProfitLoss)
	assert.Equal(t, 5.0, *loaded[1].ProfitLoss)
}

func TestTradeStoreSaveAllIdempotent(t *testing.T) {
	store := NewTradeStore(newTestBlobStore(t), zap.NewNop())
	trades := sampleTrades()

	require.NoError(t, store.SaveAll(trades))
	require.NoError(t, store.SaveAll(trades))

	assert.Equal(t, trades, store.Load())
}

func TestTradeStoreLoadEmpty(t *testing.T) {
	store := NewTradeStore(newTestBlobStore(t), zap.NewNop())

	loaded := store.Load()
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestTradeStoreLoadCorruptBlob(t *testing.T) {
	blobStore := newTestBlobStore(t)
	require.NoError(t, blobStore.Put(keyTrades, `{not json`))

	store := NewTradeStore(blobStore, zap.NewNop())
	assert.Empty(t, store.Load())

	// The corrupt blob is silently replaced on the next SaveAll.
	require.NoError(t, store.SaveAll(sampleTrades()))
	assert.Len(t, store.Load(), 2)
}

func TestTradeStoreLoadNonArrayBlob(t *testing.T) {
	blobStore := newTestBlobStore(t)
	require.NoError(t, blobStore.Put(keyTrades, `{"not":"an array"}`))

	store := NewTradeStore(blobStore, zap.NewNop())
	assert.Empty(t, store.Load())
}

func TestTradeStoreAddAndRemove(t *testing.T) {
	store := NewTradeStore(newTestBlobStore(t), zap.NewNop())
	trades := sampleTrades()

	require.NoError(t, store.Add(trades[0]))
	require.NoError(t, store.Add(trades[1]))
	assert.Len(t, store.Load(), 2)

	removed, err := store.Remove("a")
	require.NoError(t, err)
	assert.True(t, removed)

	loaded := store.Load()
	require.Len(t, loaded, 1)
	assert.Equal(t, "b", loaded[0].ID)

	removed, err = store.Remove("missing")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAlertStoreRoundTripAndTrigger(t *testing.T) {
	store := NewAlertStore(newTestBlobStore(t), zap.NewNop())
	alerts := []models.PriceAlert{
		{ID: "a1", CurrencyPair: "EUR/USD", Price: 1.1200, Condition: models.AlertAbove},
		{ID: "a2", CurrencyPair: "USD/JPY", Price: 148.50, Condition: models.AlertBelow},
	}

	require.NoError(t, store.SaveAll(alerts))
	assert.Equal(t, alerts, store.Load())

	triggered, found, err := store.Trigger("a2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, triggered.Triggered)

	loaded := store.Load()
	assert.False(t, loaded[0].Triggered)
	assert.True(t, loaded[1].Triggered)

	_, found, err = store.Trigger("missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAlertStoreLoadCorruptBlob(t *testing.T) {
	blobStore := newTestBlobStore(t)
	require.NoError(t, blobStore.Put(keyPriceAlerts, `"{not json`))

	store := NewAlertStore(blobStore, zap.NewNop())
	assert.Empty(t, store.Load())
}

func TestSettingsStoreDefaults(t *testing.T) {
	store := NewSettingsStore(newTestBlobStore(t), zap.NewNop())

	settings := store.Load()
	assert.Equal(t, models.DefaultNotificationSettings(), settings)
	assert.True(t, settings.PriceAlerts)
	assert.False(t, settings.PushEnabled)
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	store := NewSettingsStore(newTestBlobStore(t), zap.NewNop())

	settings := models.NotificationSettings{
		Email:        "trader@example.com",
		EmailEnabled: true,
		PriceAlerts:  true,
	}
	require.NoError(t, store.Save(settings))
	assert.Equal(t, settings, store.Load())
}

func TestSettingsStoreCorruptBlob(t *testing.T) {
	blobStore := newTestBlobStore(t)
	require.NoError(t, blobStore.Put(keyNotificationSettings, `not even json`))

	store := NewSettingsStore(blobStore, zap.NewNop())
	assert.Equal(t, models.DefaultNotificationSettings(), store.Load())
}

func TestPairStoreMergesDefaults(t *testing.T) {
	store := NewPairStore(newTestBlobStore(t), zap.NewNop())

	pairs := store.Load()
	assert.Equal(t, models.DefaultCurrencyPairs, pairs)

	require.NoError(t, store.Add("BTC/USD"))
	require.NoError(t, store.Add("BTC/USD")) // duplicate is a no-op
	require.NoError(t, store.Add("EUR/USD")) // default is a no-op

	pairs = store.Load()
	assert.Len(t, pairs, len(models.DefaultCurrencyPairs)+1)
	assert.Equal(t, "BTC/USD", pairs[len(pairs)-1])
}
