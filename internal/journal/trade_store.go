package journal

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/storage"
)

// Persisted blob keys. Each key holds one JSON document: the full record
// collection, rewritten on every mutation.
const (
	keyTrades               = "trades"
	keyPriceAlerts          = "priceAlerts"
	keyCurrencyPairs        = "currencyPairs"
	keyNotificationSettings = "notificationSettings"
)

// TradeStore persists the ordered trade collection as a single JSON blob.
type TradeStore struct {
	store  *storage.Store
	logger *zap.Logger
}

// NewTradeStore creates a trade store on top of the given blob store.
func NewTradeStore(store *storage.Store, logger *zap.Logger) *TradeStore {
	return &TradeStore{store: store, logger: logger}
}

// Load reads the full trade collection. An absent or unparsable blob yields
// an empty collection; read failures never reach the caller.
func (s *TradeStore) Load() []models.Trade {
	raw, ok, err := s.store.Get(keyTrades)
	if err != nil {
		s.logger.Warn("Failed to read trades blob, treating as empty", zap.Error(err))
		return []models.Trade{}
	}
	if !ok {
		return []models.Trade{}
	}

	var trades []models.Trade
	if err := json.Unmarshal([]byte(raw), &trades); err != nil {
		s.logger.Warn("Corrupt trades blob, treating as empty", zap.Error(err))
		return []models.Trade{}
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	return trades
}

// SaveAll serializes the full collection and overwrites the persisted blob.
func (s *TradeStore) SaveAll(trades []models.Trade) error {
	if trades == nil {
		trades = []models.Trade{}
	}
	data, err := json.Marshal(trades)
	if err != nil {
		return fmt.Errorf("failed to serialize trades: %w", err)
	}
	return s.store.Put(keyTrades, string(data))
}

// Add appends a trade and rewrites the collection.
func (s *TradeStore) Add(trade models.Trade) error {
	trades := s.Load()
	return s.SaveAll(append(trades, trade))
}

// Remove deletes the trade with the given id and rewrites the collection.
// It reports whether a trade was removed.
func (s *TradeStore) Remove(id string) (bool, error) {
	trades := s.Load()
	kept := make([]models.Trade, 0, len(trades))
	removed := false
	for _, t := range trades {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return false, nil
	}
	return true, s.SaveAll(kept)
}
