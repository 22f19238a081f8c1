package journal

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/storage"
)

// PairStore persists user-added currency pair symbols. Load always returns
// the fixed default majors first, followed by stored custom pairs.
type PairStore struct {
	store  *storage.Store
	logger *zap.Logger
}

// NewPairStore creates a pair store on top of the given blob store.
func NewPairStore(store *storage.Store, logger *zap.Logger) *PairStore {
	return &PairStore{store: store, logger: logger}
}

// Load returns the default pairs merged with the persisted custom pairs,
// deduplicated, insertion order preserved.
func (s *PairStore) Load() []string {
	merged := make([]string, 0, len(models.DefaultCurrencyPairs))
	seen := make(map[string]struct{})
	for _, p := range models.DefaultCurrencyPairs {
		merged = append(merged, p)
		seen[p] = struct{}{}
	}

	for _, p := range s.loadStored() {
		if _, ok := seen[p]; ok {
			continue
		}
		merged = append(merged, p)
		seen[p] = struct{}{}
	}
	return merged
}

// Add persists a custom pair symbol. Adding a default or already stored pair
// is a no-op.
func (s *PairStore) Add(pair string) error {
	for _, p := range s.Load() {
		if p == pair {
			return nil
		}
	}

	stored := append(s.loadStored(), pair)
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to serialize currency pairs: %w", err)
	}
	return s.store.Put(keyCurrencyPairs, string(data))
}

// loadStored reads only the persisted custom pairs, empty on absence or
// corruption.
func (s *PairStore) loadStored() []string {
	raw, ok, err := s.store.Get(keyCurrencyPairs)
	if err != nil {
		s.logger.Warn("Failed to read currency pairs blob, treating as empty", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var pairs []string
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		s.logger.Warn("Corrupt currency pairs blob, treating as empty", zap.Error(err))
		return nil
	}
	return pairs
}
