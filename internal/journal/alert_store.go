package journal

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/storage"
)

// AlertStore persists the ordered price alert collection as a single JSON blob.
type AlertStore struct {
	store  *storage.Store
	logger *zap.Logger
}

// NewAlertStore creates an alert store on top of the given blob store.
func NewAlertStore(store *storage.Store, logger *zap.Logger) *AlertStore {
	return &AlertStore{store: store, logger: logger}
}

// Load reads the full alert collection. An absent or unparsable blob yields
// an empty collection; read failures never reach the caller.
func (s *AlertStore) Load() []models.PriceAlert {
	raw, ok, err := s.store.Get(keyPriceAlerts)
	if err != nil {
		s.logger.Warn("Failed to read alerts blob, treating as empty", zap.Error(err))
		return []models.PriceAlert{}
	}
	if !ok {
		return []models.PriceAlert{}
	}

	var alerts []models.PriceAlert
	if err := json.Unmarshal([]byte(raw), &alerts); err != nil {
		s.logger.Warn("Corrupt alerts blob, treating as empty", zap.Error(err))
		return []models.PriceAlert{}
	}
	if alerts == nil {
		alerts = []models.PriceAlert{}
	}
	return alerts
}

// SaveAll serializes the full collection and overwrites the persisted blob.
func (s *AlertStore) SaveAll(alerts []models.PriceAlert) error {
	if alerts == nil {
		alerts = []models.PriceAlert{}
	}
	data, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to serialize alerts: %w", err)
	}
	return s.store.Put(keyPriceAlerts, string(data))
}

// Add appends an alert and rewrites the collection.
func (s *AlertStore) Add(alert models.PriceAlert) error {
	alerts := s.Load()
	return s.SaveAll(append(alerts, alert))
}

// Remove deletes the alert with the given id and rewrites the collection.
// It reports whether an alert was removed.
func (s *AlertStore) Remove(id string) (bool, error) {
	alerts := s.Load()
	kept := make([]models.PriceAlert, 0, len(alerts))
	removed := false
	for _, a := range alerts {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return false, nil
	}
	return true, s.SaveAll(kept)
}

// Trigger flips the triggered flag of the alert with the given id and
// returns the updated alert. Triggering is one-way; an already triggered
// alert stays triggered.
func (s *AlertStore) Trigger(id string) (models.PriceAlert, bool, error) {
	alerts := s.Load()
	for i := range alerts {
		if alerts[i].ID == id {
			alerts[i].Triggered = true
			if err := s.SaveAll(alerts); err != nil {
				return models.PriceAlert{}, false, err
			}
			return alerts[i], true, nil
		}
	}
	return models.PriceAlert{}, false, nil
}
