package journal

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/storage"
)

// SettingsStore persists the singleton notification settings record.
type SettingsStore struct {
	store  *storage.Store
	logger *zap.Logger
}

// NewSettingsStore creates a settings store on top of the given blob store.
func NewSettingsStore(store *storage.Store, logger *zap.Logger) *SettingsStore {
	return &SettingsStore{store: store, logger: logger}
}

// Load reads the persisted settings. An absent or unparsable blob yields the
// hard-coded default record; read failures never reach the caller.
func (s *SettingsStore) Load() models.NotificationSettings {
	raw, ok, err := s.store.Get(keyNotificationSettings)
	if err != nil {
		s.logger.Warn("Failed to read settings blob, using defaults", zap.Error(err))
		return models.DefaultNotificationSettings()
	}
	if !ok {
		return models.DefaultNotificationSettings()
	}

	var settings models.NotificationSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.logger.Warn("Corrupt settings blob, using defaults", zap.Error(err))
		return models.DefaultNotificationSettings()
	}
	return settings
}

// Save overwrites the persisted settings record wholesale.
func (s *SettingsStore) Save(settings models.NotificationSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	return s.store.Put(keyNotificationSettings, string(data))
}
