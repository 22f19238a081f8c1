package models

// NotificationSettings is the singleton notification preferences record.
// It is overwritten wholesale on any change.
type NotificationSettings struct {
	Email            string `json:"email"`
	EmailEnabled     bool   `json:"emailEnabled"`
	PushEnabled      bool   `json:"pushEnabled"`
	PriceAlerts      bool   `json:"priceAlerts"`
	TradeUpdates     bool   `json:"tradeUpdates"`
	JournalReminders bool   `json:"journalReminders"`
}

// DefaultNotificationSettings is the record used when nothing has been
// persisted yet: all notification categories on, no delivery channel enabled.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		PriceAlerts:      true,
		TradeUpdates:     true,
		JournalReminders: true,
	}
}
