package journal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/notify"
)

// ErrPermissionDenied is returned when the user declines the notification
// permission prompt. Settings stay unchanged in that case.
var ErrPermissionDenied = errors.New("notification permission not granted")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service ties the record stores, derived metrics and notification
// collaborators together. All dependencies are explicit handles; there is no
// package-level state.
type Service struct {
	logger    *zap.Logger
	trades    *TradeStore
	alerts    *AlertStore
	settings  *SettingsStore
	pairs     *PairStore
	notifier  notify.Notifier
	registrar notify.PushRegistrar
	now       func() time.Time
}

// NewService creates the journal service.
func NewService(
	logger *zap.Logger,
	trades *TradeStore,
	alerts *AlertStore,
	settings *SettingsStore,
	pairs *PairStore,
	notifier notify.Notifier,
	registrar notify.PushRegistrar,
) *Service {
	return &Service{
		logger:    logger,
		trades:    trades,
		alerts:    alerts,
		settings:  settings,
		pairs:     pairs,
		notifier:  notifier,
		registrar: registrar,
		now:       time.Now,
	}
}

// ListTrades returns the full trade collection.
func (s *Service) ListTrades() []models.Trade {
	return s.trades.Load()
}

// SaveTrade validates and persists a new journal entry. Unchecked conditions
// are discarded, the save timestamp is stamped, and for a closed trade with
// an exit price the profit/loss is computed exactly once. The stored trade
// is returned.
func (s *Service) SaveTrade(draft models.Trade) (models.Trade, error) {
	if draft.CurrencyPair == "" {
		return models.Trade{}, validationErrorf("please select a currency pair")
	}
	if !draft.Action.Valid() {
		return models.Trade{}, validationErrorf("please select an action (buy/sell)")
	}
	if draft.EntryPrice <= 0 {
		return models.Trade{}, validationErrorf("please enter an entry price")
	}
	if draft.PositionSize <= 0 {
		return models.Trade{}, validationErrorf("please enter a position size")
	}
	if draft.Status == "" {
		draft.Status = models.StatusOpen
	}
	if !draft.Status.Valid() {
		return models.Trade{}, validationErrorf("invalid trade status %q", draft.Status)
	}

	checked := draft.CheckedConditions()
	if len(checked) == 0 {
		return models.Trade{}, validationErrorf("please select at least one condition")
	}

	trade := draft
	trade.Conditions = checked
	trade.Notes = strings.TrimSpace(draft.Notes)
	trade.Date = s.now().UTC().Format(time.RFC3339)
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}

	// Exit price only exists on closed trades; profit/loss is recorded once
	// at save time and never recalculated.
	trade.ProfitLoss = nil
	if trade.Status != models.StatusClosed {
		trade.ExitPrice = nil
	}
	if trade.Status == models.StatusClosed && trade.ExitPrice != nil {
		pl := Actual(trade)
		trade.ProfitLoss = &pl
	}

	if err := s.trades.Add(trade); err != nil {
		return models.Trade{}, err
	}

	// Keep the pair list in sync with symbols actually traded.
	if err := s.pairs.Add(trade.CurrencyPair); err != nil {
		s.logger.Warn("Failed to persist currency pair", zap.String("pair", trade.CurrencyPair), zap.Error(err))
	}

	s.logger.Info("Trade saved",
		zap.String("id", trade.ID),
		zap.String("pair", trade.CurrencyPair),
		zap.String("action", string(trade.Action)))
	return trade, nil
}

// PreviewTrade computes the live entry-form summary for a draft without
// touching the store. It is called on every form change, so it stays pure.
func (s *Service) PreviewTrade(draft models.Trade) TradePreview {
	return Preview(draft)
}

// DeleteTrade removes a trade by id, reporting whether it existed.
func (s *Service) DeleteTrade(id string) (bool, error) {
	return s.trades.Remove(id)
}

// ImportTrades merges a JSON payload into the journal and returns the number
// of newly added trades. A malformed payload mutates nothing.
func (s *Service) ImportTrades(payload []byte) (int, error) {
	existing := s.trades.Load()
	merged, added, err := ImportJSON(payload, existing)
	if err != nil {
		return 0, err
	}
	if err := s.trades.SaveAll(merged); err != nil {
		return 0, err
	}

	s.logger.Info("Imported trades", zap.Int("added", added))
	return added, nil
}

// ExportTradesCSV renders the journal as the fixed-format CSV table.
func (s *Service) ExportTradesCSV() string {
	return ExportCSV(s.trades.Load())
}

// ExportTradesJSON renders the journal as a pretty-printed JSON dump.
func (s *Service) ExportTradesJSON() ([]byte, error) {
	return ExportJSON(s.trades.Load())
}

// TradeStats aggregates portfolio statistics over the journal.
func (s *Service) TradeStats() Stats {
	return Statistics(s.trades.Load())
}

// ListAlerts returns the full price alert collection.
func (s *Service) ListAlerts() []models.PriceAlert {
	return s.alerts.Load()
}

// CreateAlert validates and persists a new price alert.
func (s *Service) CreateAlert(draft models.PriceAlert) (models.PriceAlert, error) {
	if draft.CurrencyPair == "" {
		return models.PriceAlert{}, validationErrorf("please select a currency pair")
	}
	if draft.Price <= 0 {
		return models.PriceAlert{}, validationErrorf("please enter a valid price")
	}
	if !draft.Condition.Valid() {
		return models.PriceAlert{}, validationErrorf("invalid alert condition %q", draft.Condition)
	}

	alert := draft
	alert.Triggered = false
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}

	if err := s.alerts.Add(alert); err != nil {
		return models.PriceAlert{}, err
	}

	s.logger.Info("Alert created",
		zap.String("id", alert.ID),
		zap.String("pair", alert.CurrencyPair),
		zap.Float64("price", alert.Price))
	return alert, nil
}

// DeleteAlert removes an alert by id, reporting whether it existed.
func (s *Service) DeleteAlert(id string) (bool, error) {
	return s.alerts.Remove(id)
}

// TriggerAlert flips the alert's triggered flag and, when price alert
// notifications are enabled, shows a notification. A failed notification is
// logged but does not undo the trigger.
func (s *Service) TriggerAlert(ctx context.Context, id string) (models.PriceAlert, error) {
	alert, found, err := s.alerts.Trigger(id)
	if err != nil {
		return models.PriceAlert{}, err
	}
	if !found {
		return models.PriceAlert{}, validationErrorf("unknown alert %q", id)
	}

	settings := s.settings.Load()
	if settings.PushEnabled && settings.PriceAlerts {
		title := fmt.Sprintf("%s Price Alert", alert.CurrencyPair)
		opts := notify.Options{
			Body: fmt.Sprintf("%s is now %s %v", alert.CurrencyPair, alert.Condition, alert.Price),
			Icon: "/favicon.ico",
		}
		if err := s.notifier.Show(ctx, title, opts); err != nil {
			s.logger.Warn("Failed to show alert notification", zap.String("alert_id", alert.ID), zap.Error(err))
		}
	}

	return alert, nil
}

// Settings returns the current notification settings.
func (s *Service) Settings() models.NotificationSettings {
	return s.settings.Load()
}

// UpdateSettings overwrites the settings record wholesale, except the push
// toggle, which only changes through EnablePush/DisablePush. Enabling email
// notifications requires a valid address.
func (s *Service) UpdateSettings(updated models.NotificationSettings) (models.NotificationSettings, error) {
	if updated.EmailEnabled && !emailPattern.MatchString(updated.Email) {
		return models.NotificationSettings{}, validationErrorf("please enter a valid email address")
	}

	current := s.settings.Load()
	updated.PushEnabled = current.PushEnabled
	if err := s.settings.Save(updated); err != nil {
		return models.NotificationSettings{}, err
	}
	return updated, nil
}

// EnablePush requests notification permission, registers a push
// subscription, and only then persists the enabled toggle. Any failure
// leaves the stored settings untouched.
func (s *Service) EnablePush(ctx context.Context) (models.NotificationSettings, error) {
	permission, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		return models.NotificationSettings{}, fmt.Errorf("permission request failed: %w", err)
	}
	if permission != notify.PermissionGranted {
		return models.NotificationSettings{}, ErrPermissionDenied
	}

	sub, err := s.registrar.Subscribe(ctx)
	if err != nil {
		return models.NotificationSettings{}, fmt.Errorf("push subscription failed: %w", err)
	}
	s.logger.Info("Push subscription registered", zap.String("endpoint", sub.Endpoint))

	settings := s.settings.Load()
	settings.PushEnabled = true
	if err := s.settings.Save(settings); err != nil {
		return models.NotificationSettings{}, err
	}
	return settings, nil
}

// DisablePush removes the push subscription and persists the disabled
// toggle. A failed unsubscribe leaves the stored settings untouched.
func (s *Service) DisablePush(ctx context.Context) (models.NotificationSettings, error) {
	if _, err := s.registrar.Unsubscribe(ctx); err != nil {
		return models.NotificationSettings{}, fmt.Errorf("push unsubscribe failed: %w", err)
	}

	settings := s.settings.Load()
	settings.PushEnabled = false
	if err := s.settings.Save(settings); err != nil {
		return models.NotificationSettings{}, err
	}
	return settings, nil
}

// ListPairs returns the default majors merged with user-added symbols.
func (s *Service) ListPairs() []string {
	return s.pairs.Load()
}

// AddPair persists a custom currency pair symbol.
func (s *Service) AddPair(pair string) error {
	pair = strings.TrimSpace(pair)
	if pair == "" {
		return validationErrorf("currency pair cannot be empty")
	}
	return s.pairs.Add(pair)
}
