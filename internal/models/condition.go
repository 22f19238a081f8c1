package models

import "github.com/google/uuid"

// Condition is a confidence-weighted rationale a trader checks off before
// entering a trade. Only checked conditions are retained on a saved trade.
type Condition struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
	Checked     bool   `json:"checked"`
}

// ConditionTemplate is a predefined condition without identity or state.
type ConditionTemplate struct {
	Description string
	Confidence  int
}

// Predefined condition templates seeded into the entry form when the trade
// action is chosen.
var (
	BuyConditionTemplates = []ConditionTemplate{
		{Description: "Price above 200 EMA", Confidence: 80},
		{Description: "RSI below 30", Confidence: 75},
		{Description: "Bullish engulfing pattern", Confidence: 85},
		{Description: "Support level holding", Confidence: 70},
	}

	SellConditionTemplates = []ConditionTemplate{
		{Description: "Price below 200 EMA", Confidence: 80},
		{Description: "RSI above 70", Confidence: 75},
		{Description: "Bearish engulfing pattern", Confidence: 85},
		{Description: "Resistance level reached", Confidence: 70},
	}
)

// SeedConditions instantiates the predefined templates for the given action,
// all unchecked and with fresh identifiers. Returns nil for an unknown action.
func SeedConditions(action Action) []Condition {
	var templates []ConditionTemplate
	switch action {
	case ActionBuy:
		templates = BuyConditionTemplates
	case ActionSell:
		templates = SellConditionTemplates
	default:
		return nil
	}

	conditions := make([]Condition, 0, len(templates))
	for _, tpl := range templates {
		conditions = append(conditions, Condition{
			ID:          uuid.NewString(),
			Description: tpl.Description,
			Confidence:  tpl.Confidence,
			Checked:     false,
		})
	}
	return conditions
}
