package models

// AlertCondition tells whether an alert fires above or below its price.
type AlertCondition string

const (
	AlertAbove AlertCondition = "above"
	AlertBelow AlertCondition = "below"
)

// Valid reports whether the alert condition is one of the closed enum values.
func (c AlertCondition) Valid() bool {
	return c == AlertAbove || c == AlertBelow
}

// PriceAlert is a user-defined price threshold watch. Triggered flips true
// exactly once, via a manual simulation or an external price event.
type PriceAlert struct {
	ID           string         `json:"id"`
	CurrencyPair string         `json:"currencyPair"`
	Price        float64        `json:"price"`
	Condition    AlertCondition `json:"condition"`
	Triggered    bool           `json:"triggered"`
}
