package models

// Action is the direction of a trade.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Valid reports whether the action is one of the closed enum values.
func (a Action) Valid() bool {
	return a == ActionBuy || a == ActionSell
}

// Status is the lifecycle state of a trade.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Valid reports whether the status is one of the closed enum values.
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Trade is a single logged market position with entry/exit prices and the
// decision conditions that were checked when it was saved.
//
// The JSON field names are the journal's persisted wire shape; ExitPrice and
// ProfitLoss are pointers so that an absent value stays absent across a
// save/load round trip. Date is kept as the stored timestamp string so that
// imported records survive re-export byte for byte.
type Trade struct {
	ID              string      `json:"id"`
	CurrencyPair    string      `json:"currencyPair"`
	Action          Action      `json:"action"`
	Date            string      `json:"date"`
	Conditions      []Condition `json:"conditions"`
	EntryPrice      float64     `json:"entryPrice"`
	StopLossPrice   float64     `json:"stopLossPrice"`
	TakeProfitPrice float64     `json:"takeProfitPrice"`
	ExitPrice       *float64    `json:"exitPrice,omitempty"`
	PositionSize    float64     `json:"positionSize"`
	Status          Status      `json:"status"`
	ProfitLoss      *float64    `json:"profitLoss,omitempty"`
	Notes           string      `json:"notes"`
}

// CheckedConditions returns the subset of conditions the trader checked,
// preserving insertion order.
func (t Trade) CheckedConditions() []Condition {
	checked := make([]Condition, 0, len(t.Conditions))
	for _, c := range t.Conditions {
		if c.Checked {
			checked = append(checked, c)
		}
	}
	return checked
}
