package models

// DefaultCurrencyPairs is the fixed set of major pairs always offered,
// merged with any user-added symbols at load time.
var DefaultCurrencyPairs = []string{
	"EUR/USD",
	"GBP/USD",
	"USD/JPY",
	"USD/CHF",
	"AUD/USD",
	"USD/CAD",
	"NZD/USD",
	"EUR/GBP",
}
