package journal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-journal-go/internal/models"
)

func TestExportCSVHeader(t *testing.T) {
	out := ExportCSV(nil)
	assert.Equal(t,
		"ID,Currency Pair,Action,Date,Entry Price,Stop Loss,Take Profit,Exit Price,Position Size,Status,Profit/Loss,Conditions,Notes",
		out)
}

func TestExportCSVRow(t *testing.T) {
	trades := []models.Trade{
		{
			ID:           "t1",
			CurrencyPair: "EUR/USD",
			Action:       models.ActionBuy,
			Date:         "2026-08-30T09:15:00Z",
			Conditions: []models.Condition{
				{Description: "Price above 200 EMA", Confidence: 80, Checked: true},
				{Description: "RSI below 30", Confidence: 75, Checked: true},
			},
			EntryPrice:      1.1,
			StopLossPrice:   1.095,
			TakeProfitPrice: 1.105,
			PositionSize:    1000,
			Status:          models.StatusOpen,
		},
	}

	out := ExportCSV(trades)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"t1,EUR/USD,buy,2026-08-30T09:15:00Z,1.1,1.095,1.105,,1000,open,,Price above 200 EMA (80%); RSI below 30 (75%),",
		lines[1])
}

func TestExportCSVQuotesNotes(t *testing.T) {
	trades := []models.Trade{
		{
			ID:           "t1",
			CurrencyPair: "EUR/USD",
			Action:       models.ActionBuy,
			Date:         "2026-08-30T09:15:00Z",
			EntryPrice:   1.1,
			PositionSize: 1000,
			Status:       models.StatusOpen,
			Notes:        `He said "buy"`,
		},
	}

	out := ExportCSV(trades)
	assert.Contains(t, out, `"He said ""buy"""`)
}

func TestExportCSVClosedTrade(t *testing.T) {
	trades := []models.Trade{
		{
			ID:           "t2",
			CurrencyPair: "GBP/USD",
			Action:       models.ActionSell,
			Date:         "2026-08-31T14:00:00Z",
			EntryPrice:   1.2,
			ExitPrice:    floatPtr(1.19),
			PositionSize: 500,
			Status:       models.StatusClosed,
			ProfitLoss:   floatPtr(5),
		},
	}

	lines := strings.Split(ExportCSV(trades), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "t2,GBP/USD,sell,2026-08-31T14:00:00Z,1.2,0,0,1.19,500,closed,5,,", lines[1])
}

func TestExportJSONRoundTrip(t *testing.T) {
	trades := sampleTrades()

	data, err := ExportJSON(trades)
	require.NoError(t, err)

	var decoded []models.Trade
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, trades, decoded)
}

func TestExportJSONEmpty(t *testing.T) {
	data, err := ExportJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestImportJSONMerge(t *testing.T) {
	existing := []models.Trade{
		{ID: "a", CurrencyPair: "EUR/USD", Action: models.ActionBuy, Date: "2026-01-01T00:00:00Z", Notes: "original a"},
		{ID: "b", CurrencyPair: "GBP/USD", Action: models.ActionSell, Date: "2026-01-02T00:00:00Z", Notes: "original b"},
	}
	payload := `[
		{"id":"b","currencyPair":"GBP/USD","action":"sell","date":"2026-02-01T00:00:00Z","notes":"incoming b"},
		{"id":"c","currencyPair":"USD/JPY","action":"buy","date":"2026-02-02T00:00:00Z","notes":"incoming c"}
	]`

	merged, added, err := ImportJSON([]byte(payload), existing)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	require.Len(t, merged, 3)

	// Existing record wins on id collision.
	assert.Equal(t, []string{"a", "b", "c"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
	assert.Equal(t, "original b", merged[1].Notes)
	assert.Equal(t, "incoming c", merged[2].Notes)
}

func TestImportJSONRejectsNonArray(t *testing.T) {
	existing := sampleTrades()

	testCases := []struct {
		name    string
		payload string
	}{
		{name: "object", payload: `{"not":"an array"}`},
		{name: "null", payload: `null`},
		{name: "string", payload: `"trades"`},
		{name: "number", payload: `42`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			merged, added, err := ImportJSON([]byte(tc.payload), existing)
			assert.Nil(t, merged)
			assert.Zero(t, added)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestImportJSONRejectsMissingFields(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{name: "missing id", payload: `[{"currencyPair":"EUR/USD","action":"buy","date":"2026-01-01T00:00:00Z"}]`},
		{name: "missing currency pair", payload: `[{"id":"x","action":"buy","date":"2026-01-01T00:00:00Z"}]`},
		{name: "missing action", payload: `[{"id":"x","currencyPair":"EUR/USD","date":"2026-01-01T00:00:00Z"}]`},
		{name: "missing date", payload: `[{"id":"x","currencyPair":"EUR/USD","action":"buy"}]`},
		{name: "not even objects", payload: `[42]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			merged, added, err := ImportJSON([]byte(tc.payload), nil)
			assert.Nil(t, merged)
			assert.Zero(t, added)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "trading-journal-export-2026-09-01.csv", ExportFilename("csv", now))
	assert.Equal(t, "trading-journal-export-2026-09-01.json", ExportFilename("json", now))
}
