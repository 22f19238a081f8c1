package journal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"trading-journal-go/internal/models"
)

// csvHeader is the fixed 13-column export header. Column order is part of
// the export format and must not change.
var csvHeader = []string{
	"ID",
	"Currency Pair",
	"Action",
	"Date",
	"Entry Price",
	"Stop Loss",
	"Take Profit",
	"Exit Price",
	"Position Size",
	"Status",
	"Profit/Loss",
	"Conditions",
	"Notes",
}

// ExportCSV serializes the trade collection to the journal's CSV table.
// Conditions render as `description (confidence%)` joined with "; ", notes
// are double-quoted with internal quotes doubled when non-empty, and absent
// numeric fields serialize as empty cells.
func ExportCSV(trades []models.Trade) string {
	lines := make([]string, 0, len(trades)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, t := range trades {
		parts := make([]string, 0, len(t.Conditions))
		for _, c := range t.Conditions {
			parts = append(parts, fmt.Sprintf("%s (%d%%)", c.Description, c.Confidence))
		}
		conditionsText := strings.Join(parts, "; ")

		row := []string{
			t.ID,
			t.CurrencyPair,
			string(t.Action),
			t.Date,
			formatCSVFloat(t.EntryPrice),
			formatCSVFloat(t.StopLossPrice),
			formatCSVFloat(t.TakeProfitPrice),
			formatCSVOptional(t.ExitPrice),
			formatCSVFloat(t.PositionSize),
			string(t.Status),
			formatCSVOptional(t.ProfitLoss),
			conditionsText,
			quoteCSVNotes(t.Notes),
		}
		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n")
}

func formatCSVFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCSVOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatCSVFloat(*v)
}

// quoteCSVNotes wraps non-empty notes in double quotes, doubling internal
// quotes. Empty notes stay an empty cell.
func quoteCSVNotes(notes string) string {
	if notes == "" {
		return ""
	}
	return `"` + strings.ReplaceAll(notes, `"`, `""`) + `"`
}

// ExportJSON serializes the trade collection verbatim, pretty-printed. This
// is the lossless counterpart of ExportCSV and the input format of ImportJSON.
func ExportJSON(trades []models.Trade) ([]byte, error) {
	if trades == nil {
		trades = []models.Trade{}
	}
	data, err := json.MarshalIndent(trades, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize trades: %w", err)
	}
	return data, nil
}

// ImportJSON parses the payload as a trade collection and merges it with the
// existing trades by id: an incoming record whose id already exists is
// silently dropped, all others are appended in payload order. It returns the
// merged collection and the count of newly added records.
//
// A payload that is not an array, or any record missing id, currencyPair,
// action, or date, yields a ValidationError and no merge.
func ImportJSON(payload []byte, existing []models.Trade) ([]models.Trade, int, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(payload, &elements); err != nil {
		return nil, 0, validationErrorf("invalid import data: not an array")
	}
	// A JSON null unmarshals into a nil slice without error; only a real
	// array is acceptable.
	if elements == nil {
		return nil, 0, validationErrorf("invalid import data: not an array")
	}

	incoming := make([]models.Trade, 0, len(elements))
	for i, raw := range elements {
		var t models.Trade
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, 0, validationErrorf("invalid trade data at index %d: %v", i, err)
		}
		if t.ID == "" || t.CurrencyPair == "" || t.Action == "" || t.Date == "" {
			return nil, 0, validationErrorf("invalid trade data at index %d: missing required fields", i)
		}
		incoming = append(incoming, t)
	}

	existingIDs := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		existingIDs[t.ID] = struct{}{}
	}

	merged := append([]models.Trade{}, existing...)
	added := 0
	for _, t := range incoming {
		if _, ok := existingIDs[t.ID]; ok {
			continue
		}
		merged = append(merged, t)
		existingIDs[t.ID] = struct{}{}
		added++
	}

	return merged, added, nil
}

// ExportFilename returns the dated download name for an export, e.g.
// trading-journal-export-2026-09-01.csv.
func ExportFilename(ext string, now time.Time) string {
	return fmt.Sprintf("trading-journal-export-%s.%s", now.UTC().Format("2006-01-02"), ext)
}
