package journal

import (
	"math"

	"github.com/shopspring/decimal"

	"trading-journal-go/internal/models"
)

// PotentialPL is the projected profit/loss of an open trade if its
// take-profit or stop-loss level were hit.
type PotentialPL struct {
	TakeProfit float64 `json:"takeProfit"`
	StopLoss   float64 `json:"stopLoss"`
}

// Potential computes the projected profit/loss for an open trade. Closed
// trades and trades without an entry price or position size yield zeros.
// Price math goes through decimals so repeated render-time calls stay exact.
func Potential(t models.Trade) PotentialPL {
	if t.Status == models.StatusClosed || t.EntryPrice == 0 || t.PositionSize == 0 {
		return PotentialPL{}
	}

	entry := decimal.NewFromFloat(t.EntryPrice)
	size := decimal.NewFromFloat(t.PositionSize)

	var pl PotentialPL
	switch t.Action {
	case models.ActionBuy:
		if t.TakeProfitPrice > 0 {
			pl.TakeProfit = decimal.NewFromFloat(t.TakeProfitPrice).Sub(entry).Mul(size).InexactFloat64()
		}
		if t.StopLossPrice > 0 {
			pl.StopLoss = decimal.NewFromFloat(t.StopLossPrice).Sub(entry).Mul(size).InexactFloat64()
		}
	case models.ActionSell:
		if t.TakeProfitPrice > 0 {
			pl.TakeProfit = entry.Sub(decimal.NewFromFloat(t.TakeProfitPrice)).Mul(size).InexactFloat64()
		}
		if t.StopLossPrice > 0 {
			pl.StopLoss = entry.Sub(decimal.NewFromFloat(t.StopLossPrice)).Mul(size).InexactFloat64()
		}
	}
	return pl
}

// Actual computes the realized profit/loss of a closed trade from entry to
// exit price. It returns 0 when the trade is not closed or either price is
// missing; callers treat that as "no computation yet", not an error.
func Actual(t models.Trade) float64 {
	if t.Status != models.StatusClosed || t.EntryPrice == 0 || t.ExitPrice == nil {
		return 0
	}

	entry := decimal.NewFromFloat(t.EntryPrice)
	exit := decimal.NewFromFloat(*t.ExitPrice)
	size := decimal.NewFromFloat(t.PositionSize)

	switch t.Action {
	case models.ActionBuy:
		return exit.Sub(entry).Mul(size).InexactFloat64()
	case models.ActionSell:
		return entry.Sub(exit).Mul(size).InexactFloat64()
	}
	return 0
}

// AverageConfidence returns the mean condition confidence rounded to the
// nearest integer, 0 for an empty sequence.
func AverageConfidence(conditions []models.Condition) int {
	if len(conditions) == 0 {
		return 0
	}
	sum := 0
	for _, c := range conditions {
		sum += c.Confidence
	}
	return int(math.Round(float64(sum) / float64(len(conditions))))
}

// RiskReward returns |takeProfit / stopLoss| for a potential profit/loss
// pair, 0 when either side is zero and the ratio is undefined.
func RiskReward(pl PotentialPL) float64 {
	if pl.TakeProfit == 0 || pl.StopLoss == 0 {
		return 0
	}
	return math.Abs(pl.TakeProfit / pl.StopLoss)
}

// TradePreview is the live profit/loss summary shown while a trade is being
// entered, before anything is saved.
type TradePreview struct {
	Potential         PotentialPL `json:"potential"`
	RiskReward        float64     `json:"riskReward"`
	ActualProfitLoss  float64     `json:"actualProfitLoss"`
	AverageConfidence int         `json:"averageConfidence"`
}

// Preview computes the entry-form summary for a draft trade: potential
// profit/loss with its risk/reward ratio for an open draft, realized
// profit/loss for a closed one, and the mean confidence of the checked
// conditions. Drafts are never validated here; incomplete fields simply
// yield zeros.
func Preview(t models.Trade) TradePreview {
	potential := Potential(t)
	return TradePreview{
		Potential:         potential,
		RiskReward:        RiskReward(potential),
		ActualProfitLoss:  Actual(t),
		AverageConfidence: AverageConfidence(t.CheckedConditions()),
	}
}

// Stats summarizes the journal for the portfolio view.
type Stats struct {
	TotalTrades      int     `json:"total_trades"`
	OpenTrades       int     `json:"open_trades"`
	ClosedTrades     int     `json:"closed_trades"`
	ProfitableTrades int     `json:"profitable_trades"`
	WinRate          float64 `json:"win_rate"`
	TotalProfitLoss  float64 `json:"total_profit_loss"`
}

// Statistics aggregates recorded profit/loss across the journal. Only closed
// trades with a recorded profit/loss count toward the win rate; the stored
// value is used as-is, never recomputed.
func Statistics(trades []models.Trade) Stats {
	stats := Stats{TotalTrades: len(trades)}
	settled := 0

	for _, t := range trades {
		if t.Status == models.StatusOpen {
			stats.OpenTrades++
			continue
		}
		stats.ClosedTrades++
		if t.ProfitLoss == nil {
			continue
		}
		settled++
		stats.TotalProfitLoss += *t.ProfitLoss
		if *t.ProfitLoss > 0 {
			stats.ProfitableTrades++
		}
	}

	if settled > 0 {
		stats.WinRate = float64(stats.ProfitableTrades) / float64(settled)
	}
	return stats
}
