package models

import "fmt"

// PortfolioSummary is a normalized account-level summary.
type PortfolioSummary struct {
	Equity       float64  `json:"equity"`
	Cash         float64  `json:"cash"`
	BuyingPower  float64  `json:"buying_power"`
	UnrealizedPL *float64 `json:"unrealized_pl"`
	DayChange    *float64 `json:"day_change"`
}

// PortfolioSummaryFromPayload builds a PortfolioSummary from the raw account
// profile. Equity, cash, and buying power are required.
func PortfolioSummaryFromPayload(item map[string]any) (PortfolioSummary, error) {
	equity := CoerceNumeric(item["equity"])
	cash := CoerceNumeric(item["cash"])
	buyingPower := CoerceNumeric(item["buying_power"])

	if equity == nil || cash == nil || buyingPower == nil {
		return PortfolioSummary{}, fmt.Errorf("account profile missing numeric equity/cash/buying_power")
	}

	return PortfolioSummary{
		Equity:       *equity,
		Cash:         *cash,
		BuyingPower:  *buyingPower,
		UnrealizedPL: CoerceNumeric(item["unsettled_debit"]),
		DayChange:    CoerceNumeric(item["portfolio_cash"]),
	}, nil
}

// Position is a normalized open stock position.
type Position struct {
	Symbol       string   `json:"symbol"`
	Quantity     float64  `json:"quantity"`
	AverageCost  float64  `json:"average_cost"`
	MarketValue  *float64 `json:"market_value"`
	UnrealizedPL *float64 `json:"unrealized_pl"`
}

// PositionFromPayload builds a Position from a raw upstream position entry.
// The symbol comes from a separate instrument lookup and is supplied by the
// caller; market value and unrealized P/L would need quote lookups and are
// left null.
func PositionFromPayload(item map[string]any, symbol string) (Position, error) {
	quantity := CoerceNumeric(item["quantity"])
	avgCost := CoerceNumeric(item["average_buy_price"])

	if quantity == nil || avgCost == nil {
		return Position{}, fmt.Errorf("position %q: quantity or average_buy_price is not numeric", symbol)
	}

	return Position{
		Symbol:      symbol,
		Quantity:    *quantity,
		AverageCost: *avgCost,
	}, nil
}
