package models

// Fundamentals holds company fundamentals. Every field is optional because
// the upstream returns an empty payload for invalid symbols.
type Fundamentals struct {
	MarketCap     *float64 `json:"market_cap"`
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield"`
	Week52High    *float64 `json:"week_52_high"`
	Week52Low     *float64 `json:"week_52_low"`
}

// FundamentalsFromPayload builds a Fundamentals record from a raw upstream
// payload. Never fails: unparsable fields become null.
func FundamentalsFromPayload(item map[string]any) Fundamentals {
	return Fundamentals{
		MarketCap:     CoerceNumeric(item["market_cap"]),
		PERatio:       CoerceNumeric(item["pe_ratio"]),
		DividendYield: CoerceNumeric(item["dividend_yield"]),
		Week52High:    CoerceNumeric(item["high_52_weeks"]),
		Week52Low:     CoerceNumeric(item["low_52_weeks"]),
	}
}
