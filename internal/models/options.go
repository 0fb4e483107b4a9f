package models

import "fmt"

// OptionContract is a normalized option contract.
type OptionContract struct {
	Symbol       string   `json:"symbol"`
	Expiration   string   `json:"expiration"`
	Strike       float64  `json:"strike"`
	Type         string   `json:"type"`
	Bid          *float64 `json:"bid"`
	Ask          *float64 `json:"ask"`
	OpenInterest *int64   `json:"open_interest"`
	Volume       *int64   `json:"volume"`
}

// OptionContractFromPayload builds an OptionContract from a raw upstream
// option instrument. The contract type is normalized to exactly "call" or
// "put"; any unrecognized upstream value becomes "put".
func OptionContractFromPayload(item map[string]any, fallbackSymbol, expiration string) (OptionContract, error) {
	strike := CoerceNumeric(item["strike_price"])
	if strike == nil {
		return OptionContract{}, fmt.Errorf("option contract: strike_price %v is not numeric", item["strike_price"])
	}

	symbol := payloadString(item, "chain_symbol")
	if symbol == "" {
		symbol = fallbackSymbol
	}

	contractType := "put"
	if payloadString(item, "type") == "call" {
		contractType = "call"
	}

	return OptionContract{
		Symbol:       symbol,
		Expiration:   expiration,
		Strike:       *strike,
		Type:         contractType,
		Bid:          CoerceNumeric(item["bid_price"]),
		Ask:          CoerceNumeric(item["ask_price"]),
		OpenInterest: CoerceInt(item["open_interest"]),
		Volume:       CoerceInt(item["volume"]),
	}, nil
}
