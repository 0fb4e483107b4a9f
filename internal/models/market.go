package models

import "fmt"

// Quote is a normalized point-in-time price quote for one symbol.
type Quote struct {
	Symbol        string   `json:"symbol"`
	LastPrice     float64  `json:"last_price"`
	Bid           *float64 `json:"bid"`
	Ask           *float64 `json:"ask"`
	Timestamp     string   `json:"timestamp"`
	PreviousClose *float64 `json:"previous_close"`
	ChangePercent *float64 `json:"change_percent"`
}

// QuoteFromPayload builds a Quote from a raw upstream quote payload.
// Optional numeric fields degrade to null on coercion failure; a missing or
// unparsable last trade price fails the whole record.
func QuoteFromPayload(item map[string]any) (Quote, error) {
	last := CoerceNumeric(item["last_trade_price"])
	if last == nil {
		return Quote{}, fmt.Errorf("quote %q: last_trade_price %v is not numeric", payloadString(item, "symbol"), item["last_trade_price"])
	}

	return Quote{
		Symbol:        payloadString(item, "symbol"),
		LastPrice:     *last,
		Bid:           CoerceNumeric(item["bid_price"]),
		Ask:           CoerceNumeric(item["ask_price"]),
		Timestamp:     CoerceTimestamp(payloadString(item, "updated_at")),
		PreviousClose: CoerceNumeric(item["previous_close"]),
		ChangePercent: CoerceNumeric(item["change_percent"]),
	}, nil
}

// Candle is a normalized OHLCV bar.
type Candle struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// CandleFromPayload builds a Candle from a raw upstream historical bar.
func CandleFromPayload(item map[string]any) (Candle, error) {
	open := CoerceNumeric(item["open_price"])
	high := CoerceNumeric(item["high_price"])
	low := CoerceNumeric(item["low_price"])
	closePrice := CoerceNumeric(item["close_price"])
	volume := CoerceInt(item["volume"])

	if open == nil || high == nil || low == nil || closePrice == nil || volume == nil {
		return Candle{}, fmt.Errorf("candle at %q has non-numeric OHLCV fields", payloadString(item, "begins_at"))
	}

	return Candle{
		Timestamp: CoerceTimestamp(payloadString(item, "begins_at")),
		Open:      *open,
		High:      *high,
		Low:       *low,
		Close:     *closePrice,
		Volume:    *volume,
	}, nil
}
