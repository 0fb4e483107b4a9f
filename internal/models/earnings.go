package models

// EarningsEPS holds earnings-per-share data for a quarter.
type EarningsEPS struct {
	Estimate *float64 `json:"estimate"`
	Actual   *float64 `json:"actual"`
}

// EarningsReport holds earnings report metadata.
type EarningsReport struct {
	Date     *string `json:"date"`
	Timing   *string `json:"timing"`
	Verified *bool   `json:"verified"`
}

// EarningsCall holds earnings call details.
type EarningsCall struct {
	Datetime     *string `json:"datetime"`
	BroadcastURL *string `json:"broadcast_url"`
	ReplayURL    *string `json:"replay_url"`
}

// Earnings holds earnings data for a single fiscal quarter. The nested
// records are present only when the corresponding upstream value is a
// non-null structured payload.
type Earnings struct {
	Symbol     *string         `json:"symbol"`
	Instrument *string         `json:"instrument"`
	Year       *int64          `json:"year"`
	Quarter    *int64          `json:"quarter"`
	EPS        *EarningsEPS    `json:"eps"`
	Report     *EarningsReport `json:"report"`
	Call       *EarningsCall   `json:"call"`
}

// EarningsFromPayload builds an Earnings record from one raw quarter entry.
func EarningsFromPayload(item map[string]any) Earnings {
	return Earnings{
		Symbol:     payloadOptString(item, "symbol"),
		Instrument: payloadOptString(item, "instrument"),
		Year:       CoerceInt(item["year"]),
		Quarter:    CoerceInt(item["quarter"]),
		EPS:        earningsEPSFromPayload(item["eps"]),
		Report:     earningsReportFromPayload(item["report"]),
		Call:       earningsCallFromPayload(item["call"]),
	}
}

func earningsEPSFromPayload(v any) *EarningsEPS {
	item, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &EarningsEPS{
		Estimate: CoerceNumeric(item["estimate"]),
		Actual:   CoerceNumeric(item["actual"]),
	}
}

func earningsReportFromPayload(v any) *EarningsReport {
	item, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &EarningsReport{
		Date:     payloadOptString(item, "date"),
		Timing:   payloadOptString(item, "timing"),
		Verified: payloadOptBool(item, "verified"),
	}
}

func earningsCallFromPayload(v any) *EarningsCall {
	item, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &EarningsCall{
		Datetime:     payloadOptString(item, "datetime"),
		BroadcastURL: payloadOptString(item, "broadcast_url"),
		ReplayURL:    payloadOptString(item, "replay_url"),
	}
}
