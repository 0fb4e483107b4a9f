// Package market provides the quote and price history services.
package market

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/models"
	"robinhood-mcp/internal/robinhood"
)

// Enumerated price history parameters. Validated before any network call.
var (
	ValidIntervals = []string{"5minute", "10minute", "hour", "day", "week"}
	ValidSpans     = []string{"day", "week", "month", "3month", "year", "5year", "all"}
	ValidBounds    = []string{"extended", "trading", "regular", "24_7"}
)

// Service implements MarketDataService.
type Service struct {
	client interfaces.RobinhoodClient
	logger *common.Logger
}

// NewService creates a new market data service.
func NewService(client interfaces.RobinhoodClient, logger *common.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetCurrentPrice returns current quotes for the given symbols. The upstream
// returns a bare object for one symbol and a list for several; the result is
// always a list. An empty upstream result is an empty list, not an error.
func (s *Service) GetCurrentPrice(ctx context.Context, symbols []string) ([]models.Quote, error) {
	if len(symbols) == 0 {
		return nil, robinhood.InvalidArgument("at least one symbol is required")
	}

	if err := s.client.EnsureSession(ctx, ""); err != nil {
		return nil, err
	}

	raw, err := s.client.GetQuotes(ctx, symbols)
	if err != nil {
		return nil, robinhood.APIError("fetch quotes", err)
	}

	quotes := make([]models.Quote, 0)
	for _, item := range asObjectList(raw) {
		quote, err := models.QuoteFromPayload(item)
		if err != nil {
			return nil, robinhood.APIError("fetch quotes", err)
		}
		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// GetPriceHistory returns historical bars for a symbol. The interval, span,
// and bounds parameters are validated against closed sets up front; an
// invalid value fails fast without touching the network.
func (s *Service) GetPriceHistory(ctx context.Context, symbol, interval, span, bounds string) ([]models.Candle, error) {
	if symbol == "" {
		return nil, robinhood.InvalidArgument("symbol is required")
	}
	if !slices.Contains(ValidIntervals, interval) {
		return nil, robinhood.InvalidArgument(fmt.Sprintf("invalid interval %q: must be one of %s", interval, strings.Join(ValidIntervals, ", ")))
	}
	if !slices.Contains(ValidSpans, span) {
		return nil, robinhood.InvalidArgument(fmt.Sprintf("invalid span %q: must be one of %s", span, strings.Join(ValidSpans, ", ")))
	}
	if !slices.Contains(ValidBounds, bounds) {
		return nil, robinhood.InvalidArgument(fmt.Sprintf("invalid bounds %q: must be one of %s", bounds, strings.Join(ValidBounds, ", ")))
	}

	if err := s.client.EnsureSession(ctx, ""); err != nil {
		return nil, err
	}

	data, err := s.client.GetHistoricals(ctx, symbol, interval, span, bounds)
	if err != nil {
		return nil, robinhood.APIError("fetch price history", err)
	}

	candles := make([]models.Candle, 0, len(data))
	for _, item := range data {
		candle, err := models.CandleFromPayload(item)
		if err != nil {
			return nil, robinhood.APIError("fetch price history", err)
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

// asObjectList flattens a single-object-or-list upstream payload into a list
// of objects, dropping null entries. A nil or empty map is an absent result,
// not a record.
func asObjectList(raw any) []map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		if len(v) == 0 {
			return []map[string]any{}
		}
		return []map[string]any{v}
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, it := range v {
			if m, ok := it.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

var _ interfaces.MarketDataService = (*Service)(nil)
