package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/robinhood"
)

// mockClient overrides only the methods a test exercises; anything else
// panics through the embedded nil interface.
type mockClient struct {
	interfaces.RobinhoodClient
	ensureSessionFunc  func(ctx context.Context, mfaCode string) error
	getQuotesFunc      func(ctx context.Context, symbols []string) (any, error)
	getHistoricalsFunc func(ctx context.Context, symbol, interval, span, bounds string) ([]map[string]any, error)
}

func (m *mockClient) EnsureSession(ctx context.Context, mfaCode string) error {
	if m.ensureSessionFunc != nil {
		return m.ensureSessionFunc(ctx, mfaCode)
	}
	return nil
}

func (m *mockClient) GetQuotes(ctx context.Context, symbols []string) (any, error) {
	return m.getQuotesFunc(ctx, symbols)
}

func (m *mockClient) GetHistoricals(ctx context.Context, symbol, interval, span, bounds string) ([]map[string]any, error) {
	return m.getHistoricalsFunc(ctx, symbol, interval, span, bounds)
}

func newTestService(client interfaces.RobinhoodClient) *Service {
	return NewService(client, common.NewSilentLogger())
}

func TestGetCurrentPriceRequiresSymbols(t *testing.T) {
	sessionChecked := false
	svc := newTestService(&mockClient{
		ensureSessionFunc: func(ctx context.Context, mfaCode string) error {
			sessionChecked = true
			return nil
		},
	})

	_, err := svc.GetCurrentPrice(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, robinhood.KindInvalidArgument, robinhood.Classify(err))
	assert.False(t, sessionChecked, "validation happens before any session work")
}

func TestGetCurrentPriceSingleSymbolBareObject(t *testing.T) {
	svc := newTestService(&mockClient{
		getQuotesFunc: func(ctx context.Context, symbols []string) (any, error) {
			return map[string]any{
				"symbol":           "AAPL",
				"last_trade_price": "150.50",
			}, nil
		},
	})

	quotes, err := svc.GetCurrentPrice(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, 150.50, quotes[0].LastPrice)
}

func TestGetCurrentPriceMultipleSymbols(t *testing.T) {
	svc := newTestService(&mockClient{
		getQuotesFunc: func(ctx context.Context, symbols []string) (any, error) {
			assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
			return []any{
				map[string]any{"symbol": "AAPL", "last_trade_price": "150.50"},
				map[string]any{"symbol": "MSFT", "last_trade_price": "410.10"},
			}, nil
		},
	})

	quotes, err := svc.GetCurrentPrice(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "MSFT", quotes[1].Symbol)
}

func TestGetCurrentPriceEmptyUpstreamResult(t *testing.T) {
	svc := newTestService(&mockClient{
		getQuotesFunc: func(ctx context.Context, symbols []string) (any, error) {
			return []any{}, nil
		},
	})

	quotes, err := svc.GetCurrentPrice(context.Background(), []string{"ZZZZ"})
	require.NoError(t, err)
	assert.NotNil(t, quotes)
	assert.Empty(t, quotes)
}

func TestGetCurrentPriceAbsentSingleSymbolResult(t *testing.T) {
	// The per-symbol endpoint answers an unknown symbol with a JSON null,
	// which decodes to a nil map. That is an empty result, not an error.
	tests := []struct {
		name string
		raw  any
	}{
		{"nil map", map[string]any(nil)},
		{"empty map", map[string]any{}},
		{"nil payload", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockClient{
				getQuotesFunc: func(ctx context.Context, symbols []string) (any, error) {
					return tt.raw, nil
				},
			})

			quotes, err := svc.GetCurrentPrice(context.Background(), []string{"ZZZZ"})
			require.NoError(t, err)
			assert.NotNil(t, quotes)
			assert.Empty(t, quotes)
		})
	}
}

func TestGetCurrentPriceAuthFailurePropagates(t *testing.T) {
	svc := newTestService(&mockClient{
		ensureSessionFunc: func(ctx context.Context, mfaCode string) error {
			return robinhood.AuthRequired("authentication required")
		},
	})

	_, err := svc.GetCurrentPrice(context.Background(), []string{"AAPL"})
	require.Error(t, err)
	assert.Equal(t, robinhood.KindAuthRequired, robinhood.Classify(err))
}

func TestGetCurrentPriceUpstreamFailureWrapped(t *testing.T) {
	svc := newTestService(&mockClient{
		getQuotesFunc: func(ctx context.Context, symbols []string) (any, error) {
			return nil, errors.New("boom")
		},
	})

	_, err := svc.GetCurrentPrice(context.Background(), []string{"AAPL"})
	require.Error(t, err)
	assert.Equal(t, robinhood.KindAPIError, robinhood.Classify(err))
}

func TestGetPriceHistory(t *testing.T) {
	svc := newTestService(&mockClient{
		getHistoricalsFunc: func(ctx context.Context, symbol, interval, span, bounds string) ([]map[string]any, error) {
			assert.Equal(t, "AAPL", symbol)
			assert.Equal(t, "hour", interval)
			return []map[string]any{{
				"begins_at":   "2024-01-15T14:30:00Z",
				"open_price":  "150.00",
				"high_price":  "151.00",
				"low_price":   "149.50",
				"close_price": "150.75",
				"volume":      "1200000",
			}}, nil
		},
	})

	candles, err := svc.GetPriceHistory(context.Background(), "AAPL", "hour", "week", "regular")
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, 150.75, candles[0].Close)
	assert.Equal(t, int64(1200000), candles[0].Volume)
}

func TestGetPriceHistoryValidatesEnums(t *testing.T) {
	svc := newTestService(&mockClient{
		ensureSessionFunc: func(ctx context.Context, mfaCode string) error {
			t.Fatal("enum validation must fail before any session work")
			return nil
		},
	})

	tests := []struct {
		name                          string
		interval, span, bounds, wants string
	}{
		{"bad interval", "2minute", "week", "regular", "invalid interval"},
		{"bad span", "hour", "decade", "regular", "invalid span"},
		{"bad bounds", "hour", "week", "overnight", "invalid bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetPriceHistory(context.Background(), "AAPL", tt.interval, tt.span, tt.bounds)
			require.Error(t, err)
			assert.Equal(t, robinhood.KindInvalidArgument, robinhood.Classify(err))
			assert.Contains(t, err.Error(), tt.wants)
		})
	}
}

func TestGetPriceHistoryErrorNamesAllowedValues(t *testing.T) {
	svc := newTestService(&mockClient{})
	_, err := svc.GetPriceHistory(context.Background(), "AAPL", "2minute", "week", "regular")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5minute, 10minute, hour, day, week")
}

func TestGetPriceHistoryRequiresSymbol(t *testing.T) {
	svc := newTestService(&mockClient{})
	_, err := svc.GetPriceHistory(context.Background(), "", "hour", "week", "regular")
	require.Error(t, err)
	assert.Equal(t, robinhood.KindInvalidArgument, robinhood.Classify(err))
}
