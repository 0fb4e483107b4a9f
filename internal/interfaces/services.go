package interfaces

import (
	"context"

	"robinhood-mcp/internal/models"
)

// MarketDataService provides quote and price history operations.
type MarketDataService interface {
	GetCurrentPrice(ctx context.Context, symbols []string) ([]models.Quote, error)
	GetPriceHistory(ctx context.Context, symbol, interval, span, bounds string) ([]models.Candle, error)
}

// OptionsService provides option chain operations.
type OptionsService interface {
	// GetOptionsChain returns contracts for the given expiration, or the
	// nearest available expiration when expirationDate is empty. optionType
	// ("call"/"put") and strikePrice filter the normalized result; both may
	// be empty.
	GetOptionsChain(ctx context.Context, symbol, expirationDate, optionType, strikePrice string) ([]models.OptionContract, error)
}

// PortfolioService provides account and position operations.
type PortfolioService interface {
	GetPortfolioSummary(ctx context.Context) (*models.PortfolioSummary, error)
	// GetPositions returns open positions, optionally filtered by symbols.
	GetPositions(ctx context.Context, symbols []string) ([]models.Position, error)
}

// WatchlistsService provides watchlist operations.
type WatchlistsService interface {
	GetWatchlists(ctx context.Context) ([]models.Watchlist, error)
}

// NewsService provides news operations.
type NewsService interface {
	// GetNews returns news for a symbol, or top market news when symbol is
	// empty.
	GetNews(ctx context.Context, symbol string) ([]models.NewsItem, error)
}

// FundamentalsService provides company fundamentals operations.
type FundamentalsService interface {
	GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)
}

// EarningsService provides per-quarter earnings operations.
type EarningsService interface {
	GetEarnings(ctx context.Context, symbol string) ([]models.Earnings, error)
}
