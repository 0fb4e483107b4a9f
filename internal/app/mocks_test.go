package app

import (
	"context"

	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/models"
)

// Func-field mocks for the service interfaces. Only the methods a test sets
// are callable; the rest panic through the embedded nil interface.

type mockMarketService struct {
	interfaces.MarketDataService
	getCurrentPriceFunc func(ctx context.Context, symbols []string) ([]models.Quote, error)
	getPriceHistoryFunc func(ctx context.Context, symbol, interval, span, bounds string) ([]models.Candle, error)
}

func (m *mockMarketService) GetCurrentPrice(ctx context.Context, symbols []string) ([]models.Quote, error) {
	return m.getCurrentPriceFunc(ctx, symbols)
}

func (m *mockMarketService) GetPriceHistory(ctx context.Context, symbol, interval, span, bounds string) ([]models.Candle, error) {
	return m.getPriceHistoryFunc(ctx, symbol, interval, span, bounds)
}

type mockOptionsService struct {
	interfaces.OptionsService
	getOptionsChainFunc func(ctx context.Context, symbol, expirationDate, optionType, strikePrice string) ([]models.OptionContract, error)
}

func (m *mockOptionsService) GetOptionsChain(ctx context.Context, symbol, expirationDate, optionType, strikePrice string) ([]models.OptionContract, error) {
	return m.getOptionsChainFunc(ctx, symbol, expirationDate, optionType, strikePrice)
}

type mockPortfolioService struct {
	interfaces.PortfolioService
	getPortfolioSummaryFunc func(ctx context.Context) (*models.PortfolioSummary, error)
	getPositionsFunc        func(ctx context.Context, symbols []string) ([]models.Position, error)
}

func (m *mockPortfolioService) GetPortfolioSummary(ctx context.Context) (*models.PortfolioSummary, error) {
	return m.getPortfolioSummaryFunc(ctx)
}

func (m *mockPortfolioService) GetPositions(ctx context.Context, symbols []string) ([]models.Position, error) {
	return m.getPositionsFunc(ctx, symbols)
}

type mockNewsService struct {
	interfaces.NewsService
	getNewsFunc func(ctx context.Context, symbol string) ([]models.NewsItem, error)
}

func (m *mockNewsService) GetNews(ctx context.Context, symbol string) ([]models.NewsItem, error) {
	return m.getNewsFunc(ctx, symbol)
}

type mockRobinhoodClient struct {
	interfaces.RobinhoodClient
	ensureSessionFunc func(ctx context.Context, mfaCode string) error
}

func (m *mockRobinhoodClient) EnsureSession(ctx context.Context, mfaCode string) error {
	return m.ensureSessionFunc(ctx, mfaCode)
}
