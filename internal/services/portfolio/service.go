// Package portfolio provides the account summary and positions services.
package portfolio

import (
	"context"
	"slices"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/models"
	"robinhood-mcp/internal/robinhood"
)

// UnknownSymbol is reported when a position's instrument lookup fails or
// returns nothing. The position is kept rather than dropped.
const UnknownSymbol = "UNKNOWN"

// Service implements PortfolioService.
type Service struct {
	client interfaces.RobinhoodClient
	logger *common.Logger
}

// NewService creates a new portfolio service.
func NewService(client interfaces.RobinhoodClient, logger *common.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetPortfolioSummary returns the account-level summary.
func (s *Service) GetPortfolioSummary(ctx context.Context) (*models.PortfolioSummary, error) {
	if err := s.client.EnsureSession(ctx, ""); err != nil {
		return nil, err
	}

	account, err := s.client.GetAccountProfile(ctx)
	if err != nil {
		return nil, robinhood.APIError("fetch portfolio", err)
	}

	summary, err := models.PortfolioSummaryFromPayload(account)
	if err != nil {
		return nil, robinhood.APIError("fetch portfolio", err)
	}

	return &summary, nil
}

// GetPositions returns open positions. Each position's symbol requires a
// secondary instrument lookup; a failed lookup yields the UNKNOWN sentinel
// instead of dropping the position or failing the request. The optional
// symbol filter is applied after that resolution.
func (s *Service) GetPositions(ctx context.Context, symbols []string) ([]models.Position, error) {
	if err := s.client.EnsureSession(ctx, ""); err != nil {
		return nil, err
	}

	data, err := s.client.GetOpenPositions(ctx)
	if err != nil {
		return nil, robinhood.APIError("fetch positions", err)
	}

	positions := make([]models.Position, 0, len(data))
	for _, item := range data {
		symbol := s.resolveSymbol(ctx, item)

		position, err := models.PositionFromPayload(item, symbol)
		if err != nil {
			return nil, robinhood.APIError("fetch positions", err)
		}

		if len(symbols) > 0 && !slices.Contains(symbols, symbol) {
			continue
		}
		positions = append(positions, position)
	}

	return positions, nil
}

func (s *Service) resolveSymbol(ctx context.Context, item map[string]any) string {
	instrumentURL, _ := item["instrument"].(string)
	if instrumentURL == "" {
		return UnknownSymbol
	}

	instrument, err := s.client.GetInstrumentByURL(ctx, instrumentURL)
	if err != nil {
		s.logger.Warn().Err(err).Str("instrument", instrumentURL).Msg("Instrument lookup failed")
		return UnknownSymbol
	}

	if symbol, ok := instrument["symbol"].(string); ok && symbol != "" {
		return symbol
	}
	return UnknownSymbol
}

var _ interfaces.PortfolioService = (*Service)(nil)
