// Package earnings provides the per-quarter earnings service.
package earnings

import (
	"context"
	"fmt"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/models"
	"robinhood-mcp/internal/robinhood"
)

// Service implements EarningsService.
type Service struct {
	client interfaces.RobinhoodClient
	logger *common.Logger
}

// NewService creates a new earnings service.
func NewService(client interfaces.RobinhoodClient, logger *common.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetEarnings returns earnings data, one record per fiscal quarter. Null
// entries in the upstream list are skipped silently.
func (s *Service) GetEarnings(ctx context.Context, symbol string) ([]models.Earnings, error) {
	if symbol == "" {
		return nil, robinhood.InvalidArgument("symbol is required")
	}

	if err := s.client.EnsureSession(ctx, ""); err != nil {
		return nil, err
	}

	data, err := s.client.GetEarnings(ctx, symbol)
	if err != nil {
		return nil, robinhood.APIError("fetch earnings", err)
	}

	results := make([]models.Earnings, 0, len(data))
	for _, entry := range data {
		if entry == nil {
			continue
		}
		item, ok := entry.(map[string]any)
		if !ok {
			return nil, robinhood.APIError("fetch earnings", fmt.Errorf("unexpected entry type %T", entry))
		}
		results = append(results, models.EarningsFromPayload(item))
	}

	return results, nil
}

var _ interfaces.EarningsService = (*Service)(nil)
