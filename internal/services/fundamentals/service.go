// Package fundamentals provides the company fundamentals service.
package fundamentals

import (
	"context"
	"fmt"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/models"
	"robinhood-mcp/internal/robinhood"
)

// Service implements FundamentalsService.
type Service struct {
	client interfaces.RobinhoodClient
	logger *common.Logger
}

// NewService creates a new fundamentals service.
func NewService(client interfaces.RobinhoodClient, logger *common.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetFundamentals returns fundamentals for a symbol. The upstream returns
// either a list or a bare object; an empty list means an invalid symbol and
// degrades to a record with every field null rather than an error.
func (s *Service) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	if symbol == "" {
		return nil, robinhood.InvalidArgument("symbol is required")
	}

	if err := s.client.EnsureSession(ctx, ""); err != nil {
		return nil, err
	}

	raw, err := s.client.GetFundamentals(ctx, symbol)
	if err != nil {
		return nil, robinhood.APIError("fetch fundamentals", err)
	}

	var item map[string]any
	switch v := raw.(type) {
	case nil:
		// Empty payload, all fields stay null.
	case []any:
		if len(v) == 0 {
			break
		}
		item, _ = v[0].(map[string]any)
	case map[string]any:
		item = v
	default:
		return nil, robinhood.APIError("fetch fundamentals", fmt.Errorf("unexpected payload type %T", raw))
	}

	result := models.FundamentalsFromPayload(item)
	return &result, nil
}

var _ interfaces.FundamentalsService = (*Service)(nil)
