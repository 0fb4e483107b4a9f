// Package options provides the options chain service.
package options

import (
	"context"
	"fmt"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/models"
	"robinhood-mcp/internal/robinhood"
)

// Service implements OptionsService.
type Service struct {
	client interfaces.RobinhoodClient
	logger *common.Logger
}

// NewService creates a new options service.
func NewService(client interfaces.RobinhoodClient, logger *common.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetOptionsChain returns the option contracts for a symbol. When no
// expiration date is supplied, the nearest available expiration is used; if
// the symbol has no expirations at all, the result is an empty list and no
// contract fetch is attempted. optionType and strikePrice filter the
// normalized contracts and may be empty.
func (s *Service) GetOptionsChain(ctx context.Context, symbol, expirationDate, optionType, strikePrice string) ([]models.OptionContract, error) {
	if symbol == "" {
		return nil, robinhood.InvalidArgument("symbol is required")
	}
	if optionType != "" && optionType != "call" && optionType != "put" {
		return nil, robinhood.InvalidArgument(fmt.Sprintf("invalid option_type %q: must be one of call, put", optionType))
	}
	var strike *float64
	if strikePrice != "" {
		strike = models.CoerceNumeric(strikePrice)
		if strike == nil {
			return nil, robinhood.InvalidArgument(fmt.Sprintf("invalid strike_price %q: must be numeric", strikePrice))
		}
	}

	if err := s.client.EnsureSession(ctx, ""); err != nil {
		return nil, err
	}

	expiration := expirationDate
	if expiration == "" {
		chains, err := s.client.GetOptionChains(ctx, symbol)
		if err != nil {
			return nil, robinhood.APIError("fetch options chain", err)
		}

		expirations, _ := chains["expiration_dates"].([]any)
		if len(expirations) == 0 {
			return []models.OptionContract{}, nil
		}
		// Upstream lists expiration dates in ascending order; the first is
		// the nearest.
		expiration, _ = expirations[0].(string)
	}

	data, err := s.client.FindOptionsByExpiration(ctx, symbol, expiration)
	if err != nil {
		return nil, robinhood.APIError("fetch options chain", err)
	}

	contracts := make([]models.OptionContract, 0, len(data))
	for _, item := range data {
		contract, err := models.OptionContractFromPayload(item, symbol, expiration)
		if err != nil {
			return nil, robinhood.APIError("fetch options chain", err)
		}
		if optionType != "" && contract.Type != optionType {
			continue
		}
		if strike != nil && contract.Strike != *strike {
			continue
		}
		contracts = append(contracts, contract)
	}

	return contracts, nil
}

var _ interfaces.OptionsService = (*Service)(nil)
