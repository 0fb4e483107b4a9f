package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/robinhood"
)

// jsonResult marshals v into a single text content block.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		payload, _ := json.Marshal(map[string]string{
			"error": fmt.Sprintf("%s: failed to serialize result: %v", robinhood.KindInternalError, err),
		})
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(string(payload))},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
	}
}

// errorResult renders err as an error payload with a classified kind prefix.
// The payload shape is the same for every tool so callers only need one
// error parser.
func errorResult(logger *common.Logger, tool string, err error) *mcp.CallToolResult {
	kind := robinhood.Classify(err)
	logger.Warn().Str("tool", tool).Str("kind", string(kind)).Err(err).Msg("Tool call failed")
	payload, _ := json.Marshal(map[string]string{
		"error": fmt.Sprintf("%s: %s", kind, err.Error()),
	})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(payload))},
		IsError: true,
	}
}

// normalizeSymbols upper-cases and trims ticker symbols, dropping blanks.
// The upstream API matches symbols case-sensitively.
func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// handleGetVersion returns version and build information as plain text.
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		info := fmt.Sprintf("robinhood-mcp %s (build: %s, commit: %s)",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(info)},
		}, nil
	}
}

func handleCurrentPrice(svc interfaces.MarketDataService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbols := normalizeSymbols(request.GetStringSlice("symbols", nil))
		quotes, err := svc.GetCurrentPrice(ctx, symbols)
		if err != nil {
			return errorResult(logger, request.Params.Name, err), nil
		}
		return jsonResult(quotes), nil
	}
}

func handlePriceHistory(svc interfaces.MarketDataService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol := normalizeSymbol(request.GetString("symbol", ""))
		interval := request.GetString("interval", "hour")
		span := request.GetString("span", "week")
		bounds := request.GetString("bounds", "regular")
		candles, err := svc.GetPriceHistory(ctx, symbol, interval, span, bounds)
		if err != nil {
			return errorResult(logger, request.Params.Name, err), nil
		}
		return jsonResult(candles), nil
	}
}

func handleOptionsChain(svc interfaces.OptionsService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol := normalizeSymbol(request.GetString("symbol", ""))
		expirationDate := request.GetString("expiration_date", "")
		optionType := request.GetString("option_type", "")
		strikePrice := request.GetString("strike_price", "")
		contracts, err := svc.GetOptionsChain(ctx, symbol, expirationDate, optionType, strikePrice)
		if err != nil {
			return errorResult(logger, request.Params.Name, err), nil
		}
		return jsonResult(contracts), nil
	}
}

func handlePortfolioSummary(svc interfaces.PortfolioService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := svc.GetPortfolioSummary(ctx)
		if err != nil {
			return errorResult(logger, request.Params.Name, err), nil
		}
		return jsonResult(summary), nil
	}
}

func handlePositions(svc interfaces.PortfolioService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbols := normalizeSymbols(request.GetStringSlice("symbols", nil))
		positions, err := svc.GetPositions(ctx, symbols)
		if err != nil {
			return errorResult(logger, request.Params.Name, err), nil
		}
		return jsonResult(positions), nil
	}
}

func handleWatchlists(svc interfaces.WatchlistsService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lists, err := svc.GetWatchlists(ctx)
		if err != nil {
			return errorResult(logger, request.Params.Name, err), nil
		}
		return jsonResult(lists), nil
	}
}

func handleNews(svc interfaces.NewsService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol := normalizeSymbol(request.GetString("symbol", ""))
		items, err := svc.GetNews(ctx, symbol)
		if err != nil {
			return errorResult(logger, request.Params.Name, err), nil
		}
		return jsonResult(items), nil
	}
}

func handleFundamentals(svc interfaces.FundamentalsService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol := normalizeSymbol(request.GetString("symbol", ""))
		record, err := svc.GetFundamentals(ctx, symbol)
		if err != nil {
			return errorResult(logger, request.Params.Name, err), nil
		}
		return jsonResult(record), nil
	}
}

func handleEarnings(svc interfaces.EarningsService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol := normalizeSymbol(request.GetString("symbol", ""))
		reports, err := svc.GetEarnings(ctx, symbol)
		if err != nil {
			return errorResult(logger, request.Params.Name, err), nil
		}
		return jsonResult(reports), nil
	}
}

// handleAuthStatus reports session validity. It never produces a top-level
// error result: an unauthenticated state is a normal answer, not a failure.
func handleAuthStatus(client interfaces.RobinhoodClient, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mfaCode := request.GetString("mfa_code", "")
		if err := client.EnsureSession(ctx, mfaCode); err != nil {
			logger.Debug().Err(err).Msg("Auth status check failed")
			message := err.Error()
			if robinhood.Classify(err) == robinhood.KindAuthRequired {
				message = "Authentication required"
			}
			return jsonResult(map[string]any{
				"authenticated": false,
				"error":         message,
			}), nil
		}
		return jsonResult(map[string]any{"authenticated": true}), nil
	}
}
