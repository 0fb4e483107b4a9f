package app

import (
	"github.com/mark3labs/mcp-go/mcp"

	"robinhood-mcp/internal/services/market"
)

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the server version and build information"),
	)
}

func createCurrentPriceTool() mcp.Tool {
	return mcp.NewTool("robinhood.market.current_price",
		mcp.WithDescription("Get current quotes for one or more stock symbols, including last trade price, bid/ask, and previous close"),
		mcp.WithArray("symbols",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Stock ticker symbols, e.g. [\"AAPL\", \"MSFT\"]"),
		),
	)
}

func createQuoteTool() mcp.Tool {
	return mcp.NewTool("robinhood.market.quote",
		mcp.WithDescription("Get current quotes for one or more stock symbols (alias of robinhood.market.current_price)"),
		mcp.WithArray("symbols",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Stock ticker symbols, e.g. [\"AAPL\", \"MSFT\"]"),
		),
	)
}

func createPriceHistoryTool() mcp.Tool {
	return mcp.NewTool("robinhood.market.price_history",
		mcp.WithDescription("Get historical OHLCV candles for a stock symbol"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker symbol, e.g. AAPL"),
		),
		mcp.WithString("interval",
			mcp.Description("Candle interval"),
			mcp.Enum(market.ValidIntervals...),
			mcp.DefaultString("hour"),
		),
		mcp.WithString("span",
			mcp.Description("How far back the history reaches"),
			mcp.Enum(market.ValidSpans...),
			mcp.DefaultString("week"),
		),
		mcp.WithString("bounds",
			mcp.Description("Which trading hours to include"),
			mcp.Enum(market.ValidBounds...),
			mcp.DefaultString("regular"),
		),
	)
}

func createOptionsChainTool() mcp.Tool {
	return mcp.NewTool("robinhood.options.chain",
		mcp.WithDescription("Get the option chain for a stock symbol, optionally filtered by expiration date, contract type, and strike price"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Underlying stock ticker symbol, e.g. AAPL"),
		),
		mcp.WithString("expiration_date",
			mcp.Description("Expiration date in YYYY-MM-DD form; defaults to the nearest available expiration"),
		),
		mcp.WithString("option_type",
			mcp.Description("Restrict results to calls or puts"),
			mcp.Enum("call", "put"),
		),
		mcp.WithString("strike_price",
			mcp.Description("Restrict results to a single strike price, e.g. \"150\""),
		),
	)
}

func createPortfolioSummaryTool() mcp.Tool {
	return mcp.NewTool("robinhood.portfolio.summary",
		mcp.WithDescription("Get account equity, cash, and buying power for the authenticated account"),
	)
}

func createPositionsTool() mcp.Tool {
	return mcp.NewTool("robinhood.portfolio.positions",
		mcp.WithDescription("Get open stock positions for the authenticated account"),
		mcp.WithArray("symbols",
			mcp.WithStringItems(),
			mcp.Description("Optional ticker symbols to filter by; all open positions are returned when omitted"),
		),
	)
}

func createWatchlistsTool() mcp.Tool {
	return mcp.NewTool("robinhood.watchlists.list",
		mcp.WithDescription("List the watchlists on the authenticated account"),
	)
}

func createNewsTool() mcp.Tool {
	return mcp.NewTool("robinhood.news.latest",
		mcp.WithDescription("Get recent news stories for a stock symbol, or top market news when no symbol is given"),
		mcp.WithString("symbol",
			mcp.Description("Optional stock ticker symbol; top market news is returned when omitted"),
		),
	)
}

func createFundamentalsTool() mcp.Tool {
	return mcp.NewTool("robinhood.fundamentals.get",
		mcp.WithDescription("Get fundamental metrics for a stock symbol: market cap, P/E ratio, dividend yield, and 52-week range"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker symbol, e.g. AAPL"),
		),
	)
}

func createEarningsTool() mcp.Tool {
	return mcp.NewTool("robinhood.earnings.get",
		mcp.WithDescription("Get quarterly earnings reports for a stock symbol, including EPS estimates and actuals"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker symbol, e.g. AAPL"),
		),
	)
}

func createAuthStatusTool() mcp.Tool {
	return mcp.NewTool("robinhood.auth.status",
		mcp.WithDescription("Check whether the server holds a valid Robinhood session, attempting login with configured credentials if needed"),
		mcp.WithString("mfa_code",
			mcp.Description("Optional one-time MFA code to use if a login attempt is needed"),
		),
	)
}
