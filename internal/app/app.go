// Package app wires configuration, the upstream client, the domain services,
// and the MCP server into one explicit context object shared by the command
// entry points.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/robinhood"
	"robinhood-mcp/internal/services/earnings"
	"robinhood-mcp/internal/services/fundamentals"
	"robinhood-mcp/internal/services/market"
	"robinhood-mcp/internal/services/news"
	"robinhood-mcp/internal/services/options"
	"robinhood-mcp/internal/services/portfolio"
	"robinhood-mcp/internal/services/watchlists"
)

// Options are startup overrides from CLI flags. Flags take priority over
// environment variables, which take priority over the config file.
type Options struct {
	ConfigPath  string
	Username    string
	Password    string
	SessionPath string
	AllowMFA    *bool
	LogLevel    string
}

// App holds all initialized services, the upstream client, and the MCP
// server.
type App struct {
	Config              *common.Config
	Logger              *common.Logger
	Client              *robinhood.Client
	MarketService       interfaces.MarketDataService
	OptionsService      interfaces.OptionsService
	PortfolioService    interfaces.PortfolioService
	WatchlistsService   interfaces.WatchlistsService
	NewsService         interfaces.NewsService
	FundamentalsService interfaces.FundamentalsService
	EarningsService     interfaces.EarningsService
	MCPServer           *server.MCPServer
}

// New initializes the client, services, and MCP server. It never contacts
// the upstream: authentication is lazy, so the server starts and lists its
// tools even without valid credentials.
func New(opts Options) (*App, error) {
	startupStart := time.Now()

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("RH_CONFIG")
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyOptions(config, opts)

	logger := common.NewLogger(config.Logging.Level)

	store := robinhood.NewSessionStore(config.Session.Path, logger)
	client := robinhood.NewClient(
		robinhood.Credentials{
			Username: config.Credentials.Username,
			Password: config.Credentials.Password,
			MFACode:  config.Credentials.MFACode,
			AllowMFA: config.Credentials.AllowMFA,
		},
		store,
		robinhood.WithBaseURL(config.Client.BaseURL),
		robinhood.WithRateLimit(config.Client.RateLimit),
		robinhood.WithTimeout(config.Client.GetTimeout()),
		robinhood.WithLogger(logger),
	)

	mcpServer := server.NewMCPServer(
		"robinhood-mcp",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:              config,
		Logger:              logger,
		Client:              client,
		MarketService:       market.NewService(client, logger),
		OptionsService:      options.NewService(client, logger),
		PortfolioService:    portfolio.NewService(client, logger),
		WatchlistsService:   watchlists.NewService(client, logger),
		NewsService:         news.NewService(client, logger),
		FundamentalsService: fundamentals.NewService(client, logger),
		EarningsService:     earnings.NewService(client, logger),
		MCPServer:           mcpServer,
	}

	a.registerTools()

	logger.Info().
		Dur("startup", time.Since(startupStart)).
		Bool("session_persistence", config.Session.Path != "").
		Msg("App initialized")

	return a, nil
}

// applyOptions applies CLI flag overrides on top of the loaded config.
func applyOptions(config *common.Config, opts Options) {
	if opts.Username != "" {
		config.Credentials.Username = opts.Username
	}
	if opts.Password != "" {
		config.Credentials.Password = opts.Password
	}
	if opts.SessionPath != "" {
		config.Session.Path = opts.SessionPath
	}
	if opts.AllowMFA != nil {
		config.Credentials.AllowMFA = *opts.AllowMFA
	}
	if opts.LogLevel != "" {
		config.Logging.Level = opts.LogLevel
	}
}

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer
	logger := a.Logger

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createCurrentPriceTool(), handleCurrentPrice(a.MarketService, logger))
	s.AddTool(createQuoteTool(), handleCurrentPrice(a.MarketService, logger))
	s.AddTool(createPriceHistoryTool(), handlePriceHistory(a.MarketService, logger))
	s.AddTool(createOptionsChainTool(), handleOptionsChain(a.OptionsService, logger))
	s.AddTool(createPortfolioSummaryTool(), handlePortfolioSummary(a.PortfolioService, logger))
	s.AddTool(createPositionsTool(), handlePositions(a.PortfolioService, logger))
	s.AddTool(createWatchlistsTool(), handleWatchlists(a.WatchlistsService, logger))
	s.AddTool(createNewsTool(), handleNews(a.NewsService, logger))
	s.AddTool(createFundamentalsTool(), handleFundamentals(a.FundamentalsService, logger))
	s.AddTool(createEarningsTool(), handleEarnings(a.EarningsService, logger))
	s.AddTool(createAuthStatusTool(), handleAuthStatus(a.Client, logger))
}
