package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"robinhood-mcp/internal/app"
	"robinhood-mcp/internal/common"
)

var opts app.Options

var rootCmd = &cobra.Command{
	Use:     "robinhood-mcp",
	Short:   "MCP server exposing Robinhood market data and account tools",
	Version: common.GetFullVersion(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("allow-mfa") {
			allowMFA, _ := cmd.Flags().GetBool("allow-mfa")
			opts.AllowMFA = &allowMFA
		}

		a, err := app.New(opts)
		if err != nil {
			return fmt.Errorf("initialization failed: %w", err)
		}

		a.Logger.Info().Str("version", common.GetVersion()).Msg("Serving MCP over stdio")
		if err := server.ServeStdio(a.MCPServer); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	// .env is optional; real env vars still win over config file values.
	_ = godotenv.Load()

	rootCmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to TOML config file")
	rootCmd.Flags().StringVar(&opts.Username, "username", "", "Robinhood username (overrides RH_USERNAME)")
	rootCmd.Flags().StringVar(&opts.Password, "password", "", "Robinhood password (overrides RH_PASSWORD)")
	rootCmd.Flags().StringVar(&opts.SessionPath, "session-path", "", "path for the persisted session artifact")
	rootCmd.Flags().Bool("allow-mfa", false, "allow sending an MFA code during login")
	rootCmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
