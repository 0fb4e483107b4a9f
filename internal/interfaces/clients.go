// Package interfaces defines the contracts between the tool dispatch layer,
// the domain services, and the upstream API client.
package interfaces

import "context"

// RobinhoodClient is the upstream API surface the domain services consume.
// Business payloads are loosely typed; the models package owns all coercion.
type RobinhoodClient interface {
	// EnsureSession guarantees a valid authenticated session, performing
	// the login protocol if needed. mfaCode may be empty.
	EnsureSession(ctx context.Context, mfaCode string) error

	// Logout best-effort invalidates the session; failures are swallowed.
	Logout(ctx context.Context)

	// GetQuotes returns either a bare quote object (single symbol) or a
	// list of quote objects (multiple symbols).
	GetQuotes(ctx context.Context, symbols []string) (any, error)

	GetHistoricals(ctx context.Context, symbol, interval, span, bounds string) ([]map[string]any, error)

	GetOptionChains(ctx context.Context, symbol string) (map[string]any, error)
	FindOptionsByExpiration(ctx context.Context, symbol, expirationDate string) ([]map[string]any, error)

	GetAccountProfile(ctx context.Context) (map[string]any, error)
	GetOpenPositions(ctx context.Context) ([]map[string]any, error)
	GetInstrumentByURL(ctx context.Context, instrumentURL string) (map[string]any, error)

	GetAllWatchlists(ctx context.Context) ([]map[string]any, error)

	GetNews(ctx context.Context, symbol string) ([]map[string]any, error)
	GetTopNews(ctx context.Context) ([]map[string]any, error)

	// GetFundamentals returns a list or a bare object depending on the
	// upstream's mood; the service accepts both.
	GetFundamentals(ctx context.Context, symbol string) (any, error)

	// GetEarnings returns one entry per fiscal quarter; entries may be nil.
	GetEarnings(ctx context.Context, symbol string) ([]any, error)
}
