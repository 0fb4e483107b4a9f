package models

// Watchlist is a named, ordered list of symbols.
type Watchlist struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}
