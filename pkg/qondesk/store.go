package qondesk

import "context"

// OptionStore is the host-provided key-value configuration store.
// The helpdesk application owns the actual persistence; this module only
// reads and writes namespaced option keys through it.
// All methods use plain strings so any backend (SQL options table, Redis,
// document store) can implement it without extra marshaling hooks.
type OptionStore interface {
	// Get retrieves the value for key, returning def when the key is absent.
	// Absence is not an error.
	Get(ctx context.Context, key, def string) (string, error)

	// Set stores the value for key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}
