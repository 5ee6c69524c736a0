// Package core contains the wallet payment-sheet domain contracts and the
// authorization coordinator. Adapters (command/query envelopes, SQL ledger,
// job runners) must depend on this package; core must not depend on any
// presenter- or transport-specific adapter.
package core
