package sqlstore

import "github.com/goliatone/go-walletpay/core"

var (
	_ core.AttemptLedger = (*AttemptStore)(nil)
	_ core.AttemptLedger = (*CachedAttemptStore)(nil)
)
