package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-walletpay/core"
)

var (
	_ gocmd.Querier[CheckSupportMessage, bool]                    = (*CheckSupportQuery)(nil)
	_ gocmd.Querier[GetSessionStateMessage, core.SessionState]    = (*GetSessionStateQuery)(nil)
	_ gocmd.Querier[GetAttemptMessage, core.AuthorizationAttempt] = (*GetAttemptQuery)(nil)
	_ gocmd.Querier[ListAttemptsMessage, core.AttemptPage]        = (*ListAttemptsQuery)(nil)
)
