package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[StartAuthorizationMessage] = (*StartAuthorizationCommand)(nil)
	_ gocmd.Commander[UpdateSummaryMessage]      = (*UpdateSummaryCommand)(nil)
	_ gocmd.Commander[ConfirmPaymentMessage]     = (*ConfirmPaymentCommand)(nil)
	_ gocmd.Commander[AbandonStaleMessage]       = (*AbandonStaleCommand)(nil)
)
