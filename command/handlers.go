package command

import (
	"context"
	"time"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-walletpay/core"
)

// MutatingService is the coordinator surface the command handlers drive.
type MutatingService interface {
	Start(ctx context.Context, req core.SheetRequest) (*core.Pending[core.PaymentMethod], error)
	UpdateSummary(ctx context.Context, update core.SummaryUpdate) error
	Confirm(ctx context.Context, secret string) (*core.Pending[core.ConfirmResult], error)
	AbandonStale(ctx context.Context, maxIdle time.Duration) (bool, error)
}

type StartAuthorizationCommand struct {
	service MutatingService
}

func NewStartAuthorizationCommand(service MutatingService) *StartAuthorizationCommand {
	return &StartAuthorizationCommand{service: service}
}

// Execute presents the sheet and stores the pending payment-method handle.
// The pending settles out of band, when the sheet reports a created payment
// method or a terminal outcome.
func (c *StartAuthorizationCommand) Execute(ctx context.Context, msg StartAuthorizationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: authorization service is required")
	}
	pending, err := c.service.Start(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, pending)
	return nil
}

type UpdateSummaryCommand struct {
	service MutatingService
}

func NewUpdateSummaryCommand(service MutatingService) *UpdateSummaryCommand {
	return &UpdateSummaryCommand{service: service}
}

func (c *UpdateSummaryCommand) Execute(ctx context.Context, msg UpdateSummaryMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: summary service is required")
	}
	return c.service.UpdateSummary(ctx, msg.Update)
}

type ConfirmPaymentCommand struct {
	service MutatingService
}

func NewConfirmPaymentCommand(service MutatingService) *ConfirmPaymentCommand {
	return &ConfirmPaymentCommand{service: service}
}

func (c *ConfirmPaymentCommand) Execute(ctx context.Context, msg ConfirmPaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: confirmation service is required")
	}
	pending, err := c.service.Confirm(ctx, msg.Secret)
	if err != nil {
		return err
	}
	storeResult(ctx, pending)
	return nil
}

type AbandonStaleCommand struct {
	service MutatingService
}

func NewAbandonStaleCommand(service MutatingService) *AbandonStaleCommand {
	return &AbandonStaleCommand{service: service}
}

func (c *AbandonStaleCommand) Execute(ctx context.Context, msg AbandonStaleMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	swept, err := c.service.AbandonStale(ctx, msg.MaxIdle)
	if err != nil {
		return err
	}
	storeResult(ctx, swept)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
