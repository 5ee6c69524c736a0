package walletpay

import (
	"fmt"

	walletcommand "github.com/goliatone/go-walletpay/command"
	"github.com/goliatone/go-walletpay/core"
	walletquery "github.com/goliatone/go-walletpay/query"
)

// CommandQueryService is the surface the facade composes handlers over.
// The coordinator satisfies it directly.
type CommandQueryService interface {
	walletcommand.MutatingService
	walletquery.SupportReader
}

type Commands struct {
	StartAuthorization *walletcommand.StartAuthorizationCommand
	UpdateSummary      *walletcommand.UpdateSummaryCommand
	ConfirmPayment     *walletcommand.ConfirmPaymentCommand
	AbandonStale       *walletcommand.AbandonStaleCommand
}

type Queries struct {
	CheckSupport    *walletquery.CheckSupportQuery
	GetSessionState *walletquery.GetSessionStateQuery
	GetAttempt      *walletquery.GetAttemptQuery
	ListAttempts    *walletquery.ListAttemptsQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	attemptReader walletquery.AttemptReader
}

// WithAttemptReader overrides where attempt queries read from, for callers
// that serve history out of a durable store instead of the coordinator's
// own ledger.
func WithAttemptReader(reader walletquery.AttemptReader) FacadeOption {
	return func(options *facadeOptions) {
		options.attemptReader = reader
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("walletpay: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	reader := cfg.attemptReader
	if reader == nil {
		reader = resolveAttemptReader(service)
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		StartAuthorization: walletcommand.NewStartAuthorizationCommand(service),
		UpdateSummary:      walletcommand.NewUpdateSummaryCommand(service),
		ConfirmPayment:     walletcommand.NewConfirmPaymentCommand(service),
		AbandonStale:       walletcommand.NewAbandonStaleCommand(service),
	}
	facade.queries = Queries{
		CheckSupport:    walletquery.NewCheckSupportQuery(service),
		GetSessionState: walletquery.NewGetSessionStateQuery(service),
		GetAttempt:      walletquery.NewGetAttemptQuery(reader),
		ListAttempts:    walletquery.NewListAttemptsQuery(reader),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

func resolveAttemptReader(service CommandQueryService) walletquery.AttemptReader {
	if service == nil {
		return nil
	}
	if reader, ok := service.(walletquery.AttemptReader); ok {
		return reader
	}
	provider, ok := service.(interface {
		Ledger() core.AttemptLedger
	})
	if !ok {
		return nil
	}
	ledger := provider.Ledger()
	if ledger == nil {
		return nil
	}
	return ledger
}

var _ CommandQueryService = (*core.Coordinator)(nil)
