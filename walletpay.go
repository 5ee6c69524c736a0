package walletpay

import "github.com/goliatone/go-walletpay/core"

type Config = core.Config

type SessionConfig = core.SessionConfig

type Option = core.Option

type Coordinator = core.Coordinator

type Pending[T any] = core.Pending[T]

type Presenter = core.Presenter
type SheetObserver = core.SheetObserver
type SheetEvent = core.SheetEvent
type AttemptLedger = core.AttemptLedger
type MetricsRecorder = core.MetricsRecorder

type SheetRequest = core.SheetRequest
type LineItem = core.LineItem
type ShippingMethod = core.ShippingMethod
type PostalAddress = core.PostalAddress
type SummaryUpdate = core.SummaryUpdate
type SummaryResult = core.SummaryResult
type PaymentMethod = core.PaymentMethod
type NativePaymentMethod = core.NativePaymentMethod
type ConfirmResult = core.ConfirmResult
type Outcome = core.Outcome
type SessionState = core.SessionState

type AuthorizationAttempt = core.AuthorizationAttempt
type AttemptFilter = core.AttemptFilter
type AttemptPage = core.AttemptPage

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver
	WithPresenter       = core.WithPresenter
	WithObserver        = core.WithObserver
	WithAttemptLedger   = core.WithAttemptLedger
	WithClock           = core.WithClock
	WithIDGenerator     = core.WithIDGenerator
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewCoordinator(cfg Config, opts ...Option) (*Coordinator, error) {
	return core.NewCoordinator(cfg, opts...)
}
