package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Coordinator bridges the presenter's delegate-driven sheet events to a
// sequential request/response caller API. It owns at most one
// authorizationSession at a time; every session mutation happens under its
// mutex, the Go stand-in for the single logical execution context the sheet
// assumes. Continuations and pendings are always settled outside the lock
// because the sheet may re-enter HandleSheetEvent synchronously from a
// resumed continuation.
type Coordinator struct {
	mu      sync.Mutex
	session *authorizationSession

	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorMapper     ErrorMapper
	presenter       Presenter
	observers       *ObserverRegistry
	ledger          AttemptLedger
	now             func() time.Time
	newID           func() string
}

func NewCoordinator(cfg Config, options ...Option) (*Coordinator, error) {
	builder := defaultCoordinatorBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("walletpay", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("walletpay"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.observers == nil {
		builder.observers = NewObserverRegistry()
	}
	if builder.now == nil {
		builder.now = func() time.Time { return time.Now().UTC() }
	}
	if builder.newID == nil {
		builder.newID = uuid.NewString
	}
	if builder.attemptLedger == nil {
		builder.attemptLedger = NewMemoryAttemptLedger()
	}
	if builder.presenter == nil {
		return nil, internalError("core: presenter is required")
	}

	loaded, err := builder.configProvider.Load(context.Background(), DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("core: load coordinator config: %w", err)
	}
	resolved, err := builder.optionsResolver.Resolve(DefaultConfig(), loaded, builder.runtimeConfig)
	if err != nil {
		return nil, err
	}

	return &Coordinator{
		config:          resolved,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorMapper:     builder.errorMapper,
		presenter:       builder.presenter,
		observers:       builder.observers,
		ledger:          builder.attemptLedger,
		now:             builder.now,
		newID:           builder.newID,
	}, nil
}

// Config returns the resolved coordinator configuration.
func (c *Coordinator) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.config
}

// Ledger returns the attempt ledger the coordinator records into.
func (c *Coordinator) Ledger() AttemptLedger {
	if c == nil {
		return nil
	}
	return c.ledger
}

// IsSupported is a stateless capability probe; it never touches the session.
func (c *Coordinator) IsSupported(ctx context.Context) bool {
	if c == nil || c.presenter == nil {
		return false
	}
	return c.presenter.Supported(ctx)
}

// State reports the current session state, StateIdle when none is active.
func (c *Coordinator) State() SessionState {
	if c == nil {
		return StateIdle
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return StateIdle
	}
	return c.session.state
}

// Start validates the request, presents the sheet, and returns the pending
// result that settles when the sheet reports a created payment method (or a
// terminal outcome first). A second Start while a session is active is
// rejected outright; silently replacing the prior continuations would leak
// an unresolved caller promise.
func (c *Coordinator) Start(ctx context.Context, req SheetRequest) (*Pending[PaymentMethod], error) {
	startedAt := c.now()
	if err := req.Validate(); err != nil {
		err = c.mapError(err)
		c.observeOperation(ctx, startedAt, "start", err, map[string]any{})
		return nil, err
	}

	sessionID := c.newID()
	attemptID := c.newID()

	c.mu.Lock()
	if c.session.active() {
		state := c.session.state
		c.mu.Unlock()
		err := c.mapError(sessionActiveError(fmt.Sprintf(
			"core: an authorization session is already active in state %q", state,
		)))
		c.observeOperation(ctx, startedAt, "start", err, map[string]any{"state": string(state)})
		return nil, err
	}
	session := newAuthorizationSession(sessionID, req, startedAt)
	session.attemptID = attemptID
	c.session = session
	pending := session.requestPending
	c.mu.Unlock()

	c.recordAttempt(ctx, AuthorizationAttempt{
		ID:         attemptID,
		MerchantID: c.config.MerchantID,
		Country:    req.Country,
		Currency:   req.Currency,
		LineItems:  cloneLineItems(req.LineItems),
		Status:     AttemptStatusStarted,
		CreatedAt:  startedAt,
	})

	if err := c.presenter.Present(ctx, req); err != nil {
		c.mu.Lock()
		if c.session == session {
			session.clear()
			c.session = nil
		}
		c.mu.Unlock()

		mapped := c.mapError(presentationError(err, "core: payment sheet presentation failed"))
		pending.Reject(mapped)
		c.completeAttempt(ctx, attemptID, AttemptStatusFailed, string(OutcomeFailure), err.Error())
		c.observeOperation(ctx, startedAt, "start", mapped, map[string]any{"session_id": sessionID})
		return nil, mapped
	}

	c.observeOperation(ctx, startedAt, "start", nil, map[string]any{
		"session_id": sessionID,
		"country":    req.Country,
		"currency":   req.Currency,
	})
	return pending, nil
}

// HandleSheetEvent is the single entry point for presenter delegate events.
func (c *Coordinator) HandleSheetEvent(ctx context.Context, event SheetEvent) error {
	if c == nil {
		return internalError("core: coordinator is nil")
	}
	startedAt := c.now()

	var err error
	var operation string
	switch typed := event.(type) {
	case ShippingMethodSelectedEvent:
		operation = "shipping_method_selected"
		err = c.handleShippingMethodSelected(ctx, typed)
	case ShippingContactSelectedEvent:
		operation = "shipping_contact_selected"
		err = c.handleShippingContactSelected(ctx, typed)
	case PaymentMethodCreatedEvent:
		operation = "payment_method_created"
		err = c.handlePaymentMethodCreated(ctx, typed)
	case SheetFinishedEvent:
		operation = "sheet_finished"
		err = c.finishSession(ctx, typed.Outcome)
	case nil:
		operation = "sheet_event"
		err = validationError("core: sheet event is required")
	default:
		operation = "sheet_event"
		err = internalError(fmt.Sprintf("core: unsupported sheet event %T", event))
	}

	if err != nil {
		err = c.mapError(err)
	}
	c.observeOperation(ctx, startedAt, operation, err, map[string]any{})
	return err
}

func (c *Coordinator) handleShippingMethodSelected(ctx context.Context, event ShippingMethodSelectedEvent) error {
	c.mu.Lock()
	session := c.session
	if !session.active() || session.state != StatePresenting {
		c.mu.Unlock()
		event.Continue.Discard()
		return notReadyError("core: no presenting session for shipping method event")
	}
	if session.pendingShippingMethod != nil {
		fault := internalError("core: shipping method continuation already pending; delegate event delivered twice")
		session.fault = fault
		c.mu.Unlock()
		event.Continue.Discard()
		return fault
	}
	session.pendingShippingMethod = event.Continue
	session.touch(c.now())
	c.mu.Unlock()

	if err := c.observers.NotifyShippingMethodSelected(ctx, event.Method); err != nil {
		c.logError(ctx, "shipping method observers failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (c *Coordinator) handleShippingContactSelected(ctx context.Context, event ShippingContactSelectedEvent) error {
	c.mu.Lock()
	session := c.session
	if !session.active() || session.state != StatePresenting {
		c.mu.Unlock()
		event.Continue.Discard()
		return notReadyError("core: no presenting session for shipping contact event")
	}
	if session.pendingShippingContact != nil {
		fault := internalError("core: shipping contact continuation already pending; delegate event delivered twice")
		session.fault = fault
		c.mu.Unlock()
		event.Continue.Discard()
		return fault
	}
	session.pendingShippingContact = event.Continue
	session.touch(c.now())
	c.mu.Unlock()

	if err := c.observers.NotifyShippingContactSelected(ctx, event.Contact); err != nil {
		c.logError(ctx, "shipping contact observers failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// UpdateSummary answers whichever shipping round trip is currently open.
// Both slots clear unconditionally: a single caller call resolves the
// pending round trip regardless of kind.
func (c *Coordinator) UpdateSummary(ctx context.Context, update SummaryUpdate) error {
	startedAt := c.now()

	c.mu.Lock()
	session := c.session
	if !session.active() {
		c.mu.Unlock()
		err := c.mapError(notReadyError("core: no pending shipping update"))
		c.observeOperation(ctx, startedAt, "update_summary", err, map[string]any{})
		return err
	}
	if fault := session.fault; fault != nil {
		session.fault = nil
		method, contact := session.takeShippingContinuations()
		c.mu.Unlock()
		method.Discard()
		contact.Discard()
		mapped := c.mapError(fault)
		c.observeOperation(ctx, startedAt, "update_summary", mapped, map[string]any{})
		return mapped
	}
	if !session.hasPendingShippingUpdate() {
		c.mu.Unlock()
		err := c.mapError(notReadyError("core: no pending shipping update"))
		c.observeOperation(ctx, startedAt, "update_summary", err, map[string]any{})
		return err
	}
	method, contact := session.takeShippingContinuations()
	session.touch(c.now())
	c.mu.Unlock()

	result := SummaryResult{
		LineItems:     cloneLineItems(update.LineItems),
		ContactErrors: cloneContactErrors(update.ContactErrors),
		// The sheet keeps its presented shipping methods on contact updates.
		ShippingMethods: nil,
	}
	var invokeErr error
	if method != nil {
		invokeErr = method.Invoke(result)
	}
	if contact != nil {
		if err := contact.Invoke(result); err != nil && invokeErr == nil {
			invokeErr = err
		}
	}
	if invokeErr != nil {
		mapped := c.mapError(invokeErr)
		c.observeOperation(ctx, startedAt, "update_summary", mapped, map[string]any{})
		return mapped
	}

	c.observeOperation(ctx, startedAt, "update_summary", nil, map[string]any{})
	return nil
}

func (c *Coordinator) handlePaymentMethodCreated(ctx context.Context, event PaymentMethodCreatedEvent) error {
	c.mu.Lock()
	session := c.session
	if !session.active() {
		c.mu.Unlock()
		event.Complete.Discard()
		return notReadyError("core: no active session for payment method event")
	}
	if session.state != StatePresenting {
		state := session.state
		c.mu.Unlock()
		event.Complete.Discard()
		return internalError(fmt.Sprintf(
			"core: payment method created while session is %q; reentrant authorization is not supported", state,
		))
	}

	method := mapNativePaymentMethod(event.Method)
	session.completion = event.Complete
	session.state = StateAwaitingSecret
	session.touch(c.now())
	pending := session.takeRequestPending()
	c.mu.Unlock()

	if pending != nil {
		pending.Resolve(method)
	}
	return nil
}

// Confirm relays the caller's backend-issued secret into the buffered
// completion continuation and returns the pending that settles on the
// sheet's terminal outcome. The returned pending resolves later than, and
// distinctly from, this call itself.
func (c *Coordinator) Confirm(ctx context.Context, secret string) (*Pending[ConfirmResult], error) {
	startedAt := c.now()
	if strings.TrimSpace(secret) == "" {
		err := c.mapError(validationError("core: authorization secret is required"))
		c.observeOperation(ctx, startedAt, "confirm", err, map[string]any{})
		return nil, err
	}

	c.mu.Lock()
	session := c.session
	if !session.active() || session.state != StateAwaitingSecret || session.completion == nil {
		state := StateIdle
		if session != nil {
			state = session.state
		}
		c.mu.Unlock()
		err := c.mapError(notReadyError(fmt.Sprintf(
			"core: not ready to confirm: no payment method awaiting a secret (state %q)", state,
		)))
		c.observeOperation(ctx, startedAt, "confirm", err, map[string]any{"state": string(state)})
		return nil, err
	}
	completion := session.takeCompletion()
	pending := NewPending[ConfirmResult]()
	session.confirmationPending = pending
	session.state = StateConfirming
	session.touch(c.now())
	c.mu.Unlock()

	if err := completion.Invoke(secret); err != nil {
		mapped := c.mapError(err)
		pending.Reject(mapped)
		c.observeOperation(ctx, startedAt, "confirm", mapped, map[string]any{})
		return nil, mapped
	}

	c.observeOperation(ctx, startedAt, "confirm", nil, map[string]any{})
	return pending, nil
}

// AbandonStale cancels the active session when it has been idle longer than
// maxIdle (falling back to session.stale_after_seconds when maxIdle is
// zero). It exists for scheduled reapers; the coordinator never sweeps on
// its own.
func (c *Coordinator) AbandonStale(ctx context.Context, maxIdle time.Duration) (bool, error) {
	if c == nil {
		return false, internalError("core: coordinator is nil")
	}
	if maxIdle <= 0 {
		maxIdle = time.Duration(c.config.Session.StaleAfterSeconds) * time.Second
	}
	if maxIdle <= 0 {
		return false, nil
	}

	c.mu.Lock()
	session := c.session
	if !session.active() || c.now().Sub(session.touchedAt) < maxIdle {
		c.mu.Unlock()
		return false, nil
	}
	c.mu.Unlock()

	err := c.finishSessionFor(ctx, session, Outcome{
		Status: OutcomeCanceled,
		Reason: fmt.Sprintf("session abandoned after %s of inactivity", maxIdle),
	})
	if err != nil {
		// The session can legitimately finish between the staleness check
		// and the sweep; that is not a reaper failure.
		if HasTextCode(err, WalletErrorNotReady) {
			return false, nil
		}
		return false, c.mapError(err)
	}
	return true, nil
}

func (c *Coordinator) mapError(err error) error {
	if err == nil {
		return nil
	}
	if c != nil && c.errorMapper != nil {
		if mapped := c.errorMapper(err); mapped != nil {
			return mapped
		}
	}
	return err
}

func (c *Coordinator) recordAttempt(ctx context.Context, attempt AuthorizationAttempt) {
	if c == nil || c.ledger == nil {
		return
	}
	if err := c.ledger.Record(ctx, attempt); err != nil {
		c.logError(ctx, "attempt ledger record failed", map[string]any{
			"attempt_id": attempt.ID,
			"error":      err.Error(),
		})
	}
}

func (c *Coordinator) completeAttempt(ctx context.Context, attemptID string, status AttemptStatus, outcome string, reason string) {
	if c == nil || c.ledger == nil || strings.TrimSpace(attemptID) == "" {
		return
	}
	if err := c.ledger.Complete(ctx, attemptID, status, outcome, reason, c.now()); err != nil {
		c.logError(ctx, "attempt ledger completion failed", map[string]any{
			"attempt_id": attemptID,
			"error":      err.Error(),
		})
	}
}
