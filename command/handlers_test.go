package command

import (
	"context"
	"errors"
	"testing"
	"time"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-walletpay/core"
)

type stubMutatingService struct {
	startFn         func(ctx context.Context, req core.SheetRequest) (*core.Pending[core.PaymentMethod], error)
	updateSummaryFn func(ctx context.Context, update core.SummaryUpdate) error
	confirmFn       func(ctx context.Context, secret string) (*core.Pending[core.ConfirmResult], error)
	abandonStaleFn  func(ctx context.Context, maxIdle time.Duration) (bool, error)
}

func (s stubMutatingService) Start(ctx context.Context, req core.SheetRequest) (*core.Pending[core.PaymentMethod], error) {
	if s.startFn == nil {
		return nil, errors.New("unexpected Start call")
	}
	return s.startFn(ctx, req)
}

func (s stubMutatingService) UpdateSummary(ctx context.Context, update core.SummaryUpdate) error {
	if s.updateSummaryFn == nil {
		return errors.New("unexpected UpdateSummary call")
	}
	return s.updateSummaryFn(ctx, update)
}

func (s stubMutatingService) Confirm(ctx context.Context, secret string) (*core.Pending[core.ConfirmResult], error) {
	if s.confirmFn == nil {
		return nil, errors.New("unexpected Confirm call")
	}
	return s.confirmFn(ctx, secret)
}

func (s stubMutatingService) AbandonStale(ctx context.Context, maxIdle time.Duration) (bool, error) {
	if s.abandonStaleFn == nil {
		return false, errors.New("unexpected AbandonStale call")
	}
	return s.abandonStaleFn(ctx, maxIdle)
}

func TestStartAuthorizationCommand_ExecuteDelegatesAndStoresPending(t *testing.T) {
	expected := core.NewPending[core.PaymentMethod]()
	called := false

	svc := stubMutatingService{
		startFn: func(_ context.Context, req core.SheetRequest) (*core.Pending[core.PaymentMethod], error) {
			called = true
			if req.Country != "US" {
				t.Fatalf("expected country US, got %q", req.Country)
			}
			return expected, nil
		},
	}

	cmd := NewStartAuthorizationCommand(svc)
	collector := gocmd.NewResult[*core.Pending[core.PaymentMethod]]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, StartAuthorizationMessage{Request: core.SheetRequest{
		Country:   "US",
		Currency:  "usd",
		LineItems: []core.LineItem{{Label: "Total", Amount: "10.00"}},
	}})
	if err != nil {
		t.Fatalf("execute start: %v", err)
	}
	if !called {
		t.Fatalf("expected start invocation")
	}
	pending, ok := collector.Load()
	if !ok {
		t.Fatalf("expected pending to be stored")
	}
	if pending != expected {
		t.Fatalf("expected the service's pending handle to be stored")
	}
}

func TestStartAuthorizationCommand_ErrorsPassThrough(t *testing.T) {
	cause := errors.New("presentation failed")
	svc := stubMutatingService{
		startFn: func(context.Context, core.SheetRequest) (*core.Pending[core.PaymentMethod], error) {
			return nil, cause
		},
	}
	cmd := NewStartAuthorizationCommand(svc)
	if err := cmd.Execute(context.Background(), StartAuthorizationMessage{}); !errors.Is(err, cause) {
		t.Fatalf("expected the service error verbatim, got %v", err)
	}
}

func TestUpdateSummaryCommand_Delegates(t *testing.T) {
	called := false
	svc := stubMutatingService{
		updateSummaryFn: func(_ context.Context, update core.SummaryUpdate) error {
			called = true
			if len(update.LineItems) != 1 || update.LineItems[0].Amount != "12.00" {
				t.Fatalf("unexpected update payload: %+v", update)
			}
			return nil
		},
	}
	cmd := NewUpdateSummaryCommand(svc)
	err := cmd.Execute(context.Background(), UpdateSummaryMessage{Update: core.SummaryUpdate{
		LineItems: []core.LineItem{{Label: "Total", Amount: "12.00"}},
	}})
	if err != nil {
		t.Fatalf("execute update summary: %v", err)
	}
	if !called {
		t.Fatalf("expected update summary invocation")
	}
}

func TestConfirmPaymentCommand_DelegatesAndStoresPending(t *testing.T) {
	expected := core.NewPending[core.ConfirmResult]()
	svc := stubMutatingService{
		confirmFn: func(_ context.Context, secret string) (*core.Pending[core.ConfirmResult], error) {
			if secret != "sk_test_secret" {
				t.Fatalf("unexpected secret %q", secret)
			}
			return expected, nil
		},
	}
	cmd := NewConfirmPaymentCommand(svc)
	collector := gocmd.NewResult[*core.Pending[core.ConfirmResult]]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, ConfirmPaymentMessage{Secret: "sk_test_secret"}); err != nil {
		t.Fatalf("execute confirm: %v", err)
	}
	pending, ok := collector.Load()
	if !ok || pending != expected {
		t.Fatalf("expected the confirmation pending to be stored")
	}
}

func TestAbandonStaleCommand_StoresSweepResult(t *testing.T) {
	svc := stubMutatingService{
		abandonStaleFn: func(_ context.Context, maxIdle time.Duration) (bool, error) {
			if maxIdle != 5*time.Minute {
				t.Fatalf("unexpected idle bound %v", maxIdle)
			}
			return true, nil
		},
	}
	cmd := NewAbandonStaleCommand(svc)
	collector := gocmd.NewResult[bool]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, AbandonStaleMessage{MaxIdle: 5 * time.Minute}); err != nil {
		t.Fatalf("execute abandon stale: %v", err)
	}
	swept, ok := collector.Load()
	if !ok || !swept {
		t.Fatalf("expected sweep result stored as true")
	}
}

func TestCommands_NilServiceReturnsDependencyError(t *testing.T) {
	var start *StartAuthorizationCommand
	if err := start.Execute(context.Background(), StartAuthorizationMessage{}); err == nil {
		t.Fatalf("expected dependency error from nil start command")
	}
	update := NewUpdateSummaryCommand(nil)
	if err := update.Execute(context.Background(), UpdateSummaryMessage{}); err == nil {
		t.Fatalf("expected dependency error from nil summary service")
	}
}

func TestMessageValidation(t *testing.T) {
	if err := (StartAuthorizationMessage{}).Validate(); err == nil {
		t.Fatalf("expected empty start message to fail")
	}
	valid := StartAuthorizationMessage{Request: core.SheetRequest{
		Country:   "US",
		Currency:  "usd",
		LineItems: []core.LineItem{{Label: "Total", Amount: "10.00"}},
	}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid start message, got %v", err)
	}

	if err := (ConfirmPaymentMessage{Secret: "  "}).Validate(); err == nil {
		t.Fatalf("expected blank secret to fail")
	}
	if err := (ConfirmPaymentMessage{Secret: "sk"}).Validate(); err != nil {
		t.Fatalf("expected valid confirm message, got %v", err)
	}

	if err := (AbandonStaleMessage{MaxIdle: -time.Second}).Validate(); err == nil {
		t.Fatalf("expected negative idle bound to fail")
	}
	if err := (UpdateSummaryMessage{Update: core.SummaryUpdate{
		LineItems: []core.LineItem{{Label: "", Amount: "1.00"}},
	}}).Validate(); err == nil {
		t.Fatalf("expected blank line item label to fail")
	}
}
