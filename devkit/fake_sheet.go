package devkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-walletpay/core"
)

// EventSink is the coordinator surface the fake sheet emits delegate events
// into.
type EventSink interface {
	HandleSheetEvent(ctx context.Context, event core.SheetEvent) error
}

// FakeSheet is a scripted stand-in for the platform payment sheet. Tests and
// local development harnesses present it like the real sheet, then drive the
// delegate events by hand: SelectShippingMethod, SelectShippingContact,
// CreatePaymentMethod, Finish. It records everything that crosses the
// boundary: presented requests, resumed summaries, and relayed secrets.
type FakeSheet struct {
	mu         sync.Mutex
	supported  bool
	presentErr error
	sink       EventSink

	requests  []core.SheetRequest
	summaries []core.SummaryResult
	secrets   []string
}

func NewFakeSheet() *FakeSheet {
	return &FakeSheet{supported: true}
}

// Attach points the sheet at the coordinator it emits delegate events into.
// The sink is attached after construction because the coordinator itself
// requires a presenter at build time.
func (s *FakeSheet) Attach(sink EventSink) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// SetSupported toggles the capability probe result.
func (s *FakeSheet) SetSupported(supported bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.supported = supported
	s.mu.Unlock()
}

// FailPresentation makes the next Present call fail with err.
func (s *FakeSheet) FailPresentation(err error) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.presentErr = err
	s.mu.Unlock()
}

func (s *FakeSheet) Supported(context.Context) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.supported
}

func (s *FakeSheet) Present(_ context.Context, req core.SheetRequest) error {
	if s == nil {
		return fmt.Errorf("devkit: fake sheet is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.presentErr
}

// SelectShippingMethod emits a shipping-method delegate event. The resumed
// summary is recorded and readable through Summaries.
func (s *FakeSheet) SelectShippingMethod(ctx context.Context, method core.ShippingMethod) error {
	sink, err := s.requireSink()
	if err != nil {
		return err
	}
	return sink.HandleSheetEvent(ctx, core.ShippingMethodSelectedEvent{
		Method:   method,
		Continue: core.NewSummaryContinuation(s.recordSummary),
	})
}

// SelectShippingContact emits a shipping-contact delegate event.
func (s *FakeSheet) SelectShippingContact(ctx context.Context, contact core.PostalAddress) error {
	sink, err := s.requireSink()
	if err != nil {
		return err
	}
	return sink.HandleSheetEvent(ctx, core.ShippingContactSelectedEvent{
		Contact:  contact,
		Continue: core.NewSummaryContinuation(s.recordSummary),
	})
}

// CreatePaymentMethod emits a payment-method-created delegate event. The
// secret relayed by the caller's confirm is recorded and readable through
// Secrets.
func (s *FakeSheet) CreatePaymentMethod(ctx context.Context, method core.NativePaymentMethod) error {
	sink, err := s.requireSink()
	if err != nil {
		return err
	}
	return sink.HandleSheetEvent(ctx, core.PaymentMethodCreatedEvent{
		Method:   method,
		Complete: core.NewCompletionContinuation(s.recordSecret),
	})
}

// Finish emits the terminal outcome event and dismisses the sheet.
func (s *FakeSheet) Finish(ctx context.Context, outcome core.Outcome) error {
	sink, err := s.requireSink()
	if err != nil {
		return err
	}
	return sink.HandleSheetEvent(ctx, core.SheetFinishedEvent{Outcome: outcome})
}

// Requests returns every request the sheet was presented with.
func (s *FakeSheet) Requests() []core.SheetRequest {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SheetRequest(nil), s.requests...)
}

// Summaries returns the summary results that resumed suspended round trips.
func (s *FakeSheet) Summaries() []core.SummaryResult {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SummaryResult(nil), s.summaries...)
}

// Secrets returns the authorization secrets relayed through confirm.
func (s *FakeSheet) Secrets() []string {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.secrets...)
}

func (s *FakeSheet) recordSummary(result core.SummaryResult) {
	s.mu.Lock()
	s.summaries = append(s.summaries, result)
	s.mu.Unlock()
}

func (s *FakeSheet) recordSecret(secret string) {
	s.mu.Lock()
	s.secrets = append(s.secrets, secret)
	s.mu.Unlock()
}

func (s *FakeSheet) requireSink() (EventSink, error) {
	if s == nil {
		return nil, fmt.Errorf("devkit: fake sheet is nil")
	}
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink == nil {
		return nil, fmt.Errorf("devkit: fake sheet has no event sink attached")
	}
	return sink, nil
}

var _ core.Presenter = (*FakeSheet)(nil)
