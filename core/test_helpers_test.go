package core

import (
	"context"
	"sync"
	"testing"
	"time"
)

type stubPresenter struct {
	mu         sync.Mutex
	supported  bool
	presentErr error
	presented  []SheetRequest
	onPresent  func(ctx context.Context, req SheetRequest) error
}

func newStubPresenter() *stubPresenter {
	return &stubPresenter{supported: true}
}

func (p *stubPresenter) Supported(context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.supported
}

func (p *stubPresenter) Present(ctx context.Context, req SheetRequest) error {
	p.mu.Lock()
	p.presented = append(p.presented, req)
	onPresent := p.onPresent
	err := p.presentErr
	p.mu.Unlock()
	if onPresent != nil {
		return onPresent(ctx, req)
	}
	return err
}

func (p *stubPresenter) setPresentErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presentErr = err
}

func (p *stubPresenter) presentedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.presented)
}

type recordingObserver struct {
	mu       sync.Mutex
	name     string
	methods  []ShippingMethod
	contacts []PostalAddress
	fail     error
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) ShippingMethodSelected(_ context.Context, method ShippingMethod) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.methods = append(o.methods, method)
	return o.fail
}

func (o *recordingObserver) ShippingContactSelected(_ context.Context, contact PostalAddress) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.contacts = append(o.contacts, contact)
	return o.fail
}

func (o *recordingObserver) methodCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.methods)
}

func (o *recordingObserver) contactCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.contacts)
}

func validSheetRequest() SheetRequest {
	return SheetRequest{
		Country:  "US",
		Currency: "usd",
		LineItems: []LineItem{
			{Label: "Total", Amount: "10.00"},
		},
	}
}

func newTestCoordinator(t *testing.T, options ...Option) (*Coordinator, *stubPresenter) {
	t.Helper()
	presenter := newStubPresenter()
	opts := append([]Option{WithPresenter(presenter)}, options...)
	coordinator, err := NewCoordinator(Config{MerchantID: "merchant.test"}, opts...)
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	return coordinator, presenter
}

func waitFor[T any](t *testing.T, pending *Pending[T]) (T, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return pending.Wait(ctx)
}
