package walletpay

import (
	"context"
	"testing"
	"time"

	walletcommand "github.com/goliatone/go-walletpay/command"
	"github.com/goliatone/go-walletpay/core"
	walletquery "github.com/goliatone/go-walletpay/query"
)

func TestNewFacade_WiresCommandsAndQueries(t *testing.T) {
	svc := &stubFacadeService{}
	reader := &stubFacadeAttemptReader{}

	facade, err := NewFacade(svc, WithAttemptReader(reader))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	commands := facade.Commands()
	if commands.StartAuthorization == nil || commands.ConfirmPayment == nil || commands.AbandonStale == nil {
		t.Fatalf("expected command handlers to be wired")
	}
	queries := facade.Queries()
	if queries.CheckSupport == nil || queries.ListAttempts == nil {
		t.Fatalf("expected query handlers to be wired")
	}
}

func TestFacade_CommandAndQueryDelegation(t *testing.T) {
	svc := &stubFacadeService{}
	reader := &stubFacadeAttemptReader{}

	facade, err := NewFacade(svc, WithAttemptReader(reader))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	if err := facade.Commands().AbandonStale.Execute(context.Background(), walletcommand.AbandonStaleMessage{
		MaxIdle: 5 * time.Minute,
	}); err != nil {
		t.Fatalf("execute abandon stale command: %v", err)
	}
	if svc.lastMaxIdle != 5*time.Minute {
		t.Fatalf("unexpected abandon stale delegation payload: %s", svc.lastMaxIdle)
	}

	supported, err := facade.Queries().CheckSupport.Query(context.Background(), walletquery.CheckSupportMessage{})
	if err != nil {
		t.Fatalf("query check support: %v", err)
	}
	if !supported {
		t.Fatalf("expected support probe to delegate")
	}

	page, err := facade.Queries().ListAttempts.Query(context.Background(), walletquery.ListAttemptsMessage{
		Filter: core.AttemptFilter{MerchantID: "merchant.test", Page: 1, PerPage: 20},
	})
	if err != nil {
		t.Fatalf("query list attempts: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("unexpected attempt page result: %#v", page)
	}
}

func TestNewFacade_RequiresService(t *testing.T) {
	facade, err := NewFacade(nil)
	if err == nil {
		t.Fatalf("expected nil service error")
	}
	if facade != nil {
		t.Fatalf("expected nil facade on error")
	}
}

func TestNewFacade_ResolvesReaderFromLedger(t *testing.T) {
	svc := &stubFacadeService{ledger: core.NewMemoryAttemptLedger()}
	if err := svc.ledger.Record(context.Background(), core.AuthorizationAttempt{
		ID:         "att_1",
		MerchantID: "merchant.test",
		Status:     core.AttemptStatusStarted,
	}); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	facade, err := NewFacade(svc)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	attempt, err := facade.Queries().GetAttempt.Query(context.Background(), walletquery.GetAttemptMessage{
		AttemptID: "att_1",
	})
	if err != nil {
		t.Fatalf("query attempt from ledger fallback: %v", err)
	}
	if attempt.MerchantID != "merchant.test" {
		t.Fatalf("unexpected attempt from fallback reader: %#v", attempt)
	}
}

type stubFacadeService struct {
	lastMaxIdle time.Duration
	ledger      *core.MemoryAttemptLedger
}

func (s *stubFacadeService) Start(context.Context, core.SheetRequest) (*core.Pending[core.PaymentMethod], error) {
	return core.NewPending[core.PaymentMethod](), nil
}

func (s *stubFacadeService) UpdateSummary(context.Context, core.SummaryUpdate) error {
	return nil
}

func (s *stubFacadeService) Confirm(context.Context, string) (*core.Pending[core.ConfirmResult], error) {
	return core.NewPending[core.ConfirmResult](), nil
}

func (s *stubFacadeService) AbandonStale(_ context.Context, maxIdle time.Duration) (bool, error) {
	s.lastMaxIdle = maxIdle
	return false, nil
}

func (s *stubFacadeService) IsSupported(context.Context) bool {
	return true
}

func (s *stubFacadeService) State() core.SessionState {
	return core.StateIdle
}

func (s *stubFacadeService) Ledger() core.AttemptLedger {
	if s.ledger == nil {
		return nil
	}
	return s.ledger
}

type stubFacadeAttemptReader struct{}

func (s *stubFacadeAttemptReader) Get(context.Context, string) (core.AuthorizationAttempt, error) {
	return core.AuthorizationAttempt{ID: "att_1"}, nil
}

func (s *stubFacadeAttemptReader) List(context.Context, core.AttemptFilter) (core.AttemptPage, error) {
	return core.AttemptPage{
		Items: []core.AuthorizationAttempt{{ID: "att_1", Status: core.AttemptStatusSucceeded}},
		Total: 1,
	}, nil
}

var _ CommandQueryService = (*stubFacadeService)(nil)
