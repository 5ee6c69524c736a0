package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-walletpay/core"
)

const (
	TypeStartAuthorization = "walletpay.command.authorization.start"
	TypeUpdateSummary      = "walletpay.command.summary.update"
	TypeConfirmPayment     = "walletpay.command.payment.confirm"
	TypeAbandonStale       = "walletpay.command.session.abandon_stale"
)

type StartAuthorizationMessage struct {
	Request core.SheetRequest
}

func (StartAuthorizationMessage) Type() string { return TypeStartAuthorization }

func (m StartAuthorizationMessage) Validate() error {
	if strings.TrimSpace(m.Request.Country) == "" {
		return fmt.Errorf("command: country is required")
	}
	if strings.TrimSpace(m.Request.Currency) == "" {
		return fmt.Errorf("command: currency is required")
	}
	if len(m.Request.LineItems) == 0 {
		return fmt.Errorf("command: at least one line item is required")
	}
	return nil
}

type UpdateSummaryMessage struct {
	Update core.SummaryUpdate
}

func (UpdateSummaryMessage) Type() string { return TypeUpdateSummary }

func (m UpdateSummaryMessage) Validate() error {
	for _, item := range m.Update.LineItems {
		if strings.TrimSpace(item.Label) == "" {
			return fmt.Errorf("command: line item label is required")
		}
	}
	for _, contactErr := range m.Update.ContactErrors {
		if strings.TrimSpace(string(contactErr.Field)) == "" {
			return fmt.Errorf("command: contact error field is required")
		}
	}
	return nil
}

type ConfirmPaymentMessage struct {
	Secret string
}

func (ConfirmPaymentMessage) Type() string { return TypeConfirmPayment }

func (m ConfirmPaymentMessage) Validate() error {
	if strings.TrimSpace(m.Secret) == "" {
		return fmt.Errorf("command: authorization secret is required")
	}
	return nil
}

type AbandonStaleMessage struct {
	MaxIdle time.Duration
}

func (AbandonStaleMessage) Type() string { return TypeAbandonStale }

func (m AbandonStaleMessage) Validate() error {
	if m.MaxIdle < 0 {
		return fmt.Errorf("command: max idle must not be negative")
	}
	return nil
}
