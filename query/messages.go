package query

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-walletpay/core"
)

const (
	TypeCheckSupport    = "walletpay.query.support.check"
	TypeGetSessionState = "walletpay.query.session.state"
	TypeGetAttempt      = "walletpay.query.attempt.get"
	TypeListAttempts    = "walletpay.query.attempt.list"
)

type CheckSupportMessage struct{}

func (CheckSupportMessage) Type() string { return TypeCheckSupport }

func (CheckSupportMessage) Validate() error { return nil }

type GetSessionStateMessage struct{}

func (GetSessionStateMessage) Type() string { return TypeGetSessionState }

func (GetSessionStateMessage) Validate() error { return nil }

type GetAttemptMessage struct {
	AttemptID string
}

func (GetAttemptMessage) Type() string { return TypeGetAttempt }

func (m GetAttemptMessage) Validate() error {
	if strings.TrimSpace(m.AttemptID) == "" {
		return fmt.Errorf("query: attempt id is required")
	}
	return nil
}

type ListAttemptsMessage struct {
	Filter core.AttemptFilter
}

func (ListAttemptsMessage) Type() string { return TypeListAttempts }

func (m ListAttemptsMessage) Validate() error {
	if m.Filter.Page < 0 {
		return fmt.Errorf("query: page must be >= 0")
	}
	if m.Filter.PerPage < 0 {
		return fmt.Errorf("query: per_page must be >= 0")
	}
	return nil
}
