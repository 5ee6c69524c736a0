package query

import (
	"context"

	"github.com/goliatone/go-walletpay/core"
)

// SupportReader exposes the coordinator's read-only surface: the capability
// probe and the current session state.
type SupportReader interface {
	IsSupported(ctx context.Context) bool
	State() core.SessionState
}

type AttemptReader interface {
	Get(ctx context.Context, id string) (core.AuthorizationAttempt, error)
	List(ctx context.Context, filter core.AttemptFilter) (core.AttemptPage, error)
}

type CheckSupportQuery struct {
	reader SupportReader
}

func NewCheckSupportQuery(reader SupportReader) *CheckSupportQuery {
	return &CheckSupportQuery{reader: reader}
}

func (q *CheckSupportQuery) Query(ctx context.Context, _ CheckSupportMessage) (bool, error) {
	if q == nil || q.reader == nil {
		return false, queryDependencyError("query: support reader is required")
	}
	return q.reader.IsSupported(ctx), nil
}

type GetSessionStateQuery struct {
	reader SupportReader
}

func NewGetSessionStateQuery(reader SupportReader) *GetSessionStateQuery {
	return &GetSessionStateQuery{reader: reader}
}

func (q *GetSessionStateQuery) Query(_ context.Context, _ GetSessionStateMessage) (core.SessionState, error) {
	if q == nil || q.reader == nil {
		return core.StateIdle, queryDependencyError("query: session state reader is required")
	}
	return q.reader.State(), nil
}

type GetAttemptQuery struct {
	reader AttemptReader
}

func NewGetAttemptQuery(reader AttemptReader) *GetAttemptQuery {
	return &GetAttemptQuery{reader: reader}
}

func (q *GetAttemptQuery) Query(ctx context.Context, msg GetAttemptMessage) (core.AuthorizationAttempt, error) {
	if q == nil || q.reader == nil {
		return core.AuthorizationAttempt{}, queryDependencyError("query: attempt reader is required")
	}
	return q.reader.Get(ctx, msg.AttemptID)
}

type ListAttemptsQuery struct {
	reader AttemptReader
}

func NewListAttemptsQuery(reader AttemptReader) *ListAttemptsQuery {
	return &ListAttemptsQuery{reader: reader}
}

func (q *ListAttemptsQuery) Query(ctx context.Context, msg ListAttemptsMessage) (core.AttemptPage, error) {
	if q == nil || q.reader == nil {
		return core.AttemptPage{}, queryDependencyError("query: attempt reader is required")
	}
	return q.reader.List(ctx, msg.Filter)
}
