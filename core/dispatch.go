package core

import (
	"context"
)

// finishSession routes a terminal outcome to whichever pending result is
// still outstanding, in fixed priority: the confirm call first, then the
// original start call. Every slot clears unconditionally and the session is
// discarded, no matter which branch fired.
func (c *Coordinator) finishSession(ctx context.Context, outcome Outcome) error {
	return c.finishSessionFor(ctx, nil, outcome)
}

// finishSessionFor is finishSession with an identity guard: when expect is
// non-nil and a different session is current, the outcome does not apply.
// The reaper needs this; between its staleness check and the sweep, the
// stale session may finish on its own and a fresh Start may take the slot.
func (c *Coordinator) finishSessionFor(ctx context.Context, expect *authorizationSession, outcome Outcome) error {
	if !outcome.Terminal() {
		outcome.Status = OutcomeUnknown
	}

	c.mu.Lock()
	session := c.session
	if !session.active() {
		c.mu.Unlock()
		return notReadyError("core: no active session for terminal outcome")
	}
	if expect != nil && session != expect {
		c.mu.Unlock()
		return notReadyError("core: session changed before the terminal outcome could apply")
	}
	confirmation := session.takeConfirmationPending()
	request := session.takeRequestPending()
	attemptID := session.attemptID
	sessionID := session.id
	session.clear()
	c.session = nil
	c.mu.Unlock()

	switch {
	case confirmation != nil:
		if outcome.Status == OutcomeSuccess {
			confirmation.Resolve(ConfirmResult{})
		} else {
			confirmation.Reject(c.mapError(outcomeError(outcome)))
		}
	case request != nil:
		if outcome.Status == OutcomeSuccess {
			// Success without a created payment method is an anomaly the
			// caller cannot act on; classify it as unknown.
			request.Reject(c.mapError(outcomeError(Outcome{
				Status: OutcomeUnknown,
				Reason: "sheet reported success before a payment method was created",
			})))
		} else {
			request.Reject(c.mapError(outcomeError(outcome)))
		}
	}

	c.completeAttempt(ctx, attemptID, attemptStatusForOutcome(outcome), string(outcome.Status), outcome.Reason)
	c.logInfo(ctx, "authorization session finished", map[string]any{
		"session_id": sessionID,
		"outcome":    string(outcome.Status),
		"reason":     outcome.Reason,
	})
	return nil
}

func attemptStatusForOutcome(outcome Outcome) AttemptStatus {
	switch outcome.Status {
	case OutcomeSuccess:
		return AttemptStatusSucceeded
	case OutcomeCanceled:
		return AttemptStatusCanceled
	default:
		return AttemptStatusFailed
	}
}
