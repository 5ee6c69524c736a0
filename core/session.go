package core

import (
	"time"
)

// authorizationSession is the coordinator's in-memory record of the one
// in-flight flow. All access happens under the coordinator's mutex; the
// session itself carries no locking. Slots hold single-use references that
// are cleared immediately after use so nothing dangles past StateDone.
type authorizationSession struct {
	id        string
	state     SessionState
	request   SheetRequest
	attemptID string
	startedAt time.Time
	touchedAt time.Time

	// Caller-visible result handles. requestPending settles with the mapped
	// payment method (or the terminal rejection); confirmationPending exists
	// only after Confirm and settles on the terminal outcome.
	requestPending      *Pending[PaymentMethod]
	confirmationPending *Pending[ConfirmResult]

	// Sheet-owned one-shot continuations buffered across caller round trips.
	completion             *CompletionContinuation
	pendingShippingMethod  *SummaryContinuation
	pendingShippingContact *SummaryContinuation

	// fault records a delegate-side programming error (a duplicate shipping
	// event while a round trip is open). Its only caller-facing symptom is a
	// rejected follow-up update call carrying this error.
	fault error
}

func newAuthorizationSession(id string, req SheetRequest, now time.Time) *authorizationSession {
	return &authorizationSession{
		id:             id,
		state:          StatePresenting,
		request:        req.clone(),
		startedAt:      now,
		touchedAt:      now,
		requestPending: NewPending[PaymentMethod](),
	}
}

func (s *authorizationSession) active() bool {
	if s == nil {
		return false
	}
	switch s.state {
	case StatePresenting, StateAwaitingSecret, StateConfirming:
		return true
	default:
		return false
	}
}

func (s *authorizationSession) touch(now time.Time) {
	if s == nil {
		return
	}
	s.touchedAt = now
}

// hasPendingShippingUpdate reports whether either shipping slot is occupied.
func (s *authorizationSession) hasPendingShippingUpdate() bool {
	if s == nil {
		return false
	}
	return s.pendingShippingMethod != nil || s.pendingShippingContact != nil
}

// takeShippingContinuations empties both shipping slots and returns their
// prior contents. A single caller update answers whichever round trip is
// open, so both slots clear unconditionally.
func (s *authorizationSession) takeShippingContinuations() (method *SummaryContinuation, contact *SummaryContinuation) {
	if s == nil {
		return nil, nil
	}
	method = s.pendingShippingMethod
	contact = s.pendingShippingContact
	s.pendingShippingMethod = nil
	s.pendingShippingContact = nil
	return method, contact
}

// takeRequestPending clears and returns the start-call handle.
func (s *authorizationSession) takeRequestPending() *Pending[PaymentMethod] {
	if s == nil {
		return nil
	}
	pending := s.requestPending
	s.requestPending = nil
	return pending
}

// takeConfirmationPending clears and returns the confirm-call handle.
func (s *authorizationSession) takeConfirmationPending() *Pending[ConfirmResult] {
	if s == nil {
		return nil
	}
	pending := s.confirmationPending
	s.confirmationPending = nil
	return pending
}

// takeCompletion clears and returns the buffered completion continuation.
func (s *authorizationSession) takeCompletion() *CompletionContinuation {
	if s == nil {
		return nil
	}
	completion := s.completion
	s.completion = nil
	return completion
}

// clear discards every remaining slot and marks the session done. Discarded
// continuations become inert so a late sheet callback cannot resume anything.
func (s *authorizationSession) clear() {
	if s == nil {
		return
	}
	if s.pendingShippingMethod != nil {
		s.pendingShippingMethod.Discard()
		s.pendingShippingMethod = nil
	}
	if s.pendingShippingContact != nil {
		s.pendingShippingContact.Discard()
		s.pendingShippingContact = nil
	}
	if s.completion != nil {
		s.completion.Discard()
		s.completion = nil
	}
	s.requestPending = nil
	s.confirmationPending = nil
	s.fault = nil
	s.state = StateDone
}
