package core

import (
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// SummaryContinuation is the one-shot callback a shipping delegate event
// hands to the coordinator. Invoking it resumes the suspended sheet with an
// updated summary. It may fire at most once; a second invocation (or an
// invocation after Discard) is a defensive error, never a double resume.
type SummaryContinuation struct {
	mu       sync.Mutex
	consumed bool
	resume   func(result SummaryResult)
}

func NewSummaryContinuation(resume func(result SummaryResult)) *SummaryContinuation {
	return &SummaryContinuation{resume: resume}
}

func (c *SummaryContinuation) Invoke(result SummaryResult) error {
	if c == nil {
		return continuationReplayError("summary continuation is nil")
	}
	c.mu.Lock()
	if c.consumed {
		c.mu.Unlock()
		return continuationReplayError("summary continuation already consumed")
	}
	c.consumed = true
	resume := c.resume
	c.resume = nil
	c.mu.Unlock()

	if resume != nil {
		resume(result)
	}
	return nil
}

// Discard marks the continuation consumed without resuming the sheet. Used
// when a terminal outcome clears the session while a round trip is open.
func (c *SummaryContinuation) Discard() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.consumed = true
	c.resume = nil
	c.mu.Unlock()
}

func (c *SummaryContinuation) Consumed() bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumed
}

// CompletionContinuation is the one-shot callback buffered when the sheet
// reports a created payment method. It receives the caller's backend-issued
// authorization secret and lets the sheet proceed toward confirmation.
type CompletionContinuation struct {
	mu       sync.Mutex
	consumed bool
	complete func(secret string)
}

func NewCompletionContinuation(complete func(secret string)) *CompletionContinuation {
	return &CompletionContinuation{complete: complete}
}

func (c *CompletionContinuation) Invoke(secret string) error {
	if c == nil {
		return continuationReplayError("completion continuation is nil")
	}
	c.mu.Lock()
	if c.consumed {
		c.mu.Unlock()
		return continuationReplayError("completion continuation already consumed")
	}
	c.consumed = true
	complete := c.complete
	c.complete = nil
	c.mu.Unlock()

	if complete != nil {
		complete(secret)
	}
	return nil
}

func (c *CompletionContinuation) Discard() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.consumed = true
	c.complete = nil
	c.mu.Unlock()
}

func (c *CompletionContinuation) Consumed() bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumed
}

func continuationReplayError(message string) error {
	return newWalletError("core: "+message, goerrors.CategoryConflict, WalletErrorContinuationReplay)
}
