// Package gojob runs wallet session maintenance on the go-job queue runtime.
//
// The coordinator keeps sheet sessions in memory; when a host process embeds
// a queue worker, the reaper job here sweeps sessions whose sheet went silent
// so a crashed or abandoned presentation cannot pin the coordinator forever.
package gojob

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-walletpay/core"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	"github.com/goliatone/go-job/queue/worker"
	glog "github.com/goliatone/go-logger/glog"
)

const (
	// JobIDSessionReap identifies the stale session sweep job.
	JobIDSessionReap = "walletpay.session.reap"

	paramMaxIdleSeconds = "max_idle_seconds"
)

// SessionSweeper abandons sessions that have been idle longer than maxIdle.
// A maxIdle of zero defers to the coordinator's configured bound.
type SessionSweeper interface {
	AbandonStale(ctx context.Context, maxIdle time.Duration) (bool, error)
}

// RetryPolicy defines queue retry bounds to avoid unbounded retry loops.
type RetryPolicy struct {
	MaxAttempts     int
	RetryDelay      time.Duration
	MaxDelay        time.Duration
	DeadLetterOnMax bool
}

// NormalizeAttempt enforces bounded retry behavior for a nack operation.
// A retry disposition past MaxAttempts becomes dead-letter or failed; empty
// dispositions default to retry so a nack never fails queue validation.
func (p RetryPolicy) NormalizeAttempt(opts queue.NackOptions, attempt int) queue.NackOptions {
	out := opts
	out.Reason = strings.TrimSpace(out.Reason)
	if out.Disposition == "" {
		out.Disposition = queue.NackDispositionRetry
	}
	if out.Delay < 0 {
		out.Delay = 0
	}
	if p.MaxDelay > 0 && out.Delay > p.MaxDelay {
		out.Delay = p.MaxDelay
	}
	if out.Disposition == queue.NackDispositionRetry && p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		if p.DeadLetterOnMax {
			out.Disposition = queue.NackDispositionDeadLetter
		} else {
			out.Disposition = queue.NackDispositionFailed
		}
	}
	if out.Disposition != queue.NackDispositionRetry {
		out.Delay = 0
	}
	return out
}

// NewSessionReapMessage builds the execution message for one sweep pass.
// Re-enqueued passes dedupe on the job id so a slow worker never stacks
// redundant sweeps.
func NewSessionReapMessage(maxIdle time.Duration) *job.ExecutionMessage {
	seconds := int64(maxIdle / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return &job.ExecutionMessage{
		JobID:          JobIDSessionReap,
		ScriptPath:     JobIDSessionReap,
		Parameters:     map[string]any{paramMaxIdleSeconds: seconds},
		IdempotencyKey: JobIDSessionReap,
		DedupPolicy:    job.DedupPolicyDrop,
	}
}

// MaxIdleFromMessage extracts the idle bound carried by a reap message.
// A missing parameter yields zero, which defers to coordinator config.
func MaxIdleFromMessage(msg *job.ExecutionMessage) (time.Duration, error) {
	if msg == nil {
		return 0, fmt.Errorf("gojob: execution message is required")
	}
	raw, ok := msg.Parameters[paramMaxIdleSeconds]
	if !ok || raw == nil {
		return 0, nil
	}
	switch value := raw.(type) {
	case int:
		return time.Duration(value) * time.Second, nil
	case int64:
		return time.Duration(value) * time.Second, nil
	case float64:
		return time.Duration(value * float64(time.Second)), nil
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, nil
		}
		parsed, err := time.ParseDuration(trimmed + "s")
		if err != nil {
			return 0, fmt.Errorf("gojob: invalid %s parameter %q", paramMaxIdleSeconds, value)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("gojob: invalid %s parameter type %T", paramMaxIdleSeconds, raw)
	}
}

// ReapScheduler enqueues sweep passes onto a go-job queue.
type ReapScheduler struct {
	enqueuer queue.Enqueuer
}

func NewReapScheduler(enqueuer queue.Enqueuer) *ReapScheduler {
	return &ReapScheduler{enqueuer: enqueuer}
}

// Schedule enqueues one sweep pass with the given idle bound.
func (s *ReapScheduler) Schedule(ctx context.Context, maxIdle time.Duration) (queue.EnqueueReceipt, error) {
	if s == nil || s.enqueuer == nil {
		return queue.EnqueueReceipt{}, fmt.Errorf("gojob: enqueuer is not configured")
	}
	return s.enqueuer.Enqueue(ctx, NewSessionReapMessage(maxIdle))
}

// SessionReaper executes reap messages against a sweeper.
type SessionReaper struct {
	sweeper SessionSweeper
	policy  RetryPolicy
	logger  glog.Logger
}

func NewSessionReaper(sweeper SessionSweeper, policy RetryPolicy, logger glog.Logger) *SessionReaper {
	if logger == nil {
		logger = glog.Nop()
	}
	return &SessionReaper{
		sweeper: sweeper,
		policy:  policy,
		logger:  logger,
	}
}

// Handle runs one sweep pass described by the message.
func (r *SessionReaper) Handle(ctx context.Context, msg *job.ExecutionMessage) error {
	if r == nil || r.sweeper == nil {
		return fmt.Errorf("gojob: session sweeper is not configured")
	}
	if msg == nil {
		return fmt.Errorf("gojob: execution message is required")
	}
	if msg.JobID != JobIDSessionReap {
		return fmt.Errorf("gojob: unexpected job id %q", msg.JobID)
	}
	maxIdle, err := MaxIdleFromMessage(msg)
	if err != nil {
		return err
	}
	abandoned, err := r.sweeper.AbandonStale(ctx, maxIdle)
	if err != nil {
		return err
	}
	r.logger.Info("session reap pass complete",
		"job_id", msg.JobID,
		"abandoned", abandoned,
	)
	return nil
}

// ProcessDelivery handles a dequeued reap message and settles the delivery,
// acking on success and nacking with policy-bounded retry options otherwise.
func (r *SessionReaper) ProcessDelivery(ctx context.Context, delivery queue.Delivery, attempt int) error {
	if r == nil {
		return fmt.Errorf("gojob: session reaper is not configured")
	}
	if delivery == nil {
		return fmt.Errorf("gojob: delivery is not configured")
	}
	handleErr := r.Handle(ctx, delivery.Message())
	if handleErr == nil {
		return delivery.Ack(ctx)
	}
	opts := r.policy.NormalizeAttempt(queue.NackOptions{
		Disposition: queue.NackDispositionRetry,
		Delay:       r.policy.RetryDelay,
		Reason:      handleErr.Error(),
	}, attempt)
	if err := delivery.Nack(ctx, opts); err != nil {
		return fmt.Errorf("gojob: nack after %v: %w", handleErr, err)
	}
	return handleErr
}

// LogHook logs worker lifecycle events through the shared glog pipeline.
type LogHook struct {
	logger glog.Logger
}

func NewLogHook(logger glog.Logger) *LogHook {
	if logger == nil {
		logger = glog.Nop()
	}
	return &LogHook{logger: logger}
}

func (h *LogHook) OnStart(_ context.Context, event worker.Event) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Debug("job started", "job_id", eventJobID(event), "attempt", event.Attempt)
}

func (h *LogHook) OnSuccess(_ context.Context, event worker.Event) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Info("job succeeded",
		"job_id", eventJobID(event),
		"attempt", event.Attempt,
		"duration", event.Duration,
	)
}

func (h *LogHook) OnFailure(_ context.Context, event worker.Event) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Error("job failed",
		"job_id", eventJobID(event),
		"attempt", event.Attempt,
		"error", event.Err,
	)
}

func (h *LogHook) OnRetry(_ context.Context, event worker.Event) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Warn("job retry scheduled",
		"job_id", eventJobID(event),
		"attempt", event.Attempt,
		"delay", event.Delay,
		"error", event.Err,
	)
}

func eventJobID(event worker.Event) string {
	message := event.Message
	if message == nil && event.Delivery != nil {
		message = event.Delivery.Message()
	}
	if message == nil {
		return ""
	}
	return message.JobID
}

var (
	_ worker.Hook    = (*LogHook)(nil)
	_ SessionSweeper = (*core.Coordinator)(nil)
)
