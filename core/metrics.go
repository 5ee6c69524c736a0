package core

import (
	"context"
	"fmt"
	"strings"
)

const (
	metricPrefix         = "walletpay"
	metricSuffixTotal    = "total"
	metricSuffixDuration = "duration_ms"
)

// metricTagKeys are the operation fields promoted to metric tags when they
// carry a value. Everything else stays log-only to keep tag cardinality down.
var metricTagKeys = [...]string{"session_id", "state", "country", "currency"}

func metricName(operation string, suffix string) string {
	return metricPrefix + "." + operation + "." + suffix
}

func metricTags(operation string, status string, fields map[string]any) map[string]string {
	tags := map[string]string{
		"operation": operation,
		"status":    status,
	}
	for _, key := range metricTagKeys {
		value := strings.TrimSpace(fmt.Sprint(fields[key]))
		if value == "" || value == "<nil>" {
			continue
		}
		tags[key] = value
	}
	return tags
}

// NopMetricsRecorder discards every measurement. It is the default recorder
// so instrumentation call sites never nil-check.
type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

var _ MetricsRecorder = NopMetricsRecorder{}

func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return map[string]string{}
	}
	copied := make(map[string]string, len(tags))
	for key, value := range tags {
		copied[key] = value
	}
	return copied
}
