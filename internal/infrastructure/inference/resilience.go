package inference

import (
	"context"
	"errors"
	"net"

	"github.com/rootuip/docintel/internal/infrastructure/resilience"
)

// classifyInferenceError decides retry and breaker behavior per error.
// Context cancellation is neither retried nor counted against the breaker;
// server-side 5xx and transport errors are both.
func classifyInferenceError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	var statusErr httpStatusError
	if errors.As(err, &statusErr) {
		return resilience.ErrorClassification{
			Retryable:     statusErr.status >= 500 || statusErr.status == 429,
			RecordFailure: statusErr.status >= 500,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	return resilience.ErrorClassification{
		Retryable:     false,
		RecordFailure: true,
	}
}
