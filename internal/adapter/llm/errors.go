package llm

import (
	"context"
	"errors"
	"net"

	"studion/internal/domain"
)

// classify maps a provider error onto an AI failure kind. ctx is the
// deadline-bound context the call ran under.
func classify(ctx context.Context, err error) domain.AIFailureKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.AIFailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return domain.AIFailureTimeout
		}
		return domain.AIFailureNetworkError
	}
	return domain.AIFailureServiceError
}
