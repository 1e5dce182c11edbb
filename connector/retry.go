package connector

import (
	"context"
	"time"
)

// connectWithRetry calls connectFn with exponential backoff. A nil retry
// config means a single attempt.
func connectWithRetry(ctx context.Context, retry *RetryConfig, connectFn func(context.Context) (Connection, error)) (Connection, error) {
	if retry == nil || retry.MaxRetries <= 0 {
		return connectFn(ctx)
	}

	delay := retry.BaseDelay.Std()
	if delay == 0 {
		delay = time.Second
	}

	var conn Connection
	var err error
	for i := 0; i <= retry.MaxRetries; i++ {
		conn, err = connectFn(ctx)
		if err == nil {
			return conn, nil
		}
		if i == retry.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
			delay *= 2
			if retry.MaxDelay > 0 && delay > retry.MaxDelay.Std() {
				delay = retry.MaxDelay.Std()
			}
		}
	}
	return nil, err
}
