package lineup

import "context"

// Attempt is one data source in a fallback chain. ok=false means the source
// produced nothing usable and the next attempt should run.
type Attempt[T any] func(ctx context.Context) (value T, ok bool, err error)

// First runs attempts in order and returns the first usable value.
// Errors are collected per attempt and do not stop the chain; the last error
// is returned only when every attempt came up empty.
func First[T any](ctx context.Context, attempts ...Attempt[T]) (T, bool, error) {
	var zero T
	var lastErr error
	for _, attempt := range attempts {
		if attempt == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return zero, false, err
		}
		value, ok, err := attempt(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return value, true, nil
		}
	}
	return zero, false, lastErr
}
