// Package limiter counts requests per key in fixed windows.
package limiter

import (
	"context"
	"errors"
	"time"
)

// Limiter decides whether one more request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

var ErrInvalidLimit = errors.New("limit and window must be positive")

func checkParams(limit int, window time.Duration) error {
	if limit <= 0 || window <= 0 {
		return ErrInvalidLimit
	}
	return nil
}
