package server

import "github.com/teranos/qntx-dims/errors"

// ErrRateLimited indicates the request was rejected by the limiter
var ErrRateLimited = errors.New("rate limit exceeded")

// IsRateLimitedError checks if an error is or wraps ErrRateLimited
func IsRateLimitedError(err error) bool {
	return err != nil && errors.Is(err, ErrRateLimited)
}
