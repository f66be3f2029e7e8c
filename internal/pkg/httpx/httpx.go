package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// StatusCoder is implemented by errors that carry an upstream HTTP status.
type StatusCoder interface {
	HTTPStatusCode() int
}

func RetryableStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

// IsRetryable reports whether a failed request is worth another attempt:
// timeouts, temporary network faults, and retryable upstream statuses.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		return RetryableStatus(sc.HTTPStatusCode())
	}
	return false
}

// SleepFor computes the pause before the next attempt: a Retry-After header
// wins when present, otherwise exponential backoff from base, capped at max,
// with +/-20% jitter either way.
func SleepFor(resp *http.Response, attempt int, base, max time.Duration) time.Duration {
	d := base << uint(attempt)
	if resp != nil {
		if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				d = time.Duration(secs) * time.Second
			}
		}
	}
	if max > 0 && d > max {
		d = max
	}
	return jitter(d)
}

func jitter(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	delta := 0.2 * base.Seconds()
	v := base.Seconds() - delta + rand.Float64()*2*delta
	return time.Duration(v * float64(time.Second))
}
