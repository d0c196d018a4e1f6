package throttle

import (
	"context"
	"strconv"
	"strings"
	"time"

	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/logger"
)

const (
	defaultAttempts = 10
	defaultWait     = time.Second
	maxRetryAfter   = time.Minute
)

// Retrier repeats a call while the remote side answers with a rate limit.
// Every other error is returned as is
type Retrier struct {
	MaxAttempts int
	Wait        time.Duration
	Limiter     Limiter
	Log         *logger.Logger
}

// Do runs fn until it succeeds, fails with a non rate limit error or the
// attempts run out. The limiter is acquired for each attempt
func (r Retrier) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	wait := r.Wait
	if wait <= 0 {
		wait = defaultWait
	}
	lim := r.Limiter
	if lim == nil {
		lim = Unlimited{}
	}

	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		release, err := lim.Acquire(ctx)
		if err != nil {
			return err
		}
		err = fn(ctx)
		release()
		if err == nil {
			return nil
		}
		if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
			return err
		}
		last = err
		if attempt == attempts {
			break
		}

		d := wait
		if hint, ok := perr.RetryAfter(err); ok {
			d = hint
		}
		if r.Log != nil {
			r.Log.Warn().Int("attempt", attempt).Dur("retry_in", d).Msg("rate limited, retrying")
		}
		if err := sleepFn(ctx, d); err != nil {
			return err
		}
	}
	return perr.Wrapf(last, perr.ErrorCodeTooManyRequests, "still rate limited after %d attempts", attempts)
}

// ParseRetryAfter reads a backoff header given in (possibly fractional) seconds,
// capped at maxRetryAfter
func ParseRetryAfter(v string) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || !(secs > 0) {
		return 0, false
	}
	secs = min(secs, maxRetryAfter.Seconds())
	return time.Duration(secs * float64(time.Second)), true
}
