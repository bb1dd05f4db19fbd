package cache

import (
	"context"
	"errors"
	"net"
	"time"
)

// ErrUnavailable is returned when a remote cache backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// backoff retries an operation a fixed number of times, doubling the wait
// between attempts.
type backoff struct {
	attempts int
	delay    time.Duration
}

// connectBackoff is used when dialing a remote backend.
var connectBackoff = backoff{attempts: 3, delay: 500 * time.Millisecond}

// do calls fn until it succeeds, returns an error transient rejects, or the
// attempts run out. The last error is returned.
func (b backoff) do(ctx context.Context, transient func(error) bool, fn func() error) error {
	delay := b.delay
	var err error
	for i := range b.attempts {
		if err = fn(); err == nil || !transient(err) {
			return err
		}
		if i == b.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// isNetError reports whether err came from the network layer.
func isNetError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}
