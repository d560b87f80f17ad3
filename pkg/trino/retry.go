package trino

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// linearBackoff returns a backoff whose delay before attempt n is
// n × step: with a 500ms step the second attempt waits 1000ms and the
// third 1500ms.
func linearBackoff(step time.Duration) retry.Backoff {
	attempt := 1
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * step, false
	})
}
