package reconcile

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// pacer enforces a minimum spacing between remote calls. It is a token
// bucket with burst 1, which degenerates to exactly the fixed inter-call
// delay the remote rate limits ask for, without sleeping before the first
// call of a run.
type pacer struct {
	limiter *rate.Limiter
}

func newPacer(interval time.Duration) *pacer {
	if interval <= 0 {
		return &pacer{}
	}
	return &pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call slot is available.
func (p *pacer) Wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
