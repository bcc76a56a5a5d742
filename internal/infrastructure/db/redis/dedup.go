package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const captureDedupTTL = 24 * time.Hour

// CaptureDedup remembers processed payment captures so a replayed callback is
// applied once.
// Key format: capture:<reference>:<payment_id>
type CaptureDedup struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewCaptureDedup creates a CaptureDedup wrapping the given Redis client.
func NewCaptureDedup(client redis.UniversalClient) *CaptureDedup {
	return &CaptureDedup{client: client, ttl: captureDedupTTL}
}

// Claim atomically marks (reference, paymentID) as processed. It returns true
// only for the first caller.
func (d *CaptureDedup) Claim(ctx context.Context, reference, paymentID string) (bool, error) {
	ok, err := d.client.SetNX(ctx, captureKey(reference, paymentID), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("capture dedup: %w", err)
	}
	return ok, nil
}

// Release drops the claim so the same capture can be retried.
func (d *CaptureDedup) Release(ctx context.Context, reference, paymentID string) error {
	if err := d.client.Del(ctx, captureKey(reference, paymentID)).Err(); err != nil {
		return fmt.Errorf("capture dedup: release: %w", err)
	}
	return nil
}

func captureKey(reference, paymentID string) string {
	return fmt.Sprintf("capture:%s:%s", reference, paymentID)
}
