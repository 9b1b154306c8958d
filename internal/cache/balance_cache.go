package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// BalanceCache is a read-through cache for branch balance summaries. Replaying
// a branch's ledger is the hottest query in the system; the cache holds the
// as-of-now summary and is invalidated whenever a journal is posted or voided
// in the branch. A nil *BalanceCache is a valid no-op.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBalanceCache creates a cache backed by the given Redis URL. Returns nil
// when the URL is empty or unparseable, so callers degrade to direct reads.
func NewBalanceCache(redisURL string, ttl time.Duration) *BalanceCache {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("Invalid Redis URL, balance cache disabled", slog.String("error", err.Error()))
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &BalanceCache{client: redis.NewClient(opts), ttl: ttl}
}

// Close releases the Redis connection.
func (c *BalanceCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func summaryKey(branchID string, includeAccounts bool) string {
	return fmt.Sprintf("branchbooks:balance:%s:%t", branchID, includeAccounts)
}

// GetSummary returns the cached summary for a branch, or nil on miss or error.
func (c *BalanceCache) GetSummary(ctx context.Context, branchID string, includeAccounts bool) *domain.BalanceSummary {
	if c == nil {
		return nil
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	raw, err := c.client.Get(ctx, summaryKey(branchID, includeAccounts)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Balance cache read failed", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		}
		return nil
	}
	var summary domain.BalanceSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		logger.Warn("Balance cache entry corrupt, dropping", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		c.Invalidate(ctx, branchID)
		return nil
	}
	return &summary
}

// SetSummary stores a freshly computed summary. Failures are logged only.
func (c *BalanceCache) SetSummary(ctx context.Context, branchID string, includeAccounts bool, summary *domain.BalanceSummary) {
	if c == nil || summary == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, summaryKey(branchID, includeAccounts), raw, c.ttl).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Balance cache write failed", slog.String("branch_id", branchID), slog.String("error", err.Error()))
	}
}

// Invalidate drops every cached summary for a branch. Called after any write
// that changes the branch's ledger.
func (c *BalanceCache) Invalidate(ctx context.Context, branchID string) {
	if c == nil {
		return
	}
	keys := []string{summaryKey(branchID, true), summaryKey(branchID, false)}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Balance cache invalidation failed", slog.String("branch_id", branchID), slog.String("error", err.Error()))
	}
}
