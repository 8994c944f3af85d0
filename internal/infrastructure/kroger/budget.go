package kroger

import (
	"fmt"
	"sync"
	"time"

	"github.com/smartshelf/backend/internal/domain"
)

// DefaultDailyQuota is the provider's daily call allowance for the
// product search endpoint.
const DefaultDailyQuota = 10000

// Budget tracks the rolling daily call quota shared by all outbound
// catalog calls. Reserve never blocks; when the budget is exhausted the
// caller decides whether to retry after the reset.
type Budget struct {
	mu        sync.Mutex
	quota     int
	remaining int
	resetAt   time.Time

	now func() time.Time // overridable in tests
}

// NewBudget creates a budget with the given daily quota. A quota <= 0
// falls back to DefaultDailyQuota.
func NewBudget(quota int) *Budget {
	if quota <= 0 {
		quota = DefaultDailyQuota
	}
	now := time.Now()
	return &Budget{
		quota:     quota,
		remaining: quota,
		resetAt:   now.Add(24 * time.Hour),
		now:       time.Now,
	}
}

// Reserve consumes one call from the budget. The check-then-decrement
// is atomic; the window resets to the full quota once resetAt passes.
func (b *Budget) Reserve() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if !now.Before(b.resetAt) {
		b.remaining = b.quota
		b.resetAt = now.Add(24 * time.Hour)
	}

	if b.remaining <= 0 {
		return fmt.Errorf("%w: daily catalog quota exhausted until %s", domain.ErrRateLimited, b.resetAt.Format(time.RFC3339))
	}

	b.remaining--
	return nil
}

// Remaining returns the calls left in the current window.
func (b *Budget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining
}

// ResetAt returns when the current window ends.
func (b *Budget) ResetAt() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resetAt
}
