package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryBlacklistRevoke(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist()

	assert.False(t, bl.IsRevoked("jti-1"))

	bl.Revoke("jti-1", time.Now().Add(time.Hour))
	assert.True(t, bl.IsRevoked("jti-1"))
	assert.False(t, bl.IsRevoked("jti-2"))
}

func TestMemoryBlacklistEmptyJTI(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist()
	bl.Revoke("", time.Now().Add(time.Hour))
	assert.False(t, bl.IsRevoked(""))
}

func TestMemoryBlacklistConsume(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist()
	expiresAt := time.Now().Add(time.Hour)

	assert.True(t, bl.Consume("jti-1", expiresAt))
	assert.True(t, bl.IsRevoked("jti-1"))
	assert.False(t, bl.Consume("jti-1", expiresAt), "second consume of the same jti must fail")

	// Revoked by other means counts as consumed too.
	bl.Revoke("jti-2", expiresAt)
	assert.False(t, bl.Consume("jti-2", expiresAt))

	assert.False(t, bl.Consume("", expiresAt))
}

func TestMemoryBlacklistConsumeConcurrent(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist()
	expiresAt := time.Now().Add(time.Hour)

	const callers = 16
	results := make([]bool, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = bl.Consume("shared-jti", expiresAt)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, won := range results {
		if won {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one caller may consume a jti")
}

func TestMemoryBlacklistExpiredEntryIgnored(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist().(*memoryBlacklist)

	now := time.Now()
	bl.Revoke("jti-old", now.Add(time.Minute))

	// Move the clock past the token's own expiry.
	bl.timeFunc = func() time.Time { return now.Add(2 * time.Minute) }
	assert.False(t, bl.IsRevoked("jti-old"))
}

func TestMemoryBlacklistPrune(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist().(*memoryBlacklist)

	now := time.Now()
	bl.timeFunc = func() time.Time { return now }
	bl.Revoke("jti-old", now.Add(time.Minute))
	bl.Revoke("jti-live", now.Add(time.Hour))

	// Advance beyond both the old entry's expiry and the prune interval;
	// the next revoke triggers a sweep.
	later := now.Add(5 * time.Minute)
	bl.timeFunc = func() time.Time { return later }
	bl.Revoke("jti-new", later.Add(time.Hour))

	bl.mu.RLock()
	defer bl.mu.RUnlock()
	assert.NotContains(t, bl.entries, "jti-old")
	assert.Contains(t, bl.entries, "jti-live")
	assert.Contains(t, bl.entries, "jti-new")
}
