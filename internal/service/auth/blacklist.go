package auth

import (
	"sync"
	"time"
)

// TokenBlacklist records revoked tokens so they are rejected before their
// natural expiry. Logout revokes both tokens of a pair; refresh rotation
// revokes the consumed refresh token.
type TokenBlacklist interface {
	// Revoke marks the token with the given jti as revoked until expiresAt,
	// after which the entry may be discarded since the token would be
	// rejected as expired anyway.
	Revoke(jti string, expiresAt time.Time)

	// IsRevoked reports whether the token with the given jti is revoked.
	IsRevoked(jti string) bool

	// Consume atomically checks and revokes the token with the given jti.
	// It returns false if the token was already revoked. Refresh rotation
	// uses this so two concurrent exchanges of the same token cannot both
	// succeed.
	Consume(jti string, expiresAt time.Time) bool
}

// memoryBlacklist is an in-process TokenBlacklist. Revocations do not
// survive a restart and are not shared between replicas; entries are pruned
// lazily once their token would have expired on its own.
type memoryBlacklist struct {
	mu       sync.RWMutex
	entries  map[string]time.Time
	timeFunc func() time.Time // Injectable for testing

	// lastPrune tracks when expired entries were last swept.
	lastPrune time.Time
}

// pruneInterval bounds how often the lazy sweep runs.
const pruneInterval = time.Minute

// NewMemoryBlacklist creates an in-memory TokenBlacklist.
func NewMemoryBlacklist() TokenBlacklist {
	return &memoryBlacklist{
		entries:  make(map[string]time.Time),
		timeFunc: time.Now,
	}
}

// Revoke implements TokenBlacklist.Revoke.
func (b *memoryBlacklist) Revoke(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.pruneLocked()
	b.entries[jti] = expiresAt
}

// Consume implements TokenBlacklist.Consume.
func (b *memoryBlacklist) Consume(jti string, expiresAt time.Time) bool {
	if jti == "" {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.pruneLocked()

	if revokedUntil, ok := b.entries[jti]; ok && b.timeFunc().Before(revokedUntil) {
		return false
	}
	b.entries[jti] = expiresAt
	return true
}

// IsRevoked implements TokenBlacklist.IsRevoked.
func (b *memoryBlacklist) IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}

	b.mu.RLock()
	expiresAt, ok := b.entries[jti]
	b.mu.RUnlock()

	if !ok {
		return false
	}

	// An entry past its token's expiry no longer matters; the token itself
	// fails validation.
	return b.timeFunc().Before(expiresAt)
}

// pruneLocked drops entries whose tokens have expired. Caller holds b.mu.
func (b *memoryBlacklist) pruneLocked() {
	now := b.timeFunc()
	if now.Sub(b.lastPrune) < pruneInterval {
		return
	}
	b.lastPrune = now

	for jti, expiresAt := range b.entries {
		if !now.Before(expiresAt) {
			delete(b.entries, jti)
		}
	}
}
