package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList is the remote side of sign-out: revoked session ids are
// kept until the underlying token would have expired anyway.
// Key format: revoked:<session_id>
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList wraps the given Redis client.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke marks a session id as signed out for ttl.
func (l *RevocationList) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return l.client.Set(ctx, l.key(sessionID), "1", ttl).Err()
}

// IsRevoked reports whether a session id has been signed out.
func (l *RevocationList) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (l *RevocationList) key(sessionID string) string {
	return "revoked:" + sessionID
}
