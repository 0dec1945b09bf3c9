package repository

import (
	"context"
	"time"
)

// TokenRevocationStore lista de tokens revocados (logout), indexada por jti.
// Las entradas solo necesitan vivir hasta la expiración del token.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
