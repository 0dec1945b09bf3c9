package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

var _ repository.TokenRevocationStore = (*RevokedTokenRepo)(nil)

// RevokedTokenRepo lista de tokens revocados en la tabla revoked_tokens.
// Se usa cuando no hay REDIS_URL configurado.
type RevokedTokenRepo struct {
	db Querier
}

func NewRevokedTokenRepository(db Querier) *RevokedTokenRepo {
	return &RevokedTokenRepo{db: db}
}

// Revoke es idempotente: revocar dos veces el mismo jti no falla.
func (r *RevokedTokenRepo) Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO revoked_tokens (jti, user_id, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING`, jti, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked ignora entradas ya expiradas (el token tampoco pasaría la validación JWT).
func (r *RevokedTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1 AND expires_at > NOW())`, jti).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}

// PurgeExpired borra entradas vencidas; devuelve cuántas eliminó.
func (r *RevokedTokenRepo) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("purge revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
