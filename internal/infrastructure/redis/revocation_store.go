package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

var _ repository.TokenRevocationStore = (*RevocationStore)(nil)

// RevocationStore guarda los jti revocados con TTL igual al tiempo restante del token.
type RevocationStore struct {
	client *goredis.Client
	prefix string
}

// NewClient crea un cliente desde REDIS_URL y verifica la conexión.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis URL inválida: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return client, nil
}

func NewRevocationStore(client *goredis.Client, prefix string) *RevocationStore {
	return &RevocationStore{client: client, prefix: prefix}
}

// Revoke no guarda nada si el token ya expiró.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(jti), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("consultar token revocado: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) key(jti string) string {
	return s.prefix + jti
}
