package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role es el rol legacy; el middleware RBAC decide con él sin consultar la DB.
// RegisteredClaims.ID (jti) identifica el token para poder revocarlo en logout.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	TenantID *int64 `json:"tenant_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Subject datos del usuario que viajan en el token.
type Subject struct {
	UserID   int64
	TenantID *int64
	Email    string
	Role     string
}

// Generate genera un token HS256 firmado con un jti aleatorio.
func Generate(secret string, sub Subject, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(sub.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   sub.UserID,
		TenantID: sub.TenantID,
		Email:    sub.Email,
		Role:     sub.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("claims inválidos: falta user_id")
	}
	return claims, nil
}

// ExpiresAtTime devuelve la expiración del token (cero si no tiene).
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
