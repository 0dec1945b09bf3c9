package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Accesos-api/pkg/jwt"
)

const secret = "test-secret-key-suficientemente-largo"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tenant := int64(3)
	token, err := jwt.Generate(secret, jwt.Subject{UserID: 42, TenantID: &tenant, Email: "a@b.co", Role: "ADMIN"}, "accesos-api", 30)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, int64(3), *claims.TenantID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAtTime(), 5*time.Second)
}

func TestGenerate_JTIDistintoPorToken(t *testing.T) {
	t1, err := jwt.Generate(secret, jwt.Subject{UserID: 1}, "x", 5)
	require.NoError(t, err)
	t2, err := jwt.Generate(secret, jwt.Subject{UserID: 1}, "x", 5)
	require.NoError(t, err)

	c1, err := jwt.Parse(secret, t1)
	require.NoError(t, err)
	c2, err := jwt.Parse(secret, t2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := jwt.Generate(secret, jwt.Subject{UserID: 1}, "x", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID: 1,
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_SinUserID(t *testing.T) {
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", jwt.Subject{UserID: 1}, "x", 5)
	assert.Error(t, err)
}
