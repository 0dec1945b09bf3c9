package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/application/rbac"
	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	rbacdomain "github.com/jhoicas/Accesos-api/internal/domain/rbac"
	"github.com/jhoicas/Accesos-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type stubUsers struct {
	byID map[int64]*entity.User
}

func newStubUsers() *stubUsers { return &stubUsers{byID: map[int64]*entity.User{}} }

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = int64(len(s.byID) + 1)
	s.byID[u.ID] = u
	return nil
}
func (s *stubUsers) GetByID(_ context.Context, id int64) (*entity.User, error) { return s.byID[id], nil }
func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (s *stubUsers) Count(context.Context) (int64, error)                     { return int64(len(s.byID)), nil }
func (s *stubUsers) List(context.Context, int, int) ([]*entity.User, error)   { return nil, nil }
func (s *stubUsers) Update(context.Context, *entity.User) error               { return nil }
func (s *stubUsers) SoftDelete(context.Context, int64, *int64) error          { return nil }

type stubResolver struct {
	roles []entity.Role
	calls int
}

func (r *stubResolver) ResolveRoles(context.Context, int64) ([]entity.Role, error) { return r.roles, nil }

func (r *stubResolver) Resolve(_ context.Context, user *entity.User) (*rbac.Context, error) {
	r.calls++
	path := "/orders"
	return &rbac.Context{
		Access:      rbacdomain.DetermineAccess(user.Role, user.TenantID, rbacdomain.RoleCodes(r.roles)),
		Roles:       r.roles,
		Permissions: []string{"ORDER_VIEW"},
		Menus:       []rbacdomain.MenuNode{{ID: 5, Name: "Orders", Path: &path, Children: []rbacdomain.MenuNode{}}},
	}, nil
}

type stubRevocations struct {
	revoked map[string]time.Time
}

func (s *stubRevocations) Revoke(_ context.Context, jti string, _ int64, exp time.Time) error {
	s.revoked[jti] = exp
	return nil
}
func (s *stubRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := s.revoked[jti]
	return ok, nil
}

func newTestAuth() (*AuthUseCase, *stubUsers, *stubResolver, *stubRevocations) {
	users := newStubUsers()
	resolver := &stubResolver{roles: []entity.Role{{ID: 1, Code: "MANAGER"}}}
	revs := &stubRevocations{revoked: map[string]time.Time{}}
	uc := NewAuthUseCase(users, resolver, revs, JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "test"}, zerolog.Nop())
	return uc, users, resolver, revs
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_PrimerUsuarioEsAdminSinTenant(t *testing.T) {
	uc, users, _, _ := newTestAuth()
	ctx := context.Background()

	first, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", FullName: "Ana", Password: "password123", TenantID: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", first.Role)
	assert.Nil(t, first.TenantID)

	second, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "b@b.co", FullName: "Beto", Password: "password123", TenantID: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, "USER", second.Role)
	assert.Equal(t, int64(10), *second.TenantID)

	assert.Len(t, users.byID, 2)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _, _ := newTestAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", FullName: "Ana", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.CO", FullName: "Ana", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveTokenYContexto(t *testing.T) {
	uc, _, resolver, _ := newTestAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", FullName: "Ana", Password: "password123"})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 1800, resp.ExpiresIn)
	assert.Equal(t, []string{"MANAGER"}, resp.Roles)
	assert.Equal(t, []string{"ORDER_VIEW"}, resp.Permissions)
	require.Len(t, resp.Menus, 1)
	assert.Equal(t, "Orders", resp.Menus[0].Name)
	assert.NotNil(t, resp.Menus[0].Children)
	assert.Equal(t, 1, resolver.calls)

	claims, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _, _ := newTestAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", FullName: "Ana", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.co", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users, _, _ := newTestAuth()
	ctx := context.Background()
	created, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", FullName: "Ana", Password: "password123"})
	require.NoError(t, err)
	users.byID[created.ID].IsActive = false

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Me / Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_NivelDeAcceso(t *testing.T) {
	uc, users, _, _ := newTestAuth()
	users.byID[1] = &entity.User{ID: 1, Email: "t@b.co", Role: entity.LegacyRoleAdmin, TenantID: ptr(3), IsActive: true}

	me, err := uc.Me(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "tenant_admin", me.AccessLevel)

	_, err = uc.Me(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogout_RevocaJTI(t *testing.T) {
	uc, _, _, revs := newTestAuth()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, uc.Logout(context.Background(), "jti-1", 1, exp))
	assert.Equal(t, exp, revs.revoked["jti-1"])

	assert.ErrorIs(t, uc.Logout(context.Background(), "", 1, exp), domain.ErrInvalidInput)
}

func TestToMenuNodeDTOs_HijosNuncaNil(t *testing.T) {
	out := ToMenuNodeDTOs([]rbacdomain.MenuNode{{ID: 1, Name: "A"}})
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Children)
	assert.Empty(t, out[0].Children)
}

func ptr(v int64) *int64 { return &v }
