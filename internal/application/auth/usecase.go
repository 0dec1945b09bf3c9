package auth

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/application/rbac"
	"github.com/jhoicas/Accesos-api/internal/application/usecase"
	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	rbacdomain "github.com/jhoicas/Accesos-api/internal/domain/rbac"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
	"github.com/jhoicas/Accesos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// ContextResolver resuelve roles, permisos y menús (implementado por rbac.Service).
type ContextResolver interface {
	Resolve(ctx context.Context, user *entity.User) (*rbac.Context, error)
	ResolveRoles(ctx context.Context, userID int64) ([]entity.Role, error)
}

// AuthUseCase casos de uso de autenticación: registro, login, me y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	resolver ContextResolver
	revoked  repository.TokenRevocationStore
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	resolver ContextResolver,
	revoked repository.TokenRevocationStore,
	jwtCfg JWTConfig,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		resolver: resolver,
		revoked:  revoked,
		jwtCfg:   jwtCfg,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

// RegisterUser registro público. El primer usuario del sistema queda como ADMIN sin tenant;
// los siguientes como USER.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := entity.LegacyRoleUser
	tenantID := in.TenantID
	if count == 0 {
		role = entity.LegacyRoleAdmin
		tenantID = nil
	}

	user, err := usecase.NewUserEntity(in.Email, in.FullName, in.Password, tenantID, in.PhoneNumber, role)
	if err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info().Int64("user_id", user.ID).Str("role", string(role)).Bool("first_user", count == 0).
		Msg("usuario registrado")
	return usecase.ToUserResponse(user), nil
}

// Login verifica email/password, resuelve el contexto RBAC y emite el JWT.
// Email inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Warn().Msg("login con email inexistente")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Int64("user_id", user.ID).Msg("login con password inválido")
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	rc, err := uc.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     string(user.Role),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("user_id", user.ID).Str("access_level", rc.Access.String()).Msg("login exitoso")
	return &dto.LoginResponse{
		Token:       token,
		TokenType:   "bearer",
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
		User:        *usecase.ToUserResponse(user),
		Roles:       rc.RoleCodes(),
		Permissions: rc.Permissions,
		Menus:       ToMenuNodeDTOs(rc.Menus),
	}, nil
}

// Me datos del usuario autenticado con su nivel de acceso actual.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	roles, err := uc.resolver.ResolveRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	access := rbacdomain.DetermineAccess(user.Role, user.TenantID, rbacdomain.RoleCodes(roles))
	return &dto.MeResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        string(user.Role),
		TenantID:    user.TenantID,
		AccessLevel: access.String(),
	}, nil
}

// Logout revoca el token por su jti hasta que expire.
func (uc *AuthUseCase) Logout(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	if jti == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.revoked.Revoke(ctx, jti, userID, expiresAt); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", userID).Msg("token revocado")
	return nil
}

// ToMenuNodeDTOs convierte el árbol de dominio al DTO de salida.
func ToMenuNodeDTOs(nodes []rbacdomain.MenuNode) []dto.MenuNodeDTO {
	out := make([]dto.MenuNodeDTO, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.MenuNodeDTO{
			ID:       n.ID,
			Name:     n.Name,
			Path:     n.Path,
			Icon:     n.Icon,
			Children: ToMenuNodeDTOs(n.Children),
		})
	}
	return out
}
