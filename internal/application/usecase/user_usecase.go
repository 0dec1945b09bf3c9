package usecase

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

const minPasswordLen = 8

// UserUseCase aplica reglas de negocio para usuarios y el perfil propio.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario desde administración. Rol vacío => USER. Ver Actor.canManage para
// las cuentas con acceso de sistema.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest, actor Actor) (*dto.UserResponse, error) {
	role := entity.LegacyRoleUser
	if in.Role != "" {
		role = entity.LegacyRole(strings.ToUpper(strings.TrimSpace(in.Role)))
		if !role.IsValid() {
			return nil, domain.ErrInvalidInput
		}
	}
	if !actor.canManage(role, in.TenantID) {
		return nil, domain.ErrForbidden
	}
	user, err := NewUserEntity(in.Email, in.FullName, in.Password, in.TenantID, in.PhoneNumber, role)
	if err != nil {
		return nil, err
	}
	user.CreatedBy = actor.Ref()

	existing, err := uc.repo.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// NewUserEntity valida los datos de alta y hashea la contraseña con bcrypt.
func NewUserEntity(email, fullName, password string, tenantID *int64, phone *string, role entity.LegacyRole) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidInput
	}
	fullName = strings.TrimSpace(fullName)
	if len([]rune(fullName)) < 2 || len(password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		TenantID:     tenantID,
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		PhoneNumber:  phone,
		Role:         role,
		IsActive:     true,
	}, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// GetEntity devuelve la entidad completa (la usa el router RBAC para resolver).
func (uc *UserUseCase) GetEntity(ctx context.Context, id int64) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// Update un usuario puede editarse a sí mismo (nombre, teléfono); un admin edita a cualquiera
// que pueda manejar y además tenant, estado y rol. ClearTenant pasa el usuario a organización.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest, actor Actor) (*dto.UserResponse, error) {
	if in.ClearTenant && in.TenantID != nil {
		return nil, domain.ErrInvalidInput
	}
	if !actor.IsAdmin() {
		if actor.ID != id {
			return nil, domain.ErrForbidden
		}
		if in.TenantID != nil || in.ClearTenant || in.IsActive != nil || in.Role != nil {
			return nil, domain.ErrForbidden
		}
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if actor.ID != id && !actor.canManage(user.Role, user.TenantID) {
		return nil, domain.ErrForbidden
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if len([]rune(name)) < 2 {
			return nil, domain.ErrInvalidInput
		}
		user.FullName = name
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.TenantID != nil {
		user.TenantID = in.TenantID
	}
	if in.ClearTenant {
		user.TenantID = nil
	}
	if in.Role != nil {
		role := entity.LegacyRole(strings.ToUpper(strings.TrimSpace(*in.Role)))
		if !role.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		user.Role = role
	}
	// El resultado final (rol + tenant) decide si hay escalamiento a acceso de sistema.
	if actor.IsAdmin() && !actor.canManage(user.Role, user.TenantID) {
		return nil, domain.ErrForbidden
	}
	user.UpdatedBy = actor.Ref()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// UpdatePassword cambio de contraseña iniciado por un admin.
func (uc *UserUseCase) UpdatePassword(ctx context.Context, id int64, in dto.UpdatePasswordRequest, actor Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if len(in.NewPassword) < minPasswordLen {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedBy = actor.Ref()
	return uc.repo.Update(ctx, user)
}

// Delete borrado lógico. Un admin no puede borrarse a sí mismo ni borrar cuentas que no maneja.
func (uc *UserUseCase) Delete(ctx context.Context, id int64, actor Actor) error {
	if actor.ID == id {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !actor.canManage(user.Role, user.TenantID) {
		return domain.ErrForbidden
	}
	return uc.repo.SoftDelete(ctx, id, actor.Ref())
}

// GetProfile perfil del usuario autenticado.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toProfileResponse(user), nil
}

// UpdateProfile solo cambia el nombre completo (mínimo 2 caracteres).
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID int64, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	name := strings.TrimSpace(in.FullName)
	if len([]rune(name)) < 2 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.FullName = name
	user.UpdatedBy = &userID
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

func toProfileResponse(u *entity.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		FullName: u.FullName,
		Email:    u.Email,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}
