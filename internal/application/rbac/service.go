package rbac

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	rbacdomain "github.com/jhoicas/Accesos-api/internal/domain/rbac"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

// Asociaciones, usadas como etiqueta en logs y métricas.
const (
	AssocUserRoles    = "user_roles"
	AssocRoleMenus    = "role_menus"
	AssocRoleFeatures = "role_features"
)

// Context resultado de resolver a un usuario: nivel de acceso, roles, permisos y árbol de menús.
type Context struct {
	Access      rbacdomain.AccessLevel
	Roles       []entity.Role
	Permissions []string
	Menus       []rbacdomain.MenuNode
}

// RoleCodes códigos de los roles resueltos.
func (c *Context) RoleCodes() []string {
	return rbacdomain.RoleCodes(c.Roles)
}

// Service resuelve permisos y menús efectivos y reemplaza asignaciones.
// No cachea: cada llamada lee el estado actual de la DB.
type Service struct {
	repo     repository.RBACRepository
	tx       TxRunner
	recorder Recorder
	log      zerolog.Logger
}

// NewService construye el servicio. recorder puede ser nil.
func NewService(repo repository.RBACRepository, tx TxRunner, recorder Recorder, log zerolog.Logger) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		repo:     repo,
		tx:       tx,
		recorder: recorder,
		log:      log.With().Str("component", "rbac").Logger(),
	}
}

// ResolveRoles roles no borrados asignados al usuario. Vacío es válido.
func (s *Service) ResolveRoles(ctx context.Context, userID int64) ([]entity.Role, error) {
	defer s.recorder.ObserveStage("roles", time.Now())
	roles, err := s.repo.RolesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolver roles: %w", err)
	}
	if roles == nil {
		roles = []entity.Role{}
	}
	return roles, nil
}

// ResolvePermissions códigos de features efectivos del usuario, ordenados.
func (s *Service) ResolvePermissions(ctx context.Context, user *entity.User) ([]string, error) {
	roles, err := s.ResolveRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.permissions(ctx, accessFor(user, roles), roles)
}

// ResolveMenus árbol de menús visible para el usuario.
func (s *Service) ResolveMenus(ctx context.Context, user *entity.User) ([]rbacdomain.MenuNode, error) {
	roles, err := s.ResolveRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.menus(ctx, user, accessFor(user, roles), roles)
}

// Resolve calcula el contexto completo con una sola resolución de roles y de nivel de acceso.
// Es lo que usa el login.
func (s *Service) Resolve(ctx context.Context, user *entity.User) (*Context, error) {
	roles, err := s.ResolveRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	access := accessFor(user, roles)

	perms, err := s.permissions(ctx, access, roles)
	if err != nil {
		return nil, err
	}
	menus, err := s.menus(ctx, user, access, roles)
	if err != nil {
		return nil, err
	}

	s.recorder.ObserveResolution(access.String())
	s.log.Debug().
		Int64("user_id", user.ID).
		Str("access_level", access.String()).
		Int("roles", len(roles)).
		Int("permissions", len(perms)).
		Int("menus", len(menus)).
		Msg("contexto RBAC resuelto")

	return &Context{Access: access, Roles: roles, Permissions: perms, Menus: menus}, nil
}

func (s *Service) permissions(ctx context.Context, access rbacdomain.AccessLevel, roles []entity.Role) ([]string, error) {
	defer s.recorder.ObserveStage("permissions", time.Now())

	var (
		codes []string
		err   error
	)
	if access.IsSuperAdmin() {
		codes, err = s.repo.ActiveFeatureCodes(ctx)
	} else if len(roles) > 0 {
		codes, err = s.repo.FeatureCodesByRoles(ctx, roleIDs(roles))
	}
	if err != nil {
		return nil, fmt.Errorf("resolver permisos: %w", err)
	}
	return uniqueSorted(codes), nil
}

func (s *Service) menus(ctx context.Context, user *entity.User, access rbacdomain.AccessLevel, roles []entity.Role) ([]rbacdomain.MenuNode, error) {
	defer s.recorder.ObserveStage("menus", time.Now())

	var (
		candidates []entity.Menu
		err        error
	)
	if access.IsSuperAdmin() {
		candidates, err = s.repo.ActiveMenus(ctx)
	} else if len(roles) > 0 {
		candidates, err = s.repo.MenusByRoles(ctx, roleIDs(roles))
	}
	if err != nil {
		return nil, fmt.Errorf("resolver menús: %w", err)
	}
	visible := rbacdomain.FilterMenusByTenant(candidates, user.TenantID)
	return rbacdomain.BuildMenuTree(visible), nil
}

// SetUserRoles reemplaza los roles del usuario. IDs repetidos cuentan una vez.
// Un rol inexistente aborta la operación sin cambios (domain.ErrConstraintViolation).
func (s *Service) SetUserRoles(ctx context.Context, userID int64, roleIDs []int64, actorID *int64) error {
	ids := uniqueIDs(roleIDs)
	err := s.tx.Run(ctx, func(a repository.AssignmentRepository) error {
		return a.ReplaceUserRoles(ctx, userID, ids, actorID)
	})
	s.afterReplace(AssocUserRoles, "user_id", userID, "role_ids", ids, err)
	return err
}

// SetRoleMenus reemplaza los menús del rol.
func (s *Service) SetRoleMenus(ctx context.Context, roleID int64, menuIDs []int64, actorID *int64) error {
	ids := uniqueIDs(menuIDs)
	err := s.tx.Run(ctx, func(a repository.AssignmentRepository) error {
		return a.ReplaceRoleMenus(ctx, roleID, ids, actorID)
	})
	s.afterReplace(AssocRoleMenus, "role_id", roleID, "menu_ids", ids, err)
	return err
}

// SetRoleFeatures reemplaza las features del rol.
func (s *Service) SetRoleFeatures(ctx context.Context, roleID int64, featureIDs []int64, actorID *int64) error {
	ids := uniqueIDs(featureIDs)
	err := s.tx.Run(ctx, func(a repository.AssignmentRepository) error {
		return a.ReplaceRoleFeatures(ctx, roleID, ids, actorID)
	})
	s.afterReplace(AssocRoleFeatures, "role_id", roleID, "feature_ids", ids, err)
	return err
}

// RoleMenus menús no borrados asignados al rol.
func (s *Service) RoleMenus(ctx context.Context, roleID int64) ([]entity.Menu, error) {
	menus, err := s.repo.MenusByRole(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("menús del rol: %w", err)
	}
	return menus, nil
}

// RoleFeatures features no borradas asignadas al rol.
func (s *Service) RoleFeatures(ctx context.Context, roleID int64) ([]entity.Feature, error) {
	features, err := s.repo.FeaturesByRole(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("features del rol: %w", err)
	}
	return features, nil
}

func (s *Service) afterReplace(assoc, ownerKey string, ownerID int64, targetsKey string, targets []int64, err error) {
	s.recorder.ObserveAssignment(assoc, err)
	if err != nil {
		s.log.Warn().Err(err).Str("association", assoc).Int64(ownerKey, ownerID).Ints64(targetsKey, targets).
			Msg("reemplazo de asignaciones fallido")
		return
	}
	s.log.Info().Str("association", assoc).Int64(ownerKey, ownerID).Ints64(targetsKey, targets).
		Msg("asignaciones reemplazadas")
}

func accessFor(user *entity.User, roles []entity.Role) rbacdomain.AccessLevel {
	return rbacdomain.DetermineAccess(user.Role, user.TenantID, rbacdomain.RoleCodes(roles))
}

func roleIDs(roles []entity.Role) []int64 {
	ids := make([]int64, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	return ids
}

// uniqueIDs conserva el orden de primera aparición.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func uniqueSorted(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
