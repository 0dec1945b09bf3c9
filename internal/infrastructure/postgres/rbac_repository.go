package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

var (
	_ repository.RBACRepository       = (*RBACRepo)(nil)
	_ repository.AssignmentRepository = (*RBACRepo)(nil)
)

// RBACRepo lecturas de resolución y escrituras sobre user_roles, role_menus y role_features.
// Las escrituras borran e insertan; deben ejecutarse con un Querier transaccional (ver TxRunner).
type RBACRepo struct {
	db Querier
}

func NewRBACRepository(db Querier) *RBACRepo {
	return &RBACRepo{db: db}
}

// RolesByUser no filtra is_active del rol: un rol desactivado sigue aportando permisos
// hasta que se borre o se desasigne.
func (r *RBACRepo) RolesByUser(ctx context.Context, userID int64) ([]entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1 AND r.is_deleted = FALSE
		ORDER BY r.id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("roles by user: %w", err)
	}
	defer rows.Close()

	roles := make([]entity.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}

func (r *RBACRepo) ActiveFeatureCodes(ctx context.Context) ([]string, error) {
	return r.codes(ctx, `
		SELECT f.code FROM features f
		WHERE f.is_deleted = FALSE AND f.is_active = TRUE
		ORDER BY f.code`)
}

func (r *RBACRepo) FeatureCodesByRoles(ctx context.Context, roleIDs []int64) ([]string, error) {
	if len(roleIDs) == 0 {
		return []string{}, nil
	}
	return r.codes(ctx, `
		SELECT DISTINCT f.code FROM features f
		JOIN role_features rf ON rf.feature_id = f.id
		WHERE rf.role_id = ANY($1) AND f.is_deleted = FALSE AND f.is_active = TRUE
		ORDER BY f.code`, roleIDs)
}

func (r *RBACRepo) ActiveMenus(ctx context.Context) ([]entity.Menu, error) {
	return r.menus(ctx, `SELECT `+menuColumns+` FROM menus m
		WHERE m.is_deleted = FALSE AND m.is_active = TRUE
		ORDER BY m.sort_order, m.id`)
}

// MenusByRoles usa EXISTS para no repetir un menú alcanzable por varios roles.
func (r *RBACRepo) MenusByRoles(ctx context.Context, roleIDs []int64) ([]entity.Menu, error) {
	if len(roleIDs) == 0 {
		return []entity.Menu{}, nil
	}
	return r.menus(ctx, `SELECT `+menuColumns+` FROM menus m
		WHERE m.is_deleted = FALSE AND m.is_active = TRUE
			AND EXISTS (SELECT 1 FROM role_menus rm WHERE rm.menu_id = m.id AND rm.role_id = ANY($1))
		ORDER BY m.sort_order, m.id`, roleIDs)
}

// FeaturesByRole features no borradas asignadas al rol (activas o no).
func (r *RBACRepo) FeaturesByRole(ctx context.Context, roleID int64) ([]entity.Feature, error) {
	query := `SELECT ` + featureColumns + ` FROM features f
		JOIN role_features rf ON rf.feature_id = f.id
		WHERE rf.role_id = $1 AND f.is_deleted = FALSE
		ORDER BY f.code`
	rows, err := r.db.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("features by role: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Feature, 0)
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		list = append(list, *f)
	}
	return list, rows.Err()
}

// MenusByRole menús no borrados asignados al rol (activos o no).
func (r *RBACRepo) MenusByRole(ctx context.Context, roleID int64) ([]entity.Menu, error) {
	return r.menus(ctx, `SELECT `+menuColumns+` FROM menus m
		JOIN role_menus rm ON rm.menu_id = m.id
		WHERE rm.role_id = $1 AND m.is_deleted = FALSE
		ORDER BY m.sort_order, m.id`, roleID)
}

// ReplaceUserRoles reemplaza el conjunto completo de roles del usuario.
func (r *RBACRepo) ReplaceUserRoles(ctx context.Context, userID int64, roleIDs []int64, assignedBy *int64) error {
	return r.replace(ctx, "user_roles",
		`DELETE FROM user_roles WHERE user_id = $1`,
		`INSERT INTO user_roles (user_id, role_id, assigned_by)
			SELECT $1::BIGINT, t, $3::BIGINT FROM UNNEST($2::BIGINT[]) AS t
			ON CONFLICT DO NOTHING`,
		userID, roleIDs, assignedBy)
}

func (r *RBACRepo) ReplaceRoleMenus(ctx context.Context, roleID int64, menuIDs []int64, grantedBy *int64) error {
	return r.replace(ctx, "role_menus",
		`DELETE FROM role_menus WHERE role_id = $1`,
		`INSERT INTO role_menus (role_id, menu_id, granted_by)
			SELECT $1::BIGINT, t, $3::BIGINT FROM UNNEST($2::BIGINT[]) AS t
			ON CONFLICT DO NOTHING`,
		roleID, menuIDs, grantedBy)
}

func (r *RBACRepo) ReplaceRoleFeatures(ctx context.Context, roleID int64, featureIDs []int64, grantedBy *int64) error {
	return r.replace(ctx, "role_features",
		`DELETE FROM role_features WHERE role_id = $1`,
		`INSERT INTO role_features (role_id, feature_id, granted_by)
			SELECT $1::BIGINT, t, $3::BIGINT FROM UNNEST($2::BIGINT[]) AS t
			ON CONFLICT DO NOTHING`,
		roleID, featureIDs, grantedBy)
}

// replace borra las filas del dueño y luego inserta los destinos en un solo INSERT.
// Un FK inválido (23503) se reporta como ErrConstraintViolation; la tx del llamador hace rollback.
func (r *RBACRepo) replace(ctx context.Context, table, del, ins string, ownerID int64, targetIDs []int64, actorID *int64) error {
	if _, err := r.db.Exec(ctx, del, ownerID); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if len(targetIDs) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, ins, ownerID, targetIDs, actorID); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert %s: %w", table, domain.ErrConstraintViolation)
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *RBACRepo) codes(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("feature codes: %w", err)
	}
	defer rows.Close()

	codes := make([]string, 0)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan feature code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *RBACRepo) menus(ctx context.Context, query string, args ...any) ([]entity.Menu, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("menus: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Menu, 0)
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}
