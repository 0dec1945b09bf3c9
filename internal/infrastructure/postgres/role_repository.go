package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

const roleColumns = `r.id, r.tenant_id, r.code, r.name, r.description, r.is_system, r.is_active, r.is_deleted,
	r.created_at, r.created_by, r.updated_at, r.updated_by, r.deleted_at, r.deleted_by`

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	db Querier
}

func NewRoleRepository(db Querier) *RoleRepo {
	return &RoleRepo{db: db}
}

// Create persiste un rol. (tenant_id, code) es único: uq_roles_tenant_code.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	query := `
		INSERT INTO roles (tenant_id, code, name, description, is_system, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		role.TenantID, role.Code, role.Name, role.Description, role.IsSystem, role.IsActive, role.CreatedBy,
	).Scan(&role.ID, &role.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConstraintViolation
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles r WHERE r.id = $1 AND r.is_deleted = FALSE`
	role, err := scanRole(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// GetByCode usa IS NOT DISTINCT FROM para que tenant nil compare contra roles globales.
func (r *RoleRepo) GetByCode(ctx context.Context, tenantID *int64, code string) (*entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles r
		WHERE r.tenant_id IS NOT DISTINCT FROM $1 AND r.code = $2 AND r.is_deleted = FALSE`
	role, err := scanRole(r.db.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by code: %w", err)
	}
	return role, nil
}

// List sin tenant devuelve todos los roles; con tenant, los del tenant más los globales.
func (r *RoleRepo) List(ctx context.Context, tenantID *int64) ([]*entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles r
		WHERE r.is_deleted = FALSE AND ($1::BIGINT IS NULL OR r.tenant_id = $1 OR r.tenant_id IS NULL)
		ORDER BY r.id`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	query := `
		UPDATE roles SET tenant_id = $2, code = $3, name = $4, description = $5, is_system = $6, is_active = $7,
			updated_at = NOW(), updated_by = $8
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		role.ID, role.TenantID, role.Code, role.Name, role.Description, role.IsSystem, role.IsActive, role.UpdatedBy,
	).Scan(&role.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConstraintViolation
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// SoftDelete marca el rol como borrado; sus asignaciones quedan pero dejan de resolverse.
func (r *RoleRepo) SoftDelete(ctx context.Context, id int64, deletedBy *int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE roles SET is_deleted = TRUE, deleted_at = NOW(), deleted_by = $2
		WHERE id = $1 AND is_deleted = FALSE`, id, deletedBy)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRole(row pgx.Row) (*entity.Role, error) {
	var role entity.Role
	err := row.Scan(&role.ID, &role.TenantID, &role.Code, &role.Name, &role.Description, &role.IsSystem,
		&role.IsActive, &role.IsDeleted, &role.CreatedAt, &role.CreatedBy, &role.UpdatedAt, &role.UpdatedBy,
		&role.DeletedAt, &role.DeletedBy)
	if err != nil {
		return nil, err
	}
	return &role, nil
}
