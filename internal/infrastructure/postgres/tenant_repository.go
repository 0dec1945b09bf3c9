package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

const tenantColumns = `id, code, name, description, is_active, is_deleted,
	created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	db Querier
}

// NewTenantRepository construye el adaptador de persistencia para tenants.
func NewTenantRepository(db Querier) *TenantRepo {
	return &TenantRepo{db: db}
}

// Create persiste un tenant y completa ID y CreatedAt.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (code, name, description, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, t.Code, t.Name, t.Description, t.IsActive, t.CreatedBy).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

func (r *TenantRepo) GetByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1 AND is_deleted = FALSE`
	return r.getOne(ctx, query, id)
}

func (r *TenantRepo) GetByCode(ctx context.Context, code string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE code = $1 AND is_deleted = FALSE`
	return r.getOne(ctx, query, code)
}

// List devuelve los tenants no borrados ordenados por id.
func (r *TenantRepo) List(ctx context.Context) ([]*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE is_deleted = FALSE ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Tenant, 0)
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables; UpdatedAt lo fija la DB.
func (r *TenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	query := `
		UPDATE tenants SET code = $2, name = $3, description = $4, is_active = $5,
			updated_at = NOW(), updated_by = $6
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, t.ID, t.Code, t.Name, t.Description, t.IsActive, t.UpdatedBy).
		Scan(&t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

// SoftDelete marca el tenant como borrado.
func (r *TenantRepo) SoftDelete(ctx context.Context, id int64, deletedBy *int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tenants SET is_deleted = TRUE, deleted_at = NOW(), deleted_by = $2
		WHERE id = $1 AND is_deleted = FALSE`, id, deletedBy)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TenantRepo) getOne(ctx context.Context, query string, arg any) (*entity.Tenant, error) {
	t, err := scanTenant(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	err := row.Scan(&t.ID, &t.Code, &t.Name, &t.Description, &t.IsActive, &t.IsDeleted,
		&t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy, &t.DeletedAt, &t.DeletedBy)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
