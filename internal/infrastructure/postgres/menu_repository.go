package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

const menuColumns = `m.id, m.tenant_id, m.parent_id, m.name, m.path, m.icon, m.sort_order, m.level,
	m.is_active, m.is_deleted, m.created_at, m.created_by, m.updated_at, m.updated_by, m.deleted_at, m.deleted_by`

// MenuRepo implementación del puerto MenuRepository sobre PostgreSQL.
type MenuRepo struct {
	db Querier
}

func NewMenuRepository(db Querier) *MenuRepo {
	return &MenuRepo{db: db}
}

// Create persiste un menú. Nivel y padre inconsistentes los rechaza ck_menus_hierarchy.
func (r *MenuRepo) Create(ctx context.Context, m *entity.Menu) error {
	query := `
		INSERT INTO menus (tenant_id, parent_id, name, path, icon, sort_order, level, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		m.TenantID, m.ParentID, m.Name, m.Path, m.Icon, m.SortOrder, m.Level, m.IsActive, m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return mapMenuWriteError("insert menu", err)
	}
	return nil
}

func (r *MenuRepo) GetByID(ctx context.Context, id int64) (*entity.Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus m WHERE m.id = $1 AND m.is_deleted = FALSE`
	m, err := scanMenu(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return m, nil
}

func (r *MenuRepo) List(ctx context.Context, tenantID *int64) ([]*entity.Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus m
		WHERE m.is_deleted = FALSE AND ($1::BIGINT IS NULL OR m.tenant_id = $1 OR m.tenant_id IS NULL)
		ORDER BY m.sort_order, m.id`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Menu, 0)
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MenuRepo) Update(ctx context.Context, m *entity.Menu) error {
	query := `
		UPDATE menus SET tenant_id = $2, parent_id = $3, name = $4, path = $5, icon = $6, sort_order = $7,
			level = $8, is_active = $9, updated_at = NOW(), updated_by = $10
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		m.ID, m.TenantID, m.ParentID, m.Name, m.Path, m.Icon, m.SortOrder, m.Level, m.IsActive, m.UpdatedBy,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return mapMenuWriteError("update menu", err)
	}
	return nil
}

func (r *MenuRepo) SoftDelete(ctx context.Context, id int64, deletedBy *int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menus SET is_deleted = TRUE, deleted_at = NOW(), deleted_by = $2
		WHERE id = $1 AND is_deleted = FALSE`, id, deletedBy)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapMenuWriteError(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return domain.ErrConstraintViolation
	case isCheckViolation(err):
		return domain.ErrInvalidInput
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func scanMenu(row pgx.Row) (*entity.Menu, error) {
	var m entity.Menu
	err := row.Scan(&m.ID, &m.TenantID, &m.ParentID, &m.Name, &m.Path, &m.Icon, &m.SortOrder, &m.Level,
		&m.IsActive, &m.IsDeleted, &m.CreatedAt, &m.CreatedBy, &m.UpdatedAt, &m.UpdatedBy, &m.DeletedAt, &m.DeletedBy)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
