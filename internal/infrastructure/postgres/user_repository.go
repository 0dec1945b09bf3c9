package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, tenant_id, email, full_name, password_hash, phone_number, role, is_active, is_deleted,
	created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (tenant_id, email, full_name, password_hash, phone_number, role, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		u.TenantID, u.Email, u.FullName, u.PasswordHash, u.PhoneNumber, string(u.Role), u.IsActive, u.CreatedBy,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConstraintViolation
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario no borrado por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_deleted = FALSE`
	return r.getOne(ctx, query, id)
}

// GetByEmail obtiene un usuario no borrado por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_deleted = FALSE LIMIT 1`
	return r.getOne(ctx, query, email)
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// List lista usuarios no borrados con paginación.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_deleted = FALSE ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza un usuario (incluye password_hash, que el caso de uso ya trae hasheado).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET tenant_id = $2, email = $3, full_name = $4, password_hash = $5, phone_number = $6,
			role = $7, is_active = $8, updated_at = NOW(), updated_by = $9
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		u.ID, u.TenantID, u.Email, u.FullName, u.PasswordHash, u.PhoneNumber, string(u.Role), u.IsActive, u.UpdatedBy,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConstraintViolation
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SoftDelete marca el usuario como borrado e inactivo.
func (r *UserRepo) SoftDelete(ctx context.Context, id int64, deletedBy *int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET is_deleted = TRUE, is_active = FALSE, deleted_at = NOW(), deleted_by = $2
		WHERE id = $1 AND is_deleted = FALSE`, id, deletedBy)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u    entity.User
		role string
	)
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.FullName, &u.PasswordHash, &u.PhoneNumber, &role,
		&u.IsActive, &u.IsDeleted, &u.CreatedAt, &u.CreatedBy, &u.UpdatedAt, &u.UpdatedBy, &u.DeletedAt, &u.DeletedBy)
	if err != nil {
		return nil, err
	}
	u.Role = entity.ParseLegacyRole(role)
	return &u, nil
}
