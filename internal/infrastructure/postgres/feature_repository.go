package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

var _ repository.FeatureRepository = (*FeatureRepo)(nil)

const featureColumns = `f.id, f.code, f.name, f.description, f.category, f.is_active, f.is_deleted,
	f.created_at, f.created_by, f.updated_at, f.updated_by, f.deleted_at, f.deleted_by`

// FeatureRepo implementación del puerto FeatureRepository sobre PostgreSQL.
type FeatureRepo struct {
	db Querier
}

func NewFeatureRepository(db Querier) *FeatureRepo {
	return &FeatureRepo{db: db}
}

func (r *FeatureRepo) Create(ctx context.Context, f *entity.Feature) error {
	query := `
		INSERT INTO features (code, name, description, category, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, f.Code, f.Name, f.Description, f.Category, f.IsActive, f.CreatedBy).
		Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert feature: %w", err)
	}
	return nil
}

func (r *FeatureRepo) GetByID(ctx context.Context, id int64) (*entity.Feature, error) {
	query := `SELECT ` + featureColumns + ` FROM features f WHERE f.id = $1 AND f.is_deleted = FALSE`
	return r.getOne(ctx, query, id)
}

func (r *FeatureRepo) GetByCode(ctx context.Context, code string) (*entity.Feature, error) {
	query := `SELECT ` + featureColumns + ` FROM features f WHERE f.code = $1 AND f.is_deleted = FALSE`
	return r.getOne(ctx, query, code)
}

func (r *FeatureRepo) List(ctx context.Context) ([]*entity.Feature, error) {
	query := `SELECT ` + featureColumns + ` FROM features f WHERE f.is_deleted = FALSE ORDER BY f.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Feature, 0)
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *FeatureRepo) Update(ctx context.Context, f *entity.Feature) error {
	query := `
		UPDATE features SET code = $2, name = $3, description = $4, category = $5, is_active = $6,
			updated_at = NOW(), updated_by = $7
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, f.ID, f.Code, f.Name, f.Description, f.Category, f.IsActive, f.UpdatedBy).
		Scan(&f.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update feature: %w", err)
	}
	return nil
}

func (r *FeatureRepo) SoftDelete(ctx context.Context, id int64, deletedBy *int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE features SET is_deleted = TRUE, deleted_at = NOW(), deleted_by = $2
		WHERE id = $1 AND is_deleted = FALSE`, id, deletedBy)
	if err != nil {
		return fmt.Errorf("delete feature: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FeatureRepo) getOne(ctx context.Context, query string, arg any) (*entity.Feature, error) {
	f, err := scanFeature(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feature: %w", err)
	}
	return f, nil
}

func scanFeature(row pgx.Row) (*entity.Feature, error) {
	var f entity.Feature
	err := row.Scan(&f.ID, &f.Code, &f.Name, &f.Description, &f.Category, &f.IsActive, &f.IsDeleted,
		&f.CreatedAt, &f.CreatedBy, &f.UpdatedAt, &f.UpdatedBy, &f.DeletedAt, &f.DeletedBy)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
