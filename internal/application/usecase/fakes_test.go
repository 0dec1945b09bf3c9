package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*memUserRepo)(nil)
	_ repository.RoleRepository = (*memRoleRepo)(nil)
	_ repository.MenuRepository = (*memMenuRepo)(nil)
)

type memUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[int64]*entity.User{}} }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && !u.IsDeleted {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Count(context.Context) (int64, error) { return int64(len(r.users)), nil }

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok && !u.IsDeleted {
			out = append(out, u)
		}
	}
	if offset >= len(out) {
		return []*entity.User{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) SoftDelete(_ context.Context, id int64, deletedBy *int64) error {
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return domain.ErrUserNotFound
	}
	u.IsDeleted = true
	u.DeletedBy = deletedBy
	return nil
}

type memRoleRepo struct {
	roles  map[int64]*entity.Role
	nextID int64
}

func newMemRoleRepo() *memRoleRepo { return &memRoleRepo{roles: map[int64]*entity.Role{}} }

func (r *memRoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.nextID++
	role.ID = r.nextID
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r *memRoleRepo) GetByID(_ context.Context, id int64) (*entity.Role, error) {
	role, ok := r.roles[id]
	if !ok || role.IsDeleted {
		return nil, nil
	}
	cp := *role
	return &cp, nil
}

func (r *memRoleRepo) GetByCode(_ context.Context, tenantID *int64, code string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Code == code && !role.IsDeleted && sameTenant(role.TenantID, tenantID) {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRoleRepo) List(_ context.Context, tenantID *int64) ([]*entity.Role, error) {
	out := make([]*entity.Role, 0)
	for id := int64(1); id <= r.nextID; id++ {
		role, ok := r.roles[id]
		if !ok || role.IsDeleted {
			continue
		}
		if tenantID == nil || role.TenantID == nil || *role.TenantID == *tenantID {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *memRoleRepo) Update(_ context.Context, role *entity.Role) error {
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r *memRoleRepo) SoftDelete(_ context.Context, id int64, _ *int64) error {
	role, ok := r.roles[id]
	if !ok || role.IsDeleted {
		return domain.ErrNotFound
	}
	role.IsDeleted = true
	return nil
}

type memMenuRepo struct {
	menus  map[int64]*entity.Menu
	nextID int64
}

func newMemMenuRepo() *memMenuRepo { return &memMenuRepo{menus: map[int64]*entity.Menu{}} }

func (r *memMenuRepo) Create(_ context.Context, m *entity.Menu) error {
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.menus[m.ID] = &cp
	return nil
}

func (r *memMenuRepo) GetByID(_ context.Context, id int64) (*entity.Menu, error) {
	m, ok := r.menus[id]
	if !ok || m.IsDeleted {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMenuRepo) List(_ context.Context, tenantID *int64) ([]*entity.Menu, error) {
	out := make([]*entity.Menu, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if m, ok := r.menus[id]; ok && !m.IsDeleted && (tenantID == nil || m.VisibleFor(tenantID)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMenuRepo) Update(_ context.Context, m *entity.Menu) error {
	cp := *m
	r.menus[m.ID] = &cp
	return nil
}

func (r *memMenuRepo) SoftDelete(_ context.Context, id int64, _ *int64) error {
	m, ok := r.menus[id]
	if !ok || m.IsDeleted {
		return domain.ErrNotFound
	}
	m.IsDeleted = true
	return nil
}

func sameTenant(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
