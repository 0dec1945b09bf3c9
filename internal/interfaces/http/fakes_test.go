package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

// store en memoria que cubre todos los puertos que usa el router.
type store struct {
	mu           sync.Mutex
	seq          int64
	users        map[int64]*entity.User
	tenants      map[int64]*entity.Tenant
	roles        map[int64]*entity.Role
	features     map[int64]*entity.Feature
	menus        map[int64]*entity.Menu
	userRoles    map[int64][]int64
	roleMenus    map[int64][]int64
	roleFeatures map[int64][]int64
	revoked      map[string]time.Time
}

func newStore() *store {
	return &store{
		users:        map[int64]*entity.User{},
		tenants:      map[int64]*entity.Tenant{},
		roles:        map[int64]*entity.Role{},
		features:     map[int64]*entity.Feature{},
		menus:        map[int64]*entity.Menu{},
		userRoles:    map[int64][]int64{},
		roleMenus:    map[int64][]int64{},
		roleFeatures: map[int64][]int64{},
		revoked:      map[string]time.Time{},
	}
}

func (s *store) nextID() int64 {
	s.seq++
	return s.seq
}

// ── users ────────────────────────────────────────────────────────────────────

type userRepo struct{ *store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID()
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && !u.IsDeleted {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range r.users {
		if !u.IsDeleted {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []*entity.User{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r userRepo) SoftDelete(_ context.Context, id int64, _ *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return domain.ErrUserNotFound
	}
	u.IsDeleted = true
	return nil
}

// ── tenants ──────────────────────────────────────────────────────────────────

type tenantRepo struct{ *store }

func (r tenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID()
	cp := *t
	r.tenants[t.ID] = &cp
	return nil
}

func (r tenantRepo) GetByID(_ context.Context, id int64) (*entity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok || t.IsDeleted {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r tenantRepo) GetByCode(_ context.Context, code string) (*entity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.Code == code && !t.IsDeleted {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r tenantRepo) List(context.Context) ([]*entity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Tenant, 0)
	for _, t := range r.tenants {
		if !t.IsDeleted {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r tenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tenants[t.ID] = &cp
	return nil
}

func (r tenantRepo) SoftDelete(_ context.Context, id int64, _ *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok || t.IsDeleted {
		return domain.ErrNotFound
	}
	t.IsDeleted = true
	return nil
}

// ── roles ────────────────────────────────────────────────────────────────────

type roleRepo struct{ *store }

func (r roleRepo) Create(_ context.Context, role *entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role.ID = r.nextID()
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r roleRepo) GetByID(_ context.Context, id int64) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok || role.IsDeleted {
		return nil, nil
	}
	cp := *role
	return &cp, nil
}

func (r roleRepo) GetByCode(_ context.Context, tenantID *int64, code string) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.Code == code && !role.IsDeleted && sameTenant(role.TenantID, tenantID) {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r roleRepo) List(_ context.Context, tenantID *int64) ([]*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Role, 0)
	for _, role := range r.roles {
		if role.IsDeleted {
			continue
		}
		if tenantID == nil || role.TenantID == nil || *role.TenantID == *tenantID {
			cp := *role
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r roleRepo) Update(_ context.Context, role *entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r roleRepo) SoftDelete(_ context.Context, id int64, _ *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok || role.IsDeleted {
		return domain.ErrNotFound
	}
	role.IsDeleted = true
	return nil
}

// ── features ─────────────────────────────────────────────────────────────────

type featureRepo struct{ *store }

func (r featureRepo) Create(_ context.Context, f *entity.Feature) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = r.nextID()
	cp := *f
	r.features[f.ID] = &cp
	return nil
}

func (r featureRepo) GetByID(_ context.Context, id int64) (*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.features[id]
	if !ok || f.IsDeleted {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r featureRepo) GetByCode(_ context.Context, code string) (*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.features {
		if f.Code == code && !f.IsDeleted {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r featureRepo) List(context.Context) ([]*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Feature, 0)
	for _, f := range r.features {
		if !f.IsDeleted {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r featureRepo) Update(_ context.Context, f *entity.Feature) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.features[f.ID] = &cp
	return nil
}

func (r featureRepo) SoftDelete(_ context.Context, id int64, _ *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.features[id]
	if !ok || f.IsDeleted {
		return domain.ErrNotFound
	}
	f.IsDeleted = true
	return nil
}

// ── menus ────────────────────────────────────────────────────────────────────

type menuRepo struct{ *store }

func (r menuRepo) Create(_ context.Context, m *entity.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID()
	cp := *m
	r.menus[m.ID] = &cp
	return nil
}

func (r menuRepo) GetByID(_ context.Context, id int64) (*entity.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[id]
	if !ok || m.IsDeleted {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r menuRepo) List(_ context.Context, tenantID *int64) ([]*entity.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Menu, 0)
	for _, m := range r.menus {
		if m.IsDeleted {
			continue
		}
		if tenantID == nil || m.TenantID == nil || *m.TenantID == *tenantID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r menuRepo) Update(_ context.Context, m *entity.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.menus[m.ID] = &cp
	return nil
}

func (r menuRepo) SoftDelete(_ context.Context, id int64, _ *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[id]
	if !ok || m.IsDeleted {
		return domain.ErrNotFound
	}
	m.IsDeleted = true
	return nil
}

// ── rbac (lecturas, escrituras y tx) ─────────────────────────────────────────

type rbacRepo struct{ *store }

func (r rbacRepo) Run(ctx context.Context, fn func(repository.AssignmentRepository) error) error {
	return fn(r)
}

func (r rbacRepo) RolesByUser(_ context.Context, userID int64) ([]entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Role, 0)
	for _, id := range r.userRoles[userID] {
		if role, ok := r.roles[id]; ok && !role.IsDeleted {
			out = append(out, *role)
		}
	}
	return out, nil
}

func (r rbacRepo) ActiveFeatureCodes(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0)
	for _, f := range r.features {
		if f.IsActive && !f.IsDeleted {
			out = append(out, f.Code)
		}
	}
	return out, nil
}

func (r rbacRepo) FeatureCodesByRoles(_ context.Context, roleIDs []int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, rid := range roleIDs {
		for _, fid := range r.roleFeatures[rid] {
			f, ok := r.features[fid]
			if !ok || !f.IsActive || f.IsDeleted {
				continue
			}
			if _, dup := seen[f.Code]; !dup {
				seen[f.Code] = struct{}{}
				out = append(out, f.Code)
			}
		}
	}
	return out, nil
}

func (r rbacRepo) ActiveMenus(context.Context) ([]entity.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Menu, 0)
	for _, m := range r.menus {
		if m.IsActive && !m.IsDeleted {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r rbacRepo) MenusByRoles(_ context.Context, roleIDs []int64) ([]entity.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[int64]struct{}{}
	out := make([]entity.Menu, 0)
	for _, rid := range roleIDs {
		for _, mid := range r.roleMenus[rid] {
			m, ok := r.menus[mid]
			if !ok || !m.IsActive || m.IsDeleted {
				continue
			}
			if _, dup := seen[mid]; !dup {
				seen[mid] = struct{}{}
				out = append(out, *m)
			}
		}
	}
	return out, nil
}

func (r rbacRepo) FeaturesByRole(_ context.Context, roleID int64) ([]entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Feature, 0)
	for _, id := range r.roleFeatures[roleID] {
		if f, ok := r.features[id]; ok && !f.IsDeleted {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r rbacRepo) MenusByRole(_ context.Context, roleID int64) ([]entity.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Menu, 0)
	for _, id := range r.roleMenus[roleID] {
		if m, ok := r.menus[id]; ok && !m.IsDeleted {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r rbacRepo) ReplaceUserRoles(_ context.Context, userID int64, roleIDs []int64, _ *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range roleIDs {
		if _, ok := r.roles[id]; !ok {
			return domain.ErrConstraintViolation
		}
	}
	r.userRoles[userID] = append([]int64(nil), roleIDs...)
	return nil
}

func (r rbacRepo) ReplaceRoleMenus(_ context.Context, roleID int64, menuIDs []int64, _ *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range menuIDs {
		if _, ok := r.menus[id]; !ok {
			return domain.ErrConstraintViolation
		}
	}
	r.roleMenus[roleID] = append([]int64(nil), menuIDs...)
	return nil
}

func (r rbacRepo) ReplaceRoleFeatures(_ context.Context, roleID int64, featureIDs []int64, _ *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range featureIDs {
		if _, ok := r.features[id]; !ok {
			return domain.ErrConstraintViolation
		}
	}
	r.roleFeatures[roleID] = append([]int64(nil), featureIDs...)
	return nil
}

// ── tokens revocados ─────────────────────────────────────────────────────────

type revocations struct{ *store }

func (r revocations) Revoke(_ context.Context, jti string, _ int64, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = expiresAt
	return nil
}

func (r revocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok, nil
}

func sameTenant(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
