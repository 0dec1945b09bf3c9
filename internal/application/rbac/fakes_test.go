package rbac

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Accesos-api/internal/domain"
	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/repository"
)

// memStore implementa RBACRepository y TxRunner en memoria, con FKs y rollback.
type memStore struct {
	users    map[int64]bool
	roles    map[int64]entity.Role
	features map[int64]entity.Feature
	menus    map[int64]entity.Menu
	assoc    assocSet

	failReads error
}

type assocSet struct {
	userRoles    map[int64][]int64
	roleMenus    map[int64][]int64
	roleFeatures map[int64][]int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]bool{},
		roles:    map[int64]entity.Role{},
		features: map[int64]entity.Feature{},
		menus:    map[int64]entity.Menu{},
		assoc: assocSet{
			userRoles:    map[int64][]int64{},
			roleMenus:    map[int64][]int64{},
			roleFeatures: map[int64][]int64{},
		},
	}
}

func (s *memStore) addRole(r entity.Role)       { s.roles[r.ID] = r }
func (s *memStore) addFeature(f entity.Feature) { s.features[f.ID] = f }
func (s *memStore) addMenu(m entity.Menu)       { s.menus[m.ID] = m }

func (a assocSet) clone() assocSet {
	cp := func(m map[int64][]int64) map[int64][]int64 {
		out := make(map[int64][]int64, len(m))
		for k, v := range m {
			out[k] = append([]int64(nil), v...)
		}
		return out
	}
	return assocSet{userRoles: cp(a.userRoles), roleMenus: cp(a.roleMenus), roleFeatures: cp(a.roleFeatures)}
}

// --- RBACRepository ---

func (s *memStore) RolesByUser(_ context.Context, userID int64) ([]entity.Role, error) {
	if s.failReads != nil {
		return nil, s.failReads
	}
	var out []entity.Role
	for _, id := range s.assoc.userRoles[userID] {
		if r, ok := s.roles[id]; ok && !r.IsDeleted {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) ActiveFeatureCodes(_ context.Context) ([]string, error) {
	var out []string
	for _, f := range s.features {
		if f.IsActive && !f.IsDeleted {
			out = append(out, f.Code)
		}
	}
	return out, nil
}

func (s *memStore) FeatureCodesByRoles(_ context.Context, roleIDs []int64) ([]string, error) {
	var out []string
	for _, rid := range roleIDs {
		for _, fid := range s.assoc.roleFeatures[rid] {
			if f, ok := s.features[fid]; ok && f.IsActive && !f.IsDeleted {
				out = append(out, f.Code)
			}
		}
	}
	return out, nil
}

func (s *memStore) ActiveMenus(_ context.Context) ([]entity.Menu, error) {
	var out []entity.Menu
	for _, m := range s.menus {
		if m.IsActive && !m.IsDeleted {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) MenusByRoles(_ context.Context, roleIDs []int64) ([]entity.Menu, error) {
	var out []entity.Menu
	for _, rid := range roleIDs {
		for _, mid := range s.assoc.roleMenus[rid] {
			if m, ok := s.menus[mid]; ok && m.IsActive && !m.IsDeleted {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (s *memStore) FeaturesByRole(_ context.Context, roleID int64) ([]entity.Feature, error) {
	var out []entity.Feature
	for _, fid := range s.assoc.roleFeatures[roleID] {
		if f, ok := s.features[fid]; ok && !f.IsDeleted {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *memStore) MenusByRole(_ context.Context, roleID int64) ([]entity.Menu, error) {
	var out []entity.Menu
	for _, mid := range s.assoc.roleMenus[roleID] {
		if m, ok := s.menus[mid]; ok && !m.IsDeleted {
			out = append(out, m)
		}
	}
	return out, nil
}

// --- TxRunner ---

// Run trabaja sobre una copia de las asociaciones y solo la publica si fn no falla.
func (s *memStore) Run(_ context.Context, fn func(repository.AssignmentRepository) error) error {
	draft := s.assoc.clone()
	if err := fn(&memAssignments{store: s, draft: draft}); err != nil {
		return err
	}
	s.assoc = draft
	return nil
}

type memAssignments struct {
	store *memStore
	draft assocSet
}

func (a *memAssignments) ReplaceUserRoles(_ context.Context, userID int64, roleIDs []int64, _ *int64) error {
	delete(a.draft.userRoles, userID)
	return insertRows(a.draft.userRoles, userID, roleIDs, func(id int64) bool {
		_, ok := a.store.roles[id]
		return ok && a.store.users[userID]
	})
}

func (a *memAssignments) ReplaceRoleMenus(_ context.Context, roleID int64, menuIDs []int64, _ *int64) error {
	delete(a.draft.roleMenus, roleID)
	return insertRows(a.draft.roleMenus, roleID, menuIDs, func(id int64) bool {
		_, okMenu := a.store.menus[id]
		_, okRole := a.store.roles[roleID]
		return okMenu && okRole
	})
}

func (a *memAssignments) ReplaceRoleFeatures(_ context.Context, roleID int64, featureIDs []int64, _ *int64) error {
	delete(a.draft.roleFeatures, roleID)
	return insertRows(a.draft.roleFeatures, roleID, featureIDs, func(id int64) bool {
		_, okFeature := a.store.features[id]
		_, okRole := a.store.roles[roleID]
		return okFeature && okRole
	})
}

func insertRows(table map[int64][]int64, owner int64, targets []int64, exists func(int64) bool) error {
	for _, t := range targets {
		if !exists(t) {
			return fmt.Errorf("insert: %w", domain.ErrConstraintViolation)
		}
		dup := false
		for _, cur := range table[owner] {
			if cur == t {
				dup = true
				break
			}
		}
		if !dup {
			table[owner] = append(table[owner], t)
		}
	}
	return nil
}

func sortedIDs(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
