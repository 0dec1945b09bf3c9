package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Accesos-api/internal/application/dto"
	"github.com/jhoicas/Accesos-api/internal/domain"
)

func TestRoleCreate_CodigoUnicoPorTenant(t *testing.T) {
	uc := NewRoleUseCase(newMemRoleRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateRoleRequest{TenantID: ptr(10), Code: "MANAGER", Name: "Manager"}, nil)
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateRoleRequest{TenantID: ptr(10), Code: "MANAGER", Name: "Otro"}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateRoleRequest{TenantID: ptr(20), Code: "MANAGER", Name: "Manager T20"}, nil)
	assert.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateRoleRequest{Code: "MANAGER", Name: "Global"}, nil)
	assert.NoError(t, err)
}

func TestRoleList_TenantIncluyeGlobales(t *testing.T) {
	uc := NewRoleUseCase(newMemRoleRepo())
	ctx := context.Background()
	for _, in := range []dto.CreateRoleRequest{
		{Code: "GLOBAL", Name: "Global"},
		{TenantID: ptr(10), Code: "T10", Name: "T10"},
		{TenantID: ptr(20), Code: "T20", Name: "T20"},
	} {
		_, err := uc.Create(ctx, in, nil)
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, ptr(10))
	require.NoError(t, err)
	codes := []string{}
	for _, r := range list {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{"GLOBAL", "T10"}, codes)

	all, err := uc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRoleCreate_ActivoPorDefecto(t *testing.T) {
	resp, err := NewRoleUseCase(newMemRoleRepo()).Create(context.Background(), dto.CreateRoleRequest{Code: "X", Name: "X"}, nil)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
}

func TestMenuCreate_ReglasDeJerarquia(t *testing.T) {
	repo := newMemMenuRepo()
	uc := NewMenuUseCase(repo)
	ctx := context.Background()

	root, err := uc.Create(ctx, dto.CreateMenuRequest{Name: "Ventas", Level: 1}, nil)
	require.NoError(t, err)

	child, err := uc.Create(ctx, dto.CreateMenuRequest{Name: "Pedidos", Level: 2, ParentID: &root.ID}, nil)
	require.NoError(t, err)

	cases := []struct {
		name string
		in   dto.CreateMenuRequest
	}{
		{"nivel 1 con padre", dto.CreateMenuRequest{Name: "X", Level: 1, ParentID: &root.ID}},
		{"nivel 2 sin padre", dto.CreateMenuRequest{Name: "X", Level: 2}},
		{"padre de nivel 2", dto.CreateMenuRequest{Name: "X", Level: 2, ParentID: &child.ID}},
		{"padre inexistente", dto.CreateMenuRequest{Name: "X", Level: 2, ParentID: ptr(999)}},
		{"nivel 3", dto.CreateMenuRequest{Name: "X", Level: 3}},
		{"nombre vacío", dto.CreateMenuRequest{Name: "  ", Level: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestMenuMissingIDs(t *testing.T) {
	repo := newMemMenuRepo()
	uc := NewMenuUseCase(repo)
	ctx := context.Background()

	m, err := uc.Create(ctx, dto.CreateMenuRequest{Name: "Inicio", Level: 1}, nil)
	require.NoError(t, err)
	deleted, err := uc.Create(ctx, dto.CreateMenuRequest{Name: "Viejo", Level: 1}, nil)
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, deleted.ID, nil))

	missing, err := uc.MissingIDs(ctx, []int64{m.ID, deleted.ID, 77})
	require.NoError(t, err)
	assert.Equal(t, []int64{deleted.ID, 77}, missing)
}

func TestMenuUpdate_CamposParciales(t *testing.T) {
	uc := NewMenuUseCase(newMemMenuRepo())
	ctx := context.Background()

	m, err := uc.Create(ctx, dto.CreateMenuRequest{Name: "Inicio", Level: 1, Path: strPtr("/")}, nil)
	require.NoError(t, err)

	order := 5
	resp, err := uc.Update(ctx, m.ID, dto.UpdateMenuRequest{SortOrder: &order, IsActive: boolPtr(false)}, ptr(1))
	require.NoError(t, err)
	assert.Equal(t, "Inicio", resp.Name)
	assert.Equal(t, 5, resp.SortOrder)
	assert.False(t, resp.IsActive)
	assert.Equal(t, "/", *resp.Path)

	_, err = uc.Update(ctx, 999, dto.UpdateMenuRequest{}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
