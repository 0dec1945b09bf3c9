package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Accesos-api/internal/domain/entity"
	"github.com/jhoicas/Accesos-api/internal/domain/rbac"
)

func ptr(v int64) *int64 { return &v }

func TestDetermineAccess(t *testing.T) {
	tenant := ptr(10)

	cases := []struct {
		name   string
		legacy entity.LegacyRole
		tenant *int64
		codes  []string
		want   rbac.AccessLevel
	}{
		{"super admin legacy con tenant", entity.LegacyRoleSuperAdmin, tenant, nil, rbac.SystemAdmin},
		{"super admin legacy sin tenant", entity.LegacyRoleSuperAdmin, nil, nil, rbac.SystemAdmin},
		{"admin sin tenant es admin del sistema", entity.LegacyRoleAdmin, nil, nil, rbac.SystemAdmin},
		{"admin con tenant es admin del tenant", entity.LegacyRoleAdmin, tenant, []string{"MANAGER"}, rbac.TenantAdmin},
		{"codigo reservado en minusculas", entity.LegacyRoleUser, tenant, []string{"manager", "system_admin"}, rbac.SystemAdmin},
		{"codigo reservado mixto", entity.LegacyRoleAdmin, tenant, []string{"System_Admin"}, rbac.SystemAdmin},
		{"usuario sin roles", entity.LegacyRoleUser, nil, nil, rbac.RegularUser},
		{"usuario con roles comunes", entity.LegacyRoleUser, tenant, []string{"MANAGER", "SYSTEM_ADMINS"}, rbac.RegularUser},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rbac.DetermineAccess(tc.legacy, tc.tenant, tc.codes)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want == rbac.SystemAdmin, got.IsSuperAdmin())
		})
	}
}

func TestAccessLevel_String(t *testing.T) {
	assert.Equal(t, "system_admin", rbac.SystemAdmin.String())
	assert.Equal(t, "tenant_admin", rbac.TenantAdmin.String())
	assert.Equal(t, "regular_user", rbac.RegularUser.String())
}

func TestParseLegacyRole(t *testing.T) {
	assert.Equal(t, entity.LegacyRoleSuperAdmin, entity.ParseLegacyRole("SUPER_ADMIN"))
	assert.Equal(t, entity.LegacyRoleAdmin, entity.ParseLegacyRole("admin"))
	assert.Equal(t, entity.LegacyRoleUser, entity.ParseLegacyRole("user"))
	assert.Equal(t, entity.LegacyRoleUser, entity.ParseLegacyRole("desconocido"), "valores desconocidos caen en USER")
}
