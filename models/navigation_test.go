package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNavigationFallback(t *testing.T) {
	buyerMenu := ResolveNavigation(RoleBuyer)

	// Tenant, empty and unknown roles all resolve to the identical buyer
	// menu: default to least privilege.
	for _, role := range []Role{RoleBuyer, RoleTenant, Role(""), Role("unknown")} {
		assert.Equal(t, buyerMenu, ResolveNavigation(role), "role %q", role)
	}
}

func TestResolveNavigationOwnerSharesAgentMenu(t *testing.T) {
	assert.Equal(t, ResolveNavigation(RoleAgent), ResolveNavigation(RoleOwner))
}

func TestResolveNavigationDistinctMenus(t *testing.T) {
	buyer := ResolveNavigation(RoleBuyer)
	agent := ResolveNavigation(RoleAgent)
	builder := ResolveNavigation(RoleBuilder)
	admin := ResolveNavigation(RoleAdmin)

	assert.NotEqual(t, buyer, agent)
	assert.NotEqual(t, agent, builder)
	assert.NotEqual(t, builder, admin)

	assert.Contains(t, builder, NavItem{Title: "Projects", Path: "/dashboard/projects"})
	assert.Contains(t, admin, NavItem{Title: "Users", Path: "/dashboard/admin/users"})
}

func TestNavItemActiveIsExactMatch(t *testing.T) {
	overview := NavItem{Title: "Overview", Path: "/dashboard"}

	assert.True(t, overview.IsActive("/dashboard"))
	assert.False(t, overview.IsActive("/dashboard/properties"))
	assert.False(t, overview.IsActive("/dashboard/"))
}
