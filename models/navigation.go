package models

// NavItem is one entry of a dashboard sidebar menu.
type NavItem struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

var buyerNav = []NavItem{
	{Title: "Overview", Path: "/dashboard"},
	{Title: "Profile", Path: "/dashboard/profile"},
	{Title: "Saved Properties", Path: "/dashboard/saved-properties"},
	{Title: "Saved Searches", Path: "/dashboard/saved-searches"},
	{Title: "Bookings", Path: "/dashboard/bookings"},
	{Title: "Chats", Path: "/dashboard/chats"},
	{Title: "Alerts", Path: "/dashboard/alerts"},
}

var agentNav = []NavItem{
	{Title: "Overview", Path: "/dashboard"},
	{Title: "Profile", Path: "/dashboard/profile"},
	{Title: "My Properties", Path: "/dashboard/properties"},
	{Title: "Leads & CRM", Path: "/dashboard/leads"},
	{Title: "Analytics", Path: "/dashboard/analytics"},
	{Title: "Subscription", Path: "/dashboard/subscription"},
	{Title: "Chats", Path: "/dashboard/chats"},
	{Title: "Verification", Path: "/dashboard/kyc"},
}

var builderNav = []NavItem{
	{Title: "Overview", Path: "/dashboard"},
	{Title: "Projects", Path: "/dashboard/projects"},
	{Title: "Inventory", Path: "/dashboard/inventory"},
	{Title: "Team", Path: "/dashboard/team"},
	{Title: "Leads", Path: "/dashboard/leads"},
	{Title: "Analytics", Path: "/dashboard/analytics"},
	{Title: "Subscription", Path: "/dashboard/subscription"},
	{Title: "Verification", Path: "/dashboard/kyc"},
}

var adminNav = []NavItem{
	{Title: "Overview", Path: "/dashboard"},
	{Title: "Sales CRM", Path: "/dashboard/admin/sales"},
	{Title: "Users", Path: "/dashboard/admin/users"},
	{Title: "Properties", Path: "/dashboard/admin/properties"},
	{Title: "Finance", Path: "/dashboard/admin/finance"},
	{Title: "Analytics", Path: "/dashboard/admin/analytics"},
}

// ResolveNavigation picks the sidebar menu for a role. Owner shares the agent
// menu; every unrecognized or empty role falls back to the buyer menu, which is
// the least-privileged one.
func ResolveNavigation(role Role) []NavItem {
	switch {
	case role == RoleBuilder:
		return builderNav
	case role == RoleAdmin:
		return adminNav
	case role == RoleAgent || role == RoleOwner:
		return agentNav
	default:
		return buyerNav
	}
}

// IsActive reports whether the item should be highlighted for the current
// path. The match is exact: /dashboard/properties does not activate /dashboard.
func (n NavItem) IsActive(path string) bool {
	return n.Path == path
}
