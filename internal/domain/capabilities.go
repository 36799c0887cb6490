package domain

// Capability names a worker may be granted. Admin accounts implicitly hold
// every capability and are never checked against this list.
const (
	CapViewContacts   = "view_contacts"
	CapManageContacts = "manage_contacts"
	CapViewProducts   = "view_products"
	CapManageProducts = "manage_products"
	CapViewExpenses   = "view_expenses"
	CapManageExpenses = "manage_expenses"
	CapViewSales      = "view_sales"
	CapManageSales    = "manage_sales"
)

// AllCapabilities lists every grantable capability, used to validate
// permission updates from the management routes.
var AllCapabilities = []string{
	CapViewContacts,
	CapManageContacts,
	CapViewProducts,
	CapManageProducts,
	CapViewExpenses,
	CapManageExpenses,
	CapViewSales,
	CapManageSales,
}

// ValidCapability reports whether name is a known capability.
func ValidCapability(name string) bool {
	for _, c := range AllCapabilities {
		if c == name {
			return true
		}
	}
	return false
}
