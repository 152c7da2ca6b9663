package models

// Default categories, in display order.
const (
	CategoryFood          = "Food & Dining"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills & Utilities"
	CategoryStationery    = "Stationery"
	CategoryHealth        = "Health & Wellness"
	CategoryGifts         = "Gifts"
	CategoryIncome        = "Income"
	CategoryMiscellaneous = "Miscellaneous"

	// CategorySalary is the credit default when Income is not configured.
	CategorySalary = "Salary"
	// CategoryGroceries only exists in the voice keyword table.
	CategoryGroceries = "Groceries"
)

// DefaultCategories is the fixed, non-removable category list.
var DefaultCategories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryStationery,
	CategoryHealth,
	CategoryGifts,
	CategoryIncome,
	CategoryMiscellaneous,
}

// IsDefaultCategory reports whether name is one of DefaultCategories.
func IsDefaultCategory(name string) bool {
	for _, c := range DefaultCategories {
		if c == name {
			return true
		}
	}
	return false
}

// UnknownParty is the party name used when nothing could be extracted.
const UnknownParty = "UNKNOWN"

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
	PermissionReport    = 0644
)
