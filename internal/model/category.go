package model

// Category is one label from the fixed spending category set.
type Category string

// The closed set of spending categories. CategoryOther is the universal
// fallback for anything the classifier cannot place.
const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryHealthcare    Category = "Healthcare"
	CategoryOther         Category = "Other"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryBills,
		CategoryHealthcare,
		CategoryOther,
	}
}

// IsValid reports whether c is a member of the fixed category set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryShopping,
		CategoryEntertainment, CategoryBills, CategoryHealthcare, CategoryOther:
		return true
	}
	return false
}

// ParseCategory returns the category matching s, or CategoryOther with
// ok=false when s is not a member of the set. Hosted classifier output is
// untrusted and must pass through here before being stored.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if c.IsValid() {
		return c, true
	}
	return CategoryOther, false
}
