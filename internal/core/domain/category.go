package domain

// Nature classifies a category for budgeting bucket splits.
type Nature string

const (
	NatureMust Nature = "MUST"
	NatureNeed Nature = "NEED"
	NatureWant Nature = "WANT"
)

// Category groups records. A category with a non-empty ParentCategoryID is a
// subcategory; reporting rolls subcategory totals up to the parent unless the
// caller asks for the subcategory breakdown.
type Category struct {
	CategoryID       string `json:"categoryID"` // Primary Key (UUID)
	Name             string `json:"name"`
	Nature           Nature `json:"nature"`
	Color            string `json:"color"`
	ParentCategoryID string `json:"parentCategoryID"` // Empty for top-level categories
	AuditFields
}
