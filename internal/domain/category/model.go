package category

// Category is a fixed activity classification with display color and icon.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Unknown is returned for lookups of ids outside the catalog.
var Unknown = Category{Name: "Unknown", Color: "#ccc"}

// Defaults is the category set seeded at startup. It is not user-editable.
var Defaults = []Category{
	{ID: "1", Name: "Deep Work", Color: "#ef4444", Icon: "Briefcase"},
	{ID: "2", Name: "Learning", Color: "#f59e0b", Icon: "BookOpen"},
	{ID: "3", Name: "Routine", Color: "#3b82f6", Icon: "CheckSquare"},
	{ID: "4", Name: "Health", Color: "#10b981", Icon: "Activity"},
	{ID: "5", Name: "Leisure", Color: "#8b5cf6", Icon: "Coffee"},
	{ID: "6", Name: "Sleep", Color: "#64748b", Icon: "Moon"},
}

// Catalog is an ordered, read-only set of categories.
type Catalog []Category

// Lookup returns the category with the given id, or Unknown. The bool reports
// whether the id was found.
func (c Catalog) Lookup(id string) (Category, bool) {
	for _, cat := range c {
		if cat.ID == id {
			return cat, true
		}
	}
	return Unknown, false
}

// Name returns the display name for id, "Unknown" for dangling references.
func (c Catalog) Name(id string) string {
	cat, _ := c.Lookup(id)
	return cat.Name
}

// First returns the first category id, used as the default selection.
func (c Catalog) First() string {
	if len(c) == 0 {
		return ""
	}
	return c[0].ID
}
