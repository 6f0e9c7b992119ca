package menuitem

import "github.com/kailas-cloud/menuboard/internal/db"

// Index field aliases.
const (
	fieldRestaurant   = "restaurant_id"
	fieldName         = "name"
	fieldDescription  = "description"
	fieldCategoryText = "category_text"
	fieldCategory     = "category"
	fieldPrice        = "price"
	fieldCreatedAt    = "created_at"
)

// categorySeparator splits the category TAG; categories may contain commas.
const categorySeparator = "|"

var textFields = []string{fieldName, fieldDescription, fieldCategoryText}

// buildIndex returns the FT index over menu item JSON documents.
func buildIndex(name, prefix string) (*db.IndexDefinition, error) {
	return db.NewIndex(name).
		OnJSON().
		Prefix(prefix).
		Tag("$.restaurant_id").As(fieldRestaurant).
		Text("$.name").As(fieldName).Weight(2).
		Text("$.description").As(fieldDescription).
		Text("$.category").As(fieldCategoryText).
		TagWithOpts("$.category", categorySeparator, true).As(fieldCategory).
		Numeric("$.price").As(fieldPrice).Sortable().
		Numeric("$.created_at").As(fieldCreatedAt).Sortable().
		Build()
}
