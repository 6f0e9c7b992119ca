package restaurant

import "github.com/kailas-cloud/menuboard/internal/db"

// Index field aliases.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldAddress     = "address"
	fieldNameKey     = "name_key"
	fieldLocation    = "location"
	fieldTags        = "tags"
	fieldType        = "type"
	fieldVisibility  = "visibility"
	fieldOwner       = "owner_id"
	fieldCreatedAt   = "created_at"
)

// textFields are searched by free-text queries.
var textFields = []string{fieldName, fieldDescription, fieldAddress}

// buildIndex returns the FT index over restaurant JSON documents.
func buildIndex(name, prefix string) (*db.IndexDefinition, error) {
	return db.NewIndex(name).
		OnJSON().
		Prefix(prefix).
		Text("$.name").As(fieldName).Weight(2).
		Text("$.description").As(fieldDescription).
		Text("$.address").As(fieldAddress).
		Tag("$.name_key").As(fieldNameKey).
		Geo("$.geo").As(fieldLocation).
		Tag("$.tags[*]").As(fieldTags).
		Tag("$.type").As(fieldType).
		Tag("$.visibility").As(fieldVisibility).
		Tag("$.owner_id").As(fieldOwner).
		Numeric("$.created_at").As(fieldCreatedAt).Sortable().
		Build()
}
