package menuitem

// ListFilter narrows a restaurant's menu. Empty fields match everything.
type ListFilter struct {
	Category string
	Search   string
	Limit    int
}
