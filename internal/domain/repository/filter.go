package repository

// ListFilter carries the optional query-string filters of list endpoints.
// SortBy accepts "field" or "-field" for descending; columns are whitelisted
// in the adapter. Deleted switches the default listing to the deleted set.
type ListFilter struct {
	Search   string
	Category string
	Location string
	Type     string
	Status   string
	SortBy   string
	Deleted  bool
	Limit    int
	Offset   int
}
