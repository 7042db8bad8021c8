package models

// LayoutRow is a layout item flattened for storage.
//
// Path locates the enclosing group: "" for top level items, "3" for items of
// the group at position 3, "3.1" for a group nested inside it, and so on.
type LayoutRow struct {
	OwnerKind string // "message" or "component"
	OwnerName string
	Path      string
	Position  int
	Kind      string // "field", "component" or "group"
	Name      string
	Required  bool
}
