package dict

// ItemKind distinguishes the three variants a LayoutItem can hold.
type ItemKind uint8

const (
	ItemField ItemKind = iota + 1
	ItemComponent
	ItemGroup
)

func (k ItemKind) String() string {
	switch k {
	case ItemField:
		return "field"
	case ItemComponent:
		return "component"
	case ItemGroup:
		return "group"
	default:
		return "unknown"
	}
}

// LayoutItem is one positioned element of a component or message body.
// Exactly one of Field, Component or Group is non-nil, matching Kind.
type LayoutItem struct {
	required  bool
	kind      ItemKind
	field     *Field
	component *Component
	group     *Group
}

// FieldItem returns a layout item referencing f.
func FieldItem(f *Field, required bool) LayoutItem {
	return LayoutItem{required: required, kind: ItemField, field: f}
}

// ComponentItem returns a layout item referencing c.
func ComponentItem(c *Component, required bool) LayoutItem {
	return LayoutItem{required: required, kind: ItemComponent, component: c}
}

// GroupItem returns a repeating group introduced by counter. The group owns items.
func GroupItem(counter *Field, items []LayoutItem, required bool) LayoutItem {
	return LayoutItem{
		required: required,
		kind:     ItemGroup,
		group:    &Group{counter: counter, items: items},
	}
}

func (li LayoutItem) Required() bool        { return li.required }
func (li LayoutItem) Kind() ItemKind        { return li.kind }
func (li LayoutItem) Field() *Field         { return li.field }
func (li LayoutItem) Component() *Component { return li.component }
func (li LayoutItem) Group() *Group         { return li.group }

// Name returns the field name, component name or group counter name.
func (li LayoutItem) Name() string {
	switch li.kind {
	case ItemField:
		return li.field.name
	case ItemComponent:
		return li.component.name
	case ItemGroup:
		return li.group.counter.name
	}
	return ""
}

// Group is a repeatable block introduced by a counter field.
type Group struct {
	counter *Field
	items   []LayoutItem
}

// Counter returns the NumInGroup field that precedes the repetitions.
func (g *Group) Counter() *Field { return g.counter }

// Items returns the layout of one repetition.
func (g *Group) Items() []LayoutItem { return append([]LayoutItem(nil), g.items...) }

// Delimiter returns the first field of a repetition, which marks the start of
// every entry on the wire.
func (g *Group) Delimiter() (*Field, bool) {
	return firstField(g.items)
}

func firstField(items []LayoutItem) (*Field, bool) {
	for _, item := range items {
		switch item.kind {
		case ItemField:
			return item.field, true
		case ItemGroup:
			return item.group.counter, true
		case ItemComponent:
			if f, ok := firstField(item.component.items); ok {
				return f, true
			}
		}
	}
	return nil, false
}

// ComponentKind is the FIXML classification of a component.
type ComponentKind uint8

const (
	ComponentBlock ComponentKind = iota
	ComponentXML
	ComponentMessage
)

// ComponentType carries FIXML-only attributes. It does not affect wire
// semantics.
type ComponentType struct {
	Kind      ComponentKind
	Repeating bool
	Implicit  bool
	Optimized bool
}

// Component is a named, reusable block of layout items.
type Component struct {
	name     string
	ctype    ComponentType
	items    []LayoutItem
	abbrName string
	category *Category
}

func (c *Component) Name() string        { return c.name }
func (c *Component) Kind() ComponentType { return c.ctype }
func (c *Component) AbbrName() string    { return c.abbrName }

// Category returns the documentation category of c, or nil.
func (c *Component) Category() *Category { return c.category }

// Items returns the body definition of c.
func (c *Component) Items() []LayoutItem { return append([]LayoutItem(nil), c.items...) }

// IsGroup reports whether c is a repeating-group block.
func (c *Component) IsGroup() bool {
	return c.ctype.Kind == ComponentBlock && c.ctype.Repeating
}

// ContainsField reports whether tag appears directly in the layout of c.
func (c *Component) ContainsField(tag Tag) bool {
	for _, item := range c.items {
		if item.kind == ItemField && item.field.tag == tag {
			return true
		}
	}
	return false
}

// Message is a top-level block identified on the wire by its msg type.
type Message struct {
	msgType     string
	name        string
	category    *Category
	items       []LayoutItem
	description string
}

func (m *Message) MsgType() string     { return m.msgType }
func (m *Message) Name() string        { return m.name }
func (m *Message) Description() string { return m.description }

// Category returns the category hint (e.g. "admin", "app"), or nil.
func (m *Message) Category() *Category { return m.category }

// Layout returns the body definition of m.
func (m *Message) Layout() []LayoutItem { return append([]LayoutItem(nil), m.items...) }

// GroupInfo returns the tag of the first field in the group introduced by
// counter, searching nested groups and components.
func (m *Message) GroupInfo(counter Tag) (Tag, bool) {
	return groupDelimiter(m.items, counter)
}

func groupDelimiter(items []LayoutItem, counter Tag) (Tag, bool) {
	for _, item := range items {
		switch item.kind {
		case ItemGroup:
			if item.group.counter.tag == counter {
				if f, ok := item.group.Delimiter(); ok {
					return f.tag, true
				}
				return 0, false
			}
			if t, ok := groupDelimiter(item.group.items, counter); ok {
				return t, true
			}
		case ItemComponent:
			if t, ok := groupDelimiter(item.component.items, counter); ok {
				return t, true
			}
		}
	}
	return 0, false
}

// Walk calls fn for every layout item reachable from items, depth first,
// descending into group contents and referenced components. Returning false
// from fn stops the walk.
func Walk(items []LayoutItem, fn func(item LayoutItem, depth int) bool) {
	walk(items, 0, fn)
}

func walk(items []LayoutItem, depth int, fn func(LayoutItem, int) bool) bool {
	for _, item := range items {
		if !fn(item, depth) {
			return false
		}
		switch item.kind {
		case ItemGroup:
			if !walk(item.group.items, depth+1, fn) {
				return false
			}
		case ItemComponent:
			if !walk(item.component.items, depth+1, fn) {
				return false
			}
		}
	}
	return true
}
