package dict

import (
	"errors"
	"fmt"
)

// FieldSpec describes a field to register with a Builder.
type FieldSpec struct {
	Tag      Tag
	Name     string
	Datatype string
	// Enums lists permitted values. Restricted distinguishes "no restriction"
	// (false) from an explicit, possibly empty, list.
	Enums        []FieldEnum
	Restricted   bool
	GroupCounter bool
	// LengthTag points a DATA field at the LENGTH field carrying its size.
	LengthTag   Tag
	AbbrName    string
	Description string
}

// ComponentSpec describes a component to register with a Builder.
type ComponentSpec struct {
	Name     string
	Type     ComponentType
	Items    []LayoutItem
	AbbrName string
	Category string
}

// MessageSpec describes a message to register with a Builder.
type MessageSpec struct {
	MsgType     string
	Name        string
	Category    string
	Items       []LayoutItem
	Description string
}

// ErrBuilderSpent is returned by any Builder method called after Build.
var ErrBuilderSpent = errors.New("dictionary builder already built")

// Builder assembles a Dictionary. Lookups on the builder see every entity
// registered so far, which is what lets layouts reference components that
// were added earlier. A Builder is not safe for concurrent use.
type Builder struct {
	d     *Dictionary
	built bool
}

// NewBuilder starts an empty dictionary for version.
func NewBuilder(version string) *Builder {
	return &Builder{d: newDictionary(version)}
}

// Version returns the version string of the dictionary being built.
func (b *Builder) Version() string { return b.d.version }

// AddDatatype registers name if missing and returns the datatype. It never
// fails for a live builder; repeated names return the existing entry.
func (b *Builder) AddDatatype(name, description string, examples ...string) (*Datatype, error) {
	if b.built {
		return nil, ErrBuilderSpent
	}
	if dt, ok := b.d.datatypeByName[name]; ok {
		return dt, nil
	}
	dt := &Datatype{
		name:        name,
		description: description,
		examples:    append([]string(nil), examples...),
		basetype:    ParseFixDatatype(name),
	}
	b.d.datatypes = append(b.d.datatypes, dt)
	b.d.datatypeByName[name] = dt
	return dt, nil
}

// AddField registers a field, indexing it by tag and name.
//
// Errors:
//   - ErrMalformedInput when the tag is zero or the name is empty.
//   - ErrLookup when the datatype was never registered.
//   - ErrDuplicateKey when the tag or name is already taken.
func (b *Builder) AddField(spec FieldSpec) (*Field, error) {
	if b.built {
		return nil, ErrBuilderSpent
	}
	if !spec.Tag.Valid() {
		return nil, fmt.Errorf("%w: field %q has tag 0", ErrMalformedInput, spec.Name)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: field with tag %d has no name", ErrMalformedInput, spec.Tag)
	}
	dt, ok := b.d.datatypeByName[spec.Datatype]
	if !ok {
		return nil, fmt.Errorf("%w: datatype %q of field %q", ErrLookup, spec.Datatype, spec.Name)
	}
	if _, dup := b.d.fieldByTag[spec.Tag]; dup {
		return nil, &DuplicateKeyError{Kind: "field tag", Key: spec.Tag.String()}
	}
	if _, dup := b.d.fieldByName[spec.Name]; dup {
		return nil, &DuplicateKeyError{Kind: "field name", Key: spec.Name}
	}

	f := &Field{
		tag:          spec.Tag,
		name:         spec.Name,
		datatype:     dt,
		restricted:   spec.Restricted,
		groupCounter: spec.GroupCounter,
		lengthTag:    spec.LengthTag,
		abbrName:     spec.AbbrName,
		description:  spec.Description,
	}
	if spec.Restricted {
		f.enums = append(make([]FieldEnum, 0, len(spec.Enums)), spec.Enums...)
	}
	b.d.fields = append(b.d.fields, f)
	b.d.fieldByTag[f.tag] = f
	b.d.fieldByName[f.name] = f
	return f, nil
}

// AddComponent registers a fully resolved component.
func (b *Builder) AddComponent(spec ComponentSpec) (*Component, error) {
	if b.built {
		return nil, ErrBuilderSpent
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: component without name", ErrMalformedInput)
	}
	if _, dup := b.d.componentByName[spec.Name]; dup {
		return nil, &DuplicateKeyError{Kind: "component", Key: spec.Name}
	}
	c := &Component{
		name:     spec.Name,
		ctype:    spec.Type,
		items:    spec.Items,
		abbrName: spec.AbbrName,
	}
	if spec.Category != "" {
		c.category = b.ensureCategory(spec.Category)
	}
	b.d.components = append(b.d.components, c)
	b.d.componentByName[c.name] = c
	return c, nil
}

// AddMessage registers a message under both its name and msg type.
func (b *Builder) AddMessage(spec MessageSpec) (*Message, error) {
	if b.built {
		return nil, ErrBuilderSpent
	}
	if spec.MsgType == "" || spec.Name == "" {
		return nil, fmt.Errorf("%w: message %q needs both name and msg type", ErrMalformedInput, spec.Name)
	}
	if _, dup := b.d.messageByMsgType[spec.MsgType]; dup {
		return nil, &DuplicateKeyError{Kind: "msg type", Key: spec.MsgType}
	}
	if _, dup := b.d.messageByName[spec.Name]; dup {
		return nil, &DuplicateKeyError{Kind: "message", Key: spec.Name}
	}
	m := &Message{
		msgType:     spec.MsgType,
		name:        spec.Name,
		items:       spec.Items,
		description: spec.Description,
	}
	if spec.Category != "" {
		m.category = b.ensureCategory(spec.Category)
	}
	b.d.messages = append(b.d.messages, m)
	b.d.messageByName[m.name] = m
	b.d.messageByMsgType[m.msgType] = m
	return m, nil
}

// AddCategory registers a category. Section may be empty.
func (b *Builder) AddCategory(name, fixmlFilename, section string) (*Category, error) {
	if b.built {
		return nil, ErrBuilderSpent
	}
	if _, dup := b.d.categoryByName[name]; dup {
		return nil, &DuplicateKeyError{Kind: "category", Key: name}
	}
	c := &Category{name: name, fixmlFilename: fixmlFilename}
	if section != "" {
		s, ok := b.d.sectionByName[section]
		if !ok {
			return nil, &ReferenceError{Kind: "section", Name: section, Context: "category " + name}
		}
		c.section = s
	}
	b.d.categories = append(b.d.categories, c)
	b.d.categoryByName[name] = c
	return c, nil
}

func (b *Builder) ensureCategory(name string) *Category {
	if c, ok := b.d.categoryByName[name]; ok {
		return c
	}
	c := &Category{name: name}
	b.d.categories = append(b.d.categories, c)
	b.d.categoryByName[name] = c
	return c
}

// AddAbbreviation registers the abbreviation of term.
func (b *Builder) AddAbbreviation(term, abbreviation string, isLast bool) (*Abbreviation, error) {
	if b.built {
		return nil, ErrBuilderSpent
	}
	if _, dup := b.d.abbreviationByTerm[term]; dup {
		return nil, &DuplicateKeyError{Kind: "abbreviation", Key: term}
	}
	a := &Abbreviation{abbreviation: abbreviation, term: term, isLast: isLast}
	b.d.abbreviations = append(b.d.abbreviations, a)
	b.d.abbreviationByTerm[term] = a
	return a, nil
}

// AddSection registers a documentation section.
func (b *Builder) AddSection(name, description string) (*Section, error) {
	if b.built {
		return nil, ErrBuilderSpent
	}
	if _, dup := b.d.sectionByName[name]; dup {
		return nil, &DuplicateKeyError{Kind: "section", Key: name}
	}
	s := &Section{name: name, description: description}
	b.d.sections = append(b.d.sections, s)
	b.d.sectionByName[name] = s
	return s, nil
}

// DatatypeByName looks up a datatype registered so far.
func (b *Builder) DatatypeByName(name string) (*Datatype, bool) { return b.d.DatatypeByName(name) }

// FieldByName looks up a field registered so far.
func (b *Builder) FieldByName(name string) (*Field, bool) { return b.d.FieldByName(name) }

// FieldByTag looks up a field registered so far.
func (b *Builder) FieldByTag(tag Tag) (*Field, bool) { return b.d.FieldByTag(tag) }

// ComponentByName looks up a component registered so far.
func (b *Builder) ComponentByName(name string) (*Component, bool) {
	return b.d.ComponentByName(name)
}

// Build finalizes the dictionary. The builder cannot be used afterwards.
func (b *Builder) Build() (*Dictionary, error) {
	if b.built {
		return nil, ErrBuilderSpent
	}
	b.built = true
	d := b.d
	b.d = nil

	if h, ok := d.componentByName[StandardHeader]; ok {
		collectTags(h.items, d.headerTags)
	}
	if t, ok := d.componentByName[StandardTrailer]; ok {
		collectTags(t.items, d.trailerTags)
	}
	return d, nil
}

func collectTags(items []LayoutItem, into map[Tag]struct{}) {
	Walk(items, func(item LayoutItem, _ int) bool {
		switch item.kind {
		case ItemField:
			into[item.field.tag] = struct{}{}
		case ItemGroup:
			into[item.group.counter.tag] = struct{}{}
		}
		return true
	})
}
