// Package dict holds the normalized, immutable reference-data model of one
// FIX protocol version: datatypes, fields, components, messages and the
// documentation-only entities around them.
//
// A Dictionary is produced once by a Builder and never mutated afterwards, so
// it can be shared by any number of goroutines without locking. Handles
// returned from lookups (*Field, *Message, ...) point into the dictionary's
// own storage and remain valid for as long as they are referenced.
package dict

import (
	"fmt"
	"strings"
)

// Names of the synthetic components built from the schema header and trailer.
const (
	StandardHeader  = "StandardHeader"
	StandardTrailer = "StandardTrailer"
)

// FieldLocation is where a field is expected inside a message.
type FieldLocation uint8

const (
	LocationBody FieldLocation = iota
	LocationHeader
	LocationTrailer
)

func (l FieldLocation) String() string {
	switch l {
	case LocationHeader:
		return "header"
	case LocationTrailer:
		return "trailer"
	default:
		return "body"
	}
}

// Dictionary is the assembled reference-data model for one protocol version.
type Dictionary struct {
	version string

	datatypes     []*Datatype
	fields        []*Field
	components    []*Component
	messages      []*Message
	abbreviations []*Abbreviation
	categories    []*Category
	sections      []*Section

	datatypeByName     map[string]*Datatype
	fieldByTag         map[Tag]*Field
	fieldByName        map[string]*Field
	componentByName    map[string]*Component
	messageByName      map[string]*Message
	messageByMsgType   map[string]*Message
	abbreviationByTerm map[string]*Abbreviation
	categoryByName     map[string]*Category
	sectionByName      map[string]*Section

	headerTags  map[Tag]struct{}
	trailerTags map[Tag]struct{}
}

func newDictionary(version string) *Dictionary {
	return &Dictionary{
		version:            version,
		datatypeByName:     make(map[string]*Datatype),
		fieldByTag:         make(map[Tag]*Field),
		fieldByName:        make(map[string]*Field),
		componentByName:    make(map[string]*Component),
		messageByName:      make(map[string]*Message),
		messageByMsgType:   make(map[string]*Message),
		abbreviationByTerm: make(map[string]*Abbreviation),
		categoryByName:     make(map[string]*Category),
		sectionByName:      make(map[string]*Section),
		headerTags:         make(map[Tag]struct{}),
		trailerTags:        make(map[Tag]struct{}),
	}
}

// Version returns the version string, e.g. "FIX.4.4" or "FIX.5.0-SP2".
func (d *Dictionary) Version() string { return d.version }

// FieldByTag returns the field identified by tag.
func (d *Dictionary) FieldByTag(tag Tag) (*Field, bool) {
	f, ok := d.fieldByTag[tag]
	return f, ok
}

// FieldByName returns the field called name.
func (d *Dictionary) FieldByName(name string) (*Field, bool) {
	f, ok := d.fieldByName[name]
	return f, ok
}

// MessageByName returns the message called name, e.g. "Heartbeat".
func (d *Dictionary) MessageByName(name string) (*Message, bool) {
	m, ok := d.messageByName[name]
	return m, ok
}

// MessageByMsgType returns the message with the given wire msg type, e.g. "0".
func (d *Dictionary) MessageByMsgType(msgType string) (*Message, bool) {
	m, ok := d.messageByMsgType[msgType]
	return m, ok
}

// ComponentByName returns the component called name, including the
// synthetic StandardHeader and StandardTrailer.
func (d *Dictionary) ComponentByName(name string) (*Component, bool) {
	c, ok := d.componentByName[name]
	return c, ok
}

// DatatypeByName returns the datatype called name.
func (d *Dictionary) DatatypeByName(name string) (*Datatype, bool) {
	dt, ok := d.datatypeByName[name]
	return dt, ok
}

// AbbreviationFor returns the documented abbreviation of term.
func (d *Dictionary) AbbreviationFor(term string) (*Abbreviation, bool) {
	a, ok := d.abbreviationByTerm[term]
	return a, ok
}

// CategoryByName returns the category called name.
func (d *Dictionary) CategoryByName(name string) (*Category, bool) {
	c, ok := d.categoryByName[name]
	return c, ok
}

// SectionByName returns the section called name.
func (d *Dictionary) SectionByName(name string) (*Section, bool) {
	s, ok := d.sectionByName[name]
	return s, ok
}

// Fields returns all fields in source order.
func (d *Dictionary) Fields() []*Field { return append([]*Field(nil), d.fields...) }

// Messages returns all messages in source order.
func (d *Dictionary) Messages() []*Message { return append([]*Message(nil), d.messages...) }

// Components returns all components in dependency order: a component always
// appears after every component it references.
func (d *Dictionary) Components() []*Component {
	return append([]*Component(nil), d.components...)
}

// Datatypes returns all datatypes in first-seen order.
func (d *Dictionary) Datatypes() []*Datatype { return append([]*Datatype(nil), d.datatypes...) }

func (d *Dictionary) Categories() []*Category { return append([]*Category(nil), d.categories...) }

func (d *Dictionary) Abbreviations() []*Abbreviation {
	return append([]*Abbreviation(nil), d.abbreviations...)
}

func (d *Dictionary) Sections() []*Section { return append([]*Section(nil), d.sections...) }

// Header returns the StandardHeader component.
func (d *Dictionary) Header() (*Component, bool) { return d.ComponentByName(StandardHeader) }

// Trailer returns the StandardTrailer component.
func (d *Dictionary) Trailer() (*Component, bool) { return d.ComponentByName(StandardTrailer) }

// FieldIsData reports whether tag is a raw DATA (or XMLDATA) field, whose
// value length is carried by a preceding LENGTH field.
func (d *Dictionary) FieldIsData(tag Tag) bool {
	f, ok := d.fieldByTag[tag]
	return ok && f.datatype.basetype.BaseType() == Data
}

// FieldIsNumInGroup reports whether tag counts repetitions of a group.
func (d *Dictionary) FieldIsNumInGroup(tag Tag) bool {
	f, ok := d.fieldByTag[tag]
	return ok && f.IsNumInGroup()
}

// FieldLocation returns where tag belongs in a message. Fields that appear
// in neither the header nor the trailer layout are body fields.
func (d *Dictionary) FieldLocation(tag Tag) FieldLocation {
	if _, ok := d.headerTags[tag]; ok {
		return LocationHeader
	}
	if _, ok := d.trailerTags[tag]; ok {
		return LocationTrailer
	}
	return LocationBody
}

// String renders a short summary, e.g. "FIX.4.4 (912 fields, 93 messages, 106 components)".
func (d *Dictionary) String() string {
	return fmt.Sprintf("%s (%d fields, %d messages, %d components)",
		d.version, len(d.fields), len(d.messages), len(d.components))
}

// Describe writes an indented outline of a message or component layout.
func Describe(items []LayoutItem) string {
	var sb strings.Builder
	for _, item := range items {
		describeItem(&sb, item, 0)
	}
	return sb.String()
}

func describeItem(sb *strings.Builder, item LayoutItem, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	req := "N"
	if item.required {
		req = "Y"
	}
	switch item.kind {
	case ItemField:
		fmt.Fprintf(sb, "field %s (%d) required=%s\n", item.field.name, item.field.tag, req)
	case ItemComponent:
		fmt.Fprintf(sb, "component %s required=%s\n", item.component.name, req)
	case ItemGroup:
		fmt.Fprintf(sb, "group %s (%d) required=%s\n", item.group.counter.name, item.group.counter.tag, req)
		for _, child := range item.group.items {
			describeItem(sb, child, depth+1)
		}
	}
}
