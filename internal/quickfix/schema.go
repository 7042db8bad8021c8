// Package quickfix imports QuickFIX-style XML data dictionaries into an
// immutable dict.Dictionary and exports them back to the same format.
package quickfix

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/guttosm/fixdict/internal/dict"
)

// Document is the raw, order preserving schema tree decoded from a QuickFIX
// file. Section pointers are nil when the section is missing in the source.
type Document struct {
	XMLName     xml.Name       `xml:"fix"`
	Type        string         `xml:"type,attr"`
	Major       string         `xml:"major,attr"`
	Minor       string         `xml:"minor,attr"`
	ServicePack string         `xml:"servicepack,attr,omitempty"`
	Header      *LayoutBlock   `xml:"header"`
	Messages    *MessageList   `xml:"messages"`
	Trailer     *LayoutBlock   `xml:"trailer"`
	Components  *ComponentList `xml:"components"`
	Fields      *FieldList     `xml:"fields"`
}

// FieldList is the <fields> section.
type FieldList struct {
	Fields []FieldDef `xml:"field"`
}

// FieldDef is one <field number=".." name=".." type=".."> record.
type FieldDef struct {
	Number string     `xml:"number,attr"`
	Name   string     `xml:"name,attr"`
	Type   string     `xml:"type,attr"`
	Values []ValueDef `xml:"value"`
}

// ValueDef is one permitted value of a field.
type ValueDef struct {
	Enum        string `xml:"enum,attr"`
	Description string `xml:"description,attr"`
}

// MessageList is the <messages> section.
type MessageList struct {
	Messages []MessageDef `xml:"message"`
}

// ComponentList is the <components> section.
type ComponentList struct {
	Components []ComponentDef `xml:"component"`
}

// ItemKind is the element name of a layout item.
type ItemKind string

const (
	KindField     ItemKind = "field"
	KindGroup     ItemKind = "group"
	KindComponent ItemKind = "component"
)

// Item is a field reference, group or component reference inside a layout.
// Only groups carry nested Items.
type Item struct {
	Kind     ItemKind
	Name     string
	Required string
	Items    []Item
}

// LayoutBlock is an unnamed item list: <header> or <trailer>.
type LayoutBlock struct {
	Items []Item
}

// ComponentDef is one <component name=".."> definition.
type ComponentDef struct {
	Name  string
	Items []Item
}

// MessageDef is one <message name=".." msgtype=".." msgcat=".."> definition.
type MessageDef struct {
	Name    string
	MsgType string
	MsgCat  string
	Items   []Item
}

// Parse decodes a QuickFIX document and checks its top level shape.
//
// Errors (all wrapping dict.ErrMalformedInput):
//   - empty input or XML syntax errors
//   - root element other than <fix>
//   - missing type, major or minor attribute, or non-numeric version parts
//   - any of the fields, components, messages, header or trailer sections absent
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", dict.ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: %v", dict.ErrMalformedInput, err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (doc *Document) validate() error {
	if doc.Type == "" {
		return fmt.Errorf("%w: <fix> has no type attribute", dict.ErrMalformedInput)
	}
	if doc.Major == "" || doc.Minor == "" {
		return fmt.Errorf("%w: <fix> needs major and minor attributes", dict.ErrMalformedInput)
	}
	if _, err := doc.Version(); err != nil {
		return err
	}

	missing := ""
	switch {
	case doc.Fields == nil:
		missing = "fields"
	case doc.Components == nil:
		missing = "components"
	case doc.Messages == nil:
		missing = "messages"
	case doc.Header == nil:
		missing = "header"
	case doc.Trailer == nil:
		missing = "trailer"
	}
	if missing != "" {
		return fmt.Errorf("%w: missing <%s> section", dict.ErrMalformedInput, missing)
	}
	return nil
}

// Version returns the protocol version declared on the root element.
func (doc *Document) Version() (Version, error) {
	major, err := strconv.Atoi(doc.Major)
	if err != nil {
		return Version{}, fmt.Errorf("%w: major version %q", dict.ErrMalformedInput, doc.Major)
	}
	minor, err := strconv.Atoi(doc.Minor)
	if err != nil {
		return Version{}, fmt.Errorf("%w: minor version %q", dict.ErrMalformedInput, doc.Minor)
	}
	sp := 0
	if doc.ServicePack != "" {
		if sp, err = strconv.Atoi(doc.ServicePack); err != nil {
			return Version{}, fmt.Errorf("%w: service pack %q", dict.ErrMalformedInput, doc.ServicePack)
		}
	}
	return Version{Type: doc.Type, Major: major, Minor: minor, ServicePack: sp}, nil
}

func (l *LayoutBlock) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	items, err := decodeItems(d)
	l.Items = items
	return err
}

func (c *ComponentDef) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	c.Name = attr(start, "name")
	items, err := decodeItems(d)
	c.Items = items
	return err
}

func (m *MessageDef) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m.Name = attr(start, "name")
	m.MsgType = attr(start, "msgtype")
	m.MsgCat = attr(start, "msgcat")
	items, err := decodeItems(d)
	m.Items = items
	return err
}

func (it *Item) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	it.Kind = ItemKind(start.Name.Local)
	it.Name = attr(start, "name")
	it.Required = attr(start, "required")
	items, err := decodeItems(d)
	if it.Kind == KindGroup {
		it.Items = items
	}
	return err
}

// decodeItems reads child elements up to the end of the current element,
// keeping field, group and component children in document order. Other
// elements are skipped.
func decodeItems(d *xml.Decoder) ([]Item, error) {
	var items []Item
	for {
		tok, err := d.Token()
		if err != nil {
			return items, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch ItemKind(t.Name.Local) {
			case KindField, KindGroup, KindComponent:
				var it Item
				if err := d.DecodeElement(&it, &t); err != nil {
					return items, err
				}
				items = append(items, it)
			default:
				if err := d.Skip(); err != nil {
					return items, err
				}
			}
		case xml.EndElement:
			return items, nil
		}
	}
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (l LayoutBlock) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return encodeBlock(e, start, l.Items)
}

func (c ComponentDef) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "name"}, Value: c.Name}}
	return encodeBlock(e, start, c.Items)
}

func (m MessageDef) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "name"}, Value: m.Name},
		{Name: xml.Name{Local: "msgtype"}, Value: m.MsgType},
	}
	if m.MsgCat != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "msgcat"}, Value: m.MsgCat})
	}
	return encodeBlock(e, start, m.Items)
}

func (it Item) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: string(it.Kind)}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "name"}, Value: it.Name},
		{Name: xml.Name{Local: "required"}, Value: it.Required},
	}
	return encodeBlock(e, start, it.Items)
}

func encodeBlock(e *xml.Encoder, start xml.StartElement, items []Item) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, it := range items {
		if err := e.Encode(it); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
