package quickfix

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/guttosm/fixdict/internal/dict"
)

// Export writes d as a QuickFIX document. Names, required flags and nesting
// round-trip through Import; descriptions other than enum descriptions do not.
func Export(w io.Writer, d *dict.Dictionary) error {
	doc, err := ToDocument(d)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode dictionary %s: %w", d.Version(), err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// ToDocument converts d back into a raw schema tree.
func ToDocument(d *dict.Dictionary) (*Document, error) {
	v, err := ParseVersion(d.Version())
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Type:        v.Type,
		Major:       strconv.Itoa(v.Major),
		Minor:       strconv.Itoa(v.Minor),
		ServicePack: strconv.Itoa(v.ServicePack),
		Header:      &LayoutBlock{},
		Trailer:     &LayoutBlock{},
		Messages:    &MessageList{},
		Components:  &ComponentList{},
		Fields:      &FieldList{},
	}

	if h, ok := d.Header(); ok {
		doc.Header.Items = toItems(h.Items())
	}
	if t, ok := d.Trailer(); ok {
		doc.Trailer.Items = toItems(t.Items())
	}

	for _, m := range d.Messages() {
		def := MessageDef{Name: m.Name(), MsgType: m.MsgType(), Items: toItems(m.Layout())}
		if c := m.Category(); c != nil {
			def.MsgCat = c.Name()
		}
		doc.Messages.Messages = append(doc.Messages.Messages, def)
	}

	for _, c := range d.Components() {
		if c.Name() == dict.StandardHeader || c.Name() == dict.StandardTrailer {
			continue
		}
		doc.Components.Components = append(doc.Components.Components,
			ComponentDef{Name: c.Name(), Items: toItems(c.Items())})
	}

	for _, f := range d.Fields() {
		def := FieldDef{
			Number: f.Tag().String(),
			Name:   f.Name(),
			Type:   f.Datatype().Name(),
		}
		if enums, ok := f.Enums(); ok {
			for _, e := range enums {
				def.Values = append(def.Values, ValueDef{Enum: e.Value, Description: e.Description})
			}
		}
		doc.Fields.Fields = append(doc.Fields.Fields, def)
	}
	return doc, nil
}

func toItems(layout []dict.LayoutItem) []Item {
	items := make([]Item, 0, len(layout))
	for _, li := range layout {
		it := Item{Name: li.Name(), Required: "N"}
		if li.Required() {
			it.Required = "Y"
		}
		switch li.Kind() {
		case dict.ItemField:
			it.Kind = KindField
		case dict.ItemComponent:
			it.Kind = KindComponent
		case dict.ItemGroup:
			it.Kind = KindGroup
			it.Items = toItems(li.Group().Items())
		}
		items = append(items, it)
	}
	return items
}
