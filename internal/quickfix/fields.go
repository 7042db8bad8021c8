package quickfix

import (
	"fmt"
	"strconv"

	"github.com/guttosm/fixdict/internal/dict"
)

// importDatatypes registers every distinct datatype name referenced by the
// field list, in first-seen order.
func (im *importer) importDatatypes(fields []FieldDef) error {
	for _, f := range fields {
		if f.Type == "" {
			return fmt.Errorf("%w: field %q has no type", dict.ErrMalformedInput, f.Name)
		}
		if _, err := im.b.AddDatatype(f.Type, ""); err != nil {
			return err
		}
	}
	return nil
}

// groupCounters returns the names of all fields used to introduce a
// repeating group anywhere in the document.
func groupCounters(doc *Document) map[string]struct{} {
	out := make(map[string]struct{})
	var scan func(items []Item)
	scan = func(items []Item) {
		for _, it := range items {
			if it.Kind == KindGroup {
				out[it.Name] = struct{}{}
				scan(it.Items)
			}
		}
	}
	scan(doc.Header.Items)
	scan(doc.Trailer.Items)
	for _, c := range doc.Components.Components {
		scan(c.Items)
	}
	for _, m := range doc.Messages.Messages {
		scan(m.Items)
	}
	return out
}

// importFields materializes one dict.Field per raw record, in source order.
func (im *importer) importFields(fields []FieldDef, counters map[string]struct{}) error {
	byName := make(map[string]FieldDef, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	for _, f := range fields {
		tag, err := parseTag(f)
		if err != nil {
			return err
		}
		_, isCounter := counters[f.Name]
		spec := dict.FieldSpec{
			Tag:          tag,
			Name:         f.Name,
			Datatype:     f.Type,
			GroupCounter: isCounter,
			LengthTag:    lengthTagFor(f, byName),
		}
		if len(f.Values) > 0 {
			spec.Restricted = true
			spec.Enums = make([]dict.FieldEnum, 0, len(f.Values))
			for _, v := range f.Values {
				spec.Enums = append(spec.Enums, dict.FieldEnum{Value: v.Enum, Description: v.Description})
			}
		}
		if _, err := im.b.AddField(spec); err != nil {
			return err
		}
	}
	return nil
}

func parseTag(f FieldDef) (dict.Tag, error) {
	n, err := strconv.ParseUint(f.Number, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: field %q has invalid number %q", dict.ErrMalformedInput, f.Name, f.Number)
	}
	return dict.Tag(n), nil
}

// lengthTagFor links a DATA field to the LENGTH field carrying its size,
// which QuickFIX names "<Name>Len" or "<Name>Length".
func lengthTagFor(f FieldDef, byName map[string]FieldDef) dict.Tag {
	if dict.ParseFixDatatype(f.Type).BaseType() != dict.Data {
		return 0
	}
	for _, suffix := range []string{"Len", "Length"} {
		lf, ok := byName[f.Name+suffix]
		if !ok || dict.ParseFixDatatype(lf.Type) != dict.Length {
			continue
		}
		if tag, err := parseTag(lf); err == nil {
			return tag
		}
	}
	return 0
}
