package quickfix

import (
	"fmt"

	"github.com/guttosm/fixdict/internal/dict"
)

// convert translates raw items into resolved layout items. Every referenced
// field and component must already be registered with the builder; owner
// names the enclosing definition for error messages.
func (im *importer) convert(items []Item, owner string) ([]dict.LayoutItem, error) {
	out := make([]dict.LayoutItem, 0, len(items))
	for _, it := range items {
		required, err := im.required(it, owner)
		if err != nil {
			return nil, err
		}

		switch it.Kind {
		case KindField:
			f, ok := im.b.FieldByName(it.Name)
			if !ok {
				return nil, &dict.ReferenceError{Kind: "field", Name: it.Name, Context: owner}
			}
			out = append(out, dict.FieldItem(f, required))

		case KindComponent:
			c, ok := im.b.ComponentByName(it.Name)
			if !ok {
				return nil, &dict.ReferenceError{Kind: "component", Name: it.Name, Context: owner}
			}
			out = append(out, dict.ComponentItem(c, required))

		case KindGroup:
			counter, ok := im.b.FieldByName(it.Name)
			if !ok {
				return nil, &dict.ReferenceError{Kind: "group", Name: it.Name, Context: owner}
			}
			contents, err := im.convert(it.Items, owner)
			if err != nil {
				return nil, err
			}
			out = append(out, dict.GroupItem(counter, contents, required))

		default:
			return nil, fmt.Errorf("%w: unknown item <%s> in %s", dict.ErrMalformedInput, it.Kind, owner)
		}
	}
	return out, nil
}

// required maps the source marker to a boolean. "Y" is required and anything
// else is not, unless strict mode demands exactly "Y" or "N".
func (im *importer) required(it Item, owner string) (bool, error) {
	switch it.Required {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	}
	if im.strictRequired {
		return false, fmt.Errorf("%w: %s %q in %s has required=%q",
			dict.ErrMalformedInput, it.Kind, it.Name, owner, it.Required)
	}
	return false, nil
}
