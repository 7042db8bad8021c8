package dto

import (
	"github.com/guttosm/fixdict/internal/dict"
)

// VersionsResponse lists the protocol versions currently loaded.
type VersionsResponse struct {
	Versions []string `json:"versions" example:"FIX.4.4,FIX.5.0-SP2"`
}

// EnumResponse is one allowed value of a restricted field.
type EnumResponse struct {
	Value       string `json:"value" example:"1"`
	Description string `json:"description" example:"BUY"`
}

// FieldResponse describes a single field.
type FieldResponse struct {
	Tag          uint32         `json:"tag" example:"54"`
	Name         string         `json:"name" example:"Side"`
	Datatype     string         `json:"datatype" example:"CHAR"`
	BaseType     string         `json:"base_type" example:"CHAR"`
	Location     string         `json:"location" example:"body"`
	GroupCounter bool           `json:"group_counter"`
	NumInGroup   bool           `json:"num_in_group"`
	LengthTag    uint32         `json:"length_tag,omitempty"`
	Enums        []EnumResponse `json:"enums,omitempty"`
	DocURL       string         `json:"doc_url" example:"https://www.onixs.biz/fix-dictionary/4.4/tagNum_54.html"`
}

// FieldPageResponse is one page of the field list.
type FieldPageResponse struct {
	Version string          `json:"version" example:"FIX.4.4"`
	Offset  int             `json:"offset" example:"0"`
	Limit   int             `json:"limit" example:"50"`
	Total   int             `json:"total" example:"912"`
	Fields  []FieldResponse `json:"fields"`
}

// LayoutItemResponse is a node of a message or component layout. Groups carry
// their body in Items; components are referenced by name only.
type LayoutItemResponse struct {
	Kind     string               `json:"kind" example:"field"`
	Name     string               `json:"name" example:"ClOrdID"`
	Tag      uint32               `json:"tag,omitempty" example:"11"`
	Required bool                 `json:"required"`
	Items    []LayoutItemResponse `json:"items,omitempty"`
}

// MessageResponse describes a message and its layout.
type MessageResponse struct {
	MsgType  string               `json:"msg_type" example:"D"`
	Name     string               `json:"name" example:"NewOrderSingle"`
	Category string               `json:"category,omitempty" example:"app"`
	Layout   []LayoutItemResponse `json:"layout"`
}

// ComponentResponse describes a component and its layout.
type ComponentResponse struct {
	Name    string               `json:"name" example:"Instrument"`
	IsGroup bool                 `json:"is_group"`
	Items   []LayoutItemResponse `json:"items"`
}

// DatatypeResponse describes a datatype.
type DatatypeResponse struct {
	Name        string   `json:"name" example:"PRICE"`
	BaseType    string   `json:"base_type" example:"FLOAT"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// NewFieldResponse maps f using d for location and counter lookups.
func NewFieldResponse(d *dict.Dictionary, f *dict.Field) FieldResponse {
	resp := FieldResponse{
		Tag:          uint32(f.Tag()),
		Name:         f.Name(),
		Datatype:     f.Datatype().Name(),
		BaseType:     f.Datatype().Basetype().BaseType().String(),
		Location:     d.FieldLocation(f.Tag()).String(),
		GroupCounter: f.IsGroupCounter(),
		NumInGroup:   f.IsNumInGroup(),
		DocURL:       f.DocURL(d.Version()),
	}
	if tag, ok := f.AssociatedLengthTag(); ok {
		resp.LengthTag = uint32(tag)
	}
	if values, ok := f.Enums(); ok {
		resp.Enums = make([]EnumResponse, 0, len(values))
		for _, e := range values {
			resp.Enums = append(resp.Enums, EnumResponse{Value: e.Value, Description: e.Description})
		}
	}
	return resp
}

// NewLayoutResponse maps a layout tree.
func NewLayoutResponse(items []dict.LayoutItem) []LayoutItemResponse {
	out := make([]LayoutItemResponse, 0, len(items))
	for _, it := range items {
		node := LayoutItemResponse{
			Kind:     it.Kind().String(),
			Name:     it.Name(),
			Required: it.Required(),
		}
		switch it.Kind() {
		case dict.ItemField:
			node.Tag = uint32(it.Field().Tag())
		case dict.ItemGroup:
			node.Tag = uint32(it.Group().Counter().Tag())
			node.Items = NewLayoutResponse(it.Group().Items())
		}
		out = append(out, node)
	}
	return out
}

func NewMessageResponse(m *dict.Message) MessageResponse {
	resp := MessageResponse{
		MsgType: m.MsgType(),
		Name:    m.Name(),
		Layout:  NewLayoutResponse(m.Layout()),
	}
	if c := m.Category(); c != nil {
		resp.Category = c.Name()
	}
	return resp
}

func NewComponentResponse(c *dict.Component) ComponentResponse {
	return ComponentResponse{
		Name:    c.Name(),
		IsGroup: c.IsGroup(),
		Items:   NewLayoutResponse(c.Items()),
	}
}

func NewDatatypeResponse(dt *dict.Datatype) DatatypeResponse {
	return DatatypeResponse{
		Name:        dt.Name(),
		BaseType:    dt.Basetype().BaseType().String(),
		Description: dt.Description(),
		Examples:    dt.Examples(),
	}
}
