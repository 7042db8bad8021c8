package dict

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Tag is the numeric identifier of a field on the wire. Valid tags are > 0.
type Tag uint32

// Valid reports whether t can identify a field.
func (t Tag) Valid() bool { return t > 0 }

func (t Tag) String() string { return strconv.FormatUint(uint64(t), 10) }

// FieldEnum is one permitted value of a restricted field.
type FieldEnum struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Field is a named, uniquely tagged atomic data element.
type Field struct {
	tag          Tag
	name         string
	datatype     *Datatype
	enums        []FieldEnum
	restricted   bool
	groupCounter bool
	lengthTag    Tag
	abbrName     string
	description  string
}

// Tag returns the unique tag number of f.
func (f *Field) Tag() Tag { return f.tag }

// Name returns the unique human readable name of f.
func (f *Field) Name() string { return f.name }

// Datatype returns the value domain of f. It is never nil for fields
// obtained from a built Dictionary.
func (f *Field) Datatype() *Datatype { return f.datatype }

// Description is documentation only.
func (f *Field) Description() string { return f.description }

// AbbrName returns the FIXML element name, when documented.
func (f *Field) AbbrName() string { return f.abbrName }

// Enums returns the permitted values of f in source order. When ok is false
// the field is unrestricted, which is distinct from an empty restriction list.
func (f *Field) Enums() (values []FieldEnum, ok bool) {
	if !f.restricted {
		return nil, false
	}
	return append([]FieldEnum(nil), f.enums...), true
}

// EnumByValue returns the enum entry for value, if f is restricted and lists it.
func (f *Field) EnumByValue(value string) (FieldEnum, bool) {
	for _, e := range f.enums {
		if e.Value == value {
			return e, true
		}
	}
	return FieldEnum{}, false
}

// IsGroupCounter reports whether f introduces a repeating group somewhere in
// the header, trailer, a component or a message.
func (f *Field) IsGroupCounter() bool { return f.groupCounter }

// IsNumInGroup reports whether f is likely to carry a repeating group count.
// The structural signal wins; otherwise the NUMINGROUP datatype or the naming
// convention ("NoXxx" or "...Len") is used so that fields never placed in a
// layout are still classified.
func (f *Field) IsNumInGroup() bool {
	if f.groupCounter {
		return true
	}
	if f.datatype != nil && f.datatype.basetype == NumInGroup {
		return true
	}
	return strings.HasSuffix(f.name, "Len") || hasCountPrefix(f.name)
}

func hasCountPrefix(name string) bool {
	if !strings.HasPrefix(name, "No") || len(name) < 3 {
		return false
	}
	return unicode.IsUpper(rune(name[2]))
}

// AssociatedLengthTag returns the tag of the LENGTH field that carries the
// byte count of this DATA field, if one exists.
func (f *Field) AssociatedLengthTag() (Tag, bool) {
	return f.lengthTag, f.lengthTag.Valid()
}

// DocURL returns the OnixS reference page for f in the given FIX version.
func (f *Field) DocURL(version string) string {
	v := strings.TrimPrefix(version, "FIX.")
	switch version {
	case "FIX.5.0-SP1", "FIX.5.0SP1":
		v = "5.0.SP1"
	case "FIX.5.0-SP2", "FIX.5.0SP2":
		v = "5.0.SP2"
	case "FIXT.1.1":
		v = "FIXT.1.1"
	}
	return fmt.Sprintf("https://www.onixs.biz/fix-dictionary/%s/tagNum_%d.html", v, f.tag)
}
