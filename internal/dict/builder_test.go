package dict

import (
	"errors"
	"testing"
)

// newTestBuilder registers the datatypes and fields shared by most tests.
func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder("FIX.4.4")
	for _, name := range []string{"STRING", "INT", "LENGTH", "DATA", "NUMINGROUP", "CHAR"} {
		if _, err := b.AddDatatype(name, ""); err != nil {
			t.Fatalf("AddDatatype(%s): %v", name, err)
		}
	}
	fields := []FieldSpec{
		{Tag: 8, Name: "BeginString", Datatype: "STRING"},
		{Tag: 9, Name: "BodyLength", Datatype: "LENGTH"},
		{Tag: 35, Name: "MsgType", Datatype: "STRING"},
		{Tag: 10, Name: "CheckSum", Datatype: "STRING"},
		{Tag: 93, Name: "SignatureLength", Datatype: "LENGTH"},
		{Tag: 89, Name: "Signature", Datatype: "DATA", LengthTag: 93},
		{Tag: 112, Name: "TestReqID", Datatype: "STRING"},
		{Tag: 146, Name: "NoRelatedSym", Datatype: "NUMINGROUP", GroupCounter: true},
		{Tag: 55, Name: "Symbol", Datatype: "STRING"},
		{Tag: 28, Name: "IOITransType", Datatype: "CHAR", Restricted: true, Enums: []FieldEnum{
			{Value: "N", Description: "NEW"},
			{Value: "C", Description: "CANCEL"},
			{Value: "R", Description: "REPLACE"},
		}},
	}
	for _, spec := range fields {
		if _, err := b.AddField(spec); err != nil {
			t.Fatalf("AddField(%s): %v", spec.Name, err)
		}
	}
	return b
}

func mustField(t *testing.T, b *Builder, name string) *Field {
	t.Helper()
	f, ok := b.FieldByName(name)
	if !ok {
		t.Fatalf("field %s not found", name)
	}
	return f
}

// mustBuild builds b or fails the test.
func mustBuild(t *testing.T, b *Builder) *Dictionary {
	t.Helper()
	d, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return d
}

func TestBuilder_AddDatatypeIsIdempotent(t *testing.T) {
	b := NewBuilder("FIX.4.4")
	first, err := b.AddDatatype("STRING", "")
	if err != nil {
		t.Fatalf("AddDatatype: %v", err)
	}
	second, err := b.AddDatatype("STRING", "ignored")
	if err != nil {
		t.Fatalf("AddDatatype again: %v", err)
	}

	if first != second {
		t.Fatalf("expected the same datatype handle")
	}
	if first.Basetype() != String {
		t.Fatalf("basetype=%v, want String", first.Basetype())
	}
	if n := len(mustBuild(t, b).Datatypes()); n != 1 {
		t.Fatalf("expected 1 datatype, got %d", n)
	}
}

func TestBuilder_AddFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		spec FieldSpec
		want error
	}{
		{"zero tag", FieldSpec{Tag: 0, Name: "Zero", Datatype: "STRING"}, ErrMalformedInput},
		{"empty name", FieldSpec{Tag: 5000, Datatype: "STRING"}, ErrMalformedInput},
		{"unknown datatype", FieldSpec{Tag: 5000, Name: "X", Datatype: "NOPE"}, ErrLookup},
		{"duplicate tag", FieldSpec{Tag: 112, Name: "Other", Datatype: "STRING"}, ErrDuplicateKey},
		{"duplicate name", FieldSpec{Tag: 5000, Name: "TestReqID", Datatype: "STRING"}, ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder(t)
			_, err := b.AddField(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBuilder_DuplicateKeyErrorDetails(t *testing.T) {
	b := newTestBuilder(t)
	_, err := b.AddField(FieldSpec{Tag: 112, Name: "Dup", Datatype: "STRING"})

	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if dup.Kind != "field tag" || dup.Key != "112" {
		t.Fatalf("unexpected details: %+v", dup)
	}
}

func TestBuilder_DuplicateComponentAndMessage(t *testing.T) {
	b := newTestBuilder(t)
	if _, err := b.AddComponent(ComponentSpec{Name: "Instrument"}); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if _, err := b.AddMessage(MessageSpec{MsgType: "0", Name: "Heartbeat"}); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	cases := []struct {
		name string
		add  func() error
	}{
		{"component name", func() error { _, err := b.AddComponent(ComponentSpec{Name: "Instrument"}); return err }},
		{"msg type", func() error { _, err := b.AddMessage(MessageSpec{MsgType: "0", Name: "Other"}); return err }},
		{"message name", func() error { _, err := b.AddMessage(MessageSpec{MsgType: "1", Name: "Heartbeat"}); return err }},
	}
	for _, tc := range cases {
		if err := tc.add(); !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("%s: expected ErrDuplicateKey, got %v", tc.name, err)
		}
	}
}

func TestBuilder_BuildTwice(t *testing.T) {
	b := newTestBuilder(t)
	mustBuild(t, b)

	if _, err := b.Build(); !errors.Is(err, ErrBuilderSpent) {
		t.Fatalf("second Build: expected ErrBuilderSpent, got %v", err)
	}
	if _, err := b.AddDatatype("INT", ""); !errors.Is(err, ErrBuilderSpent) {
		t.Fatalf("AddDatatype after Build: expected ErrBuilderSpent, got %v", err)
	}
}

func TestBuilder_CategoryNeedsKnownSection(t *testing.T) {
	b := newTestBuilder(t)
	if _, err := b.AddCategory("Session", "", "Missing"); !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}

	if _, err := b.AddSection("Session", "session layer"); err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	c, err := b.AddCategory("Session", "fixml-session.xsd", "Session")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if c.Section() == nil || c.Section().Description() != "session layer" {
		t.Fatalf("unexpected section %+v", c.Section())
	}
}

func TestBuilder_MessageCategoryIsShared(t *testing.T) {
	b := newTestBuilder(t)
	hb, err := b.AddMessage(MessageSpec{MsgType: "0", Name: "Heartbeat", Category: "admin"})
	if err != nil {
		t.Fatalf("AddMessage Heartbeat: %v", err)
	}
	tr, err := b.AddMessage(MessageSpec{MsgType: "1", Name: "TestRequest", Category: "admin"})
	if err != nil {
		t.Fatalf("AddMessage TestRequest: %v", err)
	}
	if hb.Category() != tr.Category() {
		t.Fatalf("messages should share one category")
	}

	d := mustBuild(t, b)
	cat, ok := d.CategoryByName("admin")
	if !ok || cat != hb.Category() {
		t.Fatalf("CategoryByName returned %v, %v", cat, ok)
	}
	if n := len(d.Categories()); n != 1 {
		t.Fatalf("expected 1 category, got %d", n)
	}
}
