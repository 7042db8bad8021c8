package dto

import (
	"strings"
	"testing"

	"github.com/guttosm/fixdict/internal/quickfix"
)

const testSpec = `<fix type="FIX" major="4" minor="4" servicepack="0">
 <header><field name="MsgType" required="Y"/></header>
 <messages>
  <message name="NewOrderSingle" msgtype="D" msgcat="app">
   <field name="Side" required="Y"/>
   <group name="NoPartyIDs" required="N"><field name="PartyID" required="Y"/></group>
   <component name="Instrument" required="Y"/>
  </message>
 </messages>
 <trailer/>
 <components>
  <component name="Instrument"><field name="Symbol" required="Y"/></component>
 </components>
 <fields>
  <field number="35" name="MsgType" type="STRING"/>
  <field number="54" name="Side" type="CHAR"><value enum="1" description="BUY"/><value enum="2" description="SELL"/></field>
  <field number="55" name="Symbol" type="STRING"/>
  <field number="448" name="PartyID" type="STRING"/>
  <field number="453" name="NoPartyIDs" type="NUMINGROUP"/>
 </fields>
</fix>`

func TestNewFieldResponse(t *testing.T) {
	d, err := quickfix.Load(strings.NewReader(testSpec))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := []struct {
		name     string
		field    string
		location string
		baseType string
		counter  bool
		enums    int
	}{
		{"header field", "MsgType", "header", "STRING", false, 0},
		{"enum field", "Side", "body", "CHAR", false, 2},
		{"group counter", "NoPartyIDs", "body", "INT", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, ok := d.FieldByName(tc.field)
			if !ok {
				t.Fatalf("field %s missing", tc.field)
			}
			got := NewFieldResponse(d, f)
			if got.Name != tc.field || got.Location != tc.location || got.BaseType != tc.baseType {
				t.Fatalf("unexpected response: %+v", got)
			}
			if got.GroupCounter != tc.counter || len(got.Enums) != tc.enums {
				t.Fatalf("unexpected counter/enums: %+v", got)
			}
			if !strings.Contains(got.DocURL, "/4.4/") {
				t.Fatalf("unexpected doc url %q", got.DocURL)
			}
		})
	}
}

func TestNewMessageResponse_LayoutTree(t *testing.T) {
	d, err := quickfix.Load(strings.NewReader(testSpec))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m, _ := d.MessageByMsgType("D")

	got := NewMessageResponse(m)
	if got.Name != "NewOrderSingle" || got.Category != "app" || len(got.Layout) != 3 {
		t.Fatalf("unexpected message: %+v", got)
	}
	group := got.Layout[1]
	if group.Kind != "group" || group.Tag != 453 || len(group.Items) != 1 || group.Items[0].Tag != 448 {
		t.Fatalf("unexpected group node: %+v", group)
	}
	comp := got.Layout[2]
	if comp.Kind != "component" || comp.Name != "Instrument" || comp.Tag != 0 || len(comp.Items) != 0 {
		t.Fatalf("unexpected component node: %+v", comp)
	}

	c, _ := d.ComponentByName("Instrument")
	if cr := NewComponentResponse(c); cr.IsGroup || len(cr.Items) != 1 || cr.Items[0].Name != "Symbol" {
		t.Fatalf("unexpected component: %+v", cr)
	}
	dt, _ := d.DatatypeByName("NUMINGROUP")
	if dr := NewDatatypeResponse(dt); dr.BaseType != "INT" {
		t.Fatalf("unexpected datatype: %+v", dr)
	}
}
