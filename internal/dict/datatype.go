package dict

import "strings"

// FixDatatype enumerates the primitive value domains defined across FIX
// versions. QuickFIX schemas spell them in upper case (e.g. "UTCTIMESTAMP").
type FixDatatype uint8

const (
	Unknown FixDatatype = iota
	Int
	Length
	TagNum
	SeqNum
	NumInGroup
	DayOfMonth
	Float
	Qty
	Price
	PriceOffset
	Amt
	Percentage
	Char
	Boolean
	String
	MultipleCharValue
	MultipleStringValue
	Country
	Currency
	Exchange
	MonthYear
	UTCTimestamp
	UTCTimeOnly
	UTCDateOnly
	LocalMktDate
	TZTimeOnly
	TZTimestamp
	Data
	XMLData
	Language
)

var datatypeNames = [...]string{
	Unknown:             "UNKNOWN",
	Int:                 "INT",
	Length:              "LENGTH",
	TagNum:              "TAGNUM",
	SeqNum:              "SEQNUM",
	NumInGroup:          "NUMINGROUP",
	DayOfMonth:          "DAYOFMONTH",
	Float:               "FLOAT",
	Qty:                 "QTY",
	Price:               "PRICE",
	PriceOffset:         "PRICEOFFSET",
	Amt:                 "AMT",
	Percentage:          "PERCENTAGE",
	Char:                "CHAR",
	Boolean:             "BOOLEAN",
	String:              "STRING",
	MultipleCharValue:   "MULTIPLECHARVALUE",
	MultipleStringValue: "MULTIPLESTRINGVALUE",
	Country:             "COUNTRY",
	Currency:            "CURRENCY",
	Exchange:            "EXCHANGE",
	MonthYear:           "MONTHYEAR",
	UTCTimestamp:        "UTCTIMESTAMP",
	UTCTimeOnly:         "UTCTIMEONLY",
	UTCDateOnly:         "UTCDATEONLY",
	LocalMktDate:        "LOCALMKTDATE",
	TZTimeOnly:          "TZTIMEONLY",
	TZTimestamp:         "TZTIMESTAMP",
	Data:                "DATA",
	XMLData:             "XMLDATA",
	Language:            "LANGUAGE",
}

// aliases covers spellings used by older QuickFIX files.
var datatypeAliases = map[string]FixDatatype{
	"MULTIPLEVALUESTRING": MultipleStringValue,
	"UTCDATE":             UTCDateOnly,
	"DATE":                LocalMktDate,
	"TIME":                UTCTimestamp,
}

// ParseFixDatatype maps a schema datatype name to its enum value. Matching is
// case-insensitive; unrecognised names yield Unknown.
func ParseFixDatatype(name string) FixDatatype {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range datatypeNames {
		if n == upper {
			return FixDatatype(i)
		}
	}
	if dt, ok := datatypeAliases[upper]; ok {
		return dt
	}
	return Unknown
}

// String returns the canonical QuickFIX spelling.
func (dt FixDatatype) String() string {
	if int(dt) < len(datatypeNames) {
		return datatypeNames[dt]
	}
	return datatypeNames[Unknown]
}

// BaseType collapses derived datatypes onto the primitive they are encoded
// as. For example Length, SeqNum and NumInGroup are all integers on the wire.
func (dt FixDatatype) BaseType() FixDatatype {
	switch dt {
	case Length, TagNum, SeqNum, NumInGroup, DayOfMonth:
		return Int
	case Qty, Price, PriceOffset, Amt, Percentage:
		return Float
	case MultipleCharValue, MultipleStringValue, Country, Currency, Exchange,
		MonthYear, UTCTimestamp, UTCTimeOnly, UTCDateOnly, LocalMktDate,
		TZTimeOnly, TZTimestamp, Language:
		return String
	case XMLData:
		return Data
	default:
		return dt
	}
}

// IsNumeric reports whether values of dt are encoded as decimal numbers.
func (dt FixDatatype) IsNumeric() bool {
	b := dt.BaseType()
	return b == Int || b == Float
}

// Datatype is a named value domain referenced by one or more fields.
type Datatype struct {
	name        string
	description string
	examples    []string
	basetype    FixDatatype
}

// Name returns the datatype name exactly as spelled in the source schema.
func (d *Datatype) Name() string { return d.name }

// Description is documentation only; QuickFIX schemas leave it empty.
func (d *Datatype) Description() string { return d.description }

// Examples returns example values, if any were documented.
func (d *Datatype) Examples() []string { return append([]string(nil), d.examples...) }

// Basetype returns the enum value parsed from the datatype name.
func (d *Datatype) Basetype() FixDatatype { return d.basetype }
