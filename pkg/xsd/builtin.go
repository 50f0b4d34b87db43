package xsd

import "encoding/xml"

// Namespace is the XML Schema namespace
const Namespace = "http://www.w3.org/2001/XMLSchema"

// ScalarKind classifies a simple type for value encoding and decoding
type ScalarKind int

const (
	KindString ScalarKind = iota
	KindInteger
	KindDecimal
	KindBoolean
	KindDate
	KindTime
	KindDateTime
	KindBase64
)

func (k ScalarKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "dateTime"
	case KindBase64:
		return "base64"
	default:
		return "string"
	}
}

// builtinKinds maps the local names of the XML Schema builtin datatypes to
// their scalar kind
var builtinKinds = map[string]ScalarKind{
	"string":           KindString,
	"normalizedString": KindString,
	"token":            KindString,
	"language":         KindString,
	"Name":             KindString,
	"NCName":           KindString,
	"NMTOKEN":          KindString,
	"NMTOKENS":         KindString,
	"ID":               KindString,
	"IDREF":            KindString,
	"IDREFS":           KindString,
	"ENTITY":           KindString,
	"ENTITIES":         KindString,
	"anyURI":           KindString,
	"QName":            KindString,
	"NOTATION":         KindString,
	"duration":         KindString,
	"gYear":            KindString,
	"gYearMonth":       KindString,
	"gMonth":           KindString,
	"gMonthDay":        KindString,
	"gDay":             KindString,
	"anyType":          KindString,
	"anySimpleType":    KindString,

	"integer":            KindInteger,
	"int":                KindInteger,
	"long":               KindInteger,
	"short":              KindInteger,
	"byte":               KindInteger,
	"nonNegativeInteger": KindInteger,
	"nonPositiveInteger": KindInteger,
	"negativeInteger":    KindInteger,
	"positiveInteger":    KindInteger,
	"unsignedLong":       KindInteger,
	"unsignedInt":        KindInteger,
	"unsignedShort":      KindInteger,
	"unsignedByte":       KindInteger,

	"decimal": KindDecimal,
	"float":   KindDecimal,
	"double":  KindDecimal,

	"boolean": KindBoolean,

	"date":     KindDate,
	"time":     KindTime,
	"dateTime": KindDateTime,

	"base64Binary": KindBase64,
	"hexBinary":    KindBase64,
}

// IsBuiltin reports whether the reference names an XML Schema builtin datatype
func IsBuiltin(ref xml.Name) bool {
	if ref.Space != "" && ref.Space != Namespace {
		return false
	}
	_, ok := builtinKinds[ref.Local]
	return ok
}

// BuiltinKind returns the scalar kind of a builtin datatype reference
func BuiltinKind(ref xml.Name) (ScalarKind, bool) {
	if ref.Space != "" && ref.Space != Namespace {
		return KindString, false
	}
	kind, ok := builtinKinds[ref.Local]
	return kind, ok
}
