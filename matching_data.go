package xuma

// DataKind tags the variant carried by a [MatchingData] value. The string
// form is the stable "semantic type name" used in [DataInput.DataType] and
// [InputMatcher.SupportedTypes].
type DataKind int

const (
	// KindNone signals the absence of data. A [SinglePredicate] whose
	// DataInput returns None always evaluates to false (the None→false
	// invariant), regardless of the paired matcher.
	KindNone DataKind = iota
	KindString
	KindInt
	KindBool
	KindBytes
	// KindCustom is used by domain extensions to carry an arbitrary
	// reference-counted value. Custom equality is identity, never
	// structural.
	KindCustom
)

// String returns the stable semantic type name for k.
func (k DataKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindCustom:
		return "custom"
	default:
		return "???"
	}
}

// MatchingData is the erased value type exchanged between a [DataInput] and
// an [InputMatcher]. It is created fresh by a DataInput and consumed by an
// InputMatcher within the same evaluation call; it is never stored.
//
// The zero value is [KindNone].
type MatchingData struct {
	kind   DataKind
	str    string
	i      int64
	b      bool
	bytes  []byte
	custom any
	ctype  string
}

// None is the MatchingData value signaling absent data.
var None = MatchingData{kind: KindNone}

// String wraps a string value.
func String(s string) MatchingData { return MatchingData{kind: KindString, str: s} }

// Int wraps an int64 value.
func Int(i int64) MatchingData { return MatchingData{kind: KindInt, i: i} }

// Bool wraps a bool value.
func Bool(b bool) MatchingData { return MatchingData{kind: KindBool, b: b} }

// Bytes wraps a byte slice value. The slice is not copied; callers must not
// mutate it after constructing the MatchingData.
func Bytes(b []byte) MatchingData { return MatchingData{kind: KindBytes, bytes: b} }

// Custom wraps an arbitrary value under a stable type name, for domain
// extensions whose InputMatcher needs more than the builtin scalar
// variants. Equality between two Custom values is identity of the wrapped
// value (via the "==" comparison on the any, for comparable underlying
// types, or reference identity for pointers/interfaces), never a
// structural/deep comparison.
func Custom(typeName string, value any) MatchingData {
	return MatchingData{kind: KindCustom, custom: value, ctype: typeName}
}

// Kind reports the variant carried by d.
func (d MatchingData) Kind() DataKind { return d.kind }

// TypeName returns the stable semantic type name for d's variant: one of
// "none", "string", "int", "bool", "bytes", or, for KindCustom, the name
// passed to [Custom].
func (d MatchingData) TypeName() string {
	if d.kind == KindCustom {
		return d.ctype
	}
	return d.kind.String()
}

// IsNone reports whether d is the None variant.
func (d MatchingData) IsNone() bool { return d.kind == KindNone }

// AsString returns the wrapped string and whether d is a KindString value.
func (d MatchingData) AsString() (string, bool) { return d.str, d.kind == KindString }

// AsInt returns the wrapped int64 and whether d is a KindInt value.
func (d MatchingData) AsInt() (int64, bool) { return d.i, d.kind == KindInt }

// AsBool returns the wrapped bool and whether d is a KindBool value.
func (d MatchingData) AsBool() (bool, bool) { return d.b, d.kind == KindBool }

// AsBytes returns the wrapped byte slice and whether d is a KindBytes value.
func (d MatchingData) AsBytes() ([]byte, bool) { return d.bytes, d.kind == KindBytes }

// AsCustom downcasts d's custom payload into dst, a pointer to the expected
// concrete type. It reports false if d is not KindCustom or the underlying
// value's dynamic type does not match *dst's type.
func AsCustom[T any](d MatchingData, dst *T) bool {
	if d.kind != KindCustom {
		return false
	}
	v, ok := d.custom.(T)
	if !ok {
		return false
	}
	*dst = v
	return true
}
