package model

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the closed IR type algebra. Every kind must resolve to
// exactly one code type descriptor in gen; an unhandled kind is a build-time
// defect, not a runtime condition.
type TypeKind int

const (
	KindUInt8 TypeKind = iota
	KindInt8
	KindUInt16
	KindInt16
	KindUInt32
	KindInt32
	KindUInt64
	KindInt64
	KindFloat32
	KindFloat64
	KindBoolean
	KindString
	KindBytes
	KindTimestamp
	KindDuration
	KindEnum
	KindObject
	KindRecord
	KindCallbackInterface
	KindOptional
	KindSequence
	KindMap
	KindCustom
)

func (k TypeKind) String() string {
	switch k {
	case KindUInt8:
		return "u8"
	case KindInt8:
		return "i8"
	case KindUInt16:
		return "u16"
	case KindInt16:
		return "i16"
	case KindUInt32:
		return "u32"
	case KindInt32:
		return "i32"
	case KindUInt64:
		return "u64"
	case KindInt64:
		return "i64"
	case KindFloat32:
		return "f32"
	case KindFloat64:
		return "f64"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTimestamp:
		return "timestamp"
	case KindDuration:
		return "duration"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindRecord:
		return "record"
	case KindCallbackInterface:
		return "callback_interface"
	case KindOptional:
		return "optional"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
}

// IsInteger returns true for the signed and unsigned integer kinds.
func (k TypeKind) IsInteger() bool {
	switch k {
	case KindUInt8, KindInt8, KindUInt16, KindInt16, KindUInt32, KindInt32, KindUInt64, KindInt64:
		return true
	}
	return false
}

// IsSignedInteger returns true for the signed integer kinds.
func (k TypeKind) IsSignedInteger() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
	return false
}

// ObjectImpl describes how an object type is implemented on the native side.
type ObjectImpl int

const (
	// ObjectImplStruct is a plain concrete object.
	ObjectImplStruct ObjectImpl = iota
	// ObjectImplTrait is a trait-backed object without foreign implementations.
	ObjectImplTrait
	// ObjectImplCallbackTrait is a trait-backed object that foreign code may implement.
	ObjectImplCallbackTrait
)

// HasCallbackInterface returns true if foreign code may supply its own
// implementation of the object.
func (i ObjectImpl) HasCallbackInterface() bool {
	return i == ObjectImplCallbackTrait
}

// Type is one instance of the IR type algebra. Which fields are meaningful
// depends on Kind: Name and ModulePath for named kinds, Inner for optional
// and sequence, Key/Value for map, Builtin for custom, Imp for object.
type Type struct {
	Kind       TypeKind
	Name       string
	ModulePath string
	Imp        ObjectImpl
	Builtin    *Type
	Inner      *Type
	Key        *Type
	Value      *Type
}

// Primitive builds a scalar, string, bytes, timestamp, or duration type.
func Primitive(kind TypeKind) Type {
	switch kind {
	case KindEnum, KindObject, KindRecord, KindCallbackInterface, KindOptional, KindSequence, KindMap, KindCustom:
		panic(fmt.Sprintf("model.Primitive called with non-primitive kind %s", kind))
	}
	return Type{Kind: kind}
}

// EnumType builds an enum type reference.
func EnumType(name, modulePath string) Type {
	return Type{Kind: KindEnum, Name: name, ModulePath: modulePath}
}

// RecordType builds a record type reference.
func RecordType(name, modulePath string) Type {
	return Type{Kind: KindRecord, Name: name, ModulePath: modulePath}
}

// ObjectType builds an object type reference.
func ObjectType(name, modulePath string, imp ObjectImpl) Type {
	return Type{Kind: KindObject, Name: name, ModulePath: modulePath, Imp: imp}
}

// CallbackInterfaceType builds a callback interface type reference.
func CallbackInterfaceType(name, modulePath string) Type {
	return Type{Kind: KindCallbackInterface, Name: name, ModulePath: modulePath}
}

// CustomType builds a custom type wrapping a builtin representation.
func CustomType(name, modulePath string, builtin Type) Type {
	b := builtin
	return Type{Kind: KindCustom, Name: name, ModulePath: modulePath, Builtin: &b}
}

// OptionalOf wraps a type as optional.
func OptionalOf(inner Type) Type {
	i := inner
	return Type{Kind: KindOptional, Inner: &i}
}

// SequenceOf wraps a type as a sequence.
func SequenceOf(inner Type) Type {
	i := inner
	return Type{Kind: KindSequence, Inner: &i}
}

// MapOf builds a map type from key and value types.
func MapOf(key, value Type) Type {
	k, v := key, value
	return Type{Kind: KindMap, Key: &k, Value: &v}
}

// String renders a structural description of the type, used as a stable
// identity key and in error messages.
func (t Type) String() string {
	switch t.Kind {
	case KindEnum, KindObject, KindRecord, KindCallbackInterface, KindCustom:
		if t.ModulePath != "" {
			return fmt.Sprintf("%s %s@%s", t.Kind, t.Name, t.ModulePath)
		}
		return fmt.Sprintf("%s %s", t.Kind, t.Name)
	case KindOptional:
		return t.Inner.String() + "?"
	case KindSequence:
		return "sequence<" + t.Inner.String() + ">"
	case KindMap:
		return "map<" + t.Key.String() + ", " + t.Value.String() + ">"
	default:
		return t.Kind.String()
	}
}

// CrateRoot returns the first segment of a native module path,
// e.g. "my_crate::submodule" yields "my_crate".
func CrateRoot(modulePath string) string {
	root, _, _ := strings.Cut(modulePath, "::")
	return root
}
