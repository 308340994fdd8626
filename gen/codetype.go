package gen

import (
	"fmt"
	"strconv"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
)

// CodeType describes how one IR type renders in generated Java. Descriptors
// own no state; every attribute is a pure function of the type, the config,
// and the interface snapshot, so they are recreated freely on demand.
type CodeType interface {
	// TypeLabel is the Java type used in signatures and declarations.
	TypeLabel(ci *model.ComponentInterface, cfg *Config) string
	// CanonicalName is a name-safe identifier derived from the type's
	// structure, used to build companion converter names. Structurally
	// distinct types yield distinct canonical names; the same structure
	// always yields the same name.
	CanonicalName() string
}

// Optional extensions a descriptor may implement.
type converterInstancer interface {
	FfiConverterInstance(cfg *Config, ci *model.ComponentInterface) string
}

type importer interface {
	Imports(cfg *Config) []string
}

type initializer interface {
	InitializationFn() string
}

// FindCodeType maps an IR type to its descriptor. The switch is the single
// dispatch point over the closed algebra; an unhandled kind is a defect in
// this table, so it panics rather than degrading.
func FindCodeType(t model.Type) CodeType {
	switch t.Kind {
	case model.KindUInt8, model.KindInt8:
		return int8CodeType{}
	case model.KindUInt16, model.KindInt16:
		return int16CodeType{}
	case model.KindUInt32, model.KindInt32:
		return int32CodeType{}
	case model.KindUInt64, model.KindInt64:
		return int64CodeType{}
	case model.KindFloat32:
		return float32CodeType{}
	case model.KindFloat64:
		return float64CodeType{}
	case model.KindBoolean:
		return booleanCodeType{}
	case model.KindString:
		return stringCodeType{}
	case model.KindBytes:
		return bytesCodeType{}
	case model.KindTimestamp:
		return timestampCodeType{}
	case model.KindDuration:
		return durationCodeType{}
	case model.KindEnum:
		return enumCodeType{name: t.Name}
	case model.KindObject:
		return objectCodeType{name: t.Name, imp: t.Imp}
	case model.KindRecord:
		return recordCodeType{name: t.Name}
	case model.KindCallbackInterface:
		return callbackInterfaceCodeType{name: t.Name}
	case model.KindOptional:
		return optionalCodeType{inner: *t.Inner}
	case model.KindSequence:
		return sequenceCodeType{inner: *t.Inner}
	case model.KindMap:
		return mapCodeType{key: *t.Key, value: *t.Value}
	case model.KindCustom:
		return customCodeType{name: t.Name, builtin: *t.Builtin}
	default:
		panic(fmt.Sprintf("FindCodeType: unhandled IR kind %s", t.Kind))
	}
}

// FfiConverterName names the object holding the four boundary-crossing
// operations (lower, write, lift, read) for a type.
func FfiConverterName(ct CodeType) string {
	return "FfiConverter" + ct.CanonicalName()
}

// FfiConverterInstance names the converter instance expression. The default
// convention is the singleton accessor on the converter; descriptors may
// override it.
func FfiConverterInstance(ct CodeType, cfg *Config, ci *model.ComponentInterface) string {
	if o, ok := ct.(converterInstancer); ok {
		return o.FfiConverterInstance(cfg, ci)
	}
	return FfiConverterName(ct) + ".INSTANCE"
}

// ImportsOf returns the external references needed wherever the type is
// used. Deduplication is the emitter's job.
func ImportsOf(ct CodeType, cfg *Config) []string {
	if o, ok := ct.(importer); ok {
		return o.Imports(cfg)
	}
	return nil
}

// InitializationFn returns the name of a one-time setup routine for the
// type, or "" when the type needs none.
func InitializationFn(ct CodeType) string {
	if o, ok := ct.(initializer); ok {
		return o.InitializationFn()
	}
	return ""
}

// LowerFn, WriteFn, LiftFn, ReadFn name the four converter operations.
func LowerFn(ct CodeType, cfg *Config, ci *model.ComponentInterface) string {
	return FfiConverterInstance(ct, cfg, ci) + ".lower"
}

func WriteFn(ct CodeType, cfg *Config, ci *model.ComponentInterface) string {
	return FfiConverterInstance(ct, cfg, ci) + ".write"
}

func LiftFn(ct CodeType, cfg *Config, ci *model.ComponentInterface) string {
	return FfiConverterInstance(ct, cfg, ci) + ".lift"
}

func ReadFn(ct CodeType, cfg *Config, ci *model.ComponentInterface) string {
	return FfiConverterInstance(ct, cfg, ci) + ".read"
}

// AllocationSizeFn names the converter's size estimator.
func AllocationSizeFn(ct CodeType, cfg *Config, ci *model.ComponentInterface) string {
	return FfiConverterInstance(ct, cfg, ci) + ".allocationSize"
}

// VariantDiscrLiteral renders the discriminant of one enum variant. Only
// integer-backed discriminants are supported; any other literal kind is an
// unsupported construct, named in the error, never guessed at.
func VariantDiscrLiteral(e *model.EnumDef, index int) (string, error) {
	if index < 0 || index >= len(e.Variants) {
		return "", fmt.Errorf("enum %q has no variant at index %d", e.Name, index)
	}
	v := e.Variants[index]
	if v.Discr == nil {
		return "", fmt.Errorf("enum %q variant %q has no discriminant", e.Name, v.Name)
	}
	if e.Repr == nil {
		return "", fmt.Errorf("enum %q has not declared a discriminant representation", e.Name)
	}
	var base10 string
	switch v.Discr.Kind {
	case model.LiteralInt:
		base10 = strconv.FormatInt(v.Discr.Int, 10)
	case model.LiteralUInt:
		base10 = strconv.FormatUint(v.Discr.UInt, 10)
	default:
		return "", fmt.Errorf("enum %q variant %q: unsupported literal kind %s, only integers are supported", e.Name, v.Name, v.Discr.Kind)
	}
	switch {
	case e.Repr.Kind.IsSignedInteger():
		return base10, nil
	case e.Repr.Kind.IsInteger():
		// Java has no unsigned conversions by default, so unsigned
		// discriminants are marked for the call site.
		return base10 + "u", nil
	default:
		return "", fmt.Errorf("enum %q declares non-integer discriminant representation %s", e.Name, e.Repr.Kind)
	}
}
