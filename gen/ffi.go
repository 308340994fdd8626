package gen

import (
	"fmt"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
)

// FfiTypeLabel returns the boxed Java representation of an FFI type, used
// in general surface code.
//
// Unsigned values have no true native support in Java; signed primitives
// carry unsigned values and callers use methods like Integer.compareUnsigned
// where unsigned semantics matter.
func FfiTypeLabel(t model.FfiType, cfg *Config, ci *model.ComponentInterface) string {
	switch t.Kind {
	case model.FfiInt8, model.FfiUInt8:
		return "Byte"
	case model.FfiInt16, model.FfiUInt16:
		return "Short"
	case model.FfiInt32, model.FfiUInt32:
		return "Integer"
	case model.FfiInt64, model.FfiUInt64, model.FfiHandle:
		return "Long"
	case model.FfiFloat32:
		return "Float"
	case model.FfiFloat64:
		return "Double"
	case model.FfiRustArcPtr, model.FfiVoidPointer:
		return "Pointer"
	case model.FfiRustBuffer:
		return rustBufferLabel(t, cfg, ci)
	case model.FfiRustCallStatus:
		return "UniffiRustCallStatus.ByValue"
	case model.FfiForeignBytes:
		return "ForeignBytes.ByValue"
	case model.FfiCallback:
		return FfiCallbackName(t.Name)
	case model.FfiStruct:
		return FfiStructName(t.Name)
	case model.FfiReference, model.FfiMutReference:
		return FfiTypeLabelByReference(*t.Inner, cfg, ci)
	default:
		panic(fmt.Sprintf("FfiTypeLabel: unhandled FFI kind %s", t.Kind))
	}
}

// rustBufferLabel resolves a buffer's class name. A buffer owned by another
// module must go through that module's own RustBuffer type so that the
// owning converter recognizes it.
func rustBufferLabel(t model.FfiType, cfg *Config, ci *model.ComponentInterface) string {
	if t.External != nil && model.CrateRoot(t.External.ModulePath) != ci.CrateName {
		return cfg.ExternalTypePackageName(t.External.ModulePath, t.External.Name) + ".RustBuffer"
	}
	return "RustBuffer"
}

// FfiTypePrimitive returns the unboxed representation where boxing is
// structurally forbidden, e.g. fields of marshaled structs. Aggregate kinds
// have no unboxed form and keep their object representation.
func FfiTypePrimitive(t model.FfiType, cfg *Config, ci *model.ComponentInterface) string {
	switch t.Kind {
	case model.FfiInt8, model.FfiUInt8:
		return "byte"
	case model.FfiInt16, model.FfiUInt16:
		return "short"
	case model.FfiInt32, model.FfiUInt32:
		return "int"
	case model.FfiInt64, model.FfiUInt64, model.FfiHandle:
		return "long"
	case model.FfiFloat32:
		return "float"
	case model.FfiFloat64:
		return "double"
	case model.FfiRustArcPtr, model.FfiVoidPointer:
		return "Pointer"
	case model.FfiRustBuffer:
		return rustBufferLabel(t, cfg, ci)
	case model.FfiRustCallStatus:
		return "UniffiRustCallStatus.ByValue"
	case model.FfiForeignBytes:
		return "ForeignBytes.ByValue"
	case model.FfiCallback:
		return FfiCallbackName(t.Name)
	case model.FfiStruct:
		return FfiStructName(t.Name)
	case model.FfiReference, model.FfiMutReference:
		return FfiTypeLabelByReference(*t.Inner, cfg, ci)
	default:
		panic(fmt.Sprintf("FfiTypePrimitive: unhandled FFI kind %s", t.Kind))
	}
}

// FfiTypeLabelByValue returns the representation for passing a value across
// the boundary by value.
func FfiTypeLabelByValue(t model.FfiType, preferPrimitive bool, cfg *Config, ci *model.ComponentInterface) string {
	switch {
	case t.Kind == model.FfiRustBuffer:
		return FfiTypeLabel(t, cfg, ci) + ".ByValue"
	case t.Kind == model.FfiStruct:
		return FfiStructName(t.Name) + ".UniffiByValue"
	case preferPrimitive:
		return FfiTypePrimitive(t, cfg, ci)
	default:
		return FfiTypeLabel(t, cfg, ci)
	}
}

// FfiTypeLabelForFfiStruct returns the representation to use for a field
// inside a marshaled struct. Every field must have a default value or the
// struct cannot be instantiated by the marshaling layer.
//
// Callback function pointers stay object-typed so they are nullable,
// matching C function pointer semantics and allowing null as a default.
func FfiTypeLabelForFfiStruct(t model.FfiType, cfg *Config, ci *model.ComponentInterface) string {
	if t.Kind == model.FfiCallback {
		return FfiCallbackName(t.Name)
	}
	return FfiTypeLabelByValue(t, true, cfg, ci)
}

// FfiDefaultValue returns a literal expression producing a zero-equivalent
// instance of an FFI type. The marshaling layer requires fully-initialized
// struct fields even on branches that never read them, so every kind
// reachable inside a marshaled struct must be covered.
func FfiDefaultValue(t model.FfiType) string {
	switch t.Kind {
	case model.FfiUInt8, model.FfiInt8:
		return "(byte)0"
	case model.FfiUInt16, model.FfiInt16:
		return "(short)0"
	case model.FfiUInt32, model.FfiInt32:
		return "0"
	case model.FfiUInt64, model.FfiInt64, model.FfiHandle:
		return "0L"
	case model.FfiFloat32:
		return "0.0f"
	case model.FfiFloat64:
		return "0.0"
	case model.FfiRustArcPtr, model.FfiVoidPointer:
		return "Pointer.NULL"
	case model.FfiRustBuffer:
		return "new RustBuffer.ByValue()"
	case model.FfiCallback:
		return "null"
	case model.FfiStruct:
		return "new " + FfiStructName(t.Name) + ".UniffiByValue()"
	case model.FfiRustCallStatus:
		return "new UniffiRustCallStatus.ByValue()"
	default:
		panic(fmt.Sprintf("FfiDefaultValue: no default for FFI kind %s", t.Kind))
	}
}

// FfiTypeLabelByReference returns the representation of a pointer-to-t used
// for out-parameters. Legal only for scalar numerics, opaque pointers,
// buffers, and structs; anything else is a programming fault.
func FfiTypeLabelByReference(t model.FfiType, cfg *Config, ci *model.ComponentInterface) string {
	switch t.Kind {
	case model.FfiInt32, model.FfiUInt32:
		return "IntByReference"
	case model.FfiInt8, model.FfiUInt8, model.FfiInt16, model.FfiUInt16,
		model.FfiInt64, model.FfiUInt64, model.FfiFloat32, model.FfiFloat64:
		return FfiTypeLabel(t, cfg, ci) + "ByReference"
	case model.FfiRustArcPtr:
		return "PointerByReference"
	case model.FfiRustBuffer, model.FfiStruct:
		// Marshaled structs default to by-reference.
		return FfiTypeLabel(t, cfg, ci)
	default:
		panic(fmt.Sprintf("FfiTypeLabelByReference: %s by reference is not implemented", t.Kind))
	}
}
