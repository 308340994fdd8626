package model

import "fmt"

// FfiKind enumerates the native-boundary type algebra. It is deliberately
// smaller than TypeKind: most aggregate IR types cross the boundary as a
// serialized RustBuffer.
type FfiKind int

const (
	FfiUInt8 FfiKind = iota
	FfiInt8
	FfiUInt16
	FfiInt16
	FfiUInt32
	FfiInt32
	FfiUInt64
	FfiInt64
	FfiFloat32
	FfiFloat64
	// FfiHandle is an opaque 64-bit handle, used for callback interfaces
	// and future handles.
	FfiHandle
	// FfiRustArcPtr is an opaque pointer to a native-owned object.
	FfiRustArcPtr
	// FfiRustBuffer is a growable byte buffer owned by a generated module.
	FfiRustBuffer
	// FfiForeignBytes is a raw byte span owned by foreign code.
	FfiForeignBytes
	// FfiCallback is a callback function pointer.
	FfiCallback
	// FfiStruct is a plain struct passed across the boundary.
	FfiStruct
	// FfiRustCallStatus is the out-parameter struct describing call outcome.
	FfiRustCallStatus
	// FfiReference is a pointer-to-T used for out-parameters.
	FfiReference
	// FfiMutReference is a mutable pointer-to-T used for out-parameters.
	FfiMutReference
	// FfiVoidPointer is an untyped pointer.
	FfiVoidPointer
)

func (k FfiKind) String() string {
	switch k {
	case FfiUInt8:
		return "u8"
	case FfiInt8:
		return "i8"
	case FfiUInt16:
		return "u16"
	case FfiInt16:
		return "i16"
	case FfiUInt32:
		return "u32"
	case FfiInt32:
		return "i32"
	case FfiUInt64:
		return "u64"
	case FfiInt64:
		return "i64"
	case FfiFloat32:
		return "f32"
	case FfiFloat64:
		return "f64"
	case FfiHandle:
		return "handle"
	case FfiRustArcPtr:
		return "rust_arc_ptr"
	case FfiRustBuffer:
		return "rust_buffer"
	case FfiForeignBytes:
		return "foreign_bytes"
	case FfiCallback:
		return "callback"
	case FfiStruct:
		return "struct"
	case FfiRustCallStatus:
		return "rust_call_status"
	case FfiReference:
		return "reference"
	case FfiMutReference:
		return "mut_reference"
	case FfiVoidPointer:
		return "void_pointer"
	default:
		return fmt.Sprintf("FfiKind(%d)", int(k))
	}
}

// ExternalFfiMetadata records which module a RustBuffer originates from.
// Buffers from another module must be handled through that module's own
// buffer type so that ownership stays with the owning converter.
type ExternalFfiMetadata struct {
	Name       string
	ModulePath string
}

// FfiType is one instance of the native-boundary algebra. Name is set for
// callbacks, structs, and arc pointers; External for buffers; Inner for
// references.
type FfiType struct {
	Kind     FfiKind
	Name     string
	External *ExternalFfiMetadata
	Inner    *FfiType
}

// FfiReferenceTo wraps an FFI type as an out-parameter reference.
// A reference to a reference is not a legal construction.
func FfiReferenceTo(inner FfiType) FfiType {
	if inner.Kind == FfiReference || inner.Kind == FfiMutReference {
		panic(fmt.Sprintf("FFI reference to %s: reference-to-reference is not a valid construction", inner.Kind))
	}
	i := inner
	return FfiType{Kind: FfiReference, Inner: &i}
}

// FfiMutReferenceTo wraps an FFI type as a mutable out-parameter reference.
func FfiMutReferenceTo(inner FfiType) FfiType {
	if inner.Kind == FfiReference || inner.Kind == FfiMutReference {
		panic(fmt.Sprintf("FFI mutable reference to %s: reference-to-reference is not a valid construction", inner.Kind))
	}
	i := inner
	return FfiType{Kind: FfiMutReference, Inner: &i}
}

// FfiTypeOf lowers an IR type to its native-boundary representation.
func FfiTypeOf(t Type) FfiType {
	switch t.Kind {
	case KindUInt8:
		return FfiType{Kind: FfiUInt8}
	case KindInt8, KindBoolean:
		return FfiType{Kind: FfiInt8}
	case KindUInt16:
		return FfiType{Kind: FfiUInt16}
	case KindInt16:
		return FfiType{Kind: FfiInt16}
	case KindUInt32:
		return FfiType{Kind: FfiUInt32}
	case KindInt32:
		return FfiType{Kind: FfiInt32}
	case KindUInt64:
		return FfiType{Kind: FfiUInt64}
	case KindInt64:
		return FfiType{Kind: FfiInt64}
	case KindFloat32:
		return FfiType{Kind: FfiFloat32}
	case KindFloat64:
		return FfiType{Kind: FfiFloat64}
	case KindObject:
		return FfiType{Kind: FfiRustArcPtr, Name: t.Name}
	case KindCallbackInterface:
		return FfiType{Kind: FfiHandle}
	case KindString, KindBytes, KindTimestamp, KindDuration,
		KindEnum, KindRecord, KindOptional, KindSequence, KindMap:
		return rustBufferFor(t)
	case KindCustom:
		// Customs cross the boundary as their builtin representation. When
		// that representation is a buffer, the buffer keeps the custom
		// type's identity so external buffers can be re-homed.
		ft := FfiTypeOf(*t.Builtin)
		if ft.Kind == FfiRustBuffer && t.ModulePath != "" {
			return rustBufferFor(t)
		}
		return ft
	default:
		panic(fmt.Sprintf("no FFI lowering for IR kind %s", t.Kind))
	}
}

func rustBufferFor(t Type) FfiType {
	if t.Name != "" && t.ModulePath != "" {
		return FfiType{Kind: FfiRustBuffer, External: &ExternalFfiMetadata{Name: t.Name, ModulePath: t.ModulePath}}
	}
	return FfiType{Kind: FfiRustBuffer}
}
