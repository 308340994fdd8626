package model

import "testing"

func TestFfiTypeOf(t *testing.T) {
	str := Primitive(KindString)
	u32 := Primitive(KindUInt32)

	tests := []struct {
		name string
		typ  Type
		want FfiKind
	}{
		{"u8", Primitive(KindUInt8), FfiUInt8},
		{"i8", Primitive(KindInt8), FfiInt8},
		{"boolean", Primitive(KindBoolean), FfiInt8},
		{"u16", Primitive(KindUInt16), FfiUInt16},
		{"i16", Primitive(KindInt16), FfiInt16},
		{"u32", u32, FfiUInt32},
		{"i32", Primitive(KindInt32), FfiInt32},
		{"u64", Primitive(KindUInt64), FfiUInt64},
		{"i64", Primitive(KindInt64), FfiInt64},
		{"f32", Primitive(KindFloat32), FfiFloat32},
		{"f64", Primitive(KindFloat64), FfiFloat64},
		{"string", str, FfiRustBuffer},
		{"bytes", Primitive(KindBytes), FfiRustBuffer},
		{"timestamp", Primitive(KindTimestamp), FfiRustBuffer},
		{"duration", Primitive(KindDuration), FfiRustBuffer},
		{"enum", EnumType("Color", "demo"), FfiRustBuffer},
		{"record", RecordType("Point", "demo"), FfiRustBuffer},
		{"object", ObjectType("Engine", "demo", ObjectImplStruct), FfiRustArcPtr},
		{"callback interface", CallbackInterfaceType("OnEvent", "demo"), FfiHandle},
		{"optional", OptionalOf(str), FfiRustBuffer},
		{"sequence", SequenceOf(str), FfiRustBuffer},
		{"map", MapOf(str, u32), FfiRustBuffer},
	}
	for _, tt := range tests {
		if got := FfiTypeOf(tt.typ); got.Kind != tt.want {
			t.Errorf("FfiTypeOf(%s).Kind = %s, want %s", tt.name, got.Kind, tt.want)
		}
	}
}

func TestFfiTypeOfObjectCarriesName(t *testing.T) {
	ft := FfiTypeOf(ObjectType("Engine", "demo", ObjectImplStruct))
	if ft.Name != "Engine" {
		t.Errorf("arc pointer name = %q, want Engine", ft.Name)
	}
}

// Named buffer-crossing types keep their origin so another module's buffers
// can be routed through the owning converter. Anonymous compounds carry no
// origin.
func TestFfiTypeOfBufferMetadata(t *testing.T) {
	ft := FfiTypeOf(RecordType("Point", "geometry"))
	if ft.External == nil {
		t.Fatal("named record buffer should carry origin metadata")
	}
	if ft.External.Name != "Point" || ft.External.ModulePath != "geometry" {
		t.Errorf("metadata = %+v", ft.External)
	}

	anon := FfiTypeOf(OptionalOf(Primitive(KindString)))
	if anon.External != nil {
		t.Errorf("anonymous compound should carry no metadata, got %+v", anon.External)
	}
}

// Customs cross the boundary as their builtin representation. A scalar
// builtin passes straight through; a buffer builtin keeps the custom
// type's own identity.
func TestFfiTypeOfCustom(t *testing.T) {
	scalar := CustomType("Handle", "demo", Primitive(KindUInt64))
	if got := FfiTypeOf(scalar); got.Kind != FfiUInt64 || got.External != nil {
		t.Errorf("scalar-backed custom = %+v, want bare u64", got)
	}

	url := CustomType("Url", "demo", Primitive(KindString))
	got := FfiTypeOf(url)
	if got.Kind != FfiRustBuffer {
		t.Fatalf("string-backed custom kind = %s, want rust_buffer", got.Kind)
	}
	if got.External == nil || got.External.Name != "Url" {
		t.Errorf("string-backed custom should keep its own identity, got %+v", got.External)
	}
}

func TestFfiReferenceToRejectsNesting(t *testing.T) {
	ref := FfiReferenceTo(FfiType{Kind: FfiInt32})
	if ref.Kind != FfiReference || ref.Inner.Kind != FfiInt32 {
		t.Errorf("reference = %+v", ref)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for reference-to-reference")
		}
	}()
	FfiReferenceTo(ref)
}

func TestFfiMutReferenceToRejectsNesting(t *testing.T) {
	ref := FfiMutReferenceTo(FfiType{Kind: FfiRustArcPtr})
	if ref.Kind != FfiMutReference {
		t.Errorf("reference = %+v", ref)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for reference-to-reference")
		}
	}()
	FfiMutReferenceTo(ref)
}
