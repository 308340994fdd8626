package gen

import (
	"testing"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
)

func TestFfiDefaultValue(t *testing.T) {
	tests := []struct {
		ffi  model.FfiType
		want string
	}{
		{model.FfiType{Kind: model.FfiUInt8}, "(byte)0"},
		{model.FfiType{Kind: model.FfiInt16}, "(short)0"},
		{model.FfiType{Kind: model.FfiInt32}, "0"},
		{model.FfiType{Kind: model.FfiUInt64}, "0L"},
		{model.FfiType{Kind: model.FfiHandle}, "0L"},
		{model.FfiType{Kind: model.FfiFloat32}, "0.0f"},
		{model.FfiType{Kind: model.FfiFloat64}, "0.0"},
		{model.FfiType{Kind: model.FfiRustArcPtr}, "Pointer.NULL"},
		{model.FfiType{Kind: model.FfiRustBuffer}, "new RustBuffer.ByValue()"},
		{model.FfiType{Kind: model.FfiCallback, Name: "callback_interface_free"}, "null"},
		{model.FfiType{Kind: model.FfiStruct, Name: "foreign_future"}, "new UniffiForeignFuture.UniffiByValue()"},
		{model.FfiType{Kind: model.FfiRustCallStatus}, "new UniffiRustCallStatus.ByValue()"},
	}
	for _, tt := range tests {
		if got := FfiDefaultValue(tt.ffi); got != tt.want {
			t.Errorf("FfiDefaultValue(%s) = %q, want %q", tt.ffi.Kind, got, tt.want)
		}
	}
}

func TestFfiDefaultValuePanicsForForeignBytes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for foreign bytes default value")
		}
	}()
	FfiDefaultValue(model.FfiType{Kind: model.FfiForeignBytes})
}

func TestFfiTypeLabelByReference(t *testing.T) {
	cfg := &Config{}
	ci := &model.ComponentInterface{CrateName: "demo"}
	tests := []struct {
		ffi  model.FfiType
		want string
	}{
		{model.FfiType{Kind: model.FfiInt32}, "IntByReference"},
		{model.FfiType{Kind: model.FfiUInt32}, "IntByReference"},
		{model.FfiType{Kind: model.FfiInt64}, "LongByReference"},
		{model.FfiType{Kind: model.FfiFloat64}, "DoubleByReference"},
		{model.FfiType{Kind: model.FfiRustArcPtr}, "PointerByReference"},
		{model.FfiType{Kind: model.FfiRustBuffer}, "RustBuffer"},
	}
	for _, tt := range tests {
		if got := FfiTypeLabelByReference(tt.ffi, cfg, ci); got != tt.want {
			t.Errorf("FfiTypeLabelByReference(%s) = %q, want %q", tt.ffi.Kind, got, tt.want)
		}
	}
}

func TestFfiTypeLabelByReferencePanicsForCallback(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for callback by reference")
		}
	}()
	FfiTypeLabelByReference(model.FfiType{Kind: model.FfiCallback, Name: "cb"}, &Config{}, &model.ComponentInterface{})
}

func TestRustBufferLabelResolution(t *testing.T) {
	cfg := &Config{ExternalPackages: map[string]string{"crate_b": "com.example.b"}}
	ci := &model.ComponentInterface{CrateName: "crate_a"}

	tests := []struct {
		name string
		ffi  model.FfiType
		want string
	}{
		{
			"anonymous buffer is local",
			model.FfiType{Kind: model.FfiRustBuffer},
			"RustBuffer",
		},
		{
			"locally owned buffer is local",
			model.FfiType{Kind: model.FfiRustBuffer, External: &model.ExternalFfiMetadata{Name: "Point", ModulePath: "crate_a"}},
			"RustBuffer",
		},
		{
			"override hit, crate root extracted from nested path",
			model.FfiType{Kind: model.FfiRustBuffer, External: &model.ExternalFfiMetadata{Name: "Shape", ModulePath: "crate_b::geo"}},
			"com.example.b.RustBuffer",
		},
		{
			"override miss falls back to the fixed prefix",
			model.FfiType{Kind: model.FfiRustBuffer, External: &model.ExternalFfiMetadata{Name: "Shape", ModulePath: "mystery"}},
			"uniffi.Shape.RustBuffer",
		},
	}
	for _, tt := range tests {
		if got := FfiTypeLabel(tt.ffi, cfg, ci); got != tt.want {
			t.Errorf("%s: FfiTypeLabel = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFfiTypeLabelByValue(t *testing.T) {
	cfg := &Config{}
	ci := &model.ComponentInterface{CrateName: "demo"}

	if got := FfiTypeLabelByValue(model.FfiType{Kind: model.FfiRustBuffer}, false, cfg, ci); got != "RustBuffer.ByValue" {
		t.Errorf("buffer by value = %q, want RustBuffer.ByValue", got)
	}
	if got := FfiTypeLabelByValue(model.FfiType{Kind: model.FfiStruct, Name: "foreign_future"}, false, cfg, ci); got != "UniffiForeignFuture.UniffiByValue" {
		t.Errorf("struct by value = %q, want UniffiForeignFuture.UniffiByValue", got)
	}
	if got := FfiTypeLabelByValue(model.FfiType{Kind: model.FfiInt32}, true, cfg, ci); got != "int" {
		t.Errorf("preferred primitive = %q, want int", got)
	}
	if got := FfiTypeLabelByValue(model.FfiType{Kind: model.FfiInt32}, false, cfg, ci); got != "Integer" {
		t.Errorf("boxed = %q, want Integer", got)
	}
}

// Aggregate kinds must keep their object representation in primitive
// position; only scalars unbox.
func TestFfiTypePrimitiveMatchesObjectReprForAggregates(t *testing.T) {
	cfg := &Config{}
	ci := &model.ComponentInterface{CrateName: "demo"}
	aggregates := []model.FfiType{
		{Kind: model.FfiRustBuffer},
		{Kind: model.FfiForeignBytes},
		{Kind: model.FfiCallback, Name: "cb"},
		{Kind: model.FfiStruct, Name: "foreign_future"},
	}
	for _, ffi := range aggregates {
		obj := FfiTypeLabel(ffi, cfg, ci)
		prim := FfiTypePrimitive(ffi, cfg, ci)
		if obj != prim {
			t.Errorf("%s: primitive %q differs from object %q", ffi.Kind, prim, obj)
		}
	}
	if got := FfiTypePrimitive(model.FfiType{Kind: model.FfiInt64}, cfg, ci); got != "long" {
		t.Errorf("scalar primitive = %q, want long", got)
	}
}

func TestFfiTypeLabelForFfiStructKeepsCallbacksNullable(t *testing.T) {
	cfg := &Config{}
	ci := &model.ComponentInterface{CrateName: "demo"}
	if got := FfiTypeLabelForFfiStruct(model.FfiType{Kind: model.FfiCallback, Name: "free_callback"}, cfg, ci); got != "UniffiFreeCallback" {
		t.Errorf("callback struct field = %q, want UniffiFreeCallback", got)
	}
	if got := FfiTypeLabelForFfiStruct(model.FfiType{Kind: model.FfiInt8}, cfg, ci); got != "byte" {
		t.Errorf("scalar struct field = %q, want byte", got)
	}
}
