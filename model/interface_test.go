package model

import (
	"reflect"
	"testing"
)

func demoInterface() *ComponentInterface {
	str := Primitive(KindString)
	point := RecordType("Point", "demo")
	shape := RecordType("Shape", "shapes::geo")

	return &ComponentInterface{
		CrateName: "demo",
		Namespace: "demo",
		Records: []RecordDef{
			{
				Name: "Point",
				Fields: []FieldDef{
					{Name: "labels", Type: SequenceOf(str)},
				},
			},
		},
		Enums: []EnumDef{
			{Name: "DemoError", IsError: true, Variants: []VariantDef{{Name: "oops"}}},
		},
		ExternalTypes: []Type{shape},
		Functions: []FunctionDef{
			{
				Name:   "locate",
				Args:   []ArgumentDef{{Name: "hint", Type: OptionalOf(point)}},
				Return: &shape,
			},
		},
	}
}

// AllTypes must surface compound inner types, deduplicate across call sites,
// and come back in the same order every time.
func TestAllTypes(t *testing.T) {
	ci := demoInterface()
	types := ci.AllTypes()

	counts := map[string]int{}
	for _, typ := range types {
		counts[typ.String()]++
	}
	for key, n := range counts {
		if n > 1 {
			t.Errorf("type %s appears %d times", key, n)
		}
	}
	for _, want := range []string{
		RecordType("Point", "demo").String(),
		OptionalOf(RecordType("Point", "demo")).String(),
		SequenceOf(Primitive(KindString)).String(),
		Primitive(KindString).String(),
		EnumType("DemoError", "demo").String(),
		RecordType("Shape", "shapes::geo").String(),
	} {
		if counts[want] != 1 {
			t.Errorf("missing type %s in %v", want, counts)
		}
	}

	again := ci.AllTypes()
	if !reflect.DeepEqual(types, again) {
		t.Error("AllTypes order is not stable across calls")
	}
}

func TestLocalTypesFiltersExternal(t *testing.T) {
	ci := demoInterface()
	for _, typ := range ci.LocalTypes() {
		if typ.Name == "Shape" {
			t.Error("external type leaked into LocalTypes")
		}
	}
	foundPoint := false
	for _, typ := range ci.LocalTypes() {
		if typ.Name == "Point" && typ.Kind == KindRecord {
			foundPoint = true
		}
	}
	if !foundPoint {
		t.Error("local record missing from LocalTypes")
	}
}

func TestIsExternal(t *testing.T) {
	ci := demoInterface()
	if ci.IsExternal(RecordType("Point", "demo")) {
		t.Error("locally owned type reported external")
	}
	if !ci.IsExternal(RecordType("Shape", "shapes::geo")) {
		t.Error("type from another crate root not reported external")
	}
	if ci.IsExternal(OptionalOf(Primitive(KindString))) {
		t.Error("anonymous compound reported external")
	}
}

func TestIsNameUsedAsError(t *testing.T) {
	ci := demoInterface()
	if !ci.IsNameUsedAsError("DemoError") {
		t.Error("error-flagged enum not recognized")
	}
	if ci.IsNameUsedAsError("Point") {
		t.Error("plain record recognized as error")
	}

	throwsType := EnumType("LateError", "demo")
	ci.Objects = append(ci.Objects, ObjectDef{
		Name: "Engine",
		Methods: []FunctionDef{
			{Name: "run", Throws: &throwsType},
		},
	})
	if !ci.IsNameUsedAsError("LateError") {
		t.Error("throws usage not recognized as error")
	}
}

func TestGetType(t *testing.T) {
	ci := demoInterface()

	typ, ok := ci.GetType("Point")
	if !ok || typ.Kind != KindRecord || typ.ModulePath != "demo" {
		t.Errorf("GetType(Point) = %+v, %v", typ, ok)
	}
	typ, ok = ci.GetType("Shape")
	if !ok || typ.ModulePath != "shapes::geo" {
		t.Errorf("GetType(Shape) = %+v, %v", typ, ok)
	}
	if _, ok := ci.GetType("Missing"); ok {
		t.Error("GetType should miss on unknown names")
	}
}

func TestFutureFfiNames(t *testing.T) {
	ci := &ComponentInterface{CrateName: "demo"}
	boolT := Primitive(KindBoolean)
	point := RecordType("Point", "demo")
	engine := ObjectType("Engine", "demo", ObjectImplStruct)

	tests := []struct {
		ret  *Type
		want string
	}{
		{nil, "ffi_demo_rust_future_poll_void"},
		{&boolT, "ffi_demo_rust_future_poll_i8"},
		{&point, "ffi_demo_rust_future_poll_rust_buffer"},
		{&engine, "ffi_demo_rust_future_poll_pointer"},
	}
	for _, tt := range tests {
		f := &FunctionDef{Name: "go", Async: true, Return: tt.ret}
		if got := ci.FfiRustFuturePoll(f); got != tt.want {
			t.Errorf("poll name = %q, want %q", got, tt.want)
		}
	}

	f := &FunctionDef{Name: "go", Async: true, Return: &boolT}
	if got := ci.FfiRustFutureComplete(f); got != "ffi_demo_rust_future_complete_i8" {
		t.Errorf("complete name = %q", got)
	}
	if got := ci.FfiRustFutureFree(f); got != "ffi_demo_rust_future_free_i8" {
		t.Errorf("free name = %q", got)
	}
}
