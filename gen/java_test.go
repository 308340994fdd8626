package gen

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
)

func geometryInterface() *model.ComponentInterface {
	i32 := model.Primitive(model.KindInt32)
	f64 := model.Primitive(model.KindFloat64)
	str := model.Primitive(model.KindString)
	point := model.RecordType("Point", "geometry")
	geomErr := model.EnumType("GeometryError", "geometry")

	return &model.ComponentInterface{
		CrateName: "geometry",
		Namespace: "geometry",
		Records: []model.RecordDef{
			{
				Name: "Point",
				Fields: []model.FieldDef{
					{Name: "x", Type: i32},
					{Name: "y", Type: i32},
				},
			},
		},
		Enums: []model.EnumDef{
			{
				Name:    "GeometryError",
				IsError: true,
				Variants: []model.VariantDef{
					{Name: "invalid_point"},
				},
			},
		},
		Functions: []model.FunctionDef{
			{
				Name: "distance",
				Args: []model.ArgumentDef{
					{Name: "a", Type: point},
					{Name: "b", Type: point},
				},
				Return: &f64,
				Throws: &geomErr,
			},
			{
				Name: "label_for",
				Args: []model.ArgumentDef{
					{Name: "class", Type: str},
				},
				Return: &str,
			},
		},
	}
}

func TestGenerateRecords(t *testing.T) {
	ci := geometryInterface()

	immutable, err := Generate(&Config{PackageName: "com.example.geometry", GenerateImmutableRecords: true}, ci)
	require.NoError(t, err)
	assert.Contains(t, immutable, "public record Point(Integer x, Integer y) {}")

	mutable, err := Generate(&Config{PackageName: "com.example.geometry"}, ci)
	require.NoError(t, err)
	assert.Contains(t, mutable, "public class Point {")
	assert.Contains(t, mutable, "public void setX(Integer value)")
}

func TestGenerateFunctions(t *testing.T) {
	out, err := Generate(&Config{PackageName: "com.example.geometry"}, geometryInterface())
	require.NoError(t, err)

	assert.Contains(t, out, "public final class Geometry {")
	assert.Contains(t, out, "public static Double distance(Point a, Point b) throws GeometryException {")
	assert.Contains(t, out, "UniffiHelpers.uniffiRustCallWithError(FfiConverterTypeGeometryError.INSTANCE,")
	assert.Contains(t, out, "Double uniffi_geometry_fn_func_distance(RustBuffer.ByValue a, RustBuffer.ByValue b, UniffiRustCallStatus uniffiOutErr);")

	// Reserved words in argument names are escaped consistently between the
	// signature and the lowered call.
	assert.Contains(t, out, "public static String labelFor(String _class) {")
	assert.Contains(t, out, "FfiConverterString.INSTANCE.lower(_class)")
}

func TestGenerateErrorEnum(t *testing.T) {
	out, err := Generate(&Config{PackageName: "com.example.geometry"}, geometryInterface())
	require.NoError(t, err)

	assert.Contains(t, out, "public class GeometryException extends Exception {")
	assert.Contains(t, out, "public static class InvalidPoint extends GeometryException {")
	assert.Contains(t, out, "enum FfiConverterTypeGeometryError implements FfiConverterRustBuffer<GeometryException> {")
}

// Two call sites referencing the same type must not duplicate its helper.
func TestGenerateEmitsEachHelperOnce(t *testing.T) {
	out, err := Generate(&Config{PackageName: "com.example.geometry"}, geometryInterface())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "enum FfiConverterTypePoint "))
	assert.Equal(t, 1, strings.Count(out, "enum FfiConverterString "))
}

func TestGenerateObjectAndAsync(t *testing.T) {
	f64 := model.Primitive(model.KindFloat64)
	ci := &model.ComponentInterface{
		CrateName: "engine",
		Namespace: "engine",
		Objects: []model.ObjectDef{
			{
				Name: "Engine",
				Imp:  model.ObjectImplStruct,
				Constructors: []model.FunctionDef{
					{Name: "new"},
				},
				Methods: []model.FunctionDef{
					{Name: "run", Async: true, Return: &f64},
				},
			},
		},
	}
	out, err := Generate(&Config{PackageName: "com.example.engine"}, ci)
	require.NoError(t, err)

	assert.Contains(t, out, "public interface EngineInterface {")
	assert.Contains(t, out, "public class Engine implements EngineInterface, AutoCloseable {")
	assert.Contains(t, out, "CompletableFuture<Double> run()")
	assert.Contains(t, out, "void ffi_engine_rust_future_poll_f64(long handle, UniffiRustFutureContinuationCallback callback, long continuationHandle);")
	assert.Contains(t, out, "Pointer uniffi_engine_fn_constructor_engine_new(UniffiRustCallStatus uniffiOutErr);")
	assert.Contains(t, out, "long uniffi_engine_fn_method_engine_run(Pointer ptr);")
	assert.NotContains(t, out, "UniffiInitializer")

	// Constructor names are methods, so the keyword escape applies.
	assert.Contains(t, out, "public static Engine _new()")
}

// A trait object implemented in Java has no native pointer to clone, so its
// converter pins the instance in the vtable's handle map.
func TestGenerateCallbackTraitObject(t *testing.T) {
	f64 := model.Primitive(model.KindFloat64)
	ci := &model.ComponentInterface{
		CrateName: "geometry",
		Namespace: "geometry",
		Objects: []model.ObjectDef{
			{
				Name: "Plane",
				Imp:  model.ObjectImplCallbackTrait,
				Methods: []model.FunctionDef{
					{Name: "area", Return: &f64},
				},
			},
		},
	}
	out, err := Generate(&Config{PackageName: "com.example.geometry"}, ci)
	require.NoError(t, err)

	assert.Contains(t, out, "Pointer lower(Plane value) {\n        return new Pointer(UniffiCallbackInterfacePlane.handleMap.insert(value));")
	assert.NotContains(t, out, "value.uniffiClonePointer()")
	assert.Contains(t, out, "class UniffiVTableCallbackInterfacePlane extends Structure {")
	assert.Contains(t, out, "UniffiCallbackInterfacePlane.INSTANCE.register(UniffiLib.getInstance());")
}

// A foreign implementation that throws its declared error must have the
// payload serialized into the call status, not swallowed.
func TestGenerateCallbackThrowsLowersError(t *testing.T) {
	geomErr := model.EnumType("GeometryError", "events")
	ci := &model.ComponentInterface{
		CrateName: "events",
		Namespace: "events",
		Enums: []model.EnumDef{
			{Name: "GeometryError", IsError: true, Variants: []model.VariantDef{{Name: "invalid_point"}}},
		},
		CallbackInterfaces: []model.CallbackInterfaceDef{
			{Name: "OnEvent", Methods: []model.FunctionDef{{Name: "handle", Throws: &geomErr}}},
		},
	}
	out, err := Generate(&Config{PackageName: "com.example.events"}, ci)
	require.NoError(t, err)

	assert.Contains(t, out, "void handle() throws GeometryException;")
	assert.Contains(t, out, "} catch (GeometryException e) {")
	assert.Contains(t, out, "uniffiCallStatus.code = 1;")
	assert.Contains(t, out, "uniffiCallStatus.errorBuf = FfiConverterTypeGeometryError.INSTANCE.lower(e);")

	// The error converter serializes both directions.
	assert.NotContains(t, out, "UnsupportedOperationException")
	assert.Contains(t, out, "if (value instanceof GeometryException.InvalidPoint) {")
	assert.Contains(t, out, "UniffiHelpers.writeUtf8(message, buf);")
}

func TestGenerateRejectsAsyncConstructor(t *testing.T) {
	ci := &model.ComponentInterface{
		CrateName: "engine",
		Namespace: "engine",
		Objects: []model.ObjectDef{
			{
				Name:         "Engine",
				Imp:          model.ObjectImplStruct,
				Constructors: []model.FunctionDef{{Name: "create", Async: true}},
			},
		},
	}
	_, err := Generate(&Config{PackageName: "com.example.engine"}, ci)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `constructor "create"`)
}

// Collection helpers use the imported short names, like the rest of the
// generated file.
func TestGenerateCollectionHelperImports(t *testing.T) {
	seq := model.SequenceOf(model.Primitive(model.KindString))
	counts := model.MapOf(model.Primitive(model.KindString), model.Primitive(model.KindInt64))
	ci := &model.ComponentInterface{
		CrateName: "demo",
		Namespace: "demo",
		Functions: []model.FunctionDef{
			{Name: "tags", Return: &seq},
			{Name: "counts", Return: &counts},
		},
	}
	out, err := Generate(&Config{PackageName: "com.example.demo"}, ci)
	require.NoError(t, err)

	assert.Contains(t, out, "import java.util.ArrayList;")
	assert.Contains(t, out, "import java.util.HashMap;")
	assert.Contains(t, out, "var items = new ArrayList<String>(len);")
	assert.Contains(t, out, "var entries = new HashMap<String, Long>(len);")
	assert.NotContains(t, out, "new java.util.")
}

func TestGenerateInitialization(t *testing.T) {
	ci := &model.ComponentInterface{
		CrateName: "events",
		Namespace: "events",
		CallbackInterfaces: []model.CallbackInterfaceDef{
			{
				Name: "OnEvent",
				Methods: []model.FunctionDef{
					{Name: "handle"},
				},
			},
		},
		Functions: []model.FunctionDef{
			{
				Name: "subscribe",
				Args: []model.ArgumentDef{
					{Name: "listener", Type: model.CallbackInterfaceType("OnEvent", "events")},
				},
			},
		},
	}
	out, err := Generate(&Config{PackageName: "com.example.events"}, ci)
	require.NoError(t, err)

	assert.Contains(t, out, "public interface OnEvent {")
	assert.Contains(t, out, "enum UniffiCallbackInterfaceOnEvent {")
	assert.Contains(t, out, "UniffiCallbackInterfaceOnEvent.INSTANCE.register(UniffiLib.getInstance());")
	assert.Contains(t, out, "@Structure.FieldOrder({ \"handle\", \"uniffiFree\" })")
	assert.Contains(t, out, "class UniffiVTableCallbackInterfaceOnEvent extends Structure {")
	assert.Contains(t, out, "void uniffi_events_fn_init_callback_vtable_onevent(UniffiVTableCallbackInterfaceOnEvent.UniffiByValue vtable);")
}

// Types owned by other modules arrive with their own converters; nothing is
// generated locally for them beyond qualified references.
func TestGenerateSkipsExternalHelpers(t *testing.T) {
	shape := model.RecordType("Shape", "shapes")
	ci := &model.ComponentInterface{
		CrateName:     "viewer",
		Namespace:     "viewer",
		ExternalTypes: []model.Type{shape},
		Functions: []model.FunctionDef{
			{Name: "show", Args: []model.ArgumentDef{{Name: "shape", Type: shape}}},
		},
	}
	cfg := &Config{
		PackageName:      "com.example.viewer",
		ExternalPackages: map[string]string{"shapes": "com.example.shapes"},
	}
	out, err := Generate(cfg, ci)
	require.NoError(t, err)

	assert.NotContains(t, out, "enum FfiConverterTypeShape")
	assert.Contains(t, out, "com.example.shapes.Shape")
	assert.Contains(t, out, "com.example.shapes.FfiConverterTypeShape.INSTANCE.lower(shape)")
}

func TestGenerateRejectsExternalThrows(t *testing.T) {
	extErr := model.EnumType("RemoteError", "remote")
	ci := &model.ComponentInterface{
		CrateName:     "local",
		Namespace:     "local",
		ExternalTypes: []model.Type{extErr},
		Functions: []model.FunctionDef{
			{Name: "call", Throws: &extErr},
		},
	}
	_, err := Generate(&Config{}, ci)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call")
}

func TestWriteRecordGolden(t *testing.T) {
	str := model.Primitive(model.KindString)
	u32 := model.Primitive(model.KindUInt32)
	ci := &model.ComponentInterface{CrateName: "demo"}
	rec := &model.RecordDef{
		Name: "Person",
		Fields: []model.FieldDef{
			{Name: "name", Type: str},
			{Name: "age", Type: model.OptionalOf(u32)},
		},
	}

	var b strings.Builder
	writeRecord(&b, &Config{}, ci, rec)

	g := goldie.New(t)
	g.Assert(t, "person_class", []byte(b.String()))
}

func TestWriteErrorEnumGolden(t *testing.T) {
	ci := &model.ComponentInterface{
		CrateName: "demo",
		Enums: []model.EnumDef{
			{Name: "ParseError", IsError: true},
		},
	}
	e := &model.EnumDef{
		Name:    "ParseError",
		IsError: true,
		Variants: []model.VariantDef{
			{Name: "unexpected_token"},
			{Name: "eof"},
		},
	}

	var b strings.Builder
	require.NoError(t, writeEnum(&b, &Config{}, ci, e))

	g := goldie.New(t)
	g.Assert(t, "parse_error_class", []byte(b.String()))
}
