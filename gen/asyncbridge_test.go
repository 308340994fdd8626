package gen

import (
	"strings"
	"testing"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
)

func TestAsyncReturnType(t *testing.T) {
	ci := &model.ComponentInterface{CrateName: "demo"}
	cfg := &Config{}
	boolT := model.Primitive(model.KindBoolean)

	syncFn := &model.FunctionDef{Name: "check", Return: &boolT}
	if got := AsyncReturnType(syncFn, ci, cfg); got != "Boolean" {
		t.Errorf("sync return type = %q, want Boolean", got)
	}

	asyncFn := &model.FunctionDef{Name: "check", Async: true, Return: &boolT}
	if got := AsyncReturnType(asyncFn, ci, cfg); got != "CompletableFuture<Boolean>" {
		t.Errorf("async return type = %q, want CompletableFuture<Boolean>", got)
	}

	voidFn := &model.FunctionDef{Name: "ping", Async: true}
	if got := AsyncReturnType(voidFn, ci, cfg); got != "CompletableFuture<Void>" {
		t.Errorf("async void return type = %q, want CompletableFuture<Void>", got)
	}

	syncVoidFn := &model.FunctionDef{Name: "ping"}
	if got := AsyncReturnType(syncVoidFn, ci, cfg); got != "void" {
		t.Errorf("sync void return type = %q, want void", got)
	}
}

func TestAsyncClosures(t *testing.T) {
	ci := &model.ComponentInterface{CrateName: "demo"}
	cfg := &Config{}
	boolT := model.Primitive(model.KindBoolean)
	f := &model.FunctionDef{Name: "check", Async: true, Return: &boolT}

	poll := AsyncPoll(f, ci)
	want := "(future, callback, continuation) -> UniffiLib.getInstance().ffi_demo_rust_future_poll_i8(future, callback, continuation)"
	if poll != want {
		t.Errorf("poll closure = %q, want %q", poll, want)
	}

	complete := AsyncComplete(f, ci, cfg)
	want = "(future, continuation) -> UniffiLib.getInstance().ffi_demo_rust_future_complete_i8(future, continuation)"
	if complete != want {
		t.Errorf("complete closure = %q, want %q", complete, want)
	}

	free := AsyncFree(f, ci)
	want = "(future) -> UniffiLib.getInstance().ffi_demo_rust_future_free_i8(future)"
	if free != want {
		t.Errorf("free closure = %q, want %q", free, want)
	}
}

// A buffer completion value owned by another module must be rebuilt through
// that module's RustBuffer type before lifting.
func TestAsyncCompleteRehomesExternalBuffer(t *testing.T) {
	shape := model.RecordType("Shape", "shapes::geo")
	ci := &model.ComponentInterface{
		CrateName:     "demo",
		ExternalTypes: []model.Type{shape},
	}
	cfg := &Config{ExternalPackages: map[string]string{"shapes": "com.example.shapes"}}
	f := &model.FunctionDef{Name: "fetch_shape", Async: true, Return: &shape}

	complete := AsyncComplete(f, ci, cfg)
	if !strings.Contains(complete, "ffi_demo_rust_future_complete_rust_buffer(future, continuation)") {
		t.Errorf("complete closure should call the rust_buffer completion entry point: %q", complete)
	}
	if !strings.Contains(complete, "com.example.shapes.RustBuffer.create(result.capacity, result.len, result.data)") {
		t.Errorf("complete closure should re-home the buffer through the owning package: %q", complete)
	}
}

// Locally owned buffers need no re-homing, even with metadata attached.
func TestAsyncCompleteLocalBufferPassesThrough(t *testing.T) {
	point := model.RecordType("Point", "demo")
	ci := &model.ComponentInterface{CrateName: "demo"}
	cfg := &Config{}
	f := &model.FunctionDef{Name: "fetch_point", Async: true, Return: &point}

	complete := AsyncComplete(f, ci, cfg)
	want := "(future, continuation) -> UniffiLib.getInstance().ffi_demo_rust_future_complete_rust_buffer(future, continuation)"
	if complete != want {
		t.Errorf("complete closure = %q, want %q", complete, want)
	}
}
