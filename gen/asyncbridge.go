package gen

import (
	"fmt"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
)

// The async bridge binds generated code to the native future-polling ABI.
// Each asynchronous callable gets three closures: poll forwards the future
// handle plus a callback and continuation token; complete collects the
// result; free releases the handle.

// AsyncInnerReturnType is the completion value type of an async callable.
// A callable with no declared return type completes with Void: generic
// containers require a concrete type argument.
func AsyncInnerReturnType(c model.Callable, ci *model.ComponentInterface, cfg *Config) string {
	if rt := c.ReturnType(); rt != nil {
		return FindCodeType(*rt).TypeLabel(ci, cfg)
	}
	return "Void"
}

// AsyncReturnType is the surface return type of a callable: the declared
// type, wrapped in CompletableFuture when asynchronous. A synchronous
// callable without a declared return type stays plain void; only the future
// wrapper needs the boxed form.
func AsyncReturnType(c model.Callable, ci *model.ComponentInterface, cfg *Config) string {
	if c.IsAsync() {
		return "CompletableFuture<" + AsyncInnerReturnType(c, ci, cfg) + ">"
	}
	if rt := c.ReturnType(); rt != nil {
		return FindCodeType(*rt).TypeLabel(ci, cfg)
	}
	return "void"
}

// AsyncPoll builds the closure forwarding the future handle, callback, and
// continuation token to the native polling entry point.
func AsyncPoll(c model.Callable, ci *model.ComponentInterface) string {
	return fmt.Sprintf(
		"(future, callback, continuation) -> UniffiLib.getInstance().%s(future, callback, continuation)",
		ci.FfiRustFuturePoll(c))
}

// AsyncComplete builds the closure forwarding the future handle and
// continuation token to the native completion entry point.
//
// When the return type is a buffer owned by another module, the raw buffer
// fields are re-wrapped through that module's buffer constructor: buffer
// identity must match the owning module's converter, so the value cannot
// pass through structurally.
func AsyncComplete(c model.Callable, ci *model.ComponentInterface, cfg *Config) string {
	call := fmt.Sprintf("UniffiLib.getInstance().%s(future, continuation)", ci.FfiRustFutureComplete(c))
	if rt := c.ReturnType(); rt != nil && ci.IsExternal(*rt) {
		ft := model.FfiTypeOf(*rt)
		if ft.Kind == model.FfiRustBuffer && ft.External != nil {
			rustBuffer := cfg.ExternalTypePackageName(ft.External.ModulePath, ft.External.Name) + ".RustBuffer"
			return fmt.Sprintf(`(future, continuation) -> {
    var result = %s;
    return %s.create(result.capacity, result.len, result.data);
}`, call, rustBuffer)
		}
	}
	return fmt.Sprintf("(future, continuation) -> %s", call)
}

// AsyncFree builds the closure releasing the future handle.
func AsyncFree(c model.Callable, ci *model.ComponentInterface) string {
	return fmt.Sprintf("(future) -> UniffiLib.getInstance().%s(future)", ci.FfiRustFutureFree(c))
}
