package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
)

// Generate produces the complete Java bindings source for a component
// interface. Generation is single-threaded and all-or-nothing: either the
// full set of bindings renders, or an error names the type or callable that
// stopped it.
func Generate(cfg *Config, ci *model.ComponentInterface) (string, error) {
	tracker := NewIncludeOnceTracker()
	var b strings.Builder

	writeHeader(&b, cfg)
	writeImports(&b, cfg, ci)
	writeRuntime(&b, cfg, ci)

	if err := writeTypeHelpers(&b, cfg, ci, tracker); err != nil {
		return "", err
	}

	for i := range ci.Records {
		writeRecord(&b, cfg, ci, &ci.Records[i])
	}
	for i := range ci.Enums {
		if err := writeEnum(&b, cfg, ci, &ci.Enums[i]); err != nil {
			return "", err
		}
	}
	for i := range ci.Objects {
		if err := writeObject(&b, cfg, ci, &ci.Objects[i]); err != nil {
			return "", err
		}
	}
	for i := range ci.CallbackInterfaces {
		writeCallbackInterface(&b, cfg, ci, &ci.CallbackInterfaces[i])
	}
	if err := writeNamespaceFunctions(&b, cfg, ci); err != nil {
		return "", err
	}
	writeInitialization(&b, ci)

	return b.String(), nil
}

// ---------- file prologue ----------

func writeHeader(b *strings.Builder, cfg *Config) {
	b.WriteString("// Generated by uniffi-bindgen-java. Do not edit.\n\n")
	fmt.Fprintf(b, "package %s;\n\n", cfg.EffectivePackageName())
}

func writeImports(b *strings.Builder, cfg *Config, ci *model.ComponentInterface) {
	imports := map[string]bool{
		"com.sun.jna.Library":               true,
		"com.sun.jna.Native":                true,
		"com.sun.jna.Pointer":               true,
		"com.sun.jna.Structure":             true,
		"java.nio.ByteBuffer":               true,
		"java.nio.ByteOrder":                true,
		"java.nio.charset.StandardCharsets": true,
	}
	for _, t := range ci.AllTypes() {
		for _, imp := range ImportsOf(FindCodeType(t), cfg) {
			imports[imp] = true
		}
	}
	if hasAsyncCallable(ci) {
		imports["java.util.concurrent.CompletableFuture"] = true
	}
	if hasLocalCallbacks(ci) {
		imports["java.util.concurrent.ConcurrentHashMap"] = true
		imports["java.util.concurrent.atomic.AtomicLong"] = true
	}
	names := make([]string, 0, len(imports))
	for name := range imports {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "import %s;\n", name)
	}
	b.WriteString("\n")
}

func hasAsyncCallable(ci *model.ComponentInterface) bool {
	for i := range ci.Functions {
		if ci.Functions[i].Async {
			return true
		}
	}
	for oi := range ci.Objects {
		for i := range ci.Objects[oi].Methods {
			if ci.Objects[oi].Methods[i].Async {
				return true
			}
		}
	}
	return false
}

// hasLocalCallbacks reports whether any local type registers a foreign
// vtable, which pulls in the handle map machinery.
func hasLocalCallbacks(ci *model.ComponentInterface) bool {
	if len(ci.CallbackInterfaces) > 0 {
		return true
	}
	for i := range ci.Objects {
		if ci.Objects[i].Imp.HasCallbackInterface() {
			return true
		}
	}
	return false
}

// ---------- runtime support ----------

// writeRuntime emits the fixed support types every generated module needs:
// the buffer and status structs plus the native library binding.
func writeRuntime(b *strings.Builder, cfg *Config, ci *model.ComponentInterface) {
	b.WriteString("class RustBuffer extends Structure {\n")
	b.WriteString("    public long capacity;\n")
	b.WriteString("    public long len;\n")
	b.WriteString("    public Pointer data;\n\n")
	b.WriteString("    public static class ByValue extends RustBuffer implements Structure.ByValue {}\n\n")
	b.WriteString("    public static RustBuffer.ByValue create(long capacity, long len, Pointer data) {\n")
	b.WriteString("        var buf = new RustBuffer.ByValue();\n")
	b.WriteString("        buf.capacity = capacity;\n")
	b.WriteString("        buf.len = len;\n")
	b.WriteString("        buf.data = data;\n")
	b.WriteString("        return buf;\n")
	b.WriteString("    }\n")
	b.WriteString("}\n\n")

	b.WriteString("class ForeignBytes extends Structure {\n")
	b.WriteString("    public int len;\n")
	b.WriteString("    public Pointer data;\n\n")
	b.WriteString("    public static class ByValue extends ForeignBytes implements Structure.ByValue {}\n")
	b.WriteString("}\n\n")

	b.WriteString("class UniffiRustCallStatus extends Structure {\n")
	b.WriteString("    public byte code;\n")
	b.WriteString("    public RustBuffer.ByValue errorBuf;\n\n")
	b.WriteString("    public static class ByValue extends UniffiRustCallStatus implements Structure.ByValue {}\n\n")
	b.WriteString("    public boolean isSuccess() { return code == 0; }\n")
	b.WriteString("}\n\n")

	writeHelpers(b)
	writeConverterInterfaces(b)
	if hasAsyncCallable(ci) {
		writeAsyncRuntime(b)
	}
	if hasLocalCallbacks(ci) {
		writeCallbackRuntime(b)
	}
	writeUniffiLib(b, cfg, ci)
}

// writeCallbackRuntime emits the handle map that pins foreign instances for
// the native side, plus the free callback every vtable carries.
func writeCallbackRuntime(b *strings.Builder) {
	b.WriteString(`final class UniffiHandleMap<T> {
    private final ConcurrentHashMap<Long, T> map = new ConcurrentHashMap<>();
    private final AtomicLong counter = new AtomicLong(0);

    long insert(T obj) {
        var handle = counter.incrementAndGet();
        map.put(handle, obj);
        return handle;
    }

    T get(long handle) {
        var obj = map.get(handle);
        if (obj == null) {
            throw new IllegalStateException("UniffiHandleMap.get: invalid handle " + handle);
        }
        return obj;
    }

    T remove(long handle) {
        return map.remove(handle);
    }
}

interface UniffiCallbackInterfaceFree extends com.sun.jna.Callback {
    void callback(long handle);
}

`)
}

// writeHelpers emits the call and buffer plumbing shared by every converter
// and wrapper method.
func writeHelpers(b *strings.Builder) {
	b.WriteString(`final class UniffiHelpers {
    private UniffiHelpers() {}

    @FunctionalInterface
    interface RustCallBody<T> {
        T invoke(UniffiRustCallStatus status);
    }

    @FunctionalInterface
    interface RustCallAction {
        void invoke(UniffiRustCallStatus status);
    }

    static <T> T uniffiRustCall(RustCallBody<T> body) {
        var status = new UniffiRustCallStatus();
        var result = body.invoke(status);
        if (!status.isSuccess()) {
            throw new RuntimeException("native call failed with code " + status.code);
        }
        return result;
    }

    static void uniffiRustCallVoid(RustCallAction body) {
        var status = new UniffiRustCallStatus();
        body.invoke(status);
        if (!status.isSuccess()) {
            throw new RuntimeException("native call failed with code " + status.code);
        }
    }

    static <T, E extends Exception> T uniffiRustCallWithError(FfiConverterRustBuffer<E> errorConverter, RustCallBody<T> body) throws E {
        var status = new UniffiRustCallStatus();
        var result = body.invoke(status);
        if (!status.isSuccess()) {
            throw errorConverter.lift(status.errorBuf);
        }
        return result;
    }

    static <E extends Exception> void uniffiRustCallWithErrorVoid(FfiConverterRustBuffer<E> errorConverter, RustCallAction body) throws E {
        var status = new UniffiRustCallStatus();
        body.invoke(status);
        if (!status.isSuccess()) {
            throw errorConverter.lift(status.errorBuf);
        }
    }

    static <T> RustBuffer.ByValue lowerIntoRustBuffer(FfiConverterRustBuffer<T> converter, T value) {
        var buf = ByteBuffer.allocateDirect(converter.allocationSize(value)).order(ByteOrder.BIG_ENDIAN);
        converter.write(value, buf);
        buf.flip();
        return RustBuffer.create(buf.capacity(), buf.remaining(), Native.getDirectBufferPointer(buf));
    }

    static <T> T liftFromRustBuffer(FfiConverterRustBuffer<T> converter, RustBuffer.ByValue rbuf) {
        var buf = rbuf.data.getByteBuffer(0, rbuf.len).order(ByteOrder.BIG_ENDIAN);
        return converter.read(buf);
    }

    static String readUtf8(ByteBuffer buf) {
        var bytes = new byte[buf.getInt()];
        buf.get(bytes);
        return new String(bytes, StandardCharsets.UTF_8);
    }

    static void writeUtf8(String value, ByteBuffer buf) {
        var bytes = value.getBytes(StandardCharsets.UTF_8);
        buf.putInt(bytes.length);
        buf.put(bytes);
    }

    static byte[] readByteArray(ByteBuffer buf) {
        var bytes = new byte[buf.getInt()];
        buf.get(bytes);
        return bytes;
    }

    static void writeByteArray(byte[] value, ByteBuffer buf) {
        buf.putInt(value.length);
        buf.put(value);
    }
}

`)
}

// writeConverterInterfaces emits the contracts every generated converter
// implements. Buffer-crossing converters get lower and lift for free from
// their read and write.
func writeConverterInterfaces(b *strings.Builder) {
	b.WriteString(`interface FfiConverter<JavaType, FfiType> {
    JavaType read(ByteBuffer buf);

    void write(JavaType value, ByteBuffer buf);

    int allocationSize(JavaType value);

    FfiType lower(JavaType value);

    JavaType lift(FfiType value);
}

interface FfiConverterRustBuffer<JavaType> extends FfiConverter<JavaType, RustBuffer.ByValue> {
    @Override
    default RustBuffer.ByValue lower(JavaType value) {
        return UniffiHelpers.lowerIntoRustBuffer(this, value);
    }

    @Override
    default JavaType lift(RustBuffer.ByValue value) {
        return UniffiHelpers.liftFromRustBuffer(this, value);
    }
}

`)
}

// writeAsyncRuntime emits the continuation callback type and the shared
// future-driving helper, only when the interface has an async callable.
func writeAsyncRuntime(b *strings.Builder) {
	b.WriteString(`interface UniffiRustFutureContinuationCallback extends com.sun.jna.Callback {
    void callback(long continuationHandle, byte pollResult);
}

final class UniffiAsyncHelpers {
    private static final byte UNIFFI_RUST_FUTURE_POLL_READY = 0;

    private UniffiAsyncHelpers() {}

    @FunctionalInterface
    interface PollFunc {
        void poll(long future, UniffiRustFutureContinuationCallback callback, long continuationHandle);
    }

    @FunctionalInterface
    interface CompleteFunc<F> {
        F complete(long future, long continuationHandle);
    }

    @FunctionalInterface
    interface FreeFunc {
        void free(long future);
    }

    @FunctionalInterface
    interface LiftFunc<F, T> {
        T lift(F value);
    }

    static <F, T> CompletableFuture<T> uniffiRustCallAsync(
            long future,
            PollFunc pollFunc,
            CompleteFunc<F> completeFunc,
            FreeFunc freeFunc,
            LiftFunc<F, T> liftFunc,
            FfiConverterRustBuffer<? extends Exception> errorConverter) {
        var result = new CompletableFuture<T>();
        pollFunc.poll(future, (continuationHandle, pollResult) -> {
            if (pollResult != UNIFFI_RUST_FUTURE_POLL_READY) {
                return;
            }
            try {
                result.complete(liftFunc.lift(completeFunc.complete(future, continuationHandle)));
            } catch (Exception e) {
                result.completeExceptionally(e);
            } finally {
                freeFunc.free(future);
            }
        }, 0L);
        return result;
    }
}

`)
}

// writeUniffiLib emits the JNA binding interface holding every native entry
// point the generated code calls.
func writeUniffiLib(b *strings.Builder, cfg *Config, ci *model.ComponentInterface) {
	b.WriteString("interface UniffiLib extends Library {\n")
	fmt.Fprintf(b, "    UniffiLib INSTANCE = Native.load(\"%s\", UniffiLib.class);\n\n", cfg.EffectiveCdylibName())
	b.WriteString("    static UniffiLib getInstance() {\n")
	b.WriteString("        return INSTANCE;\n")
	b.WriteString("    }\n\n")

	for i := range ci.Functions {
		writeNativeDecl(b, cfg, ci, &ci.Functions[i], ffiFunctionName(ci, ci.Functions[i].Name), false)
	}
	for oi := range ci.Objects {
		o := &ci.Objects[oi]
		for i := range o.Constructors {
			writeConstructorDecl(b, cfg, ci, &o.Constructors[i], ffiConstructorName(ci, o.Name, o.Constructors[i].Name))
		}
		for i := range o.Methods {
			writeNativeDecl(b, cfg, ci, &o.Methods[i], ffiMethodName(ci, o.Name, o.Methods[i].Name), true)
		}
		fmt.Fprintf(b, "    void %s(Pointer ptr, UniffiRustCallStatus uniffiOutErr);\n", ffiObjectFreeName(ci, o.Name))
		if o.Imp.HasCallbackInterface() {
			fmt.Fprintf(b, "    void %s(%s.UniffiByValue vtable);\n",
				ffiInitCallbackName(ci, o.Name), FfiStructName("VTableCallbackInterface"+ToUpperCamelCase(o.Name)))
		}
	}
	for i := range ci.CallbackInterfaces {
		cb := &ci.CallbackInterfaces[i]
		fmt.Fprintf(b, "    void %s(%s.UniffiByValue vtable);\n",
			ffiInitCallbackName(ci, cb.Name), FfiStructName("VTableCallbackInterface"+ToUpperCamelCase(cb.Name)))
	}
	writeFutureDecls(b, cfg, ci)
	b.WriteString("}\n\n")
}

// writeNativeDecl emits one native function declaration. Async callables
// return a future handle; sync callables take a trailing call status
// out-parameter.
func writeNativeDecl(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, f *model.FunctionDef, ffiName string, hasReceiver bool) {
	var params []string
	if hasReceiver {
		params = append(params, "Pointer ptr")
	}
	for _, a := range f.Args {
		ft := model.FfiTypeOf(a.Type)
		params = append(params, FfiTypeLabelByValue(ft, false, cfg, ci)+" "+VarName(a.Name))
	}
	if f.Async {
		fmt.Fprintf(b, "    long %s(%s);\n", ffiName, strings.Join(params, ", "))
		return
	}
	params = append(params, "UniffiRustCallStatus uniffiOutErr")
	ret := "void"
	if f.Return != nil {
		ret = FfiTypeLabelByValue(model.FfiTypeOf(*f.Return), false, cfg, ci)
	}
	fmt.Fprintf(b, "    %s %s(%s);\n", ret, ffiName, strings.Join(params, ", "))
}

// writeConstructorDecl emits the native declaration for a constructor,
// which always yields the new object's pointer.
func writeConstructorDecl(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, f *model.FunctionDef, ffiName string) {
	var params []string
	for _, a := range f.Args {
		ft := model.FfiTypeOf(a.Type)
		params = append(params, FfiTypeLabelByValue(ft, false, cfg, ci)+" "+VarName(a.Name))
	}
	params = append(params, "UniffiRustCallStatus uniffiOutErr")
	fmt.Fprintf(b, "    Pointer %s(%s);\n", ffiName, strings.Join(params, ", "))
}

// writeFutureDecls emits the future poll/complete/free entry points for
// every distinct completion kind used by an async callable.
func writeFutureDecls(b *strings.Builder, cfg *Config, ci *model.ComponentInterface) {
	seen := map[string]bool{}
	emit := func(c model.Callable) {
		if !c.IsAsync() {
			return
		}
		poll := ci.FfiRustFuturePoll(c)
		if seen[poll] {
			return
		}
		seen[poll] = true
		ret := "void"
		if rt := c.ReturnType(); rt != nil {
			ret = FfiTypeLabelByValue(model.FfiTypeOf(*rt), false, cfg, ci)
		}
		fmt.Fprintf(b, "    void %s(long handle, UniffiRustFutureContinuationCallback callback, long continuationHandle);\n", poll)
		fmt.Fprintf(b, "    %s %s(long handle, long continuationHandle);\n", ret, ci.FfiRustFutureComplete(c))
		fmt.Fprintf(b, "    void %s(long handle);\n", ci.FfiRustFutureFree(c))
	}
	for i := range ci.Functions {
		emit(&ci.Functions[i])
	}
	for oi := range ci.Objects {
		o := &ci.Objects[oi]
		for i := range o.Methods {
			emit(&o.Methods[i])
		}
	}
}

// ---------- per-type converter helpers ----------

// writeTypeHelpers emits one converter block per distinct type referenced
// anywhere in the interface. The tracker guarantees a type used from many
// call sites renders its helper exactly once. Types owned by other modules
// bring their converters with them and are skipped here.
func writeTypeHelpers(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, tracker *IncludeOnceTracker) error {
	for _, t := range ci.AllTypes() {
		if ci.IsExternal(t) {
			continue
		}
		ct := FindCodeType(t)
		if !tracker.MarkIfNew(FfiConverterName(ct)) {
			continue
		}
		if err := writeTypeHelper(b, cfg, ci, t, ct); err != nil {
			return fmt.Errorf("rendering helper for type %s: %w", t, err)
		}
	}
	return nil
}

func writeTypeHelper(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, t model.Type, ct CodeType) error {
	name := FfiConverterName(ct)
	label := ct.TypeLabel(ci, cfg)
	switch t.Kind {
	case model.KindObject:
		fmt.Fprintf(b, "enum %s {\n    INSTANCE;\n\n", name)
		if t.Imp.HasCallbackInterface() {
			// Trait objects may be implemented in Java, so lowering pins the
			// instance in the vtable's handle map instead of cloning a
			// native pointer the instance may not have.
			vtable := "UniffiCallbackInterface" + ToUpperCamelCase(t.Name)
			fmt.Fprintf(b, "    Pointer lower(%s value) {\n        return new Pointer(%s.handleMap.insert(value));\n    }\n\n", label, vtable)
		} else {
			fmt.Fprintf(b, "    Pointer lower(%s value) {\n        return value.uniffiClonePointer();\n    }\n\n", label)
		}
		fmt.Fprintf(b, "    %s lift(Pointer value) {\n        return new %s(value);\n    }\n\n", label, liftTargetName(ci, t))
		fmt.Fprintf(b, "    %s read(ByteBuffer buf) {\n        return lift(new Pointer(buf.getLong()));\n    }\n\n", label)
		fmt.Fprintf(b, "    void write(%s value, ByteBuffer buf) {\n        buf.putLong(Pointer.nativeValue(lower(value)));\n    }\n\n", label)
		fmt.Fprintf(b, "    int allocationSize(%s value) {\n        return 8;\n    }\n", label)
		b.WriteString("}\n\n")
		if t.Imp.HasCallbackInterface() {
			if o := objectByName(ci, t.Name); o != nil {
				interfaceName, _ := ObjectNames(ci, o)
				writeCallbackVtable(b, cfg, ci, o.Name, interfaceName, o.Methods)
			}
		}
	case model.KindCallbackInterface:
		vtable := "UniffiCallbackInterface" + ToUpperCamelCase(t.Name)
		fmt.Fprintf(b, "enum %s {\n    INSTANCE;\n\n", name)
		fmt.Fprintf(b, "    long lower(%s value) {\n        return %s.handleMap.insert(value);\n    }\n\n", label, vtable)
		fmt.Fprintf(b, "    %s lift(long handle) {\n        return %s.handleMap.get(handle);\n    }\n\n", label, vtable)
		fmt.Fprintf(b, "    %s read(ByteBuffer buf) {\n        return lift(buf.getLong());\n    }\n\n", label)
		fmt.Fprintf(b, "    void write(%s value, ByteBuffer buf) {\n        buf.putLong(lower(value));\n    }\n\n", label)
		fmt.Fprintf(b, "    int allocationSize(%s value) {\n        return 8;\n    }\n", label)
		b.WriteString("}\n\n")
		cb := callbackByName(ci, t.Name)
		if cb == nil {
			return fmt.Errorf("callback interface %q referenced but not defined", t.Name)
		}
		writeCallbackVtable(b, cfg, ci, t.Name, label, cb.Methods)
	case model.KindCustom:
		builtin := FindCodeType(*t.Builtin)
		ffiLabel := FfiTypeLabelByValue(model.FfiTypeOf(t), false, cfg, ci)
		fmt.Fprintf(b, "enum %s {\n    INSTANCE;\n\n", name)
		fmt.Fprintf(b, "    %s lower(%s value) {\n        return %s;\n    }\n\n",
			ffiLabel, label, LowerCustomExpr(cfg, t.Name, *t.Builtin, "value", ci))
		fmt.Fprintf(b, "    %s lift(%s value) {\n        return %s;\n    }\n\n", label, ffiLabel,
			LiftCustomExpr(cfg, t.Name, *t.Builtin, "value", ci))
		fmt.Fprintf(b, "    %s read(ByteBuffer buf) {\n        return %s;\n    }\n\n", label,
			CustomIntoExpr(cfg, t.Name, ReadFn(builtin, cfg, ci)+"(buf)"))
		fmt.Fprintf(b, "    void write(%s value, ByteBuffer buf) {\n        %s(%s, buf);\n    }\n\n", label,
			WriteFn(builtin, cfg, ci), CustomFromExpr(cfg, t.Name, "value"))
		fmt.Fprintf(b, "    int allocationSize(%s value) {\n        return %s(%s);\n    }\n", label,
			AllocationSizeFn(builtin, cfg, ci), CustomFromExpr(cfg, t.Name, "value"))
		b.WriteString("}\n\n")
	case model.KindOptional:
		inner := FindCodeType(*t.Inner)
		fmt.Fprintf(b, "enum %s implements FfiConverterRustBuffer<%s> {\n    INSTANCE;\n\n", name, label)
		fmt.Fprintf(b, "    @Override\n    public %s read(ByteBuffer buf) {\n", label)
		fmt.Fprintf(b, "        if (buf.get() == 0) {\n            return null;\n        }\n")
		fmt.Fprintf(b, "        return %s(buf);\n    }\n\n", ReadFn(inner, cfg, ci))
		fmt.Fprintf(b, "    @Override\n    public void write(%s value, ByteBuffer buf) {\n", label)
		fmt.Fprintf(b, "        if (value == null) {\n            buf.put((byte)0);\n        } else {\n            buf.put((byte)1);\n            %s(value, buf);\n        }\n    }\n\n", WriteFn(inner, cfg, ci))
		fmt.Fprintf(b, "    @Override\n    public int allocationSize(%s value) {\n", label)
		fmt.Fprintf(b, "        if (value == null) {\n            return 1;\n        }\n        return 1 + %s(value);\n    }\n", AllocationSizeFn(inner, cfg, ci))
		b.WriteString("}\n\n")
	case model.KindSequence:
		inner := FindCodeType(*t.Inner)
		fmt.Fprintf(b, "enum %s implements FfiConverterRustBuffer<%s> {\n    INSTANCE;\n\n", name, label)
		fmt.Fprintf(b, "    @Override\n    public %s read(ByteBuffer buf) {\n", label)
		fmt.Fprintf(b, "        int len = buf.getInt();\n        var items = new ArrayList<%s>(len);\n", inner.TypeLabel(ci, cfg))
		fmt.Fprintf(b, "        for (int i = 0; i < len; i++) {\n            items.add(%s(buf));\n        }\n        return items;\n    }\n\n", ReadFn(inner, cfg, ci))
		fmt.Fprintf(b, "    @Override\n    public void write(%s value, ByteBuffer buf) {\n", label)
		fmt.Fprintf(b, "        buf.putInt(value.size());\n        for (var item : value) {\n            %s(item, buf);\n        }\n    }\n\n", WriteFn(inner, cfg, ci))
		fmt.Fprintf(b, "    @Override\n    public int allocationSize(%s value) {\n", label)
		fmt.Fprintf(b, "        int size = 4;\n        for (var item : value) {\n            size += %s(item);\n        }\n        return size;\n    }\n", AllocationSizeFn(inner, cfg, ci))
		b.WriteString("}\n\n")
	case model.KindMap:
		keyCt := FindCodeType(*t.Key)
		valCt := FindCodeType(*t.Value)
		fmt.Fprintf(b, "enum %s implements FfiConverterRustBuffer<%s> {\n    INSTANCE;\n\n", name, label)
		fmt.Fprintf(b, "    @Override\n    public %s read(ByteBuffer buf) {\n", label)
		fmt.Fprintf(b, "        int len = buf.getInt();\n        var entries = new HashMap<%s, %s>(len);\n",
			keyCt.TypeLabel(ci, cfg), valCt.TypeLabel(ci, cfg))
		fmt.Fprintf(b, "        for (int i = 0; i < len; i++) {\n            entries.put(%s(buf), %s(buf));\n        }\n        return entries;\n    }\n\n",
			ReadFn(keyCt, cfg, ci), ReadFn(valCt, cfg, ci))
		fmt.Fprintf(b, "    @Override\n    public void write(%s value, ByteBuffer buf) {\n", label)
		fmt.Fprintf(b, "        buf.putInt(value.size());\n        for (var entry : value.entrySet()) {\n            %s(entry.getKey(), buf);\n            %s(entry.getValue(), buf);\n        }\n    }\n\n",
			WriteFn(keyCt, cfg, ci), WriteFn(valCt, cfg, ci))
		fmt.Fprintf(b, "    @Override\n    public int allocationSize(%s value) {\n", label)
		fmt.Fprintf(b, "        int size = 4;\n        for (var entry : value.entrySet()) {\n            size += %s(entry.getKey()) + %s(entry.getValue());\n        }\n        return size;\n    }\n",
			AllocationSizeFn(keyCt, cfg, ci), AllocationSizeFn(valCt, cfg, ci))
		b.WriteString("}\n\n")
	case model.KindRecord:
		r := recordByName(ci, t.Name)
		if r == nil {
			return fmt.Errorf("record %q referenced but not defined", t.Name)
		}
		fmt.Fprintf(b, "enum %s implements FfiConverterRustBuffer<%s> {\n    INSTANCE;\n\n", name, label)
		fmt.Fprintf(b, "    @Override\n    public %s read(ByteBuffer buf) {\n        return new %s(\n", label, label)
		for i, f := range r.Fields {
			sep := ","
			if i == len(r.Fields)-1 {
				sep = ""
			}
			fmt.Fprintf(b, "            %s(buf)%s\n", ReadFn(FindCodeType(f.Type), cfg, ci), sep)
		}
		b.WriteString("        );\n    }\n\n")
		fmt.Fprintf(b, "    @Override\n    public void write(%s value, ByteBuffer buf) {\n", label)
		for _, f := range r.Fields {
			fmt.Fprintf(b, "        %s(value.%s(), buf);\n", WriteFn(FindCodeType(f.Type), cfg, ci), VarName(f.Name))
		}
		b.WriteString("    }\n\n")
		fmt.Fprintf(b, "    @Override\n    public int allocationSize(%s value) {\n        return ", label)
		var sizes []string
		for _, f := range r.Fields {
			sizes = append(sizes, fmt.Sprintf("%s(value.%s())", AllocationSizeFn(FindCodeType(f.Type), cfg, ci), VarName(f.Name)))
		}
		b.WriteString(strings.Join(sizes, "\n            + "))
		b.WriteString(";\n    }\n}\n\n")
	case model.KindEnum:
		e := enumByName(ci, t.Name)
		if e == nil {
			return fmt.Errorf("enum %q referenced but not defined", t.Name)
		}
		if e.IsError {
			writeErrorEnumHelper(b, ci, e, name, label)
			return nil
		}
		fmt.Fprintf(b, "enum %s implements FfiConverterRustBuffer<%s> {\n    INSTANCE;\n\n", name, label)
		fmt.Fprintf(b, "    @Override\n    public %s read(ByteBuffer buf) {\n        return %s.values()[buf.getInt() - 1];\n    }\n\n", label, label)
		fmt.Fprintf(b, "    @Override\n    public void write(%s value, ByteBuffer buf) {\n        buf.putInt(value.ordinal() + 1);\n    }\n\n", label)
		fmt.Fprintf(b, "    @Override\n    public int allocationSize(%s value) {\n        return 4;\n    }\n", label)
		b.WriteString("}\n\n")
	default:
		writePrimitiveHelper(b, t, name, label)
	}
	return nil
}

// writeErrorEnumHelper emits the converter for an error-flagged enum. Both
// directions matter: native errors lift into the matching exception
// subclass, and exceptions thrown by foreign callback implementations lower
// back into the same ordinal-plus-message encoding.
func writeErrorEnumHelper(b *strings.Builder, ci *model.ComponentInterface, e *model.EnumDef, name, label string) {
	fmt.Fprintf(b, "enum %s implements FfiConverterRustBuffer<%s> {\n    INSTANCE;\n\n", name, label)
	fmt.Fprintf(b, "    @Override\n    public %s read(ByteBuffer buf) {\n", label)
	b.WriteString("        var ordinal = buf.getInt();\n")
	b.WriteString("        var message = UniffiHelpers.readUtf8(buf);\n")
	b.WriteString("        return switch (ordinal) {\n")
	for i, v := range e.Variants {
		fmt.Fprintf(b, "            case %d -> new %s.%s(message);\n", i+1, label, ErrorVariantName(v.Name))
	}
	fmt.Fprintf(b, "            default -> new %s(message);\n", label)
	b.WriteString("        };\n    }\n\n")
	fmt.Fprintf(b, "    @Override\n    public void write(%s value, ByteBuffer buf) {\n", label)
	b.WriteString("        var message = value.getMessage() == null ? \"\" : value.getMessage();\n")
	for i, v := range e.Variants {
		keyword := "if"
		if i > 0 {
			keyword = "} else if"
		}
		fmt.Fprintf(b, "        %s (value instanceof %s.%s) {\n            buf.putInt(%d);\n", keyword, label, ErrorVariantName(v.Name), i+1)
	}
	if len(e.Variants) > 0 {
		b.WriteString("        } else {\n            buf.putInt(0);\n        }\n")
	} else {
		b.WriteString("        buf.putInt(0);\n")
	}
	b.WriteString("        UniffiHelpers.writeUtf8(message, buf);\n    }\n\n")
	fmt.Fprintf(b, "    @Override\n    public int allocationSize(%s value) {\n", label)
	b.WriteString("        var message = value.getMessage() == null ? \"\" : value.getMessage();\n")
	b.WriteString("        return 8 + message.length() * 3;\n    }\n")
	b.WriteString("}\n\n")
}

// primitiveOps describes the fixed converter body for one scalar, string,
// bytes, or time type.
type primitiveOps struct {
	ffiLabel string
	read     string
	write    string
	size     string
	lower    string
	lift     string
}

// writePrimitiveHelper emits converters for scalar, string, bytes, and time
// types. Scalars lower to themselves; the buffer-crossing kinds inherit
// lower and lift from FfiConverterRustBuffer.
func writePrimitiveHelper(b *strings.Builder, t model.Type, name, label string) {
	ops := primitiveOpsFor(t.Kind)
	if ops.ffiLabel == "" {
		fmt.Fprintf(b, "enum %s implements FfiConverterRustBuffer<%s> {\n    INSTANCE;\n\n", name, label)
	} else {
		fmt.Fprintf(b, "enum %s implements FfiConverter<%s, %s> {\n    INSTANCE;\n\n", name, label, ops.ffiLabel)
	}
	fmt.Fprintf(b, "    @Override\n    public %s read(ByteBuffer buf) {\n        return %s;\n    }\n\n", label, ops.read)
	fmt.Fprintf(b, "    @Override\n    public void write(%s value, ByteBuffer buf) {\n        %s;\n    }\n\n", label, ops.write)
	fmt.Fprintf(b, "    @Override\n    public int allocationSize(%s value) {\n        return %s;\n    }\n", label, ops.size)
	if ops.ffiLabel != "" {
		fmt.Fprintf(b, "\n    @Override\n    public %s lower(%s value) {\n        return %s;\n    }\n\n", ops.ffiLabel, label, ops.lower)
		fmt.Fprintf(b, "    @Override\n    public %s lift(%s value) {\n        return %s;\n    }\n", label, ops.ffiLabel, ops.lift)
	}
	b.WriteString("}\n\n")
}

func primitiveOpsFor(kind model.TypeKind) primitiveOps {
	identity := func(ffiLabel, read, write, size string) primitiveOps {
		return primitiveOps{ffiLabel: ffiLabel, read: read, write: write, size: size, lower: "value", lift: "value"}
	}
	switch kind {
	case model.KindUInt8, model.KindInt8:
		return identity("Byte", "buf.get()", "buf.put(value)", "1")
	case model.KindUInt16, model.KindInt16:
		return identity("Short", "buf.getShort()", "buf.putShort(value)", "2")
	case model.KindUInt32, model.KindInt32:
		return identity("Integer", "buf.getInt()", "buf.putInt(value)", "4")
	case model.KindUInt64, model.KindInt64:
		return identity("Long", "buf.getLong()", "buf.putLong(value)", "8")
	case model.KindFloat32:
		return identity("Float", "buf.getFloat()", "buf.putFloat(value)", "4")
	case model.KindFloat64:
		return identity("Double", "buf.getDouble()", "buf.putDouble(value)", "8")
	case model.KindBoolean:
		return primitiveOps{
			ffiLabel: "Byte",
			read:     "buf.get() != 0",
			write:    "buf.put(value ? (byte)1 : (byte)0)",
			size:     "1",
			lower:    "value ? (byte)1 : (byte)0",
			lift:     "value != 0",
		}
	case model.KindString:
		return primitiveOps{
			read:  "UniffiHelpers.readUtf8(buf)",
			write: "UniffiHelpers.writeUtf8(value, buf)",
			size:  "4 + value.length() * 3",
		}
	case model.KindBytes:
		return primitiveOps{
			read:  "UniffiHelpers.readByteArray(buf)",
			write: "UniffiHelpers.writeByteArray(value, buf)",
			size:  "4 + value.length",
		}
	case model.KindTimestamp:
		return primitiveOps{
			read:  "Instant.ofEpochSecond(buf.getLong(), buf.getInt())",
			write: "buf.putLong(value.getEpochSecond()); buf.putInt(value.getNano())",
			size:  "12",
		}
	case model.KindDuration:
		return primitiveOps{
			read:  "Duration.ofSeconds(buf.getLong(), buf.getInt())",
			write: "buf.putLong(value.getSeconds()); buf.putInt(value.getNano())",
			size:  "12",
		}
	default:
		panic(fmt.Sprintf("primitiveOpsFor: unhandled kind %s", kind))
	}
}

// writeCallbackVtable emits the marshaled vtable struct, one JNA callback
// type per method, and the singleton that hands foreign implementations to
// the native side. The singleton's register method is the type's one-time
// initialization routine, and its handle map owns every foreign instance
// that has been lowered.
func writeCallbackVtable(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, name, label string, methods []model.FunctionDef) {
	ucc := ToUpperCamelCase(name)
	vtable := "UniffiCallbackInterface" + ucc
	structName := FfiStructName("VTableCallbackInterface" + ucc)

	cbType := func(i int) model.FfiType {
		return model.FfiType{Kind: model.FfiCallback, Name: fmt.Sprintf("CallbackInterface%sMethod%d", ucc, i)}
	}

	for i := range methods {
		m := &methods[i]
		params := []string{"long uniffiHandle"}
		for _, a := range m.Args {
			ft := model.FfiTypeOf(a.Type)
			params = append(params, FfiTypeLabelByValue(ft, false, cfg, ci)+" "+VarName(a.Name))
		}
		if m.Return != nil {
			params = append(params, FfiTypeLabelByReference(model.FfiTypeOf(*m.Return), cfg, ci)+" uniffiOutReturn")
		}
		params = append(params, "UniffiRustCallStatus uniffiCallStatus")
		fmt.Fprintf(b, "interface %s extends com.sun.jna.Callback {\n", FfiTypeLabelForFfiStruct(cbType(i), cfg, ci))
		fmt.Fprintf(b, "    void callback(%s);\n}\n\n", strings.Join(params, ", "))
	}

	fieldNames := make([]string, 0, len(methods)+1)
	for i := range methods {
		fieldNames = append(fieldNames, fmt.Sprintf("%q", VarNameRaw(methods[i].Name)))
	}
	fieldNames = append(fieldNames, `"uniffiFree"`)
	fmt.Fprintf(b, "@Structure.FieldOrder({ %s })\n", strings.Join(fieldNames, ", "))
	fmt.Fprintf(b, "class %s extends Structure {\n", structName)
	fmt.Fprintf(b, "    public static class UniffiByValue extends %s implements Structure.ByValue {}\n\n", structName)
	for i := range methods {
		ft := cbType(i)
		fmt.Fprintf(b, "    public %s %s = %s;\n", FfiTypeLabelForFfiStruct(ft, cfg, ci), VarNameRaw(methods[i].Name), FfiDefaultValue(ft))
	}
	freeType := model.FfiType{Kind: model.FfiCallback, Name: "CallbackInterfaceFree"}
	fmt.Fprintf(b, "    public %s uniffiFree = %s;\n", FfiTypeLabelForFfiStruct(freeType, cfg, ci), FfiDefaultValue(freeType))
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "enum %s {\n    INSTANCE;\n\n", vtable)
	fmt.Fprintf(b, "    static final UniffiHandleMap<%s> handleMap = new UniffiHandleMap<>();\n\n", label)
	b.WriteString("    void register(UniffiLib lib) {\n")
	fmt.Fprintf(b, "        lib.%s(this.vtable());\n", ffiInitCallbackName(ci, name))
	b.WriteString("    }\n\n")
	fmt.Fprintf(b, "    %s.UniffiByValue vtable() {\n", structName)
	fmt.Fprintf(b, "        var vtable = new %s.UniffiByValue();\n", structName)
	for i := range methods {
		writeVtableMethodImpl(b, cfg, ci, &methods[i])
	}
	b.WriteString("        vtable.uniffiFree = (handle) -> {\n            handleMap.remove(handle);\n        };\n")
	b.WriteString("        return vtable;\n    }\n}\n\n")
}

// writeVtableMethodImpl emits the lambda bridging one native upcall to the
// matching foreign method. Results travel back through the out-parameter;
// a throwing implementation reports through the call status instead.
func writeVtableMethodImpl(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, m *model.FunctionDef) {
	lambdaParams := []string{"uniffiHandle"}
	var lifted []string
	for _, a := range m.Args {
		lambdaParams = append(lambdaParams, VarName(a.Name))
		if a.Type.Kind == model.KindCustom {
			lifted = append(lifted, LiftCustomExpr(cfg, a.Type.Name, *a.Type.Builtin, VarName(a.Name), ci))
		} else {
			lifted = append(lifted, fmt.Sprintf("%s(%s)", LiftFn(FindCodeType(a.Type), cfg, ci), VarName(a.Name)))
		}
	}
	if m.Return != nil {
		lambdaParams = append(lambdaParams, "uniffiOutReturn")
	}
	lambdaParams = append(lambdaParams, "uniffiCallStatus")

	fmt.Fprintf(b, "        vtable.%s = (%s) -> {\n", VarNameRaw(m.Name), strings.Join(lambdaParams, ", "))
	b.WriteString("            try {\n")
	b.WriteString("                var obj = handleMap.get(uniffiHandle);\n")
	callExpr := fmt.Sprintf("obj.%s(%s)", FnName(m.Name), strings.Join(lifted, ", "))
	if m.Return == nil {
		fmt.Fprintf(b, "                %s;\n", callExpr)
	} else {
		lowered := ""
		if m.Return.Kind == model.KindCustom {
			lowered = LowerCustomExpr(cfg, m.Return.Name, *m.Return.Builtin, callExpr, ci)
		} else {
			lowered = fmt.Sprintf("%s(%s)", LowerFn(FindCodeType(*m.Return), cfg, ci), callExpr)
		}
		if model.FfiTypeOf(*m.Return).Kind == model.FfiRustBuffer {
			fmt.Fprintf(b, "                var result = %s;\n", lowered)
			b.WriteString("                uniffiOutReturn.capacity = result.capacity;\n")
			b.WriteString("                uniffiOutReturn.len = result.len;\n")
			b.WriteString("                uniffiOutReturn.data = result.data;\n")
		} else {
			fmt.Fprintf(b, "                uniffiOutReturn.setValue(%s);\n", lowered)
		}
	}
	if m.Throws != nil {
		fmt.Fprintf(b, "            } catch (%s e) {\n", FindCodeType(*m.Throws).TypeLabel(ci, cfg))
		b.WriteString("                uniffiCallStatus.code = 1;\n")
		fmt.Fprintf(b, "                uniffiCallStatus.errorBuf = %s(e);\n", LowerFn(FindCodeType(*m.Throws), cfg, ci))
	}
	b.WriteString("            } catch (Exception e) {\n")
	b.WriteString("                uniffiCallStatus.code = 2;\n")
	b.WriteString("            }\n        };\n")
}

// ---------- surface declarations ----------

func writeDocstring(b *strings.Builder, doc string, indent int) {
	if doc == "" {
		return
	}
	pad := strings.Repeat(" ", indent)
	fmt.Fprintf(b, "%s/**\n", pad)
	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		fmt.Fprintf(b, "%s * %s\n", pad, strings.TrimSpace(line))
	}
	fmt.Fprintf(b, "%s */\n", pad)
}

func writeRecord(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, r *model.RecordDef) {
	className := ClassName(ci, r.Name)
	writeDocstring(b, r.Docstring, 0)
	if cfg.GenerateImmutableRecords {
		var fields []string
		for _, f := range r.Fields {
			fields = append(fields, FindCodeType(f.Type).TypeLabel(ci, cfg)+" "+VarName(f.Name))
		}
		fmt.Fprintf(b, "public record %s(%s) {}\n\n", className, strings.Join(fields, ", "))
		return
	}
	fmt.Fprintf(b, "public class %s {\n", className)
	for _, f := range r.Fields {
		fmt.Fprintf(b, "    private %s %s;\n", FindCodeType(f.Type).TypeLabel(ci, cfg), VarName(f.Name))
	}
	b.WriteString("\n")
	var params []string
	for _, f := range r.Fields {
		params = append(params, FindCodeType(f.Type).TypeLabel(ci, cfg)+" "+VarName(f.Name))
	}
	fmt.Fprintf(b, "    public %s(%s) {\n", className, strings.Join(params, ", "))
	for _, f := range r.Fields {
		fmt.Fprintf(b, "        this.%s = %s;\n", VarName(f.Name), VarName(f.Name))
	}
	b.WriteString("    }\n\n")
	for _, f := range r.Fields {
		label := FindCodeType(f.Type).TypeLabel(ci, cfg)
		fmt.Fprintf(b, "    public %s %s() {\n        return %s;\n    }\n\n", label, VarName(f.Name), VarName(f.Name))
		fmt.Fprintf(b, "    public void %s(%s value) {\n        this.%s = value;\n    }\n\n", SetterName(f.Name), label, VarName(f.Name))
	}
	b.WriteString("}\n\n")
}

func writeEnum(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, e *model.EnumDef) error {
	className := ClassName(ci, e.Name)
	writeDocstring(b, e.Docstring, 0)
	if e.IsError {
		return writeErrorEnum(b, ci, e, className)
	}
	if e.Repr == nil {
		fmt.Fprintf(b, "public enum %s {\n", className)
		for _, v := range e.Variants {
			fmt.Fprintf(b, "    %s,\n", EnumVariantName(v.Name))
		}
		b.WriteString("}\n\n")
		return nil
	}
	fmt.Fprintf(b, "public enum %s {\n", className)
	for i, v := range e.Variants {
		discr, err := VariantDiscrLiteral(e, i)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "    %s(%s),\n", EnumVariantName(v.Name), discr)
	}
	b.WriteString("    ;\n\n")
	repr := FindCodeType(*e.Repr).TypeLabel(ci, cfg)
	fmt.Fprintf(b, "    private final %s value;\n\n", repr)
	fmt.Fprintf(b, "    %s(%s value) {\n        this.value = value;\n    }\n\n", className, repr)
	fmt.Fprintf(b, "    public %s getValue() {\n        return value;\n    }\n", repr)
	b.WriteString("}\n\n")
	return nil
}

// writeErrorEnum renders an error-flagged enum as an exception hierarchy.
func writeErrorEnum(b *strings.Builder, ci *model.ComponentInterface, e *model.EnumDef, className string) error {
	fmt.Fprintf(b, "public class %s extends Exception {\n", className)
	fmt.Fprintf(b, "    public %s(String message) {\n        super(message);\n    }\n\n", className)
	for _, v := range e.Variants {
		variant := ErrorVariantName(v.Name)
		fmt.Fprintf(b, "    public static class %s extends %s {\n", variant, className)
		fmt.Fprintf(b, "        public %s(String message) {\n            super(message);\n        }\n", variant)
		b.WriteString("    }\n\n")
	}
	b.WriteString("}\n\n")
	return nil
}

func writeObject(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, o *model.ObjectDef) error {
	interfaceName, className := ObjectNames(ci, o)
	writeDocstring(b, o.Docstring, 0)

	fmt.Fprintf(b, "public interface %s {\n", interfaceName)
	for i := range o.Methods {
		m := &o.Methods[i]
		writeDocstring(b, m.Docstring, 4)
		fmt.Fprintf(b, "    %s %s(%s)%s;\n", AsyncReturnType(m, ci, cfg), FnName(m.Name), methodParams(cfg, ci, m), surfaceThrowsClause(cfg, ci, m))
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "public class %s implements %s, AutoCloseable {\n", className, interfaceName)
	b.WriteString("    private final Pointer pointer;\n\n")
	fmt.Fprintf(b, "    %s(Pointer pointer) {\n        this.pointer = pointer;\n    }\n\n", className)
	b.WriteString("    Pointer uniffiClonePointer() {\n        return pointer;\n    }\n\n")

	for i := range o.Constructors {
		c := &o.Constructors[i]
		if c.Async {
			return fmt.Errorf("object %q constructor %q: async constructors are not supported", o.Name, c.Name)
		}
		writeDocstring(b, c.Docstring, 4)
		throwsClause := ""
		if c.Throws != nil {
			if ci.IsExternal(*c.Throws) {
				return fmt.Errorf("object %q constructor %q throws external error type %s, which cannot be rendered", o.Name, c.Name, c.Throws)
			}
			throwsClause = " throws " + FindCodeType(*c.Throws).TypeLabel(ci, cfg)
		}
		fmt.Fprintf(b, "    public static %s %s(%s)%s {\n", className, FnName(c.Name), methodParams(cfg, ci, c), throwsClause)
		call := constructorCallExpr(cfg, ci, c, ffiConstructorName(ci, o.Name, c.Name))
		fmt.Fprintf(b, "        return new %s(%s);\n    }\n\n", className, call)
	}
	for i := range o.Methods {
		m := &o.Methods[i]
		if err := writeCallableBody(b, cfg, ci, m, ffiMethodName(ci, o.Name, m.Name), "pointer", false); err != nil {
			return fmt.Errorf("object %q method %q: %w", o.Name, m.Name, err)
		}
	}

	b.WriteString("    @Override\n    public void close() {\n")
	fmt.Fprintf(b, "        UniffiHelpers.uniffiRustCallVoid(status -> UniffiLib.getInstance().%s(pointer, status));\n", ffiObjectFreeName(ci, o.Name))
	b.WriteString("    }\n}\n\n")
	return nil
}

func writeCallbackInterface(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, cb *model.CallbackInterfaceDef) {
	className := ClassName(ci, cb.Name)
	writeDocstring(b, cb.Docstring, 0)
	fmt.Fprintf(b, "public interface %s {\n", className)
	for i := range cb.Methods {
		m := &cb.Methods[i]
		writeDocstring(b, m.Docstring, 4)
		fmt.Fprintf(b, "    %s %s(%s)%s;\n", AsyncReturnType(m, ci, cfg), FnName(m.Name), methodParams(cfg, ci, m), surfaceThrowsClause(cfg, ci, m))
	}
	b.WriteString("}\n\n")
}

// writeNamespaceFunctions emits the class wrapping top-level functions.
func writeNamespaceFunctions(b *strings.Builder, cfg *Config, ci *model.ComponentInterface) error {
	if len(ci.Functions) == 0 {
		return nil
	}
	className := ToUpperCamelCase(ci.Namespace)
	fmt.Fprintf(b, "public final class %s {\n", className)
	fmt.Fprintf(b, "    private %s() {}\n\n", className)
	for i := range ci.Functions {
		f := &ci.Functions[i]
		writeDocstring(b, f.Docstring, 4)
		if err := writeCallableBody(b, cfg, ci, f, ffiFunctionName(ci, f.Name), "", true); err != nil {
			return fmt.Errorf("function %q: %w", f.Name, err)
		}
	}
	b.WriteString("}\n\n")
	return nil
}

// writeCallableBody emits the full wrapper method for a sync or async
// callable.
func writeCallableBody(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, f *model.FunctionDef, ffiName, receiver string, static bool) error {
	modifier := "public"
	if static {
		modifier = "public static"
	}
	throwsClause := ""
	if f.Throws != nil {
		if ci.IsExternal(*f.Throws) {
			return fmt.Errorf("throws external error type %s, which cannot be rendered", f.Throws)
		}
		throwsClause = " throws " + FindCodeType(*f.Throws).TypeLabel(ci, cfg)
	}
	if !static {
		modifier = "@Override\n    public"
	}
	fmt.Fprintf(b, "    %s %s %s(%s)%s {\n", modifier, AsyncReturnType(f, ci, cfg), FnName(f.Name), methodParams(cfg, ci, f), throwsClause)
	if f.Async {
		writeAsyncCall(b, cfg, ci, f, ffiName, receiver)
	} else {
		writeSyncCall(b, cfg, ci, f, ffiName, receiver)
	}
	b.WriteString("    }\n\n")
	return nil
}

func writeSyncCall(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, f *model.FunctionDef, ffiName, receiver string) {
	call := nativeCallExpr(cfg, ci, f, ffiName, receiver)
	if f.Return != nil {
		fmt.Fprintf(b, "        return %s;\n", call)
	} else {
		fmt.Fprintf(b, "        %s;\n", call)
	}
}

// nativeCallExpr builds the expression invoking the native entry point and
// lifting its result.
func nativeCallExpr(cfg *Config, ci *model.ComponentInterface, f *model.FunctionDef, ffiName, receiver string) string {
	args := loweredArgs(cfg, ci, f, receiver)
	var rustCall string
	switch {
	case f.Throws != nil && f.Return != nil:
		rustCall = fmt.Sprintf("UniffiHelpers.uniffiRustCallWithError(%s, ", FfiConverterInstance(FindCodeType(*f.Throws), cfg, ci))
	case f.Throws != nil:
		rustCall = fmt.Sprintf("UniffiHelpers.uniffiRustCallWithErrorVoid(%s, ", FfiConverterInstance(FindCodeType(*f.Throws), cfg, ci))
	case f.Return != nil:
		rustCall = "UniffiHelpers.uniffiRustCall("
	default:
		rustCall = "UniffiHelpers.uniffiRustCallVoid("
	}
	inner := fmt.Sprintf("status -> UniffiLib.getInstance().%s(%s)", ffiName, strings.Join(append(args, "status"), ", "))
	call := rustCall + inner + ")"
	if f.Return != nil {
		return fmt.Sprintf("%s(%s)", LiftFn(FindCodeType(*f.Return), cfg, ci), call)
	}
	return call
}

// constructorCallExpr builds the expression producing the new object's raw
// pointer. Constructors never lift; the surrounding wrapper adopts the
// pointer directly.
func constructorCallExpr(cfg *Config, ci *model.ComponentInterface, c *model.FunctionDef, ffiName string) string {
	args := loweredArgs(cfg, ci, c, "")
	inner := fmt.Sprintf("status -> UniffiLib.getInstance().%s(%s)", ffiName, strings.Join(append(args, "status"), ", "))
	if c.Throws != nil {
		return fmt.Sprintf("UniffiHelpers.uniffiRustCallWithError(%s, %s)", FfiConverterInstance(FindCodeType(*c.Throws), cfg, ci), inner)
	}
	return fmt.Sprintf("UniffiHelpers.uniffiRustCall(%s)", inner)
}

func writeAsyncCall(b *strings.Builder, cfg *Config, ci *model.ComponentInterface, f *model.FunctionDef, ffiName, receiver string) {
	args := loweredArgs(cfg, ci, f, receiver)
	liftExpr := "result -> null"
	if f.Return != nil {
		liftExpr = fmt.Sprintf("result -> %s(result)", LiftFn(FindCodeType(*f.Return), cfg, ci))
	}
	errorHandler := "null"
	if f.Throws != nil {
		errorHandler = FfiConverterInstance(FindCodeType(*f.Throws), cfg, ci)
	}
	b.WriteString("        return UniffiAsyncHelpers.uniffiRustCallAsync(\n")
	fmt.Fprintf(b, "            UniffiLib.getInstance().%s(%s),\n", ffiName, strings.Join(args, ", "))
	fmt.Fprintf(b, "            %s,\n", AsyncPoll(f, ci))
	fmt.Fprintf(b, "            %s,\n", AsyncComplete(f, ci, cfg))
	fmt.Fprintf(b, "            %s,\n", AsyncFree(f, ci))
	fmt.Fprintf(b, "            %s,\n", liftExpr)
	fmt.Fprintf(b, "            %s);\n", errorHandler)
}

func loweredArgs(cfg *Config, ci *model.ComponentInterface, f *model.FunctionDef, receiver string) []string {
	var args []string
	if receiver != "" {
		args = append(args, receiver)
	}
	for _, a := range f.Args {
		if a.Type.Kind == model.KindCustom {
			args = append(args, LowerCustomExpr(cfg, a.Type.Name, *a.Type.Builtin, VarName(a.Name), ci))
			continue
		}
		args = append(args, fmt.Sprintf("%s(%s)", LowerFn(FindCodeType(a.Type), cfg, ci), VarName(a.Name)))
	}
	return args
}

// surfaceThrowsClause renders the throws declaration for a surface method.
// Renderability of the error type is checked where the wrapper body is
// emitted, not here.
func surfaceThrowsClause(cfg *Config, ci *model.ComponentInterface, f *model.FunctionDef) string {
	if f.Throws == nil {
		return ""
	}
	return " throws " + FindCodeType(*f.Throws).TypeLabel(ci, cfg)
}

func methodParams(cfg *Config, ci *model.ComponentInterface, f *model.FunctionDef) string {
	var params []string
	for _, a := range f.Args {
		params = append(params, FindCodeType(a.Type).TypeLabel(ci, cfg)+" "+VarName(a.Name))
	}
	return strings.Join(params, ", ")
}

// writeInitialization emits the one-time setup calls collected across all
// local types, invoked once at module load.
func writeInitialization(b *strings.Builder, ci *model.ComponentInterface) {
	var fns []string
	for _, t := range ci.LocalTypes() {
		if fn := InitializationFn(FindCodeType(t)); fn != "" {
			fns = append(fns, fn)
		}
	}
	if len(fns) == 0 {
		return
	}
	b.WriteString("final class UniffiInitializer {\n")
	b.WriteString("    static void ensureInitialized() {\n")
	for _, fn := range fns {
		fmt.Fprintf(b, "        %s(UniffiLib.getInstance());\n", fn)
	}
	b.WriteString("    }\n}\n\n")
}

// ---------- FFI entry point names ----------

func ffiFunctionName(ci *model.ComponentInterface, name string) string {
	return fmt.Sprintf("uniffi_%s_fn_func_%s", ci.CrateName, strings.ToLower(name))
}

func ffiMethodName(ci *model.ComponentInterface, objName, name string) string {
	return fmt.Sprintf("uniffi_%s_fn_method_%s_%s", ci.CrateName, strings.ToLower(objName), strings.ToLower(name))
}

func ffiConstructorName(ci *model.ComponentInterface, objName, name string) string {
	return fmt.Sprintf("uniffi_%s_fn_constructor_%s_%s", ci.CrateName, strings.ToLower(objName), strings.ToLower(name))
}

func ffiObjectFreeName(ci *model.ComponentInterface, objName string) string {
	return fmt.Sprintf("uniffi_%s_fn_free_%s", ci.CrateName, strings.ToLower(objName))
}

func ffiInitCallbackName(ci *model.ComponentInterface, name string) string {
	return fmt.Sprintf("uniffi_%s_fn_init_callback_vtable_%s", ci.CrateName, strings.ToLower(name))
}

func recordByName(ci *model.ComponentInterface, name string) *model.RecordDef {
	for i := range ci.Records {
		if ci.Records[i].Name == name {
			return &ci.Records[i]
		}
	}
	return nil
}

func objectByName(ci *model.ComponentInterface, name string) *model.ObjectDef {
	for i := range ci.Objects {
		if ci.Objects[i].Name == name {
			return &ci.Objects[i]
		}
	}
	return nil
}

func callbackByName(ci *model.ComponentInterface, name string) *model.CallbackInterfaceDef {
	for i := range ci.CallbackInterfaces {
		if ci.CallbackInterfaces[i].Name == name {
			return &ci.CallbackInterfaces[i]
		}
	}
	return nil
}

func enumByName(ci *model.ComponentInterface, name string) *model.EnumDef {
	for i := range ci.Enums {
		if ci.Enums[i].Name == name {
			return &ci.Enums[i]
		}
	}
	return nil
}

// liftTargetName is the concrete class a lifted object pointer constructs.
func liftTargetName(ci *model.ComponentInterface, t model.Type) string {
	for i := range ci.Objects {
		if ci.Objects[i].Name == t.Name {
			_, className := ObjectNames(ci, &ci.Objects[i])
			return className
		}
	}
	return ClassName(ci, t.Name)
}
