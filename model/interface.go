package model

import (
	"fmt"
	"sort"
)

// Literal is a default or discriminant value attached to the interface.
// Only integer literals are renderable by the Java backend; the other kinds
// exist so that an unsupported literal fails with its kind named.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralUInt
	LiteralBool
	LiteralString
	LiteralFloat
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInt:
		return "int"
	case LiteralUInt:
		return "uint"
	case LiteralBool:
		return "bool"
	case LiteralString:
		return "string"
	case LiteralFloat:
		return "float"
	default:
		return fmt.Sprintf("LiteralKind(%d)", int(k))
	}
}

// Literal holds one literal value; the field matching Kind is meaningful.
type Literal struct {
	Kind  LiteralKind
	Int   int64
	UInt  uint64
	Bool  bool
	Str   string
	Float float64
}

// FieldDef is a record field or argument-like member.
type FieldDef struct {
	Name      string
	Type      Type
	Docstring string
}

// RecordDef is a plain data class.
type RecordDef struct {
	Name      string
	Fields    []FieldDef
	Docstring string
}

// VariantDef is one enum variant. Discr is nil when the interface metadata
// carried no explicit discriminant; the loader fills sequential values in.
type VariantDef struct {
	Name      string
	Discr     *Literal
	Docstring string
}

// EnumDef is an enum, optionally flagged as an error type. Repr is the
// declared discriminant representation width (an integer primitive type);
// generation fails if discriminants are rendered without one.
type EnumDef struct {
	Name      string
	IsError   bool
	Repr      *Type
	Variants  []VariantDef
	Docstring string
}

// ArgumentDef is one callable argument.
type ArgumentDef struct {
	Name string
	Type Type
}

// FunctionDef is a top-level function, constructor, or method.
type FunctionDef struct {
	Name      string
	Args      []ArgumentDef
	Return    *Type
	Throws    *Type
	Async     bool
	Docstring string
}

func (f *FunctionDef) CallableName() string     { return f.Name }
func (f *FunctionDef) Arguments() []ArgumentDef { return f.Args }
func (f *FunctionDef) ReturnType() *Type        { return f.Return }
func (f *FunctionDef) ThrowsType() *Type        { return f.Throws }
func (f *FunctionDef) IsAsync() bool            { return f.Async }

// Callable is anything with cross-boundary call metadata: top-level
// functions, object constructors, and object methods.
type Callable interface {
	CallableName() string
	Arguments() []ArgumentDef
	ReturnType() *Type
	ThrowsType() *Type
	IsAsync() bool
}

// ObjectDef is an object with native-owned state.
type ObjectDef struct {
	Name         string
	Imp          ObjectImpl
	Constructors []FunctionDef
	Methods      []FunctionDef
	Docstring    string
}

// CallbackInterfaceDef is an interface implemented by foreign code.
type CallbackInterfaceDef struct {
	Name      string
	Methods   []FunctionDef
	Docstring string
}

// CustomDef is a user-defined type wrapping a builtin representation.
type CustomDef struct {
	Name    string
	Builtin Type
}

// ComponentInterface is the parsed, read-only interface snapshot the whole
// generation run works from.
type ComponentInterface struct {
	CrateName          string
	Namespace          string
	Records            []RecordDef
	Enums              []EnumDef
	Objects            []ObjectDef
	CallbackInterfaces []CallbackInterfaceDef
	Customs            []CustomDef
	Functions          []FunctionDef
	// ExternalTypes are types owned by other compilation modules that this
	// interface references.
	ExternalTypes []Type
}

// IsNameUsedAsError reports whether the name is registered as an error type,
// either as an error-flagged enum or as the throws type of any callable.
func (ci *ComponentInterface) IsNameUsedAsError(name string) bool {
	for _, e := range ci.Enums {
		if e.Name == name && e.IsError {
			return true
		}
	}
	check := func(c Callable) bool {
		t := c.ThrowsType()
		return t != nil && t.Name == name
	}
	for i := range ci.Functions {
		if check(&ci.Functions[i]) {
			return true
		}
	}
	for oi := range ci.Objects {
		o := &ci.Objects[oi]
		for i := range o.Constructors {
			if check(&o.Constructors[i]) {
				return true
			}
		}
		for i := range o.Methods {
			if check(&o.Methods[i]) {
				return true
			}
		}
	}
	return false
}

// GetType looks up a named type, local or external.
func (ci *ComponentInterface) GetType(name string) (Type, bool) {
	for _, e := range ci.Enums {
		if e.Name == name {
			return EnumType(e.Name, ci.CrateName), true
		}
	}
	for _, r := range ci.Records {
		if r.Name == name {
			return RecordType(r.Name, ci.CrateName), true
		}
	}
	for _, o := range ci.Objects {
		if o.Name == name {
			return ObjectType(o.Name, ci.CrateName, o.Imp), true
		}
	}
	for _, cb := range ci.CallbackInterfaces {
		if cb.Name == name {
			return CallbackInterfaceType(cb.Name, ci.CrateName), true
		}
	}
	for _, c := range ci.Customs {
		if c.Name == name {
			return CustomType(c.Name, ci.CrateName, c.Builtin), true
		}
	}
	for _, t := range ci.ExternalTypes {
		if t.Name == name {
			return t, true
		}
	}
	return Type{}, false
}

// IsExternal reports whether a type is owned by a different compilation
// module than the one being generated.
func (ci *ComponentInterface) IsExternal(t Type) bool {
	return t.ModulePath != "" && CrateRoot(t.ModulePath) != ci.CrateName
}

// AllTypes returns every distinct type referenced anywhere in the interface,
// including the inner types of compounds, in deterministic order.
func (ci *ComponentInterface) AllTypes() []Type {
	seen := map[string]Type{}
	var add func(t Type)
	add = func(t Type) {
		key := t.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = t
		switch t.Kind {
		case KindOptional, KindSequence:
			add(*t.Inner)
		case KindMap:
			add(*t.Key)
			add(*t.Value)
		case KindCustom:
			add(*t.Builtin)
		}
	}
	addCallable := func(c Callable) {
		for _, a := range c.Arguments() {
			add(a.Type)
		}
		if rt := c.ReturnType(); rt != nil {
			add(*rt)
		}
		if tt := c.ThrowsType(); tt != nil {
			add(*tt)
		}
	}
	for _, r := range ci.Records {
		add(RecordType(r.Name, ci.CrateName))
		for _, f := range r.Fields {
			add(f.Type)
		}
	}
	for _, e := range ci.Enums {
		add(EnumType(e.Name, ci.CrateName))
	}
	for oi := range ci.Objects {
		o := &ci.Objects[oi]
		add(ObjectType(o.Name, ci.CrateName, o.Imp))
		for i := range o.Constructors {
			addCallable(&o.Constructors[i])
		}
		for i := range o.Methods {
			addCallable(&o.Methods[i])
		}
	}
	for cbi := range ci.CallbackInterfaces {
		cb := &ci.CallbackInterfaces[cbi]
		add(CallbackInterfaceType(cb.Name, ci.CrateName))
		for i := range cb.Methods {
			addCallable(&cb.Methods[i])
		}
	}
	for _, c := range ci.Customs {
		add(CustomType(c.Name, ci.CrateName, c.Builtin))
	}
	for i := range ci.Functions {
		addCallable(&ci.Functions[i])
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	types := make([]Type, 0, len(keys))
	for _, k := range keys {
		types = append(types, seen[k])
	}
	return types
}

// LocalTypes returns AllTypes filtered to types this module owns.
func (ci *ComponentInterface) LocalTypes() []Type {
	var local []Type
	for _, t := range ci.AllTypes() {
		if !ci.IsExternal(t) {
			local = append(local, t)
		}
	}
	return local
}

// FfiRustFuturePoll names the native entry point that polls a pending
// future for the callable's return kind.
func (ci *ComponentInterface) FfiRustFuturePoll(c Callable) string {
	return ci.futureFfiName("poll", c)
}

// FfiRustFutureComplete names the native entry point that completes a
// ready future and yields its result.
func (ci *ComponentInterface) FfiRustFutureComplete(c Callable) string {
	return ci.futureFfiName("complete", c)
}

// FfiRustFutureFree names the native entry point that releases a future
// handle.
func (ci *ComponentInterface) FfiRustFutureFree(c Callable) string {
	return ci.futureFfiName("free", c)
}

func (ci *ComponentInterface) futureFfiName(op string, c Callable) string {
	return fmt.Sprintf("ffi_%s_rust_future_%s_%s", ci.CrateName, op, futureKindSuffix(c.ReturnType()))
}

func futureKindSuffix(t *Type) string {
	if t == nil {
		return "void"
	}
	ft := FfiTypeOf(*t)
	switch ft.Kind {
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
	case FfiUInt64, FfiHandle:
		return "u64"
	case FfiInt64:
		return "i64"
	case FfiFloat32:
		return "f32"
	case FfiFloat64:
		return "f64"
	case FfiRustArcPtr:
		return "pointer"
	case FfiRustBuffer:
		return "rust_buffer"
	default:
		panic(fmt.Sprintf("no future suffix for FFI kind %s", ft.Kind))
	}
}
