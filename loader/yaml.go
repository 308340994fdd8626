package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
	"gopkg.in/yaml.v3"
)

// LoadComponentInterface reads and parses a YAML interface definition file.
// It validates the YAML against the JSON Schema before unmarshalling.
func LoadComponentInterface(path string) (*model.ComponentInterface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading interface definition: %w", err)
	}
	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	return ParseComponentInterface(data)
}

// ParseComponentInterface parses raw YAML bytes without schema validation.
// Used internally when schema validation has already been performed.
func ParseComponentInterface(data []byte) (*model.ComponentInterface, error) {
	var raw rawInterface
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing interface definition: %w", err)
	}
	return buildInterface(&raw)
}

// Raw YAML shapes. Types appear as strings ("u32", "Point?",
// "sequence<string>", "map<string, i64>") and are resolved after all named
// definitions are registered.

type rawInterface struct {
	CrateName          string        `yaml:"crate_name"`
	Namespace          string        `yaml:"namespace"`
	Records            []rawRecord   `yaml:"records"`
	Enums              []rawEnum     `yaml:"enums"`
	Objects            []rawObject   `yaml:"objects"`
	CallbackInterfaces []rawCallback `yaml:"callback_interfaces"`
	CustomTypes        []rawCustom   `yaml:"custom_types"`
	ExternalTypes      []rawExternal `yaml:"external_types"`
	Functions          []rawFunction `yaml:"functions"`
}

type rawField struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

type rawRecord struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Fields      []rawField `yaml:"fields"`
}

type rawVariant struct {
	Name        string `yaml:"name"`
	Discr       *int64 `yaml:"discr"`
	Description string `yaml:"description"`
}

type rawEnum struct {
	Name        string       `yaml:"name"`
	Error       bool         `yaml:"error"`
	Repr        string       `yaml:"repr"`
	Variants    []rawVariant `yaml:"variants"`
	Description string       `yaml:"description"`
}

type rawFunction struct {
	Name        string     `yaml:"name"`
	Args        []rawField `yaml:"args"`
	Return      string     `yaml:"return"`
	Throws      string     `yaml:"throws"`
	Async       bool       `yaml:"async"`
	Description string     `yaml:"description"`
}

type rawObject struct {
	Name         string        `yaml:"name"`
	Impl         string        `yaml:"impl"`
	Constructors []rawFunction `yaml:"constructors"`
	Methods      []rawFunction `yaml:"methods"`
	Description  string        `yaml:"description"`
}

type rawCallback struct {
	Name        string        `yaml:"name"`
	Methods     []rawFunction `yaml:"methods"`
	Description string        `yaml:"description"`
}

type rawCustom struct {
	Name    string `yaml:"name"`
	Builtin string `yaml:"builtin"`
}

type rawExternal struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	ModulePath string `yaml:"module_path"`
	Builtin    string `yaml:"builtin"`
	Impl       string `yaml:"impl"`
}

// typeIndex resolves type name strings to model types. Named types must be
// registered before any field or argument referencing them is parsed.
type typeIndex struct {
	named map[string]model.Type
}

var primitives = map[string]model.TypeKind{
	"u8":        model.KindUInt8,
	"i8":        model.KindInt8,
	"u16":       model.KindUInt16,
	"i16":       model.KindInt16,
	"u32":       model.KindUInt32,
	"i32":       model.KindInt32,
	"u64":       model.KindUInt64,
	"i64":       model.KindInt64,
	"f32":       model.KindFloat32,
	"f64":       model.KindFloat64,
	"boolean":   model.KindBoolean,
	"string":    model.KindString,
	"bytes":     model.KindBytes,
	"timestamp": model.KindTimestamp,
	"duration":  model.KindDuration,
}

// parseType resolves one type string. Suffix "?" marks an optional;
// "sequence<T>" and "map<K, V>" nest arbitrarily.
func (idx *typeIndex) parseType(s string) (model.Type, error) {
	s = strings.TrimSpace(s)
	if inner, ok := strings.CutSuffix(s, "?"); ok {
		t, err := idx.parseType(inner)
		if err != nil {
			return model.Type{}, err
		}
		return model.OptionalOf(t), nil
	}
	if kind, ok := primitives[s]; ok {
		return model.Primitive(kind), nil
	}
	if inner, ok := cutGeneric(s, "sequence"); ok {
		t, err := idx.parseType(inner)
		if err != nil {
			return model.Type{}, err
		}
		return model.SequenceOf(t), nil
	}
	if inner, ok := cutGeneric(s, "map"); ok {
		keyStr, valStr, ok := splitTopLevelComma(inner)
		if !ok {
			return model.Type{}, fmt.Errorf("map type %q needs exactly two arguments", s)
		}
		key, err := idx.parseType(keyStr)
		if err != nil {
			return model.Type{}, err
		}
		val, err := idx.parseType(valStr)
		if err != nil {
			return model.Type{}, err
		}
		return model.MapOf(key, val), nil
	}
	if t, ok := idx.named[s]; ok {
		return t, nil
	}
	return model.Type{}, fmt.Errorf("unknown type %q", s)
}

// cutGeneric strips "name<" and the trailing ">" when s is an application of
// the named generic.
func cutGeneric(s, name string) (string, bool) {
	rest, ok := strings.CutPrefix(s, name+"<")
	if !ok {
		return "", false
	}
	inner, ok := strings.CutSuffix(rest, ">")
	return inner, ok
}

// splitTopLevelComma splits on the first comma not nested inside angle
// brackets.
func splitTopLevelComma(s string) (string, string, bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

func buildInterface(raw *rawInterface) (*model.ComponentInterface, error) {
	ci := &model.ComponentInterface{
		CrateName: raw.CrateName,
		Namespace: raw.Namespace,
	}
	if ci.Namespace == "" {
		ci.Namespace = ci.CrateName
	}
	idx := &typeIndex{named: make(map[string]model.Type)}

	// Register every named type before parsing any type reference, so
	// definitions may refer to each other in any order.
	for _, r := range raw.Records {
		idx.named[r.Name] = model.RecordType(r.Name, ci.CrateName)
	}
	for _, e := range raw.Enums {
		idx.named[e.Name] = model.EnumType(e.Name, ci.CrateName)
	}
	for _, o := range raw.Objects {
		imp, err := parseObjectImpl(o.Impl)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", o.Name, err)
		}
		idx.named[o.Name] = model.ObjectType(o.Name, ci.CrateName, imp)
	}
	for _, cb := range raw.CallbackInterfaces {
		idx.named[cb.Name] = model.CallbackInterfaceType(cb.Name, ci.CrateName)
	}
	for _, ext := range raw.ExternalTypes {
		t, err := idx.parseExternal(ext)
		if err != nil {
			return nil, fmt.Errorf("external type %q: %w", ext.Name, err)
		}
		idx.named[ext.Name] = t
		ci.ExternalTypes = append(ci.ExternalTypes, t)
	}
	// Custom builtins may reference any registered name, including other
	// customs declared earlier in the file.
	for _, c := range raw.CustomTypes {
		builtin, err := idx.parseType(c.Builtin)
		if err != nil {
			return nil, fmt.Errorf("custom type %q builtin: %w", c.Name, err)
		}
		idx.named[c.Name] = model.CustomType(c.Name, ci.CrateName, builtin)
		ci.Customs = append(ci.Customs, model.CustomDef{Name: c.Name, Builtin: builtin})
	}

	for _, r := range raw.Records {
		rec := model.RecordDef{Name: r.Name, Docstring: r.Description}
		for _, f := range r.Fields {
			t, err := idx.parseType(f.Type)
			if err != nil {
				return nil, fmt.Errorf("record %q field %q: %w", r.Name, f.Name, err)
			}
			rec.Fields = append(rec.Fields, model.FieldDef{Name: f.Name, Type: t, Docstring: f.Description})
		}
		ci.Records = append(ci.Records, rec)
	}

	for _, e := range raw.Enums {
		def, err := idx.buildEnum(e)
		if err != nil {
			return nil, err
		}
		ci.Enums = append(ci.Enums, def)
	}

	for _, o := range raw.Objects {
		imp, _ := parseObjectImpl(o.Impl)
		def := model.ObjectDef{Name: o.Name, Imp: imp, Docstring: o.Description}
		for _, c := range o.Constructors {
			fn, err := idx.buildFunction(c)
			if err != nil {
				return nil, fmt.Errorf("object %q constructor %q: %w", o.Name, c.Name, err)
			}
			def.Constructors = append(def.Constructors, fn)
		}
		for _, m := range o.Methods {
			fn, err := idx.buildFunction(m)
			if err != nil {
				return nil, fmt.Errorf("object %q method %q: %w", o.Name, m.Name, err)
			}
			def.Methods = append(def.Methods, fn)
		}
		ci.Objects = append(ci.Objects, def)
	}

	for _, cb := range raw.CallbackInterfaces {
		def := model.CallbackInterfaceDef{Name: cb.Name, Docstring: cb.Description}
		for _, m := range cb.Methods {
			fn, err := idx.buildFunction(m)
			if err != nil {
				return nil, fmt.Errorf("callback interface %q method %q: %w", cb.Name, m.Name, err)
			}
			def.Methods = append(def.Methods, fn)
		}
		ci.CallbackInterfaces = append(ci.CallbackInterfaces, def)
	}

	for _, f := range raw.Functions {
		fn, err := idx.buildFunction(f)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", f.Name, err)
		}
		ci.Functions = append(ci.Functions, fn)
	}

	return ci, nil
}

func parseObjectImpl(s string) (model.ObjectImpl, error) {
	switch s {
	case "", "struct":
		return model.ObjectImplStruct, nil
	case "trait":
		return model.ObjectImplTrait, nil
	case "callback_trait":
		return model.ObjectImplCallbackTrait, nil
	default:
		return model.ObjectImplStruct, fmt.Errorf("unknown impl kind %q", s)
	}
}

func (idx *typeIndex) parseExternal(ext rawExternal) (model.Type, error) {
	if ext.ModulePath == "" {
		return model.Type{}, fmt.Errorf("module_path is required")
	}
	switch ext.Kind {
	case "record":
		return model.RecordType(ext.Name, ext.ModulePath), nil
	case "enum":
		return model.EnumType(ext.Name, ext.ModulePath), nil
	case "interface":
		imp, err := parseObjectImpl(ext.Impl)
		if err != nil {
			return model.Type{}, err
		}
		return model.ObjectType(ext.Name, ext.ModulePath, imp), nil
	case "callback_interface":
		return model.CallbackInterfaceType(ext.Name, ext.ModulePath), nil
	case "custom":
		builtin, err := idx.parseType(ext.Builtin)
		if err != nil {
			return model.Type{}, fmt.Errorf("builtin: %w", err)
		}
		return model.CustomType(ext.Name, ext.ModulePath, builtin), nil
	default:
		return model.Type{}, fmt.Errorf("unknown kind %q", ext.Kind)
	}
}

// buildEnum parses the repr and fills in sequential discriminants for
// variants that declare none. An explicit discriminant resets the counter.
func (idx *typeIndex) buildEnum(e rawEnum) (model.EnumDef, error) {
	def := model.EnumDef{Name: e.Name, IsError: e.Error, Docstring: e.Description}
	if e.Repr != "" {
		repr, err := idx.parseType(e.Repr)
		if err != nil {
			return model.EnumDef{}, fmt.Errorf("enum %q repr: %w", e.Name, err)
		}
		def.Repr = &repr
	}
	next := int64(0)
	for _, v := range e.Variants {
		value := next
		if v.Discr != nil {
			value = *v.Discr
		}
		next = value + 1
		variant := model.VariantDef{Name: v.Name, Docstring: v.Description}
		if def.Repr != nil {
			variant.Discr = discrLiteral(*def.Repr, value)
		}
		def.Variants = append(def.Variants, variant)
	}
	return def, nil
}

func discrLiteral(repr model.Type, value int64) *model.Literal {
	if repr.Kind.IsSignedInteger() {
		return &model.Literal{Kind: model.LiteralInt, Int: value}
	}
	return &model.Literal{Kind: model.LiteralUInt, UInt: uint64(value)}
}

func (idx *typeIndex) buildFunction(f rawFunction) (model.FunctionDef, error) {
	fn := model.FunctionDef{Name: f.Name, Async: f.Async, Docstring: f.Description}
	for _, a := range f.Args {
		t, err := idx.parseType(a.Type)
		if err != nil {
			return model.FunctionDef{}, fmt.Errorf("argument %q: %w", a.Name, err)
		}
		fn.Args = append(fn.Args, model.ArgumentDef{Name: a.Name, Type: t})
	}
	if f.Return != "" {
		t, err := idx.parseType(f.Return)
		if err != nil {
			return model.FunctionDef{}, fmt.Errorf("return type: %w", err)
		}
		fn.Return = &t
	}
	if f.Throws != "" {
		t, err := idx.parseType(f.Throws)
		if err != nil {
			return model.FunctionDef{}, fmt.Errorf("throws type: %w", err)
		}
		fn.Throws = &t
	}
	return fn, nil
}
