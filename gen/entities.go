package gen

import "github.com/mvniekerk/uniffi-bindgen-java/model"

// Named-type descriptors: enums, records, objects, callback interfaces, and
// custom types. Class names consult the cross-module resolver when the type
// is not locally owned.

// externalConverterInstance qualifies a converter reference through the
// owning module's package when the named type is not locally owned. Local
// types keep the bare singleton accessor.
func externalConverterInstance(cfg *Config, ci *model.ComponentInterface, typeName, converterName string) string {
	inst := converterName + ".INSTANCE"
	t, ok := ci.GetType(typeName)
	if !ok || !ci.IsExternal(t) {
		return inst
	}
	return cfg.ExternalTypePackageName(t.ModulePath, ClassName(ci, typeName)) + "." + inst
}

type enumCodeType struct {
	name string
}

func (c enumCodeType) TypeLabel(ci *model.ComponentInterface, cfg *Config) string {
	return potentiallyAddExternalPackage(cfg, ci, c.name, ClassName(ci, c.name))
}

func (c enumCodeType) CanonicalName() string {
	return "Type" + ToUpperCamelCase(c.name)
}

func (c enumCodeType) FfiConverterInstance(cfg *Config, ci *model.ComponentInterface) string {
	return externalConverterInstance(cfg, ci, c.name, FfiConverterName(c))
}

type recordCodeType struct {
	name string
}

func (c recordCodeType) TypeLabel(ci *model.ComponentInterface, cfg *Config) string {
	return potentiallyAddExternalPackage(cfg, ci, c.name, ClassName(ci, c.name))
}

func (c recordCodeType) CanonicalName() string {
	return "Type" + ToUpperCamelCase(c.name)
}

func (c recordCodeType) FfiConverterInstance(cfg *Config, ci *model.ComponentInterface) string {
	return externalConverterInstance(cfg, ci, c.name, FfiConverterName(c))
}

type objectCodeType struct {
	name string
	imp  model.ObjectImpl
}

func (c objectCodeType) TypeLabel(ci *model.ComponentInterface, cfg *Config) string {
	return potentiallyAddExternalPackage(cfg, ci, c.name, ClassName(ci, c.name))
}

func (c objectCodeType) CanonicalName() string {
	return "Type" + ToUpperCamelCase(c.name)
}

func (c objectCodeType) FfiConverterInstance(cfg *Config, ci *model.ComponentInterface) string {
	return externalConverterInstance(cfg, ci, c.name, FfiConverterName(c))
}

// Trait-backed objects implemented by foreign code need their vtable
// registered with the native library once at startup.
func (c objectCodeType) InitializationFn() string {
	if !c.imp.HasCallbackInterface() {
		return ""
	}
	return "UniffiCallbackInterface" + ToUpperCamelCase(c.name) + ".INSTANCE.register"
}

type callbackInterfaceCodeType struct {
	name string
}

func (c callbackInterfaceCodeType) TypeLabel(ci *model.ComponentInterface, cfg *Config) string {
	return potentiallyAddExternalPackage(cfg, ci, c.name, ClassName(ci, c.name))
}

func (c callbackInterfaceCodeType) CanonicalName() string {
	return "Type" + ToUpperCamelCase(c.name)
}

func (c callbackInterfaceCodeType) FfiConverterInstance(cfg *Config, ci *model.ComponentInterface) string {
	return externalConverterInstance(cfg, ci, c.name, FfiConverterName(c))
}

func (c callbackInterfaceCodeType) InitializationFn() string {
	return "UniffiCallbackInterface" + ToUpperCamelCase(c.name) + ".INSTANCE.register"
}

type customCodeType struct {
	name    string
	builtin model.Type
}

// A custom type declares its surface type in config; without one it renders
// as a plain class name.
func (c customCodeType) TypeLabel(ci *model.ComponentInterface, cfg *Config) string {
	if ctc, ok := cfg.CustomTypes[c.name]; ok && ctc.TypeName != "" {
		return ctc.TypeName
	}
	return potentiallyAddExternalPackage(cfg, ci, c.name, ClassName(ci, c.name))
}

func (c customCodeType) CanonicalName() string {
	return "Type" + ToUpperCamelCase(c.name)
}

func (c customCodeType) FfiConverterInstance(cfg *Config, ci *model.ComponentInterface) string {
	return externalConverterInstance(cfg, ci, c.name, FfiConverterName(c))
}

func (c customCodeType) Imports(cfg *Config) []string {
	if ctc, ok := cfg.CustomTypes[c.name]; ok {
		return ctc.Imports
	}
	return nil
}

// CustomFromExpr applies the configured conversion from a custom surface
// value expression down to its builtin representation. Without a template
// the value is its own builtin.
func CustomFromExpr(cfg *Config, name, expr string) string {
	if ctc, ok := cfg.CustomTypes[name]; ok && !ctc.Lower.IsZero() {
		return ctc.Lower.Apply(expr)
	}
	return expr
}

// CustomIntoExpr applies the configured conversion from a builtin value
// expression up to the custom surface type.
func CustomIntoExpr(cfg *Config, name, expr string) string {
	if ctc, ok := cfg.CustomTypes[name]; ok && !ctc.Lift.IsZero() {
		return ctc.Lift.Apply(expr)
	}
	return expr
}

// LowerCustomExpr routes a custom type's value through the user-supplied
// lower template when one is configured, then through the builtin converter.
func LowerCustomExpr(cfg *Config, name string, builtin model.Type, expr string, ci *model.ComponentInterface) string {
	return LowerFn(FindCodeType(builtin), cfg, ci) + "(" + CustomFromExpr(cfg, name, expr) + ")"
}

// LiftCustomExpr is the inverse of LowerCustomExpr.
func LiftCustomExpr(cfg *Config, name string, builtin model.Type, expr string, ci *model.ComponentInterface) string {
	return CustomIntoExpr(cfg, name, LiftFn(FindCodeType(builtin), cfg, ci)+"("+expr+")")
}
