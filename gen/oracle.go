package gen

import (
	"strings"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
)

// javaKeywords is the reserved word list from the Java language
// specification, section 3.9.
var javaKeywords = map[string]bool{
	"abstract": true, "continue": true, "for": true, "new": true, "switch": true,
	"assert": true, "default": true, "if": true, "package": true, "synchronized": true,
	"boolean": true, "do": true, "goto": true, "private": true, "this": true,
	"break": true, "double": true, "implements": true, "protected": true, "throw": true,
	"byte": true, "else": true, "import": true, "public": true, "throws": true,
	"case": true, "enum": true, "instanceof": true, "return": true, "transient": true,
	"catch": true, "extends": true, "int": true, "short": true, "try": true,
	"char": true, "final": true, "interface": true, "static": true, "void": true,
	"class": true, "finally": true, "long": true, "strictfp": true, "volatile": true,
	"const": true, "float": true, "native": true, "super": true, "while": true,
	"_": true,
}

// fixupKeyword escapes identifiers colliding with a Java reserved word.
// It must run after every other transformation so that a case-converted
// collision is still caught.
func fixupKeyword(name string) string {
	if javaKeywords[name] {
		return "_" + name
	}
	return name
}

// ClassName returns the idiomatic Java class name for enums, records,
// objects, and errors. Names registered as error types have a trailing
// "Error" rewritten to "Exception".
func ClassName(ci *model.ComponentInterface, name string) string {
	n := ToUpperCamelCase(name)
	if ci.IsNameUsedAsError(name) {
		n = convertErrorSuffix(n)
	}
	return fixupKeyword(n)
}

// convertErrorSuffix rewrites a trailing "Error" to "Exception". Only a
// suffix match rewrites; "ErrorHandler" is untouched.
func convertErrorSuffix(name string) string {
	if stripped, ok := strings.CutSuffix(name, "Error"); ok {
		return stripped + "Exception"
	}
	return name
}

// FnName returns the idiomatic Java method name.
func FnName(name string) string {
	return fixupKeyword(ToLowerCamelCase(name))
}

// VarName returns the idiomatic Java variable name.
func VarName(name string) string {
	return fixupKeyword(VarNameRaw(name))
}

// VarNameRaw is VarName without the reserved word escape. Used where the
// raw spelling must match across declarations, e.g. @Structure.FieldOrder.
func VarNameRaw(name string) string {
	return ToLowerCamelCase(name)
}

// SetterName returns the idiomatic setter name for a variable.
func SetterName(name string) string {
	return "set" + fixupKeyword(ToUpperCamelCase(name))
}

// EnumVariantName returns the idiomatic rendering of an enum variant.
func EnumVariantName(name string) string {
	return ToShoutySnakeCase(name)
}

// ErrorVariantName returns the class-style rendering of an error enum
// variant, with the Error suffix rewrite applied.
func ErrorVariantName(name string) string {
	return convertErrorSuffix(ToUpperCamelCase(name))
}

// FfiCallbackName returns the name of an FFI callback function type. The
// fixed prefix keeps these out of the user-level class namespace.
func FfiCallbackName(name string) string {
	return "Uniffi" + ToUpperCamelCase(name)
}

// FfiStructName returns the name of an FFI struct type.
func FfiStructName(name string) string {
	return "Uniffi" + ToUpperCamelCase(name)
}

// ObjectNames returns the outward-facing interface name and the concrete
// class name for an object.
//
// If the object supports callback interfaces, foreign code may implement
// it, so the IR name becomes the public contract and the implementation
// gains an Impl suffix. Otherwise the IR name is the concrete class and an
// Interface name is synthesized for symmetry. The split determines what
// the converter's lower() accepts.
func ObjectNames(ci *model.ComponentInterface, obj *model.ObjectDef) (interfaceName, className string) {
	class := ClassName(ci, obj.Name)
	if obj.Imp.HasCallbackInterface() {
		return class, class + "Impl"
	}
	return class + "Interface", class
}

// potentiallyAddExternalPackage prefixes the owning module's package onto a
// display name when the named type is not locally owned.
func potentiallyAddExternalPackage(cfg *Config, ci *model.ComponentInterface, typeName, displayName string) string {
	t, ok := ci.GetType(typeName)
	if !ok {
		return displayName
	}
	if !ci.IsExternal(t) {
		return displayName
	}
	return cfg.ExternalTypePackageName(t.ModulePath, displayName) + "." + displayName
}
