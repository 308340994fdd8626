package gen

import "github.com/mvniekerk/uniffi-bindgen-java/model"

// Compound descriptors resolve their inner types recursively and compose
// canonical names from them, so two compounds over different element types
// can never collide on canonical name.

type optionalCodeType struct {
	inner model.Type
}

// Java references are nullable, so an optional is declared as its inner
// boxed type.
func (c optionalCodeType) TypeLabel(ci *model.ComponentInterface, cfg *Config) string {
	return FindCodeType(c.inner).TypeLabel(ci, cfg)
}

func (c optionalCodeType) CanonicalName() string {
	return "Optional" + FindCodeType(c.inner).CanonicalName()
}

func (c optionalCodeType) Imports(cfg *Config) []string {
	return ImportsOf(FindCodeType(c.inner), cfg)
}

type sequenceCodeType struct {
	inner model.Type
}

func (c sequenceCodeType) TypeLabel(ci *model.ComponentInterface, cfg *Config) string {
	return "List<" + FindCodeType(c.inner).TypeLabel(ci, cfg) + ">"
}

func (c sequenceCodeType) CanonicalName() string {
	return "Sequence" + FindCodeType(c.inner).CanonicalName()
}

func (c sequenceCodeType) Imports(cfg *Config) []string {
	return append([]string{"java.util.List", "java.util.ArrayList"}, ImportsOf(FindCodeType(c.inner), cfg)...)
}

type mapCodeType struct {
	key   model.Type
	value model.Type
}

func (c mapCodeType) TypeLabel(ci *model.ComponentInterface, cfg *Config) string {
	return "Map<" + FindCodeType(c.key).TypeLabel(ci, cfg) + ", " + FindCodeType(c.value).TypeLabel(ci, cfg) + ">"
}

func (c mapCodeType) CanonicalName() string {
	return "Map" + FindCodeType(c.key).CanonicalName() + FindCodeType(c.value).CanonicalName()
}

func (c mapCodeType) Imports(cfg *Config) []string {
	imports := []string{"java.util.Map", "java.util.HashMap"}
	imports = append(imports, ImportsOf(FindCodeType(c.key), cfg)...)
	imports = append(imports, ImportsOf(FindCodeType(c.value), cfg)...)
	return imports
}
