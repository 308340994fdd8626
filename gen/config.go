package gen

import (
	"fmt"
	"strings"

	"github.com/mvniekerk/uniffi-bindgen-java/resolver"
)

// Config carries the generation settings. It is constructed once upstream
// (see loader.LoadConfig) and read-only for the whole run.
type Config struct {
	PackageName              string
	CdylibName               string
	GenerateImmutableRecords bool
	CustomTypes              map[string]CustomTypeConfig
	// ExternalPackages maps an external module's crate root to the Java
	// package its bindings were generated into.
	ExternalPackages map[string]string
	Android          bool
	AndroidCleaner   *bool
	Quarkus          bool
}

// EffectivePackageName returns the configured Java package, defaulting to
// "uniffi".
func (c *Config) EffectivePackageName() string {
	if c.PackageName == "" {
		return "uniffi"
	}
	return c.PackageName
}

// EffectiveCdylibName returns the native library name, defaulting to
// "uniffi".
func (c *Config) EffectiveCdylibName() string {
	if c.CdylibName == "" {
		return "uniffi"
	}
	return c.CdylibName
}

// AndroidCleanerEnabled reports whether the android.system.SystemCleaner
// based resource cleaner should be generated. Defaults to the android
// toggle when unset.
func (c *Config) AndroidCleanerEnabled() bool {
	if c.AndroidCleaner != nil {
		return *c.AndroidCleaner
	}
	return c.Android
}

// ExternalTypePackageName resolves the Java package for a type owned by
// another module.
func (c *Config) ExternalTypePackageName(modulePath, displayName string) string {
	return resolver.PackageFor(c.ExternalPackages, modulePath, displayName)
}

// CustomTypeConfig customizes how one custom type maps onto its builtin
// representation.
type CustomTypeConfig struct {
	Imports  []string
	TypeName string
	Lift     ExprTemplate
	Lower    ExprTemplate
}

// ExprTemplate is a substitution template with exactly one "{}" placeholder
// for the expression being converted.
type ExprTemplate struct {
	text string
}

// ParseExprTemplate validates that the template contains exactly one
// placeholder, failing at load time rather than producing silently wrong
// conversions later.
func ParseExprTemplate(text string) (ExprTemplate, error) {
	if n := strings.Count(text, "{}"); n != 1 {
		return ExprTemplate{}, fmt.Errorf("custom type template %q must contain exactly one {} placeholder, found %d", text, n)
	}
	return ExprTemplate{text: text}, nil
}

// Apply substitutes the value expression into the template.
func (t ExprTemplate) Apply(expr string) string {
	return strings.Replace(t.text, "{}", expr, 1)
}

// IsZero reports whether the template was never set.
func (t ExprTemplate) IsZero() bool {
	return t.text == ""
}
