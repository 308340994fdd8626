// Package resolver decides which Java package a type owned by another
// compilation module belongs to. It never resolves the current module's own
// types; callers establish externality from interface membership first.
package resolver

import "github.com/mvniekerk/uniffi-bindgen-java/model"

// DefaultPackagePrefix is the fallback package prefix used when no explicit
// override is configured for an external module.
const DefaultPackagePrefix = "uniffi."

// PackageFor returns the Java package name for a type defined in the module
// identified by modulePath. Overrides are keyed by the module's crate root.
// On a miss the fixed-prefix convention applies; documented upstream as
// unreachable in library mode, but it is a real path and stays covered.
func PackageFor(overrides map[string]string, modulePath, displayName string) string {
	if pkg, ok := overrides[model.CrateRoot(modulePath)]; ok {
		return pkg
	}
	return DefaultPackagePrefix + displayName
}
