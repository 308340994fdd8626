package validate

import (
	"fmt"
	"strings"

	"github.com/mvniekerk/uniffi-bindgen-java/model"
)

// ValidationError represents a single semantic validation error.
type ValidationError struct {
	Path    string // e.g., "objects[0].methods[1].throws"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationResult holds all validation errors.
type ValidationResult struct {
	Errors []ValidationError
}

func (r *ValidationResult) addError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Validate performs semantic validation on a parsed component interface.
// Checks cover what the schema cannot express: cross-definition name
// uniqueness, discriminant representation requirements, and throws types
// that the backend cannot render.
func Validate(ci *model.ComponentInterface) *ValidationResult {
	result := &ValidationResult{}

	checkDuplicateTypeNames(result, ci)

	for i := range ci.Enums {
		checkEnum(result, fmt.Sprintf("enums[%d]", i), &ci.Enums[i])
	}

	for i := range ci.Functions {
		checkCallable(result, fmt.Sprintf("functions[%d]", i), ci, &ci.Functions[i])
	}
	for oi := range ci.Objects {
		o := &ci.Objects[oi]
		objPath := fmt.Sprintf("objects[%d]", oi)
		names := make(map[string]bool)
		for i := range o.Constructors {
			path := fmt.Sprintf("%s.constructors[%d]", objPath, i)
			if names[o.Constructors[i].Name] {
				result.addError(path+".name", fmt.Sprintf("duplicate name %q in object %q", o.Constructors[i].Name, o.Name))
			}
			names[o.Constructors[i].Name] = true
			if o.Constructors[i].Async {
				result.addError(path+".async", fmt.Sprintf("object %q constructor %q: async constructors are not supported", o.Name, o.Constructors[i].Name))
			}
			checkCallable(result, path, ci, &o.Constructors[i])
		}
		for i := range o.Methods {
			path := fmt.Sprintf("%s.methods[%d]", objPath, i)
			if names[o.Methods[i].Name] {
				result.addError(path+".name", fmt.Sprintf("duplicate name %q in object %q", o.Methods[i].Name, o.Name))
			}
			names[o.Methods[i].Name] = true
			checkCallable(result, path, ci, &o.Methods[i])
		}
	}
	for cbi := range ci.CallbackInterfaces {
		cb := &ci.CallbackInterfaces[cbi]
		for i := range cb.Methods {
			path := fmt.Sprintf("callback_interfaces[%d].methods[%d]", cbi, i)
			if cb.Methods[i].Async {
				result.addError(path+".async", fmt.Sprintf("callback interface %q method %q: async callback methods are not supported", cb.Name, cb.Methods[i].Name))
			}
			checkCallable(result, path, ci, &cb.Methods[i])
		}
	}

	return result
}

// checkDuplicateTypeNames ensures every named definition is unique across
// the whole interface. All definitions share one Java package, so a record
// and an enum with the same name would collide.
func checkDuplicateTypeNames(result *ValidationResult, ci *model.ComponentInterface) {
	seen := make(map[string]string)
	check := func(path, name string) {
		if prev, ok := seen[name]; ok {
			result.addError(path, fmt.Sprintf("duplicate type name %q, already defined at %s", name, prev))
			return
		}
		seen[name] = path
	}
	for i, r := range ci.Records {
		check(fmt.Sprintf("records[%d].name", i), r.Name)
	}
	for i, e := range ci.Enums {
		check(fmt.Sprintf("enums[%d].name", i), e.Name)
	}
	for i, o := range ci.Objects {
		check(fmt.Sprintf("objects[%d].name", i), o.Name)
	}
	for i, cb := range ci.CallbackInterfaces {
		check(fmt.Sprintf("callback_interfaces[%d].name", i), cb.Name)
	}
	for i, c := range ci.Customs {
		check(fmt.Sprintf("custom_types[%d].name", i), c.Name)
	}
	for i, t := range ci.ExternalTypes {
		check(fmt.Sprintf("external_types[%d].name", i), t.Name)
	}
}

// checkEnum verifies discriminant declarations: explicit discriminants need
// an integer representation to render against.
func checkEnum(result *ValidationResult, path string, e *model.EnumDef) {
	if e.Repr != nil && !e.Repr.Kind.IsInteger() {
		result.addError(path+".repr", fmt.Sprintf("enum %q repr must be an integer type, got %s", e.Name, e.Repr.Kind))
	}
	hasDiscr := false
	for _, v := range e.Variants {
		if v.Discr != nil {
			hasDiscr = true
			break
		}
	}
	if hasDiscr && e.Repr == nil {
		result.addError(path, fmt.Sprintf("enum %q declares variant discriminants but no repr", e.Name))
	}
	names := make(map[string]bool)
	for i, v := range e.Variants {
		if names[v.Name] {
			result.addError(fmt.Sprintf("%s.variants[%d].name", path, i), fmt.Sprintf("duplicate variant name %q in enum %q", v.Name, e.Name))
		}
		names[v.Name] = true
	}
}

// checkCallable verifies a callable can be rendered: its throws type must
// name a registered error enum owned by this module. External error types
// have no local exception class to catch.
func checkCallable(result *ValidationResult, path string, ci *model.ComponentInterface, f *model.FunctionDef) {
	if f.Throws == nil {
		return
	}
	t := *f.Throws
	errPath := path + ".throws"
	if ci.IsExternal(t) {
		result.addError(errPath, fmt.Sprintf("throws type %q is owned by module %q and cannot be rendered locally", t.Name, t.ModulePath))
		return
	}
	if t.Kind != model.KindEnum {
		result.addError(errPath, fmt.Sprintf("throws type %q must be an enum, got %s", t.Name, t.Kind))
		return
	}
	for _, e := range ci.Enums {
		if e.Name == t.Name {
			if !e.IsError {
				result.addError(errPath, fmt.Sprintf("throws type %q is not flagged as an error enum", t.Name))
			}
			return
		}
	}
	result.addError(errPath, fmt.Sprintf("throws type %q is not defined", t.Name))
}
