package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/mvniekerk/uniffi-bindgen-java/gen"
)

// rawConfig mirrors the [bindings.java] table of a uniffi.toml file. The
// lift and lower expression templates accept the spelled-out aliases
// into_custom and from_custom as well.
type rawConfig struct {
	Bindings struct {
		Java rawJavaConfig `toml:"java"`
	} `toml:"bindings"`
}

type rawJavaConfig struct {
	PackageName              string                     `toml:"package_name"`
	CdylibName               string                     `toml:"cdylib_name"`
	GenerateImmutableRecords bool                       `toml:"generate_immutable_records"`
	Android                  bool                       `toml:"android"`
	AndroidCleaner           *bool                      `toml:"android_cleaner"`
	Quarkus                  bool                       `toml:"quarkus"`
	CustomTypes              map[string]rawCustomConfig `toml:"custom_types"`
	ExternalPackages         map[string]string          `toml:"external_packages"`
}

type rawCustomConfig struct {
	Imports    []string `toml:"imports"`
	TypeName   string   `toml:"type_name"`
	Lift       string   `toml:"lift"`
	IntoCustom string   `toml:"into_custom"`
	Lower      string   `toml:"lower"`
	FromCustom string   `toml:"from_custom"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *gen.Config {
	return &gen.Config{
		CustomTypes:      map[string]gen.CustomTypeConfig{},
		ExternalPackages: map[string]string{},
	}
}

// LoadConfig reads a uniffi.toml config file. A missing file is not an
// error; defaults apply.
func LoadConfig(path string) (*gen.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses raw TOML config bytes. Custom type templates are
// validated here so a malformed template fails before generation starts.
func ParseConfig(data []byte) (*gen.Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	java := raw.Bindings.Java
	cfg := &gen.Config{
		PackageName:              java.PackageName,
		CdylibName:               java.CdylibName,
		GenerateImmutableRecords: java.GenerateImmutableRecords,
		Android:                  java.Android,
		AndroidCleaner:           java.AndroidCleaner,
		Quarkus:                  java.Quarkus,
		CustomTypes:              map[string]gen.CustomTypeConfig{},
		ExternalPackages:         map[string]string{},
	}
	for name, rc := range java.CustomTypes {
		ctc := gen.CustomTypeConfig{
			Imports:  rc.Imports,
			TypeName: rc.TypeName,
		}
		lift := firstNonEmpty(rc.Lift, rc.IntoCustom)
		if lift != "" {
			tmpl, err := gen.ParseExprTemplate(lift)
			if err != nil {
				return nil, fmt.Errorf("custom type %q lift: %w", name, err)
			}
			ctc.Lift = tmpl
		}
		lower := firstNonEmpty(rc.Lower, rc.FromCustom)
		if lower != "" {
			tmpl, err := gen.ParseExprTemplate(lower)
			if err != nil {
				return nil, fmt.Errorf("custom type %q lower: %w", name, err)
			}
			ctc.Lower = tmpl
		}
		cfg.CustomTypes[name] = ctc
	}
	for crate, pkg := range java.ExternalPackages {
		cfg.ExternalPackages[crate] = pkg
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
