package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvniekerk/uniffi-bindgen-java/gen"
	"github.com/mvniekerk/uniffi-bindgen-java/loader"
	"github.com/mvniekerk/uniffi-bindgen-java/validate"
)

var (
	genConfig string
	genOutDir string
)

var generateCmd = &cobra.Command{
	Use:   "generate [interface.yaml]",
	Short: "Generate Java bindings from a component interface definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genConfig, "config", "c", "", "Path to uniffi.toml config (default: uniffi.toml next to the interface file)")
	generateCmd.Flags().StringVarP(&genOutDir, "out-dir", "o", ".", "Output directory")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	defPath := args[0]

	if !quiet {
		fmt.Printf("Generating from %s\n", defPath)
	}

	ci, err := loader.LoadComponentInterface(defPath)
	if err != nil {
		return fmt.Errorf("loading interface definition: %w", err)
	}

	result := validate.Validate(ci)
	if !result.IsValid() {
		return fmt.Errorf("validation failed:\n%s", result.Error())
	}

	configPath := genConfig
	if configPath == "" {
		configPath = filepath.Join(filepath.Dir(defPath), "uniffi.toml")
	}
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	source, err := gen.Generate(cfg, ci)
	if err != nil {
		return fmt.Errorf("generating bindings: %w", err)
	}

	// One file per module, named after the namespace, inside the package
	// directory hierarchy.
	pkgDir := filepath.Join(genOutDir, packagePath(cfg.EffectivePackageName()))
	outPath := filepath.Join(pkgDir, gen.ToUpperCamelCase(ci.Namespace)+".java")
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(source), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	if !quiet {
		fmt.Printf("Wrote %s\n", outPath)
	}
	return nil
}

// packagePath converts a Java package name to its directory path.
func packagePath(pkg string) string {
	return filepath.Join(strings.Split(pkg, ".")...)
}
