package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvniekerk/uniffi-bindgen-java/loader"
	"github.com/mvniekerk/uniffi-bindgen-java/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [interface.yaml]",
	Short: "Validate a component interface definition without generating",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ci, err := loader.LoadComponentInterface(args[0])
	if err != nil {
		return fmt.Errorf("loading interface definition: %w", err)
	}

	result := validate.Validate(ci)
	if !result.IsValid() {
		return fmt.Errorf("validation failed:\n%s", result.Error())
	}

	if !quiet {
		fmt.Printf("%s is valid\n", args[0])
	}
	return nil
}
