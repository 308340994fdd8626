package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvniekerk/uniffi-bindgen-java/loader"
)

var dumpSchemaCmd = &cobra.Command{
	Use:   "dump-schema",
	Short: "Print the interface definition JSON Schema",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(loader.SchemaJSON())
	},
}

func init() {
	rootCmd.AddCommand(dumpSchemaCmd)
}
