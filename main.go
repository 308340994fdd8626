package main

import (
	"os"

	"github.com/mvniekerk/uniffi-bindgen-java/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
