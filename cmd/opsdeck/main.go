package main

import (
	_ "embed"
	"fmt"
	"os"
)

var version = "dev"

//go:embed sample.yaml
var sampleConfig []byte

func main() {

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "opsdeck: %s\n", err)
		os.Exit(1)
	}
}
