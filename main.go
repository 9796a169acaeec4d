package main

import (
	"os"

	"github.com/bitrise-io/codeguardian/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
