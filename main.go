package main

import (
	"os"

	"github.com/samuelfneumann/gprl/cmd"
)

func main() {
	if err := cmd.GetRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
