package main

import (
	"os"

	"github.com/glp360/riskscore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
