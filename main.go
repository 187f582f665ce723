package main

import (
	"os"

	"github.com/RJBOGA/JAP/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
