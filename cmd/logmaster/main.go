package main

import (
	"os"

	"github.com/logmaster/dashboard/cmd/logmaster/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
