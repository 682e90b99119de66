package main

import (
	"os"

	"github.com/sanandmv7/minitq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
