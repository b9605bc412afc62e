package main

import (
	"os"

	"github.com/ama-bakery/pos/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
