package main

import (
	"os"

	"github.com/sithvalentine/wealth-builder-mvp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
