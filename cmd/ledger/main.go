package main

import (
	"os"

	"github.com/SscSPs/property_ledger/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
