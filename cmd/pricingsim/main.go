package main

import (
	"os"

	"github.com/rustyeddy/pricingsim/cmd/pricingsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
