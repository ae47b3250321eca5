package main

import (
	"os"

	"github.com/dannbuckley/go-aspparse/cmd/aspparse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
