package main

import (
	"os"

	"github.com/qbank-ai/qbank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
