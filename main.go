package main

import (
	"os"

	"github.com/theapemachine/mem0-mcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
