package main

import (
	"context"
	"os"

	"github.com/m0n0x41d/quint-audit/cmd/quint/commands"
)

func main() {
	root := commands.NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
