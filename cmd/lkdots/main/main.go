package main

import (
	"os"

	"github.com/arthur-debert/lkdots/cmd/lkdots"
	"github.com/arthur-debert/lkdots/pkg/output"
)

func main() {
	rootCmd := lkdots.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
