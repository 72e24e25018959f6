package main

import (
	"errors"
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/sanjeeviv/shark/cmd/cli"
)

func main() {
	if err := cli.GetCommandOptions().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}
