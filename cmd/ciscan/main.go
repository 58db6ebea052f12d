package main

import (
	"fmt"
	"os"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/cli"
)

func main() {
	root := cli.NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
