package main

import (
	"os"

	"github.com/runnerr0/newsreports/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	err := cli.Run(version)
	os.Exit(cli.ExitCode(os.Stderr, err))
}
