// triplet is a terminal match-3 game with a text mode and an agent harness.
package main

import (
	"fmt"
	"os"

	"triplet/cli"
	"triplet/config"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCommandError)
	}

	root := cli.NewRootCommand(cfg)
	root.Version = Version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
