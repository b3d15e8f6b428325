package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	group := flag.Bool("group", false, "group output by pending/completed")
	configPath := flag.String("config", "", "extra TOML config file")
	theme := flag.String("theme", "", "color theme: classic, neon or mono")
	dataFile := flag.String("file", "", "task file (.json, .yaml or .toml)")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:      *group,
		ConfigPath: *configPath,
		Theme:      *theme,
		DataFile:   *dataFile,
		LogOutput:  os.Stderr,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
