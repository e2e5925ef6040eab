// Package commands holds the codelens CLI subcommands
package commands

import "github.com/urfave/cli/v2"

// All returns every subcommand in display order
func All() []*cli.Command {
	return []*cli.Command{
		TUICommand(),
		ServeCommand(),
		ReviewCommand(),
		LanguagesCommand(),
		InitCommand(),
	}
}

// OwnsTerminal reports whether the named command writes to the terminal
// itself, in which case console logging is redirected to a file. Only the
// server keeps logging to the console.
func OwnsTerminal(name string) bool {
	return name != "serve"
}
