// covenantc checks contract set files before they ship: every signature
// must parse and build into a structurally valid contract.
package main

import (
	"flag"
	"fmt"
	"os"
)

// Command represents a sub-command of covenantc
type Command struct {
	Name        string
	Description string
	FlagSet     *flag.FlagSet
	Run         func() error
}

var commands = make(map[string]*Command)

func main() {
	defineCommands()

	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		usage()
		os.Exit(1)
	}

	cmd.FlagSet.Parse(args[1:])

	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: covenantc <command> [options]")
	fmt.Fprintln(os.Stderr, "Available commands:")
	for name, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %s\t%s\n", name, cmd.Description)
	}
}

func defineCommands() {
	for _, cmd := range []*Command{newCheckCommand(), newRenderCommand()} {
		commands[cmd.Name] = cmd
	}
}
