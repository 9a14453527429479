package main

import (
	"fmt"
	"io"
)

type command struct {
	name  string
	short string
	exec  func(args []string, out, errOut io.Writer, env []string) int
}

func commands() []command {
	return []command{
		{name: "create", short: "create a new whisper file", exec: cmdCreate},
		{name: "info", short: "print a whisper file's header and archive table", exec: cmdInfo},
		{name: "dump", short: "print every stored point in a whisper file's archive", exec: cmdDump},
	}
}

func run(args []string, out, errOut io.Writer, env []string) int {
	if len(args) < 2 {
		printUsage(errOut)
		return 2
	}

	name := args[1]
	if name == "-h" || name == "--help" {
		printUsage(out)
		return 0
	}

	for _, c := range commands() {
		if c.name == name {
			return c.exec(args[2:], out, errOut, env)
		}
	}

	fmt.Fprintf(errOut, "wsp: unknown command %q\n\n", name)
	printUsage(errOut)
	return 2
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wsp <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.short)
	}
}

func fatalf(errOut io.Writer, format string, args ...any) int {
	fmt.Fprintf(errOut, format+"\n", args...)
	return 1
}
