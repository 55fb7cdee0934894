package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"text/template"
)

// command is a subcommand handler and its flag set.
type command struct {
	// FlagSet is the flag set for the command.
	FlagSet *flag.FlagSet

	// ShortDescription is shown in the top-level help message.
	ShortDescription string

	// LongDescription is shown in the command's help message.
	LongDescription string

	aliases []string

	// handler is invoked with the arguments left after the command's flags are parsed.
	handler func(args []string) error
}

func (c *command) NameAndAliases() string {
	return strings.Join(append([]string{c.FlagSet.Name()}, c.aliases...), ",")
}

func (c *command) matches(name string) bool {
	if name == c.FlagSet.Name() {
		return true
	}
	for _, alias := range c.aliases {
		if name == alias {
			return true
		}
	}
	return false
}

func (c *command) usage(w io.Writer, cmdName string) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s [options] %s", cmdName, c.FlagSet.Name())
	if hasFlags(c.FlagSet) {
		fmt.Fprint(w, " [command options]")
	}
	fmt.Fprintln(w)
	if c.LongDescription != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, c.LongDescription)
		fmt.Fprintln(w)
	}
	if hasFlags(c.FlagSet) {
		fmt.Fprintln(w, "The command options are:")
		fmt.Fprintln(w)
		c.FlagSet.SetOutput(w)
		c.FlagSet.PrintDefaults()
	}
}

// commander is a top-level command with subcommands.
type commander []*command

// run parses args, runs the matching subcommand and returns the process exit code.
func (c commander) run(flagSet *flag.FlagSet, cmdName string, usage *template.Template, args []string) int {
	out := flagSet.Output()
	flagSet.Usage = func() {
		data := struct {
			FlagUsage func() string
			Commands  []*command
		}{
			FlagUsage: func() string { flagSet.PrintDefaults(); return "" },
			Commands:  c,
		}
		if err := usage.Execute(out, data); err != nil {
			log.Println(err)
		}
	}
	if !flagSet.Parsed() {
		if err := flagSet.Parse(args); err == flag.ErrHelp {
			return 0
		} else if err != nil {
			return 2
		}
	}

	if flagSet.Arg(0) == "help" || flagSet.NArg() == 0 {
		flagSet.Usage()
		return 0
	}

	name := flagSet.Arg(0)
	for _, cmd := range c {
		if !cmd.matches(name) {
			continue
		}
		cmd := cmd
		cmd.FlagSet.Usage = func() { cmd.usage(out, cmdName) }

		if err := cmd.FlagSet.Parse(flagSet.Args()[1:]); err == flag.ErrHelp {
			return 0
		} else if err != nil {
			return 2
		}
		err := cmd.handler(cmd.FlagSet.Args())
		switch e := err.(type) {
		case nil:
			return 0
		case *usageError:
			log.Println(e)
			cmd.FlagSet.Usage()
			return 2
		case *exitCodeError:
			if e.error != nil {
				log.Println(e.error)
			}
			return e.exitCode
		default:
			log.Println(err)
			return 1
		}
	}
	log.Printf("%s: unknown subcommand %q", cmdName, name)
	log.Printf("Run '%s help' for usage.", cmdName)
	return 2
}

func hasFlags(flagSet *flag.FlagSet) bool {
	var ok bool
	flagSet.VisitAll(func(*flag.Flag) { ok = true })
	return ok
}

// usageError is returned by subcommands to print the command's usage and exit with code 2.
type usageError struct {
	error
}

// exitCodeError is returned by subcommands to exit with a specific code.
type exitCodeError struct {
	error
	exitCode int
}
