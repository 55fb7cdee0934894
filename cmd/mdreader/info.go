package main

import (
	"encoding/json"
	"flag"
	"fmt"
)

func init() {
	flagSet := flag.NewFlagSet("info", flag.ContinueOnError)

	handler := func(args []string) error {
		conf, err := configFromFlags()
		if err != nil {
			return err
		}

		confJSON, err := json.MarshalIndent(conf, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(confJSON))
		return nil
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "print the effective configuration",
		LongDescription:  "The info subcommand prints the configuration after defaults are applied, as JSON.",
		handler:          handler,
	})
}
