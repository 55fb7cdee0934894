package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/mahmoudimus/mdreader"
)

var usage = template.Must(template.New("").Parse(`mdreader reads Markdown documents with line or TOML front matter and renders them to HTML.

Usage:

  mdreader [options] command [command options]

The options are:

{{call .FlagUsage }}
The commands are:
{{range .Commands}}
  {{printf "%- 15s" .NameAndAliases}} {{.ShortDescription}}
{{- end}}

Use "mdreader [command] -h" for more information about a command.

`))

var (
	configPath = flag.String("config", "", "search `paths` (separated by the OS path list separator) for the config file (default $MDREADER_CONFIG or mdreader.yaml)")
	verbose    = flag.Bool("v", false, "log debug messages")
)

// commands contains all registered subcommands.
var commands commander

func main() {
	log.SetFlags(0)
	log.SetPrefix("")

	// A missing .env file is fine.
	_ = godotenv.Load()

	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	os.Exit(commands.run(flag.CommandLine, "mdreader", usage, os.Args[1:]))
}

func configSearchPath() string {
	if *configPath != "" {
		return *configPath
	}
	if v := os.Getenv("MDREADER_CONFIG"); v != "" {
		return v
	}
	return "mdreader.yaml"
}

// configFromFlags reads the first config file found on the -config search paths. Without one, the
// defaults apply relative to the working directory.
func configFromFlags() (*mdreader.Config, error) {
	search := configSearchPath()
	for _, path := range filepath.SplitList(search) {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, errors.WithMessage(err, "reading mdreader config file (from -config flag)")
		}
		conf, err := mdreader.ParseConfig(data, filepath.Dir(path))
		return conf, errors.WithMessagef(err, "config file %s", path)
	}
	slog.Debug("No config file found, using defaults", "search", search)
	return mdreader.ParseConfig(nil, ".")
}
