package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mahmoudimus/mdreader"
	"github.com/mahmoudimus/mdreader/markdown"
)

// stylesheetName is the file in the output directory holding the CSS for highlighted code.
const stylesheetName = "chroma.css"

func init() {
	flagSet := flag.NewFlagSet("build", flag.ContinueOnError)
	var (
		outDir  = flagSet.String("out", "", "path to output `dir` where .html and .json files are written (default from config)")
		workers = flagSet.Int("workers", 0, "number of documents read in parallel (default from config)")
	)

	handler := func(args []string) error {
		if len(args) != 0 {
			return &usageError{errors.New("unexpected arguments")}
		}
		conf, err := configFromFlags()
		if err != nil {
			return err
		}
		if *outDir != "" {
			conf.Output = *outDir
		}
		if *workers != 0 {
			conf.Workers = *workers
			if err := conf.Validate(); err != nil {
				return &usageError{err}
			}
		}

		report, err := build(context.Background(), conf, slog.Default())
		if err != nil {
			return err
		}
		log.Printf("# Wrote %d documents to %s", report.Read, conf.Output)
		if len(report.Failed) > 0 {
			for _, path := range report.FailedPaths() {
				log.Printf("# Failed: %s: %s", path, report.Failed[path])
			}
			return &exitCodeError{error: fmt.Errorf("%d documents failed", len(report.Failed)), exitCode: 1}
		}
		return nil
	}

	commands = append(commands, &command{
		FlagSet:          flagSet,
		ShortDescription: "read all documents and write .html and .json files",
		LongDescription:  "The build subcommand reads every document in the content directory and writes its rendered HTML and its metadata to the output directory.",
		aliases:          []string{"gen", "generate"},
		handler:          handler,
	})
}

// build replaces conf.Output with the rendered documents of conf.Content.
func build(ctx context.Context, conf *mdreader.Config, log *slog.Logger) (*mdreader.Report, error) {
	if err := os.RemoveAll(conf.Output); err != nil && !os.IsNotExist(err) {
		return nil, errors.WithMessage(err, "removing old output dir")
	}
	if err := os.MkdirAll(conf.Output, 0700); err != nil {
		return nil, err
	}

	gen := mdreader.Generator{
		Sources: http.Dir(conf.Content),
		Config:  conf,
		Log:     log,
	}
	report, err := gen.Generate(ctx, func(doc *mdreader.Document) error {
		if err := writeOutputFile(conf.Output, doc.OutputPath(".html"), doc.HTML); err != nil {
			return err
		}
		meta, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		return writeOutputFile(conf.Output, doc.OutputPath(".json"), meta)
	})
	if err != nil {
		return report, err
	}

	f, err := os.Create(filepath.Join(conf.Output, stylesheetName))
	if err != nil {
		return report, err
	}
	defer f.Close()
	if err := markdown.NewHighlighter(conf.Highlight.Style, conf.Highlight.Aliases).WriteCSS(f); err != nil {
		return report, errors.WithMessage(err, "writing stylesheet")
	}
	return report, f.Close()
}

func writeOutputFile(outDir, path string, data []byte) error {
	outPath := filepath.Join(outDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(outPath), 0700); err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0600)
}
