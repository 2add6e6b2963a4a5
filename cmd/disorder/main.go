// Package main scores a hand-built alignment of a multi-annotator
// continuum and reports its disorder.
//
//	disorder -config metric.json -input alignment.json [-o report.json] [-v]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/disorder/internal/alignment"
	"github.com/banshee-data/disorder/internal/config"
	"github.com/banshee-data/disorder/internal/fsutil"
	"github.com/banshee-data/disorder/internal/monitoring"
	"github.com/banshee-data/disorder/internal/version"
)

// Config holds the command-line options.
type Config struct {
	ConfigPath  string
	InputPath   string
	OutputPath  string
	Verbose     bool
	ShowVersion bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	if cfg.ShowVersion {
		fmt.Println("disorder", version.String())
		return
	}
	if !cfg.Verbose {
		monitoring.SetLogger(nil)
	}

	if err := run(cfg, fsutil.OSFileSystem{}, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("disorder: %v", err)
	}
}

func parseFlags(args []string, errOut io.Writer) (Config, error) {
	cfg := Config{}

	fs := flag.NewFlagSet("disorder", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&cfg.ConfigPath, "config", config.DefaultConfigPath, "Metric config file (.json, .yaml or .yml)")
	fs.StringVar(&cfg.InputPath, "input", "", "Alignment JSON file, or - for stdin")
	fs.StringVar(&cfg.OutputPath, "o", "", "Write the report to this file instead of stdout")
	fs.BoolVar(&cfg.Verbose, "v", false, "Enable verbose logging")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.InputPath == "" && !cfg.ShowVersion {
		return cfg, fmt.Errorf("-input is required")
	}
	return cfg, nil
}

// run loads the metric and the alignment through fsys, scores it and writes
// the report to cfg.OutputPath, or to stdout when no path is given.
func run(cfg Config, fsys fsutil.FileSystem, stdin io.Reader, stdout io.Writer) error {
	defer monitoring.Timed("disorder run")()

	metricCfg, err := config.LoadMetricConfigFS(fsys, cfg.ConfigPath)
	if err != nil {
		return err
	}
	metric, err := metricCfg.Build()
	if err != nil {
		return err
	}

	in, err := openInput(fsys, cfg.InputPath, stdin)
	if err != nil {
		return err
	}
	c, err := in.buildContinuum()
	if err != nil {
		return err
	}
	groups, err := in.buildGroups(c)
	if err != nil {
		return err
	}
	monitoring.Logf("loaded %d units from %d annotators in %d unitary alignments", c.NumUnits(), c.NumAnnotators(), len(groups))

	a, err := alignment.New(c, groups)
	if err != nil {
		return err
	}
	disorder, err := a.ComputeDisorder(metric)
	if err != nil {
		return err
	}
	perGroup, err := a.GroupDisorders()
	if err != nil {
		return err
	}
	monitoring.Logf("%s disorder %.6f", metric.Name(), disorder)

	report := newReport(metric.Name(), c.NumAnnotators(), c.NumUnits(), disorder, perGroup)
	if cfg.OutputPath == "" {
		return report.write(stdout)
	}

	f, err := fsys.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := report.write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	monitoring.Logf("report %s written to %s", report.RunID, cfg.OutputPath)
	return nil
}

func openInput(fsys fsutil.FileSystem, path string, stdin io.Reader) (*Input, error) {
	if path == "-" {
		return readInput(stdin)
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return readInput(f)
}
