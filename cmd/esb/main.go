package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mgenware/esb"
)

func main() {
	cliArgs := esb.ParseCLIArgs()

	level := slog.LevelInfo
	if cliArgs.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	env := esb.OSEnviron()
	if cliArgs.Profile != "" {
		env = esb.ChainEnviron(esb.MapEnviron{esb.ProfileVar: cliArgs.Profile}, env)
	}

	cfg, err := esb.LoadConfig(cliArgs.WorkspaceDir, env)
	if err != nil {
		fatal(err)
	}

	outputs, err := esb.NewPipeline(cfg).Run()
	if err != nil {
		fatal(err)
	}

	var out io.Writer = os.Stdout
	if cliArgs.MetaOut != "" {
		f, err := os.Create(cliArgs.MetaOut)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		out = f
	}
	if err := outputs.WriteMetadata(out); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "esb: %v\n", err)
	os.Exit(1)
}
