// Command declgen bridges static Go interfaces into runtime declarations: it
// loads a Go module, collects its interface types, and emits a Go source file
// declaring the equivalent iface contracts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ducktype/ducktype/internal/config"
	"github.com/ducktype/ducktype/internal/declgen"
	"github.com/ducktype/ducktype/internal/logging"
)

func main() {
	// Use a custom FlagSet so we can parse all args regardless of position.
	// Go's default flag.Parse stops at the first non-flag argument, which
	// breaks "declgen ./path -output decls.go". We reorder args so flags
	// come first, then positional args.
	flags, positional := reorderArgs(os.Args[1:])

	fs := flag.NewFlagSet("declgen", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file (flags override it)")
	pathFlag := fs.String("path", "", "module path to scan (alternative to positional argument)")
	filter := fs.String("filter", "", "package path prefix filter")
	includeUnexported := fs.Bool("include-unexported", false, "include unexported interfaces")
	output := fs.String("output", "", "write generated declarations to file instead of stdout")
	pkgName := fs.String("pkg", "contracts", "package name for the generated file")
	logFile := fs.String("log-file", "", "log file path (default: stderr only)")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")

	if err := fs.Parse(flags); err != nil {
		os.Exit(1)
	}
	positional = append(positional, fs.Args()...)

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyFlags(cfg, fs, *pathFlag, *filter, *includeUnexported, *output, *pkgName, *logFile, *logLevel)

	// Positional argument takes precedence over -path and config.
	if len(positional) > 0 {
		cfg.Path = positional[0]
	}
	if cfg.Path == "" {
		fmt.Fprintln(os.Stderr, "Usage: declgen [flags] <module-path>")
		fs.PrintDefaults()
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", cfg.LogLevel, err)
		os.Exit(1)
	}
	logger, logCleanup, err := logging.Setup(cfg.LogFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	opts := declgen.Options{
		Filter:            cfg.Filter,
		IncludeUnexported: cfg.IncludeUnexported,
	}
	defs, err := declgen.Load(ctx, cfg.Path, opts, logger)
	if err != nil {
		logger.Error("load failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error loading packages: %v\n", err)
		os.Exit(1)
	}
	if len(defs) == 0 {
		fmt.Println("No interfaces found — nothing to generate.")
		os.Exit(0)
	}

	src, err := declgen.Generate(defs, cfg.Package)
	if err != nil {
		logger.Error("generation failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error generating declarations: %v\n", err)
		os.Exit(1)
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, src, 0o644); err != nil {
			logger.Error("failed to write output file", "error", err)
			fmt.Fprintf(os.Stderr, "Error writing to %s: %v\n", cfg.Output, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d declarations to %s\n", len(defs), cfg.Output)
	} else {
		os.Stdout.Write(src)
	}
}

// applyFlags copies flag values over the config, but only for flags the user
// actually set, so the config file keeps its say for the rest.
func applyFlags(cfg *config.Config, fs *flag.FlagSet, path, filter string, includeUnexported bool, output, pkgName, logFile, logLevel string) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["path"] {
		cfg.Path = path
	}
	if set["filter"] {
		cfg.Filter = filter
	}
	if set["include-unexported"] {
		cfg.IncludeUnexported = includeUnexported
	}
	if set["output"] {
		cfg.Output = output
	}
	if set["pkg"] || cfg.Package == "" {
		cfg.Package = pkgName
	}
	if set["log-file"] {
		cfg.LogFile = logFile
	}
	if set["log-level"] || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position (before or after the positional path argument).
// Flags that take a value (e.g., -output decls.go) consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	valueFlagSet := map[string]bool{
		"-config": true, "-path": true, "-filter": true,
		"-output": true, "-pkg": true, "-log-file": true, "-log-level": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if !strings.Contains(arg, "=") && valueFlagSet[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}
