// dltview is a terminal viewer for AUTOSAR DLT trace files.
//
// Files given on the command line are memory-mapped and indexed in the
// background; gzip, zstd and lz4 compressed traces are inflated to a
// temporary file first.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/dltview/internal/app"
)

var version = "dev"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		opts        app.Options
		showVersion bool
	)

	flags := pflag.NewFlagSet("dltview", pflag.ContinueOnError)
	flags.StringVarP(&opts.Filter, "filter", "f", "", `initial filter, e.g. "app:NAV level:warn from:2024-05-01T10:00:00Z"`)
	flags.StringVarP(&opts.Search, "search", "s", "", "initial search regex")
	flags.BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "start searches case-insensitive")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ~/.config/dltview/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/dltview/prefs.toml)")
	flags.StringVar(&opts.LogFile, "log-file", "", "write JSON logs to this file")
	flags.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9464")
	flags.IntVar(&opts.Workers, "workers", 0, "parallel workers for filter and search (default GOMAXPROCS)")
	flags.BoolVar(&opts.NoIndexCache, "no-index-cache", false, "always rescan files instead of using the index cache")
	flags.BoolVar(&showVersion, "version", false, "print version and exit")
	flags.Usage = func() { printUsage(flags) }

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "dltview: %v\n", err)
		printUsage(flags)
		return exitUsage
	}
	if showVersion {
		fmt.Println("dltview", version)
		return exitOK
	}
	if opts.Workers < 0 {
		fmt.Fprintln(os.Stderr, "dltview: --workers must not be negative")
		return exitUsage
	}
	opts.Files = flags.Args()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "dltview: %v\n", err)
		return exitError
	}
	return exitOK
}

func printUsage(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `dltview: browse, filter and search DLT trace files.

Usage:
  dltview [flags] FILE...

Flags:
%s`, flags.FlagUsages())
}
