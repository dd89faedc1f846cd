// Command smallie serves and renders the smallie demo app.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smallie-dev/smallie/internal/config"
	"github.com/smallie-dev/smallie/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	dir         string
	logLevel    string
	errorFormat string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and reports a failure on stderr in the
// requested error format. It returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if f, ok := stderr.(*os.File); !ok || !colorTerminal(f) {
			errors.DisableColors()
		}
		errors.FprintStyle(stderr, err, opts.errorFormat)
		return 1
	}
	return 0
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smallie",
		Short: "Fine-grained reactive DOM for Go",
		Long: `smallie binds signals directly to DOM nodes.

Signals, effects and computed values update exactly the attributes,
properties and text they are bound to. Keyed lists are reconciled with
a minimal number of moves. The live server mirrors a Go-side document
into the browser over a WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "Directory containing smallie.json")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.errorFormat, "error-format", errors.StyleText, "Error output format (text, compact, json)")

	rootCmd.AddCommand(
		initCmd(opts),
		serveCmd(opts),
		renderCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads smallie.json, tolerating a missing file, applies the
// log level override and validates the result.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(o.dir)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the log section.
func newLogger(cfg config.LogConfig, level slog.Level, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// colorTerminal reports whether f is a terminal and NO_COLOR is unset.
func colorTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
