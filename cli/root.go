// Package cli implements the pdfdeck command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wudi/pdfdeck/document"
	"github.com/wudi/pdfdeck/observability"
)

// App wires the command tree to its environment. Tests substitute writers
// and a password source; Execute uses the process defaults.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	// Passwords overrides password acquisition. When nil the tree uses
	// --password if given, or prompts on the terminal.
	Passwords document.PasswordSource

	verbose  bool
	quiet    bool
	password string

	metrics *observability.Collector
}

// Execute runs the root command against os.Args and exits non-zero on error.
func Execute() {
	a := &App{Stdout: os.Stdout, Stderr: os.Stderr}
	cmd := a.Command()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(a.Stderr, "Error:", err)
		os.Exit(1)
	}
	if a.metrics != nil {
		a.metrics.Report(a.Stderr)
	}
}

// Command builds the root command with all verbs attached.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "pdfdeck",
		Short: "pdfdeck manipulates PDF documents",
		Long: `pdfdeck is a command-line PDF toolkit. It merges, inspects, rotates,
splits, encrypts and OCRs documents, delegating all PDF mechanics to pdfcpu.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Malformed arguments fail before this hook and print usage;
			// operation failures after it should not.
			cmd.Root().SilenceUsage = true
			if a.verbose && a.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log operation detail and timings to stderr")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress all diagnostics")
	root.PersistentFlags().StringVar(&a.password, "password", "", "password for encrypted inputs (skips prompting)")

	root.AddCommand(
		a.newMergeCmd(),
		a.newInfoCmd(),
		a.newRotateCmd(),
		a.newSplitCmd(),
		a.newEncryptCmd(),
		a.newDecryptCmd(),
		a.newOptimizeCmd(),
		a.newOCRCmd(),
	)
	return root
}

func (a *App) logger() observability.Logger {
	switch {
	case a.quiet:
		return observability.NopLogger{}
	case a.verbose:
		return observability.NewWriterLogger(a.Stderr, observability.LevelDebug)
	}
	return observability.NewWriterLogger(a.Stderr, observability.LevelWarn)
}

func (a *App) passwordSource() document.PasswordSource {
	if a.Passwords != nil {
		return a.Passwords
	}
	if a.password != "" {
		return document.FixedPassword(a.password)
	}
	return promptSource{in: os.Stdin, out: a.Stderr}
}

func (a *App) processor() *document.Processor {
	opts := []document.Option{
		document.WithLogger(a.logger()),
		document.WithPasswordSource(a.passwordSource()),
	}
	if a.verbose {
		if a.metrics == nil {
			a.metrics = observability.NewCollector()
		}
		opts = append(opts, document.WithMetrics(a.metrics))
	}
	return document.NewProcessor(opts...)
}
