package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wudi/pdfdeck/document"
)

func (a *App) newOptimizeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "optimize <in.pdf>",
		Short: "Resave a PDF through pdfcpu's optimizer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			if out == "" {
				out = document.WithSuffix(in, "optimized")
			}
			if err := a.processor().Optimize(cmd.Context(), in, out); err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <name>_optimized.pdf)")
	return cmd
}
