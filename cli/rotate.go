package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wudi/pdfdeck/document"
)

func (a *App) newRotateCmd() *cobra.Command {
	var (
		degrees int
		out     string
	)
	cmd := &cobra.Command{
		Use:   "rotate <in.pdf> [page]",
		Short: "Rotate pages",
		Long: `Rotate turns every page, or only the given 1-based page, by --degrees.
The result is written next to the input as <name>_rotated.pdf unless -o is
given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			page := 0
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 1 {
					return fmt.Errorf("rotate: page must be a positive integer, got %q", args[1])
				}
				page = n
			}
			if out == "" {
				out = document.WithSuffix(in, "rotated")
			}
			if err := a.processor().Rotate(cmd.Context(), in, out, degrees, page); err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().IntVar(&degrees, "degrees", 90, "rotation in degrees, a multiple of 90")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <name>_rotated.pdf)")
	return cmd
}
