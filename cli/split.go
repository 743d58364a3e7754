package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

const defaultSplitPattern = "{name}_part{page}.{ext}"

func (a *App) newSplitCmd() *cobra.Command {
	var (
		dir     string
		pattern string
	)
	cmd := &cobra.Command{
		Use:   "split <in.pdf> <n>",
		Short: "Split a PDF into files of n pages each",
		Long: `Split writes the input's pages into successive files of n pages each;
the last file may be shorter. Output names come from --pattern, which knows
{name}, {page} and {ext}.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			span, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("split: page count must be an integer, got %q", args[1])
			}
			outputs, err := a.processor().Split(cmd.Context(), in, dir, span, pattern)
			if err != nil {
				return err
			}
			for _, out := range outputs {
				fmt.Fprintf(a.Stdout, "Wrote %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default: the input's directory)")
	cmd.Flags().StringVar(&pattern, "pattern", defaultSplitPattern, "output filename template")
	return cmd
}
