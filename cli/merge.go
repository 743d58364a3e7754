package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <out.pdf> <in.pdf> <in.pdf>...",
		Short: "Concatenate PDFs into one file",
		Long: `Merge concatenates the input documents, in argument order, into out.pdf.
The merged page count equals the sum of the inputs' page counts.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, inputs := args[0], args[1:]
			if err := a.processor().Merge(cmd.Context(), out, inputs); err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "Merged %d files into %s\n", len(inputs), out)
			return nil
		},
	}
}
