package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <in.pdf>...",
		Short: "Print document metadata",
		Long: `Info prints a metadata report for each input: version, page count,
encryption state, and the document information dictionary. PDF date strings
are reformatted as RFC 3339 when they parse, and printed verbatim otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := a.processor()
			for i, path := range args {
				if i > 0 {
					fmt.Fprintln(a.Stdout)
				}
				info, err := proc.Stat(cmd.Context(), path)
				if err != nil {
					return err
				}
				info.Render(a.Stdout)
			}
			return nil
		},
	}
}
