package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wudi/pdfdeck/document"
)

func (a *App) newDecryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <in.pdf>...",
		Short: "Remove password protection",
		Long: `Decrypt writes an unprotected copy of each input as
<name>_decrypted.pdf, prompting for the password unless --password is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := a.processor()
			for _, in := range args {
				out := document.WithSuffix(in, "decrypted")
				if err := proc.Decrypt(cmd.Context(), in, out); err != nil {
					return err
				}
				fmt.Fprintf(a.Stdout, "Wrote %s\n", out)
			}
			return nil
		},
	}
}
