package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wudi/pdfdeck/document"
)

func (a *App) newEncryptCmd() *cobra.Command {
	var opw string
	cmd := &cobra.Command{
		Use:   "encrypt <in.pdf>...",
		Short: "Password-protect PDFs",
		Long: `Encrypt writes a password-protected copy of each input as
<name>_encrypted.pdf. The password is prompted for once (entered twice) and
applied to every input; --password skips the prompt. Inputs that are already
encrypted are reported and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := a.password
			if pw == "" {
				var err error
				pw, err = readNewPassword(os.Stdin, a.Stderr)
				if err != nil {
					return err
				}
			}
			proc := a.processor()
			for _, in := range args {
				encrypted, err := proc.Encrypted(cmd.Context(), in)
				if err != nil {
					return err
				}
				if encrypted {
					fmt.Fprintf(a.Stdout, "Skipping %s: already encrypted\n", in)
					continue
				}
				out := document.WithSuffix(in, "encrypted")
				if err := proc.Encrypt(cmd.Context(), in, out, pw, opw); err != nil {
					return err
				}
				fmt.Fprintf(a.Stdout, "Wrote %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opw, "opw", "", "owner password (default: same as the user password)")
	return cmd
}
