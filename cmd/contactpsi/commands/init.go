package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"contactpsi/internal/app"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate identity keys and store them securely",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			w, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			_, fp, err := w.Identity.GenerateIdentity(passphrase)
			if err != nil {
				return err
			}
			if _, err := os.Stat(filepath.Join(home, app.ConfigFileName)); errors.Is(err, os.ErrNotExist) {
				if err := app.SaveConfig(cfg); err != nil {
					return err
				}
			}
			fmt.Printf("Identity created.\nFingerprint: %s\n", fp)
			return nil
		},
	}
}
