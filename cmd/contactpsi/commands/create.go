package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Start a discovery session as the initiator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			w, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			client, err := w.Party(cmd.Context(), passphrase)
			if err != nil {
				return err
			}
			meta, err := w.Sessions.Create(cmd.Context(), client.Key())
			if err != nil {
				return err
			}
			fmt.Printf("Session: %s\nStatus: %s\n", meta.ID, meta.Status)
			return nil
		},
	}
}
