package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"contactpsi/internal/crypto"
	"contactpsi/internal/domain"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <session>",
		Short: "Show the public status of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			meta, err := w.Sessions.Status(cmd.Context(), domain.SessionID(args[0]))
			if err != nil {
				return err
			}
			fmt.Printf("Session:   %s\n", meta.ID)
			fmt.Printf("Status:    %s\n", meta.Status)
			fmt.Printf("Initiator: %s\n", crypto.Fingerprint(meta.Initiator.Slice()))
			if !meta.Responder.IsZero() {
				fmt.Printf("Responder: %s\n", crypto.Fingerprint(meta.Responder.Slice()))
			}
			fmt.Printf("Created:   %s\n", meta.CreatedAt.Format(time.RFC3339))
			fmt.Printf("Updated:   %s\n", meta.UpdatedAt.Format(time.RFC3339))
			return nil
		},
	}
}
