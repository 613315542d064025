package commands

import (
	"github.com/spf13/cobra"

	"contactpsi/internal/domain"
)

// reveal <session> [--contacts FILE]: fetch the initiator's matches.
func revealCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "reveal <session>",
		Short: "Retrieve your matches as the session initiator",
		Long: "Retrieve your matches as the session initiator. Pass the same contacts " +
			"file you submitted to print contacts instead of hashes. Before the " +
			"responder has matched, the result is empty.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sid := domain.SessionID(args[0])
			var labels []string
			if file != "" {
				var err error
				if _, labels, err = readContacts(file); err != nil {
					return err
				}
			}
			w, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			client, err := w.Party(cmd.Context(), passphrase)
			if err != nil {
				return err
			}
			proof, err := client.SealRevealProof(sid)
			if err != nil {
				return err
			}
			sealed, err := w.Sessions.RevealInitiator(cmd.Context(), sid, proof)
			if err != nil {
				return err
			}
			view, err := client.OpenResult(sid, domain.OpRevealInitiator, sealed)
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), view, labels)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "contacts", "", "contacts file you submitted (optional)")
	return cmd
}
