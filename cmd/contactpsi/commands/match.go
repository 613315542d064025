package commands

import (
	"github.com/spf13/cobra"

	"contactpsi/internal/domain"
)

// match <session> --contacts FILE: submit the responder's list and match.
func matchCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "match <session>",
		Short: "Submit your contacts as the responder and compute the match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sid := domain.SessionID(args[0])
			hashes, labels, err := readContacts(file)
			if err != nil {
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
			in, err := client.EncodeAndSeal(sid, domain.OpSubmitAndMatch, hashes)
			if err != nil {
				return err
			}
			sealed, err := w.Sessions.SubmitResponderAndMatch(cmd.Context(), sid, in)
			if err != nil {
				return err
			}
			view, err := client.OpenResult(sid, domain.OpSubmitAndMatch, sealed)
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), view, labels)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "contacts", "", "contacts file, one per line")
	_ = cmd.MarkFlagRequired("contacts")
	return cmd
}
