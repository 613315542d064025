package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"contactpsi/internal/domain"
)

// submit <session> --contacts FILE: submit the initiator's list.
func submitCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "submit <session>",
		Short: "Submit your contacts as the session initiator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sid := domain.SessionID(args[0])
			hashes, _, err := readContacts(file)
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
			in, err := client.EncodeAndSeal(sid, domain.OpSubmitInitiator, hashes)
			if err != nil {
				return err
			}
			sealed, err := w.Sessions.SubmitInitiator(cmd.Context(), sid, in)
			if err != nil {
				return err
			}
			conf, err := client.OpenConfirmation(sid, sealed)
			if err != nil {
				return err
			}
			if conf.Accepted == 1 {
				fmt.Printf("Submitted %d contacts.\n", len(hashes))
			} else {
				fmt.Println("Already submitted; the earlier list was kept.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "contacts", "", "contacts file, one per line")
	_ = cmd.MarkFlagRequired("contacts")
	return cmd
}
