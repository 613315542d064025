package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"contactpsi/internal/contacts"
)

func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <contact>...",
		Short: "Print the normalised form and hash of each contact",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range args {
				fmt.Printf("%s  %s\n", contacts.HashContact(c), contacts.Normalize(c))
			}
			return nil
		},
	}
}
