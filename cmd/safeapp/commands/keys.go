package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"safeapp/internal/crypto"
)

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate a throwaway app identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := crypto.RandomAppKeys()
			if err != nil {
				return err
			}
			defer crypto.WipeAppKeys(&keys)

			fmt.Printf("Identity:    %s\n", crypto.IdentityID(keys.SignPk))
			fmt.Printf("Fingerprint: %s\n", crypto.Fingerprint(keys.EncPk[:]))
			return nil
		},
	}
	return cmd
}
