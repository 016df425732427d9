package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"safeapp/internal/domain"
)

var appID string

var errNoPassphrase = errors.New("passphrase required (-p)")

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage grants issued by an authenticator",
	}
	cmd.AddCommand(authImportCmd(), authShowCmd())
	return cmd
}

func authImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <ipc-msg>",
		Short: "Store the grant or bootstrap config from an authenticator response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Grants are sealed under the passphrase; only they need one.
			if appID != "" && passphrase == "" {
				return errNoPassphrase
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := appCtx.Import(ctx, passphrase, appID, args[0])
			if err != nil {
				return err
			}
			switch {
			case res.Kind == domain.IpcMsgRevoked:
				fmt.Printf("Access revoked for %s; grant removed\n", res.AppID)
			case res.RespKind == domain.IpcRespAuth:
				fmt.Printf("Stored grant for %s (%d contacts)\n", res.AppID, res.Contacts)
			case res.RespKind == domain.IpcRespUnregistered:
				fmt.Printf("Stored bootstrap config (%d contacts)\n", res.Contacts)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&appID, "app-id", "", "id of the app the grant was issued to")
	return cmd
}

func authShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Summarise a stored grant, or list stored apps without --app-id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if appID == "" {
				apps, err := appCtx.Apps()
				if err != nil {
					return err
				}
				for _, id := range apps {
					fmt.Println(id)
				}
				return nil
			}
			if passphrase == "" {
				return errNoPassphrase
			}
			sum, err := appCtx.Summary(passphrase, appID)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		},
	}
	cmd.Flags().StringVar(&appID, "app-id", "", "app whose grant to show")
	return cmd
}
