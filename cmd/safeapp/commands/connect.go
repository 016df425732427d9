package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"safeapp/internal/domain"
)

var (
	hold          time.Duration
	bootstrapFile string
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Connect to the network with a stored grant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return errNoPassphrase
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			h, err := appCtx.Register(ctx, passphrase, appID, reportDisconnect)
			if err != nil {
				return err
			}
			return holdConnection(cmd.Context(), h)
		},
	}
	cmd.Flags().StringVar(&appID, "app-id", "", "app to connect as")
	cmd.Flags().DurationVar(&hold, "hold", 0, "stay connected this long, reporting disconnects")
	_ = cmd.MarkFlagRequired("app-id")
	return cmd
}

func unregisteredCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unregistered",
		Short: "Connect to the network without a grant",
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			if bootstrapFile != "" {
				b, err := os.ReadFile(bootstrapFile)
				if err != nil {
					return err
				}
				raw = b
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			h, err := appCtx.Unregistered(ctx, raw, reportDisconnect)
			if err != nil {
				return err
			}
			return holdConnection(cmd.Context(), h)
		},
	}
	cmd.Flags().StringVar(&bootstrapFile, "bootstrap", "", "bootstrap config file (default: cached config, then --contact)")
	cmd.Flags().DurationVar(&hold, "hold", 0, "stay connected this long, reporting disconnects")
	return cmd
}

func reportDisconnect() {
	log.Warn().Msg("disconnected from network, reconnecting")
}

// holdConnection prints h, keeps it alive for --hold or until interrupted,
// then frees it.
func holdConnection(parent context.Context, h domain.Handle) error {
	info, _ := appCtx.Info(h)
	fmt.Printf("Connected %s as %s via %s\n", h, info.IdentityID, info.Contact)

	if hold > 0 {
		ctx, stop := signal.NotifyContext(parent, os.Interrupt)
		defer stop()
		t := time.NewTimer(hold)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
		}
		info, _ = appCtx.Info(h)
		fmt.Printf("Disconnects while held: %d\n", info.Disconnects)
	}
	return appCtx.Free(h)
}
