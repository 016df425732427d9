package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"safeapp/internal/config"
	"safeapp/internal/logging"
	"safeapp/internal/network"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath, listen string
	cmd := &cobra.Command{
		Use:          "gateway",
		Short:        "Serve network sessions for safeapp clients",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if listen != "" {
				settings.Gateway.Listen = listen
			}
			log, err := logging.New("gateway", settings.LogLevel, settings.LogFormat, os.Stderr)
			if err != nil {
				return err
			}

			gw := network.NewGateway(network.GatewayOptions{
				Logger:      log,
				OpenRate:    settings.Gateway.OpenRate,
				OpenBurst:   settings.Gateway.OpenBurst,
				LimiterIdle: settings.Gateway.LimiterIdle,
			})
			srv := &http.Server{
				Addr:              settings.Gateway.Listen,
				Handler:           gw,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			hup := make(chan os.Signal, 1)
			signal.Notify(hup, syscall.SIGHUP)
			defer signal.Stop(hup)
			go func() {
				for range hup {
					n := gw.DropAll()
					log.Info().Int("sessions", n).Msg("dropped all sessions")
				}
			}()

			errc := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("gateway listening")
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			log.Info().Msg("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}
