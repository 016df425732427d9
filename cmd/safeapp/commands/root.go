package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"safeapp/internal/app"
	"safeapp/internal/config"
	"safeapp/internal/logging"
)

var (
	cfgPath    string
	home       string
	passphrase string
	contacts   []string
	logLevel   string
	timeout    time.Duration

	appCtx *app.App
	wire   *app.Wire
	log    zerolog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:          "safeapp",
		Short:        "Connect apps to the network through the binding shim",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("home") {
				settings.Home = home
			}
			if cmd.Flags().Changed("contact") {
				settings.Contacts = contacts
			}
			if cmd.Flags().Changed("log-level") {
				settings.LogLevel = logLevel
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			log, err = logging.New("safeapp", settings.LogLevel, settings.LogFormat, os.Stderr)
			if err != nil {
				return err
			}
			cfg := app.ConfigFrom(settings, log)
			wire, err = app.NewWire(cfg)
			if err != nil {
				return err
			}
			appCtx = app.New(wire, cfg)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.safeapp)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting stored grants")
	root.PersistentFlags().StringSliceVar(&contacts, "contact", nil, "gateway URL, repeatable (overrides config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace, debug, info, warn or error")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "how long to wait for a completion")

	root.AddCommand(
		keysCmd(),
		authCmd(),
		registerCmd(),
		unregisteredCmd(),
		decodeCmd(),
		encodeUnregisteredCmd(),
		encodeAuthCmd(),
		encodeMetadataCmd(),
	)
	return root.Execute()
}
