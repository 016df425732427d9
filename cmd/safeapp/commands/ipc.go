package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"safeapp/internal/domain"
	"safeapp/internal/ipc"
)

func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <ipc-msg>",
		Short: "Decode an IPC message and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			msg, err := wire.Bindings.DecodeIpcMsgAsync(args[0]).Wait(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(msg)
		},
	}
	return cmd
}

func encodeUnregisteredCmd() *cobra.Command {
	var extra string
	cmd := &cobra.Command{
		Use:   "encode-unregistered",
		Short: "Print an IPC request for a bootstrap config",
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload []byte
			if extra != "" {
				payload = []byte(extra)
			}
			s, err := ipc.EncodeUnregisteredReq(ipc.GenReqID(), payload)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
	cmd.Flags().StringVar(&extra, "extra", "", "opaque data passed to the authenticator")
	return cmd
}

func encodeAuthCmd() *cobra.Command {
	var (
		info         domain.AppExchangeInfo
		appContainer bool
		containers   []string
	)
	cmd := &cobra.Command{
		Use:   "encode-auth",
		Short: "Print an IPC request asking an authenticator to authorise the app",
		Long: "Print an IPC request asking an authenticator to authorise the app.\n" +
			"Without --container the standard containers are requested.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if info.ID == "" {
				return fmt.Errorf("--app-id is required")
			}
			perms, err := parseContainers(containers)
			if err != nil {
				return err
			}
			s, err := ipc.EncodeAuthReq(ipc.GenReqID(), ipc.NewAuthReq(info, appContainer, perms))
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
	cmd.Flags().StringVar(&info.ID, "app-id", "", "app id")
	cmd.Flags().StringVar(&info.Name, "name", "", "app name shown to the user")
	cmd.Flags().StringVar(&info.Vendor, "vendor", "", "app vendor")
	cmd.Flags().BoolVar(&appContainer, "app-container", false, "ask for a dedicated app container")
	cmd.Flags().StringArrayVar(&containers, "container", nil, "name=Perm[,Perm...], repeatable")
	return cmd
}

// parseContainers reads name=Read,Insert pairs. No pairs yields nil.
func parseContainers(pairs []string) (map[string]domain.ContainerPermissions, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]domain.ContainerPermissions, len(pairs))
	for _, pair := range pairs {
		name, list, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("container %q: want name=Perm[,Perm...]", pair)
		}
		var names []string
		for _, p := range strings.Split(list, ",") {
			if p = strings.TrimSpace(p); p != "" {
				names = append(names, p)
			}
		}
		perms, err := domain.ParsePermissions(names)
		if err != nil {
			return nil, fmt.Errorf("container %s: %w", name, err)
		}
		out[name] = perms
	}
	return out, nil
}

func encodeMetadataCmd() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "encode-metadata",
		Short: "Print the encoded user metadata for a mutable data",
		RunE: func(cmd *cobra.Command, args []string) error {
			var md domain.UserMetadata
			if cmd.Flags().Changed("name") {
				md.Name = &name
			}
			if cmd.Flags().Changed("description") {
				md.Description = &description
			}
			b, err := ipc.EncodeMetadata(md)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	return cmd
}
