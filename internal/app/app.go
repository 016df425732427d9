package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/rs/zerolog"

	"safeapp/internal/binding"
	"safeapp/internal/crypto"
	"safeapp/internal/domain"
	"safeapp/internal/ipc"
	"safeapp/internal/native"
	"safeapp/internal/store"
)

// ErrUnexpectedMsg is returned when an imported message is not an
// authenticator response meant for an app.
var ErrUnexpectedMsg = errors.New("app: unexpected ipc message")

// ErrNoContacts is returned when no bootstrap contacts are known.
var ErrNoContacts = errors.New("app: no bootstrap contacts configured")

// App runs the CLI operations against a Wire.
type App struct {
	w        *Wire
	contacts []string
	log      zerolog.Logger
}

func New(w *Wire, cfg Config) *App {
	return &App{
		w:        w,
		contacts: append([]string(nil), cfg.Contacts...),
		log:      cfg.Logger.With().Str("component", "app").Logger(),
	}
}

// ImportResult describes what Import stored.
type ImportResult struct {
	Kind     domain.IpcMsgKind
	RespKind domain.IpcRespKind
	AppID    string
	Contacts int
}

// Import decodes an authenticator message and records its effect: grants are
// saved for appID, bootstrap configs are cached and revocations delete the
// stored grant. IPC errors carried by the message are returned as
// *domain.IpcError.
func (a *App) Import(ctx context.Context, passphrase, appID, encoded string) (ImportResult, error) {
	msg, err := a.w.Bindings.DecodeIpcMsg(ctx, encoded)
	if err != nil {
		return ImportResult{}, fmt.Errorf("decode ipc message: %w", err)
	}
	res := ImportResult{Kind: msg.Kind, AppID: appID}

	switch msg.Kind {
	case domain.IpcMsgErr:
		return res, msg.Err
	case domain.IpcMsgRevoked:
		res.AppID = msg.AppID
		if err := a.w.Auth.DeleteAuth(msg.AppID); err != nil {
			return res, err
		}
		a.log.Info().Str("app_id", msg.AppID).Msg("grant revoked")
		return res, nil
	case domain.IpcMsgResp:
	default:
		return res, fmt.Errorf("%w: %s", ErrUnexpectedMsg, msg.Kind)
	}

	resp := msg.Resp
	res.RespKind = resp.Kind
	if resp.Err != nil {
		return res, resp.Err
	}
	switch resp.Kind {
	case domain.IpcRespAuth:
		defer crypto.WipeAppKeys(&resp.Auth.AppKeys)
		if appID == "" {
			return res, fmt.Errorf("import grant: app id required")
		}
		if passphrase == "" {
			return res, fmt.Errorf("import grant: %w", store.ErrEmptyPassphrase)
		}
		if err := a.w.Auth.SaveAuth(passphrase, appID, *resp.Auth); err != nil {
			return res, err
		}
		res.Contacts = len(resp.Auth.BootstrapConfig.HardCodedContacts)
		if !resp.Auth.BootstrapConfig.IsEmpty() {
			if err := a.w.Bootstrap.SaveBootstrapConfig(resp.Auth.BootstrapConfig); err != nil {
				return res, err
			}
		}
		a.log.Info().Str("app_id", appID).Msg("grant stored")
	case domain.IpcRespUnregistered:
		if err := a.w.Bootstrap.SaveBootstrapConfig(*resp.Unregistered); err != nil {
			return res, err
		}
		res.Contacts = len(resp.Unregistered.HardCodedContacts)
	default:
		return res, fmt.Errorf("%w: %s response", ErrUnexpectedMsg, resp.Kind)
	}
	return res, nil
}

// Register loads the grant for appID and connects with it. A grant the
// runtime completed with default contacts is saved back.
func (a *App) Register(ctx context.Context, passphrase, appID string, onDisconnect func()) (domain.Handle, error) {
	auth, err := a.w.Auth.LoadAuth(passphrase, appID)
	if err != nil {
		return domain.NoHandle, err
	}
	defer crypto.WipeAppKeys(&auth.AppKeys)
	before := append([]string(nil), auth.BootstrapConfig.HardCodedContacts...)

	conn := a.w.Bindings.ConnectRegistered(appID, &auth, onDisconnect)
	h, err := conn.Wait(ctx)
	if err != nil {
		a.abandon(conn)
		return domain.NoHandle, fmt.Errorf("register %s: %w", appID, err)
	}

	// The grant is ours again once the completion has fired.
	if !reflect.DeepEqual(before, auth.BootstrapConfig.HardCodedContacts) {
		if err := a.w.Auth.SaveAuth(passphrase, appID, auth); err != nil {
			a.log.Warn().Err(err).Str("app_id", appID).Msg("saving completed grant")
		}
	}
	return h, nil
}

// Unregistered connects an anonymous client. bootstrapConfig may be nil, in
// which case the cached config or the configured contacts are used.
func (a *App) Unregistered(ctx context.Context, bootstrapConfig []byte, onDisconnect func()) (domain.Handle, error) {
	if bootstrapConfig == nil {
		cfg, err := a.bootstrapConfig()
		if err != nil {
			return domain.NoHandle, err
		}
		if bootstrapConfig, err = ipc.SerialiseBootstrapConfig(cfg); err != nil {
			return domain.NoHandle, err
		}
	}
	conn := a.w.Bindings.ConnectUnregistered(bootstrapConfig, onDisconnect)
	h, err := conn.Wait(ctx)
	if err != nil {
		a.abandon(conn)
		return domain.NoHandle, fmt.Errorf("connect unregistered: %w", err)
	}
	return h, nil
}

// abandon gives up on conn after the caller stopped waiting. A connect that
// still succeeds later is freed as soon as its handle arrives.
func (a *App) abandon(conn *binding.Connection) {
	conn.Close()
	go func() {
		<-conn.Completion.Done()
		h, err := conn.Completion.Wait(context.Background())
		if err != nil || !h.IsValid() {
			return
		}
		if err := a.w.Runtime.Free(h); err != nil {
			a.log.Warn().Err(err).Uint64("handle", uint64(h)).Msg("freeing abandoned connection")
			return
		}
		a.log.Debug().Uint64("handle", uint64(h)).Msg("abandoned connection freed")
	}()
}

func (a *App) bootstrapConfig() (domain.BootstrapConfig, error) {
	cfg, ok, err := a.w.Bootstrap.LoadBootstrapConfig()
	if err != nil {
		return domain.BootstrapConfig{}, err
	}
	if ok && !cfg.IsEmpty() {
		return cfg, nil
	}
	if len(a.contacts) == 0 {
		return domain.BootstrapConfig{}, ErrNoContacts
	}
	return domain.BootstrapConfig{HardCodedContacts: append([]string(nil), a.contacts...)}, nil
}

// ContainerSummary is one access container entry.
type ContainerSummary struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Address     string   `json:"address"`
}

// GrantSummary is the public part of a stored grant.
type GrantSummary struct {
	AppID           string `json:"app_id"`
	IdentityID      string `json:"identity_id"`
	AccessContainer string `json:"access_container"`
	// EntryKey is the CID of the app's encrypted access container key.
	EntryKey   string             `json:"entry_key"`
	Contacts   []string           `json:"contacts"`
	Containers []ContainerSummary `json:"containers"`
}

// Summary describes the grant stored for appID without exposing its secrets.
func (a *App) Summary(passphrase, appID string) (GrantSummary, error) {
	auth, err := a.w.Auth.LoadAuth(passphrase, appID)
	if err != nil {
		return GrantSummary{}, err
	}
	defer crypto.WipeAppKeys(&auth.AppKeys)

	acc, err := crypto.XorNameCID(auth.AccessContainerInfo.ID)
	if err != nil {
		return GrantSummary{}, err
	}
	entryName, err := crypto.XorNameOf(crypto.AccessContainerEncKey(appID, auth.AppKeys.EncKey, auth.AccessContainerInfo.Nonce))
	if err != nil {
		return GrantSummary{}, err
	}
	entry, err := crypto.XorNameCID(entryName)
	if err != nil {
		return GrantSummary{}, err
	}
	sum := GrantSummary{
		AppID:           appID,
		IdentityID:      crypto.IdentityID(auth.AppKeys.SignPk),
		AccessContainer: acc,
		EntryKey:        entry,
		Contacts:        append([]string{}, auth.BootstrapConfig.HardCodedContacts...),
	}
	for name, info := range auth.AccessContainerEntry {
		addr, err := crypto.XorNameCID(info.MDataInfo.Name)
		if err != nil {
			return GrantSummary{}, err
		}
		sum.Containers = append(sum.Containers, ContainerSummary{
			Name:        name,
			Permissions: info.Permissions.Names(),
			Address:     addr,
		})
	}
	sort.Slice(sum.Containers, func(i, j int) bool { return sum.Containers[i].Name < sum.Containers[j].Name })
	return sum, nil
}

// Apps lists the app ids with stored grants.
func (a *App) Apps() ([]string, error) { return a.w.Auth.Apps() }

// Info returns the runtime's view of h.
func (a *App) Info(h domain.Handle) (native.AppInfo, bool) { return a.w.Runtime.Lookup(h) }

// Free releases h.
func (a *App) Free(h domain.Handle) error { return a.w.Runtime.Free(h) }
