package native

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"safeapp/internal/crypto"
	"safeapp/internal/domain"
	"safeapp/internal/ipc"
)

// Default timings used when Options leaves them zero.
const (
	DefaultPingInterval = 10 * time.Second
	DefaultDialTimeout  = 20 * time.Second
)

// Options configures a Runtime.
type Options struct {
	// Dialer opens gateway sessions. Required.
	Dialer domain.NetworkDialer
	// DefaultContacts fill in a grant whose bootstrap config is empty.
	DefaultContacts []string
	// PingInterval is how often live apps check their session. Negative
	// disables the watcher.
	PingInterval time.Duration
	DialTimeout  time.Duration
	Logger       zerolog.Logger
}

// Runtime owns every app client it hands a handle out for.
type Runtime struct {
	opts   Options
	log    zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	next   uint64
	apps   map[domain.Handle]*App
	closed bool
	wg     sync.WaitGroup
}

// New returns a Runtime. It panics if opts.Dialer is nil.
func New(opts Options) *Runtime {
	if opts.Dialer == nil {
		panic("native: nil dialer")
	}
	if opts.PingInterval == 0 {
		opts.PingInterval = DefaultPingInterval
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = DefaultDialTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runtime{
		opts:   opts,
		log:    opts.Logger.With().Str("component", "native").Logger(),
		ctx:    ctx,
		cancel: cancel,
		apps:   make(map[domain.Handle]*App),
	}
}

// AppUnregistered parses bootstrapConfig before returning, then connects
// a throwaway identity in the background.
func (r *Runtime) AppUnregistered(
	bootstrapConfig []byte,
	onDisconnect domain.DisconnectNotifierFunc,
	onComplete domain.CompletionFunc,
) {
	cfg, err := ipc.DeserialiseBootstrapConfig(bootstrapConfig)
	if err == nil && cfg.IsEmpty() {
		err = invalidArgument("bootstrap config has no contacts")
	}
	var keys domain.AppKeys
	if err == nil {
		keys, err = crypto.RandomAppKeys()
	}
	if err != nil {
		r.fail(onComplete, err)
		return
	}
	app := newApp(keys, "", cfg.HardCodedContacts, r.opts.Dialer, r.opts)
	r.connect(app, onDisconnect, onComplete)
}

// AppRegistered connects as appID with the keys in authGranted. An empty
// bootstrap config in the grant is replaced with the default contacts; that
// write is the only change made to *authGranted and it happens before
// AppRegistered returns.
func (r *Runtime) AppRegistered(
	appID string,
	authGranted *domain.AuthGranted,
	onDisconnect domain.DisconnectNotifierFunc,
	onComplete domain.CompletionFunc,
) {
	app, err := r.registeredApp(appID, authGranted)
	if err != nil {
		r.fail(onComplete, err)
		return
	}
	r.connect(app, onDisconnect, onComplete)
}

func (r *Runtime) registeredApp(appID string, auth *domain.AuthGranted) (*App, error) {
	if strings.TrimSpace(appID) == "" {
		return nil, invalidArgument("empty app id")
	}
	if auth == nil {
		return nil, invalidArgument("nil auth granted")
	}
	if auth.AppKeys.SignPk == (domain.Ed25519Public{}) {
		return nil, invalidArgument("auth granted has no signing key")
	}
	if auth.BootstrapConfig.IsEmpty() {
		if len(r.opts.DefaultContacts) == 0 {
			return nil, routingError(fmt.Errorf("no bootstrap contacts for %q", appID))
		}
		auth.BootstrapConfig.HardCodedContacts = append([]string(nil), r.opts.DefaultContacts...)
	}

	md := auth.AccessContainerInfo.MDataInfo(auth.AppKeys.EncKey)
	cid, err := crypto.XorNameCID(md.Name)
	if err != nil {
		return nil, fmt.Errorf("access container address: %w", err)
	}
	names := make([]string, 0, len(auth.AccessContainerEntry))
	for name := range auth.AccessContainerEntry {
		names = append(names, name)
	}
	sort.Strings(names)

	contacts := append([]string(nil), auth.BootstrapConfig.HardCodedContacts...)
	app := newApp(auth.AppKeys, appID, contacts, r.opts.Dialer, r.opts)
	app.registered = true
	app.accessCont = cid
	app.containers = names
	return app, nil
}

// DecodeIpcMsg decodes msg on a worker goroutine.
func (r *Runtime) DecodeIpcMsg(msg string, onComplete domain.DecodeCompletionFunc) {
	ok := r.spawn(func() {
		decoded, err := ipc.DecodeMsg(msg)
		if err != nil {
			r.log.Debug().Err(err).Str("op", "decode_ipc_msg").Msg("decode failed")
			onComplete(resultFor(err), nil)
			return
		}
		onComplete(domain.ResultOK, &decoded)
	})
	if !ok {
		go onComplete(resultFor(ErrShutdown), nil)
	}
}

func (r *Runtime) connect(app *App, onDisconnect domain.DisconnectNotifierFunc, onComplete domain.CompletionFunc) {
	ok := r.spawn(func() {
		sess, err := app.dial(r.ctx)
		if err != nil {
			crypto.WipeAppKeys(&app.keys)
			r.log.Warn().Err(err).Str("app_id", app.appID).Msg("connect failed")
			onComplete(resultFor(err), domain.NoHandle)
			return
		}
		h, err := r.register(app, sess, onDisconnect)
		if err != nil {
			onComplete(resultFor(err), domain.NoHandle)
			return
		}
		r.log.Info().Uint64("handle", uint64(h)).Str("app_id", app.appID).Str("contact", sess.Contact()).Msg("app connected")
		onComplete(domain.ResultOK, h)
	})
	if !ok {
		crypto.WipeAppKeys(&app.keys)
		go onComplete(resultFor(ErrShutdown), domain.NoHandle)
	}
}

func (r *Runtime) register(app *App, sess domain.NetworkSession, onDisconnect domain.DisconnectNotifierFunc) (domain.Handle, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sess.Close(ctx)
		crypto.WipeAppKeys(&app.keys)
		return domain.NoHandle, ErrShutdown
	}
	r.next++
	h := domain.Handle(r.next)
	r.apps[h] = app
	app.start(h, sess, onDisconnect, r.log)
	r.mu.Unlock()
	return h, nil
}

func (r *Runtime) fail(onComplete domain.CompletionFunc, err error) {
	res := resultFor(err)
	r.log.Debug().Err(err).Int32("code", res.ErrorCode).Msg("call rejected")
	if !r.spawn(func() { onComplete(res, domain.NoHandle) }) {
		go onComplete(res, domain.NoHandle)
	}
}

// spawn runs fn on a tracked goroutine unless the runtime is shut down.
func (r *Runtime) spawn(fn func()) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	r.wg.Add(1)
	r.mu.Unlock()
	go func() {
		defer r.wg.Done()
		fn()
	}()
	return true
}

// Lookup returns a snapshot of the app behind h.
func (r *Runtime) Lookup(h domain.Handle) (AppInfo, bool) {
	r.mu.Lock()
	app, ok := r.apps[h]
	r.mu.Unlock()
	if !ok {
		return AppInfo{}, false
	}
	return app.info(), true
}

// Len reports how many handles are live.
func (r *Runtime) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

// Free closes the app behind h. No disconnect is reported for it afterwards.
func (r *Runtime) Free(h domain.Handle) error {
	r.mu.Lock()
	app, ok := r.apps[h]
	delete(r.apps, h)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("free %s: %w", h, ErrNoSuchHandle)
	}
	return app.close()
}

// Shutdown aborts pending connects, waits for outstanding callbacks and
// closes every app. Later calls complete with CodeOperationAborted.
func (r *Runtime) Shutdown() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()

	r.mu.Lock()
	apps := r.apps
	r.apps = make(map[domain.Handle]*App)
	r.mu.Unlock()

	var first error
	for _, app := range apps {
		if err := app.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var _ domain.NativeBindings = (*Runtime)(nil)
