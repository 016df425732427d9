package native

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/tomb.v2"

	"safeapp/internal/crypto"
	"safeapp/internal/domain"
)

// AppInfo is an owned snapshot of a live app client.
type AppInfo struct {
	Handle      domain.Handle
	AppID       string
	Registered  bool
	IdentityID  string
	Contact     string
	Connected   bool
	Disconnects int
	// AccessContainer is the CID of the access container, registered apps only.
	AccessContainer string
	// Containers lists the container names the grant covers.
	Containers []string
}

// App is one connected client. It owns its keys and its network session.
type App struct {
	handle       domain.Handle
	appID        string
	registered   bool
	keys         domain.AppKeys
	accessCont   string
	containers   []string
	contacts     []string
	hello        domain.Hello
	dialer       domain.NetworkDialer
	interval     time.Duration
	timeout      time.Duration
	onDisconnect func()
	log          zerolog.Logger

	mu          sync.Mutex
	session     domain.NetworkSession
	connected   bool
	disconnects int

	t tomb.Tomb
}

func newApp(keys domain.AppKeys, appID string, contacts []string, dialer domain.NetworkDialer, opts Options) *App {
	return &App{
		appID:    appID,
		keys:     keys,
		contacts: contacts,
		hello:    crypto.NewHello(keys.SignSk, keys.SignPk, appID),
		dialer:   dialer,
		interval: opts.PingInterval,
		timeout:  opts.DialTimeout,
	}
}

// start binds the app to an established session and launches its watcher.
func (a *App) start(h domain.Handle, sess domain.NetworkSession, onDisconnect func(), log zerolog.Logger) {
	a.handle = h
	a.session = sess
	a.connected = true
	a.onDisconnect = onDisconnect
	a.log = log.With().Uint64("handle", uint64(h)).Logger()
	a.t.Go(a.watch)
}

func (a *App) dial(ctx context.Context) (domain.NetworkSession, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	sess, err := a.dialer.Dial(ctx, a.contacts, a.hello)
	if err != nil {
		return nil, routingError(err)
	}
	return sess, nil
}

func (a *App) watch() error {
	if a.interval <= 0 {
		<-a.t.Dying()
		return nil
	}
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-a.t.Dying():
			return nil
		case <-ticker.C:
			a.check()
		}
	}
}

// check pings a live session, or redials a lost one.
func (a *App) check() {
	ctx := a.t.Context(context.Background())

	a.mu.Lock()
	sess, connected := a.session, a.connected
	a.mu.Unlock()

	if connected {
		pctx := ctx
		if a.timeout > 0 {
			var cancel context.CancelFunc
			pctx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}
		err := sess.Ping(pctx)
		if err == nil || !a.t.Alive() {
			return
		}
		a.lost(err)
		return
	}

	next, err := a.dial(ctx)
	if err != nil {
		a.log.Debug().Err(err).Msg("redial failed")
		return
	}
	if !a.t.Alive() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = next.Close(closeCtx)
		cancel()
		return
	}
	a.mu.Lock()
	a.session = next
	a.connected = true
	a.mu.Unlock()
	a.log.Info().Str("contact", next.Contact()).Msg("reconnected")
}

func (a *App) lost(err error) {
	a.mu.Lock()
	a.connected = false
	a.disconnects++
	a.mu.Unlock()
	a.log.Warn().Err(err).Msg("disconnected")
	if a.onDisconnect != nil {
		a.onDisconnect()
	}
}

func (a *App) info() AppInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	info := AppInfo{
		Handle:          a.handle,
		AppID:           a.appID,
		Registered:      a.registered,
		IdentityID:      crypto.IdentityID(a.keys.SignPk),
		Connected:       a.connected,
		Disconnects:     a.disconnects,
		AccessContainer: a.accessCont,
		Containers:      append([]string(nil), a.containers...),
	}
	if a.session != nil {
		info.Contact = a.session.Contact()
	}
	return info
}

// close stops the watcher, ends the session and wipes the keys.
func (a *App) close() error {
	a.t.Kill(nil)
	err := a.t.Wait()

	a.mu.Lock()
	sess := a.session
	a.session = nil
	a.connected = false
	crypto.WipeAppKeys(&a.keys)
	a.mu.Unlock()

	if sess != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if cerr := sess.Close(ctx); cerr != nil {
			a.log.Debug().Err(cerr).Msg("session close")
		}
	}
	return err
}
