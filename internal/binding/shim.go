package binding

import (
	"context"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"safeapp/internal/domain"
)

// Options configures a Bindings value. The zero value logs nothing and
// keeps metrics unregistered.
type Options struct {
	Logger     zerolog.Logger
	Registerer prometheus.Registerer
}

// Bindings forwards calls to the native library.
type Bindings struct {
	native domain.NativeBindings
	log    zerolog.Logger
	m      *metrics
}

// New returns a shim in front of native.
func New(native domain.NativeBindings, opts Options) *Bindings {
	return &Bindings{
		native: native,
		log:    opts.Logger.With().Str("component", "binding").Logger(),
		m:      newMetrics(opts.Registerer),
	}
}

// AppUnregistered asks the native side for an unregistered client joined via
// bootstrapConfig. The slice is forwarded unchanged; the shim does not parse
// it.
func (b *Bindings) AppUnregistered(
	bootstrapConfig []byte,
	onDisconnect domain.DisconnectNotifierFunc,
	onComplete domain.CompletionFunc,
) {
	b.m.calls.WithLabelValues(opAppUnregistered).Inc()
	b.log.Debug().Str("op", opAppUnregistered).Int("config_len", len(bootstrapConfig)).Msg("forwarding")
	b.native.AppUnregistered(
		bootstrapConfig,
		b.disconnectFunc(opAppUnregistered, onDisconnect),
		b.completeOnce(opAppUnregistered, onComplete),
	)
}

// AppRegistered asks the native side for a client acting as appID with the
// keys in authGranted. The native side may modify *authGranted before the
// completion fires; the caller must not touch it until then.
func (b *Bindings) AppRegistered(
	appID string,
	authGranted *domain.AuthGranted,
	onDisconnect domain.DisconnectNotifierFunc,
	onComplete domain.CompletionFunc,
) {
	b.m.calls.WithLabelValues(opAppRegistered).Inc()
	b.log.Debug().Str("op", opAppRegistered).Str("app_id", appID).Msg("forwarding")
	b.native.AppRegistered(
		appID,
		authGranted,
		b.disconnectFunc(opAppRegistered, onDisconnect),
		b.completeOnce(opAppRegistered, onComplete),
	)
}

// DecodeIpcMsgAsync starts decoding msg and returns immediately.
func (b *Bindings) DecodeIpcMsgAsync(msg string) *Future[domain.IpcMsg] {
	b.m.calls.WithLabelValues(opDecodeIpcMsg).Inc()
	f := newFuture[domain.IpcMsg]()
	b.native.DecodeIpcMsg(msg, func(result domain.FfiResult, decoded *domain.IpcMsg) {
		var (
			val domain.IpcMsg
			err = resultErr(opDecodeIpcMsg, result)
		)
		switch {
		case err != nil:
		case decoded == nil:
			err = &ResultError{Op: opDecodeIpcMsg, Result: domain.FfiResult{
				ErrorCode:   domain.CodeUnexpected,
				Description: "native side returned no message",
			}}
		default:
			val = *decoded
		}
		if !f.resolve(val, err) {
			b.duplicate(opDecodeIpcMsg, result)
			return
		}
		b.m.completions.WithLabelValues(opDecodeIpcMsg, resultLabel(err == nil)).Inc()
	})
	return f
}

// DecodeIpcMsg decodes msg, waiting at most until ctx ends.
func (b *Bindings) DecodeIpcMsg(ctx context.Context, msg string) (domain.IpcMsg, error) {
	return b.DecodeIpcMsgAsync(msg).Wait(ctx)
}

// Connection is the outcome of a registration call: Completion resolves once
// with the native handle, Disconnects receives every disconnect event.
type Connection struct {
	Completion  *Future[domain.Handle]
	Disconnects *Notifier
}

// Wait waits for the completion.
func (c *Connection) Wait(ctx context.Context) (domain.Handle, error) {
	return c.Completion.Wait(ctx)
}

// Close releases the disconnect subscription. It does not free the handle.
func (c *Connection) Close() { c.Disconnects.Close() }

func newConnection(onDisconnect func()) *Connection {
	return &Connection{
		Completion:  newFuture[domain.Handle](),
		Disconnects: NewNotifier(onDisconnect),
	}
}

func (c *Connection) complete(op string) domain.CompletionFunc {
	return func(result domain.FfiResult, handle domain.Handle) {
		if err := resultErr(op, result); err != nil {
			c.Completion.resolve(domain.NoHandle, err)
			return
		}
		c.Completion.resolve(handle, nil)
	}
}

// ConnectUnregistered is AppUnregistered with the callbacks replaced by a
// Connection. onDisconnect may be nil.
func (b *Bindings) ConnectUnregistered(bootstrapConfig []byte, onDisconnect func()) *Connection {
	c := newConnection(onDisconnect)
	b.AppUnregistered(bootstrapConfig, c.Disconnects.Notify, c.complete(opAppUnregistered))
	return c
}

// ConnectRegistered is AppRegistered with the callbacks replaced by a
// Connection. onDisconnect may be nil.
func (b *Bindings) ConnectRegistered(appID string, authGranted *domain.AuthGranted, onDisconnect func()) *Connection {
	c := newConnection(onDisconnect)
	b.AppRegistered(appID, authGranted, c.Disconnects.Notify, c.complete(opAppRegistered))
	return c
}

func (b *Bindings) completeOnce(op string, fn domain.CompletionFunc) domain.CompletionFunc {
	var fired atomic.Bool
	return func(result domain.FfiResult, handle domain.Handle) {
		if !fired.CompareAndSwap(false, true) {
			b.duplicate(op, result)
			return
		}
		b.m.completions.WithLabelValues(op, resultLabel(result.OK())).Inc()
		ev := b.log.Debug()
		if !result.OK() {
			ev = b.log.Warn().Int32("code", result.ErrorCode).Str("description", result.Description)
		}
		ev.Str("op", op).Stringer("handle", handle).Msg("completed")
		if fn != nil {
			fn(result, handle)
		}
	}
}

func (b *Bindings) disconnectFunc(op string, fn domain.DisconnectNotifierFunc) domain.DisconnectNotifierFunc {
	return func() {
		b.m.disconnects.Inc()
		b.log.Info().Str("op", op).Msg("disconnected from network")
		if fn != nil {
			fn()
		}
	}
}

func (b *Bindings) duplicate(op string, result domain.FfiResult) {
	b.m.duplicates.WithLabelValues(op).Inc()
	b.log.Error().Str("op", op).Int32("code", result.ErrorCode).Msg("dropping duplicate completion")
}

// Compile-time assertion that Bindings implements domain.AppBindings.
var _ domain.AppBindings = (*Bindings)(nil)
