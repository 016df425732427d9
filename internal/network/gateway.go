package network

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"safeapp/internal/crypto"
	"safeapp/internal/domain"
)

// GatewayOptions configures a Gateway.
type GatewayOptions struct {
	Logger zerolog.Logger
	// OpenRate and OpenBurst bound session creation per remote host.
	// Zero disables limiting.
	OpenRate  float64
	OpenBurst int
	// LimiterIdle is how long a host's bucket is kept after its last
	// request. Defaults to ten minutes.
	LimiterIdle time.Duration
	// Registry receives the gateway metrics and backs /metrics. A private
	// registry is created when nil.
	Registry *prometheus.Registry
}

type gatewaySession struct {
	hello  domain.Hello
	opened time.Time
}

// Gateway serves the session endpoints app clients dial into.
type Gateway struct {
	log     zerolog.Logger
	limiter *hostLimiter
	router  *mux.Router

	mu       sync.Mutex
	sessions map[string]gatewaySession

	active   prometheus.Gauge
	opened   prometheus.Counter
	rejected prometheus.Counter
}

// NewGateway returns a ready to serve gateway.
func NewGateway(opts GatewayOptions) *Gateway {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	g := &Gateway{
		log:      opts.Logger.With().Str("component", "gateway").Logger(),
		limiter:  newHostLimiter(opts.OpenRate, opts.OpenBurst, opts.LimiterIdle),
		sessions: make(map[string]gatewaySession),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "safeapp", Subsystem: "gateway", Name: "sessions_active",
			Help: "Sessions currently held by the gateway.",
		}),
		opened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "safeapp", Subsystem: "gateway", Name: "sessions_opened_total",
			Help: "Sessions opened since start.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "safeapp", Subsystem: "gateway", Name: "sessions_rejected_total",
			Help: "Session requests rejected by validation or rate limiting.",
		}),
	}
	reg.MustRegister(g.active, g.opened, g.rejected)

	r := mux.NewRouter()
	r.HandleFunc(sessionsPath, g.openSession).Methods(http.MethodPost)
	r.HandleFunc(sessionsPath+"/{id}", g.getSession).Methods(http.MethodGet)
	r.HandleFunc(sessionsPath+"/{id}", g.closeSession).Methods(http.MethodDelete)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	g.router = r
	return g
}

// ServeHTTP implements http.Handler.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.router.ServeHTTP(w, r)
}

// Sessions returns the number of live sessions.
func (g *Gateway) Sessions() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sessions)
}

// DropAll forgets every session, as if the gateway had restarted. Clients
// notice on their next ping.
func (g *Gateway) DropAll() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := len(g.sessions)
	g.sessions = make(map[string]gatewaySession)
	g.active.Set(0)
	return n
}

func (g *Gateway) openSession(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !g.limiter.allow(host, time.Now()) {
		g.rejected.Inc()
		http.Error(w, "too many sessions", http.StatusTooManyRequests)
		return
	}

	var hello domain.Hello
	if err := json.NewDecoder(r.Body).Decode(&hello); err != nil {
		g.rejected.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := crypto.VerifyHello(hello); err != nil {
		g.rejected.Inc()
		status := http.StatusBadRequest
		if errors.Is(err, crypto.ErrHelloSignature) {
			status = http.StatusUnauthorized
		}
		g.log.Debug().Err(err).Str("remote", host).Msg("session refused")
		http.Error(w, err.Error(), status)
		return
	}

	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	id := hex.EncodeToString(raw[:])

	g.mu.Lock()
	g.sessions[id] = gatewaySession{hello: hello, opened: time.Now()}
	g.active.Set(float64(len(g.sessions)))
	g.mu.Unlock()
	g.opened.Inc()

	g.log.Info().Str("session", id).Str("app_id", hello.AppID).Msg("session opened")
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id, SignPk: hello.SignPk, AppID: hello.AppID})
}

func (g *Gateway) getSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	g.mu.Lock()
	s, ok := g.sessions[id]
	g.mu.Unlock()
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, SignPk: s.hello.SignPk, AppID: s.hello.AppID})
}

func (g *Gateway) closeSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	g.mu.Lock()
	_, ok := g.sessions[id]
	delete(g.sessions, id)
	g.active.Set(float64(len(g.sessions)))
	g.mu.Unlock()
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	g.log.Info().Str("session", id).Msg("session closed")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
