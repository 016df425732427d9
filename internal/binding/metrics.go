package binding

import "github.com/prometheus/client_golang/prometheus"

// Operation labels.
const (
	opAppUnregistered = "app_unregistered"
	opAppRegistered   = "app_registered"
	opDecodeIpcMsg    = "decode_ipc_msg"
)

type metrics struct {
	calls       *prometheus.CounterVec
	completions *prometheus.CounterVec
	duplicates  *prometheus.CounterVec
	disconnects prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safeapp",
			Subsystem: "binding",
			Name:      "calls_total",
			Help:      "Calls forwarded to the native library.",
		}, []string{"op"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safeapp",
			Subsystem: "binding",
			Name:      "completions_total",
			Help:      "Completions received from the native library.",
		}, []string{"op", "result"}),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safeapp",
			Subsystem: "binding",
			Name:      "duplicate_completions_total",
			Help:      "Completions dropped because the call had already completed.",
		}, []string{"op"}),
		disconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "safeapp",
			Subsystem: "binding",
			Name:      "disconnects_total",
			Help:      "Disconnect notifications forwarded to callers.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.calls, m.completions, m.duplicates, m.disconnects)
	}
	return m
}

func resultLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
