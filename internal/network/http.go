package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/retry.v1"

	"safeapp/internal/domain"
)

var (
	// ErrNoContacts is returned when a bootstrap config lists nobody to dial.
	ErrNoContacts = errors.New("network: no bootstrap contacts")
	// ErrSessionGone is returned by Ping once the gateway forgot the session.
	ErrSessionGone = errors.New("network: session no longer exists")
)

// StatusError is a non-2xx gateway response.
type StatusError struct {
	Method string
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway %s %s: %s", e.Method, e.URL, e.Status)
}

// DefaultDialStrategy bounds how long Dial keeps cycling through contacts.
var DefaultDialStrategy retry.Strategy = retry.LimitCount(4, retry.LimitTime(15*time.Second,
	retry.Exponential{
		Initial: 250 * time.Millisecond,
		Factor:  2,
	},
))

const sessionsPath = "/v1/sessions"

// HTTPDialer dials gateways over HTTP.
type HTTPDialer struct {
	HTTP     *http.Client
	Strategy retry.Strategy
	Log      zerolog.Logger
}

// NewHTTPDialer returns a dialer using client, or http.DefaultClient if nil.
func NewHTTPDialer(client *http.Client, log zerolog.Logger) *HTTPDialer {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDialer{HTTP: client, Strategy: DefaultDialStrategy, Log: log}
}

type sessionResponse struct {
	ID     string `json:"id"`
	SignPk string `json:"sign_pk,omitempty"`
	AppID  string `json:"app_id,omitempty"`
}

// Dial tries contacts in order and returns the first session opened. The
// whole list is retried according to the dialer's strategy.
func (d *HTTPDialer) Dial(ctx context.Context, contacts []string, hello domain.Hello) (domain.NetworkSession, error) {
	if len(contacts) == 0 {
		return nil, ErrNoContacts
	}
	strategy := d.Strategy
	if strategy == nil {
		strategy = DefaultDialStrategy
	}

	var lastErr error
	for attempt := retry.Start(strategy, nil); attempt.Next(); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, contact := range contacts {
			sess, err := d.open(ctx, contact, hello)
			if err == nil {
				return sess, nil
			}
			lastErr = err
			d.Log.Debug().Err(err).Str("contact", contact).Int("attempt", attempt.Count()).Msg("dial failed")
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("dial %d contacts: %w", len(contacts), lastErr)
}

func (d *HTTPDialer) open(ctx context.Context, contact string, hello domain.Hello) (*httpSession, error) {
	base := strings.TrimRight(contact, "/")
	var out sessionResponse
	if err := doJSON(ctx, d.HTTP, http.MethodPost, base+sessionsPath, hello, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("gateway %s: empty session id", base)
	}
	return &httpSession{id: out.ID, contact: base, client: d.HTTP}, nil
}

type httpSession struct {
	id      string
	contact string
	client  *http.Client
}

func (s *httpSession) ID() string      { return s.id }
func (s *httpSession) Contact() string { return s.contact }

func (s *httpSession) url() string {
	return s.contact + sessionsPath + "/" + url.PathEscape(s.id)
}

// Ping checks that the gateway still holds the session.
func (s *httpSession) Ping(ctx context.Context) error {
	var out sessionResponse
	err := doJSON(ctx, s.client, http.MethodGet, s.url(), nil, &out)
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return ErrSessionGone
	}
	return err
}

// Close ends the session. A session the gateway already forgot is not an
// error.
func (s *httpSession) Close(ctx context.Context) error {
	err := doJSON(ctx, s.client, http.MethodDelete, s.url(), nil, nil)
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return nil
	}
	return err
}

func doJSON(ctx context.Context, client *http.Client, method, u string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		body = new(bytes.Buffer)
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return err
		}
	}
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, u, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &StatusError{Method: method, URL: u, Status: resp.Status, Code: resp.StatusCode}
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

var (
	_ domain.NetworkDialer  = (*HTTPDialer)(nil)
	_ domain.NetworkSession = (*httpSession)(nil)
)
