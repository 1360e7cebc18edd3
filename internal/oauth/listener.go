// Package oauth runs a loopback HTTP listener that captures the
// authorization code redirect during a desktop OAuth flow. The listener
// binds an ephemeral port on 127.0.0.1, receives exactly one redirect and
// shuts down.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrNoCode is returned when the redirect arrives without a code parameter.
var ErrNoCode = errors.New("oauth redirect carried no authorization code")

const shutdownTimeout = 2 * time.Second

// Listener captures a single OAuth authorization code.
type Listener struct {
	server   *http.Server
	listener net.Listener
	codes    chan string
	errs     chan error
}

// NewListener binds 127.0.0.1 on an ephemeral port and starts serving.
// Callers direct the provider's redirect_uri at RedirectURL and then Await
// the code.
func NewListener() (*Listener, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to bind loopback listener: %w", err)
	}

	l := &Listener{
		listener: ln,
		codes:    make(chan string, 1),
		errs:     make(chan error, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", l.handleCallback)
	l.server = &http.Server{
		Handler:           otelhttp.NewHandler(mux, "oauth.callback"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.errs <- err
		}
	}()

	return l, nil
}

// RedirectURL is the redirect_uri to register with the OAuth provider.
func (l *Listener) RedirectURL() string {
	return fmt.Sprintf("http://%s/callback", l.listener.Addr())
}

// Await blocks until the redirect arrives, the listener fails, or ctx is
// done. It shuts the listener down before returning.
func (l *Listener) Await(ctx context.Context) (string, error) {
	defer l.shutdown()

	select {
	case code := <-l.codes:
		return code, nil
	case err := <-l.errs:
		return "", fmt.Errorf("oauth listener failed: %w", err)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		select {
		case l.errs <- ErrNoCode:
		default:
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body>Signed in. You can close this window.</body></html>")

	// Only the first redirect counts; replays are answered but dropped.
	select {
	case l.codes <- code:
	default:
	}
}

func (l *Listener) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = l.server.Shutdown(ctx)
}
