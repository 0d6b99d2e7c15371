// Package static serves the game's asset directory over HTTP for local
// development, with permissive CORS and caching disabled.
package static

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Port is the fixed port the dev server listens on.
const Port = 8000

// Addr is Port on all interfaces.
var Addr = ":" + strconv.Itoa(Port)

// shutdownGrace bounds how long in-flight requests get once serving stops.
const shutdownGrace = 5 * time.Second

// BindError reports a failure to claim the listening socket.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// Handler serves files under root, decorated with the Injected headers.
func Handler(root Root) http.Handler {
	return WithHeaders(http.FileServer(http.Dir(root)))
}

// Listen binds a TCP socket on addr. Any failure is a *BindError.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}
	return ln, nil
}

// Serve accepts connections on ln and dispatches them to h until ctx is
// done. It then stops accepting, waits briefly for in-flight requests, and
// releases ln. A shutdown caused by ctx returns nil.
//
// onShutdown hooks run when shutdown begins; hijacked connections such as
// websockets are not tracked by the server and must be closed there.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, onShutdown ...func()) error {
	srv := &http.Server{Handler: h}
	for _, f := range onShutdown {
		srv.RegisterOnShutdown(f)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		srv.Close()
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
