package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/okian/bikeshare/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Listener serves a handler on its own goroutine until shut down.
type Listener struct {
	srv    *http.Server
	ln     net.Listener
	done   chan struct{}
	logger logger.Logger
}

// Listen binds addr and starts serving h in the background.
func Listen(ctx context.Context, addr string, h http.Handler) (*Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServe, err)
	}

	l := &Listener{
		srv: &http.Server{
			Handler:           h,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		ln:     ln,
		done:   make(chan struct{}),
		logger: logger.Get().Named("metrics_listener"),
	}

	go func() {
		defer close(l.done)
		l.logger.Info(ctx, "starting metrics listener", logger.String("addr", ln.Addr().String()))
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.Error(ctx, "metrics listener failed", logger.Error(err))
		}
	}()

	return l, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() string { return l.ln.Addr().String() }

// Shutdown stops the listener, waiting for in-flight requests.
func (l *Listener) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	err := l.srv.Shutdown(ctx)
	<-l.done
	if err != nil {
		return fmt.Errorf("shutdown metrics listener: %w", err)
	}
	l.logger.Info(ctx, "metrics listener stopped")
	return nil
}
