package http_ll

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// StopOnSignal runs a background process that listens for operating system
// signals and shuts down every server passed in when a signal is received.
func StopOnSignal(servers ...*Server) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func(s []*Server) {
		sig := <-signals
		zap.L().Info(sig.String() + " signal caught, stopping servers")

		for _, server := range s {
			server.Stop()
		}
	}(servers)
}

// WaitForSignal calls StopOnSignal and waits.
func WaitForSignal(servers ...*Server) {
	StopOnSignal(servers...)
	for _, s := range servers {
		s.Wait()
	}
}

// ServerOption is a configuration option used when constructing a Server
type ServerOption func(s *Server)

// IdleTimeout sets the server's IdleTimeout.
func IdleTimeout(t time.Duration) ServerOption {
	return func(s *Server) {
		s.Server.IdleTimeout = t
	}
}

// ReadTimeout sets the server's ReadTimeout.
func ReadTimeout(t time.Duration) ServerOption {
	return func(s *Server) {
		s.Server.ReadTimeout = t
	}
}

// WriteTimeout sets the server's WriteTimeout.
func WriteTimeout(t time.Duration) ServerOption {
	return func(s *Server) {
		s.Server.WriteTimeout = t
	}
}

// NewServer constructs a web server listening on listen. The server shuts
// down gracefully, waiting for open requests to complete or time out.
func NewServer(listen string, handler http.Handler, options ...ServerOption) *Server {
	s := &Server{
		Server: &http.Server{
			Addr:           listen,
			Handler:        handler,
			MaxHeaderBytes: 1 << 20,
		},
		close: make(chan struct{}),
		done:  make(chan struct{}),
	}
	for i := range options {
		options[i](s)
	}
	return s
}

// Server supports graceful exits and multiple servers per application.
type Server struct {
	*http.Server

	ln   net.Listener
	once sync.Once
	// close triggers a graceful shutdown of the server.
	close chan struct{}
	// done is closed once the server has completed shutting down.
	done chan struct{}
}

// Close the server. Will try to gracefully shutdown, but if the server takes
// longer than shutdownTimeout to stop, forcibly shuts it down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return s.Server.Close()
	}
	return nil
}

// Start binds the listen address and serves in the background. Binding
// errors are returned, everything after is logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Server.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		<-s.close
		if err := s.Close(); err != nil {
			zap.L().Error("failed to close http server", zap.Error(err))
		}
	}()

	go func() {
		defer close(s.done)
		if err := s.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("http server stopped unexpectedly", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.Server.Addr
}

// Stop the HTTP server gracefully. It returns immediately, call Wait to
// block until the server has shut down.
func (s *Server) Stop() {
	s.once.Do(func() {
		close(s.close)
	})
}

// Wait for the server to shutdown.
func (s *Server) Wait() {
	<-s.done
}
