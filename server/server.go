package server

import (
	"context"
	stderrors "errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nczempin/httpd-go-uring/transport"
)

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Server accepts connections and runs one exchange on each, concurrently
type Server struct {
	listener transport.Listener
	handler  *Handler
	logger   zerolog.Logger
	wg       sync.WaitGroup
}

// New creates a server on an already open listener
func New(listener transport.Listener, cfg Config, logger zerolog.Logger) (*Server, error) {
	handler, err := NewHandler(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		handler:  handler,
		logger:   logger,
	}, nil
}

// Serve accepts until ctx is cancelled or the listener is closed, then
// waits for in-flight exchanges. Other accept errors are logged and
// retried after a growing delay.
func (s *Server) Serve(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			s.listener.Close()
		case <-stop:
		}
	}()

	s.logger.Info().Str("addr", s.listener.Addr().String()).Msg("accepting connections")

	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if stderrors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				s.wg.Wait()
				s.logger.Info().Msg("listener closed")
				return nil
			}

			// Back off on repeated failures such as EMFILE.
			if delay == 0 {
				delay = minAcceptDelay
			} else if delay *= 2; delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			s.logger.Error().Err(err).Dur("retry_in", delay).Msg("error accepting a connection")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
			continue
		}
		delay = 0

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(conn)
		}()
	}
}

// Close stops accepting new connections
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) serveConn(conn transport.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Warn().Err(err).Str("remote", conn.RemoteAddr()).Msg("failed to close connection")
		}
	}()

	// The error has been logged by the handler and ends only this exchange.
	_ = s.handler.Handle(conn)
}
