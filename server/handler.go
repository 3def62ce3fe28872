package server

import (
	stderrors "errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/nczempin/httpd-go-uring/errors"
	"github.com/nczempin/httpd-go-uring/protocol"
	"github.com/nczempin/httpd-go-uring/router"
	"github.com/nczempin/httpd-go-uring/transport"
)

// RouteFunc picks the response for a parsed request
type RouteFunc func(*protocol.HttpRequest) (*protocol.HttpResponse, error)

// Handler runs the read, parse, route, write exchange for one connection
type Handler struct {
	config Config
	route  RouteFunc
	logger zerolog.Logger
}

// NewHandler creates a handler dispatching through router.Route
func NewHandler(cfg Config, logger zerolog.Logger) (*Handler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Handler{
		config: cfg,
		route:  router.Route,
		logger: logger,
	}, nil
}

// Handle performs exactly one read and at most one write on conn. It does
// not close conn. The returned error is whatever ended the exchange
// without a response being written; it has already been logged.
func (h *Handler) Handle(conn transport.Conn) error {
	log := h.logger.With().Str("remote", conn.RemoteAddr()).Logger()

	buf := make([]byte, h.config.ReadBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read request")
		return err
	}
	if n == 0 {
		err := errors.NewTransportError(errors.TransportErrorConnectionClosed, "empty read", nil)
		log.Debug().Err(err).Msg("nothing to answer")
		return err
	}

	resp, err := h.respond(decodeLossy(buf[:n]), log)
	if err != nil {
		log.Debug().Err(err).Msg("dropping connection without response")
		return err
	}

	written, err := conn.Write(resp.Bytes())
	if err != nil {
		log.Warn().Err(err).Int("bytes", written).Msg("failed to write response")
		return err
	}

	log.Debug().
		Uint16("status", resp.StatusLine.StatusCode).
		Int("bytes", written).
		Msg("response written")
	return nil
}

// respond turns raw request text into a response
func (h *Handler) respond(raw string, log zerolog.Logger) (*protocol.HttpResponse, error) {
	req, err := protocol.ParseRequest(raw)
	if err != nil {
		var httpErr *errors.HttpError
		if h.config.BadRequestOnParseError && stderrors.As(err, &httpErr) && httpErr.Type == errors.ErrorRequest {
			return protocol.BuildResponse(protocol.StatusBadRequest, nil, "")
		}
		return nil, err
	}

	log.Debug().
		Str("method", req.StartLine.Method.String()).
		Str("path", req.StartLine.Target.Path).
		Msg("request parsed")

	return h.route(req)
}

// decodeLossy converts data to a string, replacing every byte that does
// not start a valid UTF-8 sequence with U+FFFD.
func decodeLossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		b.WriteRune(r)
		data = data[size:]
	}
	return b.String()
}
