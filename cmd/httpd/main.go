package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nczempin/httpd-go-uring/client"
	"github.com/nczempin/httpd-go-uring/server"
	"github.com/nczempin/httpd-go-uring/transport"
)

func main() {
	network := flag.String("network", "tcp", "Listen network: tcp or unix")
	addr := flag.String("addr", "127.0.0.1:4221", "Listen address, or socket path for unix")
	kind := flag.String("transport", "net", "Socket I/O backend: net, iouring or uring")
	badRequest := flag.Bool("bad-request", false, "Answer unparsable requests with 400 instead of closing silently")
	readBuffer := flag.Int("read-buffer", server.DefaultReadBufferSize, "Bytes read per connection")
	level := flag.String("log-level", "info", "Log level")
	get := flag.String("get", "", "Send GET for this path to -addr, print the response and exit")
	flag.Parse()

	logger := newLogger(*level)

	if *get != "" {
		os.Exit(runGet(*network, *addr, *get))
	}

	k, err := transport.ParseKind(*kind)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid -transport")
	}
	if err := transport.CheckKind(k); err != nil {
		logger.Fatal().Err(err).Str("transport", k.String()).Msg("transport unavailable")
	}

	listener, err := transport.Listen(*network, *addr, k)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", *addr).Msg("failed to bind")
	}

	cfg := server.DefaultConfig()
	cfg.ReadBufferSize = *readBuffer
	cfg.BadRequestOnParseError = *badRequest

	srv, err := server.New(listener, cfg, logger)
	if err != nil {
		listener.Close()
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("transport", k.String()).Msg("starting server")
	if err := srv.Serve(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func runGet(network, addr, path string) int {
	resp, err := client.NewHttpClient(network, addr).Get(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Request failed:", err)
		return 1
	}
	fmt.Print(resp.Serialize())
	return 0
}
