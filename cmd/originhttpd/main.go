// Command originhttpd serves a directory tree over raw HTTP/1.1, without
// net/http. Route registration here mirrors
// curol-go-net/cmd/server.go's main() — build a server, register handlers,
// run — generalized from that hand-built GET/POST demo into the full
// built-in route table.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"

	"go.uber.org/zap"

	"github.com/meridianhq/originhttp/internal/config"
	"github.com/meridianhq/originhttp/internal/connio"
	"github.com/meridianhq/originhttp/internal/idgen"
	"github.com/meridianhq/originhttp/internal/logging"
	"github.com/meridianhq/originhttp/internal/router"
	"github.com/meridianhq/originhttp/internal/sandbox"
	"github.com/meridianhq/originhttp/internal/serverpool"
	"github.com/meridianhq/originhttp/internal/wire"
)

func main() {
	directory := flag.String("directory", "", "root directory to serve files from")
	address := flag.String("address", "", "address to listen on, host:port")
	maxConnections := flag.Int("max-connections", 0, "maximum concurrent connections (0 = default)")
	logPath := flag.String("log-path", "", "optional path to a rotating log file")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	overrides := config.Overrides{}
	if *directory != "" {
		overrides["directory"] = *directory
	}
	if *address != "" {
		overrides["address"] = *address
	}
	if *maxConnections > 0 {
		overrides["max_connections"] = *maxConnections
	}
	if *logPath != "" {
		overrides["log_path"] = *logPath
	}
	if *logLevel != "" {
		overrides["log_level"] = *logLevel
	}

	cfg, err := config.Merge(config.Defaults(), overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, "originhttpd:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "originhttpd:", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, LogPath: cfg.LogPath})
	if err != nil {
		fmt.Fprintln(os.Stderr, "originhttpd: building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	box, err := sandbox.New(cfg.Directory)
	if err != nil {
		logger.Fatal("invalid serving directory", zap.String("directory", cfg.Directory), zap.Error(err))
	}

	rt := buildRouter(box)
	pool := serverpool.New(cfg.MaxConnections)
	counter := &idgen.Counter{}

	listener, err := net.Listen(cfg.Network, cfg.Address)
	if err != nil {
		logger.Fatal("listen failed", zap.String("address", cfg.Address), zap.Error(err))
	}
	defer listener.Close()
	logger.Info("server listening", zap.String("address", cfg.Address), zap.String("directory", cfg.Directory))

	for {
		conn, err := listener.Accept()
		if err != nil {
			logger.Error("accept failed", zap.Error(err))
			continue
		}
		go serveConn(conn, rt, pool, cfg, logger, counter)
	}
}

func serveConn(conn net.Conn, rt *router.Router, pool *serverpool.Pool, cfg config.Config, logger *zap.Logger, counter *idgen.Counter) {
	ctx := context.Background()
	if err := pool.Acquire(ctx); err != nil {
		logger.Warn("pool acquire failed", zap.Error(err))
		conn.Close()
		return
	}
	defer pool.Release()

	connio.Handle(conn, rt, cfg.ReadTimeout, cfg.MaxRequestSize, logger, counter)
}

func buildRouter(box *sandbox.Sandbox) *router.Router {
	h := &router.Handlers{Box: box}
	rt := router.New(h.NotFound)

	rt.Handle(wire.GET, "/", h.Root)
	rt.Handle(wire.GET, "/ping", h.Ping)
	rt.Handle(wire.GET, "/echo/{text}", h.Echo)
	rt.Handle(wire.GET, "/user-agent", h.UserAgent)
	rt.Handle(wire.GET, "/chunked/{text}", h.Chunked)
	rt.Handle(wire.GET, "/files/{filename}", h.GetFile)
	rt.Handle(wire.POST, "/files/{filename}", h.PostFile)
	rt.Handle(wire.DELETE, "/files/{filename}", h.DeleteFile)

	return rt
}
