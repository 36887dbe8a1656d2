// Command sessiond is a demo HTTP service for the session middleware.
//
// It serves a visit counter with flash messages, cookie login/logout with ID
// rotation and, with TOKENS_ENABLED=true, stateless bearer tokens. The session
// store is picked with SESSION_STORE (memory, redis, mongo or postgres).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/sessionkit/pkg/clientip"
	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/jwt"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func main() {
	cfg := config.MustLoad[appConfig]()

	log, err := logger.NewFromConfig(cfg.Log,
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientIPExtractor),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sessiond:", err)
		os.Exit(1)
	}
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("sessiond stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	backend, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.close()

	a, err := newApp(cfg, backend, log)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, a.routes())
}

func newApp(cfg appConfig, backend *backend, log *slog.Logger) (*app, error) {
	opts := []session.Option{
		session.WithLogger(log.With(logger.Component("session"))),
		session.WithUserResolver(resolveSessionUser),
	}

	var tokens *jwt.Service
	if cfg.TokensEnabled {
		jcfg, err := config.Load[jwt.Config]()
		if err != nil {
			return nil, err
		}
		if tokens, err = jwt.NewFromConfig(jcfg); err != nil {
			return nil, err
		}
		opts = append(opts, session.WithTokenVerifier(tokens.Verifier(resolveTokenUser)))
	}

	return &app{
		sessions: session.NewFromConfig(cfg.Session, backend.store, opts...),
		tokens:   tokens,
		log:      log,
		checks:   backend.checks,
		ipHeader: cfg.Session.IPHeader,
	}, nil
}

func clientIPExtractor(ctx context.Context) (slog.Attr, bool) {
	ip := clientip.GetIPFromContext(ctx)
	if ip == "" {
		return slog.Attr{}, false
	}
	return slog.String("client_ip", ip), true
}
