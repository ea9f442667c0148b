//
// Articles
// ========
// A REST service for fact-checked articles stored in MongoDB.
//
// Pass -routes to print the route documentation:
// `go run . -routes`
//
// Boot the server:
// ----------------
// $ ARTICLES_JWT_SECRET=changeme go run . -mongo_uri mongodb://localhost:27017
//
// or without a database:
// $ ARTICLES_JWT_SECRET=changeme go run . -store memory
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/articles?page=1&perPage=2
// [{"id":"65f1...","addedBy":"65e0...","text":"...","sourceType":"article","language":"cz",...}]
//
// $ curl -X POST -H "Authorization: Bearer $TOKEN" -d '{"text":"x","sourceType":"tv"}' http://localhost:3333/articles
// {"id":"65f2...","addedBy":"<token subject>","text":"x","sourceType":"tv","language":"cz",...}
//
// $ curl -X PATCH -H "Authorization: Bearer $TOKEN" -d '{"text":"y"}' http://localhost:3333/articles/65f2...
//
// $ curl -X DELETE -H "Authorization: Bearer $TOKEN" http://localhost:3333/articles/65f2...
// (204, empty body)
//
// $ curl http://localhost:3333/articles/65f2...
// {"status":"Not Found","error":"Article does not exist"}
//
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyParamoshkin/articles/internal/article"
	"github.com/SergeyParamoshkin/articles/internal/auth"
	"github.com/SergeyParamoshkin/articles/internal/config"
	"github.com/SergeyParamoshkin/articles/internal/db"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/SergeyParamoshkin/articles/internal/metrics"
	"github.com/SergeyParamoshkin/articles/internal/router"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("articles stopped", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, sugar *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Routes {
		r := router.New(router.Options{
			Logger: sugar,
			Repo:   article.NewRepository(article.NewMemoryStore()),
			Auth:   auth.New(cfg.JWTSecret),
		})
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/articles",
			Intro:       "Routes of the articles service.",
		}))

		return nil
	}

	store, closeStore, err := openStore(ctx, cfg, sugar)
	if err != nil {
		return err
	}
	defer closeStore()

	m, err := metrics.New(config.ServiceName)
	if err != nil {
		return err
	}

	r := router.New(router.Options{
		Logger:    sugar,
		Repo:      article.NewRepository(store),
		Auth:      auth.New(cfg.JWTSecret),
		Metrics:   m,
		AccessLog: true,
	})

	diagRouter := chi.NewRouter()
	diagRouter.Method(http.MethodGet, "/metrics", m.Handler())

	servers := []*http.Server{
		{Addr: cfg.Addr, Handler: r},
		{Addr: cfg.DiagAddr, Handler: diagRouter},
	}

	errc := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		go func() {
			sugar.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		sugar.Infow("shutting down")
	case err = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			sugar.Errorw("shutdown", "addr", srv.Addr, "error", serr)
		}
	}

	return err
}

func openStore(ctx context.Context, cfg config.Config, sugar *zap.SugaredLogger) (article.Store, func(), error) {
	if cfg.Store == config.StoreMemory {
		sugar.Warnw("using the in-memory store, articles are lost on exit")

		return article.NewMemoryStore(), func() {}, nil
	}

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			sugar.Errorw("disconnect mongo", "error", err)
		}
	}

	store := article.NewMongoStore(client.Database(cfg.MongoDatabase), cfg.StoreTimeout)
	if err := store.EnsureIndexes(ctx); err != nil {
		closeFn()

		return nil, nil, err
	}
	sugar.Infow("connected to mongo", "database", cfg.MongoDatabase)

	return store, closeFn, nil
}
