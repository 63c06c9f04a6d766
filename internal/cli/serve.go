package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitegen/internal/server"
	"github.com/goliatone/go-sitegen/internal/store/sqlite"
	"github.com/goliatone/go-sitegen/internal/watch"
	"github.com/goliatone/go-sitegen/pkg/orchestrator"
	"github.com/goliatone/go-sitegen/pkg/submit"
	"github.com/goliatone/go-sitegen/pkg/wiring"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendered page and accept contact submissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFor(cmd, flags)
			if err != nil {
				return err
			}
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Server.Watch = watch
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	c.Flags().BoolVar(&watch, "watch", false, "rebuild when data or template files change")
	return c
}

func (a *app) serve(ctx context.Context) error {
	endpoint, closeStore, err := a.endpoint()
	if err != nil {
		return err
	}
	defer closeStore()

	orch, err := a.orchestrator(orchestrator.WithWiringOptions(
		wiring.WithScriptURL("/assets/"+wiring.RuntimeScript),
		wiring.WithStylesheetURL("/assets/"+wiring.RuntimeStyles),
	))
	if err != nil {
		return err
	}

	options := []server.Option{
		server.WithLogger(a.logger),
		server.WithStaticFS(os.DirFS(dirOf(a.templatePath()))),
	}
	if endpoint != nil {
		options = append(options, server.WithEndpoint(endpoint))
	}
	if dir := a.dataDir(); dir != "" {
		options = append(options, server.WithDataFS(os.DirFS(dir)))
	}
	srv := server.New(func(ctx context.Context) (orchestrator.Result, error) {
		return a.generate(ctx, orch)
	}, options...)

	if err := srv.Rebuild(ctx); err != nil {
		return err
	}

	if a.cfg.Server.Watch {
		targets := []string{a.templatePath()}
		if dir := a.dataDir(); dir != "" {
			targets = append(targets, dir)
		}
		watcher := watch.New(targets, watch.WithLogger(a.logger))
		changes, err := watcher.Watch(ctx)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		defer watcher.Close()
		go srv.Watch(ctx, changes)
	}

	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	a.styles.ok(a.stdout, "serving on %s", a.cfg.Server.Addr)
	if endpoint != nil {
		a.styles.field(a.stdout, "contact", string(endpoint.Kind()))
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

// endpoint builds the configured contact endpoint. The returned close func
// releases the local store and is always safe to call.
func (a *app) endpoint() (submit.Endpoint, func(), error) {
	noop := func() {}
	if !a.cfg.SubmitEnabled() {
		return nil, noop, nil
	}
	cfg, err := a.cfg.SubmitConfig()
	if err != nil {
		return nil, noop, err
	}

	var store submit.Store
	closeStore := noop
	if cfg.Kind == submit.KindLocal {
		db, err := sqlite.Open(a.databasePath())
		if err != nil {
			return nil, noop, err
		}
		store = db
		closeStore = func() {
			if err := db.Close(); err != nil {
				a.logger.Warn("close submissions store", "error", err)
			}
		}
	}

	endpoint, err := submit.New(cfg, store)
	if err != nil {
		closeStore()
		return nil, noop, err
	}
	return endpoint, closeStore, nil
}

func (a *app) databasePath() string {
	path := a.cfg.Submit.Database
	if path == "" {
		path = filepath.Join(".sitegen", sqlite.DefaultFileName)
	}
	return a.resolve(path)
}
