// Package app wires the portal's services together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/do/v2"
	"github.com/surrealdb/surrealdb.go"
	"github.com/vintechs/portal/internal/auth"
	"github.com/vintechs/portal/internal/catalog"
	"github.com/vintechs/portal/internal/config"
	"github.com/vintechs/portal/internal/database"
	"github.com/vintechs/portal/internal/domain"
	"github.com/vintechs/portal/internal/email"
	"github.com/vintechs/portal/internal/handlers"
	"github.com/vintechs/portal/internal/logging"
	"github.com/vintechs/portal/internal/pubsub"
	"github.com/vintechs/portal/internal/rendering"
	"github.com/vintechs/portal/internal/server"
)

// Container lazily builds each service the first time it is needed and
// closes whatever it opened in reverse order.
type Container struct {
	ctx      context.Context
	cfg      config.Provider
	injector do.Injector

	mu      sync.Mutex
	closers []func(context.Context) error
}

// New registers every provider. Nothing is connected until a service is
// resolved.
func New(ctx context.Context, cfg config.Provider) *Container {
	c := &Container{ctx: ctx, cfg: cfg, injector: do.New()}

	do.ProvideValue(c.injector, cfg)
	do.Provide[*slog.Logger](c.injector, c.provideLogger)
	do.Provide[*surrealdb.DB](c.injector, c.provideDB)
	do.Provide[*auth.MemoryProvider](c.injector, c.provideMemoryProvider)
	do.Provide[domain.IdentityProvider](c.injector, c.provideIdentity)
	do.Provide[domain.ProfileRepository](c.injector, c.provideProfiles)
	do.Provide[domain.EmailSender](c.injector, c.provideEmailSender)
	do.Provide[*pubsub.WatermillBridge](c.injector, c.provideBus)
	do.Provide[*catalog.Store](c.injector, c.provideCatalog)
	do.Provide[*server.Server](c.injector, c.provideServer)
	return c
}

// Server resolves the HTTP server with its routes registered.
func (c *Container) Server() (*server.Server, error) {
	return do.Invoke[*server.Server](c.injector)
}

// DB resolves the root database connection.
func (c *Container) DB() (*surrealdb.DB, error) {
	return do.Invoke[*surrealdb.DB](c.injector)
}

// Run starts the background workers and serves HTTP until ctx is done.
func (c *Container) Run(ctx context.Context) error {
	srv, err := c.Server()
	if err != nil {
		return err
	}

	bus := do.MustInvoke[*pubsub.WatermillBridge](c.injector)
	sender := do.MustInvoke[domain.EmailSender](c.injector)
	welcome := email.NewWelcomeSubscriber(sender, c.cfg.GetAppName(), c.cfg.GetAppBaseURL())
	if err := welcome.Start(ctx, bus); err != nil {
		return fmt.Errorf("start welcome emails: %w", err)
	}

	if c.cfg.GetCatalogWatch() && c.cfg.GetCatalogPath() != "" {
		store := do.MustInvoke[*catalog.Store](c.injector)
		if err := store.Watch(ctx); err != nil {
			return fmt.Errorf("watch catalog: %w", err)
		}
	}

	return srv.Start(ctx)
}

// Close releases every opened resource, newest first.
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	closers := slices.Clone(c.closers)
	c.closers = nil
	c.mu.Unlock()

	var errs []error
	for _, closeFn := range slices.Backward(closers) {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Container) onClose(fn func(context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, fn)
}

func (c *Container) provideLogger(do.Injector) (*slog.Logger, error) {
	return logging.New(c.cfg.GetLogFormat(), c.cfg.GetLogLevel()), nil
}

func (c *Container) provideDB(do.Injector) (*surrealdb.DB, error) {
	db, err := database.NewDB(c.ctx, c.cfg)
	if err != nil {
		return nil, err
	}
	c.onClose(func(ctx context.Context) error { return db.Close(ctx) })
	return db, nil
}

func (c *Container) scope() auth.Scope {
	return auth.Scope{
		Namespace: c.cfg.GetDBNs(),
		Database:  c.cfg.GetDBDb(),
		Access:    c.cfg.GetDBAccess(),
	}
}

func (c *Container) provideMemoryProvider(do.Injector) (*auth.MemoryProvider, error) {
	slog.Warn("Using the in-memory identity provider; accounts are lost on restart")
	return auth.NewMemoryProvider([]byte(c.cfg.GetAuthTokenSecret()), c.scope(), c.cfg.GetAuthTokenTTL()), nil
}

func (c *Container) provideIdentity(i do.Injector) (domain.IdentityProvider, error) {
	if c.cfg.GetAuthProvider() == config.AuthProviderMemory {
		memory, err := do.Invoke[*auth.MemoryProvider](i)
		if err != nil {
			return nil, err
		}
		return memory, nil
	}

	conn, err := database.Dial(c.ctx, c.cfg.GetDBURL(), database.NewRetryer())
	if err != nil {
		return nil, fmt.Errorf("access connection: %w", err)
	}
	verifier := auth.NewTokenVerifier([]byte(c.cfg.GetAuthTokenSecret()), c.scope())
	provider := database.NewSurrealIdentityProvider(conn, c.cfg.GetDBNs(), c.cfg.GetDBDb(), c.cfg.GetDBAccess(), verifier)
	c.onClose(provider.Close)
	return provider, nil
}

func (c *Container) provideProfiles(i do.Injector) (domain.ProfileRepository, error) {
	if c.cfg.GetAuthProvider() == config.AuthProviderMemory {
		memory, err := do.Invoke[*auth.MemoryProvider](i)
		if err != nil {
			return nil, err
		}
		return memory, nil
	}
	db, err := do.Invoke[*surrealdb.DB](i)
	if err != nil {
		return nil, err
	}
	return database.NewProfileStore(db, c.cfg.GetDBQueryTimeout()), nil
}

func (c *Container) provideEmailSender(do.Injector) (domain.EmailSender, error) {
	return email.NewSender(c.cfg)
}

func (c *Container) provideBus(do.Injector) (*pubsub.WatermillBridge, error) {
	bus := pubsub.NewWatermillBridge()
	c.onClose(func(context.Context) error { return bus.Close() })
	return bus, nil
}

func (c *Container) provideCatalog(i do.Injector) (*catalog.Store, error) {
	logger, err := do.Invoke[*slog.Logger](i)
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(c.cfg.GetCatalogPath(), logger)
}

func (c *Container) provideServer(i do.Injector) (*server.Server, error) {
	identity, err := do.Invoke[domain.IdentityProvider](i)
	if err != nil {
		return nil, err
	}
	profiles, err := do.Invoke[domain.ProfileRepository](i)
	if err != nil {
		return nil, err
	}
	store, err := do.Invoke[*catalog.Store](i)
	if err != nil {
		return nil, err
	}
	bus, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return nil, err
	}

	var ping handlers.Pinger
	if c.cfg.GetAuthProvider() == config.AuthProviderSurreal {
		db, err := do.Invoke[*surrealdb.DB](i)
		if err != nil {
			return nil, err
		}
		ping = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	srv, err := server.New(server.Dependencies{
		Config:    c.cfg,
		Identity:  identity,
		Profiles:  profiles,
		Catalog:   store,
		Publisher: bus,
		Renderer:  rendering.NewUniversalRenderer(),
		Ping:      ping,
	})
	if err != nil {
		return nil, err
	}
	srv.RegisterRoutes()
	return srv, nil
}
