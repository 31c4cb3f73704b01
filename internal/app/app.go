// Package app wires the storefront core together: one shared cart store, one
// shared favorites store and a product list machine, all explicitly
// constructed here and handed to consumers by reference.
package app

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/storekit/shopcore/internal/cart"
	"github.com/storekit/shopcore/internal/catalog"
	"github.com/storekit/shopcore/internal/domain/product"
	"github.com/storekit/shopcore/internal/favorites"
	"github.com/storekit/shopcore/internal/kv"
	"github.com/storekit/shopcore/internal/productlist"
	"github.com/storekit/shopcore/pkg/httpclient"
)

// App bundles the single shared store instances for the process lifetime.
type App struct {
	Cart      *cart.Store
	Favorites *favorites.Store
	Products  *productlist.Machine

	close func()
}

// Close releases storage resources held by the app.
func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

// New constructs the shared services from cfg: the favorites storage backend,
// the instrumented catalog client and the three stores.
func New(ctx context.Context, lg *zap.Logger, cfg *Config) (*App, error) {
	storage, closeStorage, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, errors.Wrap(err, "create storage")
	}

	client := catalog.NewHTTPClient(
		cfg.CatalogBaseURL,
		httpclient.New(cfg.HTTPTimeout, cfg.UserAgent),
	)

	return &App{
		Cart:      cart.NewStore(),
		Favorites: favorites.NewStore(storage, lg.Named("favorites")),
		Products:  productlist.NewMachine(client, lg.Named("productlist")),
		close:     closeStorage,
	}, nil
}

// Run constructs the app, loads persisted state, triggers the initial catalog
// fetch and blocks until the context is cancelled.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("catalog", cfg.CatalogBaseURL),
		zap.String("storage", cfg.Storage.Backend),
	)

	a, err := New(ctx, lg, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Cart.Subscribe(func(snap cart.Snapshot) {
		lg.Debug("Cart updated",
			zap.Int("lines", len(snap.Items)),
			zap.Int("count", snap.ItemCount),
			zap.String("total", snap.TotalPrice.StringFixed(2)),
		)
	})
	a.Favorites.Subscribe(func(items []product.Product) {
		lg.Debug("Favorites updated", zap.Int("count", len(items)))
	})
	a.Products.OnStateChanged(func(state productlist.LoadingState) {
		lg.Info("Loading state changed", zap.Stringer("state", state))
	})

	// Warm up: restore favorites and kick off the first catalog fetch.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Favorites.Load(gctx)
		return nil
	})
	g.Go(func() error {
		a.Products.FetchProducts(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "warm up")
	}

	lg.Info("Ready", zap.Int("favorites", a.Favorites.Count()))
	<-ctx.Done()
	lg.Info("Shutting down")
	return nil
}

// newStorage builds the configured favorites storage backend and returns a
// cleanup function for backends holding connections.
func newStorage(ctx context.Context, cfg StorageConfig) (kv.Store, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case "memory":
		return kv.NewMemory(), noop, nil

	case "file":
		store, err := kv.NewFile(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, errors.Wrap(err, "ping redis")
		}
		return kv.NewRedis(client), func() { _ = client.Close() }, nil

	case "postgres":
		pool, err := kv.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := kv.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv.NewPostgres(pool), pool.Close, nil

	default:
		return nil, nil, errors.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
