package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hbracken/fedlease/pkg/api"
	"github.com/hbracken/fedlease/pkg/config"
	"github.com/hbracken/fedlease/pkg/inventory"
	"github.com/hbracken/fedlease/pkg/logging"
	"github.com/hbracken/fedlease/pkg/metrics"
	"github.com/hbracken/fedlease/pkg/property"
	"github.com/hbracken/fedlease/pkg/rtree"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	demo := flag.Bool("demo", false, "Serve a synthetic dataset instead of loading real data")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Log.Level))

	logger.Info("fedlease server starting",
		logging.Int("port", cfg.Server.Port),
		logging.Duration("refresh_interval", cfg.Index.RefreshInterval.Std()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader, closeLoader, err := buildLoader(ctx, cfg, logger, *demo)
	if err != nil {
		logger.Error("no usable data source", logging.Error(err))
		os.Exit(1)
	}
	if closeLoader != nil {
		defer closeLoader()
	}

	indexCfg := rtree.Config{
		MinEntries: cfg.Index.MinEntries,
		MaxEntries: cfg.Index.MaxEntries,
		BulkLoad:   cfg.Index.BulkLoad,
	}
	mgr := inventory.NewManager(indexCfg, loader, logger)
	mgr.SetMetrics(metrics.DefaultRegistry())

	if err := mgr.Build(ctx); err != nil {
		logger.Error("initial index build failed", logging.Error(err))
		os.Exit(1)
	}
	logger.Info("property index ready", logging.PropertyCount(mgr.Size()))

	if interval := cfg.Index.RefreshInterval.Std(); interval > 0 {
		go mgr.Run(ctx, interval)
	}

	srv, err := api.NewServer(cfg, mgr, logger)
	if err != nil {
		logger.Error("server setup failed", logging.Error(err))
		os.Exit(1)
	}

	gs := api.NewGracefulServer(srv.HTTPServer(), logger, cfg.Server.ShutdownTimeout.Std())
	if err := gs.Start(); err != nil {
		logger.Error("server error", logging.Error(err))
		os.Exit(1)
	}
}

// buildLoader picks a data source in priority order: Postgres, S3, then
// the newest local snapshot. Remote loads are wrapped so each successful
// refresh also writes a snapshot for cold starts.
func buildLoader(ctx context.Context, cfg *config.Config, logger logging.Logger, demo bool) (inventory.Loader, func(), error) {
	if demo {
		logger.Info("using synthetic demo dataset")
		return inventory.LoaderFunc(func(context.Context) ([]*property.FederalProperty, error) {
			return syntheticProperties(5000), nil
		}), nil, nil
	}

	store, err := inventory.NewSnapshotStore(cfg.Data.SnapshotDir)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot dir: %w", err)
	}

	if cfg.Data.PostgresURL != "" {
		pg, err := inventory.NewPGLoader(ctx, cfg.Data.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		logger.Info("loading inventory from postgres")
		return snapshotting(pg, store, logger), func() { pg.Close() }, nil
	}

	if cfg.Data.S3Bucket != "" {
		s3l, err := inventory.NewS3Loader(ctx, cfg.Data.S3Bucket, cfg.Data.S3Key, cfg.Data.S3Region)
		if err != nil {
			return nil, nil, fmt.Errorf("s3: %w", err)
		}
		logger.Info("loading inventory from s3",
			logging.String("bucket", cfg.Data.S3Bucket),
			logging.String("key", cfg.Data.S3Key),
		)
		return snapshotting(s3l, store, logger), nil, nil
	}

	if _, err := store.Latest(); err == nil {
		logger.Info("loading inventory from local snapshot",
			logging.Path(cfg.Data.SnapshotDir))
		return store, nil, nil
	}

	return nil, nil, fmt.Errorf("no data source configured; set DATABASE_URL, FEDLEASE_S3_BUCKET, or run with -demo")
}

// snapshotting wraps a loader so every successful load is also persisted
// as a local snapshot, keeping the three most recent.
func snapshotting(inner inventory.Loader, store *inventory.SnapshotStore, logger logging.Logger) inventory.Loader {
	return inventory.LoaderFunc(func(ctx context.Context) ([]*property.FederalProperty, error) {
		props, err := inner.Load(ctx)
		if err != nil {
			return nil, err
		}
		if id, werr := store.Write(props); werr != nil {
			logger.Warn("snapshot write failed", logging.Error(werr))
		} else {
			logger.Debug("snapshot written", logging.String("snapshot_id", id))
			if perr := store.Prune(3); perr != nil {
				logger.Warn("snapshot prune failed", logging.Error(perr))
			}
		}
		return props, nil
	})
}

// syntheticProperties generates a plausible federal inventory clustered
// around major metro areas, for demos and load testing.
func syntheticProperties(n int) []*property.FederalProperty {
	metros := []struct {
		city, state string
		lat, lng    float64
	}{
		{"Washington", "DC", 38.9072, -77.0369},
		{"New York", "NY", 40.7128, -74.0060},
		{"Chicago", "IL", 41.8781, -87.6298},
		{"Denver", "CO", 39.7392, -104.9903},
		{"Atlanta", "GA", 33.7490, -84.3880},
		{"Kansas City", "MO", 39.0997, -94.5786},
	}
	agencies := []string{"GSA", "DOJ", "DHS", "VA", "USDA", "IRS"}

	rng := rand.New(rand.NewSource(42))
	props := make([]*property.FederalProperty, n)
	for i := range props {
		m := metros[rng.Intn(len(metros))]
		rsf := 10000 + rng.Float64()*190000
		p := &property.FederalProperty{
			ID:               fmt.Sprintf("demo-%05d", i),
			Latitude:         m.lat + (rng.Float64()-0.5)*0.4,
			Longitude:        m.lng + (rng.Float64()-0.5)*0.4,
			RSF:              rsf,
			Ownership:        property.OwnershipLeased,
			Agency:           agencies[rng.Intn(len(agencies))],
			City:             m.city,
			State:            m.state,
			ConstructionYear: 1950 + rng.Intn(70),
		}
		if rng.Float64() < 0.3 {
			p.Ownership = property.OwnershipOwned
		} else {
			exp := time.Now().AddDate(rng.Intn(10), rng.Intn(12), 0)
			p.LeaseExpiration = &exp
		}
		if rng.Float64() < 0.15 {
			p.Vacant = true
			p.VacantRSF = rsf * rng.Float64() * 0.5
		}
		props[i] = p
	}
	return props
}
