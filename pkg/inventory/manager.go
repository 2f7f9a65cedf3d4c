// Package inventory owns the property dataset and the spatial index built
// over it: loading records from a backing source, validating them, and
// swapping in a freshly built index without blocking readers.
package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hbracken/fedlease/pkg/logging"
	"github.com/hbracken/fedlease/pkg/metrics"
	"github.com/hbracken/fedlease/pkg/property"
	"github.com/hbracken/fedlease/pkg/rtree"
)

// Loader fetches the full property inventory from a backing source. Loads
// run off the query path, once per refresh.
type Loader interface {
	Load(ctx context.Context) ([]*property.FederalProperty, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]*property.FederalProperty, error)

func (f LoaderFunc) Load(ctx context.Context) ([]*property.FederalProperty, error) {
	return f(ctx)
}

// Manager owns the index lifecycle: build once at startup, serve reads,
// rebuild on refresh, all behind one RWMutex-guarded pointer swap. Readers
// holding an index from Index() keep a consistent snapshot even while a
// rebuild is in flight.
type Manager struct {
	cfg    rtree.Config
	loader Loader
	logger logging.Logger

	reg *metrics.Registry

	mu          sync.RWMutex
	index       *rtree.RTree
	byID        map[string]*property.FederalProperty
	lastRefresh time.Time
}

// NewManager creates a Manager. The index is empty until Build runs.
func NewManager(cfg rtree.Config, loader Loader, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Manager{
		cfg:    cfg,
		loader: loader,
		logger: logger.With(logging.Component("inventory")),
	}
}

// SetMetrics attaches a metrics registry. Optional; nil disables recording.
func (m *Manager) SetMetrics(reg *metrics.Registry) {
	m.reg = reg
}

// Build loads the inventory, validates it, bulk-loads a new index, and
// swaps it in. Invalid records are dropped with a warning, not fatal.
func (m *Manager) Build(ctx context.Context) error {
	start := time.Now()
	timer := logging.StartTimer(m.logger, "index build")

	props, err := m.loader.Load(ctx)
	if err != nil {
		timer.EndError(err)
		m.recordBuild("error", time.Since(start), 0)
		return fmt.Errorf("inventory load: %w", err)
	}

	valid, errs := property.ValidateAll(props)
	if len(errs) > 0 {
		m.logger.Warn("dropped invalid property records",
			logging.Int("dropped", len(errs)),
			logging.Error(errs[0]),
		)
	}

	tree, err := rtree.New(m.cfg)
	if err != nil {
		timer.EndError(err)
		m.recordBuild("error", time.Since(start), 0)
		return fmt.Errorf("index config: %w", err)
	}
	tree.BulkLoad(valid)

	byID := make(map[string]*property.FederalProperty, len(valid))
	for _, p := range valid {
		byID[p.ID] = p
	}

	m.mu.Lock()
	m.index = tree
	m.byID = byID
	m.lastRefresh = time.Now()
	m.mu.Unlock()

	timer.End()
	m.logger.Info("index ready", logging.PropertyCount(tree.Size()))
	m.recordBuild("success", time.Since(start), tree.Size())
	return nil
}

// Refresh rebuilds the index from the loader. Identical to Build; named
// separately so call sites read correctly.
func (m *Manager) Refresh(ctx context.Context) error {
	return m.Build(ctx)
}

// Index returns the current index, or nil before the first Build.
func (m *Manager) Index() *rtree.RTree {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index
}

// Size returns the number of indexed properties, 0 before the first Build.
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.index == nil {
		return 0
	}
	return m.index.Size()
}

// Get returns a property by ID, or nil if absent or before the first Build.
func (m *Manager) Get(id string) *property.FederalProperty {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byID[id]
}

// LastRefresh returns the time of the last successful build.
func (m *Manager) LastRefresh() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRefresh
}

// Run rebuilds the index every interval until ctx is cancelled. A failed
// refresh keeps serving the previous index.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.Refresh(ctx); err != nil {
				m.logger.Error("scheduled refresh failed", logging.Error(err))
			}
		}
	}
}

func (m *Manager) recordBuild(status string, d time.Duration, count int) {
	if m.reg != nil {
		mode := "bulk"
		if !m.cfg.BulkLoad {
			mode = "incremental"
		}
		m.reg.RecordIndexBuild(mode, status, d, count)
	}
}
