package engine

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/mkarvo/flowchain/internal/persistence"
	"github.com/mkarvo/flowchain/pkg/api"
)

// engineImpl is a simple, synchronous, in-process engine implementation.
type engineImpl struct {
	mu    sync.RWMutex
	flows map[string]*api.Flow

	reports  persistence.ReportStore
	observer api.Observer
}

// Config describes how to construct an engineImpl.
// Only used inside this package; external callers use the helper functions.
type Config struct {
	Reports  persistence.ReportStore
	Observer api.Observer
}

// NewInMemoryEngine returns an Engine that keeps run reports in memory.
func NewInMemoryEngine() api.Engine {
	return NewEngineWithConfig(Config{Reports: persistence.NewMemoryStore()})
}

// NewInMemoryEngineWithObserver returns an in-memory Engine with the given
// Observer.
func NewInMemoryEngineWithObserver(obs api.Observer) api.Engine {
	return NewEngineWithConfig(Config{
		Reports:  persistence.NewMemoryStore(),
		Observer: obs,
	})
}

// NewSQLiteEngine returns an Engine that persists run reports in a SQLite
// database. Flow definitions are kept in-memory; they hold Go functions
// and cannot be stored.
func NewSQLiteEngine(db *sql.DB) (api.Engine, error) {
	store, err := persistence.NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}
	return NewEngineWithConfig(Config{Reports: store}), nil
}

// NewSQLiteEngineWithObserver returns a SQLite-backed Engine with the given
// Observer.
func NewSQLiteEngineWithObserver(db *sql.DB, obs api.Observer) (api.Engine, error) {
	store, err := persistence.NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}
	return NewEngineWithConfig(Config{Reports: store, Observer: obs}), nil
}

// NewEngineWithConfig creates a new Engine using the given configuration.
func NewEngineWithConfig(cfg Config) api.Engine {
	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}
	reports := cfg.Reports
	if reports == nil {
		reports = persistence.NewMemoryStore()
	}
	return &engineImpl{
		flows:    make(map[string]*api.Flow),
		reports:  reports,
		observer: obs,
	}
}

func (e *engineImpl) RegisterFlow(f *api.Flow) error {
	if f == nil {
		return fmt.Errorf("flowchain: cannot register nil flow")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.flows[f.Name()]; exists {
		return fmt.Errorf("flow %q already registered", f.Name())
	}
	e.flows[f.Name()] = f
	return nil
}

func (e *engineImpl) Run(ctx context.Context, name string, initial api.State) (*api.RunReport, error) {
	e.mu.RLock()
	f, ok := e.flows[name]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", api.ErrFlowNotFound, name)
	}

	rep := f.RunWith(ctx, initial, e.observer)

	if err := e.reports.SaveReport(ctx, rep); err != nil {
		return rep, fmt.Errorf("save report: %w", err)
	}
	return rep, rep.Err
}

func (e *engineImpl) GetReport(ctx context.Context, id string) (*api.RunReport, error) {
	return e.reports.GetReport(ctx, id)
}

func (e *engineImpl) ListReports(ctx context.Context, opts api.ReportListOptions) ([]*api.RunReport, error) {
	return e.reports.ListReports(ctx, opts)
}
