package flowchain

import (
	"context"
	"database/sql"

	"github.com/mkarvo/flowchain/internal/engine"
	"github.com/mkarvo/flowchain/internal/persistence"
	"github.com/mkarvo/flowchain/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	State                = api.State
	Action               = api.Action
	NamedAction          = api.NamedAction
	Node                 = api.Node
	Flow                 = api.Flow
	ParallelAction       = api.ParallelAction
	ChildFailure         = api.ChildFailure
	Engine               = api.Engine
	StateStore           = api.StateStore
	RunReport            = api.RunReport
	ReportListOptions    = api.ReportListOptions
	Status               = api.Status
	Observer             = api.Observer
	NoopObserver         = api.NoopObserver
	CompositeObserver    = api.CompositeObserver
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	DeadEndError         = api.DeadEndError
	ActionError          = api.ActionError
)

// Re-export constructors and helpers.

var (
	NewAction            = api.NewAction
	ActionName           = api.ActionName
	NewNode              = api.NewNode
	NewStart             = api.NewStart
	NewEnd               = api.NewEnd
	NewFlow              = api.NewFlow
	Parallel             = api.Parallel
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
)

// Re-export status values for convenience.

const (
	StatusPending   = api.StatusPending
	StatusRunning   = api.StatusRunning
	StatusCompleted = api.StatusCompleted
	StatusFailed    = api.StatusFailed

	ActionDefault      = api.ActionDefault
	DefaultParallelKey = api.DefaultParallelKey
)

// Re-export sentinel errors.

var (
	ErrFlowNotFound      = api.ErrFlowNotFound
	ErrReportNotFound    = api.ErrReportNotFound
	ErrNoEntryEdge       = api.ErrNoEntryEdge
	ErrMaxStepsExceeded  = api.ErrMaxStepsExceeded
	ErrStateNotFound     = persistence.ErrStateNotFound
	ErrUnsupportedFormat = persistence.ErrUnsupportedFormat
)

// Engine constructors
// These wrap the internal/engine package so external callers
// never need to import internal packages.

// NewInMemoryEngine returns an Engine that keeps run reports in memory.
func NewInMemoryEngine() Engine {
	return engine.NewInMemoryEngine()
}

// NewInMemoryEngineWithObserver returns an in-memory Engine with the given Observer.
func NewInMemoryEngineWithObserver(obs Observer) Engine {
	return engine.NewInMemoryEngineWithObserver(obs)
}

// NewSQLiteEngine returns an Engine that persists run reports in a SQLite
// database. Flow definitions are kept in-memory.
func NewSQLiteEngine(db *sql.DB) (Engine, error) {
	return engine.NewSQLiteEngine(db)
}

// NewSQLiteEngineWithObserver returns a SQLite-backed Engine with the given Observer.
func NewSQLiteEngineWithObserver(db *sql.DB, obs Observer) (Engine, error) {
	return engine.NewSQLiteEngineWithObserver(db, obs)
}

// State store constructors.

// NewMemoryStateStore returns a non-durable StateStore backed by a map.
func NewMemoryStateStore() StateStore {
	return persistence.NewMemoryStore()
}

// NewSQLiteStateStore returns a StateStore that persists named snapshots
// in a SQLite database.
func NewSQLiteStateStore(db *sql.DB) (StateStore, error) {
	return persistence.NewSQLiteStore(db)
}

// State file helpers.

// LoadStateFile reads a shared-state mapping from a JSON or YAML file,
// chosen by extension. Unsupported extensions fail with
// ErrUnsupportedFormat.
func LoadStateFile(path string) (State, error) {
	return persistence.LoadStateFile(path)
}

// SaveStateFile writes a shared-state mapping to a JSON or YAML file,
// creating parent directories as needed.
func SaveStateFile(path string, state State) error {
	return persistence.SaveStateFile(path, state)
}

// Convenience helpers that just forward to the underlying Engine.

// Run runs a registered flow synchronously.
func Run(ctx context.Context, eng Engine, name string, initial State) (*RunReport, error) {
	return eng.Run(ctx, name, initial)
}

// GetReport fetches a run report by ID.
func GetReport(ctx context.Context, eng Engine, id string) (*RunReport, error) {
	return eng.GetReport(ctx, id)
}

// ListReports lists run reports according to the given options.
func ListReports(ctx context.Context, eng Engine, opts ReportListOptions) ([]*RunReport, error) {
	return eng.ListReports(ctx, opts)
}
