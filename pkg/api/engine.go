package api

import "context"

// Engine registers flows by name, runs them, and keeps run reports.
type Engine interface {
	// RegisterFlow registers a flow under its name.
	// Registering a second flow with the same name is an error.
	RegisterFlow(f *Flow) error

	// Run executes a registered flow against the given initial state
	// (nil starts empty) and returns the run report. The report is
	// returned even when the run fails, alongside the failure.
	Run(ctx context.Context, name string, initial State) (*RunReport, error)

	// GetReport looks up a run report by ID.
	// Returns ErrReportNotFound if no such run exists.
	GetReport(ctx context.Context, id string) (*RunReport, error)

	// ListReports returns run reports matching the given options.
	// If options are zero-valued, all reports are returned.
	ListReports(ctx context.Context, opts ReportListOptions) ([]*RunReport, error)
}

// StateStore persists named shared-state snapshots, typically the initial
// state a flow is launched with or the final state it leaves behind.
type StateStore interface {
	// SaveState stores a snapshot under name, replacing any previous one.
	SaveState(ctx context.Context, name string, state State) error

	// LoadState returns the snapshot stored under name.
	LoadState(ctx context.Context, name string) (State, error)

	// ListStates returns the names of all stored snapshots.
	ListStates(ctx context.Context) ([]string, error)

	// DeleteState removes the snapshot stored under name. It is a no-op
	// if no such snapshot exists.
	DeleteState(ctx context.Context, name string) error
}
