package flowchain

import (
	"database/sql"

	"github.com/mkarvo/flowchain/internal/engine"
	"github.com/mkarvo/flowchain/internal/persistence"
)

// Bundle wires together an Engine and a StateStore sharing the same
// backing storage.
type Bundle struct {
	Engine Engine
	States StateStore
}

// NewSQLiteBundle constructs a durable Engine + StateStore combo sharing
// the same SQLite database. Run reports and named state snapshots are
// persisted in the provided *sql.DB.
//
// Typical usage:
//
//	db, _ := sql.Open("sqlite", "file:flows.db?_journal=WAL")
//	bundle, err := flowchain.NewSQLiteBundle(db, nil)
//	// register flows on bundle.Engine
//	// load/save initial and final states via bundle.States
func NewSQLiteBundle(db *sql.DB, obs Observer) (*Bundle, error) {
	store, err := persistence.NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}

	eng := engine.NewEngineWithConfig(engine.Config{
		Reports:  store,
		Observer: obs,
	})

	return &Bundle{
		Engine: eng,
		States: store,
	}, nil
}
