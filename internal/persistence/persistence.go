package persistence

import (
	"context"
	"errors"

	"github.com/mkarvo/flowchain/pkg/api"
)

// ErrStateNotFound is returned when a named state snapshot is not found.
var ErrStateNotFound = errors.New("state snapshot not found")

// ReportStore handles storage of run reports.
type ReportStore interface {
	SaveReport(ctx context.Context, rep *api.RunReport) error
	GetReport(ctx context.Context, id string) (*api.RunReport, error)
	ListReports(ctx context.Context, opts api.ReportListOptions) ([]*api.RunReport, error)
}
