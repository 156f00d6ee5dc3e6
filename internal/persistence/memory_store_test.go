package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/mkarvo/flowchain/pkg/api"
)

func TestMemoryStore_SaveGetReport(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rep := &api.RunReport{
		ID:     "run-1",
		Flow:   "test-flow",
		Status: api.StatusCompleted,
		Steps:  3,
		State:  api.State{"k": "v"},
	}

	if err := store.SaveReport(ctx, rep); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	got, err := store.GetReport(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if got.Flow != "test-flow" || got.Status != api.StatusCompleted || got.Steps != 3 {
		t.Fatalf("unexpected report: %+v", got)
	}

	// Stored reports are isolated from later caller mutation.
	rep.State["k"] = "changed"
	got2, _ := store.GetReport(ctx, "run-1")
	if got2.State["k"] != "v" {
		t.Fatalf("stored state must not alias the caller's map")
	}
}

func TestMemoryStore_GetReportNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetReport(context.Background(), "nope")
	if !errors.Is(err, api.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestMemoryStore_ListReportsFilters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	seed := []*api.RunReport{
		{ID: "1", Flow: "a", Status: api.StatusCompleted},
		{ID: "2", Flow: "a", Status: api.StatusFailed},
		{ID: "3", Flow: "b", Status: api.StatusCompleted},
	}
	for _, rep := range seed {
		if err := store.SaveReport(ctx, rep); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}
	}

	all, err := store.ListReports(ctx, api.ReportListOptions{})
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 reports, got %d (err=%v)", len(all), err)
	}
	if all[0].ID != "1" || all[2].ID != "3" {
		t.Fatalf("listing must preserve insertion order: %v", all)
	}

	byFlow, _ := store.ListReports(ctx, api.ReportListOptions{FlowName: "a"})
	if len(byFlow) != 2 {
		t.Fatalf("expected 2 reports for flow a, got %d", len(byFlow))
	}

	byBoth, _ := store.ListReports(ctx, api.ReportListOptions{
		FlowName: "a",
		Status:   api.StatusFailed,
	})
	if len(byBoth) != 1 || byBoth[0].ID != "2" {
		t.Fatalf("unexpected filtered listing: %v", byBoth)
	}
}

func TestMemoryStore_StateSnapshots(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SaveState(ctx, "initial", api.State{"n": 1}); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	if err := store.SaveState(ctx, "final", api.State{"n": 2}); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	got, err := store.LoadState(ctx, "initial")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if got["n"] != 1 {
		t.Fatalf("unexpected snapshot: %v", got)
	}

	names, err := store.ListStates(ctx)
	if err != nil {
		t.Fatalf("ListStates failed: %v", err)
	}
	if len(names) != 2 || names[0] != "final" || names[1] != "initial" {
		t.Fatalf("expected sorted names, got %v", names)
	}

	if err := store.DeleteState(ctx, "initial"); err != nil {
		t.Fatalf("DeleteState failed: %v", err)
	}
	if _, err := store.LoadState(ctx, "initial"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound after delete, got %v", err)
	}

	// Deleting a missing snapshot is a no-op.
	if err := store.DeleteState(ctx, "missing"); err != nil {
		t.Fatalf("DeleteState of missing snapshot should be a no-op: %v", err)
	}
}
