package history

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.RecordRun(ctx, Run{
		Operation:       "add",
		InputPath:       "/videos/a.mp4",
		OutputPath:      "/videos/a_subtitled.mp4",
		Language:        "en",
		SubtitleCount:   12,
		DurationSeconds: 95.5,
		CostUSD:         0.0096,
		CreatedAt:       time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("record first: %v", err)
	}
	if first.ID == "" {
		t.Fatal("record must assign an ID")
	}
	if first.Status != StatusCompleted {
		t.Fatalf("default status should be completed, got %q", first.Status)
	}

	second, err := store.RecordRun(ctx, Run{
		Operation:    "extract",
		InputPath:    "/videos/b.mp4",
		Status:       StatusFailed,
		ErrorMessage: "transcription failed",
		CreatedAt:    time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("record second: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID {
		t.Errorf("newest run must come first: %+v", runs[0])
	}
	if runs[1].ID != first.ID {
		t.Errorf("unexpected ordering: %+v", runs)
	}
	if runs[1].SubtitleCount != 12 || runs[1].DurationSeconds != 95.5 {
		t.Errorf("stored fields lost: %+v", runs[1])
	}
	if runs[0].ErrorMessage != "transcription failed" {
		t.Errorf("error message lost: %+v", runs[0])
	}
	if !runs[1].CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("timestamp round trip: got %v want %v", runs[1].CreatedAt, first.CreatedAt)
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := store.RecordRun(ctx, Run{
			Operation: "add",
			InputPath: "/videos/a.mp4",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	runs, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
}

func TestRecordRequiresOperation(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.RecordRun(context.Background(), Run{InputPath: "/a.mp4"}); err == nil {
		t.Fatal("expected error for missing operation")
	}
}

func TestTotalCostSkipsFailedRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, run := range []Run{
		{Operation: "add", CostUSD: 0.01},
		{Operation: "add", CostUSD: 0.02},
		{Operation: "add", CostUSD: 0.99, Status: StatusFailed},
	} {
		if _, err := store.RecordRun(ctx, run); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	total, err := store.TotalCost(ctx)
	if err != nil {
		t.Fatalf("total cost: %v", err)
	}
	if math.Abs(total-0.03) > 1e-9 {
		t.Fatalf("expected 0.03, got %v", total)
	}
}

func TestTotalCostEmptyDatabase(t *testing.T) {
	store := openTestStore(t)
	total, err := store.TotalCost(context.Background())
	if err != nil {
		t.Fatalf("total cost: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0, got %v", total)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.RecordRun(context.Background(), Run{Operation: "add"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected the recorded run to survive reopen, got %d", len(runs))
	}
}
