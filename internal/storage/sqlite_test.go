package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRuns(t *testing.T, store *Store, runs ...Run) {
	t.Helper()
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{GameID: "pinball", Score: 42}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	// Migrations are a no-op the second time
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestScore("pinball")
	if err != nil || best != 42 {
		t.Errorf("BestScore after reopen = %d, %v", best, err)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	run, err := store.SaveRun(Run{GameID: "pinball", Player: "alice", Score: 1230, Frames: 5400, Duration: 90})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(run.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", run.RunID, err)
	}
	if run.ID == 0 || run.Timestep != "fixed" {
		t.Errorf("Unexpected saved run: %+v", run)
	}

	got, err := store.RunByID(run.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if got.Player != "alice" || got.Score != 1230 || got.Frames != 5400 || got.Duration != 90 {
		t.Errorf("Round trip mismatch: %+v", got)
	}

	missing, err := store.RunByID("no-such-run")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v", missing, err)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("pinball")
	if err != nil || best != 0 {
		t.Errorf("BestScore on empty table = %d, %v", best, err)
	}

	saveRuns(t, store,
		Run{GameID: "pinball", Score: 100},
		Run{GameID: "pinball", Score: 300},
		Run{GameID: "pinball_sandbox", Score: 900},
	)

	best, err = store.BestScore("pinball")
	if err != nil || best != 300 {
		t.Errorf("BestScore = %d, %v, want 300", best, err)
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)
	for i := range 5 {
		saveRuns(t, store, Run{GameID: "pinball", Score: (i + 1) * 100})
	}
	saveRuns(t, store, Run{GameID: "pinball_sandbox", Score: 5000})

	top, err := store.TopRuns("pinball", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 || top[0].Score != 500 || top[1].Score != 400 || top[2].Score != 300 {
		t.Errorf("TopRuns = %+v", top)
	}
}

func TestStoreRecentAndPlayerRuns(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store,
		Run{GameID: "pinball", Player: "alice", Score: 0, Timestep: "measured"},
		Run{GameID: "pinball", Player: "bob", Score: 100, Timestep: "measured"},
		Run{GameID: "pinball", Player: "alice", Score: 200, Timestep: "measured"},
		Run{GameID: "pinball_sandbox", Player: "alice", Score: 50},
	)

	recent, err := store.RecentRuns("pinball", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 200 || recent[1].Score != 100 {
		t.Errorf("RecentRuns = %+v", recent)
	}

	alice, err := store.PlayerRuns("pinball", "alice", 0)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(alice) != 2 {
		t.Fatalf("Expected 2 pinball runs for alice, got %d", len(alice))
	}
	for _, r := range alice {
		if r.Player != "alice" || r.GameID != "pinball" || r.Timestep != "measured" {
			t.Errorf("Unexpected run: %+v", r)
		}
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store,
		Run{GameID: "pinball", Score: 100},
		Run{GameID: "pinball", Score: 200},
		Run{GameID: "pinball_sandbox", Score: 300},
	)

	n, err := store.ClearRuns("pinball")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearRuns removed %d runs, want 2", n)
	}

	if runs, _ := store.TopRuns("pinball", 10); len(runs) != 0 {
		t.Errorf("Expected no pinball runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("pinball_sandbox", 10); len(runs) != 1 {
		t.Error("Sandbox runs should not be affected by clearing pinball")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store,
		Run{GameID: "pinball", Score: 100, Frames: 600},
		Run{GameID: "pinball", Score: 300, Frames: 1200},
		Run{GameID: "pinball_sandbox", Score: 50},
	)

	stats, err := store.Stats("pinball")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 300 || stats.AvgScore != 200 || stats.TotalFrames != 1800 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.Stats("nothing")
	if err != nil {
		t.Fatalf("Stats(empty) failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected empty stats: %+v", empty)
	}
}
