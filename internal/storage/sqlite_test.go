package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenCreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{Mode: "survival", Score: 100, Wave: 3, DurationSecs: 80},
		{Mode: "survival", Score: 50, Wave: 2, DurationSecs: 40},
		{Mode: "survival", Score: 200, Wave: 5, DurationSecs: 150, ClampEvents: 2},
		{Mode: "zen", Score: 500, Wave: 9, DurationSecs: 600},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.TopRuns("survival", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(got))
	}

	// Sorted by score descending.
	if got[0].Score != 200 || got[1].Score != 100 || got[2].Score != 50 {
		t.Errorf("Runs not in score order: %v", got)
	}
	if got[0].Wave != 5 || got[0].ClampEvents != 2 {
		t.Errorf("Diagnostics not round-tripped: %+v", got[0])
	}

	zen, err := store.TopRuns("zen", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(zen) != 1 {
		t.Errorf("Expected 1 zen run, got %d", len(zen))
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{Mode: "survival", Score: (i + 1) * 100})
	}

	got, err := store.TopRuns("survival", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(got))
	}
	if got[0].Score != 500 || got[1].Score != 400 || got[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", got)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("survival")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	store.SaveRun(RunRecord{Mode: "survival", Score: 100})
	store.SaveRun(RunRecord{Mode: "survival", Score: 300})
	store.SaveRun(RunRecord{Mode: "survival", Score: 200})

	high, err = store.HighScore("survival")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Mode: "survival", Score: 100})
	store.SaveRun(RunRecord{Mode: "survival", Score: 200})
	store.SaveRun(RunRecord{Mode: "zen", Score: 300})

	if err := store.ClearRuns("survival"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	survival, _ := store.TopRuns("survival", 10)
	if len(survival) != 0 {
		t.Errorf("Expected 0 survival runs after clear, got %d", len(survival))
	}
	zen, _ := store.TopRuns("zen", 10)
	if len(zen) != 1 {
		t.Error("Zen runs should not be affected by clearing survival")
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Mode: "survival", Score: 100, Wave: 2})
	store.SaveRun(RunRecord{Mode: "survival", Score: 300, Wave: 6})

	stats, err := store.GetModeStats("survival")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.RunCount != 2 {
		t.Errorf("RunCount = %d, expected 2", stats.RunCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.BestWave != 6 {
		t.Errorf("BestWave = %d, expected 6", stats.BestWave)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not recorded")
	}
}
