package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("meteors", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("meteors", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("meteors", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different level
	_, err = store.SaveScore("towers", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for meteors
	scores, err := store.TopScores("meteors", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for towers
	towerScores, err := store.TopScores("towers", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(towerScores) != 1 {
		t.Errorf("Expected 1 towers score, got %d", len(towerScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("meteors")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for an unplayed level, got %d", high)
	}

	// Add scores
	store.SaveScore("meteors", 100)
	store.SaveScore("meteors", 300)
	store.SaveScore("meteors", 200)

	high, err = store.HighScore("meteors")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("meteors", 100)
	store.SaveScore("meteors", 200)
	store.SaveScore("towers", 300)

	// Clear only meteors scores
	err = store.ClearScores("meteors")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Meteors should be empty
	meteorScores, _ := store.TopScores("meteors", 10)
	if len(meteorScores) != 0 {
		t.Errorf("Expected 0 meteors scores after clear, got %d", len(meteorScores))
	}

	// Towers should still have scores
	towerScores, _ := store.TopScores("towers", 10)
	if len(towerScores) != 1 {
		t.Errorf("Towers scores should not be affected by clearing meteors")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetLevelStats("meteors")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unplayed level should have empty stats, got %+v", empty)
	}

	for _, score := range []int{10, 20, 30} {
		if _, err := store.SaveScore("meteors", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("towers", 5)

	stats, err := store.GetLevelStats("meteors")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.RunsCount != 3 || stats.HighScore != 30 || stats.TotalScore != 60 || stats.AvgScore != 20 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 || all["towers"].HighScore != 5 {
		t.Errorf("unexpected stats for all levels: %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.nibolas/nibolas.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".nibolas", "nibolas.db"); got != want {
		t.Errorf("ExpandPath() = %q, expected %q", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute paths should be unchanged, got %q", got)
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
