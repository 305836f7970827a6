package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nibolas/internal/registry"
	"github.com/vovakirdan/nibolas/internal/storage"
)

func boardStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, score := range []int{100, 40} {
		if _, err := store.RecordRun("meteors", score); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	return store
}

func boardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb
}

func TestScoreboardRows(t *testing.T) {
	levels := []registry.GameInfo{{ID: "meteors", Title: "Meteors"}, {ID: "towers", Title: "Towers"}}
	m := newScoreboard(boardStore(t), levels, 100, 40)

	rows := m.levelRows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 level rows, got %d", len(rows))
	}
	if got := rows[0][:4]; got[0] != "Meteors" || got[1] != "100" || got[2] != "2" || got[3] != "70.0" {
		t.Errorf("meteors row = %v", rows[0])
	}
	if rows[0][4] != "just now" {
		t.Errorf("last flown = %q, expected just now", rows[0][4])
	}
	if got := rows[1]; got[1] != "-" || got[2] != "0" || got[4] != "never" {
		t.Errorf("unplayed level row = %v", got)
	}

	runs := m.runRows()
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0][1] != "100" || runs[0][2] != "best" {
		t.Errorf("first run = %v", runs[0])
	}
	if runs[1][1] != "40" || runs[1][2] != "40%" {
		t.Errorf("second run = %v", runs[1])
	}
}

func TestScoreboardSelectsLevel(t *testing.T) {
	levels := []registry.GameInfo{{ID: "meteors", Title: "Meteors"}, {ID: "towers", Title: "Towers"}}
	m := newScoreboard(boardStore(t), levels, 100, 40)

	m = boardUpdate(t, m, keyMsg("j"))
	if m.selected != 1 {
		t.Fatalf("down should select the second level, got %d", m.selected)
	}
	if len(m.runs) != 0 {
		t.Errorf("towers has no runs, got %d", len(m.runs))
	}

	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.runsFocus {
		t.Fatal("tab should focus the runs table")
	}
	m = boardUpdate(t, m, keyMsg("k"))
	if m.selected != 1 {
		t.Error("keys on the runs table should not change the level")
	}

	m = boardUpdate(t, m, keyMsg("b"))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back without quitting")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := newScoreboard(nil, []registry.GameInfo{{ID: "meteors", Title: "Meteors"}}, 60, 20)
	if rows := m.levelRows(); rows[0][4] != "never" {
		t.Errorf("level without a store should be unplayed, got %v", rows[0])
	}
	if m.View() == "" {
		t.Error("empty board should still render")
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at       time.Time
		expected string
	}{
		{time.Time{}, "-"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-50 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		if got := ago(now, tt.at); got != tt.expected {
			t.Errorf("ago(%v) = %q, expected %q", tt.at, got, tt.expected)
		}
	}
}

func TestOfBest(t *testing.T) {
	tests := []struct {
		score, best int
		expected    string
	}{
		{10, 0, "-"},
		{50, 50, "best"},
		{60, 50, "best"},
		{25, 50, "50%"},
	}
	for _, tt := range tests {
		if got := ofBest(tt.score, tt.best); got != tt.expected {
			t.Errorf("ofBest(%d, %d) = %q, expected %q", tt.score, tt.best, got, tt.expected)
		}
	}
}
