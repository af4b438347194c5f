package storage

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hailam/autochess/internal/board"
	"github.com/hailam/autochess/internal/engine"
	"github.com/hailam/autochess/internal/game"
)

func testRecord(result, termination string, plies int) *GameRecord {
	moves := make([]string, plies)
	for i := range moves {
		moves[i] = "e2e4"
	}
	return &GameRecord{
		PlayedAt:    time.Now(),
		Duration:    time.Second,
		StartFEN:    board.StartFEN,
		Moves:       moves,
		Result:      result,
		Termination: termination,
	}
}

func TestStorage(t *testing.T) {
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	defer s.Close()

	t.Run("EmptyStats", func(t *testing.T) {
		stats, err := s.LoadStats()
		if err != nil {
			t.Fatal(err)
		}
		if stats.GamesPlayed != 0 || stats.DrawRate() != 0 || stats.AveragePlies() != 0 {
			t.Errorf("Expected empty stats, got %+v", stats)
		}
	})

	records := []*GameRecord{
		testRecord("1-0", "checkmate", 31),
		testRecord("1/2-1/2", "stalemate", 80),
		testRecord("1/2-1/2", "fivefold repetition", 40),
		testRecord("*", "ply limit", 500),
	}
	for i, rec := range records {
		id, err := s.SaveGame(rec)
		if err != nil {
			t.Fatalf("SaveGame: %v", err)
		}
		if id != uint64(i+1) || rec.ID != id {
			t.Errorf("game %d got id %d (record %d)", i, id, rec.ID)
		}
	}

	t.Run("LoadGame", func(t *testing.T) {
		rec, err := s.LoadGame(2)
		if err != nil {
			t.Fatal(err)
		}
		if rec.Termination != "stalemate" || rec.Plies() != 80 {
			t.Errorf("loaded %+v", rec)
		}
		if _, err := rec.Setup(); err != nil {
			t.Errorf("stored FEN does not parse: %v", err)
		}

		if _, err := s.LoadGame(99); !errors.Is(err, ErrGameNotFound) {
			t.Errorf("LoadGame(99) error = %v, want ErrGameNotFound", err)
		}
	})

	t.Run("ListGames", func(t *testing.T) {
		all, err := s.ListGames(0)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 4 {
			t.Fatalf("expected 4 games, got %d", len(all))
		}
		for i, rec := range all {
			if rec.ID != uint64(i+1) {
				t.Errorf("game %d has id %d", i, rec.ID)
			}
		}

		recent, err := s.ListGames(2)
		if err != nil {
			t.Fatal(err)
		}
		if len(recent) != 2 || recent[0].ID != 3 || recent[1].ID != 4 {
			t.Errorf("ListGames(2) returned the wrong games")
		}
	})

	t.Run("Stats", func(t *testing.T) {
		stats, err := s.LoadStats()
		if err != nil {
			t.Fatal(err)
		}
		if stats.GamesPlayed != 4 || stats.WhiteWins != 1 || stats.BlackWins != 0 || stats.Draws != 2 || stats.Unfinished != 1 {
			t.Errorf("unexpected stats %+v", stats)
		}
		if stats.DrawRate() != 50 {
			t.Errorf("Expected 50%% draw rate, got %.2f%%", stats.DrawRate())
		}
		if stats.TotalPlies != 651 || stats.TotalPlayTime != 4*time.Second {
			t.Errorf("totals: %d plies, %v", stats.TotalPlies, stats.TotalPlayTime)
		}

		want := []string{"checkmate", "fivefold repetition", "ply limit", "stalemate"}
		got := stats.Terminations()
		if len(got) != len(want) {
			t.Fatalf("Terminations() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Terminations() = %v, want %v", got, want)
				break
			}
		}
	})
}

func TestGameRecordFromGame(t *testing.T) {
	eng := engine.NewEngine(rand.New(rand.NewSource(9)), 0)
	eng.SetDifficulty(engine.Easy)
	g := game.New(eng, eng)
	g.MaxPlies = 10
	for g.Step() {
	}

	rec := NewGameRecord(g)
	if rec.Plies() != 10 || rec.Result != "*" || rec.Termination != "ply limit" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.StartFEN != board.StartFEN || rec.FinalFEN == board.StartFEN {
		t.Errorf("FENs: start %q final %q", rec.StartFEN, rec.FinalFEN)
	}
	if rec.Nodes == 0 {
		t.Error("node count should be collected from the plies")
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveGame(testRecord("0-1", "checkmate", 12)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	rec, err := s.LoadGame(1)
	if err != nil {
		t.Fatalf("game lost after reopening: %v", err)
	}
	if rec.Result != "0-1" {
		t.Errorf("Result = %q", rec.Result)
	}

	id, err := s.SaveGame(testRecord("1-0", "checkmate", 20))
	if err != nil {
		t.Fatal(err)
	}
	if id <= 1 {
		t.Errorf("ids must not be reused, got %d", id)
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 2 || stats.WhiteWins != 1 || stats.BlackWins != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestDataPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv(DataDirEnv, dir)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != dir {
		t.Errorf("GetDataDir = %q, want %q", dataDir, dir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}

	// Verify directory exists
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}

	t.Logf("Database directory: %s", dbDir)
}
