package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hailam/autochess/internal/board"
	"github.com/hailam/autochess/internal/game"
)

// Storage keys
const (
	keyStats      = "stats"
	keyGameSeq    = "seq/game"
	gameKeyPrefix = "game/"
	seqBandwidth  = 64
)

// ErrGameNotFound is returned when no game has the requested ID.
var ErrGameNotFound = errors.New("storage: game not found")

// GameRecord is an archived game.
type GameRecord struct {
	ID          uint64        `json:"id"`
	PlayedAt    time.Time     `json:"played_at"`
	Duration    time.Duration `json:"duration"`
	StartFEN    string        `json:"start_fen"`
	FinalFEN    string        `json:"final_fen"`
	Moves       []string      `json:"moves"`
	Result      string        `json:"result"`
	Termination string        `json:"termination"`
	Winner      string        `json:"winner,omitempty"`
	WhiteDepth  int           `json:"white_depth"`
	BlackDepth  int           `json:"black_depth"`
	Seed        int64         `json:"seed"`
	Nodes       uint64        `json:"nodes"`
	PGN         string        `json:"pgn,omitempty"`
}

// NewGameRecord builds a record from a finished game. The caller fills in
// the search settings, timing and PGN.
func NewGameRecord(g *game.Game) *GameRecord {
	out := g.Outcome()
	rec := &GameRecord{
		PlayedAt:    time.Now(),
		StartFEN:    g.Start().FEN(),
		FinalFEN:    g.Position().FEN(),
		Moves:       g.Moves(),
		Result:      out.Result(),
		Termination: out.Termination.String(),
	}
	if out.Decisive() {
		rec.Winner = out.Winner.String()
	}
	for _, p := range g.Plies() {
		rec.Nodes += p.Nodes
	}
	return rec
}

// Plies returns the number of half-moves in the game.
func (r *GameRecord) Plies() int {
	return len(r.Moves)
}

// Setup parses the record's starting position.
func (r *GameRecord) Setup() (board.Setup, error) {
	return board.ParseFEN(r.StartFEN)
}

// GameStats stores aggregate statistics over all archived games.
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	Unfinished    int            `json:"unfinished"`
	ByTermination map[string]int `json:"by_termination"`
	TotalPlies    int            `json:"total_plies"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		ByTermination: make(map[string]int),
	}
}

// add folds one game into the statistics.
func (s *GameStats) add(rec *GameRecord) {
	s.GamesPlayed++
	s.TotalPlies += rec.Plies()
	s.TotalPlayTime += rec.Duration
	s.ByTermination[rec.Termination]++

	switch rec.Result {
	case "1-0":
		s.WhiteWins++
	case "0-1":
		s.BlackWins++
	case "1/2-1/2":
		s.Draws++
	default:
		s.Unfinished++
	}
}

// Terminations returns the recorded termination names in sorted order.
func (s *GameStats) Terminations() []string {
	names := maps.Keys(s.ByTermination)
	slices.Sort(names)
	return names
}

// AveragePlies returns the mean game length in plies.
func (s *GameStats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// DrawRate returns the draw rate as a percentage (0-100)
func (s *GameStats) DrawRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.GamesPlayed) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewStorage opens the archive in the default data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the archive stored in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens an archive that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	seq, err := db.GetSequence([]byte(keyGameSeq), seqBandwidth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening game sequence: %w", err)
	}

	return &Storage{db: db, seq: seq}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.seq != nil {
		if err := s.seq.Release(); err != nil {
			s.db.Close()
			return err
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// gameKey returns the key of a game; big-endian IDs keep the keys ordered.
func gameKey(id uint64) []byte {
	key := make([]byte, len(gameKeyPrefix)+8)
	copy(key, gameKeyPrefix)
	binary.BigEndian.PutUint64(key[len(gameKeyPrefix):], id)
	return key
}

// SaveGame archives rec, assigns its ID and updates the statistics in the
// same transaction.
func (s *Storage) SaveGame(rec *GameRecord) (uint64, error) {
	n, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("allocating game id: %w", err)
	}
	rec.ID = n + 1 // Sequences start at 0

	data, err := json.Marshal(rec)
	if err != nil {
		return 0, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.add(rec)

		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set(gameKey(rec.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
	if err != nil {
		return 0, fmt.Errorf("saving game %d: %w", rec.ID, err)
	}
	return rec.ID, nil
}

// LoadGame loads the game with the given ID.
func (s *Storage) LoadGame(id uint64) (*GameRecord, error) {
	var rec GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("loading game %d: %w", id, err)
	}

	return &rec, nil
}

// ListGames returns archived games in ID order. A limit of 0 returns all
// of them; otherwise only the most recent limit games.
func (s *Storage) ListGames(limit int) ([]*GameRecord, error) {
	var games []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gameKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rec := new(GameRecord)
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}

	if limit > 0 && len(games) > limit {
		games = games[len(games)-limit:]
	}
	return games, nil
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	var stats *GameStats

	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})

	return stats, err
}

func loadStats(txn *badger.Txn) (*GameStats, error) {
	stats := NewGameStats()

	item, err := txn.Get([]byte(keyStats))
	if err == badger.ErrKeyNotFound {
		return stats, nil // Use empty stats
	}
	if err != nil {
		return nil, err
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	if stats.ByTermination == nil {
		stats.ByTermination = make(map[string]int)
	}
	return stats, err
}
