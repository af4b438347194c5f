// Command autochess plays engine-versus-engine games, archives them, and
// exports PGN and board images.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hailam/autochess/internal/board"
	"github.com/hailam/autochess/internal/engine"
	"github.com/hailam/autochess/internal/game"
	"github.com/hailam/autochess/internal/record"
	"github.com/hailam/autochess/internal/render"
	"github.com/hailam/autochess/internal/storage"
)

var (
	depth      = flag.Int("depth", engine.DifficultySettings[engine.Hard], "plies searched past each candidate move, for both sides")
	seed       = flag.Int64("seed", 0, "random seed for tie-breaking (0 picks one from the clock)")
	games      = flag.Int("games", 1, "number of games to play")
	maxPlies   = flag.Int("maxplies", game.DefaultMaxPlies, "stop a game after this many plies (0 for no limit)")
	fen        = flag.String("fen", "", "start from this position instead of the initial one")
	dbDir      = flag.String("db", "", "archive directory (default: the data directory; \"-\" disables the archive)")
	pngPath    = flag.String("png", "", "write the final position of each game to this PNG file")
	pgnPath    = flag.String("pgn", "", "append each game to this PGN file")
	perft      = flag.Int("perft", 0, "print perft counts to this depth and exit")
	stats      = flag.Bool("stats", false, "print archive statistics and exit")
	unicode    = flag.Bool("unicode", false, "draw pieces as unicode glyphs")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	start := board.NewSetup()
	if *fen != "" {
		s, err := board.ParseFEN(*fen)
		if err != nil {
			log.Fatal(err)
		}
		start = s
	}

	if *perft > 0 {
		runPerft(start, *perft)
		return
	}

	var store *storage.Storage
	if *dbDir != "-" {
		var err error
		if *dbDir == "" {
			store, err = storage.NewStorage()
		} else {
			store, err = storage.Open(*dbDir)
		}
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer store.Close()
	}

	if *stats {
		if store == nil {
			log.Fatal("-stats needs an archive")
		}
		if err := printStats(store); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("Seed %d, depth %d", *seed, *depth)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for i := 0; i < *games; i++ {
		if err := playGame(ctx, store, start, i); err != nil {
			log.Printf("Game %d: %v", i+1, err)
			if ctx.Err() != nil {
				break
			}
		}
	}
}

// runPerft prints the move count below each root move and the total for
// every depth up to maxDepth.
func runPerft(start board.Setup, maxDepth int) {
	eng := engine.NewEngine(rand.New(rand.NewSource(1)), 0)
	b, side := start.Board, start.SideToMove

	fmt.Print(render.Text(b, render.TextOptions{Unicode: *unicode}))
	for d := 1; d <= maxDepth; d++ {
		t := time.Now()
		nodes := eng.Perft(b, side, d)
		fmt.Printf("perft(%d) = %d (%v)\n", d, nodes, time.Since(t).Round(time.Millisecond))
	}

	divide := eng.Divide(b, side, maxDepth)
	moves := maps.Keys(divide)
	slices.Sort(moves)
	for _, m := range moves {
		fmt.Printf("%s: %d\n", m, divide[m])
	}
}

func printStats(store *storage.Storage) error {
	st, err := store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Printf("Games played: %d\n", st.GamesPlayed)
	fmt.Printf("White wins:   %d\n", st.WhiteWins)
	fmt.Printf("Black wins:   %d\n", st.BlackWins)
	fmt.Printf("Draws:        %d (%.1f%%)\n", st.Draws, st.DrawRate())
	fmt.Printf("Unfinished:   %d\n", st.Unfinished)
	fmt.Printf("Avg. length:  %.1f plies\n", st.AveragePlies())
	for _, name := range st.Terminations() {
		fmt.Printf("  %-20s %d\n", name, st.ByTermination[name])
	}

	recent, err := store.ListGames(10)
	if err != nil {
		return err
	}
	for _, rec := range recent {
		fmt.Printf("#%d %s %s (%s, %d plies)\n",
			rec.ID, rec.PlayedAt.Format("2006-01-02 15:04"), rec.Result, rec.Termination, rec.Plies())
	}
	return nil
}

func playGame(ctx context.Context, store *storage.Storage, start board.Setup, index int) error {
	gameSeed := *seed + int64(index)
	rng := rand.New(rand.NewSource(gameSeed))
	white := engine.NewEngine(rng, 0)
	black := engine.NewEngine(rng, 0)
	white.SetDepth(*depth)
	black.SetDepth(*depth)

	g := game.FromSetup(start, white, black)
	g.MaxPlies = *maxPlies
	g.OnMove = func(p game.Ply) {
		log.Printf("%3d. %-5s %-6s score %-7s nodes %d",
			p.Number, p.Color, p.UCI, engine.ScoreToString(p.Score), p.Nodes)
	}

	began := time.Now()
	outcome, err := g.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(began)

	final := g.Position().Board
	fmt.Print(render.Text(final, render.TextOptions{
		Unicode:  *unicode,
		Color:    true,
		LastMove: g.LastMove(),
	}))
	log.Printf("Game %d: %v after %d plies in %v", index+1, outcome, len(g.Plies()), elapsed.Round(time.Millisecond))

	tags := record.Tags{
		Event: "autochess self-play",
		Date:  began.Format("2006.01.02"),
		Round: fmt.Sprint(index + 1),
		White: fmt.Sprintf("autochess depth %d", white.Depth()),
		Black: fmt.Sprintf("autochess depth %d", black.Depth()),
	}
	pgn, err := record.PGN(g, tags)
	if err != nil {
		return fmt.Errorf("exporting PGN: %w", err)
	}

	if *pgnPath != "" {
		if err := appendFile(*pgnPath, pgn+"\n"); err != nil {
			return fmt.Errorf("writing PGN: %w", err)
		}
	}

	if *pngPath != "" {
		if err := writePNG(numbered(*pngPath, index), g); err != nil {
			return fmt.Errorf("writing PNG: %w", err)
		}
	}

	if store != nil {
		rec := storage.NewGameRecord(g)
		rec.PlayedAt = began
		rec.Duration = elapsed
		rec.WhiteDepth = white.Depth()
		rec.BlackDepth = black.Depth()
		rec.Seed = gameSeed
		rec.PGN = pgn
		id, err := store.SaveGame(rec)
		if err != nil {
			return err
		}
		log.Printf("Saved game #%d", id)
	}
	return nil
}

func writePNG(path string, g *game.Game) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := render.Options{LastMove: g.LastMove(), Coordinates: true}
	if err := render.PNG(f, g.Position().Board, opts); err != nil {
		return err
	}
	return f.Close()
}

func appendFile(path, data string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(data); err != nil {
		return err
	}
	return f.Close()
}

// numbered inserts the game number before the extension when more than one
// game is played ("final.png" becomes "final-2.png").
func numbered(path string, index int) string {
	if *games <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), index+1, ext)
}
