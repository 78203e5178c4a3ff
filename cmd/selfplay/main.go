// 自对弈驱动：批量跑引擎对局，棋谱和统计落库，顺带量一下 NPS。
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/google/uuid"

	"github.com/nan786521/chinese-chess/internal/engine"
	"github.com/nan786521/chinese-chess/internal/storage"
	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

const maxGameMoves = 400 // 防止死循环

func main() {
	games := flag.Int("games", 1, "number of games to play")
	redLevel := flag.String("red", "medium", "red difficulty")
	blackLevel := flag.String("black", "medium", "black difficulty")
	dbDir := flag.String("db", "", "badger directory (empty = default data dir)")
	record := flag.Bool("record", true, "persist finished games")
	bench := flag.Bool("bench", false, "run fixed-position benchmark instead of games")
	benchDepth := flag.Int("bench-depth", 6, "benchmark search depth")
	pprofAddr := flag.String("pprof", "localhost:6060", "pprof listen address (empty = off)")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", *pprofAddr)
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	if *bench {
		runBenchmark(*benchDepth)
		return
	}

	redCfg, ok := engine.ParseDifficulty(*redLevel)
	if !ok {
		log.Fatalf("unknown difficulty %q", *redLevel)
	}
	blackCfg, ok := engine.ParseDifficulty(*blackLevel)
	if !ok {
		log.Fatalf("unknown difficulty %q", *blackLevel)
	}

	var store *storage.Storage
	if *record {
		var err error
		store, err = storage.Open(*dbDir)
		if err != nil {
			log.Fatalf("open storage: %v", err)
		}
		defer store.Close()
	}

	for g := 0; g < *games; g++ {
		log.Printf("=== game %d/%d: red[%s] vs black[%s] ===", g+1, *games, redCfg, blackCfg)
		rec := playGame(redCfg, blackCfg)
		log.Printf("result: %s, %d moves, %d nodes, %v", rec.Result, len(rec.Moves), rec.Nodes, rec.Duration)

		if store != nil {
			if err := store.SaveGame(rec); err != nil {
				log.Fatalf("save game: %v", err)
			}
		}
	}

	if store != nil {
		stats, err := store.LoadStats()
		if err != nil {
			log.Fatalf("load stats: %v", err)
		}
		fmt.Printf("\ntotals: %d games, red %d / black %d / draws %d, %d nodes in %v\n",
			stats.GamesPlayed, stats.RedWins, stats.BlackWins, stats.Draws,
			stats.TotalNodes, stats.TotalTime)
	}
}

func playGame(redLevel, blackLevel engine.Difficulty) *storage.GameRecord {
	b := xiangqi.NewBoard()
	b.SetupInitialPosition()
	e := engine.NewEngine()

	rec := &storage.GameRecord{
		ID:         uuid.NewString(),
		Variant:    "xiangqi",
		RedLevel:   redLevel.String(),
		BlackLevel: blackLevel.String(),
		PlayedAt:   time.Now(),
	}
	start := time.Now()
	side := xiangqi.Red
	result := "draw"

	for len(rec.Moves) < maxGameMoves {
		cfg := engine.ConfigFor(redLevel)
		if side == xiangqi.Black {
			cfg = engine.ConfigFor(blackLevel)
		}

		mv, ok := e.FindBestMove(b, side, cfg)
		rec.Nodes += e.Nodes()
		if !ok {
			// 无子可走即负
			if side == xiangqi.Red {
				result = "black"
			} else {
				result = "red"
			}
			break
		}

		b.MakeMove(mv)
		rec.Moves = append(rec.Moves, mv)
		side = xiangqi.Opposite(side)

		switch b.GameStatus(side) {
		case xiangqi.StatusRedWins:
			result = "red"
		case xiangqi.StatusBlackWins:
			result = "black"
		default:
			continue
		}
		break
	}

	rec.Result = result
	rec.Duration = time.Since(start)
	return rec
}
