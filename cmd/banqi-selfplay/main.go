// 暗棋自对弈驱动
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/nan786521/chinese-chess/internal/banqi"
	"github.com/nan786521/chinese-chess/internal/storage"
	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

const maxGameActions = 600

func main() {
	games := flag.Int("games", 1, "number of games to play")
	redLevel := flag.String("red", "medium", "red difficulty")
	blackLevel := flag.String("black", "medium", "black difficulty")
	dbDir := flag.String("db", "", "badger directory (empty = default data dir)")
	record := flag.Bool("record", true, "persist finished games")
	seed := flag.Int64("seed", 0, "shuffle seed (0 = time-based)")
	flag.Parse()

	redDiff := parseLevel(*redLevel)
	blackDiff := parseLevel(*blackLevel)

	var store *storage.Storage
	if *record {
		var err error
		store, err = storage.Open(*dbDir)
		if err != nil {
			log.Fatalf("open storage: %v", err)
		}
		defer store.Close()
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	for g := 0; g < *games; g++ {
		log.Printf("=== banqi game %d/%d ===", g+1, *games)
		rec := playGame(rng, redDiff, blackDiff)
		log.Printf("result: %s, %d actions, %d nodes, %v",
			rec.Result, len(rec.Moves), rec.Nodes, rec.Duration)
		if store != nil {
			if err := store.SaveGame(rec); err != nil {
				log.Fatalf("save game: %v", err)
			}
		}
	}
}

func parseLevel(s string) banqi.Difficulty {
	switch s {
	case "beginner":
		return banqi.Beginner
	case "easy":
		return banqi.Easy
	case "medium":
		return banqi.Medium
	case "hard":
		return banqi.Hard
	}
	log.Fatalf("unknown difficulty %q", s)
	return banqi.Medium
}

func playGame(rng *rand.Rand, redLevel, blackLevel banqi.Difficulty) *storage.GameRecord {
	b := banqi.NewShuffledBoard(rng)
	e := banqi.NewEngine()

	rec := &storage.GameRecord{
		ID:         uuid.NewString(),
		Variant:    "banqi",
		RedLevel:   redLevel.String(),
		BlackLevel: blackLevel.String(),
		PlayedAt:   time.Now(),
	}
	start := time.Now()
	side := xiangqi.Red
	result := "draw"

loop:
	for len(rec.Moves) < maxGameActions {
		switch b.GameStatus(side) {
		case banqi.StatusRedWins:
			result = "red"
			break loop
		case banqi.StatusBlackWins:
			result = "black"
			break loop
		case banqi.StatusDraw:
			break loop
		}

		cfg := banqi.ConfigFor(redLevel)
		if side == xiangqi.Black {
			cfg = banqi.ConfigFor(blackLevel)
		}

		act, ok := e.FindBestAction(b, side, cfg)
		rec.Nodes += e.Nodes()
		if !ok {
			if side == xiangqi.Red {
				result = "black"
			} else {
				result = "red"
			}
			break
		}

		b.Apply(act)
		// 棋谱里翻子记成原地走
		to := act.To
		if act.Flip {
			to = act.From
		}
		rec.Moves = append(rec.Moves, xiangqi.Move{From: act.From, To: to})
		side = xiangqi.Opposite(side)
	}

	rec.Result = result
	rec.Duration = time.Since(start)
	return rec
}
