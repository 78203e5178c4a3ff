package main

import (
	"fmt"
	"log"
	"time"

	"github.com/nan786521/chinese-chess/internal/engine"
	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

// 固定局面的吞吐量测试
var benchPositions = []string{
	"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w",
	"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C4/9/RNBAKABNR b",
	"r1bakabr1/9/1cn3nc1/p1p1p1p1p/9/9/P1P1P1P1P/1CN3NC1/9/R1BAKABR1 w",
	"3aka3/9/4b4/9/9/9/9/4B4/4A4/2R1KA3 w",
}

func runBenchmark(depth int) {
	e := engine.NewEngine()
	cfg := engine.SearchConfig{Depth: depth, QuiescenceDepth: 4, TimeLimit: 60 * time.Second}

	var totalNodes int64
	var totalTime time.Duration

	for i, fen := range benchPositions {
		b, side, err := xiangqi.Decode(fen)
		if err != nil {
			log.Fatalf("bench position %d: %v", i, err)
		}

		start := time.Now()
		mv, ok := e.FindBestMove(b, side, cfg)
		elapsed := time.Since(start)
		if !ok {
			log.Fatalf("bench position %d: no move", i)
		}

		nodes := e.Nodes()
		totalNodes += nodes
		totalTime += elapsed
		fmt.Printf("position %d: move %d->%d, depth %d, %d nodes, %v, %.0f nps\n",
			i+1, mv.From, mv.To, e.LastIterationDepth(), nodes, elapsed,
			float64(nodes)/elapsed.Seconds())
	}

	fmt.Printf("\ntotal: %d nodes in %v, %.0f nps\n",
		totalNodes, totalTime, float64(totalNodes)/totalTime.Seconds())
}
