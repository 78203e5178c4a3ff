package engine

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

const (
	scoreInf  = 1_000_000
	kingValue = 10000

	maxPly = 32

	historyMax = 500_000
)

// Engine 单线程搜索引擎。
// 置换表跨调用保留；杀手表和历史表每次 FindBestMove 重置。
// 一个 Engine 同一时刻只能跑一次搜索，棋盘在搜索期间被独占，
// 返回时保证逐位还原（哈希、子数、王位缓存全部一致）。
type Engine struct {
	tt *transTable

	board *xiangqi.Board
	cfg   SearchConfig

	killers [maxPly][2]xiangqi.Move
	history [2][xiangqi.NumSquares][xiangqi.NumSquares]int32

	// 每层一条走法缓冲，避免热递归里反复分配
	moveBufs [maxPly][]xiangqi.Move

	nodes     int64
	lastDepth int

	startTime time.Time
	aborted   bool
	stop      atomic.Bool

	rng *rand.Rand
}

func NewEngine() *Engine {
	e := &Engine{
		tt:  newTransTable(),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for i := range e.moveBufs {
		e.moveBufs[i] = make([]xiangqi.Move, 0, 64)
	}
	return e
}

// Abort 让当前搜索在下一次节点计数检查时退出。
// 跨 goroutine 调用安全（只写一个标志位）。
func (e *Engine) Abort() {
	e.stop.Store(true)
}

// Nodes 上一次搜索的节点数
func (e *Engine) Nodes() int64 { return e.nodes }

// LastIterationDepth 上一次搜索完成的最深迭代
func (e *Engine) LastIterationDepth() int { return e.lastDepth }

// FindBestMove 给 side 找一步棋。无子可走返回 false。
// 迭代加深 + 渴望窗口；超时丢弃未完成的迭代，
// 返回最后一次完整迭代的最佳着法。
func (e *Engine) FindBestMove(b *xiangqi.Board, side xiangqi.Side, cfg SearchConfig) (xiangqi.Move, bool) {
	e.nodes = 0
	e.lastDepth = 0

	moves := b.GenerateAllLegalMoves(side)
	if len(moves) == 0 {
		return xiangqi.Move{}, false
	}
	// 只此一手：不用展开搜索
	if len(moves) == 1 {
		return moves[0], true
	}

	e.board = b
	e.cfg = cfg
	e.aborted = false
	e.stop.Store(false)
	e.startTime = time.Now()
	e.tt.nextAge()
	for i := range e.killers {
		e.killers[i][0] = xiangqi.Move{}
		e.killers[i][1] = xiangqi.Move{}
	}
	for s := range e.history {
		for f := range e.history[s] {
			for t := range e.history[s][f] {
				e.history[s][f][t] = 0
			}
		}
	}

	best := moves[0]
	prevScore := 0
	completed := 0

	for depth := 1; depth <= cfg.Depth; depth++ {
		alpha, beta := -scoreInf, scoreInf
		if depth >= 4 && completed > 0 && abs(prevScore) < 9000 {
			alpha, beta = prevScore-50, prevScore+50
		}

		score, mv, ok := e.searchRoot(side, depth, alpha, beta, best)
		if !ok {
			break
		}
		if score <= alpha || score >= beta {
			// 渴望窗口失败：全窗口重搜
			score, mv, ok = e.searchRoot(side, depth, -scoreInf, scoreInf, best)
			if !ok {
				break
			}
		}

		best = mv
		prevScore = score
		completed = depth
		e.lastDepth = depth

		if cfg.TimeLimit > 0 && time.Since(e.startTime) > cfg.TimeLimit*60/100 {
			break
		}
	}

	if cfg.Randomness > 0 {
		best = e.randomizedPick(side, moves, cfg.Randomness)
	}
	return best, true
}

// randomizedPick 低难度用：所有根走法重新按一层深度打分并加抖动，取最高。
// 抖动加在浅层分上而不是全深度分上（保持原有可见行为，见 DESIGN.md）。
func (e *Engine) randomizedPick(side xiangqi.Side, moves []xiangqi.Move, randomness int) xiangqi.Move {
	opp := xiangqi.Opposite(side)
	best := moves[0]
	bestScore := -scoreInf
	for _, mv := range moves {
		rec := e.board.MakeMove(mv)
		score := -Evaluate(e.board, opp)
		e.board.Unmake(rec)
		score += e.rng.Intn(2*randomness+1) - randomness
		if score > bestScore {
			bestScore = score
			best = mv
		}
	}
	return best
}

// checkTimeout 每 4096 个节点看一次墙钟和外部中止标志
func (e *Engine) checkTimeout() bool {
	if e.aborted {
		return true
	}
	if e.nodes&4095 == 0 {
		if e.stop.Load() {
			e.aborted = true
		} else if e.cfg.TimeLimit > 0 && time.Since(e.startTime) > e.cfg.TimeLimit {
			e.aborted = true
		}
	}
	return e.aborted
}
