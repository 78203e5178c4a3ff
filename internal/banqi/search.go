package banqi

import (
	"math/rand"
	"sort"
	"time"

	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

const (
	scoreInf = 1_000_000
	winScore = 100_000

	maxPly = 24

	historyMax = 500_000
)

// 暗棋子力估值：炮远吃、兵能杀将，都比明棋金贵
var pieceValue = [xiangqi.NumPieceTypes + 1]int{
	0,
	5500, // 将
	1600, // 士
	1200, // 相
	1000, // 车
	800,  // 马
	2000, // 炮
	600,  // 兵
}

// Difficulty 暗棋难度档位
type Difficulty int8

const (
	Beginner Difficulty = iota
	Easy
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// SearchConfig MCSamples > 0 时翻子结点改为蒙特卡洛抽样，
// 否则按剩余暗子身份全量枚举加权平均。
type SearchConfig struct {
	Depth           int
	QuiescenceDepth int
	MCSamples       int
}

func ConfigFor(d Difficulty) SearchConfig {
	switch d {
	case Beginner:
		return SearchConfig{Depth: 2, QuiescenceDepth: 2}
	case Easy:
		return SearchConfig{Depth: 3, QuiescenceDepth: 2}
	case Medium:
		return SearchConfig{Depth: 4, QuiescenceDepth: 3}
	case Hard:
		return SearchConfig{Depth: 5, QuiescenceDepth: 3, MCSamples: 32}
	}
	return SearchConfig{Depth: 3, QuiescenceDepth: 2}
}

// Engine 暗棋搜索引擎：走子/吃子子树用 negamax + alpha-beta，
// 翻子结点是机会结点，按暗子身份分布做期望值。
type Engine struct {
	board *Board
	cfg   SearchConfig

	killers [maxPly][2]Action
	history [2][NumCells][NumCells]int32

	nodes int64
	rng   *rand.Rand
}

func NewEngine() *Engine {
	return &Engine{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Nodes 上一次搜索的结点数
func (e *Engine) Nodes() int64 { return e.nodes }

// FindBestAction 给 side 挑一步行动；没有行动返回 false。
func (e *Engine) FindBestAction(b *Board, side xiangqi.Side, cfg SearchConfig) (Action, bool) {
	actions := b.GenerateActions(side)
	if len(actions) == 0 {
		return Action{}, false
	}
	if len(actions) == 1 {
		return actions[0], true
	}

	e.board = b
	e.cfg = cfg
	e.nodes = 0
	for i := range e.killers {
		e.killers[i][0] = Action{}
		e.killers[i][1] = Action{}
	}
	for s := range e.history {
		for f := range e.history[s] {
			for t := range e.history[s][f] {
				e.history[s][f][t] = 0
			}
		}
	}

	e.scoreActions(side, actions, 0)
	sortActions(actions)

	best := actions[0]
	bestScore := -scoreInf
	alpha, beta := -scoreInf, scoreInf

	for _, act := range actions {
		var score int
		if act.Flip {
			score = e.flipValue(side, act.From, cfg.Depth)
		} else {
			rec := b.Apply(act)
			score = -e.negamax(xiangqi.Opposite(side), cfg.Depth-1, 1, -beta, -alpha)
			b.Undo(rec)
		}
		if score > bestScore {
			bestScore = score
			best = act
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, true
}

func (e *Engine) negamax(side xiangqi.Side, depth, ply int, alpha, beta int) int {
	e.nodes++
	b := e.board
	opp := xiangqi.Opposite(side)

	if b.PieceCount(opp) == 0 {
		return winScore + depth
	}
	if b.PieceCount(side) == 0 {
		return -(winScore + depth)
	}
	if b.MoveClock >= DrawMoveLimit {
		return 0
	}
	if depth <= 0 || ply >= maxPly-1 {
		return e.quiesce(side, e.cfg.QuiescenceDepth, ply, alpha, beta)
	}

	actions := b.GenerateActions(side)
	if len(actions) == 0 {
		return -(winScore + depth)
	}
	e.scoreActions(side, actions, ply)
	sortActions(actions)

	bestScore := -scoreInf
	for _, act := range actions {
		var score int
		if act.Flip {
			// 机会结点：期望值没法沿用窗口，整棵子树全窗口算
			score = e.flipValue(side, act.From, depth)
		} else {
			rec := b.Apply(act)
			score = -e.negamax(opp, depth-1, ply+1, -beta, -alpha)
			b.Undo(rec)
		}

		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !act.Flip && b.Cells[act.To].Piece == 0 {
				e.recordCutoff(side, act, ply, depth)
			}
			break
		}
	}
	return bestScore
}

// flipValue 翻开 cell 的期望值。
// 枚举盘上还没翻开的每种 (兵种,颜色) 身份，按剩余张数加权；
// 高难度换成对暗子池的有放回抽样。
func (e *Engine) flipValue(side xiangqi.Side, cell, depth int) int {
	b := e.board
	opp := xiangqi.Opposite(side)
	saved := b.Cells[cell]
	prevClock := b.MoveClock

	var identities []xiangqi.Piece
	counts := make(map[xiangqi.Piece]int)
	total := 0
	for i, cc := range b.Cells {
		if i == cell || cc.Piece == 0 || cc.Revealed {
			continue
		}
		if counts[cc.Piece] == 0 {
			identities = append(identities, cc.Piece)
		}
		counts[cc.Piece]++
		total++
	}
	// 把被翻的这格自己也算进池子：它的身份同样未知
	if counts[saved.Piece] == 0 {
		identities = append(identities, saved.Piece)
	}
	counts[saved.Piece]++
	total++

	eval := func(identity xiangqi.Piece) int {
		// 换成别的身份时，和另一格同身份的暗子对调，双方子力清单不变
		swap := -1
		if identity != saved.Piece {
			for i, cc := range b.Cells {
				if i != cell && !cc.Revealed && cc.Piece == identity {
					swap = i
					break
				}
			}
			b.Cells[swap].Piece = saved.Piece
		}
		b.Cells[cell] = Cell{Piece: identity, Revealed: true}
		b.MoveClock = prevClock + 1
		v := -e.negamax(opp, depth-1, 1, -scoreInf, scoreInf)
		b.Cells[cell] = saved
		if swap >= 0 {
			b.Cells[swap].Piece = identity
		}
		b.MoveClock = prevClock
		return v
	}

	if e.cfg.MCSamples > 0 {
		// 蒙特卡洛：有放回抽样
		sum := 0
		for i := 0; i < e.cfg.MCSamples; i++ {
			n := e.rng.Intn(total)
			var identity xiangqi.Piece
			for _, id := range identities {
				n -= counts[id]
				if n < 0 {
					identity = id
					break
				}
			}
			sum += eval(identity)
		}
		return sum / e.cfg.MCSamples
	}

	// 身份按编码定序，保证同局面同结果
	sort.Slice(identities, func(i, j int) bool { return identities[i] > identities[j] })
	sum := 0
	for _, id := range identities {
		sum += eval(id) * counts[id]
	}
	return sum / total
}

// quiesce 只展开吃子，delta 裁剪 + MVV 排序
func (e *Engine) quiesce(side xiangqi.Side, qDepth, ply int, alpha, beta int) int {
	e.nodes++
	b := e.board
	opp := xiangqi.Opposite(side)

	standPat := Evaluate(b, side)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qDepth <= 0 || ply >= maxPly-1 {
		return alpha
	}

	actions := b.GenerateActions(side)
	var caps []Action
	for _, act := range actions {
		if act.Flip {
			continue
		}
		victim := b.Cells[act.To].Piece
		if victim == 0 {
			continue
		}
		if standPat+pieceValue[victim.Type()]+200 <= alpha {
			continue
		}
		act.Score = pieceValue[victim.Type()]
		caps = append(caps, act)
	}
	if len(caps) == 0 {
		return alpha
	}
	sortActions(caps)

	for _, act := range caps {
		rec := b.Apply(act)
		score := -e.quiesce(opp, qDepth-1, ply+1, -beta, -alpha)
		b.Undo(rec)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// Evaluate 从 side 视角：全部子力（暗子也按面值算）+ 受威胁折价 + 机动力
func Evaluate(b *Board, side xiangqi.Side) int {
	score := 0
	for cell, cc := range b.Cells {
		if cc.Piece == 0 {
			continue
		}
		v := pieceValue[cc.Piece.Type()]
		if cc.Revealed && b.threatened(cell) {
			v -= v / 4
		}
		if cc.Piece.Side() == side {
			score += v
		} else {
			score -= v
		}
	}
	score += 2 * (b.mobility(side) - b.mobility(xiangqi.Opposite(side)))
	return score
}

// threatened 已翻开棋子是否被相邻敌子（或远处敌炮）盯着
func (b *Board) threatened(cell int) bool {
	cc := b.Cells[cell]
	side := cc.Piece.Side()
	row, col := rowOf(cell), colOf(cell)

	for _, d := range orthoDirs {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		adj := b.Cells[indexOf(r, c)]
		if adj.Piece == 0 || !adj.Revealed || adj.Piece.Side() == side {
			continue
		}
		apt := adj.Piece.Type()
		if apt != xiangqi.PieceCannon && CanCapture(apt, cc.Piece.Type()) {
			return true
		}
	}

	// 敌炮隔一子瞄着
	for _, d := range orthoDirs {
		screens := 0
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			other := b.Cells[indexOf(r, c)]
			if other.Piece != 0 {
				if screens == 1 {
					if other.Revealed && other.Piece.Side() != side &&
						other.Piece.Type() == xiangqi.PieceCannon {
						return true
					}
					break
				}
				screens++
			}
			r += d[0]
			c += d[1]
		}
	}
	return false
}

func (b *Board) mobility(side xiangqi.Side) int {
	n := 0
	for cell, cc := range b.Cells {
		if cc.Piece == 0 || !cc.Revealed || cc.Piece.Side() != side {
			continue
		}
		row, col := rowOf(cell), colOf(cell)
		for _, d := range orthoDirs {
			r, c := row+d[0], col+d[1]
			if onBoard(r, c) && b.Cells[indexOf(r, c)].Piece == 0 {
				n++
			}
		}
	}
	return n
}

// 排序分档：吃子(MVV-攻击子价值) > 脱离威胁 > 杀手 > 历史 > 翻子。
// 历史分封顶 historyMax，累积多了会越过杀手和脱离威胁两档；
// 翻子分为 -16×身边敌子数，身边无敌子的翻子与历史分为 0 的走子同分。
const (
	captureScore = 1 << 20
	escapeScore  = 1 << 18
	killer1Score = 1 << 16
	killer2Score = killer1Score - 1000
)

func (e *Engine) scoreActions(side xiangqi.Side, actions []Action, ply int) {
	b := e.board
	for i := range actions {
		act := &actions[i]
		if act.Flip {
			// 身边敌子越少的翻子越安全，排得越前
			row, col := rowOf(act.From), colOf(act.From)
			enemies := 0
			for _, d := range orthoDirs {
				r, c := row+d[0], col+d[1]
				if !onBoard(r, c) {
					continue
				}
				adj := b.Cells[indexOf(r, c)]
				if adj.Piece != 0 && adj.Revealed && adj.Piece.Side() != side {
					enemies++
				}
			}
			act.Score = -enemies * 16
			continue
		}
		victim := b.Cells[act.To].Piece
		if victim != 0 {
			attacker := b.Cells[act.From].Piece
			act.Score = captureScore + pieceValue[victim.Type()] - pieceValue[attacker.Type()]
			continue
		}
		if b.threatened(act.From) {
			act.Score = escapeScore + pieceValue[b.Cells[act.From].Piece.Type()]
			continue
		}
		if ply < maxPly {
			if k := e.killers[ply][0]; !k.Flip && k.From == act.From && k.To == act.To {
				act.Score = killer1Score
				continue
			}
			if k := e.killers[ply][1]; !k.Flip && k.From == act.From && k.To == act.To {
				act.Score = killer2Score
				continue
			}
		}
		act.Score = int(e.history[side][act.From][act.To])
	}
}

func sortActions(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Score > actions[j].Score
	})
}

func (e *Engine) recordCutoff(side xiangqi.Side, act Action, ply, depth int) {
	if ply < maxPly {
		k := &e.killers[ply]
		if k[0].From != act.From || k[0].To != act.To {
			k[1] = k[0]
			k[0] = act
		}
	}
	h := &e.history[side][act.From][act.To]
	*h += int32(depth * depth)
	if *h > historyMax {
		*h = historyMax
	}
}
