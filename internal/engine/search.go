package engine

import (
	"sort"

	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

// 浅层静态裁剪余量，按剩余深度取
var futilityMargin = [4]int{0, 200, 450, 700}

// searchRoot 根节点：PVS，上一迭代的最佳着法排第一。
// 返回 ok=false 表示这一迭代被中止，结果不可用。
func (e *Engine) searchRoot(side xiangqi.Side, depth int, alpha, beta int, prior xiangqi.Move) (int, xiangqi.Move, bool) {
	b := e.board
	opp := xiangqi.Opposite(side)

	moves := b.GenerateAllLegalMoves(side)
	if len(moves) == 0 {
		return 0, xiangqi.Move{}, false
	}
	e.scoreMoves(side, moves, prior, 0)
	sortMoves(moves)

	alphaOrig := alpha
	best := moves[0]
	bestScore := -scoreInf

	for i, mv := range moves {
		rec := b.MakeMove(mv)
		var score int
		if i == 0 {
			score = -e.negamax(opp, depth-1, 1, -beta, -alpha, true)
		} else {
			score = -e.negamax(opp, depth-1, 1, -(alpha + 1), -alpha, true)
			if score > alpha && score < beta {
				score = -e.negamax(opp, depth-1, 1, -beta, -alpha, true)
			}
		}
		b.Unmake(rec)
		if e.aborted {
			return 0, xiangqi.Move{}, false
		}

		if score > bestScore {
			bestScore = score
			best = mv
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	flag := ttExact
	if bestScore >= beta {
		flag = ttLower
	} else if bestScore <= alphaOrig {
		flag = ttUpper
	}
	e.tt.store(b.Hash, depth, bestScore, flag, best)
	return bestScore, best, true
}

// negamax 内部节点。alpha-beta + 置换表 + 将军延伸 + 空着裁剪 +
// 浅层静态裁剪 + 迟着缩减 + PVS。中止时返回值无意义，调用链靠
// e.aborted 丢弃。
func (e *Engine) negamax(side xiangqi.Side, depth, ply int, alpha, beta int, allowNull bool) int {
	e.nodes++
	if e.checkTimeout() {
		return 0
	}

	b := e.board
	opp := xiangqi.Opposite(side)
	alphaOrig := alpha

	var ttMove xiangqi.Move
	if entry, ok := e.tt.probe(b.Hash); ok {
		ttMove = entry.Move
		if int(entry.Depth) >= depth {
			score := int(entry.Score)
			switch entry.Flag {
			case ttExact:
				return score
			case ttLower:
				if score >= beta {
					return score
				}
			case ttUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	inCheck := b.InCheck(side)
	if inCheck && ply < e.cfg.Depth+6 {
		depth++ // 将军延伸
	}

	if depth <= 0 {
		return e.quiesce(side, e.cfg.QuiescenceDepth, ply, alpha, beta)
	}

	// 空着裁剪：让对方连走一步还是打不穿 beta 就直接截断。
	// 被将军、浅层、残局（≤10 子，怕无子可动误判）、空着链里都不做。
	if allowNull && !inCheck && depth >= 3 && b.PieceCount > 10 {
		r := 2
		if depth > 6 {
			r = 3
		}
		b.ToggleSide()
		score := -e.negamax(opp, depth-1-r, ply+1, -beta, -beta+1, false)
		b.ToggleSide()
		if e.aborted {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	if ply >= maxPly-1 {
		return Evaluate(b, side)
	}
	moves := b.GenerateLegalMovesInto(side, &e.moveBufs[ply])
	if len(moves) == 0 {
		// 无子可走即负；剩余深度越大离根越近，输得越“快”，分越低
		return -(kingValue + depth)
	}

	e.scoreMoves(side, moves, ttMove, ply)
	sortMoves(moves)

	futile := false
	staticEval := 0
	if depth <= 3 && !inCheck {
		staticEval = Evaluate(b, side)
		futile = true
	}

	bestScore := -scoreInf
	var bestMove xiangqi.Move
	moveCount := 0

	for _, mv := range moves {
		isCapture := b.Squares[mv.To] != 0

		// 浅层静态裁剪：安静着法撑死也到不了 alpha 就不搜。
		// 至少保留一个着法，别把整个节点裁空。
		if futile && !isCapture && moveCount > 0 &&
			staticEval+futilityMargin[depth] <= alpha {
			continue
		}

		rec := b.MakeMove(mv)
		givesCheck := b.InCheck(opp)

		var score int
		if moveCount == 0 {
			score = -e.negamax(opp, depth-1, ply+1, -beta, -alpha, true)
		} else {
			// 迟着缩减：排序靠后的安静着法先用减深的零窗试探
			reduction := 0
			if depth >= 3 && moveCount >= 3 && !isCapture && !inCheck && !givesCheck {
				reduction = 1
				if moveCount > 6 {
					reduction = 2
				}
			}
			score = -e.negamax(opp, depth-1-reduction, ply+1, -(alpha + 1), -alpha, true)
			if score > alpha && reduction > 0 {
				score = -e.negamax(opp, depth-1, ply+1, -(alpha + 1), -alpha, true)
			}
			if score > alpha && score < beta {
				score = -e.negamax(opp, depth-1, ply+1, -beta, -alpha, true)
			}
		}
		b.Unmake(rec)
		if e.aborted {
			return 0
		}
		moveCount++

		if score > bestScore {
			bestScore = score
			bestMove = mv
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !isCapture {
				e.recordCutoff(side, mv, ply, depth)
			}
			e.tt.store(b.Hash, depth, bestScore, ttLower, bestMove)
			return bestScore
		}
	}

	flag := ttUpper
	if bestScore > alphaOrig {
		flag = ttExact
	}
	e.tt.store(b.Hash, depth, bestScore, flag, bestMove)
	return bestScore
}

// quiesce 静态搜索：只展开吃子（被将军时展开全部应将），
// 站住分 + delta 裁剪压住地平线效应。
func (e *Engine) quiesce(side xiangqi.Side, qDepth, ply int, alpha, beta int) int {
	e.nodes++
	if e.checkTimeout() {
		return 0
	}

	b := e.board
	opp := xiangqi.Opposite(side)
	inCheck := b.InCheck(side)
	standPat := Evaluate(b, side)

	if !inCheck {
		if standPat >= beta {
			return beta
		}
		// 整个节点的 delta 下限：吃到一个车再饶 200 都追不上 alpha
		if standPat+pieceValue[xiangqi.PieceRook]+200 < alpha {
			return alpha
		}
		if standPat > alpha {
			alpha = standPat
		}
	}
	if qDepth <= 0 || ply >= maxPly-1 {
		return standPat
	}

	all := b.GenerateLegalMovesInto(side, &e.moveBufs[ply])
	cands := all[:0:len(all)]
	if inCheck {
		cands = all // 应将全搜
	} else {
		for _, mv := range all {
			victim := b.Squares[mv.To]
			if victim == 0 {
				continue
			}
			// 单着 delta：这口子叼下来也追不上 alpha 的不看
			if standPat+pieceValue[victim.Type()]+200 <= alpha {
				continue
			}
			cands = append(cands, mv)
		}
	}
	if len(cands) == 0 {
		if inCheck {
			return -(kingValue + qDepth)
		}
		return alpha
	}

	// 吃大子优先
	for i := range cands {
		cands[i].Score = pieceValue[b.Squares[cands[i].To].Type()]
	}
	sortMoves(cands)

	for _, mv := range cands {
		rec := b.MakeMove(mv)
		score := -e.quiesce(opp, qDepth-1, ply+1, -beta, -alpha)
		b.Unmake(rec)
		if e.aborted {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// 排序权重：TT 着法 > 吃子(MVV/LVA) > 杀手 > 历史
const (
	ttMoveScore  = 1 << 30
	captureScore = 1 << 20
	// 最亏的吃法（王吃兵）也要排在杀手前面
	killer1Score = captureScore - 20000
	killer2Score = captureScore - 21000
)

func (e *Engine) scoreMoves(side xiangqi.Side, moves []xiangqi.Move, ttMove xiangqi.Move, ply int) {
	for i := range moves {
		mv := &moves[i]
		if mv.From == ttMove.From && mv.To == ttMove.To {
			mv.Score = ttMoveScore
			continue
		}
		victim := e.board.Squares[mv.To]
		if victim != 0 {
			attacker := e.board.Squares[mv.From]
			mv.Score = captureScore + pieceValue[victim.Type()]*10 - pieceValue[attacker.Type()]
			continue
		}
		if ply < maxPly {
			if k := e.killers[ply][0]; k.From == mv.From && k.To == mv.To {
				mv.Score = killer1Score
				continue
			}
			if k := e.killers[ply][1]; k.From == mv.From && k.To == mv.To {
				mv.Score = killer2Score
				continue
			}
		}
		mv.Score = int(e.history[side][mv.From][mv.To])
	}
}

// sortMoves 按分数降序；同分保持生成顺序，走法选择才可复现
func sortMoves(moves []xiangqi.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Score > moves[j].Score
	})
}

// recordCutoff 安静着法触发 beta 截断：进杀手表（两槽 LRU 去重），
// 历史表加 depth²，封顶防饱和
func (e *Engine) recordCutoff(side xiangqi.Side, mv xiangqi.Move, ply, depth int) {
	if ply < maxPly {
		k := &e.killers[ply]
		if k[0].From != mv.From || k[0].To != mv.To {
			k[1] = k[0]
			k[0] = mv
		}
	}
	h := &e.history[side][mv.From][mv.To]
	*h += int32(depth * depth)
	if *h > historyMax {
		*h = historyMax
	}
}
