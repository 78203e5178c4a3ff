package engine

import (
	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

const (
	checkBonus = 200

	advisorSafetyBonus   = 20
	elephantSafetyBonus  = 12
	advisorPairBonus     = 25
	elephantPairBonus    = 15
	advisorMissingPen    = 40
	elephantMissingPen   = 25
	kingRookExposurePen  = 40
	kingCannonExposurePen = 35

	rookAcrossRiverBonus   = 30
	horseAcrossRiverBonus  = 20
	cannonAcrossRiverBonus = 15

	connectedPawnBonus = 15
	rookOpenFileBonus  = 20
)

// Evaluate 从 side 视角静态评估（正数对 side 有利）。
// 材料 + 插值位置分 + 将军 + 王安全 + 过河活性 + 逼近 + 兵形 +
// 开放线车 + 炮架 + 马腿灵活度 + 王面直线威胁，全部按双方对称相减。
func Evaluate(b *xiangqi.Board, side xiangqi.Side) int {
	opp := xiangqi.Opposite(side)
	phase := currentPhase(b)

	score := 0
	for sq, pc := range b.Squares {
		if pc == 0 {
			continue
		}
		pt := pc.Type()
		v := pieceValue[pt] + pstValue(pt, pc.Side(), sq, phase)
		if pc.Side() == side {
			score += v
		} else {
			score -= v
		}
	}

	if b.InCheck(opp) {
		score += checkBonus
	}
	if b.InCheck(side) {
		score -= checkBonus
	}

	score += kingSafety(b, side, phase) - kingSafety(b, opp, phase)
	score += pieceTerms(b, side) - pieceTerms(b, opp)
	score -= kingExposure(b, side)
	score += kingExposure(b, opp)

	return score
}

// kingSafety 士相守备。中局权重足额，残局按 phase 退坡。
func kingSafety(b *xiangqi.Board, side xiangqi.Side, phase int) int {
	var advisors, elephants int
	enemyHeavy := false
	for _, pc := range b.Squares {
		if pc == 0 {
			continue
		}
		if pc.Side() == side {
			switch pc.Type() {
			case xiangqi.PieceAdvisor:
				advisors++
			case xiangqi.PieceElephant:
				elephants++
			}
		} else {
			switch pc.Type() {
			case xiangqi.PieceRook, xiangqi.PieceCannon:
				enemyHeavy = true
			}
		}
	}

	v := advisors*advisorSafetyBonus + elephants*elephantSafetyBonus
	if advisors >= 2 {
		v += advisorPairBonus
	}
	if elephants >= 2 {
		v += elephantPairBonus
	}
	if enemyHeavy {
		if advisors == 0 {
			v -= advisorMissingPen
		}
		if elephants == 0 {
			v -= elephantMissingPen
		}
	}
	return v * phase / 256
}

// pieceTerms 过河活性、逼近王、兵形、开放线车、炮架、马腿
func pieceTerms(b *xiangqi.Board, side xiangqi.Side) int {
	enemyKing := b.FindKing(xiangqi.Opposite(side))
	total := b.PieceCount

	v := 0
	for _, sq := range b.PiecesOf(side) {
		pc := b.Squares[sq]
		pt := pc.Type()
		row, col := xiangqi.RowOf(sq), xiangqi.ColOf(sq)

		// 过河活性
		if crossed(side, row) {
			switch pt {
			case xiangqi.PieceRook:
				v += rookAcrossRiverBonus
			case xiangqi.PieceHorse:
				v += horseAcrossRiverBonus
			case xiangqi.PieceCannon:
				v += cannonAcrossRiverBonus
			}
		}

		// 大子逼近敌方王
		if enemyKing >= 0 {
			switch pt {
			case xiangqi.PieceRook, xiangqi.PieceCannon, xiangqi.PieceHorse:
				d := abs(row-xiangqi.RowOf(enemyKing)) + abs(col-xiangqi.ColOf(enemyKing))
				if d < 14 {
					v += (14 - d) * 2
				}
			}
		}

		switch pt {
		case xiangqi.PiecePawn:
			// 连兵：同行右邻有自家兵（每对只数一次）
			right := b.Get(row, col+1)
			if right != 0 && right.Side() == side && right.Type() == xiangqi.PiecePawn {
				v += connectedPawnBonus
			}

		case xiangqi.PieceRook:
			// 无自家兵的纵线
			open := true
			for r := 0; r < xiangqi.Rows; r++ {
				pc2 := b.Get(r, col)
				if pc2 != 0 && pc2.Side() == side && pc2.Type() == xiangqi.PiecePawn {
					open = false
					break
				}
			}
			if open {
				v += rookOpenFileBonus
			}

		case xiangqi.PieceCannon:
			// 盘面越满炮越值钱；同排同线的炮架也给点分
			v += (total - 16) * 2
			screens := 0
			for r := 0; r < xiangqi.Rows; r++ {
				if r != row && b.Get(r, col) != 0 {
					screens++
				}
			}
			for c := 0; c < xiangqi.Cols; c++ {
				if c != col && b.Get(row, c) != 0 {
					screens++
				}
			}
			if screens > 4 {
				screens = 4
			}
			v += screens * 5

		case xiangqi.PieceHorse:
			blocked := 0
			for _, d := range [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}} {
				if b.Get(row+d[0], col+d[1]) != 0 {
					blocked++
				}
			}
			v += 12 - blocked*8
		}
	}
	return v
}

// kingExposure 王所在纵线向前看：直瞄的敌车、隔一子的敌炮
func kingExposure(b *xiangqi.Board, side xiangqi.Side) int {
	kingSq := b.FindKing(side)
	if kingSq < 0 {
		return 0
	}
	row, col := xiangqi.RowOf(kingSq), xiangqi.ColOf(kingSq)
	dir := -1 // 红王向北看
	if side == xiangqi.Black {
		dir = +1
	}

	pen := 0
	screens := 0
	for r := row + dir; r >= 0 && r < xiangqi.Rows; r += dir {
		pc := b.Get(r, col)
		if pc == 0 {
			continue
		}
		if pc.Side() != side {
			if screens == 0 && pc.Type() == xiangqi.PieceRook {
				pen += kingRookExposurePen
			}
			if screens == 1 && pc.Type() == xiangqi.PieceCannon {
				pen += kingCannonExposurePen
			}
		}
		screens++
		if screens > 1 {
			break
		}
	}
	return pen
}

func crossed(side xiangqi.Side, row int) bool {
	if side == xiangqi.Red {
		return row <= 4
	}
	return row >= 5
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
