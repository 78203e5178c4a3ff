package engine

import "github.com/nan786521/chinese-chess/internal/xiangqi"

// 基础子力估值，按 PieceType 下标
var pieceValue = [xiangqi.NumPieceTypes + 1]int{
	0,
	10000, // 帅/将
	200,   // 士
	200,   // 相
	900,   // 车
	450,   // 马
	450,   // 炮
	100,   // 兵
}

// 残局程度权重：phase = min(256, 当前权重和*256/28)，满盘时封顶在中局
var phaseWeight = [xiangqi.NumPieceTypes + 1]int{0, 0, 1, 1, 5, 3, 3, 0}

const totalPhase = 28

// 位置表都按红方视角（第 9 行是红方底线），黑方用 9-row 垂直镜像。
// 中局/残局两套，按 phase 线性插值。

var pstKingMg = [xiangqi.NumSquares]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, -12, -16, -12, 0, 0, 0,
	0, 0, 0, -6, -8, -6, 0, 0, 0,
	0, 0, 0, 4, 10, 4, 0, 0, 0,
}

var pstKingEg = [xiangqi.NumSquares]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 8, 12, 8, 0, 0, 0,
	0, 0, 0, 2, 6, 2, 0, 0, 0,
	0, 0, 0, -2, 0, -2, 0, 0, 0,
}

var pstAdvisor = [xiangqi.NumSquares]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 18, 0, 18, 0, 0, 0,
	0, 0, 0, 0, 22, 0, 0, 0, 0,
	0, 0, 0, 18, 0, 18, 0, 0, 0,
}

var pstElephant = [xiangqi.NumSquares]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 16, 0, 0, 0, 16, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	14, 0, 0, 0, 24, 0, 0, 0, 14,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 18, 0, 0, 0, 18, 0, 0,
}

var pstRookMg = [xiangqi.NumSquares]int{
	14, 16, 12, 22, 22, 22, 12, 16, 14,
	14, 20, 16, 24, 26, 24, 16, 20, 14,
	12, 16, 12, 22, 22, 22, 12, 16, 12,
	12, 18, 14, 22, 22, 22, 14, 18, 12,
	12, 16, 14, 20, 20, 20, 14, 16, 12,
	10, 14, 12, 18, 18, 18, 12, 14, 10,
	6, 12, 8, 16, 14, 16, 8, 12, 6,
	4, 10, 6, 14, 12, 14, 6, 10, 4,
	4, 8, 6, 14, 2, 14, 6, 8, 4,
	-4, 6, 4, 12, 0, 12, 4, 6, -4,
}

var pstRookEg = [xiangqi.NumSquares]int{
	12, 14, 12, 18, 18, 18, 12, 14, 12,
	14, 16, 14, 20, 20, 20, 14, 16, 14,
	12, 14, 12, 18, 18, 18, 12, 14, 12,
	12, 14, 12, 18, 18, 18, 12, 14, 12,
	10, 12, 10, 16, 16, 16, 10, 12, 10,
	8, 10, 8, 14, 14, 14, 8, 10, 8,
	6, 8, 6, 12, 12, 12, 6, 8, 6,
	4, 8, 6, 10, 10, 10, 6, 8, 4,
	4, 6, 4, 10, 8, 10, 4, 6, 4,
	0, 4, 4, 8, 6, 8, 4, 4, 0,
}

var pstHorseMg = [xiangqi.NumSquares]int{
	4, 8, 16, 12, 4, 12, 16, 8, 4,
	4, 20, 24, 24, 20, 24, 24, 20, 4,
	8, 24, 28, 32, 32, 32, 28, 24, 8,
	8, 26, 32, 34, 36, 34, 32, 26, 8,
	6, 24, 28, 32, 34, 32, 28, 24, 6,
	4, 20, 24, 28, 28, 28, 24, 20, 4,
	2, 12, 16, 18, 20, 18, 16, 12, 2,
	0, 6, 10, 14, 12, 14, 10, 6, 0,
	-4, 2, 6, 10, -8, 10, 6, 2, -4,
	-8, -4, 0, 2, 2, 2, 0, -4, -8,
}

var pstHorseEg = [xiangqi.NumSquares]int{
	2, 6, 10, 10, 6, 10, 10, 6, 2,
	4, 12, 16, 16, 14, 16, 16, 12, 4,
	6, 16, 20, 22, 22, 22, 20, 16, 6,
	6, 16, 22, 24, 26, 24, 22, 16, 6,
	6, 16, 20, 24, 24, 24, 20, 16, 6,
	4, 14, 18, 20, 20, 20, 18, 14, 4,
	2, 10, 12, 14, 16, 14, 12, 10, 2,
	0, 6, 8, 10, 10, 10, 8, 6, 0,
	-2, 2, 4, 6, 4, 6, 4, 2, -2,
	-6, -2, 0, 2, 2, 2, 0, -2, -6,
}

var pstCannonMg = [xiangqi.NumSquares]int{
	6, 4, 0, -10, -12, -10, 0, 4, 6,
	2, 2, 0, -8, -14, -8, 0, 2, 2,
	2, 2, 4, -10, -8, -10, 4, 2, 2,
	0, 0, -2, 4, 10, 4, -2, 0, 0,
	0, 0, 0, 2, 8, 2, 0, 0, 0,
	-2, 0, 4, 4, 12, 4, 4, 0, -2,
	0, 0, 0, 2, 4, 2, 0, 0, 0,
	2, 2, 0, 12, 14, 12, 0, 2, 2,
	2, 2, 0, 12, 16, 12, 0, 2, 2,
	0, 2, 4, 6, 10, 6, 4, 2, 0,
}

var pstCannonEg = [xiangqi.NumSquares]int{
	2, 2, 0, -4, -6, -4, 0, 2, 2,
	2, 2, 0, -4, -6, -4, 0, 2, 2,
	2, 2, 0, -4, -4, -4, 0, 2, 2,
	0, 0, 0, 2, 6, 2, 0, 0, 0,
	0, 0, 0, 2, 6, 2, 0, 0, 0,
	0, 0, 0, 2, 6, 2, 0, 0, 0,
	0, 0, 0, 2, 4, 2, 0, 0, 0,
	2, 2, 0, 6, 8, 6, 0, 2, 2,
	2, 2, 0, 6, 8, 6, 0, 2, 2,
	0, 2, 2, 4, 6, 4, 2, 2, 0,
}

var pstPawnMg = [xiangqi.NumSquares]int{
	0, 3, 6, 9, 12, 9, 6, 3, 0,
	18, 26, 30, 34, 40, 34, 30, 26, 18,
	20, 27, 32, 40, 42, 40, 32, 27, 20,
	14, 18, 20, 27, 30, 27, 20, 18, 14,
	6, 12, 18, 18, 20, 18, 18, 12, 6,
	0, 0, 6, 7, 15, 7, 6, 0, 0,
	-2, 0, -2, 0, 14, 0, -2, 0, -2,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var pstPawnEg = [xiangqi.NumSquares]int{
	2, 6, 10, 14, 16, 14, 10, 6, 2,
	24, 32, 38, 44, 50, 44, 38, 32, 24,
	28, 36, 42, 50, 54, 50, 42, 36, 28,
	20, 26, 30, 36, 40, 36, 30, 26, 20,
	10, 16, 22, 24, 28, 24, 22, 16, 10,
	2, 4, 8, 10, 18, 10, 8, 4, 2,
	0, 2, 0, 2, 16, 2, 0, 2, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var (
	pstMg = [xiangqi.NumPieceTypes + 1]*[xiangqi.NumSquares]int{
		nil,
		&pstKingMg,
		&pstAdvisor,
		&pstElephant,
		&pstRookMg,
		&pstHorseMg,
		&pstCannonMg,
		&pstPawnMg,
	}
	pstEg = [xiangqi.NumPieceTypes + 1]*[xiangqi.NumSquares]int{
		nil,
		&pstKingEg,
		&pstAdvisor,
		&pstElephant,
		&pstRookEg,
		&pstHorseEg,
		&pstCannonEg,
		&pstPawnEg,
	}
)

// pstValue 取 (kind, side, sq) 的插值位置分。黑方垂直镜像。
func pstValue(pt xiangqi.PieceType, side xiangqi.Side, sq, phase int) int {
	if side == xiangqi.Black {
		r := xiangqi.RowOf(sq)
		c := xiangqi.ColOf(sq)
		sq = xiangqi.IndexOf(xiangqi.Rows-1-r, c)
	}
	mg := pstMg[pt][sq]
	eg := pstEg[pt][sq]
	return (mg*phase + eg*(256-phase)) >> 8
}

// currentPhase 256=纯中局，0=纯残局
func currentPhase(b *xiangqi.Board) int {
	cur := 0
	for _, pc := range b.Squares {
		if pc != 0 {
			cur += phaseWeight[pc.Type()]
		}
	}
	phase := cur * 256 / totalPhase
	if phase > 256 {
		phase = 256
	}
	return phase
}
