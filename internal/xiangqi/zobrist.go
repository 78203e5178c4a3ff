package xiangqi

import "sync"

// Zobrist 键由固定种子的 Mulberry32 生成，任何两个进程得到同一组键。
// 初始化后只读。
const zobristSeed uint32 = 0x5DEECE66

var (
	zobristOnce sync.Once

	zobristPieces [2][NumPieceTypes + 1][NumSquares]uint32
	zobristSide   uint32
)

func initZobrist() {
	zobristOnce.Do(func() {
		state := zobristSeed
		next := func() uint32 {
			state += 0x6D2B79F5
			z := state
			z = (z ^ (z >> 15)) * (z | 1)
			z ^= z + (z^(z>>7))*(z|61)
			return z ^ (z >> 14)
		}

		for side := 0; side < 2; side++ {
			for pt := 1; pt <= NumPieceTypes; pt++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][pt][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(pc Piece, sq int) uint32 {
	if pc == 0 || sq < 0 || sq >= NumSquares {
		return 0
	}

	var sideIdx int
	switch pc.Side() {
	case Red:
		sideIdx = 0
	case Black:
		sideIdx = 1
	default:
		return 0
	}

	pt := int(pc.Type())
	if pt <= 0 || pt > NumPieceTypes {
		return 0
	}
	return zobristPieces[sideIdx][pt][sq]
}
