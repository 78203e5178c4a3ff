package xiangqi

// GeneratePieceMoves 把 sq 上棋子的伪合法走法追加进 moves（不做自将过滤）。
// moves 由调用方提供，搜索层按深度复用同一批缓冲。
func (b *Board) GeneratePieceMoves(sq int, moves *[]Move) {
	pc := b.Squares[sq]
	if pc == 0 {
		return
	}
	switch pc.Type() {
	case PieceRook:
		genRookMoves(b, sq, moves)
	case PieceCannon:
		genCannonMoves(b, sq, moves)
	case PieceHorse:
		genHorseMoves(b, sq, moves)
	case PieceElephant:
		genElephantMoves(b, sq, moves)
	case PieceAdvisor:
		genAdvisorMoves(b, sq, moves)
	case PieceKing:
		genKingMoves(b, sq, moves)
	case PiecePawn:
		genPawnMoves(b, sq, moves)
	}
}

// GeneratePseudoMoves 生成指定一方的全部伪合法走法。
// 按格子序扫描，每个子按固定方向序生成，保证结果确定。
func (b *Board) GeneratePseudoMoves(side Side, moves *[]Move) {
	for sq := 0; sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		b.GeneratePieceMoves(sq, moves)
	}
}

// GenerateAllLegalMoves 合法走法：走完后己方王不被攻击，且两王不对脸。
// 原地走子/还原做判定，不复制棋盘。
func (b *Board) GenerateAllLegalMoves(side Side) []Move {
	buf := make([]Move, 0, 64)
	return b.GenerateLegalMovesInto(side, &buf)
}

// GenerateLegalMovesInto 同上，但复用调用方的缓冲并原地过滤。
// 搜索层每个深度备一条缓冲，热路径上不再分配。
func (b *Board) GenerateLegalMovesInto(side Side, buf *[]Move) []Move {
	*buf = (*buf)[:0]
	b.GeneratePseudoMoves(side, buf)

	moves := *buf
	n := 0
	for _, mv := range moves {
		rec := b.MakeMove(mv)
		ok := !b.KingsFacing()
		if ok {
			kingSq := b.kingSq[side]
			if kingSq >= 0 && b.IsAttacked(kingSq, Opposite(side)) {
				ok = false
			}
		}
		b.Unmake(rec)
		if ok {
			moves[n] = mv
			n++
		}
	}
	*buf = moves[:n]
	return *buf
}
