package xiangqi

// 兵：过河前只能前进一格，过河后多了左右横移
func genPawnMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	pc := b.Squares[from]
	if pc == 0 {
		return
	}
	side := pc.Side()
	dir := pawnDir(side)

	// 前一格
	r1 := row + dir
	if onBoard(r1, col) {
		to := indexOf(r1, col)
		dst := b.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}

	if !crossedRiver(side, row) {
		return
	}

	// 过河后左右一格
	for _, dc := range [2]int{-1, +1} {
		c2 := col + dc
		if !onBoard(row, c2) {
			continue
		}
		to := indexOf(row, c2)
		dst := b.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
