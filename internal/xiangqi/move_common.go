package xiangqi

var (
	rookDirs   = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

// 车：横竖直走，遇子而止，第一个敌子可吃
func genRookMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			to := indexOf(r, c)
			pc := b.Squares[to]
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：空格可走；越过一个炮架后，吃到的第一个敌子
func genCannonMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]

		// 走子阶段：直到第一个棋子（炮架）
		for onBoard(r, c) {
			to := indexOf(r, c)
			pc := b.Squares[to]
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: to})
				r += d[0]
				c += d[1]
				continue
			}
			r += d[0]
			c += d[1]
			break
		}

		// 吃子阶段：越过炮架，遇到第一子可吃，射线终止
		for onBoard(r, c) {
			to := indexOf(r, c)
			pc := b.Squares[to]
			if pc != 0 {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 相：田字 + 塞象眼 + 不过河
func genElephantMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range bishopDirs {
		r := row + 2*d[0]
		c := col + 2*d[1]
		if !onBoard(r, c) {
			continue
		}
		// 象眼
		if b.Squares[indexOf(row+d[0], col+d[1])] != 0 {
			continue
		}
		// 不过河：红相不上 5 行以北，黑象不下 4 行以南
		if side == Red && r < 5 {
			continue
		}
		if side == Black && r > 4 {
			continue
		}
		dst := b.Squares[indexOf(r, c)]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: indexOf(r, c)})
		}
	}
}

// 士：九宫内斜走一格
func genAdvisorMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range bishopDirs {
		r := row + d[0]
		c := col + d[1]
		if !onBoard(r, c) {
			continue
		}
		if !inPalace(side, r, c) {
			continue
		}
		dst := b.Squares[indexOf(r, c)]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: indexOf(r, c)})
		}
	}
}

// 将：九宫内上下左右一格；对脸规则由合法性过滤处理
func genKingMoves(b *Board, from int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range rookDirs {
		r := row + d[0]
		c := col + d[1]
		if !onBoard(r, c) {
			continue
		}
		if !inPalace(side, r, c) {
			continue
		}
		dst := b.Squares[indexOf(r, c)]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: indexOf(r, c)})
		}
	}
}
