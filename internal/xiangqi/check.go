package xiangqi

// IsAttacked 判断 sq 是否被 bySide 攻击。
// 定点探测：只检查攻击可能来自的格子，不枚举对方全部走法。
// 结果与“对方伪合法走法里存在落点为 sq 的走法”完全一致；
// 王对脸不算攻击，由 KingsFacing 单独处理。
func (b *Board) IsAttacked(sq int, bySide Side) bool {
	row, col := rowOf(sq), colOf(sq)

	// 车 / 炮 / 将：沿四条射线数挡子。
	// 0 个挡子遇到的第一子是敌车 -> 被攻击；
	// 恰好 1 个挡子后的第二子是敌炮 -> 被攻击；
	// 紧邻一格的敌将（还得在它自己的九宫里）也构成攻击。
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		dist := 1
		screens := 0
		for onBoard(r, c) {
			pc := b.Squares[indexOf(r, c)]
			if pc != 0 {
				if pc.Side() == bySide {
					pt := pc.Type()
					if screens == 0 {
						if pt == PieceRook {
							return true
						}
						if pt == PieceKing && dist == 1 && inPalace(bySide, row, col) {
							return true
						}
					} else if screens == 1 && pt == PieceCannon {
						return true
					}
				}
				screens++
				if screens > 1 {
					break
				}
			}
			r += d[0]
			c += d[1]
			dist++
		}
	}

	// 马：八个可能的来源格，蹩的是攻击方自己的马腿
	for _, m := range horseLegMoves {
		ar := row - m.Dr
		ac := col - m.Dc
		if !onBoard(ar, ac) {
			continue
		}
		pc := b.Squares[indexOf(ar, ac)]
		if pc == 0 || pc.Side() != bySide || pc.Type() != PieceHorse {
			continue
		}
		if b.Squares[indexOf(ar+m.Br, ac+m.Bc)] == 0 {
			return true
		}
	}

	// 兵：正前方一格；过河兵还能横吃
	dir := pawnDir(bySide)
	pr := row - dir
	if onBoard(pr, col) {
		pc := b.Squares[indexOf(pr, col)]
		if pc != 0 && pc.Side() == bySide && pc.Type() == PiecePawn {
			return true
		}
	}
	for _, dc := range [2]int{-1, +1} {
		c2 := col + dc
		if !onBoard(row, c2) {
			continue
		}
		pc := b.Squares[indexOf(row, c2)]
		if pc != 0 && pc.Side() == bySide && pc.Type() == PiecePawn && crossedRiver(bySide, row) {
			return true
		}
	}

	return false
}

// KingsFacing 两王同列且中间无子（“飞将”局面，绝对非法）。
// 只扫一条列，O(Rows)。
func (b *Board) KingsFacing() bool {
	redKing := b.kingSq[Red]
	blackKing := b.kingSq[Black]
	if redKing < 0 || blackKing < 0 {
		// 有一方王已经没了：对局终结，不存在对脸问题
		return false
	}
	rc := colOf(redKing)
	if rc != colOf(blackKing) {
		return false
	}
	lo, hi := rowOf(blackKing), rowOf(redKing)
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if b.Squares[indexOf(r, rc)] != 0 {
			return false
		}
	}
	return true
}

// InCheck 判断 side 的王是否被将军
func (b *Board) InCheck(side Side) bool {
	kingSq := b.FindKing(side)
	if kingSq < 0 {
		return false
	}
	return b.IsAttacked(kingSq, Opposite(side))
}
