package xiangqi

import (
	"strings"
	"unicode"
)

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }

func IndexOf(row, col int) int { return indexOf(row, col) }
func RowOf(sq int) int         { return rowOf(sq) }
func ColOf(sq int) int         { return colOf(sq) }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func Opposite(side Side) Side {
	if side == Red {
		return Black
	}
	if side == Black {
		return Red
	}
	return NoSide
}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func pawnDir(side Side) int {
	if side == Red {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

// 是否已经过河
func crossedRiver(side Side, row int) bool {
	if side == Red {
		return row <= 4
	}
	if side == Black {
		return row >= 5
	}
	return false
}

// 是否在九宫
func inPalace(side Side, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	if side == Black {
		return row >= 0 && row <= 2
	}
	if side == Red {
		return row >= 7 && row <= 9
	}
	return false
}

var letterToPieceType = map[rune]PieceType{
	'k': PieceKing,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'r': PieceRook,
	'n': PieceHorse,
	'c': PieceCannon,
	'p': PiecePawn,
}

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	pt := p.Type()
	var base rune
	for k, v := range letterToPieceType {
		if v == pt {
			base = k
			break
		}
	}
	if base == 0 {
		return '.'
	}
	if p.Side() == Red {
		return unicode.ToUpper(base)
	}
	return base
}

// 标准开局：第 0 行是黑方底线，第 9 行是红方底线
const initialBoardString = `rnbakabnr
.........
.c.....c.
p.p.p.p.p
.........
.........
P.P.P.P.P
.C.....C.
.........
RNBAKABNR`

// Board 棋盘本体 + 增量维护的元数据。
// Hash、PieceCount、王位缓存在每次 Set/MakeMove/Unmake 中同步更新，
// 任何时刻都应与格子内容一致（测试用随机走子校验）。
type Board struct {
	Squares    [NumSquares]Piece
	Hash       uint32
	PieceCount int

	kingSq  [2]int // 每方王的位置；-1 表示不在盘上（测试局面）
	sideBit bool   // MakeMove/Unmake 各翻转一次；配对后归零
}

func NewBoard() *Board {
	initZobrist()
	return &Board{kingSq: [2]int{-1, -1}}
}

// SetupInitialPosition 摆开局并全量重算哈希。
func (b *Board) SetupInitialPosition() {
	initZobrist()
	*b = Board{kingSq: [2]int{-1, -1}}
	lines := make([]string, 0, Rows)
	for _, line := range strings.Split(initialBoardString, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Rows {
		panic("initialBoardString 行数不为 10")
	}
	for r := 0; r < Rows; r++ {
		if len(lines[r]) != Cols {
			panic("initialBoardString 列数不为 9")
		}
		for c, ch := range lines[r] {
			if ch == '.' {
				continue
			}
			isUpper := unicode.IsUpper(ch)
			base := unicode.ToLower(ch)
			pt, ok := letterToPieceType[base]
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			side := Black
			if isUpper {
				side = Red
			}
			b.Set(r, c, MakePiece(side, pt))
		}
	}
}

// Get 越界一律返回空，不算错误。
func (b *Board) Get(row, col int) Piece {
	if !onBoard(row, col) {
		return 0
	}
	return b.Squares[indexOf(row, col)]
}

// Set 放置或清空一个格子，增量维护哈希/子数/王位。
func (b *Board) Set(row, col int, pc Piece) {
	if !onBoard(row, col) {
		return
	}
	sq := indexOf(row, col)
	old := b.Squares[sq]
	if old != 0 {
		b.Hash ^= pieceHashKey(old, sq)
		b.PieceCount--
		if old.Type() == PieceKing {
			b.kingSq[old.Side()] = -1
		}
	}
	b.Squares[sq] = pc
	if pc != 0 {
		b.Hash ^= pieceHashKey(pc, sq)
		b.PieceCount++
		if pc.Type() == PieceKing {
			b.kingSq[pc.Side()] = sq
		}
	}
}

// MakeMove 走子（调用方保证走法合法），返回还原用的记录。
// 哈希增量：移除 from 的子、移除被吃子（若有）、加入 to 的子、切换走子方。
func (b *Board) MakeMove(mv Move) MoveRecord {
	moving := b.Squares[mv.From]
	captured := b.Squares[mv.To]

	b.Hash ^= pieceHashKey(moving, mv.From)
	if captured != 0 {
		b.Hash ^= pieceHashKey(captured, mv.To)
		b.PieceCount--
		if captured.Type() == PieceKing {
			// 只会发生在测试局面里：正常对局在将死前结束
			b.kingSq[captured.Side()] = -1
		}
	}
	b.Hash ^= pieceHashKey(moving, mv.To)
	b.Hash ^= zobristSide
	b.sideBit = !b.sideBit

	b.Squares[mv.From] = 0
	b.Squares[mv.To] = moving
	if moving.Type() == PieceKing {
		b.kingSq[moving.Side()] = mv.To
	}
	return MoveRecord{Move: mv, Captured: captured}
}

// Unmake 精确还原 MakeMove：哈希、子数、王位缓存逐位一致。
func (b *Board) Unmake(rec MoveRecord) {
	mv := rec.Move
	moving := b.Squares[mv.To]

	b.Hash ^= pieceHashKey(moving, mv.To)
	b.Hash ^= pieceHashKey(moving, mv.From)
	b.Hash ^= zobristSide
	b.sideBit = !b.sideBit

	b.Squares[mv.From] = moving
	b.Squares[mv.To] = rec.Captured
	if moving.Type() == PieceKing {
		b.kingSq[moving.Side()] = mv.From
	}
	if rec.Captured != 0 {
		b.Hash ^= pieceHashKey(rec.Captured, mv.To)
		b.PieceCount++
		if rec.Captured.Type() == PieceKing {
			b.kingSq[rec.Captured.Side()] = mv.To
		}
	}
}

// ToggleSide 只切换走子方（空着）。搜索的空着裁剪用，必须成对调用。
func (b *Board) ToggleSide() {
	b.Hash ^= zobristSide
	b.sideBit = !b.sideBit
}

// FindKing O(1) 查王；不在盘上返回 -1。
func (b *Board) FindKing(side Side) int {
	if side != Red && side != Black {
		return -1
	}
	return b.kingSq[side]
}

// PiecesOf 收集某方所有棋子位置。调用方不得跨走子缓存结果。
func (b *Board) PiecesOf(side Side) []int {
	out := make([]int, 0, 16)
	for sq, pc := range b.Squares {
		if pc != 0 && pc.Side() == side {
			out = append(out, sq)
		}
	}
	return out
}

// RecomputeHash 全量重算，仅用于校验增量维护是否一致。
func (b *Board) RecomputeHash() uint32 {
	initZobrist()
	var h uint32
	for sq, pc := range b.Squares {
		if pc == 0 {
			continue
		}
		h ^= pieceHashKey(pc, sq)
	}
	if b.sideBit {
		h ^= zobristSide
	}
	return h
}

func (b *Board) rebuildMeta() {
	b.sideBit = false
	b.Hash = b.RecomputeHash()
	b.PieceCount = 0
	b.kingSq = [2]int{-1, -1}
	for sq, pc := range b.Squares {
		if pc == 0 {
			continue
		}
		b.PieceCount++
		if pc.Type() == PieceKing {
			b.kingSq[pc.Side()] = sq
		}
	}
}
