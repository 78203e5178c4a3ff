// Package banqi 实现 4×8 暗棋（半棋）：棋子背面朝上开局，
// 翻子是一种行动，吃子按级别循环（兵吃将），炮隔一子远吃。
package banqi

import (
	"math/rand"

	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

const (
	Rows     = 4
	Cols     = 8
	NumCells = Rows * Cols

	// 连续这么多步没有吃子判和
	DrawMoveLimit = 50
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(cell int) int       { return cell / Cols }
func colOf(cell int) int       { return cell % Cols }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

var orthoDirs = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}

// Cell 一格：棋子本体 + 是否已翻开。Piece 为 0 表示空格。
type Cell struct {
	Piece    xiangqi.Piece `json:"piece"`
	Revealed bool          `json:"revealed"`
}

// Action 翻子或走子。Flip 时只有 From 有意义。
type Action struct {
	Flip  bool `json:"flip"`
	From  int  `json:"from"`
	To    int  `json:"to"`
	Score int  `json:"-"`
}

// Record 还原一步行动所需的信息
type Record struct {
	Act       Action
	Captured  Cell
	PrevClock int
}

// 每方棋子清单：1 将 2 士 2 相 2 车 2 马 2 炮 5 兵，共 16 子
var inventory = [...]struct {
	pt    xiangqi.PieceType
	count int
}{
	{xiangqi.PieceKing, 1},
	{xiangqi.PieceAdvisor, 2},
	{xiangqi.PieceElephant, 2},
	{xiangqi.PieceRook, 2},
	{xiangqi.PieceHorse, 2},
	{xiangqi.PieceCannon, 2},
	{xiangqi.PiecePawn, 5},
}

// Board 暗棋盘面。MoveClock 记录距上次吃子的行动数。
type Board struct {
	Cells     [NumCells]Cell
	MoveClock int
}

// NewShuffledBoard 全部棋子背面朝上随机摆满 32 格
func NewShuffledBoard(rng *rand.Rand) *Board {
	pieces := make([]xiangqi.Piece, 0, NumCells)
	for _, side := range [2]xiangqi.Side{xiangqi.Red, xiangqi.Black} {
		for _, inv := range inventory {
			for i := 0; i < inv.count; i++ {
				pieces = append(pieces, xiangqi.MakePiece(side, inv.pt))
			}
		}
	}
	rng.Shuffle(len(pieces), func(i, j int) {
		pieces[i], pieces[j] = pieces[j], pieces[i]
	})

	b := &Board{}
	for i, pc := range pieces {
		b.Cells[i] = Cell{Piece: pc}
	}
	return b
}

// 级别：1 将最大 … 7 兵最小
func rank(pt xiangqi.PieceType) int {
	switch pt {
	case xiangqi.PieceKing:
		return 1
	case xiangqi.PieceAdvisor:
		return 2
	case xiangqi.PieceElephant:
		return 3
	case xiangqi.PieceRook:
		return 4
	case xiangqi.PieceHorse:
		return 5
	case xiangqi.PieceCannon:
		return 6
	case xiangqi.PiecePawn:
		return 7
	}
	return 0
}

// CanCapture 级别吃子规则（炮不走这里，炮只看隔子）。
// 唯一的循环：兵吃将；反过来将不能吃兵。
func CanCapture(attacker, defender xiangqi.PieceType) bool {
	if attacker == xiangqi.PiecePawn && defender == xiangqi.PieceKing {
		return true
	}
	if attacker == xiangqi.PieceKing && defender == xiangqi.PiecePawn {
		return false
	}
	return rank(attacker) <= rank(defender)
}

// GenerateActions side 的全部合法行动：翻任意暗子；
// 已翻开的己子走/吃相邻格；炮隔恰好一子远吃（炮架翻没翻开都行）。
func (b *Board) GenerateActions(side xiangqi.Side) []Action {
	var out []Action
	for cell := 0; cell < NumCells; cell++ {
		cc := b.Cells[cell]
		if cc.Piece != 0 && !cc.Revealed {
			out = append(out, Action{Flip: true, From: cell})
		}
	}
	for cell := 0; cell < NumCells; cell++ {
		cc := b.Cells[cell]
		if cc.Piece == 0 || !cc.Revealed || cc.Piece.Side() != side {
			continue
		}
		pt := cc.Piece.Type()
		row, col := rowOf(cell), colOf(cell)

		for _, d := range orthoDirs {
			r, c := row+d[0], col+d[1]
			if !onBoard(r, c) {
				continue
			}
			to := indexOf(r, c)
			dst := b.Cells[to]
			if dst.Piece == 0 {
				out = append(out, Action{From: cell, To: to})
				continue
			}
			if pt == xiangqi.PieceCannon {
				continue // 炮不贴身吃
			}
			if dst.Revealed && dst.Piece.Side() != side && CanCapture(pt, dst.Piece.Type()) {
				out = append(out, Action{From: cell, To: to})
			}
		}

		if pt == xiangqi.PieceCannon {
			b.genCannonCaptures(cell, side, &out)
		}
	}
	return out
}

// 炮：沿直线越过恰好一个子，吃后面遇到的第一个已翻开的敌子
func (b *Board) genCannonCaptures(cell int, side xiangqi.Side, out *[]Action) {
	row, col := rowOf(cell), colOf(cell)
	for _, d := range orthoDirs {
		screens := 0
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			dst := b.Cells[indexOf(r, c)]
			if dst.Piece != 0 {
				if screens == 1 {
					if dst.Revealed && dst.Piece.Side() != side {
						*out = append(*out, Action{From: cell, To: indexOf(r, c)})
					}
					break
				}
				screens++
			}
			r += d[0]
			c += d[1]
		}
	}
}

// Apply 执行行动并返回还原记录。翻子直接亮出真实身份。
func (b *Board) Apply(act Action) Record {
	rec := Record{Act: act, PrevClock: b.MoveClock}
	if act.Flip {
		b.Cells[act.From].Revealed = true
		b.MoveClock++
		return rec
	}
	rec.Captured = b.Cells[act.To]
	b.Cells[act.To] = b.Cells[act.From]
	b.Cells[act.From] = Cell{}
	if rec.Captured.Piece != 0 {
		b.MoveClock = 0
	} else {
		b.MoveClock++
	}
	return rec
}

// Undo 精确还原 Apply
func (b *Board) Undo(rec Record) {
	if rec.Act.Flip {
		b.Cells[rec.Act.From].Revealed = false
		b.MoveClock = rec.PrevClock
		return
	}
	b.Cells[rec.Act.From] = b.Cells[rec.Act.To]
	b.Cells[rec.Act.To] = rec.Captured
	b.MoveClock = rec.PrevClock
}

// PieceCount 某方剩余棋子数（含未翻开的）
func (b *Board) PieceCount(side xiangqi.Side) int {
	n := 0
	for _, cc := range b.Cells {
		if cc.Piece != 0 && cc.Piece.Side() == side {
			n++
		}
	}
	return n
}

// Status 对局状态
type Status int8

const (
	StatusPlaying Status = iota
	StatusRedWins
	StatusBlackWins
	StatusDraw
)

// GameStatus 轮到 sideToMove 时的判定：对方无子即胜，
// 己方无行动即负，长时间无吃子判和。
func (b *Board) GameStatus(sideToMove xiangqi.Side) Status {
	opp := xiangqi.Opposite(sideToMove)
	if b.PieceCount(opp) == 0 {
		if sideToMove == xiangqi.Red {
			return StatusRedWins
		}
		return StatusBlackWins
	}
	if b.MoveClock >= DrawMoveLimit {
		return StatusDraw
	}
	if len(b.GenerateActions(sideToMove)) == 0 {
		if sideToMove == xiangqi.Red {
			return StatusBlackWins
		}
		return StatusRedWins
	}
	return StatusPlaying
}
