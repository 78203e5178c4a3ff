package xiangqi

import "testing"

func TestGameStatusInitial(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()
	if got := b.GameStatus(Red); got != StatusPlaying {
		t.Fatalf("status = %v, want playing", got)
	}
	if got := b.GameStatus(Black); got != StatusPlaying {
		t.Fatalf("status = %v, want playing", got)
	}
}

func TestCheckDetection(t *testing.T) {
	b := NewBoard()
	b.Set(0, 4, MakePiece(Black, PieceKing))
	b.Set(9, 3, MakePiece(Red, PieceKing))
	b.Set(5, 4, MakePiece(Red, PieceRook))

	if !b.InCheck(Black) {
		t.Fatalf("rook on the king file should be check")
	}
	if b.InCheck(Red) {
		t.Fatalf("red is not in check")
	}

	// 挡上一个子就解了
	b.Set(3, 4, MakePiece(Black, PieceAdvisor))
	if b.InCheck(Black) {
		t.Fatalf("blocked rook still reported as check")
	}
}

func TestCheckmateByDoubleRooks(t *testing.T) {
	b := NewBoard()
	b.Set(0, 4, MakePiece(Black, PieceKing))
	b.Set(9, 3, MakePiece(Red, PieceKing))
	b.Set(0, 0, MakePiece(Red, PieceRook)) // 底线叫将
	b.Set(1, 0, MakePiece(Red, PieceRook)) // 二路封出路

	if !b.InCheck(Black) {
		t.Fatalf("black should be in check")
	}
	if got := b.GameStatus(Black); got != StatusRedWins {
		t.Fatalf("status = %v, want red wins", got)
	}
}

// 困毙：没被将军但无路可走，照样判负
func TestStalemateIsLoss(t *testing.T) {
	b := NewBoard()
	b.Set(0, 3, MakePiece(Black, PieceKing))
	b.Set(9, 4, MakePiece(Red, PieceKing))
	b.Set(1, 0, MakePiece(Red, PieceRook)) // 封一路横线
	b.Set(2, 2, MakePiece(Red, PieceRook)) // 2 路纵线上的车，不将军

	if b.InCheck(Black) {
		t.Fatalf("black should not be in check")
	}
	// (0,4) 对红王的脸，(1,3) 在一路车横线上，(0,2) 在九宫外本就去不了
	if got := b.GameStatus(Black); got != StatusRedWins {
		t.Fatalf("status = %v, want red wins (stalemate loses)", got)
	}
}
