package banqi

import (
	"testing"

	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

func TestFindBestActionTakesHangingPiece(t *testing.T) {
	b := &Board{}
	b.Cells[indexOf(1, 1)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Red, xiangqi.PieceRook), Revealed: true}
	b.Cells[indexOf(1, 2)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PieceHorse), Revealed: true}
	b.Cells[indexOf(3, 7)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PiecePawn)}
	b.Cells[indexOf(3, 0)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Red, xiangqi.PiecePawn)}

	e := NewEngine()
	act, ok := e.FindBestAction(b, xiangqi.Red, ConfigFor(Medium))
	if !ok {
		t.Fatalf("no action found")
	}
	if act.Flip || act.From != indexOf(1, 1) || act.To != indexOf(1, 2) {
		t.Fatalf("action = %+v, want rook takes horse", act)
	}
}

func TestFindBestActionPawnKillsKing(t *testing.T) {
	b := &Board{}
	b.Cells[indexOf(2, 3)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Red, xiangqi.PiecePawn), Revealed: true}
	b.Cells[indexOf(2, 4)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PieceKing), Revealed: true}
	b.Cells[indexOf(0, 0)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PieceRook)}
	b.Cells[indexOf(3, 7)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Red, xiangqi.PieceHorse)}

	e := NewEngine()
	act, ok := e.FindBestAction(b, xiangqi.Red, ConfigFor(Medium))
	if !ok {
		t.Fatalf("no action found")
	}
	if act.Flip || act.From != indexOf(2, 3) || act.To != indexOf(2, 4) {
		t.Fatalf("action = %+v, want pawn takes king", act)
	}
}

func TestFindBestActionOnlyFlipsAvailable(t *testing.T) {
	b := &Board{}
	b.Cells[indexOf(0, 0)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Red, xiangqi.PieceKing)}
	b.Cells[indexOf(3, 7)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PiecePawn)}

	actions := b.GenerateActions(xiangqi.Red)
	if len(actions) != 2 {
		t.Fatalf("actions = %v, want the two flips", actions)
	}

	act, ok := NewEngine().FindBestAction(b, xiangqi.Red, ConfigFor(Easy))
	if !ok {
		t.Fatalf("no action found")
	}
	if !act.Flip {
		t.Fatalf("action = %+v, want a flip", act)
	}
}

func TestEvaluateCountsHiddenMaterial(t *testing.T) {
	b := &Board{}
	b.Cells[indexOf(0, 0)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Red, xiangqi.PieceRook)}
	b.Cells[indexOf(0, 1)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PiecePawn)}

	if got := Evaluate(b, xiangqi.Red); got <= 0 {
		t.Fatalf("red holds more material but eval = %d", got)
	}
	if Evaluate(b, xiangqi.Red) != -Evaluate(b, xiangqi.Black) {
		t.Fatalf("eval not antisymmetric")
	}
}

func TestExpectimaxDeterministicWithoutSampling(t *testing.T) {
	mk := func() *Board {
		b := &Board{}
		b.Cells[indexOf(1, 1)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Red, xiangqi.PieceCannon), Revealed: true}
		b.Cells[indexOf(0, 3)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PieceHorse)}
		b.Cells[indexOf(2, 5)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PiecePawn)}
		b.Cells[indexOf(3, 0)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Red, xiangqi.PiecePawn)}
		return b
	}

	cfg := SearchConfig{Depth: 3, QuiescenceDepth: 2} // MCSamples=0：全量枚举
	first, ok := NewEngine().FindBestAction(mk(), xiangqi.Red, cfg)
	if !ok {
		t.Fatalf("no action found")
	}
	for i := 0; i < 3; i++ {
		got, ok := NewEngine().FindBestAction(mk(), xiangqi.Red, cfg)
		if !ok {
			t.Fatalf("no action found")
		}
		if got != first {
			t.Fatalf("enumerated expectimax not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestSearchLeavesBoardUnchanged(t *testing.T) {
	b := &Board{}
	b.Cells[indexOf(1, 1)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Red, xiangqi.PieceRook), Revealed: true}
	b.Cells[indexOf(0, 3)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PieceHorse)}
	b.Cells[indexOf(2, 5)] = Cell{Piece: xiangqi.MakePiece(xiangqi.Black, xiangqi.PiecePawn)}
	before := *b

	if _, ok := NewEngine().FindBestAction(b, xiangqi.Red, ConfigFor(Medium)); !ok {
		t.Fatalf("no action found")
	}
	if *b != before {
		t.Fatalf("search mutated the board")
	}
}
