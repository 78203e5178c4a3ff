package xiangqi

import "testing"

func TestHashInitializedFromSetupAndFEN(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()
	if b.Hash != b.RecomputeHash() {
		t.Fatalf("initial hash mismatch: got=%d want=%d", b.Hash, b.RecomputeHash())
	}

	decoded, side, err := Decode(Encode(b, Red))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if side != Red {
		t.Fatalf("side mismatch: %v", side)
	}
	if decoded.Hash != decoded.RecomputeHash() {
		t.Fatalf("decoded hash mismatch: got=%d want=%d", decoded.Hash, decoded.RecomputeHash())
	}
	if decoded.Hash != b.Hash {
		t.Fatalf("round-trip hash changed: got=%d want=%d", decoded.Hash, b.Hash)
	}
}

func TestZobristKeysDeterministic(t *testing.T) {
	initZobrist()
	pc := MakePiece(Red, PieceRook)
	k1 := pieceHashKey(pc, 0)
	k2 := pieceHashKey(pc, 0)
	if k1 == 0 || k1 != k2 {
		t.Fatalf("keys not stable: %d vs %d", k1, k2)
	}
	if pieceHashKey(pc, 1) == k1 {
		t.Fatalf("adjacent squares share a key")
	}
}

func TestMakeMoveHashIncrementalMatchesFullRecompute(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()
	side := Red
	for ply := 0; ply < 40; ply++ {
		moves := b.GenerateAllLegalMoves(side)
		if len(moves) == 0 {
			return
		}
		mv := moves[(ply*7)%len(moves)]
		rec := b.MakeMove(mv)
		if got, want := b.Hash, b.RecomputeHash(); got != want {
			t.Fatalf("hash mismatch after make at ply %d: got=%d want=%d move=%+v", ply, got, want, mv)
		}

		// 撤销后必须逐位还原
		before := *b
		b.Unmake(rec)
		b.MakeMove(mv)
		if *b != before {
			t.Fatalf("make/unmake/make not idempotent at ply %d", ply)
		}

		side = Opposite(side)
	}
}

func TestMakeUnmakePairRestoresHash(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()
	side := Red
	for ply := 0; ply < 30; ply++ {
		moves := b.GenerateAllLegalMoves(side)
		if len(moves) == 0 {
			return
		}
		snapshot := *b
		for _, mv := range moves {
			rec := b.MakeMove(mv)
			b.Unmake(rec)
			if *b != snapshot {
				t.Fatalf("board changed after make/unmake pair at ply %d, move %+v", ply, mv)
			}
		}
		rec := b.MakeMove(moves[len(moves)/2])
		_ = rec
		side = Opposite(side)
	}
}
