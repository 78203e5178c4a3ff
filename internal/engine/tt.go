package engine

import "github.com/nan786521/chinese-chess/internal/xiangqi"

// 直接映射置换表：2^20 个槽位，用哈希低 20 位做下标。
// 表在多次 FindBestMove 之间保留，age 每次递增让旧条目可被顶掉。

type ttFlag uint8

const (
	ttNone ttFlag = iota
	ttExact
	ttLower
	ttUpper
)

const (
	ttBits = 20
	ttSize = 1 << ttBits
	ttMask = ttSize - 1
)

type ttEntry struct {
	Key   uint32
	Score int32
	Move  xiangqi.Move
	Depth int8
	Flag  ttFlag
	Age   uint8
}

type transTable struct {
	entries []ttEntry
	age     uint8
}

func newTransTable() *transTable {
	return &transTable{entries: make([]ttEntry, ttSize)}
}

func (tt *transTable) nextAge() {
	tt.age++
}

func (tt *transTable) probe(hash uint32) (ttEntry, bool) {
	entry := tt.entries[hash&ttMask]
	if entry.Flag != ttNone && entry.Key == hash {
		return entry, true
	}
	return ttEntry{}, false
}

// store 替换策略：空槽、同哈希、过期 age、或旧条目不比新条目深。
func (tt *transTable) store(hash uint32, depth, score int, flag ttFlag, mv xiangqi.Move) {
	entry := &tt.entries[hash&ttMask]
	if entry.Flag != ttNone && entry.Key != hash && entry.Age == tt.age && int(entry.Depth) > depth {
		return
	}
	entry.Key = hash
	entry.Score = int32(score)
	entry.Move = mv
	entry.Depth = int8(depth)
	entry.Flag = flag
	entry.Age = tt.age
}
