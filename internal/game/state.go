package game

import (
	"time"

	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

// GameState 一局棋的全部可变状态。Manager 持锁访问。
type GameState struct {
	ID         string
	Board      *xiangqi.Board
	SideToMove xiangqi.Side
	Status     xiangqi.Status
	Moves      []xiangqi.Move
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
