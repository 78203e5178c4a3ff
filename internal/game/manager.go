// Package game 维护进行中的对局注册表。
// 这里只管会话状态和走法校验，搜索核心对它一无所知。
package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
	ErrIllegalMove  = errors.New("illegal move")
)

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

func (m *Manager) NewGame() *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := xiangqi.NewBoard()
	b.SetupInitialPosition()

	id := uuid.NewString()
	g := &GameState{
		ID:         id,
		Board:      b,
		SideToMove: xiangqi.Red, // 红先
		Status:     xiangqi.StatusPlaying,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.games[id] = g
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// ApplyMove 校验并落子。非法走法拒绝，棋盘不动。
func (m *Manager) ApplyMove(id string, mv xiangqi.Move) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	if g.Status != xiangqi.StatusPlaying {
		return nil, ErrGameOver
	}

	legal := false
	for _, lm := range g.Board.GenerateAllLegalMoves(g.SideToMove) {
		if lm.From == mv.From && lm.To == mv.To {
			legal = true
			break
		}
	}
	if !legal {
		return nil, ErrIllegalMove
	}

	g.Board.MakeMove(xiangqi.Move{From: mv.From, To: mv.To})
	g.Moves = append(g.Moves, xiangqi.Move{From: mv.From, To: mv.To})
	g.SideToMove = xiangqi.Opposite(g.SideToMove)
	g.Status = g.Board.GameStatus(g.SideToMove)
	g.UpdatedAt = time.Now()
	return g, nil
}

// Remove 对局结束后从注册表摘掉
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}
