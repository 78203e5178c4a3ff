// Package storage 用 badger 持久化自对弈棋谱和累计统计。
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

const (
	keyStats      = "stats"
	gameKeyPrefix = "game:"
)

// GameRecord 一局完整棋谱
type GameRecord struct {
	ID         string         `json:"id"`
	Variant    string         `json:"variant"` // "xiangqi" / "banqi"
	Moves      []xiangqi.Move `json:"moves"`
	Result     string         `json:"result"`
	RedLevel   string         `json:"red_level"`
	BlackLevel string         `json:"black_level"`
	Nodes      int64          `json:"nodes"`
	Duration   time.Duration  `json:"duration"`
	PlayedAt   time.Time      `json:"played_at"`
}

// Stats 自对弈累计统计
type Stats struct {
	GamesPlayed int           `json:"games_played"`
	RedWins     int           `json:"red_wins"`
	BlackWins   int           `json:"black_wins"`
	Draws       int           `json:"draws"`
	TotalNodes  int64         `json:"total_nodes"`
	TotalTime   time.Duration `json:"total_time"`
}

// Storage badger 的薄封装
type Storage struct {
	db *badger.DB
}

// Open 打开指定目录的库；dir 为空用默认数据目录
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		dir, err = DatabaseDir()
		if err != nil {
			return nil, fmt.Errorf("storage: resolve db dir: %w", err)
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame 存一局棋谱并更新统计
func (s *Storage) SaveGame(rec *GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("storage: marshal game: %w", err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gameKeyPrefix+rec.ID), data)
	}); err != nil {
		return fmt.Errorf("storage: save game: %w", err)
	}

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.GamesPlayed++
	stats.TotalNodes += rec.Nodes
	stats.TotalTime += rec.Duration
	switch rec.Result {
	case "red":
		stats.RedWins++
	case "black":
		stats.BlackWins++
	default:
		stats.Draws++
	}
	return s.SaveStats(stats)
}

// LoadGame 按 ID 取棋谱
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	var rec GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gameKeyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("storage: load game %s: %w", id, err)
	}
	return &rec, nil
}

// ListGameIDs 列出所有棋谱 ID
func (s *Storage) ListGameIDs() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list games: %w", err)
	}
	return ids, nil
}

func (s *Storage) SaveStats(stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("storage: marshal stats: %w", err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	}); err != nil {
		return fmt.Errorf("storage: save stats: %w", err)
	}
	return nil
}

// LoadStats 没有记录时返回零值
func (s *Storage) LoadStats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("storage: load stats: %w", err)
	}
	return stats, nil
}
