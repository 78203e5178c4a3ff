package engine

import "time"

// Difficulty 难度档位，对应一组固定的搜索参数
type Difficulty int8

const (
	Beginner Difficulty = iota
	Easy
	Medium
	Hard
	Master
)

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Master:
		return "master"
	}
	return "unknown"
}

// ParseDifficulty 解析难度名（cmd 的 -level 参数用）
func ParseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "beginner":
		return Beginner, true
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	case "master":
		return Master, true
	}
	return Medium, false
}

// SearchConfig 一次 FindBestMove 的搜索参数
type SearchConfig struct {
	Depth           int           // 主搜索深度（ply）
	QuiescenceDepth int           // 静态搜索深度
	Randomness      int           // >0 时给低难度加随机抖动
	TimeLimit       time.Duration // 墙钟上限
}

// ConfigFor 各难度档位的参数表
func ConfigFor(d Difficulty) SearchConfig {
	switch d {
	case Beginner:
		return SearchConfig{Depth: 3, QuiescenceDepth: 2, Randomness: 150, TimeLimit: 1 * time.Second}
	case Easy:
		return SearchConfig{Depth: 4, QuiescenceDepth: 3, Randomness: 30, TimeLimit: 2 * time.Second}
	case Medium:
		return SearchConfig{Depth: 5, QuiescenceDepth: 4, TimeLimit: 3 * time.Second}
	case Hard:
		return SearchConfig{Depth: 6, QuiescenceDepth: 5, TimeLimit: 5 * time.Second}
	case Master:
		return SearchConfig{Depth: 8, QuiescenceDepth: 6, TimeLimit: 10 * time.Second}
	}
	return SearchConfig{Depth: 5, QuiescenceDepth: 4, TimeLimit: 3 * time.Second}
}
