package datastream

import "github.com/Hakuto4838/SkipMap.git/skiplist"

// OperationType 表示操作種類
type OperationType uint8

const (
	OpQuery OperationType = iota
	OpInsert
	OpDelete
)

func (t OperationType) String() string {
	switch t {
	case OpQuery:
		return "Query"
	case OpInsert:
		return "Insert"
	case OpDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Operation 表示一筆操作
type Operation struct {
	Type OperationType
	Key  skiplist.K
}

// Generator 定義工作負載產生器的介面
type Generator interface {
	// Next 產生一筆查詢，回傳索引 0..n-1
	Next() int
	// GenerateSequence 產生指定長度的查詢序列
	GenerateSequence(seqLen int) []int
	// GetKeyMap 回傳每個 key 的機率分布
	GetKeyMap() map[skiplist.K]float64
	// Entropy 回傳分布的熵
	Entropy() float64
}
