package skiplist

import (
	"errors"
	"iter"
)

type K = int64
type V = string

// ErrKeyNotFound 表示查詢的 key 不存在
var ErrKeyNotFound = errors.New("skiplist: key not found")

type SkipList interface {
	Contains(key K) bool
	Get(key K) (V, error)
	Put(key K, value V)
	Delete(key K)
	Len() int
	// All 由小到大走訪所有 (key, value)，惰性且可重複走訪
	All() iter.Seq2[K, V]
	// Backward 由大到小走訪；內部先具現化升冪序列再反轉，需要 O(n) 輔助空間
	Backward() iter.Seq2[K, V]
}

// Analyable 提供分析功能的介面
type Analyable interface {
	SkipList
	// GetMaxStats 獲取節點數和最大層級
	GetMaxStats() (nodes int, maxLevel int)
	// GetFrontAt 取得 header 在指定層級的前向參照，超出高度回傳 nil
	GetFrontAt(level int32) Nodelike
}

type Nodelike interface {
	GetKey() K
	GetValue() V
	GetLevel() int32
	GetNextAt(level int32) Nodelike
}
