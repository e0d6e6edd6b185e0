package vlist

import (
	"github.com/Hakuto4838/SkipMap.git/skiplist"
)

// node 持有不可變的 key、可變的 value 與固定長度的前向參照向量。
// 所有參照都指向 key 嚴格較大的節點，因此整體參照圖必為 DAG。
type node struct {
	key    skiplist.K
	value  skiplist.V
	levels nodeVector
}

func newNode(key skiplist.K, value skiplist.V, level int) *node {
	return &node{
		key:    key,
		value:  value,
		levels: newNodeVector(level),
	}
}

// GetKey 實現 Nodelike 介面
func (nd *node) GetKey() skiplist.K {
	return nd.key
}

// GetValue 實現 Nodelike 介面
func (nd *node) GetValue() skiplist.V {
	return nd.value
}

// GetLevel 實現 Nodelike 介面
func (nd *node) GetLevel() int32 {
	return int32(nd.levels.length() - 1)
}

func (nd *node) GetNextAt(level int32) skiplist.Nodelike {
	if level < 0 || int(level) >= nd.levels.length() {
		return nil
	}
	if nd.levels.get(int(level)) == nil {
		return nil
	}
	return nd.levels.get(int(level))
}
