package vlist

import (
	"github.com/Hakuto4838/SkipMap.git/skiplist"
)

// levelVector 是節點與 header 共用的前向參照向量能力。
// 固定長度與可成長兩種實作的唯一行為差異在 get/update 的邊界處理。
type levelVector interface {
	get(level int) *node
	update(level int, nd *node)
	length() int
}

// nodeVector 為固定長度的前向參照向量，長度在節點建立時決定，恆 >= 1。
// 超出範圍的存取屬於程式錯誤，直接由 slice 邊界檢查攔截。
type nodeVector struct {
	refs []*node
}

func newNodeVector(level int) nodeVector {
	return nodeVector{refs: make([]*node, level+1)}
}

func (v *nodeVector) get(level int) *node {
	return v.refs[level]
}

func (v *nodeVector) update(level int, nd *node) {
	v.refs[level] = nd
}

func (v *nodeVector) length() int {
	return len(v.refs)
}

// headerVector 是代表「所有 key 之前」的哨兵向量。
// get 超出目前長度時視為無限多層的空層；update 會先成長到足夠的長度。
// 長度只增不減，刪除後即使整層皆為 nil 也不回收。
type headerVector struct {
	refs []*node
}

func newHeaderVector() headerVector {
	return headerVector{refs: make([]*node, 1)}
}

func (v *headerVector) get(level int) *node {
	if level >= len(v.refs) {
		return nil
	}
	return v.refs[level]
}

func (v *headerVector) update(level int, nd *node) {
	for len(v.refs) <= level {
		v.refs = append(v.refs, nil)
	}
	v.refs[level] = nd
}

func (v *headerVector) length() int {
	return len(v.refs)
}

// findGreatestNonGreater 由 min(length-1, ceiling) 往下掃到第 1 層，
// 回傳第一個 key 不大於 target 的參照與其層級；第 1 層以上皆不合時
// 另外檢查第 0 層；連第 0 層都沒有合格參照則回傳 (nil, -1)。
// 所有讀取路徑的走訪都建立在這個原語上。
func findGreatestNonGreater(v levelVector, target skiplist.K, ceiling int) (*node, int) {
	top := v.length() - 1
	if ceiling < top {
		top = ceiling
	}
	for lvl := top; lvl >= 1; lvl-- {
		if nd := v.get(lvl); nd != nil && nd.key <= target {
			return nd, lvl
		}
	}
	if nd := v.get(0); nd != nil && nd.key <= target {
		return nd, 0
	}
	return nil, -1
}

// findGreatestLesser 與 findGreatestNonGreater 相同，但採嚴格小於比較。
// 變動路徑以此建立每層前驅表：嚴格比較不會踏上目標節點本身，
// 走訪才能下降到第 0 層，使目標佔用的每一層都有正確的前驅。
func findGreatestLesser(v levelVector, target skiplist.K, ceiling int) (*node, int) {
	top := v.length() - 1
	if ceiling < top {
		top = ceiling
	}
	for lvl := top; lvl >= 1; lvl-- {
		if nd := v.get(lvl); nd != nil && nd.key < target {
			return nd, lvl
		}
	}
	if nd := v.get(0); nd != nil && nd.key < target {
		return nd, 0
	}
	return nil, -1
}
