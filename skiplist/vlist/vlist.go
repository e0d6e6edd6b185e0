package vlist

import (
	"iter"

	"github.com/Hakuto4838/SkipMap.git/skiplist"
)

// List 是以層級向量組成的跳躍列表：一個可成長的 header 向量
// 加上由它可達的所有節點。非執行緒安全，共享時由呼叫端自行互斥。
type List struct {
	header headerVector
	gen    *LevelGenerator
	size   int
}

func New(seed int64) *List {
	return NewWithGenerator(NewLevelGenerator(seed))
}

// NewWithGenerator 注入自訂的層級產生器，供測試或調整 p 與 maxLevel 使用
func NewWithGenerator(gen *LevelGenerator) *List {
	return &List{
		header: newHeaderVector(),
		gen:    gen,
	}
}

// search 從 header 最高層出發，反覆以 findGreatestNonGreater 前進或下降。
// 回傳 key 完全相符的節點；不存在則回傳其前驅節點，連前驅都沒有則為 nil。
func (l *List) search(key skiplist.K) *node {
	var vec levelVector = &l.header
	ceiling := l.header.length() - 1
	var last *node

	for {
		next, lvl := findGreatestNonGreater(vec, key, ceiling)
		if lvl < 0 {
			return last
		}
		if next.key == key {
			return next
		}
		last = next
		vec = &next.levels
		ceiling = lvl
	}
}

// findPredecessors 是插入與刪除共用的走訪：以嚴格小於的探測一路降到第 0 層，
// 回傳 key 完全相符的節點（無則 nil）以及每層前驅表。
// preds[lvl] == nil 表示該層的前驅是 header。
func (l *List) findPredecessors(key skiplist.K) (match *node, preds []*node) {
	preds = make([]*node, l.header.length())
	var vec levelVector = &l.header
	ceiling := l.header.length() - 1
	var at *node

	for {
		next, lvl := findGreatestLesser(vec, key, ceiling)
		if lvl < 0 {
			// at 在 0..ceiling 的每一層都沒有更近的節點可前進
			for i := 0; i <= ceiling; i++ {
				preds[i] = at
			}
			if cand := vec.get(0); cand != nil && cand.key == key {
				match = cand
			}
			return match, preds
		}
		// at 是 lvl..ceiling 各層目前所見最右的前驅，之後的前進會覆寫更低層
		for i := lvl; i <= ceiling; i++ {
			preds[i] = at
		}
		at = next
		vec = &next.levels
		ceiling = lvl
	}
}

// predVector 將前驅表的一格轉回向量，表中沒有該層或為 nil 時退回 header
func (l *List) predVector(preds []*node, level int) levelVector {
	if level >= len(preds) || preds[level] == nil {
		return &l.header
	}
	return &preds[level].levels
}

// Put 插入或更新 key 對應的 value。
// 已存在時僅原地覆寫 value，不做任何結構變動。
func (l *List) Put(key skiplist.K, value skiplist.V) {
	match, preds := l.findPredecessors(key)
	if match != nil {
		match.value = value
		return
	}

	lvl := l.gen.Generate()
	nd := newNode(key, value, lvl)
	for h := 0; h <= lvl; h++ {
		prev := l.predVector(preds, h)
		// 先接上前驅再補上新節點的前向參照，舊的鏈才不會遺失
		old := prev.get(h)
		prev.update(h, nd)
		nd.levels.update(h, old)
	}
	l.size++
}

// Delete 刪除 key；key 不存在時為 no-op
func (l *List) Delete(key skiplist.K) {
	match, preds := l.findPredecessors(key)
	if match == nil {
		return
	}
	for h := 0; h < match.levels.length(); h++ {
		l.predVector(preds, h).update(h, match.levels.get(h))
	}
	l.size--
}

// Get 取得 key 對應的 value，不存在時回傳 skiplist.ErrKeyNotFound
func (l *List) Get(key skiplist.K) (skiplist.V, error) {
	if nd := l.search(key); nd != nil && nd.key == key {
		return nd.value, nil
	}
	var zero skiplist.V
	return zero, skiplist.ErrKeyNotFound
}

// Contains 判斷 key 是否存在
func (l *List) Contains(key skiplist.K) bool {
	nd := l.search(key)
	return nd != nil && nd.key == key
}

// Len 回傳目前的節點數
func (l *List) Len() int {
	return l.size
}

// All 沿第 0 層由小到大走訪，每次呼叫都從 header 重新開始
func (l *List) All() iter.Seq2[skiplist.K, skiplist.V] {
	return func(yield func(skiplist.K, skiplist.V) bool) {
		for nd := l.header.get(0); nd != nil; nd = nd.levels.get(0) {
			if !yield(nd.key, nd.value) {
				return
			}
		}
	}
}

// Backward 由大到小走訪。沒有反向參照可走，
// 先具現化整條升冪序列再反轉，需要 O(n) 時間與空間。
func (l *List) Backward() iter.Seq2[skiplist.K, skiplist.V] {
	return func(yield func(skiplist.K, skiplist.V) bool) {
		nodes := make([]*node, 0, l.size)
		for nd := l.header.get(0); nd != nil; nd = nd.levels.get(0) {
			nodes = append(nodes, nd)
		}
		for i := len(nodes) - 1; i >= 0; i-- {
			if !yield(nodes[i].key, nodes[i].value) {
				return
			}
		}
	}
}

// GetMaxStats 實現 Analyable 介面
func (l *List) GetMaxStats() (int, int) {
	return l.size, l.header.length() - 1
}

// GetFrontAt 實現 Analyable 介面
func (l *List) GetFrontAt(level int32) skiplist.Nodelike {
	if level < 0 {
		return nil
	}
	nd := l.header.get(int(level))
	if nd == nil {
		return nil
	}
	return nd
}
