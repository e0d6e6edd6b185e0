package vlist

import (
	"fmt"
)

// CheckInvariants 重新推導整個結構的表示不變量，僅供測試使用，
// 正常操作路徑不會呼叫。回傳的錯誤描述第一個發現的破壞點；
// 任何非 nil 結果都代表結構已損毀，呼叫端應視為致命。
func (l *List) CheckInvariants() error {
	if err := checkVector(&l.header, "header"); err != nil {
		return err
	}

	// 以 header 的參照初始化「每層預期的下一個節點」表，
	// 沿第 0 層走訪逐節點消耗，結尾時必須全部歸於 nil
	expected := make([]*node, l.header.length())
	for lvl := range expected {
		expected[lvl] = l.header.get(lvl)
	}

	count := 0
	var prev *node
	for nd := l.header.get(0); nd != nil; nd = nd.levels.get(0) {
		what := fmt.Sprintf("node %d", nd.key)
		if err := checkVector(&nd.levels, what); err != nil {
			return err
		}
		if prev != nil && nd.key <= prev.key {
			return fmt.Errorf("%s: level 0 not strictly ascending (%d after %d)", what, nd.key, prev.key)
		}
		for lvl := 0; lvl < nd.levels.length(); lvl++ {
			if ref := nd.levels.get(lvl); ref != nil && nd.key >= ref.key {
				return fmt.Errorf("%s: references key %d at level %d without forward progress", what, ref.key, lvl)
			}
		}
		// 節點佔用的每一層都必須正好是該層預期的下一個節點
		for lvl := 0; lvl < nd.levels.length(); lvl++ {
			if lvl >= len(expected) {
				return fmt.Errorf("%s: height %d exceeds header height %d", what, nd.levels.length()-1, len(expected)-1)
			}
			if expected[lvl] != nd {
				return fmt.Errorf("%s: unexpected next node at level %d", what, lvl)
			}
			expected[lvl] = nd.levels.get(lvl)
		}
		prev = nd
		count++
	}

	for lvl, nd := range expected {
		if nd != nil {
			return fmt.Errorf("level %d: chain not drained, dangling reference to key %d", lvl, nd.key)
		}
	}
	if count != l.size {
		return fmt.Errorf("size mismatch: counted %d nodes, recorded %d", count, l.size)
	}
	return nil
}

// checkVector 檢查單一向量的局部不變量：
// 長度下限、nil 只能成群聚在尾端、由高層往低層 key 不遞增
// （相鄰層可參照同一節點）、被參照的節點自身高度足夠。
func checkVector(v levelVector, what string) error {
	n := v.length()
	if n < 1 {
		return fmt.Errorf("%s: vector length %d < 1", what, n)
	}

	topSet := -1
	for lvl := n - 1; lvl >= 0; lvl-- {
		if v.get(lvl) != nil {
			topSet = lvl
			break
		}
	}
	for lvl := 0; lvl < topSet; lvl++ {
		if v.get(lvl) == nil {
			return fmt.Errorf("%s: nil at level %d below populated level %d", what, lvl, topSet)
		}
	}
	if topSet < 0 {
		return nil
	}

	prev := v.get(topSet)
	for lvl := topSet - 1; lvl >= 0; lvl-- {
		cur := v.get(lvl)
		if cur != prev && prev.key <= cur.key {
			return fmt.Errorf("%s: level %d key %d not below level %d key %d", what, lvl, cur.key, lvl+1, prev.key)
		}
		prev = cur
	}

	for lvl := 0; lvl <= topSet; lvl++ {
		if nd := v.get(lvl); nd.levels.length() < lvl+1 {
			return fmt.Errorf("%s: level %d references key %d of height %d", what, lvl, nd.key, nd.levels.length()-1)
		}
	}
	return nil
}
