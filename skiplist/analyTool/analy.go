package analyTool

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/Hakuto4838/SkipMap.git/skiplist"
	"github.com/olekukonko/tablewriter"
)

type StepMap map[skiplist.K]int

// nextAt 取得 cur 在指定層級的下一個節點；cur 為 nil 代表還在 header 上
func nextAt(sl skiplist.Analyable, cur skiplist.Nodelike, level int32) skiplist.Nodelike {
	if cur == nil {
		return sl.GetFrontAt(level)
	}
	return cur.GetNextAt(level)
}

// FindStep 模擬一次搜尋，計算找到指定 key 的總步數與各層步數。
// 水平前進與垂直下降各算一步；找不到時回傳完整下降路徑的步數。
func FindStep(sl skiplist.Analyable, key skiplist.K) (step int, perLevel []int) {
	_, maxLevel := sl.GetMaxStats()
	perLevel = make([]int, maxLevel+1)

	var cur skiplist.Nodelike // nil = header
	total := 0
	for h := int32(maxLevel); h >= 0; h-- {
		levelSteps := 0
		for {
			next := nextAt(sl, cur, h)
			if next == nil || next.GetKey() > key {
				break
			}
			cur = next
			levelSteps++
			if cur.GetKey() == key {
				perLevel[h] = levelSteps
				return total + levelSteps, perLevel
			}
		}
		perLevel[h] = levelSteps
		total += levelSteps
		if h > 0 {
			total++ // 下降也算一步
		}
	}
	return total, perLevel
}

// AnalyzeStep 依 key 出現機率計算期望搜尋步數，並回傳各 key 的實際步數
func AnalyzeStep(sl skiplist.Analyable, keys map[skiplist.K]float64) (float64, StepMap) {
	if len(keys) == 0 {
		return 0.0, nil
	}

	steps := StepMap{}
	var expected float64
	var totalProb float64

	for k, prob := range keys {
		if !sl.Contains(k) {
			continue
		}
		s, _ := FindStep(sl, k)
		steps[k] = s
		expected += float64(s) * prob
		totalProb += prob
	}

	if totalProb == 0 {
		return 0.0, steps
	}
	return expected / totalProb, steps
}

// PrintSkipList 以表格列出 skip list 的結構，每層一列，最多顯示 maxNodes 個節點
func PrintSkipList(sl skiplist.Analyable, maxLevel, maxNodes int) {
	FprintSkipList(os.Stdout, sl, maxLevel, maxNodes)
}

func FprintSkipList(w io.Writer, sl skiplist.Analyable, maxLevel, maxNodes int) {
	_, actualMaxLevel := sl.GetMaxStats()
	if actualMaxLevel < maxLevel {
		maxLevel = actualMaxLevel
	}

	var nodes []skiplist.Nodelike
	for nd := sl.GetFrontAt(0); nd != nil && len(nodes) < maxNodes; nd = nd.GetNextAt(0) {
		nodes = append(nodes, nd)
	}
	if len(nodes) == 0 {
		fmt.Fprintln(w, "skip list 為空")
		return
	}

	header := make([]string, len(nodes)+1)
	header[0] = "level"
	for i, nd := range nodes {
		header[i+1] = fmt.Sprintf("%d", nd.GetKey())
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	for h := maxLevel; h >= 0; h-- {
		row := make([]string, len(nodes)+1)
		row[0] = fmt.Sprintf("%d", h)
		for i, nd := range nodes {
			if int(nd.GetLevel()) >= h {
				row[i+1] = "o"
			}
		}
		table.Append(row)
	}
	table.Render()
}

// CountLevel 計算每層的節點數量並以表格印出，回傳各層計數。
// 各層比例可對照 p^L 檢視高度分布是否收斂。
func CountLevel(sl skiplist.Analyable) []int {
	nodes, maxLevel := sl.GetMaxStats()
	counts := make([]int, maxLevel+1)

	for nd := sl.GetFrontAt(0); nd != nil; nd = nd.GetNextAt(0) {
		for h := int32(0); h <= nd.GetLevel(); h++ {
			if int(h) < len(counts) {
				counts[h]++
			}
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Level", "Nodes", "Ratio"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for h := maxLevel; h >= 0; h-- {
		ratio := 0.0
		if nodes > 0 {
			ratio = float64(counts[h]) / float64(nodes)
		}
		table.Append([]string{
			fmt.Sprintf("%d", h),
			fmt.Sprintf("%d", counts[h]),
			fmt.Sprintf("%.4f", ratio),
		})
	}
	table.Render()
	fmt.Printf("總節點數: %d, 最高層級: %d\n", nodes, maxLevel)

	return counts
}

// CheckStruct 由外部檢查 skip list 的結構是否正確：
// 第 0 層 key 嚴格遞增，且每個節點佔用的每一層都被正確串連。
// 任何實作 Analyable 的結構都可以用這個函式驗證。
func CheckStruct(sl skiplist.Analyable) bool {
	_, maxLevel := sl.GetMaxStats()

	// 每層預期的下一個節點，從 header 的參照出發
	expected := make([]skiplist.Nodelike, maxLevel+1)
	for h := range expected {
		expected[h] = sl.GetFrontAt(int32(h))
	}

	var prev skiplist.Nodelike
	for nd := sl.GetFrontAt(0); nd != nil; nd = nd.GetNextAt(0) {
		if prev != nil && nd.GetKey() <= prev.GetKey() {
			fmt.Printf("第 0 層未嚴格遞增: %d 接在 %d 之後\n", nd.GetKey(), prev.GetKey())
			return false
		}
		lv := nd.GetLevel()
		if int(lv) > maxLevel {
			fmt.Printf("節點 %d 高度 %d 超過最高層級 %d\n", nd.GetKey(), lv, maxLevel)
			return false
		}
		for h := int32(0); h <= lv; h++ {
			if expected[h] != nd {
				fmt.Printf("第 %d 層預期的下一個節點不是 %d\n", h, nd.GetKey())
				return false
			}
			expected[h] = nd.GetNextAt(h)
		}
		prev = nd
	}

	for h, nd := range expected {
		if nd != nil {
			fmt.Printf("第 %d 層殘留懸空參照: %d\n", h, nd.GetKey())
			return false
		}
	}
	return true
}

func (mp StepMap) Print() {
	keys := make([]int, 0, len(mp))
	for k := range mp {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Steps"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, k := range keys {
		table.Append([]string{fmt.Sprintf("%d", k), fmt.Sprintf("%d", mp[skiplist.K(k)])})
	}
	table.Render()
}

// Entropy 計算分布的熵，作為工作負載偏斜程度的指標
func Entropy(dist map[skiplist.K]float64) float64 {
	h := 0.0
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
