package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/Hakuto4838/SkipMap.git/datastream"
	"github.com/Hakuto4838/SkipMap.git/skiplist"
	"github.com/Hakuto4838/SkipMap.git/skiplist/analyTool"
	"github.com/Hakuto4838/SkipMap.git/skiplist/vlist"
)

// 在同一份 Zipf 工作負載上比較不同升層機率 p 的結構與期望步數
func main() {
	var n int
	var a, b float64
	var seed int64

	flag.IntVar(&n, "n", 900, "number of keys")
	flag.Float64Var(&a, "a", 1.07, "Zipf parameter a")
	flag.Float64Var(&b, "b", 1.0, "Zipf parameter b")
	flag.Int64Var(&seed, "seed", 42, "seed for generators and structures")
	flag.Parse()

	gen := datastream.NewZipfGenerator(n, a, b, seed)
	kmap := gen.GetKeyMap()

	for _, p := range []float64{0.25, 0.5, 0.75} {
		sl := vlist.NewWithGenerator(vlist.NewLevelGeneratorWithParams(seed, p, 32))
		for k := range kmap {
			sl.Put(k, skiplist.V(strconv.FormatInt(k, 10)))
		}

		fmt.Printf("=== p = %.2f ===\n", p)
		score, _ := analyTool.AnalyzeStep(sl, kmap)
		fmt.Printf("expected steps: %.6f\n", score)
		analyTool.CountLevel(sl)
		if p == 0.5 {
			analyTool.PrintSkipList(sl, 8, 35)
		}
		if !analyTool.CheckStruct(sl) {
			log.Fatalf("structure check failed (p=%.2f)", p)
		}
		fmt.Println()
	}
}
