package vlist

import (
	"math"
	"testing"
)

func TestLevelGeneratorDeterministic(t *testing.T) {
	a := NewLevelGenerator(42)
	b := NewLevelGenerator(42)
	for i := 0; i < 1000; i++ {
		if la, lb := a.Generate(), b.Generate(); la != lb {
			t.Fatalf("第 %d 次抽樣不一致: %d != %d", i, la, lb)
		}
	}
}

func TestLevelGeneratorBounds(t *testing.T) {
	g := NewLevelGeneratorWithParams(1, 0.9, 4)
	for i := 0; i < 10000; i++ {
		lvl := g.Generate()
		if lvl < 0 || lvl > 4 {
			t.Fatalf("Generate() = %d, want [0, 4]", lvl)
		}
	}
}

// 大量抽樣下 P(level >= L) 應收斂到 p^L
func TestLevelGeneratorDistribution(t *testing.T) {
	const samples = 200000
	g := NewLevelGenerator(2024)

	atLeast := make([]int, maxLevel+1)
	for i := 0; i < samples; i++ {
		lvl := g.Generate()
		for h := 0; h <= lvl; h++ {
			atLeast[h]++
		}
	}

	for L := 1; L <= 5; L++ {
		got := float64(atLeast[L]) / float64(samples)
		want := math.Pow(probability, float64(L))
		if math.Abs(got-want) > 0.15*want {
			t.Errorf("P(level >= %d) = %.5f, want %.5f ± 15%%", L, got, want)
		}
	}
}
