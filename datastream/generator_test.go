package datastream

import (
	"math"
	"testing"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewZipfGenerator(1000, 1.07, 1.0, 42)
	b := NewZipfGenerator(1000, 1.07, 1.0, 42)
	for i := 0; i < 1000; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("第 %d 次抽樣不一致: %d != %d", i, x, y)
		}
	}
}

func TestKeyMapSumsToOne(t *testing.T) {
	gens := map[string]Generator{
		"zipf":    NewZipfGenerator(500, 1.07, 1.0, 1),
		"uniform": NewUniformGenerator(500, 1),
	}
	for name, gen := range gens {
		sum := 0.0
		for _, p := range gen.GetKeyMap() {
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("%s 分布總和 = %v, want 1.0", name, sum)
		}
	}
}

func TestNextWithinRange(t *testing.T) {
	gen := NewZipfGenerator(100, 1.5, 0.0, 9)
	for i := 0; i < 10000; i++ {
		idx := gen.Next()
		if idx < 0 || idx >= 100 {
			t.Fatalf("Next() = %d, want [0, 100)", idx)
		}
	}
}

// Zipf 分布偏斜，熵必須低於同樣大小的均勻分布
func TestZipfEntropyBelowUniform(t *testing.T) {
	zipf := NewZipfGenerator(1000, 1.5, 1.0, 3)
	uni := NewUniformGenerator(1000, 3)
	if zipf.Entropy() >= uni.Entropy() {
		t.Errorf("zipf 熵 %.4f 應低於均勻分布 %.4f", zipf.Entropy(), uni.Entropy())
	}
}
