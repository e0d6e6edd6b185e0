package vlist

import (
	"math/rand"
)

const (
	maxLevel    = 32
	probability = 0.5
)

// LevelGenerator 以幾何分布決定新節點的層級：連續擲出成功各升一層，
// 首次失敗或達到 maxLevel 即停止，P(level >= L) = p^L。
// 種子由外部注入，測試可完全重現。
type LevelGenerator struct {
	rng *rand.Rand
	p   float64
	max int
}

func NewLevelGenerator(seed int64) *LevelGenerator {
	return NewLevelGeneratorWithParams(seed, probability, maxLevel)
}

func NewLevelGeneratorWithParams(seed int64, p float64, max int) *LevelGenerator {
	if max < 0 {
		max = 0
	}
	return &LevelGenerator{
		rng: rand.New(rand.NewSource(seed)),
		p:   p,
		max: max,
	}
}

// Generate 回傳 [0, max] 區間內的層級
func (g *LevelGenerator) Generate() int {
	lvl := 0
	for g.rng.Float64() < g.p && lvl < g.max {
		lvl++
	}
	return lvl
}

func (g *LevelGenerator) P() float64 {
	return g.p
}

func (g *LevelGenerator) MaxLevel() int {
	return g.max
}
