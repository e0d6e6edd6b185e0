package datastream

import (
	"math"
	"math/rand"

	"github.com/Hakuto4838/SkipMap.git/skiplist"
)

// cdfSampler 以反函數法從離散 CDF 抽樣，Zipf 與均勻產生器共用
type cdfSampler struct {
	weights []float64
	cdf     []float64
	rng     *rand.Rand
}

func newCDFSampler(weights []float64, seed int64) cdfSampler {
	cdf := make([]float64, len(weights))
	sum := 0.0
	for i, w := range weights {
		sum += w
		cdf[i] = sum
	}
	return cdfSampler{
		weights: weights,
		cdf:     cdf,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Next 產生一筆查詢 (回傳索引 0~n-1)
func (s *cdfSampler) Next() int {
	r := s.rng.Float64()
	// 二分搜尋 cdf
	lo, hi := 0, len(s.cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if r > s.cdf[mid] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// GenerateSequence 產生指定長度的查詢序列
func (s *cdfSampler) GenerateSequence(seqLen int) []int {
	seq := make([]int, seqLen)
	for i := range seq {
		seq[i] = s.Next()
	}
	return seq
}

// GetKeyMap 回傳每個 key 的機率分布
func (s *cdfSampler) GetKeyMap() map[skiplist.K]float64 {
	result := make(map[skiplist.K]float64, len(s.weights))
	for i, w := range s.weights {
		result[skiplist.K(i)] = w
	}
	return result
}

// Entropy 回傳分布的熵
func (s *cdfSampler) Entropy() float64 {
	h := 0.0
	for _, p := range s.weights {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// ZipfGenerator 產生符合 Zipf 分布的查詢序列，
// 權重 1/(i+b)^a 正規化後隨機打散，避免熱門 key 集中在小索引
type ZipfGenerator struct {
	cdfSampler
	n    int
	a, b float64
}

func NewZipfGenerator(n int, a, b float64, seed int64) *ZipfGenerator {
	shuffleRng := rand.New(rand.NewSource(seed))
	weights := make([]float64, n)
	sum := 0.0
	for i := 1; i <= n; i++ {
		weights[i-1] = 1.0 / math.Pow(float64(i)+b, a)
		sum += weights[i-1]
	}
	for i := range weights {
		weights[i] /= sum
	}
	shuffleRng.Shuffle(len(weights), func(i, j int) {
		weights[i], weights[j] = weights[j], weights[i]
	})

	return &ZipfGenerator{
		cdfSampler: newCDFSampler(weights, seed),
		n:          n,
		a:          a,
		b:          b,
	}
}

// UniformGenerator 產生平均分布的查詢序列，每個索引出現機率相同
type UniformGenerator struct {
	cdfSampler
	n int
}

func NewUniformGenerator(n int, seed int64) *UniformGenerator {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return &UniformGenerator{
		cdfSampler: newCDFSampler(weights, seed),
		n:          n,
	}
}
