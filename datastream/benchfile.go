package datastream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"

	"github.com/edsrzf/mmap-go"
	"github.com/golang/snappy"
	"github.com/zeebo/xxh3"

	"github.com/Hakuto4838/SkipMap.git/skiplist"
)

// 檔案格式（LittleEndian）：
// [8]byte  Magic: "SMBENCH1"
// uint16   Version: 1
// uint16   Reserved: 0
// uint32   DistCount
// 重複 DistCount 次：
//   int64   Key
//   float64 Weight
// uint64   OpCount
// uint32   CompLen
// [CompLen]byte  snappy 壓縮的操作區塊，每筆 uint8 OperationType + int64 Key
// uint64   XXH3 校驗和，涵蓋以上全部內容

var (
	benchMagic   = [8]byte{'S', 'M', 'B', 'E', 'N', 'C', 'H', '1'}
	benchVersion = uint16(1)
)

var (
	ErrBadMagic    = errors.New("datastream: bad bench file magic")
	ErrBadChecksum = errors.New("datastream: bench file checksum mismatch")
)

const opRecordSize = 1 + 8

// BenchFile 是一份可重播的基準工作負載：key 分布加上操作序列
type BenchFile struct {
	Dist map[skiplist.K]float64
	Ops  []Operation
}

// NewBenchFile 依產生器抽出 k 筆操作。
// 規則：
//   - 尚未出現過的 key 輸出 Insert
//   - 已出現過且目前存在：依 deleteRatio 輸出 Delete，其餘大多為 Query、少數 Insert
//   - 已出現過但已被刪除：重新 Insert
func NewBenchFile(gen Generator, k int, deleteRatio float64, seed int64) *BenchFile {
	rng := rand.New(rand.NewSource(seed))
	present := map[int]bool{}
	ever := map[int]bool{}

	ops := make([]Operation, 0, k)
	for i := 0; i < k; i++ {
		idx := gen.Next()
		var op OperationType
		switch {
		case !ever[idx] || !present[idx]:
			op = OpInsert
			present[idx] = true
			ever[idx] = true
		default:
			r := rng.Float64()
			switch {
			case r < deleteRatio:
				op = OpDelete
				present[idx] = false
			case r < deleteRatio+0.05:
				op = OpInsert
			default:
				op = OpQuery
			}
		}
		ops = append(ops, Operation{Type: op, Key: skiplist.K(idx)})
	}

	return &BenchFile{
		Dist: gen.GetKeyMap(),
		Ops:  ops,
	}
}

// Entropy 回傳分布的熵
func (bf *BenchFile) Entropy() float64 {
	h := 0.0
	for _, p := range bf.Dist {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// Write 將工作負載寫入檔案
func (bf *BenchFile) Write(filename string) error {
	var buf bytes.Buffer
	buf.Write(benchMagic[:])
	binary.Write(&buf, binary.LittleEndian, benchVersion)
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // reserved

	// 分布以升冪 key 輸出，確保可重現
	keys := make([]int, 0, len(bf.Dist))
	for k := range bf.Dist {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)

	binary.Write(&buf, binary.LittleEndian, uint32(len(keys)))
	for _, ik := range keys {
		binary.Write(&buf, binary.LittleEndian, int64(ik))
		binary.Write(&buf, binary.LittleEndian, bf.Dist[skiplist.K(ik)])
	}

	// 操作區塊先序列化再整塊 snappy 壓縮
	raw := make([]byte, 0, len(bf.Ops)*opRecordSize)
	var rec [opRecordSize]byte
	for _, op := range bf.Ops {
		rec[0] = byte(op.Type)
		binary.LittleEndian.PutUint64(rec[1:], uint64(op.Key))
		raw = append(raw, rec[:]...)
	}
	comp := snappy.Encode(nil, raw)

	binary.Write(&buf, binary.LittleEndian, uint64(len(bf.Ops)))
	binary.Write(&buf, binary.LittleEndian, uint32(len(comp)))
	buf.Write(comp)

	// 校驗和涵蓋以上全部內容
	binary.Write(&buf, binary.LittleEndian, xxh3.Hash(buf.Bytes()))

	return os.WriteFile(filename, buf.Bytes(), 0644)
}

// ReadBenchFile 以 mmap 讀入並解析 bench 檔，驗證校驗和後解壓操作區塊
func ReadBenchFile(filename string) (*BenchFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("datastream: mmap %s: %w", filename, err)
	}
	defer data.Unmap()

	return parseBenchFile(data)
}

func parseBenchFile(data []byte) (*BenchFile, error) {
	if len(data) < len(benchMagic)+4+8 {
		return nil, fmt.Errorf("datastream: bench file too short (%d bytes)", len(data))
	}
	if !bytes.Equal(data[:len(benchMagic)], benchMagic[:]) {
		return nil, ErrBadMagic
	}

	body, trailer := data[:len(data)-8], data[len(data)-8:]
	if xxh3.Hash(body) != binary.LittleEndian.Uint64(trailer) {
		return nil, ErrBadChecksum
	}

	r := body[len(benchMagic):]
	version := binary.LittleEndian.Uint16(r)
	if version != benchVersion {
		return nil, fmt.Errorf("datastream: unsupported bench file version %d", version)
	}
	r = r[4:] // version + reserved

	if len(r) < 4 {
		return nil, errTruncated("distribution count")
	}
	distCount := int(binary.LittleEndian.Uint32(r))
	r = r[4:]
	if len(r) < distCount*16 {
		return nil, errTruncated("distribution block")
	}
	dist := make(map[skiplist.K]float64, distCount)
	for i := 0; i < distCount; i++ {
		key := int64(binary.LittleEndian.Uint64(r))
		weight := math.Float64frombits(binary.LittleEndian.Uint64(r[8:]))
		dist[skiplist.K(key)] = weight
		r = r[16:]
	}

	if len(r) < 12 {
		return nil, errTruncated("operation header")
	}
	opCount := int(binary.LittleEndian.Uint64(r))
	compLen := int(binary.LittleEndian.Uint32(r[8:]))
	r = r[12:]
	if len(r) != compLen {
		return nil, errTruncated("operation block")
	}

	raw, err := snappy.Decode(nil, r)
	if err != nil {
		return nil, fmt.Errorf("datastream: decompress operation block: %w", err)
	}
	if len(raw) != opCount*opRecordSize {
		return nil, fmt.Errorf("datastream: operation block has %d bytes, want %d", len(raw), opCount*opRecordSize)
	}

	ops := make([]Operation, opCount)
	for i := range ops {
		rec := raw[i*opRecordSize:]
		ops[i] = Operation{
			Type: OperationType(rec[0]),
			Key:  skiplist.K(binary.LittleEndian.Uint64(rec[1:])),
		}
	}
	return &BenchFile{Dist: dist, Ops: ops}, nil
}

func errTruncated(what string) error {
	return fmt.Errorf("datastream: bench file truncated in %s", what)
}
