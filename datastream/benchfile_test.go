package datastream

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBenchFileRoundTrip(t *testing.T) {
	gen := NewZipfGenerator(200, 1.07, 1.0, 42)
	bf := NewBenchFile(gen, 5000, 0.1, 42)

	path := filepath.Join(t.TempDir(), "roundtrip.bin")
	if err := bf.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := ReadBenchFile(path)
	if err != nil {
		t.Fatalf("ReadBenchFile: %v", err)
	}

	if len(got.Ops) != len(bf.Ops) {
		t.Fatalf("讀回 %d 筆操作, want %d", len(got.Ops), len(bf.Ops))
	}
	for i := range bf.Ops {
		if got.Ops[i] != bf.Ops[i] {
			t.Fatalf("第 %d 筆操作不一致: %+v != %+v", i, got.Ops[i], bf.Ops[i])
		}
	}
	if len(got.Dist) != len(bf.Dist) {
		t.Fatalf("讀回 %d 筆分布, want %d", len(got.Dist), len(bf.Dist))
	}
	for k, w := range bf.Dist {
		if got.Dist[k] != w {
			t.Fatalf("key %d 權重 %v, want %v", k, got.Dist[k], w)
		}
	}
}

func TestBenchFileChecksum(t *testing.T) {
	gen := NewUniformGenerator(50, 1)
	bf := NewBenchFile(gen, 500, 0.05, 1)

	path := filepath.Join(t.TempDir(), "corrupt.bin")
	if err := bf.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// 翻轉操作區塊中的一個 byte
	data[len(data)/2] ^= 0xFF
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadBenchFile(path); !errors.Is(err, ErrBadChecksum) {
		t.Errorf("讀取竄改檔案錯誤 = %v, want ErrBadChecksum", err)
	}
}

func TestBenchFileBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magic.bin")
	if err := os.WriteFile(path, make([]byte, 64), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBenchFile(path); !errors.Is(err, ErrBadMagic) {
		t.Errorf("讀取錯誤 magic 的錯誤 = %v, want ErrBadMagic", err)
	}
}

func TestBenchFileTruncated(t *testing.T) {
	gen := NewUniformGenerator(50, 1)
	bf := NewBenchFile(gen, 500, 0.05, 1)

	path := filepath.Join(t.TempDir(), "trunc.bin")
	if err := bf.Write(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-20], 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadBenchFile(path); err == nil {
		t.Error("讀取截斷檔案應回報錯誤")
	}
}

func TestNewBenchFileOpMix(t *testing.T) {
	gen := NewZipfGenerator(100, 1.5, 1.0, 7)
	bf := NewBenchFile(gen, 10000, 0.1, 7)

	if len(bf.Ops) != 10000 {
		t.Fatalf("操作數 %d, want 10000", len(bf.Ops))
	}

	// 重播並確認 Delete/Query 只會出現在 Insert 過的 key 上
	present := map[int64]bool{}
	counts := map[OperationType]int{}
	for i, op := range bf.Ops {
		counts[op.Type]++
		switch op.Type {
		case OpInsert:
			present[op.Key] = true
		case OpQuery, OpDelete:
			if !present[op.Key] && op.Type == OpDelete {
				t.Fatalf("第 %d 筆對不存在的 key %d 做 %v", i, op.Key, op.Type)
			}
			if op.Type == OpDelete {
				present[op.Key] = false
			}
		}
	}
	if counts[OpInsert] == 0 || counts[OpQuery] == 0 || counts[OpDelete] == 0 {
		t.Errorf("操作種類不齊全: %v", counts)
	}
}
