package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Hakuto4838/SkipMap.git/datastream"
)

// parseScientificNotation 解析科學記號字串（如 "1e5"）為整數
func parseScientificNotation(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func main() {
	var out string
	var dist string
	var nStr, kStr string
	var a, b float64
	var deleteRatio float64
	var seed int64

	flag.StringVar(&out, "out", "", "output path for the generated bench file")
	flag.StringVar(&dist, "dist", "zipf", "key distribution: zipf or uniform")
	flag.StringVar(&nStr, "n", "1e3", "number of keys (scientific notation ok)")
	flag.StringVar(&kStr, "k", "1e5", "number of operations (scientific notation ok)")
	flag.Float64Var(&a, "a", 1.07, "Zipf parameter a")
	flag.Float64Var(&b, "b", 1.0, "Zipf parameter b")
	flag.Float64Var(&deleteRatio, "deleteRatio", 0.1, "ratio of delete operations among repeated keys")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for the generator")
	flag.Parse()

	if out == "" {
		log.Fatal("-out is required")
	}
	n, err := parseScientificNotation(nStr)
	if err != nil || n <= 0 {
		log.Fatalf("invalid -n: %s", nStr)
	}
	k, err := parseScientificNotation(kStr)
	if err != nil || k < 0 {
		log.Fatalf("invalid -k: %s", kStr)
	}

	var gen datastream.Generator
	switch dist {
	case "zipf":
		gen = datastream.NewZipfGenerator(n, a, b, seed)
	case "uniform":
		gen = datastream.NewUniformGenerator(n, seed)
	default:
		log.Fatalf("unknown -dist: %s", dist)
	}

	bf := datastream.NewBenchFile(gen, k, deleteRatio, seed)
	if err := bf.Write(out); err != nil {
		log.Fatalf("write bench file: %v", err)
	}

	fmt.Printf("bench_file: %s\n", out)
	fmt.Printf("dist: %s, keys: %d, ops: %d, seed: %d\n", dist, n, len(bf.Ops), seed)
	fmt.Printf("entropy: %.6f\n", bf.Entropy())
}
