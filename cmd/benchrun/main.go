package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/facette/natsort"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v2"

	"github.com/Hakuto4838/SkipMap.git/datastream"
	"github.com/Hakuto4838/SkipMap.git/skiplist"
	"github.com/Hakuto4838/SkipMap.git/skiplist/analyTool"
	"github.com/Hakuto4838/SkipMap.git/skiplist/vlist"
)

// Config 描述一次基準測試套件，可由 YAML 檔載入
type Config struct {
	Runs          int       `yaml:"runs"`
	Seed          int64     `yaml:"seed"`
	Probabilities []float64 `yaml:"probabilities"`
	Files         []string  `yaml:"files"`
	Dirs          []string  `yaml:"dirs"`
	CheckStruct   bool      `yaml:"check_struct"`
}

func defaultConfig() Config {
	return Config{
		Runs:          5,
		Seed:          time.Now().UnixNano(),
		Probabilities: []float64{0.5},
	}
}

// loadConfig 讀取 YAML 設定檔，讀不到或格式錯誤時退回預設值
func loadConfig(path string) Config {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		log.Println("config file at", path, "is not available for reading, using defaults")
		return cfg
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		log.Println("config file at", path, "is not valid, using defaults, error is:\n", err)
		return defaultConfig()
	}
	return cfg
}

func main() {
	var file string
	var dir string
	var configPath string
	var runs int
	var seed int64
	var pList string
	var check bool

	flag.StringVar(&file, "file", "", "single bench file (SMBENCH1 format)")
	flag.StringVar(&dir, "dir", "", "directory of .bin bench files to test")
	flag.StringVar(&configPath, "config", "", "YAML suite config (overrides other flags)")
	flag.IntVar(&runs, "runs", 5, "how many times to repeat each benchmark")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for the level generator")
	flag.StringVar(&pList, "p", "0.5", "comma list of promotion probabilities to test")
	flag.BoolVar(&check, "check", false, "run a structure check after each benchmark")
	flag.Parse()

	var cfg Config
	if configPath != "" {
		cfg = loadConfig(configPath)
	} else {
		cfg = Config{
			Runs:          runs,
			Seed:          seed,
			Probabilities: parseProbabilities(pList),
			CheckStruct:   check,
		}
		if file != "" {
			cfg.Files = []string{file}
		}
		if dir != "" {
			cfg.Dirs = []string{dir}
		}
	}

	benchPaths := append([]string(nil), cfg.Files...)
	for _, d := range cfg.Dirs {
		found, err := collectBenchFiles(d)
		if err != nil {
			log.Fatalf("scan directory %s: %v", d, err)
		}
		benchPaths = append(benchPaths, found...)
	}
	if len(benchPaths) == 0 {
		log.Fatal("no bench files: provide -file, -dir, or a -config with files/dirs")
	}

	fmt.Printf("bench files: %d, runs: %d, probabilities: %v\n",
		len(benchPaths), cfg.Runs, cfg.Probabilities)
	fmt.Println(strings.Repeat("=", 80))

	rows := make([][]string, 0, len(benchPaths)*len(cfg.Probabilities))
	for i, path := range benchPaths {
		fmt.Printf("[%d/%d] %s\n", i+1, len(benchPaths), filepath.Base(path))
		bf, err := datastream.ReadBenchFile(path)
		if err != nil {
			log.Printf("  ERROR reading bench file: %v", err)
			continue
		}
		fmt.Printf("  ops: %d, entropy: %.6f\n", len(bf.Ops), bf.Entropy())

		for _, p := range cfg.Probabilities {
			stats := benchmarkOne(bf, p, cfg)
			rows = append(rows, []string{
				filepath.Base(path),
				fmt.Sprintf("%.2f", p),
				fmt.Sprintf("%d", cfg.Runs),
				fmt.Sprintf("%.3f", stats.avgMs),
				fmt.Sprintf("%.3f", stats.minMs),
				fmt.Sprintf("%.3f", stats.maxMs),
				fmt.Sprintf("%.2f", float64(len(bf.Ops))/(stats.avgMs/1000.0)),
				fmt.Sprintf("%.6f", stats.avgSteps),
			})
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"File", "P", "Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "Ops/s", "AvgSteps"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// collectBenchFiles 收集目錄下所有 .bin 檔案，以自然順序排序
func collectBenchFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".bin" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	natsort.Sort(files)
	return files, nil
}

type benchStats struct {
	avgMs    float64
	minMs    float64
	maxMs    float64
	avgSteps float64
}

// benchmarkOne 以指定的升層機率重播工作負載 cfg.Runs 次
func benchmarkOne(bf *datastream.BenchFile, p float64, cfg Config) benchStats {
	durations := make([]float64, 0, cfg.Runs)
	avgSteps := math.NaN()

	for i := 0; i < cfg.Runs; i++ {
		sl := vlist.NewWithGenerator(vlist.NewLevelGeneratorWithParams(cfg.Seed, p, 32))
		elapsed := runOps(sl, bf)
		durations = append(durations, float64(elapsed.Microseconds())/1000.0)

		if math.IsNaN(avgSteps) {
			s, _ := analyTool.AnalyzeStep(sl, bf.Dist)
			avgSteps = s
			if cfg.CheckStruct && !analyTool.CheckStruct(sl) {
				log.Fatalf("structure check failed (p=%.2f)", p)
			}
		}
	}

	sort.Float64s(durations)
	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	return benchStats{
		avgMs:    sum / float64(len(durations)),
		minMs:    durations[0],
		maxMs:    durations[len(durations)-1],
		avgSteps: avgSteps,
	}
}

func runOps(sl skiplist.SkipList, bf *datastream.BenchFile) time.Duration {
	start := time.Now()
	for _, op := range bf.Ops {
		switch op.Type {
		case datastream.OpQuery:
			sl.Get(op.Key)
		case datastream.OpInsert:
			sl.Put(op.Key, skiplist.V(strconv.FormatInt(op.Key, 10)))
		case datastream.OpDelete:
			sl.Delete(op.Key)
		}
	}
	return time.Since(start)
}

func parseProbabilities(s string) []float64 {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := strconv.ParseFloat(part, 64)
		if err != nil || p <= 0 || p >= 1 {
			log.Fatalf("invalid -p entry: %s", part)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return []float64{0.5}
	}
	return out
}
