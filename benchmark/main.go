// Package main times the kpkn CLI on a set of input files.
// Each scenario runs several times without a memo and then with a fresh
// SQLite memo, where the first memo run is cold and the rest are warm.
// Results are written as CSV for performance tracking.
//
// Prerequisites:
// - kpkn binary installed and available in PATH
// - A data directory holding athlete.yaml, catalog.yaml and session files
//
// Usage: go run benchmark/main.go [data-dir]
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/montanaflynn/stats"
)

// BenchmarkResult holds the timings of one scenario in seconds.
type BenchmarkResult struct {
	Scenario   string
	NoMemoMean float64
	NoMemoP90  float64
	ColdTime   float64
	WarmMean   float64
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDir    string
	Timeout    time.Duration
	NoMemoRuns int
	MemoRuns   int
	Scenarios  map[string][]string
	Order      []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		DataDir:    os.Args[1],
		Timeout:    time.Minute,
		NoMemoRuns: 5,
		MemoRuns:   6,
		Scenarios: map[string][]string{
			"recommend": {"recommend", "--athlete-file", "athlete.yaml"},
			"session":   {"session", "push.yaml", "--athlete-file", "athlete.yaml", "--infer-missing"},
			"week":      {"week", "push.yaml", "pull.yaml", "legs.yaml", "--athlete-file", "athlete.yaml", "--infer-missing"},
			"metrics":   {"metrics"},
		},
		Order: []string{"recommend", "session", "week", "metrics"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}
	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}
	printSummary(results)
}

// checkPrerequisites verifies that the kpkn binary and the input files exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("kpkn"); err != nil {
		return errors.New("kpkn binary not found in PATH")
	}
	for _, name := range []string{"athlete.yaml", "push.yaml", "pull.yaml", "legs.yaml"} {
		if _, err := os.Stat(filepath.Join(config.DataDir, name)); err != nil {
			return fmt.Errorf("input %s not found in %s", name, config.DataDir)
		}
	}
	return nil
}

// runBenchmarks executes every scenario without and with a memo.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	memoDir, err := os.MkdirTemp("", "kpkn-bench-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(memoDir) }()

	fmt.Printf("Starting benchmark: %d scenarios, %v timeout, no-memo: %d runs, memo: %d runs\n",
		len(config.Order), config.Timeout, config.NoMemoRuns, config.MemoRuns)

	results := make([]BenchmarkResult, 0, len(config.Order))
	for _, name := range config.Order {
		args := config.Scenarios[name]
		fmt.Printf("Benchmarking %s\n", name)

		noMemo := runScenario(config, args, []string{"KPKN_MEMO_BACKEND=none"}, config.NoMemoRuns)
		memoEnv := []string{
			"KPKN_MEMO_BACKEND=sqlite",
			"KPKN_MEMO_DB_CONNECT=" + filepath.Join(memoDir, name+".db"),
		}
		withMemo := runScenario(config, args, memoEnv, config.MemoRuns)
		if len(noMemo) == 0 || len(withMemo) < 2 {
			return nil, fmt.Errorf("scenario %s failed or timed out", name)
		}

		result := BenchmarkResult{Scenario: name, ColdTime: withMemo[0]}
		result.NoMemoMean, _ = stats.Mean(noMemo)
		result.NoMemoP90, _ = stats.Percentile(noMemo, 90)
		result.WarmMean, _ = stats.Mean(withMemo[1:])
		fmt.Printf("  No-memo mean: %.3fs, p90: %.3fs, cold: %.3fs, warm mean: %.3fs\n",
			result.NoMemoMean, result.NoMemoP90, result.ColdTime, result.WarmMean)
		results = append(results, result)
	}
	return results, nil
}

// runScenario runs kpkn numRuns times and returns the durations of the successful runs.
func runScenario(config BenchmarkConfig, args, env []string, numRuns int) []float64 {
	args = append(args, "--catalog-backend", "none", "--output", "json")
	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		cmd := exec.CommandContext(ctx, "kpkn", args...)
		cmd.Dir = config.DataDir
		cmd.Env = append(os.Environ(), env...)

		start := time.Now()
		err := cmd.Run()
		elapsed := time.Since(start).Seconds()
		cancel()
		if err == nil {
			times = append(times, elapsed)
		}
	}
	return times
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("kpkn_benchmark_%s.csv", time.Now().Format("20060102_150405")))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"scenario", "no_memo_mean", "no_memo_p90", "cold_time", "warm_mean"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		record := []string{
			r.Scenario,
			fmt.Sprintf("%.3f", r.NoMemoMean),
			fmt.Sprintf("%.3f", r.NoMemoP90),
			fmt.Sprintf("%.3f", r.ColdTime),
			fmt.Sprintf("%.3f", r.WarmMean),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Println("Benchmark complete")
	for _, r := range results {
		speedup := 0.0
		if r.WarmMean > 0 {
			speedup = r.NoMemoMean / r.WarmMean
		}
		fmt.Printf("  %-10s: no-memo %.3fs, cold %.3fs, warm %.3fs (%.1fx)\n",
			r.Scenario, r.NoMemoMean, r.ColdTime, r.WarmMean, speedup)
	}
}
