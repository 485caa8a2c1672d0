// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/seehuhn/mt19937"
)

// Benchmark protocol constants: every run discards at least BenchWarmup
// invocations and measures at least BenchIters. Rankings come from measuring
// on the actual device, not from trusting static feature flags.
const (
	BenchWarmup = 10
	BenchIters  = 100

	// BenchSeed seeds the mt19937 stream that generates benchmark data,
	// so every tier sees identical inputs.
	BenchSeed = 42
)

// Shape is the dense problem shape being benchmarked.
type Shape struct {
	Batch int `desc:"number of spike vectors per invocation"`
	In    int `desc:"input (feature) size"`
	Out   int `desc:"output (neuron) size"`
}

// FLOPs returns the floating-point operations per invocation:
// one multiply and one add per (batch, in, out) triple.
func (sh Shape) FLOPs() float64 {
	return 2 * float64(sh.Batch) * float64(sh.In) * float64(sh.Out)
}

func (sh Shape) validate() error {
	if sh.Batch < 1 || sh.In < 1 || sh.Out < 1 {
		return fmt.Errorf("kernels: invalid benchmark shape %dx%dx%d -- all dims must be >= 1", sh.Batch, sh.In, sh.Out)
	}
	return nil
}

// Result is the measured performance of one tier at one shape.
type Result struct {
	Tier    Tier    `desc:"kernel tier measured"`
	Shape   Shape   `desc:"problem shape"`
	Iters   int     `desc:"measured iterations (after warmup)"`
	AvgMs   float64 `desc:"average wall-clock latency per invocation, msec"`
	MinMs   float64 `desc:"fastest single invocation, msec"`
	MaxMs   float64 `desc:"slowest single invocation, msec"`
	GFlops  float64 `desc:"derived throughput = FLOPs / avg latency"`
	Speedup float64 `desc:"avg latency of scalar baseline / this tier -- 1 for scalar itself"`
}

// Bench measures one kernel tier: warmup invocations are discarded, then
// iters invocations are individually timed. warmup and iters are raised to
// the protocol minimums if below them.
func Bench(tier Tier, sh Shape, warmup, iters int) (Result, error) {
	if err := sh.validate(); err != nil {
		return Result{}, err
	}
	if tier < 0 || tier >= TierN {
		return Result{}, fmt.Errorf("kernels: no such tier %d", tier)
	}
	if warmup < BenchWarmup {
		warmup = BenchWarmup
	}
	if iters < BenchIters {
		iters = BenchIters
	}

	src := mt19937.New()
	src.Seed(BenchSeed)
	rnd := rand.New(src)
	spikes := randSlice(rnd, sh.Batch*sh.In)
	weights := randSlice(rnd, sh.Out*sh.In)
	bias := randSlice(rnd, sh.Out)
	output := make([]float32, sh.Batch*sh.Out)

	fn := tier.Func()
	for i := 0; i < warmup; i++ {
		fn(spikes, weights, bias, output, sh.Batch, sh.In, sh.Out)
	}

	rs := Result{Tier: tier, Shape: sh, Iters: iters, MinMs: -1}
	total := 0.0
	for i := 0; i < iters; i++ {
		st := time.Now()
		fn(spikes, weights, bias, output, sh.Batch, sh.In, sh.Out)
		ms := float64(time.Since(st)) / float64(time.Millisecond)
		total += ms
		if rs.MinMs < 0 || ms < rs.MinMs {
			rs.MinMs = ms
		}
		if ms > rs.MaxMs {
			rs.MaxMs = ms
		}
	}
	rs.AvgMs = total / float64(iters)
	if rs.AvgMs > 0 {
		rs.GFlops = (sh.FLOPs() / 1e9) / (rs.AvgMs / 1e3)
	}
	return rs, nil
}

// Report holds the per-tier results for one shape, in tier rank order,
// with speedups computed against the scalar baseline.
type Report struct {
	Shape    Shape    `desc:"problem shape benchmarked"`
	Features Features `desc:"CPU features at time of run"`
	Selected Tier     `desc:"tier the dispatcher would pick on this machine"`
	Results  []Result `desc:"per-tier measurements, scalar first"`
}

// BenchAll benchmarks every tier at the given shape using the protocol
// minimums, and ranks them against the scalar baseline.
func BenchAll(sh Shape) (*Report, error) {
	return BenchTiers(sh, BenchWarmup, BenchIters)
}

// BenchTiers is BenchAll with explicit warmup / iteration counts.
func BenchTiers(sh Shape, warmup, iters int) (*Report, error) {
	rp := &Report{Shape: sh, Features: Probe(), Selected: SelectedTier()}
	for t := TierScalar; t < TierN; t++ {
		rs, err := Bench(t, sh, warmup, iters)
		if err != nil {
			return nil, err
		}
		rp.Results = append(rp.Results, rs)
	}
	base := rp.Results[0].AvgMs
	for i := range rp.Results {
		if rp.Results[i].AvgMs > 0 {
			rp.Results[i].Speedup = base / rp.Results[i].AvgMs
		}
	}
	return rp, nil
}

// Table renders the report as an etable.Table, one row per tier, suitable
// for saving with SaveCSV.
func (rp *Report) Table() *etable.Table {
	sch := etable.Schema{
		{"Tier", etensor.STRING, nil, nil},
		{"AvgMs", etensor.FLOAT64, nil, nil},
		{"MinMs", etensor.FLOAT64, nil, nil},
		{"MaxMs", etensor.FLOAT64, nil, nil},
		{"GFLOPS", etensor.FLOAT64, nil, nil},
		{"Speedup", etensor.FLOAT64, nil, nil},
	}
	dt := &etable.Table{}
	dt.SetFromSchema(sch, len(rp.Results))
	dt.SetMetaData("name", "KernelBench")
	dt.SetMetaData("shape", fmt.Sprintf("%dx%dx%d", rp.Shape.Batch, rp.Shape.In, rp.Shape.Out))
	for i, rs := range rp.Results {
		dt.SetCellString("Tier", i, rs.Tier.String())
		dt.SetCellFloat("AvgMs", i, rs.AvgMs)
		dt.SetCellFloat("MinMs", i, rs.MinMs)
		dt.SetCellFloat("MaxMs", i, rs.MaxMs)
		dt.SetCellFloat("GFLOPS", i, rs.GFlops)
		dt.SetCellFloat("Speedup", i, rs.Speedup)
	}
	return dt
}

func (rp *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "dense kernel benchmark: batch=%d, in=%d, out=%d (arch=%s, selected=%s)\n",
		rp.Shape.Batch, rp.Shape.In, rp.Shape.Out, rp.Features.Arch, rp.Selected)
	for _, rs := range rp.Results {
		fmt.Fprintf(&sb, "%-12s %.4f ms  (%.2fx speedup, %.2f GFLOPS)\n",
			rs.Tier, rs.AvgMs, rs.Speedup, rs.GFlops)
	}
	return sb.String()
}

func randSlice(rnd *rand.Rand, n int) []float32 {
	sl := make([]float32, n)
	for i := range sl {
		sl[i] = rnd.Float32()*2 - 1
	}
	return sl
}
