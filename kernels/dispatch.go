// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"runtime"
	"sync"

	"github.com/goki/ki/kit"
	"golang.org/x/sys/cpu"
)

// Tier is one hardware-capability tier of the dense kernel. Tiers are ranked:
// higher values are preferred when the hardware supports them, and selection
// downgrades through the list when it does not.
type Tier int32

//go:generate stringer -type=Tier

var KiT_Tier = kit.Enums.AddEnum(TierN, kit.NotBitFlag, nil)

func (ev Tier) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Tier) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The kernel tiers, lowest to highest capability.
const (
	// TierScalar is the plain triple-loop baseline, available everywhere.
	TierScalar Tier = iota

	// TierVec128 is the 4-lane kernel matching 128-bit SIMD registers
	// (NEON on arm64, SSE2 on amd64).
	TierVec128

	// TierWide is the matrix-extension tier; currently a documented
	// delegate to TierVec128 (see denseWide).
	TierWide

	TierN
)

// tierFuncs maps each tier to its kernel, in rank order.
var tierFuncs = [TierN]DenseFunc{
	TierScalar: denseScalar,
	TierVec128: denseVec128,
	TierWide:   denseWide,
}

// Func returns the kernel implementation for this tier regardless of
// hardware availability -- used by the benchmark harness and tests to compare
// tiers directly. Use Dense for the hardware-selected kernel.
func (ev Tier) Func() DenseFunc {
	return tierFuncs[ev]
}

// Features describes the probed CPU capabilities relevant to tier selection.
type Features struct {
	// Vec128 is true when 128-bit SIMD is present: ASIMD (NEON) on arm64,
	// SSE2 on amd64. The Vec128 kernel is pure Go, so this gates ranking,
	// not correctness.
	Vec128 bool

	// Wide is true when matrix-extension hardware is present. Go cannot
	// probe SME/AMX via x/sys/cpu today, so this is never set by Probe;
	// it exists so the downgrade path is real and testable.
	Wide bool

	// Arch is runtime.GOARCH, recorded for benchmark reports.
	Arch string
}

var (
	probeOnce sync.Once
	probed    Features

	forcedMu sync.RWMutex
	forced   *Features
)

// Probe returns the CPU features of this machine, detected once and cached.
func Probe() Features {
	forcedMu.RLock()
	f := forced
	forcedMu.RUnlock()
	if f != nil {
		return *f
	}
	probeOnce.Do(func() {
		probed = Features{Arch: runtime.GOARCH}
		switch runtime.GOARCH {
		case "arm64":
			probed.Vec128 = cpu.ARM64.HasASIMD
		case "amd64":
			probed.Vec128 = cpu.X86.HasSSE2
		}
	})
	return probed
}

// SetForcedFeatures overrides hardware detection, for testing the selection
// and downgrade paths. Pass nil to restore real detection.
func SetForcedFeatures(f *Features) {
	forcedMu.Lock()
	if f != nil {
		cp := *f
		forced = &cp
	} else {
		forced = nil
	}
	forcedMu.Unlock()
}

// Available reports whether this tier's hardware requirement is met.
// TierScalar is always available.
func (ev Tier) Available(f Features) bool {
	switch ev {
	case TierScalar:
		return true
	case TierVec128:
		return f.Vec128
	case TierWide:
		return f.Wide
	}
	return false
}

// Select returns the highest-ranked tier available under the given features,
// downgrading Wide -> Vec128 -> Scalar.
func Select(f Features) Tier {
	for t := TierN - 1; t > TierScalar; t-- {
		if t.Available(f) {
			return t
		}
	}
	return TierScalar
}

// SelectedTier returns the tier chosen for this process from the probed
// (or forced) features.
func SelectedTier() Tier {
	return Select(Probe())
}

// Dense returns the process-selected dense kernel. The selection itself is
// cheap (cached probe + ranked scan), so callers that want zero per-call
// overhead should capture the returned function once.
func Dense() DenseFunc {
	return SelectedTier().Func()
}
