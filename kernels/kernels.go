// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package kernels provides the tiered dense-forward compute kernels for CortexN,
along with runtime hardware-capability dispatch and an empirical benchmark
harness for comparing tiers on the actual device.

All tiers compute the same dense linear operator over a batch of spike vectors:

	output[b,o] = bias[o] + sum_i weights[o,i] * spikes[b,i]

with weights row-major by output neuron. Tiers differ only in throughput:
results agree with the scalar baseline within floating-point rounding
(reordered accumulation), bounded by a small relative tolerance.

The tier is selected once at initialization from probed CPU features, highest
capability first with graceful downgrade (Wide -> Vec128 -> Scalar); after
that, dispatch is a single function-value indirection with no per-call
branching.
*/
package kernels

// DenseFunc computes the dense spike forward pass. spikes is [batch, in],
// weights is [out, in] row-major, bias is [out], output is [batch, out].
// Implementations are pure: no state, no allocation, caller owns all buffers.
type DenseFunc func(spikes, weights, bias, output []float32, batch, in, out int)

// denseScalar is the straightforward triple loop, the correctness baseline
// for all other tiers.
func denseScalar(spikes, weights, bias, output []float32, batch, in, out int) {
	for b := 0; b < batch; b++ {
		srow := spikes[b*in : (b+1)*in]
		orow := output[b*out : (b+1)*out]
		for o := 0; o < out; o++ {
			wrow := weights[o*in : (o+1)*in]
			sum := bias[o]
			for i, w := range wrow {
				sum += w * srow[i]
			}
			orow[o] = sum
		}
	}
}

// denseVec128 processes 4 elements per inner iteration using independent
// accumulator lanes, with a horizontal reduce and a scalar tail for the
// remainder. The 4-lane structure mirrors 128-bit SIMD (one float32x4
// register) and lets the compiler keep the lanes in registers; accumulation
// order differs from scalar, so results can differ by rounding.
func denseVec128(spikes, weights, bias, output []float32, batch, in, out int) {
	for b := 0; b < batch; b++ {
		srow := spikes[b*in : (b+1)*in]
		orow := output[b*out : (b+1)*out]
		for o := 0; o < out; o++ {
			wrow := weights[o*in : (o+1)*in]
			var s0, s1, s2, s3 float32
			i := 0
			for ; i+3 < in; i += 4 {
				s0 += wrow[i] * srow[i]
				s1 += wrow[i+1] * srow[i+1]
				s2 += wrow[i+2] * srow[i+2]
				s3 += wrow[i+3] * srow[i+3]
			}
			sum := bias[o] + ((s0 + s2) + (s1 + s3)) // horizontal reduce
			for ; i < in; i++ {
				sum += wrow[i] * srow[i]
			}
			orow[o] = sum
		}
	}
}

// denseWide is the extension point for matrix-extension hardware (SME / AMX
// class). No such extension is expressible from Go or probeable via
// x/sys/cpu today, so this tier delegates to denseVec128 -- a documented
// fallback, never a silent divergence. Replace the body (and the Wide probe
// in dispatch.go) when real wide-SIMD support lands.
func denseWide(spikes, weights, bias, output []float32, batch, in, out int) {
	denseVec128(spikes, weights, bias, output, batch, in, out)
}
