// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cortexn is the overall repository for the CortexN on-device
neuromorphic inference engine implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* snn: the spiking core -- leaky integrate-and-fire neuron layers with
persistent membrane and synaptic state, driven through dense projections.

* encode: spike encoders that turn continuous sensor values into binary
spike trains: stochastic rate coding, time-to-first-spike latency coding,
and stateful temporal-contrast (ON/OFF edge) coding.

* kernels: the tiered dense compute kernels with runtime CPU-capability
dispatch (scalar baseline, 128-bit SIMD-shaped, wide extension point) and
the empirical benchmark harness that ranks them on the actual device.

* ringbuf: a lock-free single-producer single-consumer ring buffer for
streaming samples between a real-time producer and a consumer thread.

* backend: the host-boundary interface for delegating model stages to an
external inference runtime, so engines can be swapped or faked in tests.

* privacy: a thin homomorphic-encryption bridge for aggregating on-device
telemetry without exposing raw values.

* examples: these actually compile into runnable programs. examples/reflex
is the place to start: a full sense-encode-spike-stream loop. examples/bench
measures the compute kernels on your hardware.
*/
package cortexn
