// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encode

import (
	"fmt"

	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
)

// LatencyEncoder codes intensity as time-to-first-spike: exactly one spike
// per feature, earlier for larger inputs. Input is normalized to [0, 1] via
// (x+1)/2 clamped, then spikeTime = floor((1 - norm) * Steps), clamped to
// the last step. Fully deterministic.
type LatencyEncoder struct {
	In       int        `desc:"number of input features"`
	Steps    int        `desc:"time steps per encoded train"`
	NormRnge minmax.F32 `desc:"range inputs are clamped into after the (x+1)/2 normalization -- [0, 1]"`
}

// NewLatencyEncoder returns a latency encoder for in features over steps
// time steps.
func NewLatencyEncoder(in, steps int) (*LatencyEncoder, error) {
	if in < 1 || steps < 1 {
		return nil, fmt.Errorf("encode.NewLatencyEncoder: invalid dims in=%d steps=%d", in, steps)
	}
	le := &LatencyEncoder{In: in, Steps: steps}
	le.NormRnge.Set(0, 1)
	return le, nil
}

// SpikeTime returns the time step at which the spike for input value x
// occurs, in [0, Steps-1].
func (le *LatencyEncoder) SpikeTime(x float32) int {
	norm := le.NormRnge.ClipVal((x + 1) / 2)
	st := int((1 - norm) * float32(le.Steps))
	if st > le.Steps-1 {
		st = le.Steps - 1
	}
	return st
}

// Encode zeroes train [Steps, batch, In] and sets the single spike per
// (batch, feature) at its computed time.
func (le *LatencyEncoder) Encode(input []float32, train *etensor.Float32, batch int) error {
	if err := checkTrain("encode.LatencyEncoder.Encode", input, train, 1, le.Steps, batch, le.In); err != nil {
		return err
	}
	vals := train.Values
	for i := range vals {
		vals[i] = 0
	}
	n := batch * le.In
	for j, x := range input {
		vals[le.SpikeTime(x)*n+j] = 1
	}
	return nil
}
