// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encode

import (
	"fmt"

	"github.com/emer/etable/etensor"
)

// DefaultContrastThr is the default ON / OFF emission threshold.
const DefaultContrastThr = float32(0.1)

// ContrastEncoder is a stateful temporal-contrast (edge) coder: for each
// feature it compares the current sample against the previously stored one
// and emits an ON spike when the delta exceeds Thr, an OFF spike when it
// falls below -Thr, and nothing otherwise. The stored sample is always
// updated, whether or not a spike was emitted.
//
// EncodeStep is the streaming primitive, processing one sample at a time.
// Encode consumes a whole [steps, batch, feature] sample sequence and fills
// a train with 2*In feature planes: ON spikes in features [0, In), OFF
// spikes in [In, 2*In).
type ContrastEncoder struct {
	In    int     `desc:"number of input features"`
	Steps int     `desc:"time steps per encoded train"`
	Thr   float32 `def:"0.1" desc:"emission threshold on the per-feature delta"`

	prev []float32 // previous sample, len = batch*In, sized on first use
}

// NewContrastEncoder returns a temporal-contrast encoder for in features
// over steps time steps with the given threshold.
func NewContrastEncoder(in, steps int, thr float32) (*ContrastEncoder, error) {
	if in < 1 || steps < 1 {
		return nil, fmt.Errorf("encode.NewContrastEncoder: invalid dims in=%d steps=%d", in, steps)
	}
	if thr <= 0 {
		return nil, fmt.Errorf("encode.NewContrastEncoder: threshold must be > 0, got %g", thr)
	}
	return &ContrastEncoder{In: in, Steps: steps, Thr: thr}, nil
}

// Reset discards the stored previous sample; the next sample starts a new
// stream compared against zero.
func (ce *ContrastEncoder) Reset() {
	ce.prev = nil
}

// EncodeStep processes one sample: input, on, and off must all be
// batch*In long for a consistent batch across the stream. The first sample
// of a stream is compared against zero.
func (ce *ContrastEncoder) EncodeStep(input, on, off []float32) error {
	if len(input) < ce.In || len(input)%ce.In != 0 {
		return fmt.Errorf("encode.ContrastEncoder.EncodeStep: input len %d is not a multiple of In %d", len(input), ce.In)
	}
	if len(on) != len(input) || len(off) != len(input) {
		return fmt.Errorf("encode.ContrastEncoder.EncodeStep: on/off lens %d, %d != input len %d", len(on), len(off), len(input))
	}
	if ce.prev == nil {
		ce.prev = make([]float32, len(input))
	} else if len(ce.prev) != len(input) {
		return fmt.Errorf("encode.ContrastEncoder.EncodeStep: sample width changed from %d to %d mid-stream -- call Reset first", len(ce.prev), len(input))
	}
	for i, x := range input {
		delta := x - ce.prev[i]
		switch {
		case delta > ce.Thr:
			on[i], off[i] = 1, 0
		case delta < -ce.Thr:
			on[i], off[i] = 0, 1
		default:
			on[i], off[i] = 0, 0
		}
		ce.prev[i] = x
	}
	return nil
}

// Encode consumes a [Steps, batch, In] sample sequence and fills train
// [Steps, batch, 2*In] with ON / OFF spike planes. State carries over from
// any previous Encode or EncodeStep calls on the same stream.
func (ce *ContrastEncoder) Encode(input []float32, train *etensor.Float32, batch int) error {
	const op = "encode.ContrastEncoder.Encode"
	if batch < 1 {
		return fmt.Errorf("%s: batch must be >= 1, got %d", op, batch)
	}
	if train.NumDims() != 3 {
		return fmt.Errorf("%s: train must be 3D [steps, batch, feature], got %d dims", op, train.NumDims())
	}
	if train.Dim(0) != ce.Steps || train.Dim(1) != batch || train.Dim(2) != 2*ce.In {
		return fmt.Errorf("%s: train shape [%d, %d, %d] does not match [%d, %d, %d]",
			op, train.Dim(0), train.Dim(1), train.Dim(2), ce.Steps, batch, 2*ce.In)
	}
	if want := ce.Steps * batch * ce.In; len(input) != want {
		return fmt.Errorf("%s: input len %d != %d", op, len(input), want)
	}

	n := batch * ce.In
	on := make([]float32, n)
	off := make([]float32, n)
	for t := 0; t < ce.Steps; t++ {
		if err := ce.EncodeStep(input[t*n:(t+1)*n], on, off); err != nil {
			return err
		}
		for b := 0; b < batch; b++ {
			row := train.Values[t*batch*2*ce.In+b*2*ce.In:]
			copy(row[:ce.In], on[b*ce.In:(b+1)*ce.In])
			copy(row[ce.In:2*ce.In], off[b*ce.In:(b+1)*ce.In])
		}
	}
	return nil
}
