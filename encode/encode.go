// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package encode converts continuous signals into spike trains for the snn
layers. Three codings are provided:

  - Rate: independent Bernoulli draw per (step, batch, feature) with
    p = sigmoid(gain * input) -- stochastic and lossy; reproducible only
    when the random stream is seeded identically.
  - Latency: deterministic single spike per feature, earlier for larger
    inputs.
  - Contrast: stateful ON / OFF temporal edge detector over a sample stream.

Spike trains are etensor.Float32 tensors shaped [steps, batch, feature] with
values in {0, 1}. Encoders never touch layer state and can run ahead of or
independently from the layers consuming their output.
*/
package encode

import (
	"fmt"

	"github.com/emer/etable/etensor"
	"github.com/goki/ki/kit"
)

// Encodings are the spike encoding strategies.
type Encodings int32

//go:generate stringer -type=Encodings

var KiT_Encodings = kit.Enums.AddEnum(EncodingsN, kit.NotBitFlag, nil)

func (ev Encodings) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Encodings) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Rate codes intensity as spike probability per time step.
	Rate Encodings = iota

	// Latency codes intensity as time-to-first-spike.
	Latency

	// Contrast codes temporal change as ON / OFF spike pairs.
	Contrast

	EncodingsN
)

// Encoder is a whole-train spike coder. Rate and Latency interpret input as
// one [batch, feature] sample spread over the train's time steps; Contrast
// interprets input as a [steps, batch, feature] sample sequence (see
// ContrastEncoder). Implementations validate all sizes and return a
// descriptive error on mismatch.
type Encoder interface {
	// Encode writes spikes into train, which must have been allocated with
	// NewSpikeTrain using this encoder's dimensions.
	Encode(input []float32, train *etensor.Float32, batch int) error
}

// NewEncoder returns an encoder of the given strategy for in features over
// steps time steps, with default parameters.
func NewEncoder(enc Encodings, in, steps int) (Encoder, error) {
	switch enc {
	case Rate:
		return NewRateEncoder(in, steps, DefaultRateSeed)
	case Latency:
		return NewLatencyEncoder(in, steps)
	case Contrast:
		return NewContrastEncoder(in, steps, DefaultContrastThr)
	}
	return nil, fmt.Errorf("encode.NewEncoder: unknown encoding %d", enc)
}

// NewSpikeTrain allocates a zeroed [steps, batch, feature] spike tensor.
func NewSpikeTrain(steps, batch, feature int) (*etensor.Float32, error) {
	if steps < 1 || batch < 1 || feature < 1 {
		return nil, fmt.Errorf("encode.NewSpikeTrain: invalid shape [%d, %d, %d] -- all dims must be >= 1", steps, batch, feature)
	}
	return etensor.NewFloat32([]int{steps, batch, feature}, nil, []string{"Step", "Batch", "Feature"}), nil
}

// StepSlice returns the contiguous [batch, feature] values for one time
// step of a spike train, for feeding a layer's Forward one step at a time.
func StepSlice(train *etensor.Float32, step int) ([]float32, error) {
	if train.NumDims() != 3 {
		return nil, fmt.Errorf("encode.StepSlice: train must be [steps, batch, feature], got %d dims", train.NumDims())
	}
	if step < 0 || step >= train.Dim(0) {
		return nil, fmt.Errorf("encode.StepSlice: step %d out of range [0, %d)", step, train.Dim(0))
	}
	n := train.Dim(1) * train.Dim(2)
	st := step * n
	return train.Values[st : st+n], nil
}

// checkTrain validates that train matches [steps, batch, feature] and that
// input carries n = inputSteps*batch*feature values.
func checkTrain(op string, input []float32, train *etensor.Float32, inputSteps, steps, batch, feature int) error {
	if batch < 1 {
		return fmt.Errorf("%s: batch must be >= 1, got %d", op, batch)
	}
	if train.NumDims() != 3 {
		return fmt.Errorf("%s: train must be 3D [steps, batch, feature], got %d dims", op, train.NumDims())
	}
	if train.Dim(0) != steps || train.Dim(1) != batch || train.Dim(2) != feature {
		return fmt.Errorf("%s: train shape [%d, %d, %d] does not match [%d, %d, %d]",
			op, train.Dim(0), train.Dim(1), train.Dim(2), steps, batch, feature)
	}
	if want := inputSteps * batch * feature; len(input) != want {
		return fmt.Errorf("%s: input len %d != %d", op, len(input), want)
	}
	return nil
}
