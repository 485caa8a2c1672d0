// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encode

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/emer/etable/etensor"
	"github.com/seehuhn/mt19937"
)

// Default rate-coding parameters.
const (
	// DefaultRateGain is the sigmoid gain: p = sigmoid(gain * input).
	DefaultRateGain = float32(10)

	// DefaultRateSeed seeds the encoder's mt19937 stream.
	DefaultRateSeed = int64(42)
)

// RateEncoder codes intensity as spike probability: each (step, batch,
// feature) cell draws an independent Bernoulli spike with
// p = sigmoid(Gain * input). The coding is stochastic and lossy; two runs
// produce the same train only if constructed with the same seed.
type RateEncoder struct {
	In    int     `desc:"number of input features"`
	Steps int     `desc:"time steps per encoded train"`
	Gain  float32 `def:"10" desc:"sigmoid gain on input intensity"`

	rnd *rand.Rand
}

// NewRateEncoder returns a rate encoder for in features over steps time
// steps, with its own mt19937 random stream seeded with seed.
func NewRateEncoder(in, steps int, seed int64) (*RateEncoder, error) {
	if in < 1 || steps < 1 {
		return nil, fmt.Errorf("encode.NewRateEncoder: invalid dims in=%d steps=%d", in, steps)
	}
	src := mt19937.New()
	src.Seed(seed)
	return &RateEncoder{In: in, Steps: steps, Gain: DefaultRateGain, rnd: rand.New(src)}, nil
}

// Seed reseeds the random stream, restarting the spike sequence
// deterministically.
func (re *RateEncoder) Seed(seed int64) {
	src := mt19937.New()
	src.Seed(seed)
	re.rnd = rand.New(src)
}

// SpikeProb returns the spike probability for one input value.
func (re *RateEncoder) SpikeProb(x float32) float32 {
	return 1 / (1 + math32.Exp(-re.Gain*x))
}

// EncodeValue draws one Bernoulli spike for one input value.
func (re *RateEncoder) EncodeValue(x float32) float32 {
	if re.rnd.Float32() < re.SpikeProb(x) {
		return 1
	}
	return 0
}

// Encode fills train [Steps, batch, In] with Bernoulli spikes drawn from the
// [batch, In] input sample.
func (re *RateEncoder) Encode(input []float32, train *etensor.Float32, batch int) error {
	if err := checkTrain("encode.RateEncoder.Encode", input, train, 1, re.Steps, batch, re.In); err != nil {
		return err
	}
	vals := train.Values
	idx := 0
	for t := 0; t < re.Steps; t++ {
		for j := 0; j < batch*re.In; j++ {
			vals[idx] = re.EncodeValue(input[j])
			idx++
		}
	}
	return nil
}
