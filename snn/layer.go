// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"math/rand"

	"github.com/cortexn/cortexn/kernels"
	"github.com/seehuhn/mt19937"
)

// Layer is a dense projection of In presynaptic inputs onto Out LIF neurons,
// with per-neuron persistent state. Forward advances all neurons by one time
// step; state carries across calls until Reset.
type Layer struct {
	In      int       `desc:"number of presynaptic input features"`
	Out     int       `desc:"number of LIF neurons in this layer"`
	Par     LIFParams `desc:"integrate-and-fire dynamics parameters"`
	Weights []float32 `desc:"synaptic weights, [Out, In] row-major by neuron"`
	Bias    []float32 `desc:"per-neuron constant bias current, [Out]"`
	Vm      []float32 `desc:"membrane potentials, [Out]"`
	Isyn    []float32 `desc:"synaptic currents, [Out]"`

	drive []float32         // per-step dense output scratch, [Out]
	dense kernels.DenseFunc // forward kernel, captured at construction
}

// NewLayer returns a layer of out LIF neurons over in inputs, with default
// parameters, zero weights and biases, and state at rest. The compute kernel
// is selected once here from the probed hardware tier.
func NewLayer(in, out int) (*Layer, error) {
	if in < 1 || out < 1 {
		return nil, fmt.Errorf("snn.NewLayer: invalid dims in=%d out=%d", in, out)
	}
	ly := &Layer{In: in, Out: out}
	ly.Par.Defaults()
	ly.Weights = make([]float32, out*in)
	ly.Bias = make([]float32, out)
	ly.Vm = make([]float32, out)
	ly.Isyn = make([]float32, out)
	ly.drive = make([]float32, out)
	ly.dense = kernels.Dense()
	return ly, nil
}

// LoadWeights installs trained weights ([Out, In] row-major) and biases
// ([Out]), copying them into the layer's own storage.
func (ly *Layer) LoadWeights(weights, bias []float32) error {
	if len(weights) != ly.Out*ly.In {
		return fmt.Errorf("snn.Layer.LoadWeights: weights len %d != Out*In = %d", len(weights), ly.Out*ly.In)
	}
	if len(bias) != ly.Out {
		return fmt.Errorf("snn.Layer.LoadWeights: bias len %d != Out = %d", len(bias), ly.Out)
	}
	copy(ly.Weights, weights)
	copy(ly.Bias, bias)
	return nil
}

// InitWeights sets weights to gaussian random values with the given mean and
// standard deviation, and biases to zero, using a dedicated seeded stream.
func (ly *Layer) InitWeights(mean, std float32, seed int64) {
	src := mt19937.New()
	src.Seed(seed)
	rnd := rand.New(src)
	for i := range ly.Weights {
		ly.Weights[i] = mean + std*float32(rnd.NormFloat64())
	}
	for i := range ly.Bias {
		ly.Bias[i] = 0
	}
}

// Reset returns all neurons to rest: Vm to VRest, Isyn to zero. Weights and
// biases are untouched.
func (ly *Layer) Reset() {
	for i := 0; i < ly.Out; i++ {
		ly.Vm[i] = ly.Par.VRest
		ly.Isyn[i] = 0
	}
}

// Forward advances every neuron by one time step. spikes is the presynaptic
// binary spike vector [In]; out receives the layer's binary spikes [Out].
// The synaptic drive is computed by the selected dense kernel, then each
// neuron decays, integrates, and fires with hard reset at threshold.
func (ly *Layer) Forward(spikes, out []float32) error {
	if len(spikes) != ly.In {
		return fmt.Errorf("snn.Layer.Forward: spikes len %d != In = %d", len(spikes), ly.In)
	}
	if len(out) != ly.Out {
		return fmt.Errorf("snn.Layer.Forward: out len %d != Out = %d", len(out), ly.Out)
	}
	if err := ly.Par.Validate(); err != nil {
		return err
	}
	ly.dense(spikes, ly.Weights, ly.Bias, ly.drive, 1, ly.In, ly.Out)
	for o := 0; o < ly.Out; o++ {
		ly.Isyn[o] = ly.Par.BetaSyn*ly.Isyn[o] + ly.drive[o]
		ly.Vm[o] = ly.Par.BetaMem*ly.Vm[o] + ly.Isyn[o]
		if ly.Vm[o] >= ly.Par.VThresh {
			out[o] = 1
			ly.Vm[o] = ly.Par.VReset
		} else {
			out[o] = 0
		}
	}
	return nil
}

// UnitValues fills vals with the named per-neuron state variable ("Vm" or
// "Isyn"), resizing vals only if not big enough.
func (ly *Layer) UnitValues(vals *[]float32, varNm string) error {
	if *vals == nil || cap(*vals) < ly.Out {
		*vals = make([]float32, ly.Out)
	} else {
		*vals = (*vals)[0:ly.Out]
	}
	var src []float32
	switch varNm {
	case "Vm":
		src = ly.Vm
	case "Isyn":
		src = ly.Isyn
	default:
		return fmt.Errorf("snn.Layer.UnitValues: unknown variable %q", varNm)
	}
	copy(*vals, src)
	return nil
}
