// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"testing"

	"github.com/chewxy/math32"
)

const difTol = float32(1e-6)

func TestLIFParamsDefaults(t *testing.T) {
	var lp LIFParams
	lp.Defaults()
	if err := lp.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if lp.TauMem != 10 || lp.TauSyn != 5 || lp.VThresh != 1 || lp.VReset != 0 || lp.Dt != 1 {
		t.Errorf("unexpected defaults: %+v", lp)
	}
	wantMem := math32.Exp(-1.0 / 10)
	wantSyn := math32.Exp(-1.0 / 5)
	if math32.Abs(lp.BetaMem-wantMem) > difTol || math32.Abs(lp.BetaSyn-wantSyn) > difTol {
		t.Errorf("decay factors: BetaMem=%v want %v, BetaSyn=%v want %v", lp.BetaMem, wantMem, lp.BetaSyn, wantSyn)
	}
	if lp.BetaMem <= 0 || lp.BetaMem >= 1 || lp.BetaSyn <= 0 || lp.BetaSyn >= 1 {
		t.Errorf("decay factors must lie in (0,1): %v, %v", lp.BetaMem, lp.BetaSyn)
	}
}

func TestLIFParamsValidate(t *testing.T) {
	cases := []func(lp *LIFParams){
		func(lp *LIFParams) { lp.TauMem = 0 },
		func(lp *LIFParams) { lp.TauSyn = -1 },
		func(lp *LIFParams) { lp.Dt = 0 },
		func(lp *LIFParams) { lp.VThresh = lp.VReset },
	}
	for i, mod := range cases {
		var lp LIFParams
		lp.Defaults()
		mod(&lp)
		lp.Update()
		if err := lp.Validate(); err == nil {
			t.Errorf("case %d: invalid params passed Validate", i)
		}
	}
}

// TestForwardThresholdReset drives a 4 -> 2 layer with uniform 0.5 weights
// and two active inputs: the drive is exactly 1.0 per neuron, so Vm reaches
// threshold on the first step, both neurons spike, and Vm hard-resets.
func TestForwardThresholdReset(t *testing.T) {
	ly, err := NewLayer(4, 2)
	if err != nil {
		t.Fatalf("NewLayer failed: %v", err)
	}
	w := make([]float32, 8)
	for i := range w {
		w[i] = 0.5
	}
	if err := ly.LoadWeights(w, make([]float32, 2)); err != nil {
		t.Fatalf("LoadWeights failed: %v", err)
	}
	out := make([]float32, 2)
	if err := ly.Forward([]float32{1, 0, 0, 1}, out); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	for o := 0; o < 2; o++ {
		if out[o] != 1 {
			t.Errorf("neuron %d: no spike, Vm=%v Isyn=%v", o, ly.Vm[o], ly.Isyn[o])
		}
		if ly.Vm[o] != ly.Par.VReset {
			t.Errorf("neuron %d: Vm=%v not reset to %v", o, ly.Vm[o], ly.Par.VReset)
		}
	}
}

// TestForwardAccumulation drives a neuron below threshold and checks the
// two-variable cascade against hand-computed values across steps.
func TestForwardAccumulation(t *testing.T) {
	ly, _ := NewLayer(1, 1)
	ly.LoadWeights([]float32{0.3}, []float32{0})
	in := []float32{1}
	out := make([]float32, 1)

	var isyn, vm float32
	for step := 0; step < 3; step++ {
		if err := ly.Forward(in, out); err != nil {
			t.Fatalf("Forward failed at step %d: %v", step, err)
		}
		isyn = ly.Par.BetaSyn*isyn + 0.3
		vm = ly.Par.BetaMem*vm + isyn
		spike := float32(0)
		if vm >= ly.Par.VThresh {
			spike = 1
			vm = ly.Par.VReset
		}
		if math32.Abs(ly.Isyn[0]-isyn) > difTol || math32.Abs(ly.Vm[0]-vm) > difTol {
			t.Errorf("step %d: Isyn=%v want %v, Vm=%v want %v", step, ly.Isyn[0], isyn, ly.Vm[0], vm)
		}
		if out[0] != spike {
			t.Errorf("step %d: spike=%v want %v", step, out[0], spike)
		}
	}
}

func TestForwardBinaryOutputs(t *testing.T) {
	ly, _ := NewLayer(8, 6)
	ly.InitWeights(0.1, 0.4, 17)
	in := make([]float32, 8)
	out := make([]float32, 6)
	for step := 0; step < 50; step++ {
		for i := range in {
			in[i] = float32((step + i) % 2)
		}
		if err := ly.Forward(in, out); err != nil {
			t.Fatalf("Forward failed: %v", err)
		}
		for o, v := range out {
			if v != 0 && v != 1 {
				t.Fatalf("step %d neuron %d: non-binary output %v", step, o, v)
			}
		}
	}
}

func TestDecayWithoutInput(t *testing.T) {
	ly, _ := NewLayer(2, 1)
	ly.LoadWeights([]float32{0.4, 0.4}, []float32{0})
	out := make([]float32, 1)
	ly.Forward([]float32{1, 1}, out)
	if out[0] != 0 {
		t.Fatalf("unexpected spike from drive 0.8")
	}
	vm0, isyn0 := ly.Vm[0], ly.Isyn[0]
	zero := []float32{0, 0}
	for step := 0; step < 100; step++ {
		ly.Forward(zero, out)
		if ly.Vm[0] < 0 {
			t.Fatalf("Vm fell below rest: %v", ly.Vm[0])
		}
	}
	if ly.Vm[0] >= vm0 || ly.Isyn[0] >= isyn0 {
		t.Errorf("state did not decay: Vm %v -> %v, Isyn %v -> %v", vm0, ly.Vm[0], isyn0, ly.Isyn[0])
	}
	if ly.Vm[0] > 1e-3 || ly.Isyn[0] > 1e-3 {
		t.Errorf("state did not decay toward rest after 100 steps: Vm=%v Isyn=%v", ly.Vm[0], ly.Isyn[0])
	}
}

func TestReset(t *testing.T) {
	ly, _ := NewLayer(2, 2)
	ly.LoadWeights([]float32{0.4, 0, 0, 0.4}, []float32{0})
	out := make([]float32, 2)
	ly.Forward([]float32{1, 1}, out)
	ly.Reset()
	for o := 0; o < 2; o++ {
		if ly.Vm[o] != ly.Par.VRest || ly.Isyn[o] != 0 {
			t.Errorf("neuron %d: Reset left Vm=%v Isyn=%v", o, ly.Vm[o], ly.Isyn[o])
		}
	}
	// reset twice is the same as once
	ly.Reset()
	if ly.Vm[0] != ly.Par.VRest || ly.Isyn[0] != 0 {
		t.Errorf("second Reset changed state")
	}
	// weights survive reset
	if ly.Weights[0] != 0.4 {
		t.Errorf("Reset touched weights")
	}
}

func TestLayerValidation(t *testing.T) {
	if _, err := NewLayer(0, 1); err == nil {
		t.Errorf("zero inputs should fail")
	}
	if _, err := NewLayer(1, 0); err == nil {
		t.Errorf("zero neurons should fail")
	}
	ly, _ := NewLayer(3, 2)
	if err := ly.LoadWeights(make([]float32, 5), make([]float32, 2)); err == nil {
		t.Errorf("wrong weights len should fail")
	}
	if err := ly.LoadWeights(make([]float32, 6), make([]float32, 3)); err == nil {
		t.Errorf("wrong bias len should fail")
	}
	out := make([]float32, 2)
	if err := ly.Forward(make([]float32, 2), out); err == nil {
		t.Errorf("wrong spikes len should fail")
	}
	if err := ly.Forward(make([]float32, 3), make([]float32, 1)); err == nil {
		t.Errorf("wrong out len should fail")
	}
	ly.Par.TauMem = -1
	ly.Par.Update()
	if err := ly.Forward(make([]float32, 3), out); err == nil {
		t.Errorf("invalid params should fail fast in Forward")
	}
}

func TestInitWeightsDeterminism(t *testing.T) {
	ly1, _ := NewLayer(16, 8)
	ly2, _ := NewLayer(16, 8)
	ly1.InitWeights(0, 0.2, 42)
	ly2.InitWeights(0, 0.2, 42)
	for i := range ly1.Weights {
		if ly1.Weights[i] != ly2.Weights[i] {
			t.Fatalf("same seed, different weights at %d", i)
		}
	}
	ly2.InitWeights(0, 0.2, 43)
	same := true
	for i := range ly1.Weights {
		if ly1.Weights[i] != ly2.Weights[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("different seeds produced identical weights")
	}
}

func TestUnitValues(t *testing.T) {
	ly, _ := NewLayer(2, 3)
	ly.LoadWeights(make([]float32, 6), []float32{0.1, 0.2, 0.3})
	out := make([]float32, 3)
	ly.Forward([]float32{0, 0}, out)
	var vals []float32
	if err := ly.UnitValues(&vals, "Isyn"); err != nil {
		t.Fatalf("UnitValues failed: %v", err)
	}
	for o, want := range []float32{0.1, 0.2, 0.3} {
		if math32.Abs(vals[o]-want) > difTol {
			t.Errorf("Isyn[%d] = %v, want %v", o, vals[o], want)
		}
	}
	if err := ly.UnitValues(&vals, "Act"); err == nil {
		t.Errorf("unknown variable should fail")
	}
}
