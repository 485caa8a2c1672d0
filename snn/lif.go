// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package snn implements the CortexN spiking layer: leaky integrate-and-fire
(LIF) neurons driven through a dense synaptic projection. Each neuron carries
two exponentially-decaying state variables, the synaptic current Isyn and the
membrane potential Vm, updated per time step as

	Isyn = BetaSyn*Isyn + drive
	Vm   = BetaMem*Vm + Isyn

where drive is the weighted sum of presynaptic spikes plus bias. A neuron
emits a binary spike when Vm crosses VThresh and is hard-reset to VReset on
the same step. The decay factors are derived from the membrane and synaptic
time constants, Beta = exp(-Dt/Tau), so they always lie in (0, 1) and state
decays toward rest in the absence of input.
*/
package snn

import (
	"fmt"

	"github.com/chewxy/math32"
)

// LIFParams are the time constants and voltage levels governing leaky
// integrate-and-fire dynamics. Call Update after changing any Tau or Dt
// value to recompute the decay factors.
type LIFParams struct {
	TauMem  float32 `def:"10" min:"0" desc:"membrane potential time constant in msec -- how slowly Vm leaks back toward rest; larger = longer integration window"`
	TauSyn  float32 `def:"5" min:"0" desc:"synaptic current time constant in msec -- how slowly Isyn decays after an input spike"`
	VThresh float32 `def:"1" desc:"firing threshold on Vm -- crossing it emits a spike and hard-resets Vm to VReset"`
	VReset  float32 `def:"0" desc:"potential Vm is reset to immediately after a spike"`
	VRest   float32 `def:"0" desc:"resting potential that Vm decays toward with no input"`
	Dt      float32 `def:"1" min:"0" desc:"integration time step in msec -- one Forward call advances state by this much"`

	BetaMem float32 `view:"-" json:"-" xml:"-" desc:"per-step membrane decay = exp(-Dt/TauMem)"`
	BetaSyn float32 `view:"-" json:"-" xml:"-" desc:"per-step synaptic decay = exp(-Dt/TauSyn)"`
}

func (lp *LIFParams) Update() {
	lp.BetaMem = math32.Exp(-lp.Dt / lp.TauMem)
	lp.BetaSyn = math32.Exp(-lp.Dt / lp.TauSyn)
}

func (lp *LIFParams) Defaults() {
	lp.TauMem = 10
	lp.TauSyn = 5
	lp.VThresh = 1
	lp.VReset = 0
	lp.VRest = 0
	lp.Dt = 1
	lp.Update()
}

// Validate checks that the parameters produce well-defined dynamics:
// positive time constants and step, decay factors strictly inside (0, 1),
// and a threshold above the reset potential.
func (lp *LIFParams) Validate() error {
	if lp.TauMem <= 0 || lp.TauSyn <= 0 {
		return fmt.Errorf("snn.LIFParams: time constants must be > 0, got TauMem=%g TauSyn=%g", lp.TauMem, lp.TauSyn)
	}
	if lp.Dt <= 0 {
		return fmt.Errorf("snn.LIFParams: Dt must be > 0, got %g", lp.Dt)
	}
	if lp.VThresh <= lp.VReset {
		return fmt.Errorf("snn.LIFParams: VThresh (%g) must be > VReset (%g)", lp.VThresh, lp.VReset)
	}
	if lp.BetaMem <= 0 || lp.BetaMem >= 1 || lp.BetaSyn <= 0 || lp.BetaSyn >= 1 {
		return fmt.Errorf("snn.LIFParams: decay factors out of (0,1): BetaMem=%g BetaSyn=%g -- call Update after setting Taus", lp.BetaMem, lp.BetaSyn)
	}
	return nil
}
