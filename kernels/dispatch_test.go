// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import "testing"

func TestSelectDowngrade(t *testing.T) {
	cases := []struct {
		feats Features
		want  Tier
	}{
		{Features{Wide: true, Vec128: true}, TierWide},
		{Features{Wide: true, Vec128: false}, TierWide},
		{Features{Wide: false, Vec128: true}, TierVec128},
		{Features{Wide: false, Vec128: false}, TierScalar},
	}
	for _, cs := range cases {
		if got := Select(cs.feats); got != cs.want {
			t.Errorf("Select(%+v): got %s, want %s", cs.feats, got, cs.want)
		}
	}
}

func TestForcedFeatures(t *testing.T) {
	defer SetForcedFeatures(nil)

	SetForcedFeatures(&Features{Vec128: false, Wide: false, Arch: "test"})
	if got := SelectedTier(); got != TierScalar {
		t.Errorf("forced bare scalar: got %s", got)
	}
	SetForcedFeatures(&Features{Vec128: true, Arch: "test"})
	if got := SelectedTier(); got != TierVec128 {
		t.Errorf("forced vec128: got %s", got)
	}
	// Dense must follow the forced selection.
	if Dense() == nil {
		t.Errorf("Dense returned nil")
	}
}

func TestTierAvailability(t *testing.T) {
	none := Features{}
	if !TierScalar.Available(none) {
		t.Errorf("scalar must always be available")
	}
	if TierVec128.Available(none) || TierWide.Available(none) {
		t.Errorf("vec128/wide must require features")
	}
}

func TestProbeScalarAlwaysSelectable(t *testing.T) {
	// Whatever the machine, selection must land on a registered kernel.
	tier := SelectedTier()
	if tier < TierScalar || tier >= TierN {
		t.Fatalf("selected tier out of range: %d", tier)
	}
	if tier.Func() == nil {
		t.Fatalf("selected tier %s has no kernel", tier)
	}
}
