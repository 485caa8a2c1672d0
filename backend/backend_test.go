// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"errors"
	"fmt"
	"testing"

	"github.com/emer/etable/etensor"
)

// echoBackend returns its inputs under a fixed output name, failing once
// closed. It stands in for a real engine in pipeline tests.
type echoBackend struct {
	closed bool
}

func (eb *echoBackend) Invoke(inputs map[string]*etensor.Float32) (map[string]*etensor.Float32, error) {
	if eb.closed {
		return nil, NewInferenceError("echo", fmt.Errorf("engine closed"))
	}
	outs := make(map[string]*etensor.Float32, len(inputs))
	for nm, in := range inputs {
		outs["out_"+nm] = in
	}
	return outs, nil
}

func (eb *echoBackend) Close() error {
	eb.closed = true
	return nil
}

func TestBackendRoundTrip(t *testing.T) {
	var be Backend = &echoBackend{}
	in := etensor.NewFloat32([]int{1, 4}, nil, nil)
	in.Values[2] = 3
	outs, err := be.Invoke(map[string]*etensor.Float32{"latent": in})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	out, ok := outs["out_latent"]
	if !ok || out.Values[2] != 3 {
		t.Errorf("echo output missing or wrong: %v", outs)
	}

	if err := be.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := be.Invoke(nil); err == nil {
		t.Errorf("Invoke after Close should fail")
	}
}

func TestInferenceErrorUnwrap(t *testing.T) {
	cause := errors.New("tensor shape mismatch")
	err := NewInferenceError("decoder", cause)
	if !errors.Is(err, cause) {
		t.Errorf("Unwrap lost the cause")
	}
	var ie *InferenceError
	if !errors.As(error(err), &ie) || ie.Stage != "decoder" {
		t.Errorf("errors.As failed or wrong stage: %v", err)
	}
}
