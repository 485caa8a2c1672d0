// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package backend defines the host boundary for delegating model stages to an
external inference runtime (an interpreter-style engine running conditioner,
diffusion, or decoder graphs). CortexN core packages never call a runtime
directly: they program against Backend, so engines can be swapped or faked in
tests without touching the spiking pipeline.
*/
package backend

import (
	"fmt"

	"github.com/emer/etable/etensor"
)

// Backend runs named-tensor inference on an external engine. Invoke is
// synchronous and must not retain the input map or its tensors after
// returning. Close releases the engine; calling Invoke after Close is an
// error.
type Backend interface {
	Invoke(inputs map[string]*etensor.Float32) (map[string]*etensor.Float32, error)
	Close() error
}

// InferenceError reports a failure in a named pipeline stage. Callers
// typically surface it as a terminal per-request failure rather than
// crashing the pipeline.
type InferenceError struct {
	Stage string // pipeline stage, e.g. "conditioner", "decoder"
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("backend: inference failed at stage %q: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// NewInferenceError wraps err with the stage it occurred in.
func NewInferenceError(stage string, err error) *InferenceError {
	return &InferenceError{Stage: stage, Err: err}
}
