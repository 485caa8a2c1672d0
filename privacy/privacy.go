// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package privacy is a thin homomorphic-encryption bridge over lattigo CKKS,
used to aggregate on-device telemetry (spike rates, benchmark latencies)
without exposing raw values. All scheme state lives in an owned Context;
there are no package-level parameters or keys, so independent contexts never
share or interfere.

The binding is deliberately minimal: encode+encrypt, decrypt+decode, and
ciphertext addition. Anything beyond additive aggregation belongs in the
aggregation service, not on the device.
*/
package privacy

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v4/ckks"
	"github.com/tuneinsight/lattigo/v4/rlwe"
)

// Context owns one CKKS parameter set and key pair, plus the encoder,
// encryptor, decryptor, and evaluator bound to them. Not safe for
// concurrent use.
type Context struct {
	params    ckks.Parameters
	encoder   ckks.Encoder
	encryptor rlwe.Encryptor
	decryptor rlwe.Decryptor
	eval      ckks.Evaluator
	closed    bool
}

// NewContext generates fresh keys under a compact parameter set suitable
// for additive aggregation of short telemetry vectors.
func NewContext() (*Context, error) {
	params, err := ckks.NewParametersFromLiteral(ckks.PN12QP109)
	if err != nil {
		return nil, fmt.Errorf("privacy.NewContext: parameters: %v", err)
	}
	kgen := ckks.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPair()
	return &Context{
		params:    params,
		encoder:   ckks.NewEncoder(params),
		encryptor: ckks.NewEncryptor(params, pk),
		decryptor: ckks.NewDecryptor(params, sk),
		eval:      ckks.NewEvaluator(params, rlwe.EvaluationKey{}),
	}, nil
}

// Slots returns the number of float64 values one ciphertext can carry.
func (c *Context) Slots() int {
	return c.params.Slots()
}

// Encrypt encodes vals into a single ciphertext. len(vals) must not exceed
// Slots(); unused slots are zero.
func (c *Context) Encrypt(vals []float64) (*rlwe.Ciphertext, error) {
	if c.closed {
		return nil, fmt.Errorf("privacy.Encrypt: context is closed")
	}
	if len(vals) == 0 || len(vals) > c.params.Slots() {
		return nil, fmt.Errorf("privacy.Encrypt: %d values, must be in [1, %d]", len(vals), c.params.Slots())
	}
	pt := c.encoder.EncodeNew(vals, c.params.MaxLevel(), c.params.DefaultScale(), c.params.LogSlots())
	return c.encryptor.EncryptNew(pt), nil
}

// Decrypt recovers the first n values of ct. CKKS is approximate: values
// come back within the scheme's precision, not bit-exact.
func (c *Context) Decrypt(ct *rlwe.Ciphertext, n int) ([]float64, error) {
	if c.closed {
		return nil, fmt.Errorf("privacy.Decrypt: context is closed")
	}
	if ct == nil {
		return nil, fmt.Errorf("privacy.Decrypt: nil ciphertext")
	}
	if n < 1 || n > c.params.Slots() {
		return nil, fmt.Errorf("privacy.Decrypt: n=%d, must be in [1, %d]", n, c.params.Slots())
	}
	pt := c.decryptor.DecryptNew(ct)
	cvals := c.encoder.Decode(pt, c.params.LogSlots())
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = real(cvals[i])
	}
	return vals, nil
}

// AddCiphertexts returns a new ciphertext holding the slot-wise sum a + b.
func (c *Context) AddCiphertexts(a, b *rlwe.Ciphertext) (*rlwe.Ciphertext, error) {
	if c.closed {
		return nil, fmt.Errorf("privacy.AddCiphertexts: context is closed")
	}
	if a == nil || b == nil {
		return nil, fmt.Errorf("privacy.AddCiphertexts: nil ciphertext")
	}
	return c.eval.AddNew(a, b), nil
}

// Close drops the key material. The context is unusable afterwards; Close
// is idempotent.
func (c *Context) Close() error {
	c.encryptor = nil
	c.decryptor = nil
	c.eval = nil
	c.closed = true
	return nil
}
