// Copyright (c) 2025, The CortexN Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ringbuf provides a lock-free single-producer / single-consumer ring
buffer of float32 samples, used to stream samples between a producer (sensor,
audio, or model output) and a consumer (playback or further inference) without
locks.

Exactly one goroutine may call Write and exactly one (possibly different)
goroutine may call Read, concurrently. Each side owns its cursor: the producer
advances the write cursor, the consumer the read cursor, so plain atomic loads
and stores suffice -- the cross-side cursor is read with an acquire load, and a
side publishes its own cursor with a release store only after the sample data
has been copied. Two goroutines writing (or two reading) is outside the
contract.
*/
package ringbuf

import (
	"fmt"
	"sync/atomic"
)

// Buffer is a fixed-capacity SPSC ring buffer of float32 samples.
// The physical array holds Cap()+1 slots: one sentinel slot is reserved so
// that writeIdx == readIdx always means empty, never full.
type Buffer struct {
	buf      []float32
	size     uint64 // physical size = capacity + 1
	writeIdx atomic.Uint64
	readIdx  atomic.Uint64
}

// New returns a ring buffer that holds up to capacity unread samples.
func New(capacity int) (*Buffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("ringbuf.New: capacity must be >= 1, got %d", capacity)
	}
	rb := &Buffer{
		buf:  make([]float32, capacity+1),
		size: uint64(capacity + 1),
	}
	return rb, nil
}

// Cap returns the usable capacity (maximum number of unread samples).
func (rb *Buffer) Cap() int {
	return int(rb.size - 1)
}

// Write copies up to len(data) samples into the buffer and returns the number
// actually written = min(len(data), Remaining()). It never blocks and never
// overwrites unread data. Producer side only.
func (rb *Buffer) Write(data []float32) int {
	wr := rb.writeIdx.Load() // own cursor
	rd := rb.readIdx.Load()  // consumer cursor: acquire

	var space uint64
	if wr >= rd {
		space = rb.size - (wr - rd) - 1
	} else {
		space = rd - wr - 1
	}

	n := uint64(len(data))
	if n > space {
		n = space
	}
	if n == 0 {
		return 0
	}

	// Copy in at most two contiguous regions across the wrap point.
	first := n
	if max := rb.size - wr; first > max {
		first = max
	}
	copy(rb.buf[wr:wr+first], data[:first])
	if first < n {
		copy(rb.buf[:n-first], data[first:n])
	}

	// Publish: data must be visible before the cursor advance.
	rb.writeIdx.Store((wr + n) % rb.size)
	return int(n)
}

// Read copies up to len(data) samples out of the buffer in FIFO order and
// returns the number actually read = min(len(data), Available()). It never
// blocks. Consumer side only.
func (rb *Buffer) Read(data []float32) int {
	rd := rb.readIdx.Load()  // own cursor
	wr := rb.writeIdx.Load() // producer cursor: acquire

	var avail uint64
	if wr >= rd {
		avail = wr - rd
	} else {
		avail = rb.size - (rd - wr)
	}

	n := uint64(len(data))
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0
	}

	first := n
	if max := rb.size - rd; first > max {
		first = max
	}
	copy(data[:first], rb.buf[rd:rd+first])
	if first < n {
		copy(data[first:n], rb.buf[:n-first])
	}

	rb.readIdx.Store((rd + n) % rb.size)
	return int(n)
}

// Available returns the number of unread samples.
// Available() + Remaining() == Cap() at every observation point.
func (rb *Buffer) Available() int {
	wr := rb.writeIdx.Load()
	rd := rb.readIdx.Load()
	if wr >= rd {
		return int(wr - rd)
	}
	return int(rb.size - (rd - wr))
}

// Remaining returns the number of free slots for writing.
func (rb *Buffer) Remaining() int {
	return int(rb.size) - rb.Available() - 1
}

// Empty reports whether no unread samples are buffered.
func (rb *Buffer) Empty() bool {
	return rb.Available() == 0
}

// Full reports whether no free slots remain.
func (rb *Buffer) Full() bool {
	return rb.Remaining() == 0
}

// Clear discards all unread data by advancing the read cursor to the current
// write cursor. Consumer side only.
func (rb *Buffer) Clear() {
	rb.readIdx.Store(rb.writeIdx.Load())
}
