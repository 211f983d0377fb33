// Package runtime implements the per-frame executor described in
// spec.md §4.6: given a compiled IRProgram and a RuntimeState, walk the
// schedule once per frame and assemble the RenderPass list.
package runtime

import (
	"sync"

	"github.com/oscilla-sh/oscilla/types"
)

// Buffer is a field's materialized backing storage: Count instances of
// Stride components each, flattened into one slice.
type Buffer struct {
	Payload  types.Payload
	Count    int
	Stride   int
	Data     []float64
}

type bufferKey struct {
	Payload  types.Payload
	Capacity int
}

// BufferPool hands out field buffers keyed by (payload, capacity),
// reusing a released buffer of matching shape rather than allocating
// fresh each frame (spec.md §5: "pulled from a BufferPool... and
// returned at frame end" — no per-frame allocation in the hot path
// once the pool is warm).
type BufferPool struct {
	mu   sync.Mutex
	free map[bufferKey][]*Buffer
}

// NewBufferPool returns an empty pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{free: make(map[bufferKey][]*Buffer)}
}

// Acquire returns a buffer sized for count instances of the given
// payload, reusing a released one of the same (payload, capacity) if
// available.
func (p *BufferPool) Acquire(payload types.Payload, count int) *Buffer {
	stride := types.StrideOf(payload)
	key := bufferKey{Payload: payload, Capacity: count}

	p.mu.Lock()
	defer p.mu.Unlock()

	if bucket := p.free[key]; len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.free[key] = bucket[:len(bucket)-1]
		return buf
	}

	return &Buffer{Payload: payload, Count: count, Stride: stride, Data: make([]float64, count*stride)}
}

// Release returns buf to the pool for reuse by a later Acquire of the
// same shape. The runtime owns BufferPool exclusively during a frame
// (spec.md §5); callers must not retain buf after releasing it.
func (p *BufferPool) Release(buf *Buffer) {
	key := bufferKey{Payload: buf.Payload, Capacity: buf.Count}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free[key] = append(p.free[key], buf)
}
