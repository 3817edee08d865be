package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(ScratchBufferDefaultSize)
	bb.B = append(bb.B, []byte("hello")...)

	bytes := bb.Bytes()

	assert.Equal(t, []byte("hello"), bytes)
	assert.True(t, &bb.B[0] == &bytes[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(ScratchBufferDefaultSize)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(ScratchBufferDefaultSize)

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, []byte("hello"), bb.B)

	bb.MustWrite([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.B)
}

func TestByteBuffer_MustWrite_EmptyData(t *testing.T) {
	bb := NewByteBuffer(ScratchBufferDefaultSize)

	bb.MustWrite([]byte{})
	assert.Equal(t, 0, len(bb.B))

	bb.MustWrite([]byte("data"))
	bb.MustWrite([]byte{})
	assert.Equal(t, []byte("data"), bb.B)
}

func TestByteBuffer_MustWrite_GrowsPastInitialCapacity(t *testing.T) {
	bb := NewByteBuffer(4)

	bb.MustWrite([]byte("this is longer than the initial capacity"))
	assert.Equal(t, []byte("this is longer than the initial capacity"), bb.B)
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestGetScratchBuffer(t *testing.T) {
	bb := GetScratchBuffer()

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "pooled buffer should be empty")
	assert.GreaterOrEqual(t, cap(bb.B), ScratchBufferDefaultSize, "pooled buffer should have at least default capacity")
}

func TestPutScratchBuffer_NilBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		PutScratchBuffer(nil)
	})
}

func TestGetPut_BufferReuse(t *testing.T) {
	bb1 := GetScratchBuffer()
	bb1.B = append(bb1.B, []byte("test data")...)

	PutScratchBuffer(bb1)

	bb2 := GetScratchBuffer()
	assert.Equal(t, 0, len(bb2.B), "buffer from pool should be reset")
}

func TestPool_ResetsClearsData(t *testing.T) {
	bb := GetScratchBuffer()
	bb.B = append(bb.B, []byte("sensitive data")...)

	PutScratchBuffer(bb)

	assert.Equal(t, 0, len(bb.B), "PutScratchBuffer should reset the buffer")
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 50
	const numIterations = 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				bb := GetScratchBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, len(bb.B))
				PutScratchBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestNewByteBufferPool(t *testing.T) {
	pool := NewByteBufferPool(8192, 65536)

	require.NotNil(t, pool)

	bb := pool.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 8192, "buffer should have at least default size")

	pool.Put(bb)
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)

	bb := pool.Get()
	bb.B = append(bb.B, make([]byte, 10000)...)

	assert.Greater(t, cap(bb.B), 4096, "buffer should have grown beyond threshold")

	pool.Put(bb)

	bb2 := pool.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096*2, "should not reuse buffer larger than threshold")
}

func TestByteBufferPool_MaxThreshold_Zero(t *testing.T) {
	pool := NewByteBufferPool(1024, 0)

	bb := pool.Get()
	bb.B = append(bb.B, make([]byte, 1024*1024)...)

	assert.Greater(t, cap(bb.B), 100000, "buffer should have grown to large size")

	pool.Put(bb)

	bb2 := pool.Get()
	assert.NotNil(t, bb2)
}

// =============================================================================
// Integration Tests
// =============================================================================

func TestByteBuffer_ResetAndReuse(t *testing.T) {
	bb := GetScratchBuffer()
	defer PutScratchBuffer(bb)

	bb.MustWrite([]byte("first"))
	assert.Equal(t, 5, len(bb.B))

	bb.Reset()
	assert.Equal(t, 0, len(bb.B))

	bb.MustWrite([]byte("second"))
	assert.Equal(t, 6, len(bb.B))
	assert.Equal(t, []byte("second"), bb.B)
}

// =============================================================================
// Benchmark Tests
// =============================================================================

func BenchmarkByteBuffer_Write_Small(b *testing.B) {
	bb := GetScratchBuffer()
	defer PutScratchBuffer(bb)
	data := []byte("small data")

	b.ResetTimer()
	for b.Loop() {
		bb.Reset()
		bb.MustWrite(data)
	}
}

func BenchmarkGetPut_Reuse(b *testing.B) {
	for b.Loop() {
		bb := GetScratchBuffer()
		bb.MustWrite([]byte("benchmark data"))
		PutScratchBuffer(bb)
	}
}
