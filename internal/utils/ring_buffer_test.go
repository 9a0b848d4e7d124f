package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingBuffer_New(t *testing.T) {
	rb := NewRingBuffer[int](3)
	assert.Equal(t, 3, rb.Cap())
	assert.Equal(t, 0, rb.Len())

	assert.Panics(t, func() { NewRingBuffer[int](0) })
	assert.Panics(t, func() { NewRingBuffer[int](-1) })
}

func TestRingBuffer_PushAndAt(t *testing.T) {
	rb := NewRingBuffer[int](3)
	rb.Push(1)
	rb.Push(2)
	assert.Equal(t, 2, rb.Len())
	assert.Equal(t, 1, rb.At(0))
	assert.Equal(t, 2, rb.At(1))
}

func TestRingBuffer_OverwriteOnFull(t *testing.T) {
	rb := NewRingBuffer[int](3)
	for i := 1; i <= 5; i++ {
		rb.Push(i)
	}
	assert.Equal(t, 3, rb.Len())
	assert.Equal(t, []int{3, 4, 5}, rb.ToSlice())
}

func TestRingBuffer_At_OutOfBounds(t *testing.T) {
	rb := NewRingBuffer[int](3)
	rb.Push(1)
	assert.Panics(t, func() { rb.At(-1) })
	assert.Panics(t, func() { rb.At(1) })
}

func TestRingBuffer_ToSliceEmpty(t *testing.T) {
	rb := NewRingBuffer[string](2)
	assert.Empty(t, rb.ToSlice())
}

func TestRingBuffer_ToSliceIsCopy(t *testing.T) {
	rb := NewRingBuffer[int](2)
	rb.Push(1)
	s := rb.ToSlice()
	s[0] = 99
	assert.Equal(t, 1, rb.At(0))
}
