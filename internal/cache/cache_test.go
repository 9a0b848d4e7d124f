package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetSet(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 42)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestCache_Expiry(t *testing.T) {
	c := New[string](20 * time.Millisecond)
	defer c.Close()

	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire after TTL")
}

func TestCache_Overwrite(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	c.Set("k", 1)
	c.Set("k", 2)
	v, _ := c.Get("k")
	assert.Equal(t, 2, v)
}

func TestCache_Clear(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCache_CloseTwice(t *testing.T) {
	c := New[int](time.Minute)
	c.Close()
	c.Close()
}
