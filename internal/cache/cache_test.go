package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New[string](time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("key", "value")
	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)
	assert.Equal(t, 1, c.Size())
}

func TestExpiry(t *testing.T) {
	c := New[int](10 * time.Millisecond)

	c.Set("key", 42)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestDelete(t *testing.T) {
	c := New[int](time.Minute)

	c.Set("key", 1)
	c.Delete("key")

	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestOverwrite(t *testing.T) {
	c := New[int](time.Minute)

	c.Set("key", 1)
	c.Set("key", 2)

	got, _ := c.Get("key")
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Size())
}
