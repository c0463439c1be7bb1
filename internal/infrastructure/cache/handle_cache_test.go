package cache

import (
	"sync"
	"testing"
)

func TestHandleCache_LookupMiss(t *testing.T) {
	c := NewHandleCache()

	if _, ok := c.Lookup("abc123"); ok {
		t.Error("Lookup on empty cache should miss")
	}
}

func TestHandleCache_StoreThenLookup(t *testing.T) {
	c := NewHandleCache()

	c.Store("abc123", "BAACAgUAAxkBAAIB")

	handle, ok := c.Lookup("abc123")
	if !ok {
		t.Fatal("Lookup should hit after Store")
	}
	if handle != "BAACAgUAAxkBAAIB" {
		t.Errorf("handle = %v, want BAACAgUAAxkBAAIB", handle)
	}
}

func TestHandleCache_Len(t *testing.T) {
	c := NewHandleCache()

	if c.Len() != 0 {
		t.Errorf("Len() on empty cache = %d, want 0", c.Len())
	}

	c.Store("abc123", "handle-a")
	c.Store("def456", "handle-b")
	c.Store("abc123", "handle-a") // same key does not grow the cache

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestHandleCache_ConcurrentAccess(t *testing.T) {
	c := NewHandleCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Store("shared", "handle")
		}()
		go func() {
			defer wg.Done()
			c.Lookup("shared")
		}()
	}
	wg.Wait()

	if handle, ok := c.Lookup("shared"); !ok || handle != "handle" {
		t.Errorf("Lookup = %v, %v after concurrent writes", handle, ok)
	}
}
