package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopscout/backend/internal/domain"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get round-trips the exact bytes", func(t *testing.T) {
		c := NewMemoryCache()
		value := []byte(`{"results":[{"retailer":"Target"}]}`)

		if err := c.Set(ctx, "compare:amazon:xyz", value, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := c.Get(ctx, "compare:amazon:xyz")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !bytes.Equal(got, value) {
			t.Errorf("Get() = %s, want %s", got, value)
		}
	})

	t.Run("get of missing key is a cache miss", func(t *testing.T) {
		c := NewMemoryCache()
		_, err := c.Get(ctx, "nope")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("expired entry is treated as absent", func(t *testing.T) {
		c := NewMemoryCache()
		if err := c.Set(ctx, "short", []byte("v"), time.Millisecond); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		time.Sleep(5 * time.Millisecond)

		if _, err := c.Get(ctx, "short"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("Get() error = %v, want ErrCacheMiss after expiry", err)
		}
		if ok, _ := c.Exists(ctx, "short"); ok {
			t.Error("Exists() = true for expired entry")
		}
	})

	t.Run("set replaces the previous value", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "k", []byte("old"), time.Minute)
		c.Set(ctx, "k", []byte("new"), time.Minute)

		got, err := c.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != "new" {
			t.Errorf("Get() = %s, want new", got)
		}
	})

	t.Run("stored value is isolated from caller mutation", func(t *testing.T) {
		c := NewMemoryCache()
		value := []byte("original")
		c.Set(ctx, "k", value, time.Minute)
		copy(value, "XXXXXXXX")

		got, _ := c.Get(ctx, "k")
		if string(got) != "original" {
			t.Errorf("Get() = %s, want original", got)
		}
	})

	t.Run("returned value is isolated from reader mutation", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "k", []byte("original"), time.Minute)

		first, _ := c.Get(ctx, "k")
		copy(first, "XXXXXXXX")

		second, _ := c.Get(ctx, "k")
		if string(second) != "original" {
			t.Errorf("Get() after reader mutation = %s, want original", second)
		}
	})

	t.Run("delete removes the key", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "k", []byte("v"), time.Minute)

		if err := c.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := c.Get(ctx, "k"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("Get() after Delete error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("exists reports live keys only", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "k", []byte("v"), time.Minute)

		if ok, err := c.Exists(ctx, "k"); err != nil || !ok {
			t.Errorf("Exists() = %v, %v; want true, nil", ok, err)
		}
		if ok, err := c.Exists(ctx, "missing"); err != nil || ok {
			t.Errorf("Exists() = %v, %v; want false, nil", ok, err)
		}
	})

	t.Run("size and clear", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "a", []byte("1"), time.Minute)
		c.Set(ctx, "b", []byte("2"), time.Minute)

		if got := c.Size(); got != 2 {
			t.Errorf("Size() = %d, want 2", got)
		}

		c.Clear()
		if got := c.Size(); got != 0 {
			t.Errorf("Size() after Clear = %d, want 0", got)
		}
	})
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			key := string(rune('a' + n))
			for j := 0; j < 100; j++ {
				c.Set(ctx, key, []byte("v"), time.Minute)
				c.Get(ctx, key)
				c.Exists(ctx, key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if got := c.Size(); got != 8 {
		t.Errorf("Size() = %d, want 8", got)
	}
}
