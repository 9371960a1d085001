package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v, want nil, false, nil", data, hit, err)
	}
	if n, err := c.Clear(ctx); n != 0 || err != nil {
		t.Errorf("Clear = %d, %v, want 0, nil", n, err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) hit, want miss")
	}
	if err := c.Set(ctx, "a", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get(a) = %q, %v, %v, want <svg/>, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Delete hit, want miss")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("Get before expiry missed")
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after expiry hit, want miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("Get after Clear hit, want miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash is not deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Hash(hello) == Hash(world)")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h1))
	}
}

func TestHashJSON(t *testing.T) {
	a, err := HashJSON(map[string]int{"x": 1, "y": 2})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashJSON(map[string]int{"y": 2, "x": 1})
	if a != b {
		t.Errorf("HashJSON depends on map order: %s != %s", a, b)
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON(func) = nil error, want error")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	svg := ArtifactKeyOpts{Kind: "bar", Format: "svg", ConfigHash: "c1"}
	key := k.ArtifactKey("d1", svg)
	if !strings.HasPrefix(key, "artifact:svg:") {
		t.Errorf("ArtifactKey = %q, want artifact:svg: prefix", key)
	}
	if key != k.ArtifactKey("d1", svg) {
		t.Error("ArtifactKey is not deterministic")
	}

	tests := []struct {
		name string
		hash string
		opts ArtifactKeyOpts
	}{
		{"dataset", "d2", svg},
		{"kind", "d1", ArtifactKeyOpts{Kind: "line", Format: "svg", ConfigHash: "c1"}},
		{"format", "d1", ArtifactKeyOpts{Kind: "bar", Format: "png", ConfigHash: "c1"}},
		{"config", "d1", ArtifactKeyOpts{Kind: "bar", Format: "svg", ConfigHash: "c2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.ArtifactKey(tt.hash, tt.opts); got == key {
				t.Errorf("ArtifactKey(%s, %+v) collides with base key", tt.hash, tt.opts)
			}
		})
	}

	if d := k.DatasetKey("sales.csv", "h"); !strings.HasPrefix(d, "dataset:") {
		t.Errorf("DatasetKey = %q, want dataset: prefix", d)
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	k := NewScopedKeyer(nil, "team:")
	opts := ArtifactKeyOpts{Kind: "bar", Format: "svg"}

	if got, want := k.ArtifactKey("d", opts), "team:"+base.ArtifactKey("d", opts); got != want {
		t.Errorf("ArtifactKey = %q, want %q", got, want)
	}
	if got, want := k.DatasetKey("p", "h"), "team:"+base.DatasetKey("p", "h"); got != want {
		t.Errorf("DatasetKey = %q, want %q", got, want)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	fast := Backoff{Attempts: 3, Delay: time.Millisecond}
	transient := errors.New("connection reset")

	calls := 0
	err := RetryWithBackoff(ctx, fast, func() error {
		calls++
		if calls < 3 {
			return Retryable(transient)
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("retryable: err = %v, calls = %d, want nil, 3", err, calls)
	}

	calls = 0
	permanent := errors.New("WRONGTYPE")
	err = RetryWithBackoff(ctx, fast, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("permanent: err = %v, calls = %d, want %v, 1", err, calls, permanent)
	}

	calls = 0
	err = RetryWithBackoff(ctx, fast, func() error {
		calls++
		return Retryable(transient)
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err = %v, calls = %d, want retryable, 3", err, calls)
	}
}

func TestRetryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, Backoff{Attempts: 3, Delay: time.Hour}, func() error {
		return Retryable(errors.New("timeout"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRetryableNil(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("empty addr: err = %v, want ErrUnavailable", err)
	}
	_, err := NewRedisCache(context.Background(), RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("closed port: err = %v, want ErrUnavailable", err)
	}
}
