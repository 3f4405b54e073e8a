package cache

import (
	"testing"
	"time"
)

func TestMapPutGet(t *testing.T) {
	m := New[string, int](NeverExpire())
	if _, ok := m.Get("a"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	m.Put("a", 1)
	v, ok := m.Get("a")
	if !ok || v != 1 {
		t.Fatalf("expected hit with 1, got %d, %v", v, ok)
	}
	m.Put("a", 2)
	if v, _ := m.Get("a"); v != 2 {
		t.Fatalf("expected replaced value 2, got %d", v)
	}
}

func TestMapMutateSkipsAbsentKeys(t *testing.T) {
	m := New[string, []string](NeverExpire())
	called := false
	m.Mutate("missing", func(v []string) []string {
		called = true
		return v
	})
	if called {
		t.Fatalf("mutate ran for an absent key")
	}
	if m.Len() != 0 {
		t.Fatalf("mutate primed an entry, len = %d", m.Len())
	}

	m.Put("k", []string{"a"})
	m.Mutate("k", func(v []string) []string { return append(v, "b") })
	v, ok := m.Get("k")
	if !ok || len(v) != 2 || v[1] != "b" {
		t.Fatalf("unexpected mutated value: %v, %v", v, ok)
	}
}

func TestMapDelete(t *testing.T) {
	m := New[string, int](NeverExpire())
	m.Put("a", 1)
	m.Delete("a")
	if _, ok := m.Get("a"); ok {
		t.Fatalf("expected miss after delete")
	}
	// Deleting an absent key is a no-op.
	m.Delete("a")
}

func TestMapTTLExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	m := New[string, int](TTL(time.Minute)).WithClock(func() time.Time { return now })

	m.Put("a", 1)
	now = now.Add(59 * time.Second)
	if _, ok := m.Get("a"); !ok {
		t.Fatalf("entry expired before its TTL")
	}

	now = now.Add(time.Second)
	if _, ok := m.Get("a"); ok {
		t.Fatalf("entry served past its TTL")
	}
	if m.Len() != 0 {
		t.Fatalf("expired entry not dropped on access, len = %d", m.Len())
	}
}

func TestMapMutateRefreshesTTL(t *testing.T) {
	now := time.Unix(1000, 0)
	m := New[string, int](TTL(time.Minute)).WithClock(func() time.Time { return now })

	m.Put("a", 1)
	now = now.Add(30 * time.Second)
	m.Mutate("a", func(v int) int { return v + 1 })

	now = now.Add(45 * time.Second)
	v, ok := m.Get("a")
	if !ok || v != 2 {
		t.Fatalf("expected refreshed entry with 2, got %d, %v", v, ok)
	}
}

func TestMapNilPolicyDefaultsToNeverExpire(t *testing.T) {
	now := time.Unix(1000, 0)
	m := New[string, int](nil).WithClock(func() time.Time { return now })
	m.Put("a", 1)
	now = now.Add(24 * time.Hour)
	if _, ok := m.Get("a"); !ok {
		t.Fatalf("default policy expired an entry")
	}
}
