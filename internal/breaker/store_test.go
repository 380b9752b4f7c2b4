package breaker

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"string passes through raw", "half_open", "half_open"},
		{"bytes pass through raw", []byte("2026-08-25"), "2026-08-25"},
		{"float is json-encoded", 42.5, "42.5"},
		{"struct is json-encoded", map[string]int{"n": 1}, `{"n":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Set(ctx, "k", tt.value, 0); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			raw, found, err := s.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !found {
				t.Fatal("Get() found = false, want true")
			}
			if string(raw) != tt.want {
				t.Errorf("Get() = %q, want %q", raw, tt.want)
			}
		})
	}
}

func TestMemoryStore_MissingKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, found, err := s.Get(ctx, "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true for an absent key")
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Set(ctx, "ephemeral", "v", 15*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, found, _ := s.Get(ctx, "ephemeral"); !found {
		t.Fatal("Get() found = false before expiry")
	}

	time.Sleep(25 * time.Millisecond)

	if _, found, _ := s.Get(ctx, "ephemeral"); found {
		t.Error("Get() found = true after expiry")
	}
}

func TestMemoryStore_Incr(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for want := int64(1); want <= 3; want++ {
		got, err := s.Incr(ctx, "counter")
		if err != nil {
			t.Fatalf("Incr() error = %v", err)
		}
		if got != want {
			t.Errorf("Incr() = %d, want %d", got, want)
		}
	}

	// Incr on a non-integer value fails loudly.
	s.Set(ctx, "garbage", "not-a-number", 0)
	if _, err := s.Incr(ctx, "garbage"); err == nil {
		t.Error("Incr() on non-integer expected error, got nil")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, "k", "v", 0)
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Error("Get() found = true after delete")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete() on absent key error = %v", err)
	}
}
