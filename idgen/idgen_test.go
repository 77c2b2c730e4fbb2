package idgen

import (
	"strings"
	"testing"
)

func TestNanoID_Length(t *testing.T) {
	for _, length := range []int{8, 12, 16, 24} {
		gen := NanoID(length)
		id := gen()
		if len(id) != length {
			t.Fatalf("NanoID(%d): got length %d", length, len(id))
		}
	}
}

func TestNanoID_Alphabet(t *testing.T) {
	gen := NanoID(100)
	id := gen()
	for _, c := range id {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z')) {
			t.Fatalf("NanoID: unexpected character %q in %q", c, id)
		}
	}
}

func TestNanoID_Uniqueness(t *testing.T) {
	gen := NanoID(12)
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := gen()
		if _, ok := seen[id]; ok {
			t.Fatalf("NanoID: duplicate at iteration %d: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestUUIDv7_Format(t *testing.T) {
	gen := UUIDv7()
	id := gen()
	// UUID format: 8-4-4-4-12
	parts := strings.Split(id, "-")
	if len(parts) != 5 {
		t.Fatalf("UUIDv7: expected 5 parts, got %d in %q", len(parts), id)
	}
	if len(id) != 36 {
		t.Fatalf("UUIDv7: expected length 36, got %d", len(id))
	}
}

func TestUUIDv7_Uniqueness(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := gen()
		if _, ok := seen[id]; ok {
			t.Fatalf("UUIDv7: duplicate at iteration %d", i)
		}
		seen[id] = struct{}{}
	}
}

func TestNumeric(t *testing.T) {
	gen := Numeric(5)
	for i := 0; i < 50; i++ {
		id := gen()
		if len(id) != 5 {
			t.Fatalf("Numeric(5): got length %d in %q", len(id), id)
		}
		for _, c := range id {
			if c < '0' || c > '9' {
				t.Fatalf("Numeric: unexpected character %q in %q", c, id)
			}
		}
	}
}

func TestNumeric_BadDigits(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Numeric(0): expected panic")
		}
	}()
	Numeric(0)
}

func TestPrefixed(t *testing.T) {
	gen := Prefixed("OWI-", NanoID(8))
	id := gen()
	if !strings.HasPrefix(id, "OWI-") {
		t.Fatalf("Prefixed: expected prefix 'OWI-', got %q", id)
	}
	if len(id) != 4+8 {
		t.Fatalf("Prefixed: expected length 12, got %d", len(id))
	}
}

func TestFixed(t *testing.T) {
	gen := Fixed("const")
	if gen() != "const" || gen() != "const" {
		t.Fatal("Fixed: expected stable output")
	}
}
