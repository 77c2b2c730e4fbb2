// Package idgen provides pluggable ID generation.
//
// Constructors across the repository accept a Generator, making the ID
// strategy a startup-time decision rather than a compile-time one. Tests
// substitute a fixed Generator to pin otherwise-cosmetic reference numbers.
package idgen

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// NanoID returns a Generator that produces base-36 IDs of the given length.
// Short, URL-safe, fast. Use where UUIDv7 is too verbose (fax ids,
// invoice line ids).
func NanoID(length int) Generator {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	return func() string {
		b := make([]byte, length)
		buf := make([]byte, length)
		if _, err := rand.Read(buf); err != nil {
			panic("idgen: crypto/rand failed: " + err.Error())
		}
		for i := range b {
			b[i] = alphabet[int(buf[i])%len(alphabet)]
		}
		return string(b)
	}
}

// UUIDv7 returns a Generator that produces RFC 9562 UUID v7 strings.
// Time-sortable and globally unique.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Numeric returns a Generator that produces zero-padded decimal IDs of the
// given digit count. Used for cosmetic document reference numbers
// (Rechnungs-Nr, Aktenzeichen suffixes) where a UUID would look out of
// place on a printed page.
func Numeric(digits int) Generator {
	if digits < 1 || digits > 18 {
		panic("idgen: digits out of range")
	}
	max := int64(1)
	for i := 0; i < digits; i++ {
		max *= 10
	}
	return func() string {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("idgen: crypto/rand failed: " + err.Error())
		}
		var n int64
		for _, b := range buf {
			n = n<<8 | int64(b)
		}
		if n < 0 {
			n = -n
		}
		return fmt.Sprintf("%0*d", digits, n%max)
	}
}

// Prefixed wraps a Generator and prepends a fixed prefix to every ID.
// Useful for type-scoped identifiers (e.g. "OWI-", "OBD-", "fax_").
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Fixed returns a Generator that always yields the same ID. Test helper.
func Fixed(id string) Generator {
	return func() string { return id }
}

// Default is the repository-wide default strategy.
var Default Generator = UUIDv7()
