// Package compose maps module state into print-ready document trees.
//
// Each composer is a pure mapping from an input view to a Document: no
// network, no stores, no layout-affecting randomness. The only variable
// parts are cosmetic reference numbers (injected idgen.Generator) and the
// document date (injected clock), both pinned in tests.
//
// A composer either produces the complete tree or returns ErrIncomplete;
// partially filled documents do not exist.
package compose

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Jan2821/Jan-OS/idgen"
)

// ErrIncomplete is returned when required source fields are absent. It is
// not a failure: nothing is mounted and export stays unavailable upstream.
var ErrIncomplete = errors.New("compose: required fields missing")

// Config configures a Composer.
type Config struct {
	// Refs generates cosmetic reference numbers (invoice numbers).
	// Default: 5-digit numeric.
	Refs idgen.Generator

	// Now supplies the document date. Default: time.Now.
	Now func() time.Time
}

func (c *Config) defaults() {
	if c.Refs == nil {
		c.Refs = idgen.Numeric(5)
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Composer builds the six document variants.
type Composer struct {
	cfg Config
}

// New creates a Composer with the given configuration.
func New(cfg Config) *Composer {
	cfg.defaults()
	return &Composer{cfg: cfg}
}

// dateDE formats a date the way German forms print it.
func dateDE(t time.Time) string {
	return t.Format("02.01.2006")
}

// clockDE formats a wall-clock time.
func clockDE(t time.Time) string {
	return t.Format("15:04:05")
}

// euro formats an amount with the German decimal comma.
func euro(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f €", v), ".", ",", 1)
}

// orElse substitutes fallback wording for a blank value.
func orElse(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// excerpt truncates free text for tabular display, rune-safe.
func excerpt(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "..."
}
