package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedTitle(t *testing.T) {
	assert.Equal(t, "New Chat", seedTitle(""))
	assert.Equal(t, "New Chat", seedTitle("   "))
	assert.Equal(t, "Hello there", seedTitle("Hello there"))

	long := strings.Repeat("a", 45)
	assert.Equal(t, strings.Repeat("a", 30), seedTitle(long))

	// Rune-aware, not byte-aware.
	runes := strings.Repeat("é", 35)
	assert.Equal(t, strings.Repeat("é", 30), seedTitle(runes))
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "short", deriveTitle("short"))

	exact := strings.Repeat("b", 40)
	assert.Equal(t, exact, deriveTitle(exact))

	long := strings.Repeat("c", 41)
	assert.Equal(t, strings.Repeat("c", 40)+"...", deriveTitle(long))
}
