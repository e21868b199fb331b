package ident_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corecraft/worldkit/ident"
)

func Test_Deterministic(t *testing.T) {
	a := ident.Deterministic("esc", "tick_1", "technical", "2025-06-01T12:00:00Z")
	b := ident.Deterministic("esc", "tick_1", "technical", "2025-06-01T12:00:00Z")
	assert.Equal(t, a, b)

	assert.Regexp(t, `^esc_[0-9a-f]{12}$`, a)

	c := ident.Deterministic("esc", "tick_1", "policy_exception", "2025-06-01T12:00:00Z")
	assert.NotEqual(t, a, c)

	// The joined parts are what matters, not how they are split.
	d := ident.Deterministic("esc", "tick_1|technical", "2025-06-01T12:00:00Z")
	assert.Equal(t, a, d)
}

func Test_Random(t *testing.T) {
	a := ident.Random("ref")
	b := ident.Random("ref")
	assert.NotEqual(t, a, b)

	require.Regexp(t, `^ref-`, a)
	_, err := uuid.Parse(a[len("ref-"):])
	assert.NoError(t, err)
}
