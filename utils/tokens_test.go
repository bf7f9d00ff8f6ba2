package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCodeShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]+$`)

	for _, n := range []int{1, 8, 32} {
		code, err := RandomCode(n)
		require.NoError(t, err)
		assert.Len(t, code, n)
		assert.Regexp(t, pattern, code)
	}
}

func TestRandomCodeVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := RandomCode(8)
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("TOKENS_TEST_KEY", "set")
	assert.Equal(t, "set", EnvOrDefault("TOKENS_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", EnvOrDefault("TOKENS_TEST_MISSING", "fallback"))
}
