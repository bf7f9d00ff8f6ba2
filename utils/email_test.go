package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnconfiguredMailerLogsInsteadOfSending(t *testing.T) {
	m := &Mailer{}
	assert.NoError(t, m.Send("Subject", "Body", []string{"to@example.com"}))
	assert.NoError(t, m.Send("Subject", "Body", nil))
}

func TestSanitizeHeaderStripsNewlines(t *testing.T) {
	assert.Equal(t, "a b c", sanitizeHeader("a\rb\nc"))
	assert.Equal(t, "plain", sanitizeHeader("plain"))
}
