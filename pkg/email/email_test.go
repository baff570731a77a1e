package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	valid := []string{
		"pm@pretor.co.za",
		"first.last@example.com",
		"user+tag@example.org",
	}
	for _, addr := range valid {
		assert.True(t, Valid(addr), addr)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"spaces in@example.com",
		"Jane Doe <jane@example.com>",
	}
	for _, addr := range invalid {
		assert.False(t, Valid(addr), addr)
	}
}
