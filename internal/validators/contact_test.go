package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@example.com"))
	assert.True(t, IsEmail("  ana@example.com  "))
	assert.False(t, IsEmail("11987654321"))
	assert.False(t, IsEmail("@example.com"))
	assert.False(t, IsEmail("ana@"))
	assert.False(t, IsEmail(""))
}

func TestNormalizeContact(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeContact(" Ana@Example.com "))
	assert.Equal(t, "11987654321", NormalizeContact("(11) 98765-4321"))
}
