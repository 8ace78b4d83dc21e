package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_KnownVector(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashPassword(""))
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		HashPassword("abc"))
}

func TestHashPassword_DeterministicAndDistinct(t *testing.T) {
	a := HashPassword("Secret#123")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashPassword("Secret#123"))
	assert.NotEqual(t, a, HashPassword("Secret#124"))
}

func TestWipe(t *testing.T) {
	b := []byte("Secret#123")
	Wipe(b)
	assert.Equal(t, make([]byte, 10), b)

	Wipe(nil)
}
