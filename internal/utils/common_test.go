package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadString(t *testing.T) {
	assert.Equal(t, "ab   ", PadString("ab", 5))
	assert.Equal(t, "abcde", PadString("abcde", 5))
	assert.Equal(t, "abcdef", PadString("abcdef", 5))
	assert.Equal(t, "", PadString("", 0))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 10))
	assert.Equal(t, "abcd...", TruncateString("abcdefghij", 7))
	assert.Equal(t, "abc", TruncateString("abcdefghij", 3))
	assert.Equal(t, "", TruncateString("abc", 0))
}
