package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintString(t *testing.T) {
	assert.Equal(t, FingerprintString("abc"), FingerprintString("abc"))
	assert.NotEqual(t, FingerprintString("abc"), FingerprintString("abd"))
	assert.NotEqual(t, FingerprintString(""), FingerprintString("a"))
}

func TestMix64OrderMatters(t *testing.T) {
	a, b := FingerprintString("left"), FingerprintString("right")
	assert.NotEqual(t, Mix64(a, b), Mix64(b, a))
	assert.Equal(t, Mix64(a, b), Mix64(a, b))
}

func TestU64ToBytesRoundsTrip(t *testing.T) {
	b := U64ToBytes(0x0102030405060708)
	assert.Len(t, b, 8)
	assert.NotEqual(t, U64ToBytes(1), U64ToBytes(2))
}
