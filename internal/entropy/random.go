// Package entropy provides the random source behind stochastic world
// events, with a crypto/rand default and swappable sources for tests.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float() float64
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

// Crypto returns the default source.
func Crypto() CryptoSource {
	return CryptoSource{}
}

// Float returns a uniform float64 in [0, 1).
func (CryptoSource) Float() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 is a safe midpoint default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Fixed always yields the same value. Test and tuning helper.
type Fixed float64

// Float returns the fixed value.
func (f Fixed) Float() float64 {
	return float64(f)
}
