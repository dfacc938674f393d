// Package common holds helpers shared across the client.
package common

// WipeByteArray zeroes b in place. Used on secrets read from the terminal
// once they have been copied where they belong.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
