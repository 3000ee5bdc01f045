// Package credentials hashes and verifies user passwords. It owns no
// other state.
package credentials

import "github.com/alexedwards/argon2id"

// Hash derives a salted, memory-hard hash of the password and returns
// it in encoded text form. Every call produces a different result.
func Hash(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// Verify recomputes the hash with the salt embedded in stored and
// compares in constant time. A malformed stored form verifies as
// false rather than failing.
func Verify(password, stored string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, stored)
	if err != nil {
		return false
	}
	return match
}
