package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashing parameters. The salt is fixed so the derivation is a pure
// function of the password: the same plaintext always yields the same hash.
const (
	pbkdf2Iterations = 4096
	pbkdf2KeyLen     = 32
	passwordSalt     = "boardgame-store.v1"
)

// HashPassword derives a PBKDF2-SHA256 hash of the plaintext and returns it
// hex encoded.
func HashPassword(plain string) string {
	key := pbkdf2.Key([]byte(plain), []byte(passwordSalt), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword compares a stored hash against the hash of the supplied
// plaintext in constant time.
func VerifyPassword(hash, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(HashPassword(plain))) == 1
}
