package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor. Changing it only affects newly
// hashed passwords; existing hashes embed their own cost and keep verifying.
const PasswordCost = 10

// HashPassword returns a salted bcrypt hash of the plaintext password. The
// salt and cost are embedded in the output, so nothing else needs storing.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash. A mismatch returns false, never an error.
func VerifyPassword(password, encodedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return true
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false
	}
	// Malformed hashes also fail closed.
	return false
}
