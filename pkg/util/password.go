package util

import "golang.org/x/crypto/bcrypt"

// Shopper passwords are stored as bcrypt hashes. Cost 12 keeps a single
// verification slow enough to blunt offline guessing without making
// interactive sign-in sluggish.
const passwordHashCost = 12

// HashPassword derives the stored credential for an account password.
// Every call salts independently, so equal passwords never share a hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the sign-in attempt matches the stored
// hash. Malformed hashes verify as false rather than erroring, so a
// corrupt credential row behaves like a wrong password.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
