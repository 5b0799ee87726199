package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost is lowered by tests to keep hashing fast.
var bcryptCost = bcrypt.DefaultCost

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
// An empty hash never matches.
func CompareHashAndPassword(hash string, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// UseMinBcryptCost switches hashing to bcrypt.MinCost. Only for tests and seeding fixtures.
func UseMinBcryptCost() { bcryptCost = bcrypt.MinCost }
