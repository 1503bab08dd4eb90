package auth

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(b), err
}

// VerifyPassword returns nil when plain matches hash.
func VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
