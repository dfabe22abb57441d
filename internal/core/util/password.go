package util

import "golang.org/x/crypto/bcrypt"

// GenerateEncrypt hashes a plaintext password with bcrypt at the
// default cost.
func GenerateEncrypt(password string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

// ComparePassword reports whether password matches the stored bcrypt
// hash. A nil return means the credentials are valid.
func ComparePassword(password, encrypted string) error {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
