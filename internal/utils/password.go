package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword хеширует пароль bcrypt'ом (cost 12).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash сравнивает пароль с хешем. Открытый пароль нигде не хранится.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
