package security

import (
	"crypto/rand"
	"encoding/hex"
)

func RandomBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}

	return b, nil
}

// NewKeyID возвращает случайный идентификатор ключа доступа.
func NewKeyID() (string, error) {
	b, err := RandomBytes(12)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
