package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	inerr "github.com/ivanpodgorny/cardcheck/internal/errors"
	"strings"
)

// KeyPrefix - префикс всех ключей доступа к API.
const KeyPrefix = "pk_"

// HMACSigner выпускает и проверяет ключи доступа вида pk_<id>.<подпись>, где
// подпись - HMAC-SHA256 идентификатора.
type HMACSigner struct {
	secret string
}

func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: secret}
}

func (s *HMACSigner) Sign(id string) string {
	return KeyPrefix + id + "." + hex.EncodeToString(s.signHMAC([]byte(id)))
}

// Parse проверяет подпись ключа и возвращает его идентификатор. Если ключ
// имеет неверный формат или подпись не совпадает, возвращает errors.ErrInvalidKey.
func (s *HMACSigner) Parse(key string) (string, error) {
	body, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return "", inerr.ErrInvalidKey
	}

	i := strings.LastIndexByte(body, '.')
	if i <= 0 {
		return "", inerr.ErrInvalidKey
	}

	id := body[:i]
	sign, err := hex.DecodeString(body[i+1:])
	if err != nil {
		return "", inerr.ErrInvalidKey
	}

	if !hmac.Equal(s.signHMAC([]byte(id)), sign) {
		return "", inerr.ErrInvalidKey
	}

	return id, nil
}

func (s *HMACSigner) signHMAC(data []byte) []byte {
	h := hmac.New(sha256.New, []byte(s.secret))
	h.Write(data)

	return h.Sum(nil)
}
