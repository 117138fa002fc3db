package security

import (
	"context"
	"errors"
	"net/http"
)

type Authenticator struct {
	signer Signer
}

type Signer interface {
	Sign(id string) string
	Parse(key string) (string, error)
}

type keyIDContextKey string

const keyIDKey keyIDContextKey = "currentKeyID"

func NewAuthenticator(sgn Signer) *Authenticator {
	return &Authenticator{signer: sgn}
}

// Authenticate проверяет подпись ключа доступа и устанавливает его идентификатор
// в контекст запроса. Если подпись не совпадает, возвращает ошибку.
func (a *Authenticator) Authenticate(key string, r *http.Request) (*http.Request, error) {
	id, err := a.signer.Parse(key)
	if err != nil {
		return r, err
	}

	return r.WithContext(context.WithValue(r.Context(), keyIDKey, id)), nil
}

// GrantKey создает новый ключ доступа, подписанный Signer.
func (a *Authenticator) GrantKey() (string, error) {
	id, err := NewKeyID()
	if err != nil {
		return "", err
	}

	return a.signer.Sign(id), nil
}

// KeyID возвращает идентификатор ключа, с которым выполнен запрос.
func (a *Authenticator) KeyID(r *http.Request) (string, error) {
	val := r.Context().Value(keyIDKey)
	if val == nil {
		return "", errors.New("not found")
	}

	return val.(string), nil
}
