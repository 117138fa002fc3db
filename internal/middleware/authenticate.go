package middleware

import (
	"net/http"
	"strings"
)

type Authenticator interface {
	Authenticate(key string, r *http.Request) (*http.Request, error)
}

// Authenticate возвращает middleware для проверки ключа доступа из заголовка Authorization.
// Допускается как сам ключ, так и ключ с префиксом Bearer.
func Authenticate(a Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			r, err := a.Authenticate(key, r)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
